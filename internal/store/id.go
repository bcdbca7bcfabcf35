package store

import (
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

var (
	ulidEntropy   = ulid.Monotonic(rand.New(rand.NewSource(time.Now().UnixNano())), 0)
	ulidEntropyMu sync.Mutex
)

// NewID returns prefix + "_" + a lowercase monotonic ULID.
func NewID(prefix string) string {
	ulidEntropyMu.Lock()
	defer ulidEntropyMu.Unlock()
	id := strings.ToLower(ulid.MustNew(ulid.Timestamp(time.Now()), ulidEntropy).String())
	if prefix == "" {
		return id
	}
	return prefix + "_" + id
}
