package hero

import (
	"math/rand"
	"time"
)

// Source yields uniform floats in [0, 1). *rand.Rand satisfies it.
type Source interface {
	Float64() float64
}

// NewSeededSource returns a deterministic source. A zero seed is replaced by
// the current time.
func NewSeededSource(seed int64) *rand.Rand {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}

// intn draws uniformly from [0, n).
func intn(src Source, n int) int {
	if n <= 0 {
		return 0
	}
	i := int(src.Float64() * float64(n))
	if i >= n {
		i = n - 1
	}
	return i
}

// between draws uniformly from the inclusive range.
func between(src Source, r Range) int64 {
	return r.Min + int64(intn(src, int(r.Max-r.Min+1)))
}

// sourceReader feeds ULID entropy from the generator's source so ids are
// reproducible under a fixed seed.
type sourceReader struct {
	src Source
}

func (r sourceReader) Read(p []byte) (int, error) {
	for i := range p {
		p[i] = byte(intn(r.src, 256))
	}
	return len(p), nil
}
