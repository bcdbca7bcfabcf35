package txpush

import (
	"time"

	"hero-staking/internal/ledger"
	"hero-staking/internal/txpush/platforms"
)

// Target is one webhook destination. An empty TxTypes accepts every
// transaction type.
type Target struct {
	Platform string   `json:"platform"`
	Endpoint string   `json:"endpoint"`
	Secret   string   `json:"secret"`
	TxTypes  []string `json:"tx_types"`
	// MinAbsSTG drops entries whose |amount| is below it.
	MinAbsSTG int64 `json:"min_abs_stg"`
	Enabled   bool  `json:"enabled"`
}

type Config struct {
	Enabled             bool
	Targets             []Target
	Workers             int
	RetryMax            int
	RetryBase           time.Duration
	FailureThreshold    int
	CircuitOpenDuration time.Duration
	RequestTimeout      time.Duration
	DispatchBuffer      int
}

// Event is the JSON body posted to generic webhooks.
type Event struct {
	Owner string       `json:"owner"`
	Entry ledger.Entry `json:"entry"`
}

type pushJob struct {
	Target  Target
	Message platforms.Message
	Attempt int
}

func (j pushJob) key() string {
	return targetKey(j.Target)
}

func targetKey(t Target) string {
	return t.Platform + "|" + t.Endpoint
}
