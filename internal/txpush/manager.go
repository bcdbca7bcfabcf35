// Package txpush fans recorded wallet transactions out to webhook targets.
package txpush

import (
	"context"
	"sync"
	"time"

	"hero-staking/internal/ledger"
	"hero-staking/internal/txpush/platforms"

	"github.com/rs/zerolog/log"
)

type breakerState struct {
	consecutiveFailures int
	openUntil           time.Time
}

type Manager struct {
	cfg      Config
	adapters map[string]platforms.Adapter

	dispatchCh chan pushJob
	retryQ     *retryQueue
	done       chan struct{}

	mu           sync.Mutex
	started      bool
	breakerByKey map[string]breakerState
}

func NewManager(cfg Config) *Manager {
	client := platforms.NewHTTPClient(cfg.RequestTimeout)
	adapters := map[string]platforms.Adapter{
		"discord": platforms.NewDiscordAdapter(client),
		"webhook": platforms.NewWebhookAdapter(client),
	}
	if cfg.DispatchBuffer <= 0 {
		cfg.DispatchBuffer = 1024
	}
	if cfg.Workers <= 0 {
		cfg.Workers = 2
	}
	if cfg.RetryBase <= 0 {
		cfg.RetryBase = 500 * time.Millisecond
	}
	if cfg.FailureThreshold <= 0 {
		cfg.FailureThreshold = 3
	}
	if cfg.CircuitOpenDuration <= 0 {
		cfg.CircuitOpenDuration = 30 * time.Second
	}

	m := &Manager{
		cfg:          cfg,
		adapters:     adapters,
		dispatchCh:   make(chan pushJob, cfg.DispatchBuffer),
		done:         make(chan struct{}),
		breakerByKey: map[string]breakerState{},
	}
	m.retryQ = newRetryQueue(m.dispatchCh, m.done)
	return m
}

// Start launches the workers. They stop when ctx is cancelled.
func (m *Manager) Start(ctx context.Context) error {
	if !m.cfg.Enabled {
		return nil
	}

	m.mu.Lock()
	if m.started {
		m.mu.Unlock()
		return nil
	}
	m.started = true
	m.mu.Unlock()

	for i := 0; i < m.cfg.Workers; i++ {
		go m.worker(ctx)
	}
	go func() {
		<-ctx.Done()
		close(m.done)
	}()
	log.Info().Int("targets", len(m.cfg.Targets)).Int("workers", m.cfg.Workers).Msg("tx push started")
	return nil
}

// Publish queues e for every matching target. It never blocks; a full
// queue drops the job.
func (m *Manager) Publish(owner string, e ledger.Entry) {
	if !m.cfg.Enabled || len(m.cfg.Targets) == 0 {
		return
	}
	msg := formatEntry(owner, e)
	for _, t := range m.cfg.Targets {
		if !t.accepts(string(e.Type), e.AmountSTG) {
			continue
		}
		select {
		case m.dispatchCh <- pushJob{Target: t, Message: msg}:
			metricPushQueuedTotal.Add(1)
			metricPushQueueLen.Set(int64(len(m.dispatchCh)))
		default:
			metricPushDroppedTotal.Add(1)
			log.Warn().Str("platform", t.Platform).Str("tx_id", e.ID).Msg("tx push queue full")
		}
	}
}
