// Package logging configures the process-wide zerolog logger.
package logging

import (
	"io"
	"os"
	"strings"
	"sync"

	"hero-staking/internal/config"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

var (
	writerMu sync.RWMutex
	writer   io.Writer = os.Stdout
)

// Init installs the global logger described by cfg. The returned closer
// releases the log file when LOG_FILE is set and is a no-op otherwise.
func Init(cfg config.LogConfig) (io.Closer, error) {
	level := zerolog.InfoLevel
	if v := strings.TrimSpace(cfg.Level); v != "" {
		if parsed, err := zerolog.ParseLevel(strings.ToLower(v)); err == nil {
			level = parsed
		}
	}

	var closer io.Closer = nopCloser{}
	var sink io.Writer = os.Stdout
	if cfg.File != "" {
		fw, err := newRotatingFile(cfg.File, cfg.MaxMB)
		if err != nil {
			return nil, err
		}
		sink = io.MultiWriter(os.Stdout, fw)
		closer = fw
	}
	setWriter(sink)

	var output io.Writer = sink
	if cfg.Pretty {
		output = zerolog.ConsoleWriter{Out: sink}
	}

	zerolog.SetGlobalLevel(level)
	ctx := zerolog.New(output).With().Timestamp()
	if svc := strings.TrimSpace(cfg.Service); svc != "" {
		ctx = ctx.Str("service", svc)
	}
	logger := ctx.Logger()
	if cfg.SampleEvery > 1 {
		logger = logger.Sample(&zerolog.BasicSampler{N: uint32(cfg.SampleEvery)})
	}
	log.Logger = logger
	return closer, nil
}

// Writer returns the sink used by the global logger so that access logs
// built on log/slog end up in the same place.
func Writer() io.Writer {
	writerMu.RLock()
	defer writerMu.RUnlock()
	return writer
}

func setWriter(w io.Writer) {
	writerMu.Lock()
	writer = w
	writerMu.Unlock()
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
