package store

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"
)

// LoadList reads a JSON array. Missing keys and unparseable content both
// come back as an empty list; only backend failures are returned.
func LoadList[T any](ctx context.Context, st Store, key string) ([]T, error) {
	raw, err := st.Get(ctx, key)
	if errors.Is(err, ErrNotFound) {
		return []T{}, nil
	}
	if err != nil {
		return nil, err
	}
	var out []T
	if err := json.Unmarshal(raw, &out); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("malformed persisted list; treating as empty")
		return []T{}, nil
	}
	if out == nil {
		out = []T{}
	}
	return out, nil
}

func SaveList[T any](ctx context.Context, st Store, key string, items []T) error {
	if items == nil {
		items = []T{}
	}
	raw, err := json.Marshal(items)
	if err != nil {
		return err
	}
	return st.Put(ctx, key, raw)
}

// LoadScalar reads a decimal number, zero when missing or malformed.
func LoadScalar(ctx context.Context, st Store, key string) (float64, error) {
	raw, err := st.Get(ctx, key)
	if errors.Is(err, ErrNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(string(raw)), 64)
	if err != nil {
		log.Warn().Err(err).Str("key", key).Msg("malformed persisted scalar; treating as zero")
		return 0, nil
	}
	return v, nil
}

func SaveScalar(ctx context.Context, st Store, key string, v float64) error {
	return st.Put(ctx, key, []byte(strconv.FormatFloat(v, 'f', -1, 64)))
}
