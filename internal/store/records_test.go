package store

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

type item struct {
	ID string `json:"id"`
	N  int    `json:"n"`
}

func TestLoadListMissingKeyIsEmpty(t *testing.T) {
	got, err := LoadList[item](context.Background(), NewMemory(), "nobody:mintHistory")
	require.NoError(t, err)
	require.NotNil(t, got)
	require.Empty(t, got)
}

func TestSaveLoadList(t *testing.T) {
	ctx := context.Background()
	st := NewMemory()
	key := Key("0xabc", KeyMintHistory)
	require.NoError(t, SaveList(ctx, st, key, []item{{ID: "a", N: 1}, {ID: "b", N: 2}}))

	got, err := LoadList[item](ctx, st, key)
	require.NoError(t, err)
	require.Equal(t, []item{{ID: "a", N: 1}, {ID: "b", N: 2}}, got)
}

func TestMalformedDataReadsAsEmpty(t *testing.T) {
	ctx := context.Background()
	st := NewMemory()
	require.NoError(t, st.Put(ctx, "k:list", []byte("{not json")))
	require.NoError(t, st.Put(ctx, "k:null", []byte("null")))
	require.NoError(t, st.Put(ctx, "k:scalar", []byte("lots")))

	list, err := LoadList[item](ctx, st, "k:list")
	require.NoError(t, err)
	require.Empty(t, list)

	list, err = LoadList[item](ctx, st, "k:null")
	require.NoError(t, err)
	require.NotNil(t, list)

	v, err := LoadScalar(ctx, st, "k:scalar")
	require.NoError(t, err)
	require.Zero(t, v)
}

func TestScalarRoundTrip(t *testing.T) {
	ctx := context.Background()
	st := NewMemory()
	require.NoError(t, SaveScalar(ctx, st, "o:stakingEarnings", 1234567))
	v, err := LoadScalar(ctx, st, "o:stakingEarnings")
	require.NoError(t, err)
	require.Equal(t, float64(1234567), v)
}

func TestBackendErrorsPropagate(t *testing.T) {
	ctx := context.Background()
	st := NewMemory()
	require.NoError(t, st.Close())

	_, err := LoadList[item](ctx, st, "o:mintHistory")
	require.True(t, errors.Is(err, ErrClosed))
	_, err = LoadScalar(ctx, st, "o:stakingEarnings")
	require.True(t, errors.Is(err, ErrClosed))
	require.ErrorIs(t, st.Ping(ctx), ErrClosed)
}

func TestMemoryCopiesValues(t *testing.T) {
	ctx := context.Background()
	st := NewMemory()
	buf := []byte("abc")
	require.NoError(t, st.Put(ctx, "k", buf))
	buf[0] = 'z'
	got, err := st.Get(ctx, "k")
	require.NoError(t, err)
	require.Equal(t, "abc", string(got))
}

func TestNewIDPrefix(t *testing.T) {
	a, b := NewID("tx"), NewID("tx")
	require.NotEqual(t, a, b)
	require.Regexp(t, `^tx_[0-9a-z]{26}$`, a)
	require.Regexp(t, `^[0-9a-z]{26}$`, NewID(""))
}
