package redis

import (
	"context"
	"errors"
	"testing"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClient struct {
	data   map[string]string
	ttls   map[string]time.Duration
	getErr error
	setErr error
}

func newFakeClient() *fakeClient {
	return &fakeClient{data: map[string]string{}, ttls: map[string]time.Duration{}}
}

func (f *fakeClient) Get(_ context.Context, key string) *goredis.StringCmd {
	if f.getErr != nil {
		return goredis.NewStringResult("", f.getErr)
	}
	v, ok := f.data[key]
	if !ok {
		return goredis.NewStringResult("", goredis.Nil)
	}
	return goredis.NewStringResult(v, nil)
}

func (f *fakeClient) Set(_ context.Context, key string, value interface{}, expiration time.Duration) *goredis.StatusCmd {
	if f.setErr != nil {
		return goredis.NewStatusResult("", f.setErr)
	}
	f.data[key] = value.(string)
	f.ttls[key] = expiration
	return goredis.NewStatusResult("OK", nil)
}

func TestIdempotencyStore_LookupAusente(t *testing.T) {
	s := NewIdempotencyStore(newFakeClient(), time.Hour)
	txID, err := s.Lookup(context.Background(), "SALE:p1:k1")
	require.NoError(t, err)
	assert.Empty(t, txID)
}

func TestIdempotencyStore_RememberYLookup(t *testing.T) {
	fc := newFakeClient()
	s := NewIdempotencyStore(fc, 2*time.Hour)
	ctx := context.Background()

	require.NoError(t, s.Remember(ctx, "SALE:p1:k1", "tx-1"))
	txID, err := s.Lookup(ctx, "SALE:p1:k1")
	require.NoError(t, err)
	assert.Equal(t, "tx-1", txID)
	assert.Equal(t, 2*time.Hour, fc.ttls[keyPrefix+"SALE:p1:k1"])
}

func TestIdempotencyStore_Errores(t *testing.T) {
	fc := newFakeClient()
	fc.getErr = errors.New("conexión rechazada")
	fc.setErr = errors.New("conexión rechazada")
	s := NewIdempotencyStore(fc, 0)

	_, err := s.Lookup(context.Background(), "k")
	assert.ErrorContains(t, err, "redis get")
	assert.ErrorContains(t, s.Remember(context.Background(), "k", "tx"), "redis set")
}
