// Package redis guarda las claves de idempotencia del ledger en Redis.
package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/jhoicas/inventario-ledger/internal/application/ledger"
	"github.com/jhoicas/inventario-ledger/pkg/config"
)

var _ ledger.IdempotencyStore = (*IdempotencyStore)(nil)

const keyPrefix = "ledger:idem:"

// client subconjunto de *goredis.Client que usa el store.
type client interface {
	Get(ctx context.Context, key string) *goredis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *goredis.StatusCmd
}

// IdempotencyStore asocia una clave de idempotencia con el ID de la transacción registrada.
type IdempotencyStore struct {
	rdb client
	ttl time.Duration
}

// NewClient abre el cliente Redis y verifica la conexión.
func NewClient(ctx context.Context, cfg config.RedisConfig) (*goredis.Client, error) {
	rdb := goredis.NewClient(&goredis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return rdb, nil
}

// NewIdempotencyStore construye el store. ttl <= 0 guarda las claves sin expiración.
func NewIdempotencyStore(rdb client, ttl time.Duration) *IdempotencyStore {
	if ttl < 0 {
		ttl = 0
	}
	return &IdempotencyStore{rdb: rdb, ttl: ttl}
}

// Lookup devuelve el ID guardado o "" si la clave no existe.
func (s *IdempotencyStore) Lookup(ctx context.Context, key string) (string, error) {
	txID, err := s.rdb.Get(ctx, keyPrefix+key).Result()
	if errors.Is(err, goredis.Nil) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("redis get: %w", err)
	}
	return txID, nil
}

// Remember guarda la asociación clave -> txID.
func (s *IdempotencyStore) Remember(ctx context.Context, key, txID string) error {
	if err := s.rdb.Set(ctx, keyPrefix+key, txID, s.ttl).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}
