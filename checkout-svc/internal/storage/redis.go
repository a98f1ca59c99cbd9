package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"nightpay/checkout-svc/internal/domain"
	"nightpay/checkout-svc/internal/service"
)

// RedisVault keeps issued tokens and per-order in-flight markers. Tokens
// expire on their own; consuming one deletes the key so it can never settle
// a second charge.
type RedisVault struct {
	Client   *redis.Client
	TokenTTL time.Duration
	LockTTL  time.Duration
}

func NewRedisVault(client *redis.Client, tokenTTL, lockTTL time.Duration) *RedisVault {
	return &RedisVault{Client: client, TokenTTL: tokenTTL, LockTTL: lockTTL}
}

func tokenKey(id string) string { return "token:" + id }

func orderLockKey(orderID string) string { return "charge:inflight:" + orderID }

func (v *RedisVault) SaveToken(ctx context.Context, token domain.PaymentToken) error {
	payload, err := json.Marshal(token)
	if err != nil {
		return err
	}
	return v.Client.Set(ctx, tokenKey(token.ID), payload, v.TokenTTL).Err()
}

func (v *RedisVault) Token(ctx context.Context, id string) (*domain.PaymentToken, error) {
	payload, err := v.Client.Get(ctx, tokenKey(id)).Bytes()
	if err == redis.Nil {
		return nil, service.ErrTokenNotFound
	}
	if err != nil {
		return nil, err
	}

	var token domain.PaymentToken
	if err := json.Unmarshal(payload, &token); err != nil {
		return nil, fmt.Errorf("corrupt token record %s: %w", id, err)
	}
	return &token, nil
}

func (v *RedisVault) ConsumeToken(ctx context.Context, id string) error {
	deleted, err := v.Client.Del(ctx, tokenKey(id)).Result()
	if err != nil {
		return err
	}
	if deleted == 0 {
		return service.ErrTokenNotFound
	}
	return nil
}

// AcquireOrderLock is a SETNX marker with a TTL so a crashed attempt cannot
// wedge the order forever.
func (v *RedisVault) AcquireOrderLock(ctx context.Context, orderID string) (bool, error) {
	return v.Client.SetNX(ctx, orderLockKey(orderID), "1", v.LockTTL).Result()
}

func (v *RedisVault) ReleaseOrderLock(ctx context.Context, orderID string) error {
	return v.Client.Del(ctx, orderLockKey(orderID)).Err()
}

var (
	_ service.TokenVault  = (*RedisVault)(nil)
	_ service.OrderLocker = (*RedisVault)(nil)
)
