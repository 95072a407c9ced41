package scheduler

import (
	"context"
	"time"

	"github.com/bsm/redislock"
)

// Locker obtém locks distribuídos para que apenas uma instância execute o job
type Locker interface {
	Obtain(ctx context.Context, key string, ttl time.Duration) (Lock, error)
}

type Lock interface {
	Refresh(ctx context.Context, ttl time.Duration) error
	Release(ctx context.Context) error
}

type redisLocker struct {
	client *redislock.Client
}

// NewRedisLocker adapta o cliente do redislock. Retorna nil quando o Redis não está configurado
func NewRedisLocker(client *redislock.Client) Locker {
	if client == nil {
		return nil
	}
	return &redisLocker{client: client}
}

func (l *redisLocker) Obtain(ctx context.Context, key string, ttl time.Duration) (Lock, error) {
	lock, err := l.client.Obtain(ctx, key, ttl, nil)
	if err != nil {
		return nil, err
	}
	return &redisLock{lock: lock}, nil
}

type redisLock struct {
	lock *redislock.Lock
}

func (l *redisLock) Refresh(ctx context.Context, ttl time.Duration) error {
	return l.lock.Refresh(ctx, ttl, nil)
}

func (l *redisLock) Release(ctx context.Context) error {
	return l.lock.Release(ctx)
}
