package redis

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// Release only deletes the key if it still holds our token, so an
// expired lock reacquired by another process is never released by us.
const releaseLuaScript = `
if redis.call('GET', KEYS[1]) == ARGV[1] then
    return redis.call('DEL', KEYS[1])
end
return 0
`

// Lock is a best-effort distributed mutex on top of SET NX.
// Used to keep the automation sweep single-flight across processes.
type Lock struct {
	client *redis.Client
	key    string
	ttl    time.Duration
	token  string
}

// NewLock creates a lock on the given key. A nil client is allowed and
// makes Acquire always succeed (single-process deployments without Redis).
func NewLock(client *redis.Client, key string, ttl time.Duration) *Lock {
	return &Lock{
		client: client,
		key:    key,
		ttl:    ttl,
	}
}

// Acquire attempts to take the lock. Returns false when another holder
// owns it. Redis errors are returned so the caller can decide whether
// to fail open or closed.
func (l *Lock) Acquire(ctx context.Context) (bool, error) {
	if l.client == nil {
		return true, nil
	}
	token := uuid.NewString()
	ok, err := l.client.SetNX(ctx, l.key, token, l.ttl).Result()
	if err != nil {
		return false, err
	}
	if ok {
		l.token = token
	}
	return ok, nil
}

// Release frees the lock if this instance still holds it.
func (l *Lock) Release(ctx context.Context) error {
	if l.client == nil || l.token == "" {
		return nil
	}
	defer func() { l.token = "" }()
	return l.client.Eval(ctx, releaseLuaScript, []string{l.key}, l.token).Err()
}
