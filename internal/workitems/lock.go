// internal/workitems/lock.go
package workitems

import (
	"context"
	"fmt"
	"time"

	commonerrors "accelerator-workers/internal/common/errors"
	"accelerator-workers/internal/common/logger"
	"accelerator-workers/internal/models"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// releaseScript deletes the key only while it still holds our token.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// RedisLocker serializes renumbering per (startup, kind).
type RedisLocker struct {
	client *redis.Client
	ttl    time.Duration
	logger logger.Logger
}

func NewRedisLocker(client *redis.Client, ttl time.Duration, log logger.Logger) *RedisLocker {
	return &RedisLocker{client: client, ttl: ttl, logger: log}
}

func lockKey(startupID int64, kind models.WorkItemKind) string {
	return fmt.Sprintf("lock:startup:%d:%s", startupID, kind)
}

// Acquire takes the lock or fails with LOCK_NOT_ACQUIRED. The returned
// release func is safe to call after the TTL has expired.
func (l *RedisLocker) Acquire(ctx context.Context, startupID int64, kind models.WorkItemKind) (func(), error) {
	key := lockKey(startupID, kind)
	token := uuid.NewString()

	ok, err := l.client.SetNX(ctx, key, token, l.ttl).Result()
	if err != nil {
		return nil, fmt.Errorf("acquire %s: %w", key, err)
	}
	if !ok {
		return nil, commonerrors.NewLockNotAcquiredError(key)
	}

	return func() {
		if err := releaseScript.Run(context.Background(), l.client, []string{key}, token).Err(); err != nil {
			l.logger.WithError(err).Warn("lock release failed, held until ttl", map[string]interface{}{
				"key": key,
				"ttl": l.ttl.String(),
			})
		}
	}, nil
}
