// file: services/throttle_service.go
package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	DefaultThrottleLimit  = 10
	DefaultThrottleWindow = 60 * time.Second
)

// Throttle 提交限流抽象，按 (user, challenge) 维度计数。
// 单实例部署用 MemoryThrottle，多实例部署换 RedisThrottle，调用方无感知。
// 返回 ok=false 时附带距窗口重置的等待时长；err 非空表示后端故障，
// 该次请求不计入窗口，由调用方按内部错误处理。
type Throttle interface {
	Allow(ctx context.Context, userID, challengeID uint32, now time.Time) (ok bool, retryAfter time.Duration, err error)
}

// MemoryThrottle 进程内滑动窗口计数器。
// 进程重启即清空窗口，属于接受的可用性取舍：审计仍以 Submission 表为准。
type MemoryThrottle struct {
	mu     sync.Mutex
	limit  int
	window time.Duration
	hits   map[string][]time.Time
}

func NewMemoryThrottle(limit int, window time.Duration) *MemoryThrottle {
	if limit <= 0 {
		limit = DefaultThrottleLimit
	}
	if window <= 0 {
		window = DefaultThrottleWindow
	}
	return &MemoryThrottle{
		limit:  limit,
		window: window,
		hits:   make(map[string][]time.Time),
	}
}

func (t *MemoryThrottle) Allow(ctx context.Context, userID, challengeID uint32, now time.Time) (bool, time.Duration, error) {
	key := fmt.Sprintf("%d:%d", userID, challengeID)

	t.mu.Lock()
	defer t.mu.Unlock()

	// 剔除已滑出窗口的记录
	cutoff := now.Add(-t.window)
	kept := t.hits[key][:0]
	for _, ts := range t.hits[key] {
		if ts.After(cutoff) {
			kept = append(kept, ts)
		}
	}

	if len(kept) >= t.limit {
		t.hits[key] = kept
		// 最早的一次滑出窗口后即可再提交
		retryAfter := kept[0].Add(t.window).Sub(now)
		return false, retryAfter, nil
	}

	// 只有放行的提交计入窗口，被拒绝的不延长封禁
	t.hits[key] = append(kept, now)
	return true, 0, nil
}

// RedisThrottle 固定窗口计数器，INCR + EXPIRE，多实例共享。
type RedisThrottle struct {
	rdb    *redis.Client
	limit  int
	window time.Duration
}

func NewRedisThrottle(rdb *redis.Client, limit int, window time.Duration) *RedisThrottle {
	if limit <= 0 {
		limit = DefaultThrottleLimit
	}
	if window <= 0 {
		window = DefaultThrottleWindow
	}
	return &RedisThrottle{rdb: rdb, limit: limit, window: window}
}

func (t *RedisThrottle) Allow(ctx context.Context, userID, challengeID uint32, now time.Time) (bool, time.Duration, error) {
	key := fmt.Sprintf("throttle:%d:%d", userID, challengeID)

	n, err := t.rdb.Incr(ctx, key).Result()
	if err != nil {
		// Redis 故障按内部错误上抛，不计入窗口
		return false, 0, err
	}
	if n == 1 {
		if err := t.rdb.Expire(ctx, key, t.window).Err(); err != nil {
			return false, 0, err
		}
	}

	if n > int64(t.limit) {
		ttl, err := t.rdb.TTL(ctx, key).Result()
		if err != nil {
			return false, 0, err
		}
		if ttl < 0 {
			// 计数键残留且没有过期时间（EXPIRE 失败或进程在两条命令之间中断）。
			// 必须重新挂上过期时间，否则这对 (user, challenge) 会被永久封禁
			if err := t.rdb.Expire(ctx, key, t.window).Err(); err != nil {
				return false, 0, err
			}
			ttl = t.window
		}
		return false, ttl, nil
	}
	return true, 0, nil
}
