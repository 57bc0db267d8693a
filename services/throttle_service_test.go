// file: services/throttle_service_test.go
package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryThrottleWindow(t *testing.T) {
	th := NewMemoryThrottle(10, 60*time.Second)
	ctx := context.Background()
	base := time.Date(2025, 10, 1, 12, 0, 0, 0, time.UTC)

	// 窗口内前 10 次放行
	for i := 0; i < 10; i++ {
		ok, _, err := th.Allow(ctx, 1, 1, base.Add(time.Duration(i)*time.Second))
		require.NoError(t, err)
		require.True(t, ok, "submission %d within limit", i+1)
	}

	// 第 11 次拒绝，retry-after 不超过窗口长度
	ok, retryAfter, err := th.Allow(ctx, 1, 1, base.Add(10*time.Second))
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Greater(t, retryAfter, time.Duration(0))
	assert.LessOrEqual(t, retryAfter, 60*time.Second)

	// 最早一次提交滑出窗口后，重新放行
	ok, _, err = th.Allow(ctx, 1, 1, base.Add(60*time.Second+time.Millisecond))
	require.NoError(t, err)
	assert.True(t, ok, "first submission after window elapses is accepted")
}

// 被拒绝的提交不计入窗口，不会把封禁越拖越长
func TestMemoryThrottleRejectedNotCounted(t *testing.T) {
	th := NewMemoryThrottle(2, 60*time.Second)
	ctx := context.Background()
	base := time.Date(2025, 10, 1, 12, 0, 0, 0, time.UTC)

	for i := 0; i < 2; i++ {
		ok, _, err := th.Allow(ctx, 1, 1, base)
		require.NoError(t, err)
		require.True(t, ok)
	}

	ok, _, err := th.Allow(ctx, 1, 1, base.Add(30*time.Second))
	require.NoError(t, err)
	require.False(t, ok)

	// 60 秒后最初两次滑出窗口，30 秒处被拒的那次不算数
	ok, _, err = th.Allow(ctx, 1, 1, base.Add(60*time.Second+time.Millisecond))
	require.NoError(t, err)
	assert.True(t, ok)
}

// 限流按 (user, challenge) 维度隔离
func TestMemoryThrottleKeyIsolation(t *testing.T) {
	th := NewMemoryThrottle(1, 60*time.Second)
	ctx := context.Background()
	now := time.Date(2025, 10, 1, 12, 0, 0, 0, time.UTC)

	ok, _, err := th.Allow(ctx, 1, 1, now)
	require.NoError(t, err)
	require.True(t, ok)

	ok, _, _ = th.Allow(ctx, 1, 1, now)
	assert.False(t, ok, "same pair throttled")

	ok, _, _ = th.Allow(ctx, 1, 2, now)
	assert.True(t, ok, "other challenge unaffected")

	ok, _, _ = th.Allow(ctx, 2, 1, now)
	assert.True(t, ok, "other user unaffected")
}

func TestMemoryThrottleRetryAfterShrinks(t *testing.T) {
	th := NewMemoryThrottle(1, 60*time.Second)
	ctx := context.Background()
	base := time.Date(2025, 10, 1, 12, 0, 0, 0, time.UTC)

	ok, _, err := th.Allow(ctx, 7, 7, base)
	require.NoError(t, err)
	require.True(t, ok)

	_, retry1, _ := th.Allow(ctx, 7, 7, base.Add(10*time.Second))
	_, retry2, _ := th.Allow(ctx, 7, 7, base.Add(40*time.Second))
	assert.Equal(t, 50*time.Second, retry1)
	assert.Equal(t, 20*time.Second, retry2)
}
