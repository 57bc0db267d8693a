// file: services/leaderboard_service_test.go
package services

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/Arainf/0XCTF25/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setScore(t *testing.T, db *gorm.DB, userID uint32, score int) {
	t.Helper()
	require.NoError(t, Award(db, userID, score))
}

func addSolve(t *testing.T, db *gorm.DB, userID, challengeID uint32, points uint) {
	t.Helper()
	require.NoError(t, db.Create(&models.Solve{
		UserID:      userID,
		ChallengeID: challengeID,
		Points:      points,
		SolvedAt:    time.Now(),
	}).Error)
}

func TestLeaderboardOrdering(t *testing.T) {
	db := newTestDB(t)
	svc := NewLeaderboardService(db)
	ctx := context.Background()

	alice := createTestUser(t, db, "alice", models.RoleUser)
	bob := createTestUser(t, db, "bob", models.RoleUser)
	carol := createTestUser(t, db, "carol", models.RoleUser)

	setScore(t, db, alice.ID, 300)
	setScore(t, db, bob.ID, 500)
	setScore(t, db, carol.ID, 300)

	// carol 与 alice 同分，carol 解题数更多，排在前面
	addSolve(t, db, alice.ID, 1, 300)
	addSolve(t, db, carol.ID, 1, 100)
	addSolve(t, db, carol.ID, 2, 200)
	addSolve(t, db, bob.ID, 3, 500)

	entries, err := svc.GetLeaderboard(ctx, 10)
	require.NoError(t, err)
	require.Len(t, entries, 3)

	assert.Equal(t, "bob", entries[0].Username)
	assert.Equal(t, "carol", entries[1].Username)
	assert.Equal(t, "alice", entries[2].Username)

	// 稠密序数排名：同分也拿到不同的连续名次
	assert.Equal(t, uint(1), entries[0].Rank)
	assert.Equal(t, uint(2), entries[1].Rank)
	assert.Equal(t, uint(3), entries[2].Rank)

	assert.Equal(t, 500, entries[0].Score)
	assert.Equal(t, uint(1), entries[0].SolveCount)
	assert.Equal(t, uint(2), entries[1].SolveCount)
}

// 同分同解题数时按注册时间升序，先注册者在前
func TestLeaderboardTieBreakByCreatedAt(t *testing.T) {
	db := newTestDB(t)
	svc := NewLeaderboardService(db)

	first := createTestUser(t, db, "first", models.RoleUser)
	require.NoError(t, db.Model(&models.User{}).Where("id = ?", first.ID).
		UpdateColumn("created_at", time.Now().Add(-time.Hour)).Error)
	second := createTestUser(t, db, "second", models.RoleUser)

	setScore(t, db, first.ID, 100)
	setScore(t, db, second.ID, 100)
	addSolve(t, db, first.ID, 1, 100)
	addSolve(t, db, second.ID, 1, 100)

	entries, err := svc.GetLeaderboard(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "first", entries[0].Username)
	assert.Equal(t, "second", entries[1].Username)
}

// 管理员不上榜、不参与排名
func TestLeaderboardExcludesAdmins(t *testing.T) {
	db := newTestDB(t)
	svc := NewLeaderboardService(db)
	ctx := context.Background()

	admin := createTestUser(t, db, "admin", models.RoleAdmin)
	setScore(t, db, admin.ID, 9999)
	player := createTestUser(t, db, "player", models.RoleUser)
	setScore(t, db, player.ID, 10)

	entries, err := svc.GetLeaderboard(ctx, 10)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "player", entries[0].Username)

	_, err = svc.GetUserRank(ctx, admin.ID)
	assert.ErrorIs(t, err, ErrNotRanked)
}

func TestGetUserRank(t *testing.T) {
	db := newTestDB(t)
	svc := NewLeaderboardService(db)
	ctx := context.Background()

	alice := createTestUser(t, db, "alice", models.RoleUser)
	bob := createTestUser(t, db, "bob", models.RoleUser)
	carol := createTestUser(t, db, "carol", models.RoleUser)
	dave := createTestUser(t, db, "dave", models.RoleUser)

	setScore(t, db, alice.ID, 500)
	setScore(t, db, bob.ID, 300)
	setScore(t, db, carol.ID, 300)
	setScore(t, db, dave.ID, 100)

	// rank = 分数严格更高的人数 + 1；同分者名次相同
	rank, err := svc.GetUserRank(ctx, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, uint(1), rank)

	rank, err = svc.GetUserRank(ctx, bob.ID)
	require.NoError(t, err)
	assert.Equal(t, uint(2), rank)

	rank, err = svc.GetUserRank(ctx, carol.ID)
	require.NoError(t, err)
	assert.Equal(t, uint(2), rank)

	rank, err = svc.GetUserRank(ctx, dave.ID)
	require.NoError(t, err)
	assert.Equal(t, uint(4), rank)
}

func TestGetUserRankUnknownUser(t *testing.T) {
	db := newTestDB(t)
	svc := NewLeaderboardService(db)

	_, err := svc.GetUserRank(context.Background(), 4242)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestLeaderboardLimit(t *testing.T) {
	db := newTestDB(t)
	svc := NewLeaderboardService(db)
	ctx := context.Background()

	for i := 1; i <= 12; i++ {
		u := createTestUser(t, db, fmt.Sprintf("u%d", i), models.RoleUser)
		setScore(t, db, u.ID, 10*i)
	}

	entries, err := svc.GetLeaderboard(ctx, 2)
	require.NoError(t, err)
	assert.Len(t, entries, 2)

	// 超过上限的 limit 截断到上限，而不是退回默认的 10 条
	entries, err = svc.GetLeaderboard(ctx, 101)
	require.NoError(t, err)
	assert.Len(t, entries, 12)
}
