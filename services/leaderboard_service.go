// file: services/leaderboard_service.go
package services

import (
	"context"
	"errors"

	"github.com/Arainf/0XCTF25/models"
	"gorm.io/gorm"
)

// ErrNotRanked 管理员不参与排名
var ErrNotRanked = errors.New("user is not ranked")

type LeaderboardEntry struct {
	Rank       uint   `json:"rank"`
	UserID     uint32 `json:"user_id"`
	Username   string `json:"username"`
	Score      int    `json:"score"`
	SolveCount uint   `json:"solve_count"`
}

// LeaderboardService 纯读侧视图：每次查询都从 User/Solve 表现算，
// 不落任何缓存表，排名从结构上不可能过期。
type LeaderboardService struct {
	DB *gorm.DB
}

func NewLeaderboardService(db *gorm.DB) *LeaderboardService {
	return &LeaderboardService{DB: db}
}

// GetLeaderboard 按 总分降序 → 解题数降序 → 注册时间升序 的全序排列，
// 名次是该排列中的序号（稠密序数排名：同分也拿到不同的连续名次）。
// 管理员账号不出现在榜上。
func (s *LeaderboardService) GetLeaderboard(ctx context.Context, limit int) ([]LeaderboardEntry, error) {
	if limit <= 0 {
		limit = 10
	}
	// 超出上限按上限截断，而不是退回默认值
	if limit > 100 {
		limit = 100
	}

	var entries []LeaderboardEntry
	err := s.DB.WithContext(ctx).
		Table("oxctf_user u").
		Select("u.id AS user_id, u.username, u.score, COUNT(s.id) AS solve_count").
		Joins("LEFT JOIN oxctf_solve s ON s.user_id = u.id").
		Where("u.role = ?", models.RoleUser).
		Group("u.id, u.username, u.score, u.created_at").
		Order("u.score DESC, solve_count DESC, u.created_at ASC").
		Limit(limit).
		Scan(&entries).Error
	if err != nil {
		return nil, err
	}

	for i := range entries {
		entries[i].Rank = uint(i + 1)
	}
	return entries, nil
}

// GetUserRank 单用户名次：比他分数严格更高的非管理员人数 + 1
func (s *LeaderboardService) GetUserRank(ctx context.Context, userID uint32) (uint, error) {
	var user models.User
	if err := s.DB.WithContext(ctx).First(&user, userID).Error; err != nil {
		return 0, err
	}
	if user.IsAdmin() {
		return 0, ErrNotRanked
	}

	var higher int64
	err := s.DB.WithContext(ctx).
		Model(&models.User{}).
		Where("role = ? AND score > ?", models.RoleUser, user.Score).
		Count(&higher).Error
	if err != nil {
		return 0, err
	}
	return uint(higher) + 1, nil
}
