// file: services/hint_service.go
package services

import (
	"context"
	"errors"
	"time"

	"github.com/Arainf/0XCTF25/models"
	"gorm.io/gorm"
)

type HintOutcome string

const (
	HintNotFound    HintOutcome = "not_found"
	HintAlreadyUsed HintOutcome = "already_used"
	HintUnlocked    HintOutcome = "unlocked"
)

type HintResult struct {
	Outcome HintOutcome
	Text    string
	Cost    uint
}

type HintService struct {
	DB *gorm.DB
}

func NewHintService(db *gorm.DB) *HintService {
	return &HintService{DB: db}
}

// Unlock 解锁某题的第 hintIndex 条提示并按成本扣分。
// 扣分不设零下限，分数可以为负（明确的策略选择，见 DESIGN.md）。
// HintUsage 的 (user, challenge, hint_index) 唯一索引兜底并发重复解锁。
func (s *HintService) Unlock(ctx context.Context, userID, challengeID uint32, hintIndex uint, now time.Time) (HintResult, error) {
	// 未发布的题目对用户不存在，提示也一样
	var challenge models.Challenge
	if err := s.DB.WithContext(ctx).First(&challenge, challengeID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return HintResult{Outcome: HintNotFound}, nil
		}
		return HintResult{}, err
	}
	if challenge.State != models.ChallengeStatePublished {
		return HintResult{Outcome: HintNotFound}, nil
	}

	var hint models.Hint
	err := s.DB.WithContext(ctx).
		Where("challenge_id = ? AND hint_index = ?", challengeID, hintIndex).
		First(&hint).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return HintResult{Outcome: HintNotFound}, nil
		}
		return HintResult{}, err
	}

	// 写 HintUsage 与扣分同事务，唯一索引是重复消费的最终仲裁
	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		usage := models.HintUsage{
			UserID:      userID,
			ChallengeID: challengeID,
			HintIndex:   hintIndex,
			Cost:        hint.Cost,
			UsedAt:      now,
		}
		if err := tx.Create(&usage).Error; err != nil {
			return err
		}
		return Award(tx, userID, -int(hint.Cost))
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			// 已经付费解锁过，不二次扣分
			return HintResult{Outcome: HintAlreadyUsed}, nil
		}
		return HintResult{}, err
	}

	return HintResult{Outcome: HintUnlocked, Text: hint.Text, Cost: hint.Cost}, nil
}

// UnlockedHints 查询用户在某题上已解锁的提示索引集合，题目详情接口用
func (s *HintService) UnlockedHints(ctx context.Context, userID, challengeID uint32) (map[uint]bool, error) {
	var usages []models.HintUsage
	err := s.DB.WithContext(ctx).
		Where("user_id = ? AND challenge_id = ?", userID, challengeID).
		Find(&usages).Error
	if err != nil {
		return nil, err
	}
	unlocked := make(map[uint]bool, len(usages))
	for _, u := range usages {
		unlocked[u.HintIndex] = true
	}
	return unlocked, nil
}
