// file: services/solve_service.go
package services

import (
	"context"
	"errors"
	"time"

	"github.com/Arainf/0XCTF25/models"
	"gorm.io/gorm"
)

// SubmitOutcome 提交结果的带标签类型，调用方按枚举分支处理，
// 不靠松散字段判断。业务性冲突（已解出等）是正常结果，不是错误。
type SubmitOutcome string

const (
	SubmitRateLimited   SubmitOutcome = "rate_limited"
	SubmitNotFound      SubmitOutcome = "not_found"
	SubmitNotPublished  SubmitOutcome = "not_published"
	SubmitAlreadySolved SubmitOutcome = "already_solved"
	SubmitIncorrect     SubmitOutcome = "incorrect"
	SubmitCorrect       SubmitOutcome = "correct"
)

type SubmitResult struct {
	Outcome       SubmitOutcome
	PointsAwarded uint
	RetryAfter    time.Duration
}

// SolveService 提交判定流水线：限流 → 发布校验 → 判重 → 校验 Flag →
// 审计落库 → 事务内写 Solve 并加分。
type SolveService struct {
	DB       *gorm.DB
	Throttle Throttle
}

func NewSolveService(db *gorm.DB, throttle Throttle) *SolveService {
	return &SolveService{DB: db, Throttle: throttle}
}

// Submit 处理一次 Flag 提交。
// 返回的 error 仅代表存储/校验器内部故障；一切业务结局都在 SubmitResult 里。
func (s *SolveService) Submit(ctx context.Context, userID, challengeID uint32, attempt, ip, userAgent string, now time.Time) (SubmitResult, error) {
	ok, retryAfter, err := s.Throttle.Allow(ctx, userID, challengeID, now)
	if err != nil {
		return SubmitResult{}, err
	}
	if !ok {
		// 被限流的提交不进校验器，也不写审计记录
		return SubmitResult{Outcome: SubmitRateLimited, RetryAfter: retryAfter}, nil
	}

	var challenge models.Challenge
	if err := s.DB.WithContext(ctx).First(&challenge, challengeID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return SubmitResult{Outcome: SubmitNotFound}, nil
		}
		return SubmitResult{}, err
	}
	if challenge.State != models.ChallengeStatePublished {
		return SubmitResult{Outcome: SubmitNotPublished}, nil
	}

	// 已解出的直接短路，不再走校验器：省掉无谓的 bcrypt 开销，
	// 也避免解题之后还能探测校验耗时
	var prior models.Solve
	err = s.DB.WithContext(ctx).
		Where("user_id = ? AND challenge_id = ?", userID, challengeID).
		First(&prior).Error
	if err == nil {
		return SubmitResult{Outcome: SubmitAlreadySolved}, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return SubmitResult{}, err
	}

	correct, verifyErr := VerifyFlag(attempt, challenge.FlagHash)

	// 无论对错都追加审计记录，原文仅管理员可见
	submission := models.Submission{
		ChallengeID:   challengeID,
		UserID:        userID,
		SubmittedFlag: attempt,
		IsCorrect:     correct,
		IPAddress:     ip,
		UserAgent:     userAgent,
		SubmittedAt:   now,
	}
	if err := s.DB.WithContext(ctx).Create(&submission).Error; err != nil {
		return SubmitResult{}, err
	}
	if verifyErr != nil {
		return SubmitResult{}, verifyErr
	}
	if !correct {
		return SubmitResult{Outcome: SubmitIncorrect}, nil
	}

	// 写 Solve 和加分必须在同一事务内，不允许半提交。
	// 上面的判重只是快路径，(user, challenge) 唯一索引才是并发下的最终仲裁
	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		solve := models.Solve{
			UserID:      userID,
			ChallengeID: challengeID,
			Points:      challenge.Points,
			SolvedAt:    now,
		}
		if err := tx.Create(&solve).Error; err != nil {
			return err
		}
		if err := Award(tx, userID, int(challenge.Points)); err != nil {
			return err
		}
		return tx.Model(&models.Challenge{}).
			Where("id = ?", challengeID).
			UpdateColumn("solved_count", gorm.Expr("solved_count + ?", 1)).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			// 并发重复提交中输掉的一方：另一个请求已先拿到 Solve，
			// 事务整体回滚，不会二次加分，按"已解出"返回而非报错
			return SubmitResult{Outcome: SubmitAlreadySolved}, nil
		}
		return SubmitResult{}, err
	}

	return SubmitResult{Outcome: SubmitCorrect, PointsAwarded: challenge.Points}, nil
}
