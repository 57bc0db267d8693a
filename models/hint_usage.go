// file: models/hint_usage.go
package models

import (
	"time"
)

// HintUsage 提示消费事实：每个 (user, challenge, hint_index) 最多一条，
// 唯一索引兜底并发重复解锁，扣分只发生一次。
type HintUsage struct {
	ID          uint64 `gorm:"primarykey"`
	UserID      uint32 `gorm:"uniqueIndex:unique_user_challenge_hint;not null"`
	ChallengeID uint32 `gorm:"uniqueIndex:unique_user_challenge_hint;not null"`
	HintIndex   uint   `gorm:"uniqueIndex:unique_user_challenge_hint;not null"`
	// Cost 固化解锁当时的提示价格
	Cost   uint `gorm:"not null"`
	UsedAt time.Time
}

func (HintUsage) TableName() string {
	return "oxctf_hint_usage"
}
