// file: models/hint.go
package models

import (
	"time"
)

// Hint 题目的有序提示，hint_index 从 0 开始
type Hint struct {
	ID          uint32 `gorm:"primarykey"`
	ChallengeID uint32 `gorm:"uniqueIndex:unique_challenge_hint;not null"`
	HintIndex   uint   `gorm:"uniqueIndex:unique_challenge_hint;not null"`
	Text        string `gorm:"type:text;not null"`
	Cost        uint   `gorm:"not null"`
	CreatedAt   time.Time
}

func (Hint) TableName() string {
	return "oxctf_hint"
}
