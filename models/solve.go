// file: models/solve.go
package models

import (
	"time"
)

// Solve 解题事实：某用户在某时刻解出某题。
// (user_id, challenge_id) 上的唯一索引是"一题最多解一次"的最终仲裁，
// 并发重复提交时由它保证只有一条记录、只加一次分。
type Solve struct {
	ID          uint64 `gorm:"primarykey"`
	UserID      uint32 `gorm:"uniqueIndex:unique_user_challenge;not null"`
	ChallengeID uint32 `gorm:"uniqueIndex:unique_user_challenge;not null"`
	// Points 固化解题当时的题目分值
	Points   uint `gorm:"not null"`
	SolvedAt time.Time
}

func (Solve) TableName() string {
	return "oxctf_solve"
}
