// file: models/submission.go
package models

import (
	"time"
)

// Submission 对应 oxctf_submission 表：只追加的提交审计日志。
// 记录原始提交内容与来源信息，仅管理员可见，用于赛后作弊排查；
// 任何情况下不更新、不删除。被限流拒绝的提交不会产生记录。
type Submission struct {
	ID            uint64 `gorm:"primarykey"`
	ChallengeID   uint32 `gorm:"index;not null"`
	UserID        uint32 `gorm:"index;not null"`
	SubmittedFlag string `gorm:"size:255;not null"`
	IsCorrect     bool   `gorm:"not null"`
	IPAddress     string `gorm:"size:45"`
	UserAgent     string `gorm:"size:255"`
	SubmittedAt   time.Time
}

func (Submission) TableName() string {
	return "oxctf_submission"
}
