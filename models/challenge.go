// file: models/challenge.go
package models

import (
	"time"
)

type ChallengeState string
type ChallengeDifficulty string

const (
	ChallengeStatePublished ChallengeState = "published"
	ChallengeStateHidden    ChallengeState = "hidden"

	ChallengeDifficultyEasy   ChallengeDifficulty = "easy"
	ChallengeDifficultyMedium ChallengeDifficulty = "medium"
	ChallengeDifficultyHard   ChallengeDifficulty = "hard"
)

type Challenge struct {
	ID          uint32              `gorm:"primarykey"`
	Title       string              `gorm:"size:100;unique;not null"`
	Category    string              `gorm:"size:50;not null"`
	Author      string              `gorm:"size:50"`
	Description string              `gorm:"type:text;not null"`
	Difficulty  ChallengeDifficulty `gorm:"size:10;not null;default:'medium'"`
	// Points 为该题的固定分值，解出即一次性加到用户总分
	Points uint `gorm:"not null"`
	// FlagHash 是 bcrypt 哈希（盐在编码内），明文 Flag 不落库、不出接口
	FlagHash    string         `gorm:"size:255;not null"`
	State       ChallengeState `gorm:"size:10;not null;default:'hidden'"`
	SolvedCount uint           `gorm:"not null;default:0"`
	CreatedBy   uint32         `gorm:"not null"`
	Hints       []Hint         `gorm:"foreignKey:ChallengeID"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (Challenge) TableName() string {
	return "oxctf_challenge"
}
