package model

import (
	"time"
)

// swagger:model User
type User struct {
	BaseModel
	Username string `gorm:"size:100;not null" json:"username"`
	Email    string `gorm:"size:100;unique;not null" json:"email"`
	Avatar   string `gorm:"size:255" json:"profilePicture"`
	Score    int    `gorm:"not null;default:0" json:"score"` // 只增不减，解题时累加
}

func (User) TableName() string {
	return "users"
}

// SolvedChallenge 同一用户同一挑战只允许一条记录，用于保证积分只加一次
type SolvedChallenge struct {
	ID          uint      `gorm:"primaryKey;autoIncrement" json:"-"`
	UserID      uint      `gorm:"not null;uniqueIndex:idx_solved_user_challenge" json:"userId"`
	ChallengeID string    `gorm:"type:varchar(36);not null;uniqueIndex:idx_solved_user_challenge" json:"challengeId"`
	SolvedAt    time.Time `gorm:"not null" json:"solvedAt"`
}

type SavedChallenge struct {
	ID          uint      `gorm:"primaryKey;autoIncrement" json:"-"`
	UserID      uint      `gorm:"not null;uniqueIndex:idx_saved_user_challenge" json:"userId"`
	ChallengeID string    `gorm:"type:varchar(36);not null;uniqueIndex:idx_saved_user_challenge" json:"challengeId"`
	CreatedAt   time.Time `json:"createdAt"`
}

// LeaderboardEntry 排行榜中的一行
type LeaderboardEntry struct {
	Rank           int    `json:"rank"`
	UserID         uint   `json:"userId"`
	Username       string `json:"username"`
	ProfilePicture string `json:"profilePicture"`
	Score          int    `json:"score"`
}
