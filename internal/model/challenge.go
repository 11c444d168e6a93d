package model

import (
	"time"
)

type Difficulty string

const (
	DifficultyEasy   Difficulty = "Easy"
	DifficultyMedium Difficulty = "Medium"
	DifficultyHard   Difficulty = "Hard"
)

func (d Difficulty) Valid() bool {
	switch d {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return true
	}
	return false
}

const (
	MinChallengeScore = 1
	MaxChallengeScore = 10
)

// TestCase isExample 为 true 的用例在提交前可见，其余仅在提交时评测
type TestCase struct {
	Input              string     `json:"input"`
	Output             string     `json:"output"`
	IsExample bool   `json:"isExample"`
}

// swagger:model Challenge
type Challenge struct {
	UUIDBase
	Title              string     `gorm:"size:191;not null;uniqueIndex" json:"title"`
	Slug               string     `gorm:"size:191;index" json:"slug"`
	Description        string     `gorm:"type:text;not null" json:"description"`
	Constraints        string     `gorm:"type:text" json:"constraints"`
	Difficulty         Difficulty `gorm:"type:enum('Easy','Medium','Hard');not null" json:"difficulty"`
	Tags               []string   `gorm:"serializer:json;type:json" json:"tags"`
	Score              int        `gorm:"not null" json:"score"`
	AuthorID           uint       `gorm:"not null;index" json:"authorId"`
	Solution           string     `gorm:"type:mediumtext" json:"solution,omitempty"`
	SolutionLanguage   string     `gorm:"size:30" json:"solutionLanguage,omitempty"`
	TestCases          []TestCase `gorm:"serializer:json;type:json" json:"testCases"`
	Likes              VoteSet    `gorm:"serializer:json;type:json" json:"likes"`
	Dislikes           VoteSet    `gorm:"serializer:json;type:json" json:"dislikes"`
	SuccessfulAttempts int        `gorm:"not null;default:0" json:"successfulAttempts"`
	TotalAttempts      int        `gorm:"not null;default:0" json:"totalAttempts"`
	// Version 投票写回时的乐观锁版本号
	Version int `gorm:"not null;default:0" json:"-"`
}

func (Challenge) TableName() string {
	return "challenges"
}

// SelectCases runOnly 时只返回示例用例，否则按存储顺序返回全部
func (c *Challenge) SelectCases(runOnly bool) []TestCase {
	if !runOnly {
		return c.TestCases
	}
	cases := make([]TestCase, 0, len(c.TestCases))
	for _, tc := range c.TestCases {
		if tc.IsExample {
			cases = append(cases, tc)
		}
	}
	return cases
}

type SubmissionStatus string

const (
	SubmissionSuccess SubmissionStatus = "Success"
	SubmissionFail    SubmissionStatus = "Fail"
)

// Submission 提交记录，仅在正式提交（非 runOnly）时写入
type Submission struct {
	ID                 uint       `gorm:"primaryKey;autoIncrement" json:"id"`
	ChallengeID string           `gorm:"type:varchar(36);not null;index:idx_submission_user_challenge" json:"challengeId"`
	UserID             uint       `gorm:"not null;index:idx_submission_user_challenge" json:"userId"`
	Code               string     `gorm:"type:mediumtext;not null" json:"code"`
	Language           string     `gorm:"size:30;not null" json:"language"`
	Status             SubmissionStatus`gorm:"type:enum('Success','Fail');not null" json:"status"`
	PassedCount int              `json:"passedCount"`
	TotalCount         int        `json:"totalCount"`
	CreatedAt          time.Time  `gorm:"index" json:"submittedAt"`
}
