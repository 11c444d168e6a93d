package repository

import (
	"codewithme_backend/internal/model"
	"context"

	"gorm.io/gorm"
)

type SubmissionRepository struct {
	DB *gorm.DB
}

func NewSubmissionRepository(db *gorm.DB) *SubmissionRepository {
	return &SubmissionRepository{DB: db}
}

func (r *SubmissionRepository) Create(ctx context.Context, s *model.Submission) error {
	return r.DB.WithContext(ctx).Create(s).Error
}

func (r *SubmissionRepository) ListForUser(ctx context.Context, userID uint, challengeID string, limit int) ([]model.Submission, error) {
	submissions := []model.Submission{}
	err := r.DB.WithContext(ctx).
		Where("user_id = ? AND challenge_id = ?", userID, challengeID).
		Order("created_at DESC").
		Order("id DESC").
		Limit(limit).
		Find(&submissions).Error
	return submissions, err
}
