package repository

import (
	"codewithme_backend/internal/model"
	"codewithme_backend/internal/util"
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

type ChallengeRepository struct {
	DB *gorm.DB
}

func NewChallengeRepository(db *gorm.DB) *ChallengeRepository {
	return &ChallengeRepository{DB: db}
}

// ChallengeFilter 列表筛选条件，零值表示不过滤
type ChallengeFilter struct {
	Difficulty model.Difficulty
	Tag        string
	Search     string
}

func (r *ChallengeRepository) Create(ctx context.Context, ch *model.Challenge) error {
	err := r.DB.WithContext(ctx).Create(ch).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return util.ErrDuplicateTitle
	}
	return err
}

func (r *ChallengeRepository) ExistsByTitle(ctx context.Context, title string) (bool, error) {
	var count int64
	err := r.DB.WithContext(ctx).Model(&model.Challenge{}).Where("title = ?", title).Count(&count).Error
	return count > 0, err
}

func (r *ChallengeRepository) FindByID(ctx context.Context, id string) (*model.Challenge, error) {
	if !model.IsUUID(id) {
		return nil, util.ErrChallengeNotFound
	}

	var ch model.Challenge
	err := r.DB.WithContext(ctx).Where("id = ?", id).First(&ch).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrChallengeNotFound
	}
	if err != nil {
		return nil, err
	}
	return &ch, nil
}

// List 最新的在前；列表不加载用例和参考答案
func (r *ChallengeRepository) List(ctx context.Context, f ChallengeFilter) ([]model.Challenge, error) {
	query := r.DB.WithContext(ctx).Model(&model.Challenge{}).
		Omit("solution", "test_cases")

	if f.Difficulty != "" {
		query = query.Where("difficulty = ?", f.Difficulty)
	}
	if f.Tag != "" {
		query = query.Where("JSON_CONTAINS(tags, JSON_QUOTE(?))", f.Tag)
	}
	if f.Search != "" {
		query = query.Where("title LIKE ?", "%"+f.Search+"%")
	}

	var challenges []model.Challenge
	err := query.Order("created_at DESC").Order("id DESC").Find(&challenges).Error
	return challenges, err
}

// Delete 物理删除挑战，同时清理评论和收藏引用；解题记录保留
func (r *ChallengeRepository) Delete(ctx context.Context, id string) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("id = ?", id).Delete(&model.Challenge{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return util.ErrChallengeNotFound
		}
		if err := tx.Where("challenge_id = ?", id).Delete(&model.Comment{}).Error; err != nil {
			return err
		}
		return tx.Where("challenge_id = ?", id).Delete(&model.SavedChallenge{}).Error
	})
}

// SaveVotes 写回挑战的点赞/点踩集合，版本号不一致时返回 ErrConcurrentUpdate
func (r *ChallengeRepository) SaveVotes(ctx context.Context, ch *model.Challenge) error {
	next := ch.Version + 1
	now := time.Now()

	res := r.DB.WithContext(ctx).
		Model(&model.Challenge{UUIDBase: model.UUIDBase{ID: ch.ID}}).
		Where("version = ?", ch.Version).
		Select("likes", "dislikes", "version", "updated_at").
		Updates(&model.Challenge{
			UUIDBase: model.UUIDBase{UpdatedAt: now},
			Likes:    ch.Likes,
			Dislikes: ch.Dislikes,
			Version:  next,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return util.ErrConcurrentUpdate
	}

	ch.Version = next
	ch.UpdatedAt = now
	return nil
}

// IncrementAttempts 原子累加尝试次数，不影响版本号
func (r *ChallengeRepository) IncrementAttempts(ctx context.Context, id string, success bool) error {
	updates := map[string]interface{}{
		"total_attempts": gorm.Expr("total_attempts + 1"),
	}
	if success {
		updates["successful_attempts"] = gorm.Expr("successful_attempts + 1")
	}
	return r.DB.WithContext(ctx).Model(&model.Challenge{}).Where("id = ?", id).UpdateColumns(updates).Error
}
