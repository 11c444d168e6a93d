package repository

import (
	"codewithme_backend/internal/model"
	"codewithme_backend/internal/util"
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type UserRepository struct {
	DB *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{DB: db}
}

func (r *UserRepository) FindByID(ctx context.Context, id uint) (*model.User, error) {
	var user model.User
	err := r.DB.WithContext(ctx).First(&user, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) FindByIDs(ctx context.Context, ids []uint) ([]model.User, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var users []model.User
	err := r.DB.WithContext(ctx).Where("id IN ?", ids).Find(&users).Error
	return users, err
}

// FirstOrCreateByEmail 供本地脚本准备数据使用
func (r *UserRepository) FirstOrCreateByEmail(ctx context.Context, user *model.User) error {
	return r.DB.WithContext(ctx).Where("email = ?", user.Email).FirstOrCreate(user).Error
}

// TopByScore 按积分降序，积分相同按 id 升序保证稳定
func (r *UserRepository) TopByScore(ctx context.Context, limit int) ([]model.User, error) {
	var users []model.User
	err := r.DB.WithContext(ctx).
		Order("score DESC").
		Order("id ASC").
		Limit(limit).
		Find(&users).Error
	return users, err
}

// AwardSolve 在同一事务里插入解题记录并加分。
// 解题记录依赖唯一索引 (user_id, challenge_id)，已存在时不加分，返回 false
func (r *UserRepository) AwardSolve(ctx context.Context, userID uint, challengeID string, points int) (bool, error) {
	awarded := false
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&model.SolvedChallenge{
			UserID:      userID,
			ChallengeID: challengeID,
			SolvedAt:    time.Now(),
		})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return nil
		}

		upd := tx.Model(&model.User{}).Where("id = ?", userID).
			UpdateColumn("score", gorm.Expr("score + ?", points))
		if upd.Error != nil {
			return upd.Error
		}
		if upd.RowsAffected == 0 {
			return util.ErrUserNotFound
		}
		awarded = true
		return nil
	})
	if err != nil {
		return false, err
	}
	return awarded, nil
}

func (r *UserRepository) SolvedChallengeIDs(ctx context.Context, userID uint) (map[string]bool, error) {
	var ids []string
	err := r.DB.WithContext(ctx).Model(&model.SolvedChallenge{}).
		Where("user_id = ?", userID).
		Pluck("challenge_id", &ids).Error
	if err != nil {
		return nil, err
	}

	solved := make(map[string]bool, len(ids))
	for _, id := range ids {
		solved[id] = true
	}
	return solved, nil
}

// ToggleSaved 已收藏则取消，否则收藏；返回操作后的状态
func (r *UserRepository) ToggleSaved(ctx context.Context, userID uint, challengeID string) (bool, error) {
	saved := false
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("user_id = ? AND challenge_id = ?", userID, challengeID).Delete(&model.SavedChallenge{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected > 0 {
			return nil
		}
		saved = true
		return tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&model.SavedChallenge{
			UserID:      userID,
			ChallengeID: challengeID,
		}).Error
	})
	return saved, err
}

func (r *UserRepository) SavedChallengeIDs(ctx context.Context, userID uint) ([]string, error) {
	ids := []string{}
	err := r.DB.WithContext(ctx).Model(&model.SavedChallenge{}).
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Pluck("challenge_id", &ids).Error
	return ids, err
}
