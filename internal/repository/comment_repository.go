package repository

import (
	"codewithme_backend/internal/model"
	"codewithme_backend/internal/util"
	"context"

	"gorm.io/gorm"
)

type CommentRepository struct {
	DB *gorm.DB
}

func NewCommentRepository(db *gorm.DB) *CommentRepository {
	return &CommentRepository{DB: db}
}

// Tree 一次取出挑战下的全部评论，在内存中组装成树
func (r *CommentRepository) Tree(ctx context.Context, challengeID string) (model.CommentTree, error) {
	var rows []*model.Comment
	err := r.DB.WithContext(ctx).
		Where("challenge_id = ?", challengeID).
		Order("seq DESC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return model.BuildCommentTree(rows), nil
}

func (r *CommentRepository) Create(ctx context.Context, c *model.Comment) error {
	return r.DB.WithContext(ctx).Create(c).Error
}

// SaveVotes 只写回单条评论的投票，版本号不一致时返回 ErrConcurrentUpdate
func (r *CommentRepository) SaveVotes(ctx context.Context, c *model.Comment) error {
	next := c.Version + 1

	res := r.DB.WithContext(ctx).
		Model(&model.Comment{}).
		Where("id = ? AND version = ?", c.ID, c.Version).
		Select("likes", "dislikes", "version").
		Updates(&model.Comment{
			Likes:    c.Likes,
			Dislikes: c.Dislikes,
			Version:  next,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return util.ErrConcurrentUpdate
	}

	c.Version = next
	return nil
}
