package service

import (
	"codewithme_backend/internal/model"
	"codewithme_backend/internal/util"
	"context"
	"strings"
)

// CommentService 维护挑战下的评论树
type CommentService struct {
	Challenges ChallengeStore
	Comments   CommentStore
	Users      UserStore
}

func NewCommentService(challenges ChallengeStore, comments CommentStore, users UserStore) *CommentService {
	return &CommentService{Challenges: challenges, Comments: comments, Users: users}
}

type CommentRequest struct {
	Text string `json:"text" binding:"required,max=2000"`
}

func (s *CommentService) tree(ctx context.Context, challengeID string) (model.CommentTree, error) {
	if _, err := s.Challenges.FindByID(ctx, challengeID); err != nil {
		return nil, err
	}
	return s.Comments.Tree(ctx, challengeID)
}

// AddComment 新的一级评论放在最前，返回完整评论树
func (s *CommentService) AddComment(ctx context.Context, challengeID string, authorID uint, text string) ([]*CommentView, error) {
	tree, err := s.tree(ctx, challengeID)
	if err != nil {
		return nil, err
	}

	c := model.NewComment(authorID, strings.TrimSpace(text))
	c.ChallengeID = challengeID
	if err := s.Comments.Create(ctx, c); err != nil {
		return nil, err
	}
	tree.Prepend(c)
	return resolvedCommentTree(ctx, s.Users, tree)
}

// AddReply 在整棵树中查找父评论（任意深度），新回复放在其回复列表最前
func (s *CommentService) AddReply(ctx context.Context, challengeID, parentID string, authorID uint, text string) ([]*CommentView, error) {
	tree, err := s.tree(ctx, challengeID)
	if err != nil {
		return nil, err
	}
	parent := tree.Find(parentID)
	if parent == nil {
		return nil, util.ErrCommentNotFound
	}

	reply := model.NewComment(authorID, strings.TrimSpace(text))
	parent.AddReply(reply)
	if err := s.Comments.Create(ctx, reply); err != nil {
		return nil, err
	}
	return resolvedCommentTree(ctx, s.Users, tree)
}

// ToggleVote 评论点赞/点踩，只写回目标评论；返回更新后的评论
func (s *CommentService) ToggleVote(ctx context.Context, challengeID, commentID string, userID uint, like bool) (*CommentView, error) {
	var target *model.Comment
	err := retryOnConflict(commentID, func() error {
		tree, err := s.tree(ctx, challengeID)
		if err != nil {
			return err
		}
		target = tree.Find(commentID)
		if target == nil {
			return util.ErrCommentNotFound
		}
		target.ToggleVote(userID, like)
		return s.Comments.SaveVotes(ctx, target)
	})
	if err != nil {
		return nil, err
	}

	authors, err := resolveAuthors(ctx, s.Users, model.CommentTree{target}.AuthorIDs())
	if err != nil {
		return nil, err
	}
	return newCommentView(target, authors), nil
}
