package model

import (
	"time"
)

// Comment 每条评论/回复一行，ParentID 为空表示一级评论；回复层级不限
type Comment struct {
	Seq         uint      `gorm:"primaryKey;autoIncrement" json:"-"`
	ID          string    `gorm:"type:varchar(36);not null;uniqueIndex" json:"id"`
	ChallengeID string    `gorm:"type:varchar(36);not null;index" json:"challengeId"`
	ParentID    *string   `gorm:"type:varchar(36);index" json:"parentId"`
	AuthorID    uint      `gorm:"not null;index" json:"authorId"`
	Text        string    `gorm:"type:text;not null" json:"text"`
	Likes       VoteSet   `gorm:"serializer:json;type:json" json:"likes"`
	Dislikes    VoteSet   `gorm:"serializer:json;type:json" json:"dislikes"`
	Version     int       `gorm:"not null;default:0" json:"-"`
	CreatedAt   time.Time `json:"createdAt"`

	Replies CommentTree `gorm:"-" json:"replies"`
}

func (Comment) TableName() string {
	return "challenge_comments"
}

func NewComment(authorID uint, text string) *Comment {
	return &Comment{
		ID:        GenerateUUID(),
		Text:      text,
		AuthorID:  authorID,
		CreatedAt: time.Now(),
		Likes:     VoteSet{},
		Dislikes:  VoteSet{},
		Replies:   CommentTree{},
	}
}

// AddReply 挂到当前评论下，新回复在最前
func (c *Comment) AddReply(reply *Comment) {
	parentID := c.ID
	reply.ParentID = &parentID
	reply.ChallengeID = c.ChallengeID
	c.Replies.Prepend(reply)
}

func (c *Comment) ToggleVote(userID uint, like bool) VoteSummary {
	ToggleVote(&c.Likes, &c.Dislikes, userID, like)
	return NewVoteSummary(c.Likes, c.Dislikes)
}

// CommentTree 一组同级评论，最新的在最前面
type CommentTree []*Comment

// BuildCommentTree rows 需按最新在前排序；父评论不存在的行被丢弃
func BuildCommentTree(rows []*Comment) CommentTree {
	index := make(map[string]*Comment, len(rows))
	for _, c := range rows {
		c.Replies = CommentTree{}
		index[c.ID] = c
	}

	roots := CommentTree{}
	for _, c := range rows {
		if c.ParentID == nil {
			roots = append(roots, c)
			continue
		}
		if parent, ok := index[*c.ParentID]; ok && parent != c {
			parent.Replies = append(parent.Replies, c)
		}
	}
	return roots
}

// Prepend 新评论插入到最前
func (t *CommentTree) Prepend(c *Comment) {
	*t = append(CommentTree{c}, *t...)
}

// Walk 先序深度优先遍历，fn 返回 false 时停止
func (t CommentTree) Walk(fn func(c *Comment) bool) {
	stack := make([]*Comment, 0, len(t))
	for i := len(t) - 1; i >= 0; i-- {
		stack = append(stack, t[i])
	}

	for len(stack) > 0 {
		n := len(stack) - 1
		c := stack[n]
		stack = stack[:n]
		if c == nil {
			continue
		}
		if !fn(c) {
			return
		}
		for i := len(c.Replies) - 1; i >= 0; i-- {
			stack = append(stack, c.Replies[i])
		}
	}
}

// Find 在整棵树中查找评论（包括所有嵌套回复）
func (t CommentTree) Find(id string) *Comment {
	var found *Comment
	t.Walk(func(c *Comment) bool {
		if c.ID == id {
			found = c
			return false
		}
		return true
	})
	return found
}

// AuthorIDs 返回树中出现过的作者，去重
func (t CommentTree) AuthorIDs() []uint {
	seen := make(map[uint]struct{})
	var ids []uint
	t.Walk(func(c *Comment) bool {
		if _, ok := seen[c.AuthorID]; !ok {
			seen[c.AuthorID] = struct{}{}
			ids = append(ids, c.AuthorID)
		}
		return true
	})
	return ids
}

func (t CommentTree) Count() int {
	n := 0
	t.Walk(func(*Comment) bool {
		n++
		return true
	})
	return n
}
