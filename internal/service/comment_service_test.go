package service

import (
	"context"
	"errors"
	"testing"

	"codewithme_backend/internal/model"
	"codewithme_backend/internal/util"
)

type commentFixture struct {
	svc      *CommentService
	comments *fakeCommentStore
	ch       *model.Challenge
}

func newCommentFixture() *commentFixture {
	store := newFakeChallengeStore()
	users := newFakeUserStore(
		model.User{BaseModel: model.BaseModel{ID: 1}, Username: "ada"},
		model.User{BaseModel: model.BaseModel{ID: 2}, Username: "linus"},
	)
	comments := &fakeCommentStore{}
	ch := store.put(&model.Challenge{Title: "Discuss", AuthorID: 1})
	return &commentFixture{
		svc:      NewCommentService(store, comments, users),
		comments: comments,
		ch:       ch,
	}
}

func (f *commentFixture) tree(t *testing.T) model.CommentTree {
	t.Helper()
	tree, err := f.comments.Tree(context.Background(), f.ch.ID)
	if err != nil {
		t.Fatalf("Tree: %v", err)
	}
	return tree
}

func TestAddCommentNewestFirst(t *testing.T) {
	f := newCommentFixture()
	ctx := context.Background()

	if _, err := f.svc.AddComment(ctx, f.ch.ID, 1, "first"); err != nil {
		t.Fatalf("AddComment: %v", err)
	}
	views, err := f.svc.AddComment(ctx, f.ch.ID, 2, "  second  ")
	if err != nil {
		t.Fatalf("AddComment: %v", err)
	}
	if len(views) != 2 || views[0].Text != "second" || views[1].Text != "first" {
		t.Fatalf("views = %+v", views)
	}
	if views[0].Author.Username != "linus" || views[0].Replies == nil || views[0].Likes == nil {
		t.Fatalf("view = %+v", views[0])
	}

	stored := f.tree(t)
	if len(stored) != 2 || stored[0].Text != "second" {
		t.Fatalf("stored order = %+v", stored)
	}
}

func TestAddReplyAtAnyDepth(t *testing.T) {
	f := newCommentFixture()
	ctx := context.Background()

	views, err := f.svc.AddComment(ctx, f.ch.ID, 1, "A")
	if err != nil {
		t.Fatalf("AddComment: %v", err)
	}
	a := views[0].ID

	views, err = f.svc.AddReply(ctx, f.ch.ID, a, 2, "B")
	if err != nil {
		t.Fatalf("reply to A: %v", err)
	}
	b := views[0].Replies[0].ID

	views, err = f.svc.AddReply(ctx, f.ch.ID, b, 1, "C")
	if err != nil {
		t.Fatalf("reply to B: %v", err)
	}
	c := views[0].Replies[0].Replies
	if len(c) != 1 || c[0].Text != "C" || c[0].Author.Username != "ada" {
		t.Fatalf("nested reply = %+v", c)
	}

	stored := f.tree(t)
	if len(stored) != 1 || stored.Count() != 3 {
		t.Fatalf("tree shape wrong: top=%d total=%d", len(stored), stored.Count())
	}
	if row := f.comments.find(c[0].ID); row == nil || row.ParentID == nil || *row.ParentID != b {
		t.Fatalf("reply row = %+v", row)
	}
}

func TestAddReplyDeepThread(t *testing.T) {
	f := newCommentFixture()
	ctx := context.Background()

	views, err := f.svc.AddComment(ctx, f.ch.ID, 1, "root")
	if err != nil {
		t.Fatalf("AddComment: %v", err)
	}
	parent := views[0].ID
	const depth = 150
	for i := 0; i < depth; i++ {
		reply := model.NewComment(2, "deeper")
		reply.ChallengeID = f.ch.ID
		reply.ParentID = &parent
		if err := f.comments.Create(ctx, reply); err != nil {
			t.Fatalf("Create: %v", err)
		}
		parent = reply.ID
	}

	if _, err := f.svc.AddReply(ctx, f.ch.ID, parent, 1, "bottom"); err != nil {
		t.Fatalf("reply at depth %d: %v", depth+1, err)
	}
	if got := f.tree(t).Count(); got != depth+2 {
		t.Fatalf("Count() = %d, want %d", got, depth+2)
	}
}

func TestAddReplyUnknownParent(t *testing.T) {
	f := newCommentFixture()

	_, err := f.svc.AddReply(context.Background(), f.ch.ID, model.GenerateUUID(), 1, "lost")
	if !errors.Is(err, util.ErrCommentNotFound) {
		t.Fatalf("err = %v, want comment not found", err)
	}
	if f.comments.creates != 0 {
		t.Fatal("row written for a missing parent")
	}
}

func TestAddReplyParentFromOtherChallenge(t *testing.T) {
	f := newCommentFixture()
	other := f.comments.insert(model.GenerateUUID(), nil, 1, "elsewhere")

	_, err := f.svc.AddReply(context.Background(), f.ch.ID, other.ID, 1, "cross")
	if !errors.Is(err, util.ErrCommentNotFound) {
		t.Fatalf("err = %v, want comment not found", err)
	}
}

func TestCommentOnMissingChallenge(t *testing.T) {
	f := newCommentFixture()
	if _, err := f.svc.AddComment(context.Background(), model.GenerateUUID(), 1, "x"); !errors.Is(err, util.ErrChallengeNotFound) {
		t.Fatalf("err = %v", err)
	}
	if f.comments.creates != 0 {
		t.Fatal("row written for a missing challenge")
	}
}

func TestToggleCommentVote(t *testing.T) {
	f := newCommentFixture()
	ctx := context.Background()

	root := f.comments.insert(f.ch.ID, nil, 1, "A")
	reply := f.comments.insert(f.ch.ID, root, 2, "B").ID

	view, err := f.svc.ToggleVote(ctx, f.ch.ID, reply, 1, true)
	if err != nil {
		t.Fatalf("like: %v", err)
	}
	if view.ID != reply || len(view.Likes) != 1 || view.Author.Username != "linus" {
		t.Fatalf("view = %+v", view)
	}

	view, err = f.svc.ToggleVote(ctx, f.ch.ID, reply, 1, false)
	if err != nil {
		t.Fatalf("dislike: %v", err)
	}
	if len(view.Likes) != 0 || len(view.Dislikes) != 1 {
		t.Fatalf("votes not exclusive: %+v", view)
	}

	view, err = f.svc.ToggleVote(ctx, f.ch.ID, reply, 1, false)
	if err != nil {
		t.Fatalf("undo dislike: %v", err)
	}
	if len(view.Likes) != 0 || len(view.Dislikes) != 0 {
		t.Fatalf("second toggle did not clear: %+v", view)
	}

	stored := f.comments.find(reply)
	if stored == nil || len(stored.Dislikes) != 0 || stored.Version != 3 {
		t.Fatalf("stored reply = %+v", stored)
	}
	if untouched := f.comments.find(root.ID); untouched.Version != 0 {
		t.Fatalf("parent row rewritten: %+v", untouched)
	}
}

func TestToggleCommentVoteUnknownComment(t *testing.T) {
	f := newCommentFixture()
	if _, err := f.svc.ToggleVote(context.Background(), f.ch.ID, "nope", 1, true); !errors.Is(err, util.ErrCommentNotFound) {
		t.Fatalf("err = %v", err)
	}
}

func TestToggleCommentVoteRetriesOnConflict(t *testing.T) {
	f := newCommentFixture()
	ctx := context.Background()
	c := f.comments.insert(f.ch.ID, nil, 1, "busy")

	f.comments.conflicts = 2
	view, err := f.svc.ToggleVote(ctx, f.ch.ID, c.ID, 2, true)
	if err != nil {
		t.Fatalf("ToggleVote: %v", err)
	}
	if len(view.Likes) != 1 || f.comments.saves != 1 {
		t.Fatalf("likes = %v, saves = %d", view.Likes, f.comments.saves)
	}

	f.comments.conflicts = maxEngagementAttempts
	if _, err := f.svc.ToggleVote(ctx, f.ch.ID, c.ID, 1, true); !errors.Is(err, util.ErrConcurrentUpdate) {
		t.Fatalf("err = %v, want concurrent update", err)
	}
	if got := f.comments.find(c.ID).Likes; len(got) != 1 {
		t.Fatalf("failed toggle leaked a vote: %v", got)
	}
}
