package service

import (
	"context"
	"encoding/json"
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"codewithme_backend/internal/model"
	"codewithme_backend/internal/repository"
	"codewithme_backend/internal/util"
	"codewithme_backend/pkg/executor"
)

// fakeChallengeStore 内存实现，读写都做深拷贝以模拟持久化
type fakeChallengeStore struct {
	mu         sync.Mutex
	items      map[string]*model.Challenge
	seq        int
	conflicts  int // 接下来 SaveVotes 要模拟的冲突次数
	saves      int
	attempts   map[string]int
	successful map[string]int
}

func newFakeChallengeStore() *fakeChallengeStore {
	return &fakeChallengeStore{
		items:      make(map[string]*model.Challenge),
		attempts:   make(map[string]int),
		successful: make(map[string]int),
	}
}

func cloneChallenge(src *model.Challenge) *model.Challenge {
	raw, err := json.Marshal(src)
	if err != nil {
		panic(err)
	}
	var dst model.Challenge
	if err := json.Unmarshal(raw, &dst); err != nil {
		panic(err)
	}
	dst.Version = src.Version
	dst.Solution = src.Solution
	dst.SolutionLanguage = src.SolutionLanguage
	return &dst
}

func (f *fakeChallengeStore) put(ch *model.Challenge) *model.Challenge {
	f.mu.Lock()
	defer f.mu.Unlock()
	if ch.ID == "" {
		ch.ID = model.GenerateUUID()
	}
	if ch.CreatedAt.IsZero() {
		f.seq++
		ch.CreatedAt = time.Date(2024, 1, 1, 0, 0, f.seq, 0, time.UTC)
	}
	f.items[ch.ID] = cloneChallenge(ch)
	return ch
}

func (f *fakeChallengeStore) get(id string) *model.Challenge {
	f.mu.Lock()
	defer f.mu.Unlock()
	ch, ok := f.items[id]
	if !ok {
		return nil
	}
	return cloneChallenge(ch)
}

func (f *fakeChallengeStore) Create(ctx context.Context, ch *model.Challenge) error {
	f.mu.Lock()
	for _, existing := range f.items {
		if existing.Title == ch.Title {
			f.mu.Unlock()
			return util.ErrDuplicateTitle
		}
	}
	f.mu.Unlock()
	f.put(ch)
	return nil
}

func (f *fakeChallengeStore) ExistsByTitle(ctx context.Context, title string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, ch := range f.items {
		if ch.Title == title {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeChallengeStore) FindByID(ctx context.Context, id string) (*model.Challenge, error) {
	if ch := f.get(id); ch != nil {
		return ch, nil
	}
	return nil, util.ErrChallengeNotFound
}

func (f *fakeChallengeStore) List(ctx context.Context, filter repository.ChallengeFilter) ([]model.Challenge, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []model.Challenge
	for _, ch := range f.items {
		if filter.Difficulty != "" && ch.Difficulty != filter.Difficulty {
			continue
		}
		if filter.Search != "" && !strings.Contains(ch.Title, filter.Search) {
			continue
		}
		out = append(out, *cloneChallenge(ch))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (f *fakeChallengeStore) Delete(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.items[id]; !ok {
		return util.ErrChallengeNotFound
	}
	delete(f.items, id)
	return nil
}

func (f *fakeChallengeStore) SaveVotes(ctx context.Context, ch *model.Challenge) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	stored, ok := f.items[ch.ID]
	if !ok {
		return util.ErrChallengeNotFound
	}
	if f.conflicts > 0 {
		f.conflicts--
		stored.Version++
		return util.ErrConcurrentUpdate
	}
	if stored.Version != ch.Version {
		return util.ErrConcurrentUpdate
	}
	f.saves++
	ch.Version++
	next := cloneChallenge(ch)
	next.TotalAttempts = stored.TotalAttempts
	next.SuccessfulAttempts = stored.SuccessfulAttempts
	f.items[ch.ID] = next
	return nil
}

func (f *fakeChallengeStore) IncrementAttempts(ctx context.Context, id string, success bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.attempts[id]++
	if success {
		f.successful[id]++
	}
	if ch, ok := f.items[id]; ok {
		ch.TotalAttempts++
		if success {
			ch.SuccessfulAttempts++
		}
	}
	return nil
}

// fakeCommentStore 与真实表一样按行保存，Tree 每次重新组装
type fakeCommentStore struct {
	mu        sync.Mutex
	rows      []*model.Comment
	seq       uint
	conflicts int
	creates   int
	saves     int
}

func cloneComment(src *model.Comment) *model.Comment {
	cp := *src
	cp.Likes = append(model.VoteSet{}, src.Likes...)
	cp.Dislikes = append(model.VoteSet{}, src.Dislikes...)
	if src.ParentID != nil {
		parentID := *src.ParentID
		cp.ParentID = &parentID
	}
	cp.Replies = nil
	return &cp
}

func (f *fakeCommentStore) Tree(ctx context.Context, challengeID string) (model.CommentTree, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var rows []*model.Comment
	for i := len(f.rows) - 1; i >= 0; i-- {
		if f.rows[i].ChallengeID == challengeID {
			rows = append(rows, cloneComment(f.rows[i]))
		}
	}
	return model.BuildCommentTree(rows), nil
}

func (f *fakeCommentStore) Create(ctx context.Context, c *model.Comment) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.seq++
	c.Seq = f.seq
	f.creates++
	f.rows = append(f.rows, cloneComment(c))
	return nil
}

func (f *fakeCommentStore) SaveVotes(ctx context.Context, c *model.Comment) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, row := range f.rows {
		if row.ID != c.ID {
			continue
		}
		if f.conflicts > 0 {
			f.conflicts--
			row.Version++
			return util.ErrConcurrentUpdate
		}
		if row.Version != c.Version {
			return util.ErrConcurrentUpdate
		}
		f.saves++
		c.Version++
		f.rows[i] = cloneComment(c)
		return nil
	}
	return util.ErrCommentNotFound
}

// insert 直接写入一行，用于准备测试数据
func (f *fakeCommentStore) insert(challengeID string, parent *model.Comment, authorID uint, text string) *model.Comment {
	c := model.NewComment(authorID, text)
	c.ChallengeID = challengeID
	if parent != nil {
		parent.AddReply(c)
	}
	_ = f.Create(context.Background(), c)
	return c
}

func (f *fakeCommentStore) find(id string) *model.Comment {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, row := range f.rows {
		if row.ID == id {
			return cloneComment(row)
		}
	}
	return nil
}

type fakeUserStore struct {
	mu     sync.Mutex
	users  map[uint]*model.User
	solved map[uint]map[string]bool
	saved  map[uint][]string
	err    error
}

func newFakeUserStore(users ...model.User) *fakeUserStore {
	f := &fakeUserStore{
		users:  make(map[uint]*model.User),
		solved: make(map[uint]map[string]bool),
		saved:  make(map[uint][]string),
	}
	for i := range users {
		u := users[i]
		f.users[u.ID] = &u
	}
	return f
}

func (f *fakeUserStore) score(id uint) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.users[id].Score
}

func (f *fakeUserStore) FindByID(ctx context.Context, id uint) (*model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return nil, util.ErrUserNotFound
	}
	cp := *u
	return &cp, nil
}

func (f *fakeUserStore) FindByIDs(ctx context.Context, ids []uint) ([]model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	var out []model.User
	for _, id := range ids {
		if u, ok := f.users[id]; ok {
			out = append(out, *u)
		}
	}
	return out, nil
}

func (f *fakeUserStore) TopByScore(ctx context.Context, limit int) ([]model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []model.User
	for _, u := range f.users {
		out = append(out, *u)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Score != out[j].Score {
			return out[i].Score > out[j].Score
		}
		return out[i].ID < out[j].ID
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (f *fakeUserStore) AwardSolve(ctx context.Context, userID uint, challengeID string, points int) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return false, f.err
	}
	u, ok := f.users[userID]
	if !ok {
		return false, util.ErrUserNotFound
	}
	if f.solved[userID] == nil {
		f.solved[userID] = make(map[string]bool)
	}
	if f.solved[userID][challengeID] {
		return false, nil
	}
	f.solved[userID][challengeID] = true
	u.Score += points
	return true, nil
}

func (f *fakeUserStore) SolvedChallengeIDs(ctx context.Context, userID uint) (map[string]bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make(map[string]bool)
	for id := range f.solved[userID] {
		out[id] = true
	}
	return out, nil
}

func (f *fakeUserStore) ToggleSaved(ctx context.Context, userID uint, challengeID string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	list := f.saved[userID]
	for i, id := range list {
		if id == challengeID {
			f.saved[userID] = append(list[:i], list[i+1:]...)
			return false, nil
		}
	}
	f.saved[userID] = append(list, challengeID)
	return true, nil
}

func (f *fakeUserStore) SavedChallengeIDs(ctx context.Context, userID uint) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string{}, f.saved[userID]...), nil
}

type fakeSubmissionStore struct {
	mu    sync.Mutex
	items []model.Submission
}

func (f *fakeSubmissionStore) Create(ctx context.Context, s *model.Submission) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	s.ID = uint(len(f.items) + 1)
	f.items = append(f.items, *s)
	return nil
}

func (f *fakeSubmissionStore) ListForUser(ctx context.Context, userID uint, challengeID string, limit int) ([]model.Submission, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []model.Submission{}
	for i := len(f.items) - 1; i >= 0 && len(out) < limit; i-- {
		s := f.items[i]
		if s.UserID == userID && s.ChallengeID == challengeID {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *fakeSubmissionStore) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.items)
}

type fakeCache struct {
	mu          sync.Mutex
	entries     []model.LeaderboardEntry
	hit         bool
	invalidated int
	sets        int
}

func (f *fakeCache) Get(ctx context.Context) ([]model.LeaderboardEntry, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if !f.hit {
		return nil, false, nil
	}
	return f.entries, true, nil
}

func (f *fakeCache) Set(ctx context.Context, entries []model.LeaderboardEntry) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sets++
	f.entries = entries
	f.hit = true
	return nil
}

func (f *fakeCache) Invalidate(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.invalidated++
	f.hit = false
	return nil
}

// fakeExecutor 按 handler 返回结果并记录每次调用
type fakeExecutor struct {
	mu        sync.Mutex
	languages map[string]bool
	handler   func(ctx context.Context, stdin string) (*executor.Result, error)
	stdins    []string
}

func newFakeExecutor(handler func(ctx context.Context, stdin string) (*executor.Result, error)) *fakeExecutor {
	return &fakeExecutor{
		languages: map[string]bool{"python": true, "javascript": true},
		handler:   handler,
	}
}

func (f *fakeExecutor) Supports(language string) bool {
	return f.languages[language]
}

func (f *fakeExecutor) Execute(ctx context.Context, language, code, stdin string) (*executor.Result, error) {
	f.mu.Lock()
	f.stdins = append(f.stdins, stdin)
	f.mu.Unlock()
	return f.handler(ctx, stdin)
}

func (f *fakeExecutor) calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string{}, f.stdins...)
}

var errExecutorDown = errors.New("dial tcp: connection refused")
