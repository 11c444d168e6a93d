package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"codewithme_backend/internal/model"
	"codewithme_backend/internal/util"
	"codewithme_backend/pkg/executor"
)

func TestProfileAndSavedChallenges(t *testing.T) {
	challenges := newFakeChallengeStore()
	users := newFakeUserStore(model.User{BaseModel: model.BaseModel{ID: 1}, Username: "ada", Email: "ada@example.com", Score: 7})
	svc := NewUserService(users, challenges)
	ctx := context.Background()

	ch := challenges.put(&model.Challenge{Title: "Saved"})
	if _, err := users.AwardSolve(ctx, 1, ch.ID, 7); err != nil {
		t.Fatalf("AwardSolve: %v", err)
	}

	saved, err := svc.ToggleSaved(ctx, 1, ch.ID)
	if err != nil {
		t.Fatalf("ToggleSaved: %v", err)
	}
	if len(saved) != 1 || saved[0] != ch.ID {
		t.Fatalf("saved = %v", saved)
	}

	p, err := svc.Profile(ctx, 1)
	if err != nil {
		t.Fatalf("Profile: %v", err)
	}
	if p.Username != "ada" || p.Score != 14 || p.SolvedCount != 1 || len(p.SavedChallenges) != 1 {
		t.Fatalf("profile = %+v", p)
	}

	saved, err = svc.ToggleSaved(ctx, 1, ch.ID)
	if err != nil {
		t.Fatalf("ToggleSaved: %v", err)
	}
	if len(saved) != 0 {
		t.Fatalf("unsave left %v", saved)
	}

	if _, err := svc.ToggleSaved(ctx, 1, model.GenerateUUID()); !errors.Is(err, util.ErrChallengeNotFound) {
		t.Fatalf("err = %v", err)
	}
	if _, err := svc.Profile(ctx, 404); !errors.Is(err, util.ErrUserNotFound) {
		t.Fatalf("err = %v", err)
	}
}

func TestCodeServiceRun(t *testing.T) {
	exec := newFakeExecutor(func(ctx context.Context, stdin string) (*executor.Result, error) {
		if stdin == "boom" {
			return nil, errExecutorDown
		}
		return &executor.Result{Stdout: "echo:" + stdin}, nil
	})
	svc := NewCodeService(exec)
	ctx := context.Background()

	res, err := svc.Run(ctx, RunCodeRequest{Code: "print(input())", Language: "JavaScript", Stdin: "hi"})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if res.Stdout != "echo:hi" {
		t.Fatalf("stdout = %q", res.Stdout)
	}

	if _, err := svc.Run(ctx, RunCodeRequest{Code: "", Language: "python"}); !errors.Is(err, util.ErrEmptyCode) {
		t.Fatalf("err = %v", err)
	}
	if _, err := svc.Run(ctx, RunCodeRequest{Code: "x", Language: "cobol"}); !errors.Is(err, util.ErrUnsupportedLanguage) {
		t.Fatalf("err = %v", err)
	}

	_, err = svc.Run(ctx, RunCodeRequest{Code: "x", Language: "python", Stdin: "boom"})
	if !errors.Is(err, util.ErrExecutorUnavailable) || !strings.Contains(err.Error(), "connection refused") {
		t.Fatalf("err = %v", err)
	}
}
