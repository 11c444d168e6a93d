package configwatcher

import (
	"codewithme_backend/internal/config"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, path, executorURL string) {
	t.Helper()
	body := "server:\n  port: \"8080\"\nexecutor:\n  url: " + executorURL + "\n"
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
}

func TestWatchReloadsOnWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	writeConfig(t, path, "http://first.test/execute")

	reloaded := make(chan *config.Config, 1)
	w := New(path, func(cfg *config.Config) {
		select {
		case reloaded <- cfg:
		default:
		}
	})
	w.debounce = 50 * time.Millisecond

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan error, 1)
	go func() { done <- w.Watch(ctx) }()

	// 等待 watcher 注册完成
	time.Sleep(100 * time.Millisecond)
	writeConfig(t, path, "http://second.test/execute")

	select {
	case cfg := <-reloaded:
		if cfg.Executor.URL != "http://second.test/execute" {
			t.Fatalf("executor url = %q", cfg.Executor.URL)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("config was not reloaded")
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Watch: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("watcher did not stop")
	}
}

func TestWatchMissingDir(t *testing.T) {
	w := New(filepath.Join(t.TempDir(), "nope", "config.yaml"), func(*config.Config) {})
	if err := w.Watch(context.Background()); err == nil {
		t.Fatal("expected error for missing directory")
	}
}
