package configwatcher

import (
	"codewithme_backend/internal/config"
	"codewithme_backend/pkg/logger"
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// Reloader 接收重新加载后的完整配置
type Reloader func(cfg *config.Config)

const defaultDebounce = time.Second

type Watcher struct {
	path     string
	debounce time.Duration
	load     func(dir string) (*config.Config, error)
	reload   Reloader
}

func New(configFile string, reload Reloader) *Watcher {
	return &Watcher{
		path:     configFile,
		debounce: defaultDebounce,
		load:     config.LoadConfig,
		reload:   reload,
	}
}

// Watch 监听配置文件所在目录（编辑器常以 rename 方式保存），阻塞直到 ctx 结束
func (w *Watcher) Watch(ctx context.Context) error {
	absPath, err := filepath.Abs(w.path)
	if err != nil {
		return fmt.Errorf("resolve config path: %w", err)
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create config watcher: %w", err)
	}
	defer fw.Close()

	if err := fw.Add(filepath.Dir(absPath)); err != nil {
		return fmt.Errorf("watch config dir: %w", err)
	}

	timer := time.NewTimer(w.debounce)
	if !timer.Stop() {
		<-timer.C
	}

	for {
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil
		case event, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != absPath {
				continue
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) {
				// 防抖
				if !timer.Stop() {
					select {
					case <-timer.C:
					default:
					}
				}
				timer.Reset(w.debounce)
			}
		case <-timer.C:
			newCfg, err := w.load(filepath.Dir(absPath))
			if err != nil {
				logger.Log.Error("Failed to reload config", zap.Error(err))
				continue
			}
			logger.Log.Info("Config reloaded", zap.String("file", absPath))
			w.reload(newCfg)
		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			logger.Log.Error("Config watcher error", zap.Error(err))
		}
	}
}
