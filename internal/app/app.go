package app

import (
	"codewithme_backend/internal/config"
	"codewithme_backend/internal/controller"
	"codewithme_backend/internal/repository"
	"codewithme_backend/internal/service"
	"codewithme_backend/pkg/configwatcher"
	"codewithme_backend/pkg/database"
	"codewithme_backend/pkg/executor"
	"codewithme_backend/pkg/logger"
	"codewithme_backend/pkg/monitoring"
	"codewithme_backend/pkg/security"
	"codewithme_backend/pkg/tracing"
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type App struct {
	Config   *config.Config
	Router   *gin.Engine
	DB       *gorm.DB
	Redis    *redis.Client
	Executor *executor.Client

	tracer  *sdktrace.TracerProvider
	limiter *security.Limiter
	stop    chan struct{}

	mu              sync.Mutex
	configCallbacks []func(*config.Config)
}

type repositories struct {
	challenge   *repository.ChallengeRepository
	comment     *repository.CommentRepository
	user        *repository.UserRepository
	submission  *repository.SubmissionRepository
	leaderboard *repository.LeaderboardCache
}

type services struct {
	challenge *service.ChallengeService
	comment   *service.CommentService
	grading   *service.GradingService
	code      *service.CodeService
	user      *service.UserService
}

type controllers struct {
	challenge *controller.ChallengeController
	comment   *controller.CommentController
	code      *controller.CodeController
	user      *controller.UserController
	health    *controller.HealthController
}

func (a *App) RegisterConfigCallback(callback func(*config.Config)) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.configCallbacks = append(a.configCallbacks, callback)
}

// applyConfig 配置文件变更后依次通知回调
func (a *App) applyConfig(cfg *config.Config) {
	a.mu.Lock()
	callbacks := append([]func(*config.Config){}, a.configCallbacks...)
	a.mu.Unlock()
	for _, cb := range callbacks {
		cb(cfg)
	}
}

func (a *App) initRepositories(db *gorm.DB, rdb *redis.Client, cfg *config.Config) *repositories {
	return &repositories{
		challenge:   repository.NewChallengeRepository(db),
		comment:     repository.NewCommentRepository(db),
		user:        repository.NewUserRepository(db),
		submission:  repository.NewSubmissionRepository(db),
		leaderboard: repository.NewLeaderboardCache(rdb, cfg.Leaderboard.CacheKey, cfg.Leaderboard.CacheTTL()),
	}
}

func (a *App) initServices(repos *repositories, cfg *config.Config) *services {
	return &services{
		challenge: service.NewChallengeService(repos.challenge, repos.comment, repos.user, repos.leaderboard, cfg.Leaderboard.Size),
		comment:   service.NewCommentService(repos.challenge, repos.comment, repos.user),
		grading:   service.NewGradingService(repos.challenge, repos.user, repos.submission, a.Executor, repos.leaderboard),
		code:      service.NewCodeService(a.Executor),
		user:      service.NewUserService(repos.user, repos.challenge),
	}
}

func (a *App) initControllers(s *services) *controllers {
	return &controllers{
		challenge: controller.NewChallengeController(s.challenge, s.grading),
		comment:   controller.NewCommentController(s.comment),
		code:      controller.NewCodeController(s.code),
		user:      controller.NewUserController(s.user),
		health: controller.NewHealthController(map[string]controller.Pinger{
			"database": func(ctx context.Context) error {
				sqlDB, err := a.DB.DB()
				if err != nil {
					return err
				}
				return sqlDB.PingContext(ctx)
			},
			"redis": func(ctx context.Context) error {
				return a.Redis.Ping(ctx).Err()
			},
		}),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())

	// 分布式追踪中间件
	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
}

func NewApp(cfg *config.Config) (*App, error) {
	logger.InitLogger(cfg)
	logger.Log.Info("Logger initialized successfully")

	db, err := database.InitDB(&cfg.Database, cfg.Server.Mode)
	if err != nil {
		return nil, fmt.Errorf("initialize database: %w", err)
	}
	if cfg.MigrateOnly {
		return &App{Config: cfg, DB: db}, nil
	}

	rdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		return nil, fmt.Errorf("initialize redis: %w", err)
	}

	window := time.Duration(cfg.RateLimit.WindowMinutes) * time.Minute
	if window <= 0 {
		window = time.Minute
	}

	app := &App{
		Config:   cfg,
		DB:       db,
		Redis:    rdb,
		Executor: executor.NewClient(cfg.Executor),
		limiter:  security.NewLimiter(cfg.RateLimit.MaxRequests, window),
		stop:     make(chan struct{}),
	}

	if cfg.Tracing.Enabled {
		tp, err := tracing.InitTracer(cfg.Tracing.ServiceName, cfg.Tracing.CollectorEndpoint)
		if err != nil {
			return nil, fmt.Errorf("initialize tracing: %w", err)
		}
		app.tracer = tp
	}

	// 监控初始化
	monitoring.Init()

	repos := app.initRepositories(db, rdb, cfg)
	controllers := app.initControllers(app.initServices(repos, cfg))

	if cfg.Server.Mode == gin.ReleaseMode {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	app.Router = router

	app.setupMiddlewares(router, cfg)
	app.registerRoutes(router, controllers, cfg)

	// 执行服务配置支持热更新
	app.RegisterConfigCallback(func(newCfg *config.Config) {
		app.Executor.Apply(newCfg.Executor)
		logger.Log.Info("executor config applied",
			zap.String("url", newCfg.Executor.URL),
			zap.Strings("languages", newCfg.Executor.Languages),
		)
	})

	return app, nil
}

func (a *App) startBackgroundTasks(ctx context.Context) {
	go a.limiter.Run(a.stop)

	if a.Config.ConfigFile == "" {
		return
	}
	watcher := configwatcher.New(a.Config.ConfigFile, a.applyConfig)
	go func() {
		if err := watcher.Watch(ctx); err != nil {
			logger.Log.Error("config watcher stopped", zap.Error(err))
		}
	}()
}

func (a *App) Run() error {
	srv := &http.Server{
		Addr:              ":" + a.Config.Server.Port,
		Handler:           a.Router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	a.startBackgroundTasks(ctx)

	errCh := make(chan error, 1)
	go func() {
		logger.Log.Info("Server running", zap.String("port", a.Config.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	// 等待中断信号优雅地关闭服务器
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-errCh:
		return fmt.Errorf("listen: %w", err)
	case <-quit:
	}
	logger.Log.Info("Shutting down server...")

	close(a.stop)
	cancel()

	// 正在评测的提交最多等待 30 秒
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}
	a.Close()

	logger.Log.Info("Server exiting")
	return nil
}

// Close 释放外部资源
func (a *App) Close() {
	if a.tracer != nil {
		if err := a.tracer.Shutdown(context.Background()); err != nil {
			logger.Log.Error("Failed to shutdown tracer provider", zap.Error(err))
		}
	}
	if a.Redis != nil {
		a.Redis.Close()
	}
	if a.DB != nil {
		if sqlDB, err := a.DB.DB(); err == nil {
			sqlDB.Close()
		}
	}
	logger.Log.Sync()
}
