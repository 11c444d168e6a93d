package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server      ServerConfig
	Log         LogConfig `mapstructure:"log"`
	Database    DatabaseConfig
	JWT         JWTConfig
	Redis       RedisConfig
	Executor    ExecutorConfig    `mapstructure:"executor"`
	Leaderboard LeaderboardConfig `mapstructure:"leaderboard"`
	Tracing     TracingConfig     `mapstructure:"tracing"`
	CORS        CORSConfig        `mapstructure:"cors"`
	RateLimit   RateLimitConfig   `mapstructure:"rate_limit"`

	// 运行时标志（非配置文件，通过命令行参数设置）
	ConfigFile  string `mapstructure:"-"`
	MigrateOnly bool   `mapstructure:"-"`
}

type ServerConfig struct {
	Port string
	Mode string
}

type LogConfig struct {
	File       string `mapstructure:"file"`
	MaxSizeMB  int    `mapstructure:"max_size_mb"`
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAgeDays int    `mapstructure:"max_age_days"`
}

type DatabaseConfig struct {
	Host      string
	Port      int
	User      string
	Password  string
	DBName    string
	Charset   string
	ParseTime bool
}

type JWTConfig struct {
	Secret string `mapstructure:"secret"`
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

// ExecutorConfig 远程代码执行服务（Piston）配置，支持热更新
type ExecutorConfig struct {
	URL            string   `mapstructure:"url"`
	Version        string   `mapstructure:"version"`
	TimeoutSeconds int      `mapstructure:"timeout_seconds"`
	Languages      []string `mapstructure:"languages"`
}

func (e ExecutorConfig) Timeout() time.Duration {
	if e.TimeoutSeconds <= 0 {
		return 15 * time.Second
	}
	return time.Duration(e.TimeoutSeconds) * time.Second
}

type LeaderboardConfig struct {
	Size            int    `mapstructure:"size"`
	CacheKey        string `mapstructure:"cache_key"`
	CacheTTLSeconds int    `mapstructure:"cache_ttl_seconds"`
}

func (l LeaderboardConfig) CacheTTL() time.Duration {
	return time.Duration(l.CacheTTLSeconds) * time.Second
}

type TracingConfig struct {
	Enabled           bool   `mapstructure:"enabled"`
	ServiceName       string `mapstructure:"service_name"`
	CollectorEndpoint string `mapstructure:"collector_endpoint"`
}

type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

type RateLimitConfig struct {
	MaxRequests   int `mapstructure:"max_requests"`
	WindowMinutes int `mapstructure:"window_minutes"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.mode", "debug")
	v.SetDefault("log.file", "logs/app.log")
	v.SetDefault("log.max_size_mb", 100)
	v.SetDefault("log.max_backups", 5)
	v.SetDefault("log.max_age_days", 30)
	v.SetDefault("database.charset", "utf8mb4")
	v.SetDefault("database.parsetime", true)
	v.SetDefault("executor.url", "https://emkc.org/api/v2/piston/execute")
	v.SetDefault("executor.version", "*")
	v.SetDefault("executor.timeout_seconds", 15)
	v.SetDefault("executor.languages", []string{"python", "javascript", "java", "c", "cpp", "go"})
	v.SetDefault("leaderboard.size", 100)
	v.SetDefault("leaderboard.cache_key", "leaderboard:top")
	v.SetDefault("leaderboard.cache_ttl_seconds", 30)
	v.SetDefault("tracing.service_name", "challenge-engine")
	v.SetDefault("rate_limit.max_requests", 600)
	v.SetDefault("rate_limit.window_minutes", 1)
}

// LoadConfig 从 path 目录读取 config.yaml，环境变量优先
func LoadConfig(path string) (*Config, error) {
	v := viper.New()
	v.AddConfigPath(path)
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	v.SetEnvPrefix("CODER_EDU")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)

	// Database
	v.BindEnv("database.host", "DATABASE_HOST")
	v.BindEnv("database.port", "DATABASE_PORT")
	v.BindEnv("database.user", "DATABASE_USER")
	v.BindEnv("database.password", "DATABASE_PASSWORD")
	v.BindEnv("database.dbname", "DATABASE_NAME")

	// JWT
	v.BindEnv("jwt.secret", "JWT_SECRET")

	// Redis
	v.BindEnv("redis.host", "REDIS_HOST")
	v.BindEnv("redis.port", "REDIS_PORT")
	v.BindEnv("redis.password", "REDIS_PASSWORD")

	// Server
	v.BindEnv("server.mode", "SERVER_MODE")

	// Executor
	v.BindEnv("executor.url", "EXECUTOR_URL")

	// Tracing
	v.BindEnv("tracing.enabled", "TRACING_ENABLED")
	v.BindEnv("tracing.collector_endpoint", "TRACING_COLLECTOR_ENDPOINT")

	if err := v.ReadInConfig(); err != nil {
		return nil, err
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	cfg.ConfigFile = v.ConfigFileUsed()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	// 生产环境校验 JWT Secret 强度
	if c.Server.Mode == "release" && len(c.JWT.Secret) < 32 {
		return fmt.Errorf("JWT secret is too short (%d chars), must be at least 32 characters in release mode", len(c.JWT.Secret))
	}
	if c.Executor.URL == "" {
		return fmt.Errorf("executor.url is required")
	}
	if len(c.Executor.Languages) == 0 {
		return fmt.Errorf("executor.languages must list at least one language")
	}
	if c.Leaderboard.Size <= 0 {
		return fmt.Errorf("leaderboard.size must be positive, got %d", c.Leaderboard.Size)
	}
	return nil
}
