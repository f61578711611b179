package bootstrap

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type Config struct {
	ServerPort       string        `mapstructure:"SERVER_PORT"`
	GrpcPort         string        `mapstructure:"GRPC_PORT"`
	RedisUrl         string        `mapstructure:"REDIS_URL"`
	MongoUri         string        `mapstructure:"MONGO_URI"`
	MongoDatabase    string        `mapstructure:"MONGO_DATABASE"`
	IsLocalCors      bool          `mapstructure:"LOCAL_CORS"`
	PageLimitRecords int           `mapstructure:"PAGE_LIMIT_RECORDS"`
	MaxSgfBytes      int           `mapstructure:"MAX_SGF_BYTES"`
	CacheTTL         time.Duration `mapstructure:"CACHE_TTL"`
	RateLimitRPS     float64       `mapstructure:"RATE_LIMIT_RPS"`
	RateLimitBurst   int           `mapstructure:"RATE_LIMIT_BURST"`
	ImportPattern    string        `mapstructure:"IMPORT_PATTERN"`
	LogLevel         string        `mapstructure:"LOG_LEVEL"`
}

var defaults = map[string]any{
	"SERVER_PORT":        "8080",
	"GRPC_PORT":          "8082",
	"REDIS_URL":          "localhost:6379",
	"MONGO_URI":          "mongodb://localhost:27017",
	"MONGO_DATABASE":     "sgf_engine",
	"LOCAL_CORS":         false,
	"PAGE_LIMIT_RECORDS": 20,
	"MAX_SGF_BYTES":      1 << 20,
	"CACHE_TTL":          "10m",
	"RATE_LIMIT_RPS":     20.0,
	"RATE_LIMIT_BURST":   40,
	"IMPORT_PATTERN":     "*.sgf",
	"LOG_LEVEL":          "info",
}

// Setup reads the .env style file at cfgPath, when it exists, over the
// defaults; environment variables win over both.
func Setup(cfgPath string) (*Config, error) {
	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	v.AutomaticEnv()

	if cfgPath != "" {
		v.SetConfigFile(cfgPath)
		v.SetConfigType("env")
		if err := v.ReadInConfig(); err != nil && !isMissingFile(err) {
			return nil, fmt.Errorf("read config %s: %w", cfgPath, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	if cfg.PageLimitRecords <= 0 {
		return nil, fmt.Errorf("PAGE_LIMIT_RECORDS must be positive, got %d", cfg.PageLimitRecords)
	}
	if cfg.MaxSgfBytes <= 0 {
		return nil, fmt.Errorf("MAX_SGF_BYTES must be positive, got %d", cfg.MaxSgfBytes)
	}

	return &cfg, nil
}

func isMissingFile(err error) bool {
	var notFound viper.ConfigFileNotFoundError
	return errors.As(err, &notFound) || errors.Is(err, os.ErrNotExist)
}

func NewLogger(level string) *zap.SugaredLogger {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		lvl = zapcore.InfoLevel
	}

	config := zap.NewProductionConfig()
	config.Level = zap.NewAtomicLevelAt(lvl)

	logger, err := config.Build()
	if err != nil {
		panic("failed to initialize logger: " + err.Error())
	}
	return logger.Sugar()
}
