package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"time"

	"github.com/gorilla/sessions"
	"github.com/ilyakaznacheev/cleanenv"

	"github.com/pagewright/pagewright/pkg/pagewright/api"
	"github.com/pagewright/pagewright/pkg/pagewright/config"
)

type Config struct {
	Port          string `env:"PORT" env-default:"8080"`
	Environment   string `env:"ENVIRONMENT" env-default:"development"`
	SessionSecret string `env:"SESSION_SECRET" env-default:"dev-session-secret"`

	DB    DbConfig
	S3    S3Config
	Redis RedisConfig
}

type DbConfig struct {
	Port     uint16 `env:"PAGEWRIGHT_PG_PORT" env-default:"5432"`
	Host     string `env:"PAGEWRIGHT_PG_HOST" env-default:"localhost"`
	Name     string `env:"PAGEWRIGHT_PG_NAME" env-default:"pagewright_db"`
	User     string `env:"PAGEWRIGHT_PG_USER" env-default:"pagewright"`
	Password string `env:"PAGEWRIGHT_PG_PASSWORD" env-default:"pwd"`
}

type S3Config struct {
	Endpoint        string `env:"AWS_S3_ENDPOINT" env-default:"http://localhost:9000"`
	AccessKeyID     string `env:"AWS_ACCESS_KEY_ID" env-default:"minioadmin"`
	SecretAccessKey string `env:"AWS_SECRET_ACCESS_KEY" env-default:"minioadmin"`
	BucketName      string `env:"AWS_S3_BUCKET" env-default:"pagewright-library"`
	Region          string `env:"AWS_S3_REGION" env-default:"us-east-1"`
	UseSSL          bool   `env:"AWS_S3_USE_SSL" env-default:"false"`
	UsePathStyle    bool   `env:"AWS_S3_USE_PATH_STYLE" env-default:"true"`
}

type RedisConfig struct {
	URL      string        `env:"REDIS_URL" env-default:""`
	CacheTTL time.Duration `env:"PROVIDER_CACHE_TTL" env-default:"5m"`
}

func (c DbConfig) toDatabaseUrl() string {
	u := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(c.User, c.Password),
		Host:   fmt.Sprintf("%s:%d", c.Host, c.Port),
		Path:   c.Name,
	}
	return u.String()
}

func main() {
	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		slog.Error("Failed to read configuration", "err", err)
		os.Exit(1)
	}

	options := []config.Option{
		config.WithPort(cfg.Port),
		config.WithEnvironment(cfg.Environment),
		config.WithDatabase("postgres", cfg.DB.toDatabaseUrl()),
		config.WithS3Storage(config.StorageConfig{
			Endpoint:        cfg.S3.Endpoint,
			AccessKeyID:     cfg.S3.AccessKeyID,
			SecretAccessKey: cfg.S3.SecretAccessKey,
			Bucket:          cfg.S3.BucketName,
			Region:          cfg.S3.Region,
			UseSSL:          cfg.S3.UseSSL,
			UsePathStyle:    cfg.S3.UsePathStyle,
			PresignDuration: 3600,
		}),
		config.WithSessionSecret(cfg.SessionSecret),
	}
	if cfg.Redis.URL != "" {
		options = append(options, config.WithRedisCache(cfg.Redis.URL, cfg.Redis.CacheTTL))
	}

	serverConfig, err := config.Load(options...)
	if err != nil {
		slog.Error("Failed to load server configuration", "err", err)
		os.Exit(1)
	}

	if err := config.PingPostgres(serverConfig.DatabaseURL); err != nil {
		slog.Error("Failed to connect to database", "err", err)
		os.Exit(1)
	}

	service, err := serverConfig.BuildService()
	if err != nil {
		slog.Error("Failed to build service", "err", err)
		os.Exit(1)
	}

	sessionStore := sessions.NewCookieStore([]byte(serverConfig.SessionSecret))
	sessionStore.Options.HttpOnly = true
	sessionStore.Options.Secure = serverConfig.IsProduction()

	server := api.NewServer(service, sessionStore)

	addr := ":" + serverConfig.Port
	slog.Info("Starting server", "addr", addr, "environment", serverConfig.Environment)
	if err := http.ListenAndServe(addr, server); err != nil {
		slog.Error("Server stopped", "err", err)
		os.Exit(1)
	}
}
