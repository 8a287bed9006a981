package config

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	goredis "github.com/redis/go-redis/v9"

	"github.com/pagewright/pagewright/pkg/pagewright"
	rediscache "github.com/pagewright/pagewright/pkg/pagewright/cache/redis"
	repomemory "github.com/pagewright/pagewright/pkg/pagewright/repo/memory"
	repopg "github.com/pagewright/pagewright/pkg/pagewright/repo/postgres"
	fsstorage "github.com/pagewright/pagewright/pkg/pagewright/storage/fs"
	memorystorage "github.com/pagewright/pagewright/pkg/pagewright/storage/memory"
	s3storage "github.com/pagewright/pagewright/pkg/pagewright/storage/s3"
)

// Option applies configuration to a ServerConfig instance.
type Option func(*ServerConfig) error

// Load constructs a ServerConfig by applying the supplied options on top of
// library defaults.
func Load(opts ...Option) (*ServerConfig, error) {
	cfg := defaults()

	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func defaults() ServerConfig {
	return ServerConfig{
		Port:             "8080",
		Environment:      "development",
		DatabaseType:     "memory",
		StorageType:      "memory",
		SessionSecret:    "dev-session-secret",
		ProviderCacheTTL: 5 * time.Minute,
	}
}

// ServerConfig represents server configuration for the pagewright service
type ServerConfig struct {
	Port        string
	Environment string // development, production, testing

	// Database configuration
	DatabaseURL  string
	DatabaseType string // "memory", "postgres"

	// Storage configuration
	StorageType string // "memory", "fs", "s3"
	Storage     StorageConfig

	// Session configuration
	SessionSecret string

	// Optional Redis-backed provider cache
	RedisURL         string
	ProviderCacheTTL time.Duration
}

// StorageConfig holds backend-specific storage settings
type StorageConfig struct {
	// Filesystem
	BaseDir   string
	URLPrefix string

	// S3-compatible
	Region          string
	Bucket          string
	AccessKeyID     string
	SecretAccessKey string
	Endpoint        string
	UseSSL          bool
	UsePathStyle    bool
	PresignDuration int

	CreateBucketIfNotExist bool
}

// Validate validates the server configuration
func (c *ServerConfig) Validate() error {
	if c.Port == "" {
		return errors.New("port is required")
	}

	if c.DatabaseType != "memory" && c.DatabaseType != "postgres" {
		return errors.New("database_type must be 'memory' or 'postgres'")
	}
	if c.DatabaseType == "postgres" && c.DatabaseURL == "" {
		return errors.New("database_url is required when using postgres")
	}

	switch c.StorageType {
	case "memory":
	case "fs":
		if c.Storage.BaseDir == "" {
			return errors.New("storage base_dir is required for fs storage")
		}
	case "s3":
		if c.Storage.Bucket == "" {
			return errors.New("storage bucket is required for s3 storage")
		}
	default:
		return fmt.Errorf("unsupported storage type: %s", c.StorageType)
	}

	if c.SessionSecret == "" {
		return errors.New("session secret is required")
	}

	return nil
}

// IsProduction reports whether the service runs in production mode
func (c *ServerConfig) IsProduction() bool {
	return c.Environment == "production"
}

// BuildService creates a Service instance from the server configuration
func (c *ServerConfig) BuildService() (pagewright.Service, error) {
	var options []pagewright.Option

	repo, err := c.buildRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to build repository: %w", err)
	}
	options = append(options, pagewright.WithRepository(repo))

	store, err := c.buildStorageBackend()
	if err != nil {
		return nil, fmt.Errorf("failed to build storage backend: %w", err)
	}
	options = append(options, pagewright.WithBlobStore(store))

	if c.RedisURL != "" {
		cache, err := c.buildProviderCache()
		if err != nil {
			return nil, fmt.Errorf("failed to build provider cache: %w", err)
		}
		options = append(options, pagewright.WithProviderCache(cache))
	}

	return pagewright.New(options...)
}

// buildRepository creates a Repository based on the configuration
func (c *ServerConfig) buildRepository() (pagewright.Repository, error) {
	switch c.DatabaseType {
	case "memory":
		return repomemory.New(), nil
	case "postgres":
		cfg, err := pgxpool.ParseConfig(c.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("failed to parse DATABASE_URL: %w", err)
		}
		pool, err := pgxpool.NewWithConfig(context.Background(), cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to create pgx pool: %w", err)
		}
		return repopg.NewWithPool(pool), nil
	default:
		return nil, fmt.Errorf("unsupported database type: %s", c.DatabaseType)
	}
}

// buildStorageBackend creates a BlobStore based on the configuration
func (c *ServerConfig) buildStorageBackend() (pagewright.BlobStore, error) {
	switch c.StorageType {
	case "memory":
		return memorystorage.New(), nil
	case "fs":
		return fsstorage.New(fsstorage.Config{
			BaseDir:   c.Storage.BaseDir,
			URLPrefix: c.Storage.URLPrefix,
		})
	case "s3":
		return s3storage.New(s3storage.Config{
			Region:                 c.Storage.Region,
			Bucket:                 c.Storage.Bucket,
			AccessKeyID:            c.Storage.AccessKeyID,
			SecretAccessKey:        c.Storage.SecretAccessKey,
			Endpoint:               c.Storage.Endpoint,
			UseSSL:                 c.Storage.UseSSL,
			UsePathStyle:           c.Storage.UsePathStyle,
			PresignDuration:        c.Storage.PresignDuration,
			CreateBucketIfNotExist: c.Storage.CreateBucketIfNotExist,
		})
	default:
		return nil, fmt.Errorf("unsupported storage type: %s", c.StorageType)
	}
}

// buildProviderCache creates the Redis-backed provider cache
func (c *ServerConfig) buildProviderCache() (pagewright.ProviderCache, error) {
	opts, err := goredis.ParseURL(c.RedisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse REDIS_URL: %w", err)
	}
	return rediscache.New(goredis.NewClient(opts), c.ProviderCacheTTL), nil
}

// PingPostgres verifies connectivity to Postgres.
func PingPostgres(databaseURL string) error {
	if databaseURL == "" {
		return errors.New("database_url is required")
	}
	cfg, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return fmt.Errorf("failed to parse DATABASE_URL: %w", err)
	}
	pool, err := pgxpool.NewWithConfig(context.Background(), cfg)
	if err != nil {
		return fmt.Errorf("failed to create pgx pool: %w", err)
	}
	defer pool.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := pool.Ping(ctx); err != nil {
		return fmt.Errorf("database ping failed: %w", err)
	}
	return nil
}
