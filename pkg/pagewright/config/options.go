package config

import (
	"fmt"
	"time"
)

// WithPort sets the server port
func WithPort(port string) Option {
	return func(c *ServerConfig) error {
		if port == "" {
			return fmt.Errorf("port cannot be empty")
		}
		c.Port = port
		return nil
	}
}

// WithEnvironment sets the environment (development, production, testing)
func WithEnvironment(env string) Option {
	return func(c *ServerConfig) error {
		if env == "" {
			return fmt.Errorf("environment cannot be empty")
		}
		c.Environment = env
		return nil
	}
}

// WithDatabase configures the database backend
func WithDatabase(dbType, url string) Option {
	return func(c *ServerConfig) error {
		if dbType != "memory" && dbType != "postgres" {
			return fmt.Errorf("database type must be 'memory' or 'postgres', got: %s", dbType)
		}
		if dbType == "postgres" && url == "" {
			return fmt.Errorf("database URL is required for postgres")
		}
		c.DatabaseType = dbType
		c.DatabaseURL = url
		return nil
	}
}

// WithMemoryStorage configures in-memory object storage
func WithMemoryStorage() Option {
	return func(c *ServerConfig) error {
		c.StorageType = "memory"
		return nil
	}
}

// WithFilesystemStorage configures filesystem object storage
func WithFilesystemStorage(baseDir, urlPrefix string) Option {
	return func(c *ServerConfig) error {
		if baseDir == "" {
			return fmt.Errorf("base directory cannot be empty")
		}
		c.StorageType = "fs"
		c.Storage.BaseDir = baseDir
		c.Storage.URLPrefix = urlPrefix
		return nil
	}
}

// WithS3Storage configures S3-compatible object storage
func WithS3Storage(storage StorageConfig) Option {
	return func(c *ServerConfig) error {
		if storage.Bucket == "" {
			return fmt.Errorf("bucket cannot be empty")
		}
		c.StorageType = "s3"
		c.Storage = storage
		return nil
	}
}

// WithSessionSecret sets the cookie session signing secret
func WithSessionSecret(secret string) Option {
	return func(c *ServerConfig) error {
		if secret == "" {
			return fmt.Errorf("session secret cannot be empty")
		}
		c.SessionSecret = secret
		return nil
	}
}

// WithRedisCache enables the Redis-backed provider cache
func WithRedisCache(url string, ttl time.Duration) Option {
	return func(c *ServerConfig) error {
		if url == "" {
			return fmt.Errorf("redis URL cannot be empty")
		}
		c.RedisURL = url
		if ttl > 0 {
			c.ProviderCacheTTL = ttl
		}
		return nil
	}
}
