package pagewright

import (
	"fmt"
	"log/slog"
)

// service implements the Service interface
type service struct {
	repository Repository
	blobStore  BlobStore
	cache      ProviderCache
	logger     *slog.Logger
}

// Option represents a functional option for configuring the service
type Option func(*service)

// WithRepository sets the repository for the service
func WithRepository(repo Repository) Option {
	return func(s *service) {
		s.repository = repo
	}
}

// WithBlobStore sets the object-store backend for the service
func WithBlobStore(store BlobStore) Option {
	return func(s *service) {
		s.blobStore = store
	}
}

// WithProviderCache sets an optional cache for provider link lookups
func WithProviderCache(cache ProviderCache) Option {
	return func(s *service) {
		s.cache = cache
	}
}

// WithLogger sets the logger for the service. Defaults to slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *service) {
		s.logger = logger
	}
}

// New creates a new service instance with the given options
func New(options ...Option) (Service, error) {
	s := &service{}

	for _, option := range options {
		option(s)
	}

	if s.repository == nil {
		return nil, fmt.Errorf("repository is required")
	}
	if s.blobStore == nil {
		return nil, fmt.Errorf("blob store is required")
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}

	return s, nil
}
