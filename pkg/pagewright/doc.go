// Package pagewright implements the core of a server-rendered content
// management system: a virtual-folder file library backed by an object store,
// a page-builder that composes template HTML with reusable content blocks,
// shared-block management, and an in-app notification feed.
//
// The package exposes a single Service interface configured through
// functional options (WithRepository, WithBlobStore, ...). Persistence and
// blob storage are pluggable; Postgres and S3-compatible implementations live
// in the repo/ and storage/ subpackages, with in-memory mirrors for tests.
package pagewright
