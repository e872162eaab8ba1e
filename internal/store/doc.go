// Package store defines the persistence interfaces for letters and the
// transaction helper shared by their implementations. The Postgres
// implementations live in internal/platform/postgres; MemoryLetterStore
// serves deployments without a database.
package store
