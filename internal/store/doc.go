// Package store defines the persistence ports for the application's
// entities, the sentinel errors implementations must return, and the
// transaction helper services use to make aggregate writes atomic.
// Concrete implementations live in internal/platform/postgres.
package store
