// Package postgres provides PostgreSQL implementations of the store
// interfaces. Stores accept a store.DBTX so they run equally against a
// connection pool or a transaction, and they translate driver errors
// into the sentinel errors defined in the store package.
package postgres
