// Package client contains client-side building blocks for CosmosPT.
//
// # Overview
//
// The package provides:
//  1. The API contract used by the CLI (see the Client interface) and its
//     HTTP implementation (see HTTPClient) speaking to the REST server.
//  2. Local persistence bootstrap utilities (InitDatabase, RunMigrations)
//     wiring an SQLite database and applying embedded goose migrations.
//
// # Error Handling
//
// Common conditions are exposed as sentinel errors that callers can match
// with errors.Is: ErrUnavailable, ErrUnauthorized, ErrNotFound,
// ErrLocalDataNotAvailable. The server's message stays available through
// the wrapped *netx.StatusError.
package client
