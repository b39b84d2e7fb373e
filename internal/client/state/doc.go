// Package state holds the client application state of cosmosctl.
//
// AppState owns one Source per remote data set: the signed-in user and each
// catalog collection. A Source loads its value on first use, keeps it for
// the session and can be invalidated or overwritten independently. Loads that
// fail because the server is unavailable are retried with exponential
// backoff; catalog sources then fall back to the last snapshot stored in the
// local database and report themselves as stale.
package state
