// Package cli implements cosmosctl, the CosmosPT command-line client.
//
// Player commands (register, login, logout, profile, catalog, visit, quiz,
// mission, travel) talk to the REST API and keep the session in a local
// SQLite database. Operator commands (migrate, seed) open the server storage
// directly using the server configuration.
package cli
