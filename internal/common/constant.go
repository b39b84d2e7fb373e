// Package common contains shared constants and sentinel errors used across
// CosmosPT components.
package common

// AuthorizationHeaderName is the HTTP header carrying the session token as
// "Bearer <jwt>".
const AuthorizationHeaderName = "Authorization"

// BearerPrefix precedes the token inside AuthorizationHeaderName.
const BearerPrefix = "Bearer "
