// Package creds persists the client's session credentials: the bearer token
// and the serialized identity. Exactly two entries exist, stored as strings
// in a local key/value table.
package creds

import "context"

// Keys for the two persisted entries.
const (
	KeyToken = "token"
	KeyUser  = "user"
)

// Repository is a small persisted key/value store for session credentials.
// A missing key reads as the empty string, not an error.
type Repository interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value string) error
	// SetMany writes all entries atomically.
	SetMany(ctx context.Context, values map[string]string) error
	Delete(ctx context.Context, key string) error
	Clear(ctx context.Context) error
}
