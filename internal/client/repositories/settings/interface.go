// Package settings persists small labeled values on the client side:
// the session token and the theme preference.
package settings

import "context"

// Repository is a settable/gettable/clearable store of labeled slots.
// Get returns nil (no error) for a missing key.
type Repository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Clear(ctx context.Context) error
}
