// Package preferences persists small per-visitor choices such as cookie consent
// and dismissed banners. Handlers receive a request scoped Store from a Provider
// so the backing medium can be swapped without touching page logic.
package preferences

import (
	"context"
	"net/http"
)

type Store interface {
	// Get reports the stored value and whether the key was present.
	Get(ctx context.Context, key string) (string, bool, error)
	// Set persists the value before returning.
	Set(ctx context.Context, key, value string) error
	Clear(ctx context.Context, key string) error
}

type Provider interface {
	For(w http.ResponseWriter, r *http.Request) Store
}
