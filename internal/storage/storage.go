// Package storage uploads home logos to object storage.
package storage

import (
	"context"
	"io"
	"strings"
)

type Bucket interface {
	Put(ctx context.Context, key string, body io.Reader, contentType string) error
	Delete(ctx context.Context, key string) error
	PublicURL(key string) string
}

// ResolveURL turns a stored logo reference into something an <img> can load.
// Absolute URLs (seed data, avatars from the auth provider) pass through.
func ResolveURL(b Bucket, ref string) string {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return ""
	}
	if strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://") || b == nil {
		return ref
	}
	return b.PublicURL(ref)
}

// IsManaged reports whether ref points into the bucket rather than elsewhere.
func IsManaged(ref string) bool {
	ref = strings.TrimSpace(ref)
	return ref != "" && !strings.HasPrefix(ref, "http://") && !strings.HasPrefix(ref, "https://")
}
