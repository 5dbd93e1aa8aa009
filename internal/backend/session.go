package backend

import (
	"context"
	"errors"
	"fmt"

	"givehaven/pkg/types"

	"github.com/lestrrat-go/jwx/v3/jwk"
	"github.com/lestrrat-go/jwx/v3/jwt"
)

// JWKSVerifier checks Supabase access tokens against the project's published keys.
type JWKSVerifier struct {
	cache   *jwk.Cache
	jwksURL string
}

func NewJWKSVerifier(cache *jwk.Cache, jwksURL string) *JWKSVerifier {
	return &JWKSVerifier{cache: cache, jwksURL: jwksURL}
}

func JWKSURL(projectRef string) string {
	return fmt.Sprintf("https://%s.supabase.co/auth/v1/.well-known/jwks.json", projectRef)
}

func (v *JWKSVerifier) Verify(ctx context.Context, accessToken string) (*types.Session, error) {
	set, err := v.cache.Lookup(ctx, v.jwksURL)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch JWKS: %w", err)
	}

	token, err := jwt.Parse(
		[]byte(accessToken),
		jwt.WithKeySet(set),
		jwt.WithValidate(true),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to parse JWT: %w", err)
	}

	userID, ok := token.Subject()
	if !ok || userID == "" {
		return nil, errors.New("no user ID in JWT subject claim")
	}

	session := &types.Session{
		UserID:      userID,
		AccessToken: accessToken,
	}

	// email is optional
	var email string
	if err := token.Get("email", &email); err == nil {
		session.Email = email
	}

	if exp, ok := token.Expiration(); ok {
		session.ExpiresAt = exp
	}

	return session, nil
}

// GetCurrentSession resolves the session behind an access token. An empty token
// means there is no session, which is not an error.
func (c *Client) GetCurrentSession(ctx context.Context, accessToken string) (*types.Session, error) {
	if accessToken == "" {
		return nil, nil
	}

	session, err := c.verifier.Verify(ctx, accessToken)
	if err != nil {
		return nil, fmt.Errorf("verify session: %w", err)
	}

	return session, nil
}

// IsUserSuperAdmin is false for users without a profile row.
func (c *Client) IsUserSuperAdmin(ctx context.Context, userID string) (bool, error) {
	isAdmin, err := c.profiles.IsSuperAdmin(ctx, userID)
	if err != nil {
		return false, fmt.Errorf("check super admin: %w", err)
	}
	return isAdmin, nil
}
