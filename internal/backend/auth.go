package backend

import (
	"context"
	"fmt"
	"net/http"
	"regexp"
	"strconv"
	"strings"

	"givehaven/pkg/types"

	supauth "github.com/supabase-community/auth-go"
)

// SupabaseAuth signs users in and out with Supabase Auth.
type SupabaseAuth struct {
	client supauth.Client
}

func NewSupabaseAuth(projectRef, anonKey string) *SupabaseAuth {
	return &SupabaseAuth{client: supauth.New(projectRef, anonKey)}
}

func (a *SupabaseAuth) SignIn(_ context.Context, email, password string) (*types.AuthTokens, error) {
	resp, err := a.client.SignInWithEmailPassword(email, password)
	if err != nil {
		switch upstreamStatus(err) {
		case http.StatusBadRequest, http.StatusUnauthorized:
			return nil, fmt.Errorf("%w: %v", types.ErrInvalidCredentials, err)
		}
		return nil, fmt.Errorf("supabase sign in: %w", err)
	}

	if resp.AccessToken == "" {
		return nil, types.ErrInvalidCredentials
	}

	return &types.AuthTokens{
		UserID:       resp.User.ID.String(),
		Email:        resp.User.Email,
		AccessToken:  resp.AccessToken,
		RefreshToken: resp.RefreshToken,
		ExpiresIn:    resp.ExpiresIn,
	}, nil
}

var statusCodePattern = regexp.MustCompile(`response status code (\d+)`)

// upstreamStatus reads the HTTP status auth-go embeds in its error text. Zero
// means the request never got a response.
func upstreamStatus(err error) int {
	m := statusCodePattern.FindStringSubmatch(err.Error())
	if m == nil {
		return 0
	}
	code, _ := strconv.Atoi(m[1])
	return code
}

func (a *SupabaseAuth) SignOut(_ context.Context, accessToken string) error {
	if err := a.client.WithToken(accessToken).Logout(); err != nil {
		return fmt.Errorf("supabase logout: %w", err)
	}
	return nil
}

// SignIn authenticates and makes sure the user has a profile row to hang a role on.
func (c *Client) SignIn(ctx context.Context, email, password string) (*types.AuthTokens, error) {
	tokens, err := c.auth.SignIn(ctx, email, password)
	if err != nil {
		return nil, err
	}

	if err := c.profiles.EnsureProfile(ctx, tokens.UserID, displayNameFromEmail(tokens.Email)); err != nil {
		c.logger.WithError(err).WithField("user_id", tokens.UserID).Warn("failed to ensure profile after sign in")
	}

	return tokens, nil
}

// SignOut revokes the access token. A missing token is already signed out.
func (c *Client) SignOut(ctx context.Context, accessToken string) error {
	if accessToken == "" {
		return nil
	}
	return c.auth.SignOut(ctx, accessToken)
}

func displayNameFromEmail(email string) string {
	local, _, found := strings.Cut(strings.TrimSpace(email), "@")
	if !found {
		return ""
	}
	return local
}
