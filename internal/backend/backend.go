// Package backend is the single gateway page handlers use to reach Supabase:
// auth, session verification, the Postgres tables and logo storage.
package backend

import (
	"context"

	"givehaven/internal/storage"
	"givehaven/pkg/types"

	"github.com/sirupsen/logrus"
)

type ProfileStore interface {
	Profile(ctx context.Context, userID string) (*types.Profile, error)
	IsSuperAdmin(ctx context.Context, userID string) (bool, error)
	CountByRole(ctx context.Context, role types.Role) (int, error)
	EnsureProfile(ctx context.Context, userID, displayName string) error
}

type HomeStore interface {
	Home(ctx context.Context, homeID string) (*types.Home, error)
	HomeByOwner(ctx context.Context, ownerID string) (*types.Home, error)
	HomesByVerificationStatus(ctx context.Context, statuses ...string) ([]*types.Home, error)
	CountHomes(ctx context.Context, statuses ...string) (int, error)
	UpdateVerificationStatus(ctx context.Context, homeID, status string) error
	UpdateLogo(ctx context.Context, homeID, logoKey string) error
}

type NeedStore interface {
	Need(ctx context.Context, needID string) (*types.Need, error)
	OpenNeedCards(ctx context.Context, limit uint64) ([]*types.NeedCard, error)
	CountByStatus(ctx context.Context, status types.NeedStatus) (int, error)
}

type ChatStore interface {
	DonorChats(ctx context.Context, donorID string) ([]*types.ChatRoomSummary, error)
	HomeChatRooms(ctx context.Context, ownerID string) ([]*types.ChatRoomSummary, error)
	ChatRoom(ctx context.Context, roomID string) (*types.ChatRoom, error)
	CreateForPledge(ctx context.Context, need *types.Need, donorID string) (*types.ChatRoom, error)
	Messages(ctx context.Context, roomID string) ([]*types.ChatMessage, error)
	CreateMessage(ctx context.Context, message *types.ChatMessage) error
}

type Authenticator interface {
	SignIn(ctx context.Context, email, password string) (*types.AuthTokens, error)
	SignOut(ctx context.Context, accessToken string) error
}

type TokenVerifier interface {
	Verify(ctx context.Context, accessToken string) (*types.Session, error)
}

type Client struct {
	logger   logrus.FieldLogger
	profiles ProfileStore
	homes    HomeStore
	needs    NeedStore
	chats    ChatStore
	auth     Authenticator
	verifier TokenVerifier
	bucket   storage.Bucket
}

func New(
	logger logrus.FieldLogger,
	profiles ProfileStore,
	homes HomeStore,
	needs NeedStore,
	chats ChatStore,
	auth Authenticator,
	verifier TokenVerifier,
	bucket storage.Bucket,
) *Client {
	return &Client{
		logger:   logger,
		profiles: profiles,
		homes:    homes,
		needs:    needs,
		chats:    chats,
		auth:     auth,
		verifier: verifier,
		bucket:   bucket,
	}
}

func (c *Client) resolveImage(ref *string) *string {
	if ref == nil {
		return nil
	}
	resolved := storage.ResolveURL(c.bucket, *ref)
	return &resolved
}
