package backend

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"

	"givehaven/pkg/types"

	"github.com/sirupsen/logrus"
)

type fakeProfiles struct {
	profiles map[string]*types.Profile
	ensured  []string
	err      error
}

func (f *fakeProfiles) Profile(_ context.Context, userID string) (*types.Profile, error) {
	if f.err != nil {
		return nil, f.err
	}
	p, ok := f.profiles[userID]
	if !ok {
		return nil, types.ErrProfileNotFound
	}
	cp := *p
	return &cp, nil
}

func (f *fakeProfiles) IsSuperAdmin(_ context.Context, userID string) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	p, ok := f.profiles[userID]
	return ok && p.IsSuperAdmin, nil
}

func (f *fakeProfiles) CountByRole(_ context.Context, role types.Role) (int, error) {
	n := 0
	for _, p := range f.profiles {
		if p.Role == role {
			n++
		}
	}
	return n, f.err
}

func (f *fakeProfiles) EnsureProfile(_ context.Context, userID, displayName string) error {
	f.ensured = append(f.ensured, userID+":"+displayName)
	return f.err
}

type fakeHomes struct {
	homes         map[string]*types.Home
	statusUpdates map[string]string
	logoUpdates   map[string]string
	err           error
}

func (f *fakeHomes) Home(_ context.Context, homeID string) (*types.Home, error) {
	h, ok := f.homes[homeID]
	if !ok {
		return nil, types.ErrHomeNotFound
	}
	cp := *h
	return &cp, nil
}

func (f *fakeHomes) HomeByOwner(_ context.Context, ownerID string) (*types.Home, error) {
	for _, h := range f.homes {
		if h.OwnerID == ownerID {
			cp := *h
			return &cp, nil
		}
	}
	return nil, types.ErrHomeNotFound
}

func (f *fakeHomes) HomesByVerificationStatus(_ context.Context, statuses ...string) ([]*types.Home, error) {
	out := make([]*types.Home, 0)
	for _, h := range f.homes {
		for _, s := range statuses {
			if h.VerificationStatus == s {
				cp := *h
				out = append(out, &cp)
			}
		}
	}
	return out, f.err
}

func (f *fakeHomes) CountHomes(_ context.Context, statuses ...string) (int, error) {
	if len(statuses) == 0 {
		return len(f.homes), f.err
	}
	n := 0
	for _, h := range f.homes {
		for _, s := range statuses {
			if h.VerificationStatus == s {
				n++
			}
		}
	}
	return n, f.err
}

func (f *fakeHomes) UpdateVerificationStatus(_ context.Context, homeID, status string) error {
	if f.statusUpdates == nil {
		f.statusUpdates = map[string]string{}
	}
	f.statusUpdates[homeID] = status
	return f.err
}

func (f *fakeHomes) UpdateLogo(_ context.Context, homeID, logoKey string) error {
	if f.logoUpdates == nil {
		f.logoUpdates = map[string]string{}
	}
	f.logoUpdates[homeID] = logoKey
	return f.err
}

type fakeNeeds struct {
	needs map[string]*types.Need
	cards []*types.NeedCard
	err   error
}

func (f *fakeNeeds) Need(_ context.Context, needID string) (*types.Need, error) {
	n, ok := f.needs[needID]
	if !ok {
		return nil, types.ErrNeedNotFound
	}
	cp := *n
	return &cp, nil
}

func (f *fakeNeeds) OpenNeedCards(_ context.Context, limit uint64) ([]*types.NeedCard, error) {
	if f.err != nil {
		return nil, f.err
	}
	if uint64(len(f.cards)) > limit {
		return f.cards[:limit], nil
	}
	return f.cards, nil
}

func (f *fakeNeeds) CountByStatus(_ context.Context, status types.NeedStatus) (int, error) {
	n := 0
	for _, need := range f.needs {
		if need.Status == status {
			n++
		}
	}
	return n, f.err
}

type fakeChats struct {
	donorChats []*types.ChatRoomSummary
	homeChats  []*types.ChatRoomSummary
	rooms      map[string]*types.ChatRoom
	messages   []*types.ChatMessage
	pledged    []string
	err        error
}

func (f *fakeChats) DonorChats(context.Context, string) ([]*types.ChatRoomSummary, error) {
	return f.donorChats, f.err
}

func (f *fakeChats) HomeChatRooms(context.Context, string) ([]*types.ChatRoomSummary, error) {
	return f.homeChats, f.err
}

func (f *fakeChats) ChatRoom(_ context.Context, roomID string) (*types.ChatRoom, error) {
	r, ok := f.rooms[roomID]
	if !ok {
		return nil, types.ErrChatRoomNotFound
	}
	return r, nil
}

func (f *fakeChats) CreateForPledge(_ context.Context, need *types.Need, donorID string) (*types.ChatRoom, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.pledged = append(f.pledged, need.ID+":"+donorID)
	return &types.ChatRoom{ID: "room-new", NeedID: need.ID, DonorID: donorID, HomeID: need.HomeID}, nil
}

func (f *fakeChats) Messages(_ context.Context, roomID string) ([]*types.ChatMessage, error) {
	out := make([]*types.ChatMessage, 0)
	for _, m := range f.messages {
		if m.RoomID == roomID {
			out = append(out, m)
		}
	}
	return out, f.err
}

func (f *fakeChats) CreateMessage(_ context.Context, message *types.ChatMessage) error {
	f.messages = append(f.messages, message)
	return f.err
}

type fakeAuth struct {
	tokens     *types.AuthTokens
	err        error
	signedOut  []string
	signOutErr error
}

func (f *fakeAuth) SignIn(context.Context, string, string) (*types.AuthTokens, error) {
	return f.tokens, f.err
}

func (f *fakeAuth) SignOut(_ context.Context, accessToken string) error {
	f.signedOut = append(f.signedOut, accessToken)
	return f.signOutErr
}

type fakeVerifier struct {
	sessions map[string]*types.Session
}

func (f *fakeVerifier) Verify(_ context.Context, accessToken string) (*types.Session, error) {
	s, ok := f.sessions[accessToken]
	if !ok {
		return nil, errors.New("token is expired")
	}
	return s, nil
}

type fakeBucket struct {
	objects map[string][]byte
	deleted []string
}

func (f *fakeBucket) Put(_ context.Context, key string, body io.Reader, _ string) error {
	if f.objects == nil {
		f.objects = map[string][]byte{}
	}
	b, err := io.ReadAll(body)
	if err != nil {
		return err
	}
	f.objects[key] = b
	return nil
}

func (f *fakeBucket) Delete(_ context.Context, key string) error {
	f.deleted = append(f.deleted, key)
	return nil
}

func (f *fakeBucket) PublicURL(key string) string {
	return "https://cdn.test/" + key
}

type fixture struct {
	client   *Client
	profiles *fakeProfiles
	homes    *fakeHomes
	needs    *fakeNeeds
	chats    *fakeChats
	auth     *fakeAuth
	verifier *fakeVerifier
	bucket   *fakeBucket
	logs     *bytes.Buffer
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	logs := new(bytes.Buffer)
	logger := logrus.New()
	logger.SetOutput(logs)

	f := &fixture{
		profiles: &fakeProfiles{profiles: map[string]*types.Profile{
			"donor-1": {ID: "donor-1", Role: types.RoleDonor},
			"owner-1": {ID: "owner-1", Role: types.RoleHome},
			"admin-1": {ID: "admin-1", Role: types.RoleAdmin, IsSuperAdmin: true},
		}},
		homes: &fakeHomes{homes: map[string]*types.Home{
			"home-1": {ID: "home-1", OwnerID: "owner-1", Name: "Hope House", VerificationStatus: "verified"},
			"home-2": {ID: "home-2", OwnerID: "owner-2", Name: "Little Lambs", VerificationStatus: "pending"},
		}},
		needs: &fakeNeeds{needs: map[string]*types.Need{
			"need-open":    {ID: "need-open", HomeID: "home-1", Title: "Blankets", Status: types.NeedStatusOpen},
			"need-pending": {ID: "need-pending", HomeID: "home-1", Title: "Rice", Status: types.NeedStatusPendingPickup},
			"need-done":    {ID: "need-done", HomeID: "home-1", Title: "Shoes", Status: types.NeedStatusCompleted},
		}},
		chats: &fakeChats{rooms: map[string]*types.ChatRoom{
			"room-1": {ID: "room-1", NeedID: "need-pending", DonorID: "donor-1", HomeID: "home-1"},
		}},
		auth:     &fakeAuth{},
		verifier: &fakeVerifier{sessions: map[string]*types.Session{"good-token": {UserID: "donor-1", Email: "d@example.org"}}},
		bucket:   &fakeBucket{},
		logs:     logs,
	}

	f.client = New(logger, f.profiles, f.homes, f.needs, f.chats, f.auth, f.verifier, f.bucket)
	return f
}
