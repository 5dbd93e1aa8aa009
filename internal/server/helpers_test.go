package server

import (
	"context"
	"encoding/base64"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"givehaven/internal/preferences"
	"givehaven/pkg/types"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
)

type fakeBackend struct {
	sessions       map[string]*types.Session
	sessionLookups int
	superAdmins    map[string]bool
	superAdminErr  error

	signInTokens *types.AuthTokens
	signInErr    error
	signedOut    []string

	profiles map[string]*types.Profile
	homes    map[string]*types.Home

	openNeeds  []*types.NeedCard
	needsErr   error
	stats      types.ImpactStats
	statsErr   error
	overview   *types.AdminOverview
	statusSets map[string]string

	donorChats []*types.ChatRoomSummary
	homeChats  []*types.ChatRoomSummary
	chatsErr   error

	pledgeRoom *types.ChatRoom
	pledgeErr  error
	rooms      map[string]*types.ChatRoom
	messages   []*types.ChatMessage
	sendErr    error

	logoContentType string
	logoErr         error
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{
		sessions:    map[string]*types.Session{},
		superAdmins: map[string]bool{},
		profiles:    map[string]*types.Profile{},
		homes:       map[string]*types.Home{},
		rooms:       map[string]*types.ChatRoom{},
		statusSets:  map[string]string{},
	}
}

func (f *fakeBackend) GetCurrentSession(_ context.Context, accessToken string) (*types.Session, error) {
	if accessToken == "" {
		return nil, nil
	}
	f.sessionLookups++
	session, ok := f.sessions[accessToken]
	if !ok {
		return nil, io.ErrUnexpectedEOF
	}
	return session, nil
}

func (f *fakeBackend) IsUserSuperAdmin(_ context.Context, userID string) (bool, error) {
	if f.superAdminErr != nil {
		return false, f.superAdminErr
	}
	return f.superAdmins[userID], nil
}

func (f *fakeBackend) SignIn(context.Context, string, string) (*types.AuthTokens, error) {
	return f.signInTokens, f.signInErr
}

func (f *fakeBackend) SignOut(_ context.Context, accessToken string) error {
	f.signedOut = append(f.signedOut, accessToken)
	return nil
}

func (f *fakeBackend) MyProfile(_ context.Context, userID string) (*types.Profile, error) {
	p, ok := f.profiles[userID]
	if !ok {
		return nil, types.ErrProfileNotFound
	}
	return p, nil
}

func (f *fakeBackend) MyHome(_ context.Context, ownerID string) (*types.Home, error) {
	h, ok := f.homes[ownerID]
	if !ok {
		return nil, types.ErrHomeNotFound
	}
	return h, nil
}

func (f *fakeBackend) OpenNeeds(context.Context, uint64) ([]*types.NeedCard, error) {
	return f.openNeeds, f.needsErr
}

func (f *fakeBackend) ImpactStats(context.Context) (types.ImpactStats, error) {
	return f.stats, f.statsErr
}

func (f *fakeBackend) AdminOverview(context.Context) (*types.AdminOverview, error) {
	if f.overview == nil {
		return &types.AdminOverview{HomesInReview: []*types.Home{}}, nil
	}
	return f.overview, nil
}

func (f *fakeBackend) SetHomeVerificationStatus(_ context.Context, homeID, status string) error {
	switch status {
	case "pending", "reviewing", "needs_documents", "verified", "approved", "rejected":
	default:
		return types.ErrInvalidStatus
	}
	f.statusSets[homeID] = status
	return nil
}

func (f *fakeBackend) UpdateHomeLogo(_ context.Context, _ string, body io.Reader, contentType string) (string, error) {
	if f.logoErr != nil {
		return "", f.logoErr
	}
	_, _ = io.Copy(io.Discard, body)
	f.logoContentType = contentType
	return "https://cdn.test/logo.png", nil
}

func (f *fakeBackend) GetMyDonorChats(context.Context, string) ([]*types.ChatRoomSummary, error) {
	return f.donorChats, f.chatsErr
}

func (f *fakeBackend) GetMyHomeChatRooms(context.Context, string) ([]*types.ChatRoomSummary, error) {
	return f.homeChats, f.chatsErr
}

func (f *fakeBackend) PledgeToNeed(context.Context, string, string) (*types.ChatRoom, error) {
	return f.pledgeRoom, f.pledgeErr
}

func (f *fakeBackend) ChatRoom(_ context.Context, userID, roomID string) (*types.ChatRoom, error) {
	room, ok := f.rooms[roomID]
	if !ok {
		return nil, types.ErrChatRoomNotFound
	}
	if room.DonorID != userID {
		return nil, types.ErrNotChatMember
	}
	return room, nil
}

func (f *fakeBackend) ChatMessages(_ context.Context, _, roomID string) ([]*types.ChatMessage, error) {
	out := make([]*types.ChatMessage, 0)
	for _, m := range f.messages {
		if m.RoomID == roomID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (f *fakeBackend) SendChatMessage(_ context.Context, userID, roomID, body string) error {
	if f.sendErr != nil {
		return f.sendErr
	}
	f.messages = append(f.messages, &types.ChatMessage{RoomID: roomID, SenderID: userID, Body: body})
	return nil
}

type testServer struct {
	svc     *Service
	backend *fakeBackend
	prefs   *preferences.MemoryProvider
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	config := &types.Config{
		Environment:      "development",
		CookieName:       "session_id",
		SessionMaxAgeSec: 3600,
		CookieHashKey:    base64.StdEncoding.EncodeToString([]byte(strings.Repeat("h", 32))),
		CookieBlockKey:   base64.StdEncoding.EncodeToString([]byte(strings.Repeat("b", 32))),
	}

	codec, err := CookieCodec(config)
	require.NoError(t, err)

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	be := newFakeBackend()
	prefs := preferences.NewMemoryProvider()

	svc, err := New(config, logger, be, prefs, codec)
	require.NoError(t, err)

	return &testServer{svc: svc, backend: be, prefs: prefs}
}

// signIn registers a session for userID and returns the cookie that carries it.
func (ts *testServer) signIn(t *testing.T, userID string) *http.Cookie {
	t.Helper()

	token := "token-" + userID
	ts.backend.sessions[token] = &types.Session{UserID: userID, Email: userID + "@example.org", AccessToken: token}

	encoded, err := ts.svc.cookie.Encode(ts.svc.config.CookieName, token)
	require.NoError(t, err)

	return &http.Cookie{Name: ts.svc.config.CookieName, Value: encoded}
}

func (ts *testServer) do(req *http.Request, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	ts.svc.Handler().ServeHTTP(rec, req)
	return rec
}

func (ts *testServer) get(path string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	return ts.do(httptest.NewRequest(http.MethodGet, path, nil), cookies...)
}

func (ts *testServer) postForm(path string, form url.Values, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return ts.do(req, cookies...)
}

func findCookie(rec *httptest.ResponseRecorder, name string) *http.Cookie {
	for _, c := range rec.Result().Cookies() {
		if c.Name == name {
			return c
		}
	}
	return nil
}
