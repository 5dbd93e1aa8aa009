package server

import (
	"errors"
	"net/http"
	"testing"

	"givehaven/pkg/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequireSuperAdmin(t *testing.T) {
	tests := []struct {
		name         string
		setup        func(t *testing.T, ts *testServer) []*http.Cookie
		wantCode     int
		wantLocation string
	}{
		{
			name:         "no session",
			setup:        func(*testing.T, *testServer) []*http.Cookie { return nil },
			wantCode:     http.StatusSeeOther,
			wantLocation: "/login",
		},
		{
			name: "tampered cookie",
			setup: func(_ *testing.T, ts *testServer) []*http.Cookie {
				return []*http.Cookie{{Name: ts.svc.config.CookieName, Value: "not-a-real-cookie"}}
			},
			wantCode:     http.StatusSeeOther,
			wantLocation: "/login",
		},
		{
			name: "expired token",
			setup: func(t *testing.T, ts *testServer) []*http.Cookie {
				cookie := ts.signIn(t, "admin-1")
				delete(ts.backend.sessions, "token-admin-1")
				return []*http.Cookie{cookie}
			},
			wantCode:     http.StatusSeeOther,
			wantLocation: "/login",
		},
		{
			name: "super admin lookup fails",
			setup: func(t *testing.T, ts *testServer) []*http.Cookie {
				ts.backend.superAdminErr = errors.New("connection refused")
				return []*http.Cookie{ts.signIn(t, "admin-1")}
			},
			wantCode:     http.StatusSeeOther,
			wantLocation: "/login",
		},
		{
			name: "not a super admin",
			setup: func(t *testing.T, ts *testServer) []*http.Cookie {
				return []*http.Cookie{ts.signIn(t, "donor-1")}
			},
			wantCode:     http.StatusSeeOther,
			wantLocation: "/",
		},
		{
			name: "super admin",
			setup: func(t *testing.T, ts *testServer) []*http.Cookie {
				ts.backend.superAdmins["admin-1"] = true
				return []*http.Cookie{ts.signIn(t, "admin-1")}
			},
			wantCode: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := newTestServer(t)
			cookies := tt.setup(t, ts)

			rec := ts.get("/admin", cookies...)
			assert.Equal(t, tt.wantCode, rec.Code)
			assert.Equal(t, tt.wantLocation, rec.Header().Get("Location"))
			if tt.wantCode == http.StatusOK {
				assert.Contains(t, rec.Body.String(), "Verification queue")
			}
		})
	}
}

func TestAdminVerificationUpdate(t *testing.T) {
	ts := newTestServer(t)
	ts.backend.superAdmins["admin-1"] = true
	cookie := ts.signIn(t, "admin-1")

	rec := ts.postForm("/admin/homes/home-2/verification", map[string][]string{"status": {"verified"}}, cookie)
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Contains(t, rec.Header().Get("Location"), "/admin?notice=")
	assert.Equal(t, "verified", ts.backend.statusSets["home-2"])

	rec = ts.postForm("/admin/homes/home-2/verification", map[string][]string{"status": {"lost"}}, cookie)
	assert.Contains(t, rec.Header().Get("Location"), "/admin?error=")

	// the gate covers writes too
	rec = ts.postForm("/admin/homes/home-2/verification", map[string][]string{"status": {"rejected"}}, ts.signIn(t, "donor-1"))
	assert.Equal(t, "/", rec.Header().Get("Location"))
	assert.Equal(t, "verified", ts.backend.statusSets["home-2"])
}

func TestAdminPageListsReviewQueue(t *testing.T) {
	ts := newTestServer(t)
	ts.backend.superAdmins["admin-1"] = true
	ts.backend.overview = &types.AdminOverview{
		TotalHomes: 4,
		HomesInReview: []*types.Home{
			{ID: "home-2", Name: "Little Lambs", VerificationStatus: "needs_documents"},
		},
	}

	rec := ts.get("/admin", ts.signIn(t, "admin-1"))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Little Lambs")
	assert.Contains(t, rec.Body.String(), `action="/admin/homes/home-2/verification"`)
}

func TestStripTrailingSlash(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.get("/about/?ref=nav")
	assert.Equal(t, http.StatusMovedPermanently, rec.Code)
	assert.Equal(t, "/about?ref=nav", rec.Header().Get("Location"))
}

func TestHealthz(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.get("/healthz")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())
}

func TestRequireSuperAdmin_ReusesAuthenticatedSession(t *testing.T) {
	ts := newTestServer(t)
	ts.backend.superAdmins["admin-1"] = true

	rec := ts.get("/admin", ts.signIn(t, "admin-1"))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, ts.backend.sessionLookups)
}
