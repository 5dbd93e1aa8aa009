package server

import (
	"context"
	"embed"
	"encoding/base64"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"net/http"
	"strings"
	"time"

	"givehaven/internal/preferences"
	"givehaven/pkg/types"

	"github.com/alexedwards/flow"
	"github.com/go-playground/form/v4"
	"github.com/go-playground/validator/v10"
	"github.com/gorilla/securecookie"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
)

//go:embed templates static
var uiFS embed.FS
var decoder = form.NewDecoder()

// Backend is the slice of the backend gateway the handlers depend on.
type Backend interface {
	GetCurrentSession(ctx context.Context, accessToken string) (*types.Session, error)
	IsUserSuperAdmin(ctx context.Context, userID string) (bool, error)
	SignIn(ctx context.Context, email, password string) (*types.AuthTokens, error)
	SignOut(ctx context.Context, accessToken string) error

	MyProfile(ctx context.Context, userID string) (*types.Profile, error)
	MyHome(ctx context.Context, ownerID string) (*types.Home, error)
	OpenNeeds(ctx context.Context, limit uint64) ([]*types.NeedCard, error)
	ImpactStats(ctx context.Context) (types.ImpactStats, error)
	AdminOverview(ctx context.Context) (*types.AdminOverview, error)
	SetHomeVerificationStatus(ctx context.Context, homeID, status string) error
	UpdateHomeLogo(ctx context.Context, ownerID string, body io.Reader, contentType string) (string, error)

	GetMyDonorChats(ctx context.Context, userID string) ([]*types.ChatRoomSummary, error)
	GetMyHomeChatRooms(ctx context.Context, userID string) ([]*types.ChatRoomSummary, error)
	PledgeToNeed(ctx context.Context, donorID, needID string) (*types.ChatRoom, error)
	ChatRoom(ctx context.Context, userID, roomID string) (*types.ChatRoom, error)
	ChatMessages(ctx context.Context, userID, roomID string) ([]*types.ChatMessage, error)
	SendChatMessage(ctx context.Context, userID, roomID, body string) error
}

type Service struct {
	logger    *logrus.Logger
	config    *types.Config
	backend   Backend
	prefs     preferences.Provider
	templates *template.Template

	cookie   *securecookie.SecureCookie
	validate *validator.Validate

	server *http.Server
}

// CookieCodec builds the codec shared by the session cookie and the cookie
// preference store from the base64 keys in config.
func CookieCodec(config *types.Config) (*securecookie.SecureCookie, error) {
	hashKey, err := base64.StdEncoding.DecodeString(config.CookieHashKey)
	if err != nil {
		return nil, fmt.Errorf("decode cookie hash key: %w", err)
	}
	if len(hashKey) < 32 {
		return nil, fmt.Errorf("cookie hash key must be at least 32 bytes, got %d", len(hashKey))
	}

	blockKey, err := base64.StdEncoding.DecodeString(config.CookieBlockKey)
	if err != nil {
		return nil, fmt.Errorf("decode cookie block key: %w", err)
	}
	switch len(blockKey) {
	case 16, 24, 32:
	default:
		return nil, fmt.Errorf("cookie block key must be 16, 24 or 32 bytes, got %d", len(blockKey))
	}

	return securecookie.New(hashKey, blockKey), nil
}

func New(
	config *types.Config,
	logger *logrus.Logger,
	backend Backend,
	prefs preferences.Provider,
	cookie *securecookie.SecureCookie,
) (*Service, error) {
	mux := flow.New()

	s := &Service{
		logger:   logger,
		config:   config,
		backend:  backend,
		prefs:    prefs,
		cookie:   cookie,
		validate: validator.New(),
		server: &http.Server{
			Addr:              fmt.Sprintf(":%d", config.ServerPort),
			Handler:           mux,
			ReadTimeout:       time.Duration(config.ReadTimeoutSec) * time.Second,
			ReadHeaderTimeout: time.Duration(config.ReadTimeoutSec) * time.Second,
			WriteTimeout:      time.Duration(config.WriteTimeoutSec) * time.Second,
			MaxHeaderBytes:    1 << 20,
		},
	}

	templates, err := loadTemplates()
	if err != nil {
		return nil, err
	}
	s.templates = templates

	if err := s.buildRouter(mux); err != nil {
		return nil, err
	}

	return s, nil
}

func (s *Service) Start() error {
	return s.server.ListenAndServe()
}

func (s *Service) Stop(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

func (s *Service) Handler() http.Handler {
	return s.server.Handler
}

func (s *Service) buildRouter(r *flow.Mux) error {
	r.Use(s.StripTrailingSlash)
	r.Use(s.LoggingMiddleware)
	r.Use(s.Authenticate)

	r.HandleFunc("/", s.handleHome, http.MethodGet)
	r.HandleFunc("/about", s.handleAbout, http.MethodGet)
	r.HandleFunc("/impact", s.handleImpact, http.MethodGet)

	r.HandleFunc("/login", s.handleGetLogin, http.MethodGet)
	r.HandleFunc("/login", s.handlePostLogin, http.MethodPost)
	r.HandleFunc("/logout", s.handlePostLogout, http.MethodPost)

	r.HandleFunc("/consent", s.handlePostConsent, http.MethodPost)

	r.Group(func(r *flow.Mux) {
		r.Use(s.RequireAuth)

		r.HandleFunc("/app", s.handleApp, http.MethodGet)
		r.HandleFunc("/verification/dismiss", s.handlePostVerificationDismiss, http.MethodPost)
		r.HandleFunc("/home/logo", s.handlePostHomeLogo, http.MethodPost)

		r.HandleFunc("/donor/chats", s.handleDonorChats, http.MethodGet)
		r.HandleFunc("/home/messages", s.handleHomeMessages, http.MethodGet)
		r.HandleFunc("/chats/:roomID", s.handleGetChatRoom, http.MethodGet)
		r.HandleFunc("/chats/:roomID", s.handlePostChatMessage, http.MethodPost)
		r.HandleFunc("/needs/:needID/pledge", s.handlePostPledge, http.MethodPost)
	})

	r.Group(func(r *flow.Mux) {
		r.Use(s.RequireSuperAdmin)

		r.HandleFunc("/admin", s.handleAdmin, http.MethodGet)
		r.HandleFunc("/admin/homes/:homeID/verification", s.handlePostAdminVerification, http.MethodPost)
	})

	r.HandleFunc("/healthz", s.handleHealth, http.MethodGet)
	r.Handle("/metrics", promhttp.Handler(), http.MethodGet)

	staticRoot, err := fs.Sub(uiFS, "static")
	if err != nil {
		return fmt.Errorf("mount static assets: %w", err)
	}
	r.Handle("/static/...", http.StripPrefix("/static/", http.FileServer(http.FS(staticRoot))), http.MethodGet)

	return nil
}

func loadTemplates() (*template.Template, error) {
	funcMap := template.FuncMap{
		"deref": func(s *string) string {
			if s == nil {
				return ""
			}
			return *s
		},
		"derefOr": func(s *string, defaultVal string) string {
			if s == nil || *s == "" {
				return defaultVal
			}
			return *s
		},
		"humanize": func(s string) string {
			return strings.ReplaceAll(s, "_", " ")
		},
		"date": func(t time.Time) string {
			return t.Format("Jan 2, 2006")
		},
		"initial": func(s string) string {
			s = strings.TrimSpace(s)
			if s == "" {
				return "?"
			}
			return strings.ToUpper(string([]rune(s)[:1]))
		},
	}

	t := template.New("").Funcs(funcMap)
	err := fs.WalkDir(uiFS, "templates", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(path, ".html") {
			return nil
		}

		data, err := fs.ReadFile(uiFS, path)
		if err != nil {
			return fmt.Errorf("read template %s: %w", path, err)
		}

		if _, err := t.Parse(string(data)); err != nil {
			return fmt.Errorf("parse template %s: %w", path, err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return t, nil
}
