package server

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"givehaven/internal/metrics"
	"givehaven/pkg/types"

	"github.com/sirupsen/logrus"
)

type contextKey string

const contextKeySession contextKey = "session"

type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

func (s *Service) LoggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		started := time.Now()
		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}

		next.ServeHTTP(rw, r)

		elapsed := time.Since(started)
		metrics.HTTPRequestDuration.WithLabelValues(r.Method, strconv.Itoa(rw.statusCode)).Observe(elapsed.Seconds())

		s.logger.WithFields(logrus.Fields{
			"method":      r.Method,
			"path":        r.URL.Path,
			"status":      rw.statusCode,
			"duration_ms": elapsed.Milliseconds(),
		}).Info("http request")
	})
}

// Authenticate attaches the visitor's session to the request context when a
// valid one exists. Pages stay public; gates decide what to do without one.
func (s *Service) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		session, err := s.sessionFromRequest(r)
		if err != nil {
			s.logger.WithError(err).Debug("ignoring invalid session cookie")
		}

		if session != nil {
			r = r.WithContext(context.WithValue(r.Context(), contextKeySession, session))
		}

		next.ServeHTTP(w, r)
	})
}

// RequireAuth sends visitors without a session to /login and remembers where
// they were headed.
func (s *Service) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if sessionFromContext(r.Context()) == nil {
			if r.Method == http.MethodGet {
				s.setRedirectCookie(w, r.URL.RequestURI(), time.Minute*5)
			}
			s.redirectToLogin(w, r)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// RequireSuperAdmin gates the admin pages. Every failure redirects without a
// message: no session or a failed lookup goes to /login, a signed in user who
// is not a super admin goes to /.
func (s *Service) RequireSuperAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		session := sessionFromContext(ctx)
		if session == nil {
			if err := s.sessionCookieError(r); err != nil {
				s.logger.WithError(err).Error("failed to decode session cookie for admin gate")
			}
			s.redirectToLogin(w, r)
			return
		}

		isAdmin, err := s.backend.IsUserSuperAdmin(ctx, session.UserID)
		if err != nil {
			s.logger.WithError(err).WithField("user_id", session.UserID).Error("failed to check super admin")
			s.redirectToLogin(w, r)
			return
		}

		if !isAdmin {
			metrics.AuthRedirectsTotal.WithLabelValues("/").Inc()
			http.Redirect(w, r, "/", http.StatusSeeOther)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (s *Service) StripTrailingSlash(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path := r.URL.Path

		if path != "/" && strings.HasSuffix(path, "/") {
			newURL := *r.URL
			newURL.Path = strings.TrimSuffix(path, "/")

			http.Redirect(w, r, newURL.String(), http.StatusMovedPermanently)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func sessionFromContext(ctx context.Context) *types.Session {
	session, _ := ctx.Value(contextKeySession).(*types.Session)
	return session
}
