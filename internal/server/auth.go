package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"givehaven/pkg/types"
)

const redirectCookieName = "gh_redirect"

type loginForm struct {
	Email    string `form:"email" validate:"required,email"`
	Password string `form:"password" validate:"required"`
}

type LoginPageData struct {
	types.BasePageData
	Email string
}

func (s *Service) handleGetLogin(w http.ResponseWriter, r *http.Request) {
	if sessionFromContext(r.Context()) != nil {
		http.Redirect(w, r, "/app", http.StatusSeeOther)
		return
	}

	data := &LoginPageData{
		BasePageData: s.basePageData(r, "Sign in"),
	}

	if err := s.renderTemplate(w, r, "page.login", data); err != nil {
		s.logger.WithError(err).Error("failed to render login page")
		s.internalServerError(w)
		return
	}
}

func (s *Service) handlePostLogin(w http.ResponseWriter, r *http.Request) {
	var input loginForm
	if err := s.decodeForm(r, &input); err != nil {
		s.renderLoginError(w, r, input.Email, err.Error(), http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	tokens, err := s.backend.SignIn(ctx, input.Email, input.Password)
	if err != nil {
		if errors.Is(err, types.ErrInvalidCredentials) {
			s.renderLoginError(w, r, input.Email, "Invalid email or password.", http.StatusUnauthorized)
			return
		}
		s.logger.WithError(err).Error("failed to sign in")
		s.renderLoginError(w, r, input.Email, "We couldn't sign you in right now. Please try again.", http.StatusBadGateway)
		return
	}

	if err := s.setSessionCookie(w, tokens); err != nil {
		s.logger.WithError(err).Error("failed to encrypt access token")
		s.internalServerError(w)
		return
	}

	s.logger.WithField("user_id", tokens.UserID).Info("user logged in")

	// Check to see if this login attempt was the result of an unauthed redirect
	if redirectCookie, err := r.Cookie(redirectCookieName); err == nil {
		s.clearRedirectCookie(w)
		if isLocalPath(redirectCookie.Value) {
			http.Redirect(w, r, redirectCookie.Value, http.StatusSeeOther)
			return
		}
	}

	http.Redirect(w, r, "/app", http.StatusSeeOther)
}

func (s *Service) renderLoginError(w http.ResponseWriter, r *http.Request, email, message string, status int) {
	data := &LoginPageData{
		BasePageData: s.basePageData(r, "Sign in"),
		Email:        email,
	}
	data.Error = message

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := s.renderTemplate(w, r, "page.login", data); err != nil {
		s.logger.WithError(err).Error("failed to render login page")
	}
}

// handlePostLogout always lands on /app, which bounces to /login once the
// session cookie is gone.
func (s *Service) handlePostLogout(w http.ResponseWriter, r *http.Request) {
	if accessToken, ok := s.accessTokenFromRequest(r); ok {
		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		if err := s.backend.SignOut(ctx, accessToken); err != nil {
			s.logger.WithError(err).Warn("failed to revoke session on logout")
		}
	}

	s.clearSessionCookie(w)
	http.Redirect(w, r, "/app", http.StatusSeeOther)
}

func (s *Service) accessTokenFromRequest(r *http.Request) (string, bool) {
	cookie, err := r.Cookie(s.config.CookieName)
	if err != nil || cookie.Value == "" {
		return "", false
	}

	var accessToken string
	if err := s.cookie.Decode(s.config.CookieName, cookie.Value, &accessToken); err != nil {
		return "", false
	}

	return accessToken, accessToken != ""
}

// sessionFromRequest returns nil, nil when the visitor has no session cookie.
func (s *Service) sessionFromRequest(r *http.Request) (*types.Session, error) {
	cookie, err := r.Cookie(s.config.CookieName)
	if err != nil {
		return nil, nil
	}

	var accessToken string
	if err := s.cookie.Decode(s.config.CookieName, cookie.Value, &accessToken); err != nil {
		return nil, fmt.Errorf("decode session cookie: %w", err)
	}

	return s.backend.GetCurrentSession(r.Context(), accessToken)
}

// sessionCookieError reports a session cookie that is present but cannot be
// decoded. A missing cookie is not an error.
func (s *Service) sessionCookieError(r *http.Request) error {
	cookie, err := r.Cookie(s.config.CookieName)
	if err != nil {
		return nil
	}

	var accessToken string
	if err := s.cookie.Decode(s.config.CookieName, cookie.Value, &accessToken); err != nil {
		return fmt.Errorf("decode session cookie: %w", err)
	}
	return nil
}

func (s *Service) setSessionCookie(w http.ResponseWriter, tokens *types.AuthTokens) error {
	encryptedToken, err := s.cookie.Encode(s.config.CookieName, tokens.AccessToken)
	if err != nil {
		return err
	}

	maxAge := tokens.ExpiresIn
	if maxAge <= 0 {
		maxAge = s.config.SessionMaxAgeSec
	}

	http.SetCookie(w, &http.Cookie{
		Name:     s.config.CookieName,
		Value:    encryptedToken,
		HttpOnly: true,
		Secure:   !s.config.IsDevelopment(),
		SameSite: http.SameSiteLaxMode,
		MaxAge:   maxAge,
		Path:     "/",
	})

	return nil
}

func (s *Service) clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     s.config.CookieName,
		Value:    "",
		HttpOnly: true,
		Secure:   !s.config.IsDevelopment(),
		SameSite: http.SameSiteLaxMode,
		Path:     "/",
		MaxAge:   -1,
	})
}

func (s *Service) setRedirectCookie(w http.ResponseWriter, path string, age time.Duration) {
	http.SetCookie(w, &http.Cookie{
		Name:     redirectCookieName,
		Value:    path,
		HttpOnly: true,
		Secure:   !s.config.IsDevelopment(),
		SameSite: http.SameSiteLaxMode,
		Path:     "/",
		MaxAge:   int(age.Seconds()),
	})
}

func (s *Service) clearRedirectCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     redirectCookieName,
		Value:    "",
		HttpOnly: true,
		Secure:   !s.config.IsDevelopment(),
		SameSite: http.SameSiteLaxMode,
		Path:     "/",
		MaxAge:   -1,
	})
}

// isLocalPath rejects anything that could send the browser off-site.
func isLocalPath(p string) bool {
	return strings.HasPrefix(p, "/") && !strings.HasPrefix(p, "//") && !strings.HasPrefix(p, "/\\")
}
