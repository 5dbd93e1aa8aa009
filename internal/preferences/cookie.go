package preferences

import (
	"context"
	"net/http"
	"strings"

	"github.com/gorilla/securecookie"
)

const (
	DefaultCookieName = "gh_prefs"
	cookieMaxAgeSec   = 365 * 24 * 60 * 60
)

// CookieProvider keeps every preference of a visitor in one encrypted cookie.
type CookieProvider struct {
	codec  *securecookie.SecureCookie
	name   string
	secure bool
}

func NewCookieProvider(codec *securecookie.SecureCookie, secure bool) *CookieProvider {
	return &CookieProvider{codec: codec, name: DefaultCookieName, secure: secure}
}

func (p *CookieProvider) For(w http.ResponseWriter, r *http.Request) Store {
	values := make(map[string]string)
	if cookie, err := r.Cookie(p.name); err == nil {
		if err := p.codec.Decode(p.name, cookie.Value, &values); err != nil {
			// tampered or rotated keys, start over
			values = make(map[string]string)
		}
	}

	return &cookieStore{provider: p, w: w, values: values}
}

type cookieStore struct {
	provider *CookieProvider
	w        http.ResponseWriter
	values   map[string]string
}

func (s *cookieStore) Get(_ context.Context, key string) (string, bool, error) {
	v, ok := s.values[key]
	return v, ok, nil
}

func (s *cookieStore) Set(_ context.Context, key, value string) error {
	s.values[key] = value
	return s.write()
}

func (s *cookieStore) Clear(_ context.Context, key string) error {
	if _, ok := s.values[key]; !ok {
		return nil
	}
	delete(s.values, key)
	return s.write()
}

func (s *cookieStore) write() error {
	encoded, err := s.provider.codec.Encode(s.provider.name, s.values)
	if err != nil {
		return err
	}

	// only the last write of a request should reach the browser
	header := s.w.Header()
	prefix := s.provider.name + "="
	existing := header.Values("Set-Cookie")
	header.Del("Set-Cookie")
	for _, v := range existing {
		if !strings.HasPrefix(v, prefix) {
			header.Add("Set-Cookie", v)
		}
	}

	http.SetCookie(s.w, &http.Cookie{
		Name:     s.provider.name,
		Value:    encoded,
		HttpOnly: true,
		Secure:   s.provider.secure,
		SameSite: http.SameSiteLaxMode,
		Path:     "/",
		MaxAge:   cookieMaxAgeSec,
	})

	return nil
}
