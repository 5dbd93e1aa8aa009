package server

import (
	"net/http"
	"net/url"

	"givehaven/internal/metrics"
)

func (s *Service) redirectToLogin(w http.ResponseWriter, r *http.Request) {
	metrics.AuthRedirectsTotal.WithLabelValues("/login").Inc()
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

func (s *Service) redirectWithNotice(w http.ResponseWriter, r *http.Request, path, notice string) {
	v := url.Values{}
	v.Set("notice", notice)
	http.Redirect(w, r, path+"?"+v.Encode(), http.StatusSeeOther)
}

func (s *Service) redirectWithError(w http.ResponseWriter, r *http.Request, path, msg string) {
	v := url.Values{}
	v.Set("error", msg)
	http.Redirect(w, r, path+"?"+v.Encode(), http.StatusSeeOther)
}

func (s *Service) internalServerError(w http.ResponseWriter) {
	http.Error(w, "internal server error", http.StatusInternalServerError)
}
