package server

import (
	"net/http"
	"strings"

	"givehaven/internal/consent"
	"givehaven/pkg/types"
)

func (s *Service) basePageData(r *http.Request, title string) types.BasePageData {
	query := r.URL.Query()
	return types.BasePageData{
		Title:  title,
		Notice: strings.TrimSpace(query.Get("notice")),
		Error:  strings.TrimSpace(query.Get("error")),
	}
}

func (s *Service) renderTemplate(w http.ResponseWriter, r *http.Request, templateName string, data any) error {
	session := sessionFromContext(r.Context())

	if setter, ok := data.(types.NavbarDataSetter); ok {
		navbar := types.NavbarData{}
		if session != nil {
			navbar.IsAuthenticated = true
			navbar.UserID = session.UserID
			navbar.UserEmail = session.Email
		}
		setter.SetNavbarData(navbar)
	}

	if setter, ok := data.(types.ConsentDataSetter); ok {
		choice, chosen, err := consent.NewBanner(s.prefs.For(w, r)).Current(r.Context())
		if err != nil {
			// store unavailable: treat as already chosen
			s.logger.WithError(err).Warn("failed to read consent choice")
			chosen = true
		}
		setter.SetConsentData(types.ConsentData{
			Show:             !chosen,
			AppearDelayMs:    consent.AppearDelay.Milliseconds(),
			ReturnTo:         r.URL.Path,
			AnalyticsAllowed: chosen && choice == consent.ChoiceAll,
		})
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	return s.templates.ExecuteTemplate(w, templateName, data)
}
