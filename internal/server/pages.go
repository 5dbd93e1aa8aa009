package server

import (
	"context"
	"errors"
	"net/http"

	"givehaven/internal/loader"
	"givehaven/internal/preferences"
	"givehaven/internal/verification"
	"givehaven/pkg/types"
)

const featuredNeedsLimit = 6

type HomePageData struct {
	types.BasePageData
	Needs loader.Result[*types.NeedCard]
	Stats types.ImpactStats
}

type ImpactPageData struct {
	types.BasePageData
	Stats            types.ImpactStats
	StatsUnavailable bool
}

// VerificationBannerData is what the dashboard hands the banner component.
type VerificationBannerData struct {
	verification.Display
	Visible       bool
	Celebrate     bool
	CelebrationMs int64
}

type AppPageData struct {
	types.BasePageData
	Profile      *types.Profile
	Home         *types.Home
	IsHome       bool
	Verification *VerificationBannerData
	OpenNeeds    loader.Result[*types.NeedCard]
}

func (s *Service) handleHome(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	data := &HomePageData{
		BasePageData: s.basePageData(r, ""),
		Needs: loader.Load(ctx, s.logger, "open_needs", func(ctx context.Context) ([]*types.NeedCard, error) {
			return s.backend.OpenNeeds(ctx, featuredNeedsLimit)
		}),
	}

	stats, err := s.backend.ImpactStats(ctx)
	if err != nil {
		s.logger.WithError(err).Warn("failed to load impact stats for home page")
	}
	data.Stats = stats

	if err := s.renderTemplate(w, r, "page.home", data); err != nil {
		s.logger.WithError(err).Error("failed to render home page")
		s.internalServerError(w)
		return
	}
}

func (s *Service) handleAbout(w http.ResponseWriter, r *http.Request) {
	data := &struct{ types.BasePageData }{s.basePageData(r, "About")}

	if err := s.renderTemplate(w, r, "page.about", data); err != nil {
		s.logger.WithError(err).Error("failed to render about page")
		s.internalServerError(w)
		return
	}
}

func (s *Service) handleImpact(w http.ResponseWriter, r *http.Request) {
	data := &ImpactPageData{BasePageData: s.basePageData(r, "Our Impact")}

	stats, err := s.backend.ImpactStats(r.Context())
	if err != nil {
		s.logger.WithError(err).Error("failed to load impact stats")
		data.StatsUnavailable = true
	}
	data.Stats = stats

	if err := s.renderTemplate(w, r, "page.impact", data); err != nil {
		s.logger.WithError(err).Error("failed to render impact page")
		s.internalServerError(w)
		return
	}
}

func (s *Service) handleApp(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	session := sessionFromContext(ctx)

	data := &AppPageData{BasePageData: s.basePageData(r, "Dashboard")}

	profile, err := s.backend.MyProfile(ctx, session.UserID)
	if err != nil && !errors.Is(err, types.ErrProfileNotFound) {
		s.logger.WithError(err).WithField("user_id", session.UserID).Error("failed to load profile for dashboard")
		s.internalServerError(w)
		return
	}
	data.Profile = profile

	if profile != nil && profile.Role == types.RoleHome {
		data.IsHome = true

		home, err := s.backend.MyHome(ctx, session.UserID)
		switch {
		case errors.Is(err, types.ErrHomeNotFound):
		case err != nil:
			s.logger.WithError(err).WithField("user_id", session.UserID).Error("failed to load home for dashboard")
			s.internalServerError(w)
			return
		default:
			data.Home = home
			data.Verification = s.verificationBanner(ctx, s.prefs.For(w, r), home.VerificationStatus)
		}
	} else {
		data.OpenNeeds = loader.Load(ctx, s.logger, "open_needs", func(ctx context.Context) ([]*types.NeedCard, error) {
			return s.backend.OpenNeeds(ctx, featuredNeedsLimit)
		})
	}

	if err := s.renderTemplate(w, r, "page.app", data); err != nil {
		s.logger.WithError(err).Error("failed to render dashboard")
		s.internalServerError(w)
		return
	}
}

func (s *Service) verificationBanner(ctx context.Context, store preferences.Store, status string) *VerificationBannerData {
	banner, err := verification.NewBanner(ctx, store, status)
	if err != nil {
		s.logger.WithError(err).WithField("status", status).Warn("failed to read verification banner dismissal")
	}

	return &VerificationBannerData{
		Display:       banner.Display(),
		Visible:       banner.Visible(),
		Celebrate:     banner.ShouldCelebrate(),
		CelebrationMs: verification.CelebrationDuration.Milliseconds(),
	}
}

func (s *Service) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}
