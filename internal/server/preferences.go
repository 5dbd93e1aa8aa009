package server

import (
	"errors"
	"net/http"

	"givehaven/internal/consent"
	"givehaven/internal/metrics"
	"givehaven/internal/verification"
	"givehaven/pkg/types"
)

type consentForm struct {
	Action   string `form:"action" validate:"required,oneof=all essential close"`
	ReturnTo string `form:"return_to"`
}

type dismissBannerForm struct {
	Status string `form:"status" validate:"required"`
}

func (s *Service) handlePostConsent(w http.ResponseWriter, r *http.Request) {
	var input consentForm
	if err := s.decodeForm(r, &input); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	ctx := r.Context()
	banner := consent.NewBanner(s.prefs.For(w, r))

	var err error
	if input.Action == "close" {
		err = banner.Dismiss(ctx)
	} else {
		err = banner.Choose(ctx, consent.Choice(input.Action))
	}
	if err != nil {
		s.logger.WithError(err).WithField("action", input.Action).Error("failed to record consent choice")
		s.internalServerError(w)
		return
	}

	choice, _, _ := banner.Current(ctx)
	metrics.ConsentChoicesTotal.WithLabelValues(string(choice)).Inc()

	returnTo := "/"
	if isLocalPath(input.ReturnTo) {
		returnTo = input.ReturnTo
	}
	http.Redirect(w, r, returnTo, http.StatusSeeOther)
}

func (s *Service) handlePostVerificationDismiss(w http.ResponseWriter, r *http.Request) {
	var input dismissBannerForm
	if err := s.decodeForm(r, &input); err != nil {
		s.redirectWithError(w, r, "/app", err.Error())
		return
	}

	ctx := r.Context()
	session := sessionFromContext(ctx)

	// only the banner currently on the dashboard can be dismissed
	home, err := s.backend.MyHome(ctx, session.UserID)
	if err != nil {
		if errors.Is(err, types.ErrHomeNotFound) {
			s.redirectWithError(w, r, "/app", "There is no verification notice to dismiss.")
			return
		}
		s.logger.WithError(err).WithField("user_id", session.UserID).Error("failed to load home for banner dismissal")
		s.internalServerError(w)
		return
	}
	if input.Status != home.VerificationStatus {
		s.redirectWithError(w, r, "/app", "That notice is out of date.")
		return
	}

	banner, err := verification.NewBanner(ctx, s.prefs.For(w, r), input.Status)
	if err != nil {
		s.logger.WithError(err).Warn("failed to read verification banner dismissal")
	}

	if err := banner.Dismiss(ctx); err != nil {
		if errors.Is(err, verification.ErrNotDismissible) {
			s.redirectWithError(w, r, "/app", "This notice can't be dismissed.")
			return
		}
		s.logger.WithError(err).WithField("status", input.Status).Error("failed to dismiss verification banner")
		s.internalServerError(w)
		return
	}

	label := "unknown"
	if status, err := verification.ParseStatus(input.Status); err == nil {
		label = string(status)
	}
	metrics.BannerDismissalsTotal.WithLabelValues(label).Inc()
	http.Redirect(w, r, "/app", http.StatusSeeOther)
}
