package server

import (
	"errors"
	"net/http"

	"givehaven/internal/verification"
	"givehaven/pkg/types"

	"github.com/sirupsen/logrus"
)

type AdminPageData struct {
	types.BasePageData
	Overview *types.AdminOverview
	Statuses []verification.Status
}

type verificationForm struct {
	Status string `form:"status" validate:"required"`
}

func (s *Service) handleAdmin(w http.ResponseWriter, r *http.Request) {
	overview, err := s.backend.AdminOverview(r.Context())
	if err != nil {
		s.logger.WithError(err).Error("failed to load admin overview")
		s.internalServerError(w)
		return
	}

	data := &AdminPageData{
		BasePageData: s.basePageData(r, "Admin"),
		Overview:     overview,
		Statuses:     verification.Statuses(),
	}

	if err := s.renderTemplate(w, r, "page.admin", data); err != nil {
		s.logger.WithError(err).Error("failed to render admin page")
		s.internalServerError(w)
		return
	}
}

func (s *Service) handlePostAdminVerification(w http.ResponseWriter, r *http.Request) {
	homeID := r.PathValue("homeID")

	var input verificationForm
	if err := s.decodeForm(r, &input); err != nil {
		s.redirectWithError(w, r, "/admin", err.Error())
		return
	}

	err := s.backend.SetHomeVerificationStatus(r.Context(), homeID, input.Status)
	switch {
	case err == nil:
		s.logger.WithFields(logrus.Fields{
			"home_id": homeID,
			"status":  input.Status,
			"admin":   sessionFromContext(r.Context()).UserID,
		}).Info("home verification status updated")
		s.redirectWithNotice(w, r, "/admin", "Verification status updated.")
	case errors.Is(err, types.ErrInvalidStatus):
		s.redirectWithError(w, r, "/admin", "Unknown verification status.")
	case errors.Is(err, types.ErrHomeNotFound):
		s.redirectWithError(w, r, "/admin", "Home not found.")
	default:
		s.logger.WithError(err).WithField("home_id", homeID).Error("failed to update verification status")
		s.internalServerError(w)
	}
}
