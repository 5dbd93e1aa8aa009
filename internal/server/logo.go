package server

import (
	"bufio"
	"context"
	"errors"
	"net/http"
	"time"

	"givehaven/internal/backend"
	"givehaven/pkg/types"
)

const maxLogoBytes = 5 << 20

func (s *Service) handlePostHomeLogo(w http.ResponseWriter, r *http.Request) {
	session := sessionFromContext(r.Context())

	r.Body = http.MaxBytesReader(w, r.Body, maxLogoBytes+(1<<20))
	if err := r.ParseMultipartForm(maxLogoBytes); err != nil {
		s.redirectWithError(w, r, "/app", "Logo must be smaller than 5 MB.")
		return
	}

	file, _, err := r.FormFile("logo")
	if err != nil {
		s.redirectWithError(w, r, "/app", "Choose an image to upload.")
		return
	}
	defer file.Close()

	// sniff rather than trust the browser supplied header
	buffered := bufio.NewReaderSize(file, 512)
	head, _ := buffered.Peek(512)
	contentType := http.DetectContentType(head)

	ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
	defer cancel()

	_, err = s.backend.UpdateHomeLogo(ctx, session.UserID, buffered, contentType)
	switch {
	case err == nil:
		s.redirectWithNotice(w, r, "/app", "Logo updated.")
	case errors.Is(err, backend.ErrUnsupportedLogoType):
		s.redirectWithError(w, r, "/app", "Logo must be a PNG, JPEG, WebP or GIF image.")
	case errors.Is(err, types.ErrHomeNotFound):
		s.redirectWithError(w, r, "/app", "Only home accounts can upload a logo.")
	default:
		s.logger.WithError(err).WithField("user_id", session.UserID).Error("failed to update home logo")
		s.redirectWithError(w, r, "/app", "We couldn't upload your logo. Please try again.")
	}
}
