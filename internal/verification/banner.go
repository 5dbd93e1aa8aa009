package verification

import (
	"context"
	"errors"
	"fmt"
	"time"

	"givehaven/internal/preferences"
)

const (
	dismissKeyPrefix = "verification_banner_dismissed_"

	// CelebrationDuration bounds the confetti shown for verified and approved homes.
	CelebrationDuration = 3 * time.Second
)

var ErrNotDismissible = errors.New("banner cannot be dismissed")

// DismissKey is the preference key for one status value, so each status is
// dismissed on its own.
func DismissKey(status string) string {
	return dismissKeyPrefix + status
}

// Banner is the state of one rendered banner.
type Banner struct {
	store      preferences.Store
	display    Display
	dismissed  bool
	celebrated bool
}

func NewBanner(ctx context.Context, store preferences.Store, status string) (*Banner, error) {
	b := &Banner{store: store, display: DisplayFor(status)}

	v, ok, err := store.Get(ctx, DismissKey(status))
	if err != nil {
		return b, fmt.Errorf("read banner dismissal: %w", err)
	}
	b.dismissed = ok && v == "true" && b.display.Dismissible

	return b, nil
}

func (b *Banner) Display() Display {
	return b.display
}

func (b *Banner) Visible() bool {
	return !b.dismissed
}

// Dismiss persists the dismissal before updating local state.
func (b *Banner) Dismiss(ctx context.Context) error {
	if !b.display.Dismissible {
		return ErrNotDismissible
	}

	if err := b.store.Set(ctx, DismissKey(b.display.Status), "true"); err != nil {
		return fmt.Errorf("persist banner dismissal: %w", err)
	}
	b.dismissed = true

	return nil
}

// ShouldCelebrate is true once per banner, and only for a visible celebratory status.
func (b *Banner) ShouldCelebrate() bool {
	if b.celebrated || !b.display.Celebrate || !b.Visible() {
		return false
	}
	b.celebrated = true
	return true
}
