// Package consent records a visitor's cookie consent choice.
package consent

import (
	"context"
	"errors"
	"fmt"
	"time"

	"givehaven/internal/preferences"
)

type Choice string

const (
	ChoiceAll       Choice = "all"
	ChoiceEssential Choice = "essential"

	StorageKey = "cookie_consent"

	// AppearDelay is how long a first time visitor waits before the banner slides in.
	AppearDelay = 1 * time.Second
)

var ErrInvalidChoice = errors.New("invalid consent choice")

func ParseChoice(raw string) (Choice, error) {
	switch Choice(raw) {
	case ChoiceAll, ChoiceEssential:
		return Choice(raw), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidChoice, raw)
	}
}

type Banner struct {
	store preferences.Store
}

func NewBanner(store preferences.Store) *Banner {
	return &Banner{store: store}
}

// Current returns the recorded choice, if any. Unrecognised stored values count
// as no choice.
func (b *Banner) Current(ctx context.Context) (Choice, bool, error) {
	v, ok, err := b.store.Get(ctx, StorageKey)
	if err != nil {
		return "", false, fmt.Errorf("read consent: %w", err)
	}
	if !ok {
		return "", false, nil
	}

	choice, err := ParseChoice(v)
	if err != nil {
		return "", false, nil
	}

	return choice, true, nil
}

// Pending reports whether the banner should be shown.
func (b *Banner) Pending(ctx context.Context) (bool, error) {
	_, ok, err := b.Current(ctx)
	if err != nil {
		return false, err
	}
	return !ok, nil
}

func (b *Banner) Choose(ctx context.Context, choice Choice) error {
	if _, err := ParseChoice(string(choice)); err != nil {
		return err
	}

	if err := b.store.Set(ctx, StorageKey, string(choice)); err != nil {
		return fmt.Errorf("persist consent: %w", err)
	}

	return nil
}

// Dismiss closes the banner without a choice, which counts as essential only.
func (b *Banner) Dismiss(ctx context.Context) error {
	return b.Choose(ctx, ChoiceEssential)
}

// AnalyticsAllowed is true only after the visitor accepted all cookies.
func (b *Banner) AnalyticsAllowed(ctx context.Context) bool {
	choice, ok, err := b.Current(ctx)
	return err == nil && ok && choice == ChoiceAll
}
