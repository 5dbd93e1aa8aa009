// Package verification maps a home's verification status onto the banner shown
// on its dashboard and remembers which statuses the home has dismissed.
package verification

import (
	"fmt"

	"givehaven/pkg/types"
)

type Status string

const (
	StatusPending        Status = "pending"
	StatusReviewing      Status = "reviewing"
	StatusNeedsDocuments Status = "needs_documents"
	StatusVerified       Status = "verified"
	StatusApproved       Status = "approved"
	StatusRejected       Status = "rejected"
)

var statuses = []Status{
	StatusPending,
	StatusReviewing,
	StatusNeedsDocuments,
	StatusVerified,
	StatusApproved,
	StatusRejected,
}

func Statuses() []Status {
	out := make([]Status, len(statuses))
	copy(out, statuses)
	return out
}

// ReviewQueue are the statuses an admin still has to act on.
func ReviewQueue() []string {
	return []string{string(StatusPending), string(StatusReviewing), string(StatusNeedsDocuments)}
}

func ParseStatus(raw string) (Status, error) {
	for _, s := range statuses {
		if string(s) == raw {
			return s, nil
		}
	}
	return "", fmt.Errorf("%w: %q", types.ErrInvalidStatus, raw)
}

// Display is everything the banner template needs for one status.
type Display struct {
	Status      string
	Icon        string
	Title       string
	Message     string
	Tone        string
	Dismissible bool
	Celebrate   bool
	ActionLabel string
	ActionHref  string
}

// DisplayFor never fails: an unknown status gets the neutral fallback with the
// raw value in its title.
func DisplayFor(raw string) Display {
	switch Status(raw) {
	case StatusPending:
		return Display{
			Status:      raw,
			Icon:        "clock",
			Title:       "Verification Pending",
			Message:     "Your home's verification is pending. Our team will start reviewing your details shortly.",
			Tone:        "amber",
			Dismissible: true,
		}
	case StatusReviewing:
		return Display{
			Status:      raw,
			Icon:        "search",
			Title:       "Verification In Review",
			Message:     "Our team is reviewing your documents. This usually takes 2-3 business days.",
			Tone:        "blue",
			Dismissible: true,
		}
	case StatusNeedsDocuments:
		return Display{
			Status:      raw,
			Icon:        "file-warning",
			Title:       "Documents Needed",
			Message:     "We need a few more documents to complete your verification.",
			Tone:        "orange",
			Dismissible: true,
			ActionLabel: "Upload documents",
			ActionHref:  "/app#home-settings",
		}
	case StatusVerified:
		return Display{
			Status:      raw,
			Icon:        "badge-check",
			Title:       "Home Verified!",
			Message:     "Congratulations! Your home is verified and can now post needs.",
			Tone:        "green",
			Dismissible: true,
			Celebrate:   true,
		}
	case StatusApproved:
		return Display{
			Status:      raw,
			Icon:        "check-circle",
			Title:       "Home Approved!",
			Message:     "Your home has been approved. Donors can now see and pledge to your needs.",
			Tone:        "green",
			Dismissible: true,
			Celebrate:   true,
		}
	case StatusRejected:
		return Display{
			Status:      raw,
			Icon:        "x-circle",
			Title:       "Verification Unsuccessful",
			Message:     "We could not verify your home. Please contact support for more information.",
			Tone:        "red",
			Dismissible: false,
			ActionLabel: "Contact support",
			ActionHref:  "mailto:support@givehaven.org",
		}
	default:
		return Display{
			Status:      raw,
			Icon:        "info",
			Title:       fmt.Sprintf("Verification Status: %s", raw),
			Message:     "Your verification status has been updated.",
			Tone:        "gray",
			Dismissible: true,
		}
	}
}
