package types

import (
	"time"
)

type NeedStatus string

const (
	NeedStatusOpen          NeedStatus = "open"
	NeedStatusPendingPickup NeedStatus = "pending_pickup"
	NeedStatusCompleted     NeedStatus = "completed"
)

type NeedUrgency string

const (
	NeedUrgencyLow    NeedUrgency = "low"
	NeedUrgencyMedium NeedUrgency = "medium"
	NeedUrgencyHigh   NeedUrgency = "high"
)

type Need struct {
	ID          string      `db:"id"`
	HomeID      string      `db:"home_id"`
	Title       string      `db:"title"`
	Description *string     `db:"description"`
	Category    string      `db:"category"`
	Urgency     NeedUrgency `db:"urgency"`
	Quantity    int         `db:"quantity"`
	Status      NeedStatus  `db:"status"`
	CreatedAt   time.Time   `db:"created_at"`
	UpdatedAt   time.Time   `db:"updated_at"`
}

// NeedCard is a need joined with the home that posted it.
type NeedCard struct {
	Need
	HomeName    string  `db:"home_name"`
	HomeLogoURL *string `db:"home_logo_url"`
}
