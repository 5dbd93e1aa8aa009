package types

import "time"

type Home struct {
	ID                 string    `db:"id"`
	OwnerID            string    `db:"owner_id"`
	Name               string    `db:"name"`
	LogoURL            *string   `db:"logo_url"`
	Address            *string   `db:"address"`
	VerificationStatus string    `db:"verification_status"`
	CreatedAt          time.Time `db:"created_at"`
	UpdatedAt          time.Time `db:"updated_at"`
}
