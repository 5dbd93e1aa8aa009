package types

import "time"

type Role string

const (
	RoleDonor Role = "donor"
	RoleHome  Role = "home"
	RoleAdmin Role = "admin"
)

type Profile struct {
	ID           string    `db:"id"`
	DisplayName  *string   `db:"display_name"`
	AvatarURL    *string   `db:"avatar_url"`
	Role         Role      `db:"role"`
	IsSuperAdmin bool      `db:"is_super_admin"`
	CreatedAt    time.Time `db:"created_at"`
	UpdatedAt    time.Time `db:"updated_at"`
}

// Session is the verified identity behind an access token.
type Session struct {
	UserID      string
	Email       string
	AccessToken string
	ExpiresAt   time.Time
}

type AuthTokens struct {
	UserID       string
	Email        string
	AccessToken  string
	RefreshToken string
	ExpiresIn    int
}
