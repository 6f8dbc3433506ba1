package models

import "time"

// User is an account created from an external OAuth identity.
// The ID is the identity provider's stable subject identifier and is
// authoritative: two logins with the same ID are the same user regardless
// of the asserted email.
type User struct {
	// ID is the external identity identifier (e.g. the Google profile id).
	ID string `json:"id"`

	// Email is unique across all users.
	Email string `json:"email"`

	// Name is the display name asserted by the identity provider.
	Name string `json:"name"`

	// Picture is an optional avatar URL.
	Picture *string `json:"picture,omitempty"`

	// Provider tags which identity provider the account came from.
	Provider string `json:"provider"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
	LastLogin time.Time `json:"lastLogin"`
}

// TableName returns the name of the database table
// associated with the User model.
func (u User) TableName() string {
	return "users"
}

// ExternalIdentity is the verified tuple handed over by the OAuth layer
// after a successful provider handshake. It is trusted verbatim.
type ExternalIdentity struct {
	ID       string
	Email    string
	Name     string
	Picture  *string
	Provider string
}

// UserUpdate carries a partial update of the mutable user fields.
// nil means "leave untouched"; a non-nil pointer is a value to set.
type UserUpdate struct {
	Name    *string `json:"name"`
	Picture *string `json:"picture"`
}
