package models

import "time"

// Profile holds the extended demographic and contact data of a user.
// A user has at most one profile (UNIQUE on user_id); absence is a valid
// state meaning the user never filled it in.
type Profile struct {
	ID              int64   `json:"id"`
	UserID          string  `json:"userId"`
	Age             *int    `json:"age,omitempty"`
	ContactNumber1  *string `json:"contactNumber1,omitempty"`
	ContactNumber2  *string `json:"contactNumber2,omitempty"`
	InstagramHandle *string `json:"instagramHandle,omitempty"`
	LinkedinProfile *string `json:"linkedinProfile,omitempty"`
	TwitterHandle   *string `json:"twitterHandle,omitempty"`
	FacebookProfile *string `json:"facebookProfile,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// TableName returns the name of the database table
// associated with the Profile model.
func (p Profile) TableName() string {
	return "user_profiles"
}

// ProfileUpsert is the full replacement payload for a user's profile.
// The profile row is created or overwritten as a whole; fields left nil
// are stored as NULL.
type ProfileUpsert struct {
	Age             *int    `json:"age"`
	ContactNumber1  *string `json:"contactNumber1"`
	ContactNumber2  *string `json:"contactNumber2"`
	InstagramHandle *string `json:"instagramHandle"`
	LinkedinProfile *string `json:"linkedinProfile"`
	TwitterHandle   *string `json:"twitterHandle"`
	FacebookProfile *string `json:"facebookProfile"`
}

// CompleteProfile aggregates everything the profile screen needs:
// the account itself, the optional extended profile and the approver list.
type CompleteProfile struct {
	User      User       `json:"user"`
	Profile   *Profile   `json:"profile,omitempty"`
	Approvers []Approver `json:"approvers"`
}
