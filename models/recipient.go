package models

import "time"

// Recipient is a person a user may name as the target of a note.
// Structurally identical to Approver but semantically independent:
// there is no minimum-count rule for recipients.
type Recipient struct {
	ID             int64   `json:"id"`
	UserID         string  `json:"userId"`
	Name           string  `json:"recipientName"`
	Email          string  `json:"recipientEmail"`
	ContactNumber1 *string `json:"recipientContactNumber1,omitempty"`
	ContactNumber2 *string `json:"recipientContactNumber2,omitempty"`
	Relationship   *string `json:"recipientRelationship,omitempty"`
	Instagram      *string `json:"recipientInstagram,omitempty"`
	Linkedin       *string `json:"recipientLinkedin,omitempty"`
	Twitter        *string `json:"recipientTwitter,omitempty"`
	Facebook       *string `json:"recipientFacebook,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// TableName returns the name of the database table
// associated with the Recipient model.
func (r Recipient) TableName() string {
	return "user_recipients"
}

// RecipientUpdate carries a partial update of a recipient.
type RecipientUpdate struct {
	Name           *string `json:"recipientName"`
	Email          *string `json:"recipientEmail"`
	ContactNumber1 *string `json:"recipientContactNumber1"`
	ContactNumber2 *string `json:"recipientContactNumber2"`
	Relationship   *string `json:"recipientRelationship"`
	Instagram      *string `json:"recipientInstagram"`
	Linkedin       *string `json:"recipientLinkedin"`
	Twitter        *string `json:"recipientTwitter"`
	Facebook       *string `json:"recipientFacebook"`
}
