package models

import "time"

// MaxNoteLength is the upper bound on the note body, in characters.
const MaxNoteLength = 10000

// Note is a user-authored record, optionally addressed to a set of the
// user's own recipients. RecipientIDs keeps the order the client supplied;
// every id must reference a recipient owned by the same user.
type Note struct {
	ID           int64   `json:"id"`
	UserID       string  `json:"userId"`
	Text         string  `json:"note"`
	Attachment   *string `json:"attachment,omitempty"`
	RecipientIDs []int64 `json:"recipientIds"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// TableName returns the name of the database table
// associated with the Note model.
func (n Note) TableName() string {
	return "user_notes"
}

// CreateNote is the input for adding a note.
type CreateNote struct {
	UserID       string
	Text         string
	Attachment   *string
	RecipientIDs []int64
}

// NoteUpdate carries a partial update of a note. A non-nil RecipientIDs
// pointing at an empty slice clears the note's recipient associations.
type NoteUpdate struct {
	Text         *string  `json:"note"`
	Attachment   *string  `json:"attachment"`
	RecipientIDs *[]int64 `json:"recipientIds"`
}

// NoteWithRecipients is a note with its recipient references resolved to
// full recipient records, in the stored id order. Recipients is never nil:
// a note with no recipients carries an empty list.
type NoteWithRecipients struct {
	Note
	Recipients []Recipient `json:"recipients"`
}
