package models

// ErrorResponse is the JSON body returned for every failed request.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// MessageResponse is the envelope for mutations that only need to confirm
// what happened (e.g. deletions).
type MessageResponse struct {
	Message string `json:"message"`
}

// LoginResponse is returned from the OAuth callback: the resolved account
// plus a signed bearer token for subsequent API calls.
type LoginResponse struct {
	Message string `json:"message"`
	User    User   `json:"user"`
	Token   string `json:"token"`
}

// AuthStatusResponse reports whether the caller presented a valid token.
type AuthStatusResponse struct {
	IsAuthenticated bool  `json:"isAuthenticated"`
	User            *User `json:"user,omitempty"`
}

// UserResponse wraps a single user record with a confirmation message.
type UserResponse struct {
	Message string `json:"message"`
	User    User   `json:"user"`
}

// ProfileResponse wraps an upserted profile.
type ProfileResponse struct {
	Message string  `json:"message"`
	Profile Profile `json:"profile"`
}

// ApproverResponse wraps a created or updated approver.
type ApproverResponse struct {
	Message  string   `json:"message"`
	Approver Approver `json:"approver"`
}

// RecipientResponse wraps a created or updated recipient.
type RecipientResponse struct {
	Message   string    `json:"message"`
	Recipient Recipient `json:"recipient"`
}

// UsersResponse wraps the full user listing.
type UsersResponse struct {
	Message string `json:"message"`
	Users   []User `json:"users"`
}

// CompleteProfileResponse wraps the aggregated account view.
type CompleteProfileResponse struct {
	Message string          `json:"message"`
	Profile CompleteProfile `json:"profile"`
}

// ApproversResponse wraps an approver listing.
type ApproversResponse struct {
	Message   string     `json:"message"`
	Approvers []Approver `json:"approvers"`
}

// ApproverValidationResponse reports the minimum-approver check.
type ApproverValidationResponse struct {
	HasMinimumApprovers bool `json:"hasMinimumApprovers"`
}

// RecipientsResponse wraps a recipient listing.
type RecipientsResponse struct {
	Message    string      `json:"message"`
	Recipients []Recipient `json:"recipients"`
}

// NoteResponse wraps a single note as stored (recipient ids only).
type NoteResponse struct {
	Message string `json:"message"`
	Note    Note   `json:"note"`
}

// NoteDetailResponse wraps a single note with recipients resolved.
type NoteDetailResponse struct {
	Message string             `json:"message"`
	Note    NoteWithRecipients `json:"note"`
}

// NotesResponse wraps a note listing with recipients resolved.
type NotesResponse struct {
	Message string               `json:"message"`
	Notes   []NoteWithRecipients `json:"notes"`
}
