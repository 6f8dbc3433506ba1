package models

import "time"

// Approver is a person entitled to approve actions on a user's behalf.
// A user must keep at least two approvers at all times; the rule is
// enforced on deletion, not on creation (zero or one approvers is a legal
// transient state while the list is being built up).
type Approver struct {
	ID             int64   `json:"id"`
	UserID         string  `json:"userId"`
	Name           string  `json:"approverName"`
	Email          string  `json:"approverEmail"`
	ContactNumber1 *string `json:"approverContactNumber1,omitempty"`
	ContactNumber2 *string `json:"approverContactNumber2,omitempty"`
	Relationship   *string `json:"approverRelationship,omitempty"`
	Instagram      *string `json:"approverInstagram,omitempty"`
	Linkedin       *string `json:"approverLinkedin,omitempty"`
	Twitter        *string `json:"approverTwitter,omitempty"`
	Facebook       *string `json:"approverFacebook,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// TableName returns the name of the database table
// associated with the Approver model.
func (a Approver) TableName() string {
	return "user_approvers"
}

// ApproverUpdate carries a partial update of an approver.
// Every field maps to exactly one column in the update builder; id and
// user_id are deliberately not representable here.
type ApproverUpdate struct {
	Name           *string `json:"approverName"`
	Email          *string `json:"approverEmail"`
	ContactNumber1 *string `json:"approverContactNumber1"`
	ContactNumber2 *string `json:"approverContactNumber2"`
	Relationship   *string `json:"approverRelationship"`
	Instagram      *string `json:"approverInstagram"`
	Linkedin       *string `json:"approverLinkedin"`
	Twitter        *string `json:"approverTwitter"`
	Facebook       *string `json:"approverFacebook"`
}
