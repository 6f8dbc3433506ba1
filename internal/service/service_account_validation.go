// SPDX-License-Identifier: Apache-2.0

package service

import (
	"regexp"

	"github.com/keepsake-dev/keepsake/models"
)

const (
	minAge = 13
	maxAge = 120
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// validateEmail checks the email against the shared address pattern.
func validateEmail(email string) error {
	if !emailPattern.MatchString(email) {
		return ErrValidationWrongEmailFormat
	}

	return nil
}

// validateContactInput checks the mandatory fields shared by approvers and
// recipients: a non-empty name and a well-formed email.
func validateContactInput(name, email string) error {
	if name == "" || email == "" {
		return ErrInvalidDataProvided
	}

	return validateEmail(email)
}

// validateProfileUpsert checks an extended-profile write: contact number 1 is
// mandatory and age, when provided, must be plausible for a living account
// holder.
func validateProfileUpsert(upsert models.ProfileUpsert) error {
	if upsert.ContactNumber1 == nil || *upsert.ContactNumber1 == "" {
		return ErrValidationContactNumberRequired
	}

	if upsert.Age != nil && (*upsert.Age < minAge || *upsert.Age > maxAge) {
		return ErrValidationInvalidAge
	}

	return nil
}

// validateApproverUpdate checks the provided fields of a partial approver
// update. Omitted fields are not validated.
func validateApproverUpdate(update models.ApproverUpdate) error {
	if update.Name != nil && *update.Name == "" {
		return ErrInvalidDataProvided
	}

	if update.Email != nil {
		return validateEmail(*update.Email)
	}

	return nil
}

// validateRecipientUpdate mirrors validateApproverUpdate for recipients.
func validateRecipientUpdate(update models.RecipientUpdate) error {
	if update.Name != nil && *update.Name == "" {
		return ErrInvalidDataProvided
	}

	if update.Email != nil {
		return validateEmail(*update.Email)
	}

	return nil
}
