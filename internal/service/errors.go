package service

import "errors"

var (
	ErrInvalidDataProvided = errors.New("invalid data provided")

	ErrTokenCreationFailed     = errors.New("token creation failed")
	ErrTokenIsExpiredOrInvalid = errors.New("token is expired or invalid")

	ErrValidationWrongEmailFormat      = errors.New("invalid email format")
	ErrValidationInvalidAge            = errors.New("age must be between 13 and 120")
	ErrValidationContactNumberRequired = errors.New("contact number 1 is required")

	ErrValidationNoteIsEmpty = errors.New("note text cannot be empty")
	ErrValidationNoteTooLong = errors.New("note text exceeds maximum length")
)
