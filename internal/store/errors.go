package store

import "errors"

// Sentinel errors returned by repository methods to signal well-known failure
// conditions. Callers should use [errors.Is] to match against these values.
var (
	// ErrEmailAlreadyExists is returned when an INSERT into the users table
	// violates the unique constraint on the email column.
	ErrEmailAlreadyExists = errors.New("email already exists")

	// ErrUserNotFound is returned when a query targets a user record that
	// does not exist in the database.
	ErrUserNotFound = errors.New("user was not found")

	// ErrProfileNotFound is returned when a user has no extended profile row.
	ErrProfileNotFound = errors.New("profile was not found")

	// ErrApproverNotFound is returned when a query or update targets an
	// approver (identified by id and user_id) that does not exist.
	ErrApproverNotFound = errors.New("approver was not found")

	// ErrRecipientNotFound is returned when a query or update targets a
	// recipient (identified by id and user_id) that does not exist.
	ErrRecipientNotFound = errors.New("recipient was not found")

	// ErrNoteNotFound is returned when a query or update targets a note
	// (identified by id and user_id) that does not exist.
	ErrNoteNotFound = errors.New("note was not found")

	// ErrMinimumApprovers is returned when deleting an approver would leave
	// the user with fewer than two remaining approvers.
	ErrMinimumApprovers = errors.New("user must retain at least two approvers")

	// ErrInvalidRecipients is returned when a note references one or more
	// recipient ids that do not belong to the note's owner.
	ErrInvalidRecipients = errors.New("one or more recipients do not belong to user")

	// ErrNoFieldsToUpdate is returned when a partial update request contains
	// no updatable fields at all.
	ErrNoFieldsToUpdate = errors.New("no fields to update")
)

// Low-level database operation errors. These are returned (or wrapped) by
// repository methods when a SQL-level operation fails before any domain logic
// can be applied.
var (
	// ErrBuildingSQLQuery is returned when constructing a parameterised SQL
	// query fails.
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when executing a query against the
	// database fails.
	ErrExecutingQuery = errors.New("error executing sql query")

	// ErrBeginningTransaction is returned when the database driver cannot
	// start a new transaction.
	ErrBeginningTransaction = errors.New("failed to begin transaction")

	// ErrCommitingTransaction is returned when committing an open transaction
	// fails. The transaction is considered rolled back at this point.
	ErrCommitingTransaction = errors.New("failed to commit transaction")

	// ErrScanningRow is returned when scanning column values from a single
	// result row into a destination struct fails.
	ErrScanningRow = errors.New("failed to scan row")

	// ErrScanningRows is returned when scanning column values during
	// multi-row iteration fails, typically mid-result-set.
	ErrScanningRows = errors.New("failed to scan rows")
)
