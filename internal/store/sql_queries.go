// SPDX-License-Identifier: Apache-2.0

package store

import (
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/keepsake-dev/keepsake/models"
	"github.com/lib/pq"
)

// Column lists reused by SELECT statements and RETURNING clauses so that
// row scanning stays aligned with a single source of truth per table.
const (
	userColumns = `id, email, name, picture, provider, created_at, updated_at, last_login`

	profileColumns = `id, user_id, age, contact_number_1, contact_number_2, instagram_handle,
	linkedin_profile, twitter_handle, facebook_profile, created_at, updated_at`

	approverColumns = `id, user_id, approver_name, approver_email, approver_contact_number_1,
	approver_contact_number_2, approver_relationship, approver_instagram, approver_linkedin,
	approver_twitter, approver_facebook, created_at, updated_at`

	recipientColumns = `id, user_id, recipient_name, recipient_email, recipient_contact_number_1,
	recipient_contact_number_2, recipient_relationship, recipient_instagram, recipient_linkedin,
	recipient_twitter, recipient_facebook, created_at, updated_at`

	noteColumns = `id, user_id, note, attachment, recipient_ids, created_at, updated_at`
)

const (
	upsertUserOnLogin = `INSERT INTO users (id, email, name, picture, provider)
	VALUES ($1, $2, $3, $4, $5)
	ON CONFLICT (id) DO UPDATE
	SET email = EXCLUDED.email,
		name = EXCLUDED.name,
		picture = EXCLUDED.picture,
		provider = EXCLUDED.provider,
		last_login = NOW(),
		updated_at = NOW()
	RETURNING ` + userColumns + `;`

	getUserByID = `SELECT ` + userColumns + `
	FROM users
	WHERE id = $1;`

	getAllUsers = `SELECT ` + userColumns + `
	FROM users
	ORDER BY created_at DESC;`

	deleteUser = `DELETE FROM users
	WHERE id = $1;`

	upsertProfile = `INSERT INTO user_profiles (user_id, age, contact_number_1, contact_number_2,
		instagram_handle, linkedin_profile, twitter_handle, facebook_profile)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	ON CONFLICT (user_id) DO UPDATE
	SET age = EXCLUDED.age,
		contact_number_1 = EXCLUDED.contact_number_1,
		contact_number_2 = EXCLUDED.contact_number_2,
		instagram_handle = EXCLUDED.instagram_handle,
		linkedin_profile = EXCLUDED.linkedin_profile,
		twitter_handle = EXCLUDED.twitter_handle,
		facebook_profile = EXCLUDED.facebook_profile,
		updated_at = NOW()
	RETURNING ` + profileColumns + `;`

	getProfileByUserID = `SELECT ` + profileColumns + `
	FROM user_profiles
	WHERE user_id = $1;`

	addApprover = `INSERT INTO user_approvers (user_id, approver_name, approver_email,
		approver_contact_number_1, approver_contact_number_2, approver_relationship,
		approver_instagram, approver_linkedin, approver_twitter, approver_facebook)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	RETURNING ` + approverColumns + `;`

	getApproversByUserID = `SELECT ` + approverColumns + `
	FROM user_approvers
	WHERE user_id = $1
	ORDER BY created_at;`

	countApprovers = `SELECT COUNT(*)
	FROM user_approvers
	WHERE user_id = $1;`

	// lockApproverIDs takes row-level locks on every approver owned by the
	// user so the minimum-count check cannot race a concurrent delete.
	lockApproverIDs = `SELECT id
	FROM user_approvers
	WHERE user_id = $1
	FOR UPDATE;`

	deleteApprover = `DELETE FROM user_approvers
	WHERE id = $1 AND user_id = $2;`

	addRecipient = `INSERT INTO user_recipients (user_id, recipient_name, recipient_email,
		recipient_contact_number_1, recipient_contact_number_2, recipient_relationship,
		recipient_instagram, recipient_linkedin, recipient_twitter, recipient_facebook)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	RETURNING ` + recipientColumns + `;`

	getRecipientsByUserID = `SELECT ` + recipientColumns + `
	FROM user_recipients
	WHERE user_id = $1
	ORDER BY created_at;`

	deleteRecipient = `DELETE FROM user_recipients
	WHERE id = $1 AND user_id = $2;`

	getRecipientsByIDs = `SELECT ` + recipientColumns + `
	FROM user_recipients
	WHERE user_id = $1 AND id = ANY($2);`

	// lockRecipientIDs takes shared locks on the referenced recipients so they
	// cannot be deleted while a note that references them is being written.
	lockRecipientIDs = `SELECT id
	FROM user_recipients
	WHERE user_id = $1 AND id = ANY($2)
	FOR SHARE;`

	addNote = `INSERT INTO user_notes (user_id, note, attachment, recipient_ids)
	VALUES ($1, $2, $3, $4)
	RETURNING ` + noteColumns + `;`

	getNotesByUserID = `SELECT ` + noteColumns + `
	FROM user_notes
	WHERE user_id = $1
	ORDER BY created_at DESC;`

	getNoteByID = `SELECT ` + noteColumns + `
	FROM user_notes
	WHERE id = $1 AND user_id = $2;`

	deleteNote = `DELETE FROM user_notes
	WHERE id = $1 AND user_id = $2;`
)

// psql is the shared squirrel statement builder configured for PostgreSQL
// positional placeholders ($1, $2, ...).
var psql = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

// buildUserUpdateQuery dynamically builds an UPDATE for the users table from
// the non-nil fields of update. Returns [ErrNoFieldsToUpdate] when every
// field is nil.
func buildUserUpdateQuery(userID string, update models.UserUpdate) (string, []any, error) {
	fields := 0
	builder := psql.Update("users")

	if update.Name != nil {
		builder = builder.Set("name", *update.Name)
		fields++
	}
	if update.Picture != nil {
		builder = builder.Set("picture", *update.Picture)
		fields++
	}

	if fields == 0 {
		return "", nil, ErrNoFieldsToUpdate
	}

	query, args, err := builder.
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": userID}).
		Suffix("RETURNING " + userColumns).
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return query, args, nil
}

// buildApproverUpdateQuery dynamically builds an UPDATE for the
// user_approvers table. The WHERE clause is owner-scoped: a non-existent id
// and an id owned by another user are indistinguishable to the caller.
func buildApproverUpdateQuery(approverID int64, userID string, update models.ApproverUpdate) (string, []any, error) {
	fields := 0
	builder := psql.Update("user_approvers")

	if update.Name != nil {
		builder = builder.Set("approver_name", *update.Name)
		fields++
	}
	if update.Email != nil {
		builder = builder.Set("approver_email", *update.Email)
		fields++
	}
	if update.ContactNumber1 != nil {
		builder = builder.Set("approver_contact_number_1", *update.ContactNumber1)
		fields++
	}
	if update.ContactNumber2 != nil {
		builder = builder.Set("approver_contact_number_2", *update.ContactNumber2)
		fields++
	}
	if update.Relationship != nil {
		builder = builder.Set("approver_relationship", *update.Relationship)
		fields++
	}
	if update.Instagram != nil {
		builder = builder.Set("approver_instagram", *update.Instagram)
		fields++
	}
	if update.Linkedin != nil {
		builder = builder.Set("approver_linkedin", *update.Linkedin)
		fields++
	}
	if update.Twitter != nil {
		builder = builder.Set("approver_twitter", *update.Twitter)
		fields++
	}
	if update.Facebook != nil {
		builder = builder.Set("approver_facebook", *update.Facebook)
		fields++
	}

	if fields == 0 {
		return "", nil, ErrNoFieldsToUpdate
	}

	query, args, err := builder.
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": approverID, "user_id": userID}).
		Suffix("RETURNING " + approverColumns).
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return query, args, nil
}

// buildRecipientUpdateQuery mirrors [buildApproverUpdateQuery] for the
// user_recipients table.
func buildRecipientUpdateQuery(recipientID int64, userID string, update models.RecipientUpdate) (string, []any, error) {
	fields := 0
	builder := psql.Update("user_recipients")

	if update.Name != nil {
		builder = builder.Set("recipient_name", *update.Name)
		fields++
	}
	if update.Email != nil {
		builder = builder.Set("recipient_email", *update.Email)
		fields++
	}
	if update.ContactNumber1 != nil {
		builder = builder.Set("recipient_contact_number_1", *update.ContactNumber1)
		fields++
	}
	if update.ContactNumber2 != nil {
		builder = builder.Set("recipient_contact_number_2", *update.ContactNumber2)
		fields++
	}
	if update.Relationship != nil {
		builder = builder.Set("recipient_relationship", *update.Relationship)
		fields++
	}
	if update.Instagram != nil {
		builder = builder.Set("recipient_instagram", *update.Instagram)
		fields++
	}
	if update.Linkedin != nil {
		builder = builder.Set("recipient_linkedin", *update.Linkedin)
		fields++
	}
	if update.Twitter != nil {
		builder = builder.Set("recipient_twitter", *update.Twitter)
		fields++
	}
	if update.Facebook != nil {
		builder = builder.Set("recipient_facebook", *update.Facebook)
		fields++
	}

	if fields == 0 {
		return "", nil, ErrNoFieldsToUpdate
	}

	query, args, err := builder.
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": recipientID, "user_id": userID}).
		Suffix("RETURNING " + recipientColumns).
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return query, args, nil
}

// buildNoteUpdateQuery dynamically builds an UPDATE for the user_notes table.
// RecipientIDs is a *[]int64 so that an explicitly provided empty list clears
// the note's recipients, while nil leaves them untouched.
func buildNoteUpdateQuery(noteID int64, userID string, update models.NoteUpdate) (string, []any, error) {
	fields := 0
	builder := psql.Update("user_notes")

	if update.Text != nil {
		builder = builder.Set("note", *update.Text)
		fields++
	}
	if update.Attachment != nil {
		builder = builder.Set("attachment", *update.Attachment)
		fields++
	}
	if update.RecipientIDs != nil {
		builder = builder.Set("recipient_ids", pq.Array(*update.RecipientIDs))
		fields++
	}

	if fields == 0 {
		return "", nil, ErrNoFieldsToUpdate
	}

	query, args, err := builder.
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": noteID, "user_id": userID}).
		Suffix("RETURNING " + noteColumns).
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return query, args, nil
}
