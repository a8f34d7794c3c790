package pgx

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/rjcastillo/amity/core"
)

const contactColumns = `id, initiator_id, target_id, status, accepted_at, last_updated, created_at`

// liveStatusFilter matches the partial unique index in the migrations;
// both must change together.
const liveStatusFilter = `status IN ('REQUESTED', 'ACCEPTED')`

func (a *Adapter) InsertContact(c *core.Contact) error {
	ctx := context.Background()

	query := `INSERT INTO public.contacts (id, initiator_id, target_id, status, last_updated) VALUES ($1, $2, $3, $4, $5) RETURNING created_at`

	id := uuid.NewString()
	err := a.pool.QueryRow(ctx, query, id, c.InitiatorID, c.TargetID, c.Status, c.LastUpdated).Scan(&c.CreatedAt)
	if err != nil {
		// The contacts_live_pair_idx unique index closes the window
		// between the engine's duplicate check and this insert: the
		// loser of a race lands here instead of committing a second
		// live contact.
		if isUniqueViolation(err) {
			return core.ErrContactExists
		}
		return err
	}

	c.ID = id
	return nil
}

func (a *Adapter) FindLiveContact(userA, userB string) (*core.Contact, error) {
	q := `SELECT ` + contactColumns + ` FROM public.contacts
		WHERE ((initiator_id = $1 AND target_id = $2) OR (initiator_id = $2 AND target_id = $1))
		AND ` + liveStatusFilter + ` LIMIT 1`
	return a.queryContact(q, userA, userB)
}

func (a *Adapter) GetContactByID(id string) (*core.Contact, error) {
	q := `SELECT ` + contactColumns + ` FROM public.contacts WHERE id = $1`
	return a.queryContact(q, id)
}

func (a *Adapter) GetContactByParticipantUsername(username string) (*core.Contact, error) {
	q := `SELECT c.id, c.initiator_id, c.target_id, c.status, c.accepted_at, c.last_updated, c.created_at
		FROM public.contacts c
		JOIN public.users u ON u.id = c.initiator_id OR u.id = c.target_id
		WHERE u.username = $1
		ORDER BY c.last_updated DESC LIMIT 1`
	return a.queryContact(q, username)
}

func (a *Adapter) UpdateContactStatus(id string, change core.StatusChange) (*core.Contact, error) {
	ctx := context.Background()

	// Single-row atomic write: status, accepted_at effect, and
	// last_updated commit together or not at all.
	q := `UPDATE public.contacts
		SET status = $2,
		    accepted_at = CASE WHEN $3 THEN $4 ELSE accepted_at END,
		    last_updated = $5
		WHERE id = $1
		RETURNING ` + contactColumns

	contact := &core.Contact{}
	err := scanContact(a.pool.QueryRow(ctx, q, id, change.Status, change.TouchAccepted, change.AcceptedAt, change.LastUpdated), contact)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, core.ErrContactNotFound
		}
		return nil, err
	}
	return contact, nil
}

func (a *Adapter) ListContactsByUser(userID string, status *core.Status) ([]*core.Contact, error) {
	ctx := context.Background()

	q := `SELECT ` + contactColumns + ` FROM public.contacts WHERE (initiator_id = $1 OR target_id = $1)`
	args := []any{userID}
	if status != nil {
		q += ` AND status = $2`
		args = append(args, *status)
	}
	q += ` ORDER BY last_updated DESC`

	rows, err := a.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var contacts []*core.Contact
	for rows.Next() {
		contact := &core.Contact{}
		if err := scanContact(rows, contact); err != nil {
			return nil, err
		}
		contacts = append(contacts, contact)
	}
	return contacts, rows.Err()
}

func (a *Adapter) queryContact(query string, args ...any) (*core.Contact, error) {
	ctx := context.Background()

	contact := &core.Contact{}
	err := scanContact(a.pool.QueryRow(ctx, query, args...), contact)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, core.ErrContactNotFound
		}
		return nil, err
	}
	return contact, nil
}

func scanContact(row pgx.Row, c *core.Contact) error {
	return row.Scan(&c.ID, &c.InitiatorID, &c.TargetID, &c.Status, &c.AcceptedAt, &c.LastUpdated, &c.CreatedAt)
}

// isUniqueViolation reports whether err is a postgres unique_violation
// (SQLSTATE 23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
