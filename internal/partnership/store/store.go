package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"hash/fnv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/hamzaalie/spotlight-circle-sub000/internal/partnership"
	"github.com/hamzaalie/spotlight-circle-sub000/internal/party"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

const selectPartnershipColumns = `
	pa.id, pa.initiator_id, pa.receiver_id, pa.invited_email, pa.category, pa.notes,
	pa.status, pa.created_at, pa.updated_at, pa.accepted_at
`

func scanPartnership(s scanner) (*partnership.Partnership, error) {
	var p partnership.Partnership

	var statusStr string

	var receiverID *uuid.UUID

	var invitedEmail sql.NullString

	if err := s.Scan(
		&p.ID, &p.InitiatorID, &receiverID, &invitedEmail, &p.Category, &p.Notes,
		&statusStr, &p.CreatedAt, &p.UpdatedAt, &p.AcceptedAt,
	); err != nil {
		return nil, err
	}

	p.Status = partnership.Status(statusStr)
	p.ReceiverID = receiverID
	p.InvitedEmail = invitedEmail.String

	return &p, nil
}

// mapWriteErr turns unique-violation and serialization failures into
// ErrConflict so callers can retry the read-then-decide sequence once.
func mapWriteErr(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505", "40001":
			return partnership.ErrConflict
		}
	}

	return err
}

// pairLockKey hashes the canonical unordered pair (or initiator+email for an
// unregistered target) into an advisory lock key.
func pairLockKey(initiatorID uuid.UUID, target partnership.Target) int64 {
	a := initiatorID.String()

	var b string
	if target.Known() {
		b = target.PartyID().String()
	} else {
		b = target.Email()
	}

	if b < a {
		a, b = b, a
	}

	h := fnv.New64a()
	h.Write([]byte(a))
	h.Write([]byte{0})
	h.Write([]byte(b))

	return int64(h.Sum64())
}

type inviteTx struct {
	tx          *sql.Tx
	initiatorID uuid.UUID
	target      partnership.Target
}

func (s *Store) BeginInvite(ctx context.Context, initiatorID uuid.UUID, target partnership.Target) (partnership.InviteTx, error) {
	dbTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning invite tx: %w", err)
	}

	lockKey := pairLockKey(initiatorID, target)
	if _, err := dbTx.ExecContext(ctx, "SELECT pg_advisory_xact_lock($1)", lockKey); err != nil {
		dbTx.Rollback()
		return nil, fmt.Errorf("acquiring pair lock: %w", err)
	}

	return &inviteTx{tx: dbTx, initiatorID: initiatorID, target: target}, nil
}

func (itx *inviteTx) Commit() error   { return itx.tx.Commit() }
func (itx *inviteTx) Rollback() error { return itx.tx.Rollback() }

// FindForPair returns the pair's existing row regardless of status, or nil.
// Live rows win over historical declined ones when both somehow exist.
func (itx *inviteTx) FindForPair(ctx context.Context) (*partnership.Partnership, error) {
	var (
		query string
		args  []any
	)

	if itx.target.Known() {
		query = `SELECT ` + selectPartnershipColumns + `
			FROM partnerships pa
			WHERE (pa.initiator_id = $1 AND pa.receiver_id = $2)
			   OR (pa.initiator_id = $2 AND pa.receiver_id = $1)
			ORDER BY (pa.status IN ('pending', 'accepted')) DESC, pa.created_at DESC
			LIMIT 1`
		args = []any{itx.initiatorID, itx.target.PartyID()}
	} else {
		query = `SELECT ` + selectPartnershipColumns + `
			FROM partnerships pa
			WHERE pa.receiver_id IS NULL
			  AND pa.initiator_id = $1
			  AND LOWER(pa.invited_email) = $2
			ORDER BY (pa.status IN ('pending', 'accepted')) DESC, pa.created_at DESC
			LIMIT 1`
		args = []any{itx.initiatorID, itx.target.Email()}
	}

	p, err := scanPartnership(itx.tx.QueryRowContext(ctx, query, args...))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}

		return nil, fmt.Errorf("finding pair partnership: %w", err)
	}

	return p, nil
}

func (itx *inviteTx) CreatePartnership(ctx context.Context, p *partnership.Partnership) error {
	query := `
		INSERT INTO partnerships (initiator_id, receiver_id, invited_email, category, notes, status, created_at)
		VALUES ($1, $2, NULLIF($3, ''), $4, $5, $6, NOW())
		RETURNING id, created_at
	`

	err := itx.tx.QueryRowContext(ctx, query,
		p.InitiatorID,
		p.ReceiverID,
		p.InvitedEmail,
		p.Category,
		p.Notes,
		p.Status,
	).Scan(&p.ID, &p.CreatedAt)
	if err != nil {
		return fmt.Errorf("creating partnership: %w", mapWriteErr(err))
	}

	return nil
}

// Reinvite persists a declined row reset in place: roles re-applied,
// timestamps refreshed, acceptance cleared.
func (itx *inviteTx) Reinvite(ctx context.Context, p *partnership.Partnership) error {
	query := `
		UPDATE partnerships
		SET initiator_id = $1, receiver_id = $2, invited_email = NULLIF($3, ''),
		    category = $4, notes = $5, status = $6,
		    accepted_at = NULL, created_at = NOW(), updated_at = NOW()
		WHERE id = $7
		RETURNING created_at, updated_at
	`

	err := itx.tx.QueryRowContext(ctx, query,
		p.InitiatorID,
		p.ReceiverID,
		p.InvitedEmail,
		p.Category,
		p.Notes,
		p.Status,
		p.ID,
	).Scan(&p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return fmt.Errorf("reinviting partnership: %w", mapWriteErr(err))
	}

	p.AcceptedAt = nil

	return nil
}

func (s *Store) GetPartnership(ctx context.Context, id uuid.UUID) (*partnership.Partnership, error) {
	query := `SELECT ` + selectPartnershipColumns + `
		FROM partnerships pa
		WHERE pa.id = $1`

	p, err := scanPartnership(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, partnership.ErrNotFound
		}

		return nil, fmt.Errorf("getting partnership: %w", err)
	}

	return p, nil
}

func (s *Store) UpdatePartnership(ctx context.Context, p *partnership.Partnership, prior partnership.Status) error {
	query := `
		UPDATE partnerships
		SET receiver_id = $1, invited_email = NULLIF($2, ''), status = $3,
		    accepted_at = $4, updated_at = NOW()
		WHERE id = $5 AND status = $6
		RETURNING updated_at
	`

	err := s.db.QueryRowContext(ctx, query,
		p.ReceiverID,
		p.InvitedEmail,
		p.Status,
		p.AcceptedAt,
		p.ID,
		prior,
	).Scan(&p.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			// The caller read this row moments ago; no match means its
			// status moved underneath us.
			return partnership.ErrConflict
		}

		return fmt.Errorf("updating partnership: %w", mapWriteErr(err))
	}

	return nil
}

func (s *Store) ListPartners(ctx context.Context, partyID uuid.UUID) ([]*partnership.Partner, error) {
	query := `
		SELECT pa.id, pa.category, pa.accepted_at,
		       u.id, u.email, u.created_at,
		       pr.first_name, pr.last_name, pr.profession, pr.company_name
		FROM partnerships pa
		JOIN users u ON u.id = CASE WHEN pa.initiator_id = $1 THEN pa.receiver_id ELSE pa.initiator_id END
		LEFT JOIN profiles pr ON pr.user_id = u.id
		WHERE pa.status = 'accepted'
		  AND (pa.initiator_id = $1 OR pa.receiver_id = $1)
		ORDER BY pa.accepted_at DESC
	`

	rows, err := s.db.QueryContext(ctx, query, partyID)
	if err != nil {
		return nil, fmt.Errorf("listing partners: %w", err)
	}
	defer rows.Close()

	var partners []*partnership.Partner

	for rows.Next() {
		var (
			p          partnership.Partner
			pt         party.Party
			acceptedAt sql.NullTime

			firstName, lastName, profession, companyName sql.NullString
		)

		if err := rows.Scan(
			&p.PartnershipID, &p.Category, &acceptedAt,
			&pt.ID, &pt.Email, &pt.CreatedAt,
			&firstName, &lastName, &profession, &companyName,
		); err != nil {
			return nil, fmt.Errorf("scanning partner: %w", err)
		}

		if acceptedAt.Valid {
			p.Since = acceptedAt.Time
		}

		if firstName.Valid || lastName.Valid || profession.Valid || companyName.Valid {
			pt.Profile = &party.Profile{
				FirstName:   firstName.String,
				LastName:    lastName.String,
				Profession:  profession.String,
				CompanyName: companyName.String,
			}
		}

		p.Party = &pt
		partners = append(partners, &p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating partner rows: %w", err)
	}

	return partners, nil
}

func (s *Store) ListPending(ctx context.Context, partyID uuid.UUID, email string, direction partnership.Direction) ([]*partnership.Partnership, error) {
	query := `SELECT ` + selectPartnershipColumns + `
		FROM partnerships pa
		WHERE pa.status = 'pending' AND `

	var args []any

	if direction == partnership.DirectionSent {
		query += `pa.initiator_id = $1`
		args = []any{partyID}
	} else {
		query += `(pa.receiver_id = $1 OR (pa.receiver_id IS NULL AND LOWER(pa.invited_email) = $2))`
		args = []any{partyID, email}
	}

	query += ` ORDER BY pa.created_at DESC`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing pending partnerships: %w", err)
	}
	defer rows.Close()

	var list []*partnership.Partnership

	for rows.Next() {
		p, err := scanPartnership(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning partnership: %w", err)
		}

		list = append(list, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating partnership rows: %w", err)
	}

	return list, nil
}
