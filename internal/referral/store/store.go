package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/hamzaalie/spotlight-circle-sub000/internal/referral"
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

const selectReferralColumns = `
	r.id, r.sender_id, r.receiver_id, r.client_name, r.client_email,
	r.client_phone, r.client_notes, r.status, r.created_at, r.updated_at
`

func scanReferral(s scanner) (*referral.Referral, error) {
	var r referral.Referral

	var statusStr string

	var phone, notes sql.NullString

	if err := s.Scan(
		&r.ID, &r.SenderID, &r.ReceiverID, &r.ClientName, &r.ClientEmail,
		&phone, &notes, &statusStr, &r.CreatedAt, &r.UpdatedAt,
	); err != nil {
		return nil, err
	}

	r.Status = referral.Status(statusStr)
	r.ClientPhone = phone.String
	r.ClientNotes = notes.String

	return &r, nil
}

type sendTx struct {
	tx        *sql.Tx
	senderID  uuid.UUID
	receivers []uuid.UUID
}

func (s *Store) BeginSend(ctx context.Context, senderID uuid.UUID, receiverIDs []uuid.UUID) (referral.SendTx, error) {
	dbTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning send tx: %w", err)
	}

	return &sendTx{tx: dbTx, senderID: senderID, receivers: receiverIDs}, nil
}

func (stx *sendTx) Commit() error   { return stx.tx.Commit() }
func (stx *sendTx) Rollback() error { return stx.tx.Rollback() }

// MissingPartners returns the receivers that do not hold an accepted
// partnership with the sender. A non-empty result aborts the fan-out.
func (stx *sendTx) MissingPartners(ctx context.Context) ([]uuid.UUID, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM partnerships pa
			WHERE pa.status = 'accepted'
			  AND ((pa.initiator_id = $1 AND pa.receiver_id = $2)
			    OR (pa.initiator_id = $2 AND pa.receiver_id = $1))
		)
	`

	var missing []uuid.UUID

	for _, receiverID := range stx.receivers {
		var accepted bool
		if err := stx.tx.QueryRowContext(ctx, query, stx.senderID, receiverID).Scan(&accepted); err != nil {
			return nil, fmt.Errorf("checking partnership with %s: %w", receiverID, err)
		}

		if !accepted {
			missing = append(missing, receiverID)
		}
	}

	return missing, nil
}

func (stx *sendTx) CreateReferrals(ctx context.Context, refs []*referral.Referral) error {
	query := `
		INSERT INTO referrals (sender_id, receiver_id, client_name, client_email, client_phone, client_notes, status, created_at)
		VALUES ($1, $2, $3, $4, NULLIF($5, ''), NULLIF($6, ''), $7, NOW())
		RETURNING id, created_at
	`

	for _, r := range refs {
		err := stx.tx.QueryRowContext(ctx, query,
			r.SenderID,
			r.ReceiverID,
			r.ClientName,
			r.ClientEmail,
			r.ClientPhone,
			r.ClientNotes,
			r.Status,
		).Scan(&r.ID, &r.CreatedAt)
		if err != nil {
			return fmt.Errorf("creating referral: %w", err)
		}
	}

	return nil
}

func (s *Store) GetReferral(ctx context.Context, id uuid.UUID) (*referral.Referral, error) {
	query := `SELECT ` + selectReferralColumns + `
		FROM referrals r
		WHERE r.id = $1`

	r, err := scanReferral(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, referral.ErrNotFound
		}

		return nil, fmt.Errorf("getting referral: %w", err)
	}

	return r, nil
}

func (s *Store) UpdateStatus(ctx context.Context, id uuid.UUID, status referral.Status) (*referral.Referral, error) {
	query := `
		UPDATE referrals
		SET status = $1, updated_at = NOW()
		WHERE id = $2
		RETURNING ` + updatedReferralColumns

	r, err := scanReferral(s.db.QueryRowContext(ctx, query, status, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, referral.ErrNotFound
		}

		return nil, fmt.Errorf("updating referral status: %w", err)
	}

	return r, nil
}

// updatedReferralColumns mirrors selectReferralColumns without the table alias
// for use in RETURNING clauses.
const updatedReferralColumns = `
	id, sender_id, receiver_id, client_name, client_email,
	client_phone, client_notes, status, created_at, updated_at
`

func (s *Store) ListReferrals(ctx context.Context, filter referral.ListFilter) ([]*referral.Referral, error) {
	query := `SELECT ` + selectReferralColumns + `
		FROM referrals r
		WHERE 1=1`

	var args []any

	argIdx := 1

	if filter.SenderID != nil {
		query += fmt.Sprintf(" AND r.sender_id = $%d", argIdx)

		args = append(args, *filter.SenderID)
		argIdx++
	}

	if filter.ReceiverID != nil {
		query += fmt.Sprintf(" AND r.receiver_id = $%d", argIdx)

		args = append(args, *filter.ReceiverID)
		argIdx++
	}

	if len(filter.Statuses) > 0 {
		query += " AND r.status IN ("
		for i, st := range filter.Statuses {
			if i > 0 {
				query += ", "
			}

			query += fmt.Sprintf("$%d", argIdx)

			args = append(args, st)
			argIdx++
		}
		query += ")"
	}

	if filter.CreatedBefore != nil {
		query += fmt.Sprintf(" AND r.created_at < $%d", argIdx)

		args = append(args, *filter.CreatedBefore)
		argIdx++
	}

	query += " ORDER BY r.created_at DESC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing referrals: %w", err)
	}
	defer rows.Close()

	var refs []*referral.Referral

	for rows.Next() {
		r, err := scanReferral(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning referral: %w", err)
		}

		refs = append(refs, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating referral rows: %w", err)
	}

	return refs, nil
}
