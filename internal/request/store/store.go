package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/hamzaalie/spotlight-circle-sub000/internal/request"
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

const selectRequestColumns = `
	rr.id, rr.profile_owner_id, rr.partner_user_id, rr.requester_name, rr.requester_email,
	rr.requester_phone, rr.requester_message, rr.status, rr.created_at, rr.forwarded_at, rr.updated_at
`

func scanRequest(s scanner) (*request.ReferralRequest, error) {
	var r request.ReferralRequest

	var statusStr string

	var phone, message sql.NullString

	if err := s.Scan(
		&r.ID, &r.ProfileOwnerID, &r.PartnerUserID, &r.RequesterName, &r.RequesterEmail,
		&phone, &message, &statusStr, &r.CreatedAt, &r.ForwardedAt, &r.UpdatedAt,
	); err != nil {
		return nil, err
	}

	r.Status = request.Status(statusStr)
	r.RequesterPhone = phone.String
	r.RequesterMessage = message.String

	return &r, nil
}

func (s *Store) CreateRequest(ctx context.Context, r *request.ReferralRequest) error {
	query := `
		INSERT INTO referral_requests (profile_owner_id, partner_user_id, requester_name, requester_email, requester_phone, requester_message, status, created_at)
		VALUES ($1, $2, $3, $4, NULLIF($5, ''), NULLIF($6, ''), $7, NOW())
		RETURNING id, created_at
	`

	err := s.db.QueryRowContext(ctx, query,
		r.ProfileOwnerID,
		r.PartnerUserID,
		r.RequesterName,
		r.RequesterEmail,
		r.RequesterPhone,
		r.RequesterMessage,
		r.Status,
	).Scan(&r.ID, &r.CreatedAt)
	if err != nil {
		return fmt.Errorf("creating referral request: %w", err)
	}

	return nil
}

func (s *Store) GetRequest(ctx context.Context, id uuid.UUID) (*request.ReferralRequest, error) {
	query := `SELECT ` + selectRequestColumns + `
		FROM referral_requests rr
		WHERE rr.id = $1`

	r, err := scanRequest(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, request.ErrNotFound
		}

		return nil, fmt.Errorf("getting referral request: %w", err)
	}

	return r, nil
}

const returningRequestColumns = `
	id, profile_owner_id, partner_user_id, requester_name, requester_email,
	requester_phone, requester_message, status, created_at, forwarded_at, updated_at
`

// MarkForwarded stamps a pending request forwarded. The status guard in the
// WHERE clause makes concurrent forwards lose cleanly instead of
// double-stamping.
func (s *Store) MarkForwarded(ctx context.Context, id uuid.UUID, at time.Time) (*request.ReferralRequest, error) {
	query := `
		UPDATE referral_requests
		SET status = 'forwarded', forwarded_at = $1, updated_at = NOW()
		WHERE id = $2 AND status = 'pending'
		RETURNING ` + returningRequestColumns

	r, err := scanRequest(s.db.QueryRowContext(ctx, query, at, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, request.ErrNotPending
		}

		return nil, fmt.Errorf("marking request forwarded: %w", err)
	}

	return r, nil
}

func (s *Store) MarkDeclined(ctx context.Context, id uuid.UUID) (*request.ReferralRequest, error) {
	query := `
		UPDATE referral_requests
		SET status = 'declined', updated_at = NOW()
		WHERE id = $1 AND status = 'pending'
		RETURNING ` + returningRequestColumns

	r, err := scanRequest(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, request.ErrNotPending
		}

		return nil, fmt.Errorf("marking request declined: %w", err)
	}

	return r, nil
}

func (s *Store) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*request.ReferralRequest, error) {
	query := `SELECT ` + selectRequestColumns + `
		FROM referral_requests rr
		WHERE rr.profile_owner_id = $1
		ORDER BY rr.created_at DESC`

	rows, err := s.db.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("listing referral requests: %w", err)
	}
	defer rows.Close()

	var list []*request.ReferralRequest

	for rows.Next() {
		r, err := scanRequest(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning referral request: %w", err)
		}

		list = append(list, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating referral request rows: %w", err)
	}

	return list, nil
}

func (s *Store) ExpirePending(ctx context.Context, olderThan time.Time) (int64, error) {
	query := `
		UPDATE referral_requests
		SET status = 'expired', updated_at = NOW()
		WHERE status = 'pending' AND created_at < $1
	`

	res, err := s.db.ExecContext(ctx, query, olderThan)
	if err != nil {
		return 0, fmt.Errorf("expiring referral requests: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("counting expired requests: %w", err)
	}

	return n, nil
}
