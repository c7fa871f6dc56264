package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

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

const selectPartyColumns = `
	u.id, u.email, u.created_at,
	p.first_name, p.last_name, p.profession, p.company_name
`

func scanParty(s scanner) (*party.Party, error) {
	var pt party.Party

	var firstName, lastName, profession, companyName sql.NullString

	if err := s.Scan(
		&pt.ID, &pt.Email, &pt.CreatedAt,
		&firstName, &lastName, &profession, &companyName,
	); err != nil {
		return nil, err
	}

	if firstName.Valid || lastName.Valid || profession.Valid || companyName.Valid {
		pt.Profile = &party.Profile{
			FirstName:   firstName.String,
			LastName:    lastName.String,
			Profession:  profession.String,
			CompanyName: companyName.String,
		}
	}

	return &pt, nil
}

func (s *Store) GetParty(ctx context.Context, id uuid.UUID) (*party.Party, error) {
	query := `SELECT ` + selectPartyColumns + `
		FROM users u
		LEFT JOIN profiles p ON p.user_id = u.id
		WHERE u.id = $1`

	pt, err := scanParty(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, party.ErrNotFound
		}

		return nil, fmt.Errorf("getting party: %w", err)
	}

	return pt, nil
}

func (s *Store) FindByEmail(ctx context.Context, email string) (*party.Party, error) {
	query := `SELECT ` + selectPartyColumns + `
		FROM users u
		LEFT JOIN profiles p ON p.user_id = u.id
		WHERE LOWER(u.email) = $1`

	pt, err := scanParty(s.db.QueryRowContext(ctx, query, email))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, party.ErrNotFound
		}

		return nil, fmt.Errorf("finding party by email: %w", err)
	}

	return pt, nil
}
