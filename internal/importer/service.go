package importer

import (
	"context"
	"errors"
	"io"

	"github.com/hamzaalie/spotlight-circle-sub000/internal/identity"
	"github.com/hamzaalie/spotlight-circle-sub000/internal/partnership"
)

//go:generate mockgen -source=service.go -destination=service_mock.go -package=importer
type Inviter interface {
	Invite(ctx context.Context, actor identity.Actor, params partnership.InviteParams) (*partnership.InviteResult, error)
}

type Service struct {
	parser  *Parser
	inviter Inviter
}

func NewService(inviter Inviter) *Service {
	return &Service{
		parser:  NewParser(),
		inviter: inviter,
	}
}

// RowOutcome reports what happened to one contact row.
type RowOutcome struct {
	Contact Contact
	Invited bool
	Skipped string
}

// Report summarizes a bulk invite run.
type Report struct {
	Rows    []RowOutcome
	Invited int
	Skipped int
}

// Import parses the upload and sends one invite per contact. Duplicate and
// invalid rows are reported, not fatal: one bad contact in a 200-row export
// should not discard the rest.
func (s *Service) Import(ctx context.Context, actor identity.Actor, r io.Reader) (*Report, error) {
	contacts, err := s.parser.Parse(r)
	if err != nil {
		return nil, err
	}

	report := &Report{}

	for _, c := range contacts {
		outcome := RowOutcome{Contact: c}

		_, err := s.inviter.Invite(ctx, actor, partnership.InviteParams{
			TargetEmail: c.Email,
			Category:    c.Category,
			Notes:       c.Notes,
		})

		switch {
		case err == nil:
			outcome.Invited = true
			report.Invited++
		case errors.Is(err, partnership.ErrDuplicatePending),
			errors.Is(err, partnership.ErrDuplicateActive),
			errors.Is(err, partnership.ErrSelfInvite),
			errors.Is(err, partnership.ErrInvalidEmail):
			outcome.Skipped = err.Error()
			report.Skipped++
		default:
			return nil, err
		}

		report.Rows = append(report.Rows, outcome)
	}

	return report, nil
}
