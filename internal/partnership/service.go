package partnership

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/hamzaalie/spotlight-circle-sub000/internal/identity"
	"github.com/hamzaalie/spotlight-circle-sub000/internal/notify"
	"github.com/hamzaalie/spotlight-circle-sub000/internal/party"
)

//go:generate mockgen -source=service.go -destination=service_mock.go -package=partnership
type Repository interface {
	BeginInvite(ctx context.Context, initiatorID uuid.UUID, target Target) (InviteTx, error)
	GetPartnership(ctx context.Context, id uuid.UUID) (*Partnership, error)
	UpdatePartnership(ctx context.Context, p *Partnership, prior Status) error

	ListPartners(ctx context.Context, partyID uuid.UUID) ([]*Partner, error)
	ListPending(ctx context.Context, partyID uuid.UUID, email string, direction Direction) ([]*Partnership, error)
}

// InviteTx scopes the dedup check-then-write of an invite to one database
// transaction. The pair is locked for its duration, so two concurrent invites
// between the same parties cannot both observe "not found".
type InviteTx interface {
	FindForPair(ctx context.Context) (*Partnership, error)
	CreatePartnership(ctx context.Context, p *Partnership) error
	Reinvite(ctx context.Context, p *Partnership) error
	Commit() error
	Rollback() error
}

// Directory resolves parties and profiles. It is read-only; the identity
// provider owns the underlying rows.
type Directory interface {
	Get(ctx context.Context, id uuid.UUID) (*party.Party, error)
	FindByEmail(ctx context.Context, email string) (*party.Party, error)
}

// Direction selects which side of a pending invitation the caller is on.
type Direction string

const (
	DirectionSent     Direction = "sent"
	DirectionReceived Direction = "received"
)

// Partner is an accepted partnership resolved to the other side's party and
// profile, as shown in partner listings.
type Partner struct {
	PartnershipID uuid.UUID
	Category      string
	Since         time.Time
	Party         *party.Party
}

type Service struct {
	repo       Repository
	directory  Directory
	dispatcher notify.Dispatcher
	mailer     *notify.Mailer
}

func NewService(repo Repository, directory Directory, dispatcher notify.Dispatcher, mailer *notify.Mailer) *Service {
	return &Service{
		repo:       repo,
		directory:  directory,
		dispatcher: dispatcher,
		mailer:     mailer,
	}
}

type InviteParams struct {
	TargetEmail string
	Category    string
	Notes       string
}

// InviteResult carries the partnership plus whether the target was already a
// registered party, which only affects caller-facing messaging.
type InviteResult struct {
	Partnership *Partnership
	KnownParty  bool
}

// Invite creates a pending partnership towards the target email, or reuses
// the pair's declined row if one exists. At most one pending-or-accepted row
// can exist per pair; the check and the write run in one locked transaction.
func (s *Service) Invite(ctx context.Context, actor identity.Actor, params InviteParams) (*InviteResult, error) {
	email := party.NormalizeEmail(params.TargetEmail)
	if email == "" || !strings.Contains(email, "@") {
		return nil, ErrInvalidEmail
	}

	if email == party.NormalizeEmail(actor.Email) {
		return nil, ErrSelfInvite
	}

	target := PendingEmail(email)

	var known *party.Party

	pt, err := s.directory.FindByEmail(ctx, email)

	switch {
	case err == nil:
		if pt.ID == actor.ID {
			return nil, ErrSelfInvite
		}

		target = KnownParty(pt.ID)
		known = pt
	case errors.Is(err, party.ErrNotFound):
		// Unregistered target: address the row by email.
	default:
		return nil, fmt.Errorf("resolving invitee: %w", err)
	}

	itx, err := s.repo.BeginInvite(ctx, actor.ID, target)
	if err != nil {
		return nil, fmt.Errorf("begin invite: %w", err)
	}
	defer itx.Rollback()

	existing, err := itx.FindForPair(ctx)
	if err != nil {
		return nil, fmt.Errorf("find existing partnership: %w", err)
	}

	var p *Partnership

	switch {
	case existing == nil:
		p = &Partnership{
			InitiatorID: actor.ID,
			Category:    strings.TrimSpace(params.Category),
			Notes:       strings.TrimSpace(params.Notes),
			Status:      StatusPending,
		}
		if target.Known() {
			id := target.PartyID()
			p.ReceiverID = &id
		} else {
			p.InvitedEmail = target.Email()
		}

		if err := itx.CreatePartnership(ctx, p); err != nil {
			return nil, fmt.Errorf("create partnership: %w", err)
		}
	case existing.Status == StatusAccepted:
		return nil, ErrDuplicateActive
	case existing.Status == StatusPending:
		return nil, ErrDuplicatePending
	default:
		// Declined pair: reset the same row instead of inserting a new one.
		if err := existing.Reinvite(actor.ID, target, strings.TrimSpace(params.Category), strings.TrimSpace(params.Notes)); err != nil {
			return nil, err
		}

		if err := itx.Reinvite(ctx, existing); err != nil {
			return nil, fmt.Errorf("reinvite partnership: %w", err)
		}

		p = existing
	}

	if err := itx.Commit(); err != nil {
		return nil, fmt.Errorf("commit invite: %w", err)
	}

	s.notifyInvite(ctx, actor, p, known)

	return &InviteResult{Partnership: p, KnownParty: known != nil}, nil
}

// notifyInvite enqueues exactly one invitation email after the row is
// committed. Failures are logged and never surfaced to the caller.
func (s *Service) notifyInvite(ctx context.Context, actor identity.Actor, p *Partnership, known *party.Party) {
	inviterName := actor.Email
	if inviter, err := s.directory.Get(ctx, actor.ID); err == nil {
		inviterName = inviter.DisplayName()
	}

	var msg notify.Message
	if known != nil {
		msg = s.mailer.PartnerInvite(known.Email, inviterName, p.Category, p.ID)
	} else {
		msg = s.mailer.SignupInvite(p.InvitedEmail, inviterName, p.Category, actor.ID)
	}

	if _, err := s.dispatcher.Send(ctx, msg); err != nil {
		slog.Warn("failed to send partnership invite email",
			"partnership_id", p.ID, "error", err)
	}
}

// Respond applies an accept or decline decision on behalf of the actor. An
// email invitee responding for the first time is bound as the receiver.
func (s *Service) Respond(ctx context.Context, actor identity.Actor, id uuid.UUID, decision Status) (*Partnership, error) {
	p, err := s.repo.GetPartnership(ctx, id)
	if err != nil {
		return nil, err
	}

	invitee := p.InvitedFor(actor.Email)
	if !p.Involves(actor.ID) && !invitee {
		return nil, ErrNotParticipant
	}

	prior := p.Status

	if err := p.Respond(decision, time.Now().UTC()); err != nil {
		return nil, err
	}

	if invitee {
		actorID := actor.ID
		p.ReceiverID = &actorID
		p.InvitedEmail = ""
	}

	// The write is guarded on the status we read: if a concurrent response
	// moved the row first, the store reports ErrConflict instead of
	// overwriting the earlier decision.
	if err := s.repo.UpdatePartnership(ctx, p, prior); err != nil {
		if errors.Is(err, ErrConflict) {
			return nil, ErrConflict
		}

		return nil, fmt.Errorf("update partnership: %w", err)
	}

	s.notifyResponse(ctx, actor, p, decision)

	return p, nil
}

func (s *Service) notifyResponse(ctx context.Context, actor identity.Actor, p *Partnership, decision Status) {
	// The initiator responding to their own invite (a retraction) needs no email.
	if p.InitiatorID == actor.ID {
		return
	}

	initiator, err := s.directory.Get(ctx, p.InitiatorID)
	if err != nil {
		slog.Warn("failed to resolve initiator for response email",
			"partnership_id", p.ID, "error", err)
		return
	}

	responderName := actor.Email
	if responder, derr := s.directory.Get(ctx, actor.ID); derr == nil {
		responderName = responder.DisplayName()
	}

	msg := s.mailer.InviteResponse(initiator.Email, responderName, decision == StatusAccepted)
	if _, err := s.dispatcher.Send(ctx, msg); err != nil {
		slog.Warn("failed to send partnership response email",
			"partnership_id", p.ID, "error", err)
	}
}

// Get exposes a partnership's pair, category and notes by id. This backs the
// public accept page, so no actor check happens here; mutation still goes
// through Respond.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Partnership, error) {
	return s.repo.GetPartnership(ctx, id)
}

// Partners lists the actor's accepted partnerships resolved to the other
// side's party and profile.
func (s *Service) Partners(ctx context.Context, actorID uuid.UUID) ([]*Partner, error) {
	return s.repo.ListPartners(ctx, actorID)
}

// Pending lists pending invitations the actor sent or received. Received
// covers both bound receivers and rows addressed to the actor's email.
func (s *Service) Pending(ctx context.Context, actor identity.Actor, direction Direction) ([]*Partnership, error) {
	if direction != DirectionSent && direction != DirectionReceived {
		return nil, fmt.Errorf("unknown direction %q", direction)
	}

	return s.repo.ListPending(ctx, actor.ID, party.NormalizeEmail(actor.Email), direction)
}
