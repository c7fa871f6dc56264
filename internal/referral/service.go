package referral

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/hamzaalie/spotlight-circle-sub000/internal/identity"
	"github.com/hamzaalie/spotlight-circle-sub000/internal/notify"
	"github.com/hamzaalie/spotlight-circle-sub000/internal/party"
)

//go:generate mockgen -source=service.go -destination=service_mock.go -package=referral
type Repository interface {
	BeginSend(ctx context.Context, senderID uuid.UUID, receiverIDs []uuid.UUID) (SendTx, error)
	GetReferral(ctx context.Context, id uuid.UUID) (*Referral, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status Status) (*Referral, error)
	ListReferrals(ctx context.Context, filter ListFilter) ([]*Referral, error)
}

// SendTx scopes one fan-out to a single database transaction: the partnership
// checks and all row creations commit together or not at all.
type SendTx interface {
	MissingPartners(ctx context.Context) ([]uuid.UUID, error)
	CreateReferrals(ctx context.Context, refs []*Referral) error
	Commit() error
	Rollback() error
}

// Directory resolves receiver parties for notification payloads. Read-only.
type Directory interface {
	Get(ctx context.Context, id uuid.UUID) (*party.Party, error)
}

type ListFilter struct {
	SenderID      *uuid.UUID
	ReceiverID    *uuid.UUID
	Statuses      []Status
	CreatedBefore *time.Time
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

// Send routes one client introduction to every selected partner, creating one
// independent referral row per receiver. Every receiver must hold an accepted
// partnership with the sender; if any does not, the whole call fails and no
// rows are created. A partial fan-out would let the sender believe the client
// reached everyone.
func (s *Service) Send(ctx context.Context, actor identity.Actor, client Client, receiverIDs []uuid.UUID) ([]*Referral, error) {
	client.Name = strings.TrimSpace(client.Name)
	client.Email = party.NormalizeEmail(client.Email)

	if client.Name == "" || client.Email == "" {
		return nil, ErrMissingClient
	}

	receivers := dedupe(receiverIDs)
	if len(receivers) == 0 {
		return nil, ErrNoReceivers
	}

	for _, id := range receivers {
		if id == actor.ID {
			return nil, ErrSelfReferral
		}
	}

	stx, err := s.repo.BeginSend(ctx, actor.ID, receivers)
	if err != nil {
		return nil, fmt.Errorf("begin send: %w", err)
	}
	defer stx.Rollback()

	missing, err := stx.MissingPartners(ctx)
	if err != nil {
		return nil, fmt.Errorf("checking partnerships: %w", err)
	}

	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrNotPartnered, joinIDs(missing))
	}

	refs := make([]*Referral, len(receivers))
	for i, receiverID := range receivers {
		refs[i] = &Referral{
			SenderID:    actor.ID,
			ReceiverID:  receiverID,
			ClientName:  client.Name,
			ClientEmail: client.Email,
			ClientPhone: strings.TrimSpace(client.Phone),
			ClientNotes: strings.TrimSpace(client.Notes),
			Status:      StatusNew,
		}
	}

	if err := stx.CreateReferrals(ctx, refs); err != nil {
		return nil, fmt.Errorf("create referrals: %w", err)
	}

	if err := stx.Commit(); err != nil {
		return nil, fmt.Errorf("commit send: %w", err)
	}

	s.notifyReceivers(ctx, actor, refs)

	return refs, nil
}

// notifyReceivers sends one email per created referral. The rows are already
// committed, so failures are logged and never rolled back into.
func (s *Service) notifyReceivers(ctx context.Context, actor identity.Actor, refs []*Referral) {
	senderName := actor.Email
	if sender, err := s.directory.Get(ctx, actor.ID); err == nil {
		senderName = sender.DisplayName()
	}

	for _, r := range refs {
		receiver, err := s.directory.Get(ctx, r.ReceiverID)
		if err != nil {
			slog.Warn("failed to resolve referral receiver for email",
				"referral_id", r.ID, "receiver_id", r.ReceiverID, "error", err)
			continue
		}

		msg := s.mailer.ReferralReceived(receiver.Email, senderName, r.ClientName, r.ID)
		if _, err := s.dispatcher.Send(ctx, msg); err != nil {
			slog.Warn("failed to send referral email",
				"referral_id", r.ID, "error", err)
		}
	}
}

// UpdateStatus moves a referral to any status in the closed set. No ordering
// is enforced between statuses; a completed referral can be reopened.
func (s *Service) UpdateStatus(ctx context.Context, actor identity.Actor, id uuid.UUID, status Status) (*Referral, error) {
	if !status.Valid() {
		return nil, ErrInvalidStatus
	}

	r, err := s.repo.GetReferral(ctx, id)
	if err != nil {
		return nil, err
	}

	if !r.Involves(actor.ID) {
		return nil, ErrNotParticipant
	}

	return s.repo.UpdateStatus(ctx, id, status)
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Referral, error) {
	return s.repo.GetReferral(ctx, id)
}

func (s *Service) List(ctx context.Context, filter ListFilter) ([]*Referral, error) {
	return s.repo.ListReferrals(ctx, filter)
}

// Sent lists referrals the actor routed to partners.
func (s *Service) Sent(ctx context.Context, actorID uuid.UUID) ([]*Referral, error) {
	id := actorID
	return s.repo.ListReferrals(ctx, ListFilter{SenderID: &id})
}

// Received lists referrals routed to the actor.
func (s *Service) Received(ctx context.Context, actorID uuid.UUID) ([]*Referral, error) {
	id := actorID
	return s.repo.ListReferrals(ctx, ListFilter{ReceiverID: &id})
}

func dedupe(ids []uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(ids))
	out := make([]uuid.UUID, 0, len(ids))

	for _, id := range ids {
		if id == uuid.Nil {
			continue
		}

		if _, ok := seen[id]; ok {
			continue
		}

		seen[id] = struct{}{}
		out = append(out, id)
	}

	return out
}

func joinIDs(ids []uuid.UUID) string {
	strs := make([]string, len(ids))
	for i, id := range ids {
		strs[i] = id.String()
	}

	return strings.Join(strs, ", ")
}
