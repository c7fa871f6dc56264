// Package reminder sweeps for referrals that have sat in an actionable state
// past a freshness threshold and nudges both sides by email.
package reminder

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/hamzaalie/spotlight-circle-sub000/internal/notify"
	"github.com/hamzaalie/spotlight-circle-sub000/internal/party"
	"github.com/hamzaalie/spotlight-circle-sub000/internal/referral"
)

//go:generate mockgen -source=service.go -destination=service_mock.go -package=reminder
type ReferralSource interface {
	List(ctx context.Context, filter referral.ListFilter) ([]*referral.Referral, error)
}

// Directory resolves parties for reminder recipients.
type Directory interface {
	Get(ctx context.Context, id uuid.UUID) (*party.Party, error)
}

type Service struct {
	referrals  ReferralSource
	directory  Directory
	dispatcher notify.Dispatcher
	mailer     *notify.Mailer
}

func NewService(referrals ReferralSource, directory Directory, dispatcher notify.Dispatcher, mailer *notify.Mailer) *Service {
	return &Service{
		referrals:  referrals,
		directory:  directory,
		dispatcher: dispatcher,
		mailer:     mailer,
	}
}

// Outcome summarizes one sweep for the operator log.
type Outcome struct {
	Scanned int
	Sent    int
	Failed  int
}

// Scan returns the referrals still sitting in new or contacted whose creation
// predates the threshold. Terminal and in-progress rows are left alone
// regardless of age.
func (s *Service) Scan(ctx context.Context, staleAfter time.Duration) ([]*referral.Referral, error) {
	cutoff := time.Now().UTC().Add(-staleAfter)

	stale, err := s.referrals.List(ctx, referral.ListFilter{
		Statuses:      referral.StaleStatuses,
		CreatedBefore: &cutoff,
	})
	if err != nil {
		return nil, fmt.Errorf("listing stale referrals: %w", err)
	}

	return stale, nil
}

// Notify emails the sender and the receiver of every given referral. The
// sweep keeps no memory of what it already sent: running it twice sends
// twice, so the operator schedule is the only pacing.
func (s *Service) Notify(ctx context.Context, stale []*referral.Referral) Outcome {
	out := Outcome{Scanned: len(stale)}

	for _, r := range stale {
		age := time.Since(r.CreatedAt)

		for _, partyID := range []uuid.UUID{r.SenderID, r.ReceiverID} {
			p, err := s.directory.Get(ctx, partyID)
			if err != nil {
				slog.Warn("skipping reminder for unresolvable party",
					"referral_id", r.ID, "party_id", partyID, "error", err)
				out.Failed++
				continue
			}

			msg := s.mailer.StaleReminder(p.Email, r.ClientName, age, r.ID)
			if _, err := s.dispatcher.Send(ctx, msg); err != nil {
				slog.Warn("failed to send stale reminder",
					"referral_id", r.ID, "to", p.Email, "error", err)
				out.Failed++
				continue
			}

			out.Sent++
		}
	}

	return out
}

// Run is the one-shot sweep: scan then notify.
func (s *Service) Run(ctx context.Context, staleAfter time.Duration) (Outcome, error) {
	stale, err := s.Scan(ctx, staleAfter)
	if err != nil {
		return Outcome{}, err
	}

	return s.Notify(ctx, stale), nil
}
