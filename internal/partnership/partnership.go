package partnership

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/hamzaalie/spotlight-circle-sub000/internal/party"
)

var (
	ErrNotFound         = errors.New("partnership not found")
	ErrInvalidEmail     = errors.New("invalid partner email")
	ErrSelfInvite       = errors.New("cannot invite yourself")
	ErrInvalidDecision  = errors.New("decision must be accepted or declined")
	ErrDuplicatePending = errors.New("an invitation for this pair is already pending")
	ErrDuplicateActive  = errors.New("partnership is already active")
	ErrNotParticipant   = errors.New("actor is not part of this partnership")
	ErrConflict         = errors.New("conflicting partnership state")
)

// Status is the lifecycle state of a partnership.
type Status string

const (
	StatusPending  Status = "pending"
	StatusAccepted Status = "accepted"
	StatusDeclined Status = "declined"
)

// Target addresses the invited side of a partnership: either a registered
// party or an email address not yet on the platform. Exactly one of the two
// is set.
type Target struct {
	partyID uuid.UUID
	email   string
}

func KnownParty(id uuid.UUID) Target {
	return Target{partyID: id}
}

func PendingEmail(email string) Target {
	return Target{email: email}
}

func (t Target) Known() bool {
	return t.partyID != uuid.Nil
}

func (t Target) PartyID() uuid.UUID { return t.partyID }
func (t Target) Email() string      { return t.email }

// Partnership is a mutual-referral relationship between an initiator and
// either a registered receiver or an invited email. Rows are never deleted;
// only status and timestamps mutate.
type Partnership struct {
	ID           uuid.UUID
	InitiatorID  uuid.UUID
	ReceiverID   *uuid.UUID
	InvitedEmail string
	Category     string
	Notes        string
	Status       Status
	CreatedAt    time.Time
	UpdatedAt    *time.Time
	AcceptedAt   *time.Time
}

// Target returns the invited side as a tagged value.
func (p *Partnership) Target() Target {
	if p.ReceiverID != nil {
		return KnownParty(*p.ReceiverID)
	}

	return PendingEmail(p.InvitedEmail)
}

// Involves reports whether the actor is the initiator or the bound receiver.
// An email invitee who has not yet been bound is matched via InvitedFor.
func (p *Partnership) Involves(actorID uuid.UUID) bool {
	if p.InitiatorID == actorID {
		return true
	}

	return p.ReceiverID != nil && *p.ReceiverID == actorID
}

// InvitedFor reports whether the row was addressed to the given email and is
// still unbound.
func (p *Partnership) InvitedFor(email string) bool {
	return p.ReceiverID == nil && p.InvitedEmail != "" && p.InvitedEmail == party.NormalizeEmail(email)
}

// OtherSide returns the party on the opposite side of the given one. The
// second return is false when the other side is an unbound email invitee.
func (p *Partnership) OtherSide(partyID uuid.UUID) (uuid.UUID, bool) {
	if p.InitiatorID != partyID {
		return p.InitiatorID, true
	}

	if p.ReceiverID != nil {
		return *p.ReceiverID, true
	}

	return uuid.Nil, false
}

// respondTransitions is the closed table of legal status moves for Respond.
// Accepted is terminal; repeating the current status is a no-op and therefore
// absent. A declined row may still be accepted later (late acceptance), while
// re-inviting a declined pair goes through Reinvite instead.
var respondTransitions = map[Status]map[Status]bool{
	StatusPending:  {StatusAccepted: true, StatusDeclined: true},
	StatusDeclined: {StatusAccepted: true},
}

// Respond applies an accept/decline decision. AcceptedAt is stamped exactly
// once and never overwritten.
func (p *Partnership) Respond(decision Status, now time.Time) error {
	if decision != StatusAccepted && decision != StatusDeclined {
		return ErrInvalidDecision
	}

	if !respondTransitions[p.Status][decision] {
		return ErrConflict
	}

	p.Status = decision

	if decision == StatusAccepted && p.AcceptedAt == nil {
		t := now
		p.AcceptedAt = &t
	}

	return nil
}

// Reinvite resets a declined row in place for a fresh invitation, re-applying
// the initiator/receiver roles to reflect the new inviter. No new row is ever
// created for a pair that already has one.
func (p *Partnership) Reinvite(initiatorID uuid.UUID, target Target, category, notes string) error {
	if p.Status != StatusDeclined {
		return ErrConflict
	}

	p.InitiatorID = initiatorID

	if target.Known() {
		id := target.PartyID()
		p.ReceiverID = &id
		p.InvitedEmail = ""
	} else {
		p.ReceiverID = nil
		p.InvitedEmail = target.Email()
	}

	p.Category = category
	p.Notes = notes
	p.Status = StatusPending
	p.AcceptedAt = nil

	return nil
}
