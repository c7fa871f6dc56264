package referral

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrNotFound       = errors.New("referral not found")
	ErrMissingClient  = errors.New("client name and email are required")
	ErrNoReceivers    = errors.New("at least one receiver is required")
	ErrSelfReferral   = errors.New("cannot send a referral to yourself")
	ErrNotPartnered   = errors.New("receiver is not an accepted partner")
	ErrNotParticipant = errors.New("actor is not part of this referral")
	ErrInvalidStatus  = errors.New("unknown referral status")
)

// Status is the lifecycle state of a referral. The set is closed but no
// transition order is enforced: any status may follow any other. Completed
// and lost are terminal in practice and excluded from staleness checks.
type Status string

const (
	StatusNew        Status = "new"
	StatusContacted  Status = "contacted"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
	StatusLost       Status = "lost"
)

func (s Status) Valid() bool {
	switch s {
	case StatusNew, StatusContacted, StatusInProgress, StatusCompleted, StatusLost:
		return true
	}

	return false
}

// StaleStatuses are the states in which an aging referral warrants a
// follow-up reminder.
var StaleStatuses = []Status{StatusNew, StatusContacted}

// Client is the introduced person's contact details, shared by every row of
// one fan-out.
type Client struct {
	Name  string
	Email string
	Phone string
	Notes string
}

// Referral is a single client introduction to a single receiver. One send
// call produces one row per selected partner, each with its own independent
// status lifecycle. Rows are never deleted.
type Referral struct {
	ID          uuid.UUID
	SenderID    uuid.UUID
	ReceiverID  uuid.UUID
	ClientName  string
	ClientEmail string
	ClientPhone string
	ClientNotes string
	Status      Status
	CreatedAt   time.Time
	UpdatedAt   *time.Time
}

// Involves reports whether the actor is the sender or the receiver.
func (r *Referral) Involves(actorID uuid.UUID) bool {
	return r.SenderID == actorID || r.ReceiverID == actorID
}
