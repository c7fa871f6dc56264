package request

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrNotFound         = errors.New("referral request not found")
	ErrMissingRequester = errors.New("requester name and email are required")
	ErrSamePartner      = errors.New("partner must differ from the profile owner")
	ErrNotOwner         = errors.New("actor does not own this request")
	ErrNotPending       = errors.New("request is no longer pending")
)

// Status is the lifecycle state of a referral request. Pending is the only
// non-terminal state: forwarded, declined and expired end the flow.
type Status string

const (
	StatusPending   Status = "pending"
	StatusForwarded Status = "forwarded"
	StatusDeclined  Status = "declined"
	StatusExpired   Status = "expired"
)

// ReferralRequest is a profile visitor's ask to be introduced to one of the
// profile owner's partners. It is created by a public, possibly
// unauthenticated actor and mutated only by the profile owner.
type ReferralRequest struct {
	ID               uuid.UUID
	ProfileOwnerID   uuid.UUID
	PartnerUserID    uuid.UUID
	RequesterName    string
	RequesterEmail   string
	RequesterPhone   string
	RequesterMessage string
	Status           Status
	CreatedAt        time.Time
	ForwardedAt      *time.Time
	UpdatedAt        *time.Time
}
