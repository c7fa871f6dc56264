package referral

import (
	"time"

	"github.com/google/uuid"

	"github.com/hamzaalie/spotlight-circle-sub000/internal/referral"
)

type referralResponse struct {
	ID          uuid.UUID       `json:"id"`
	SenderID    uuid.UUID       `json:"sender_id"`
	ReceiverID  uuid.UUID       `json:"receiver_id"`
	ClientName  string          `json:"client_name"`
	ClientEmail string          `json:"client_email,omitempty"`
	ClientPhone string          `json:"client_phone,omitempty"`
	ClientNotes string          `json:"client_notes,omitempty"`
	Status      referral.Status `json:"status"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   *time.Time      `json:"updated_at,omitempty"`
}

func toResponse(r *referral.Referral) referralResponse {
	return referralResponse{
		ID:          r.ID,
		SenderID:    r.SenderID,
		ReceiverID:  r.ReceiverID,
		ClientName:  r.ClientName,
		ClientEmail: r.ClientEmail,
		ClientPhone: r.ClientPhone,
		ClientNotes: r.ClientNotes,
		Status:      r.Status,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}

func toResponseList(refs []*referral.Referral) []referralResponse {
	resp := make([]referralResponse, len(refs))
	for i, r := range refs {
		resp[i] = toResponse(r)
	}

	return resp
}
