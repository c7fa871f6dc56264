package request

import (
	"time"

	"github.com/google/uuid"

	"github.com/hamzaalie/spotlight-circle-sub000/internal/request"
)

type requestResponse struct {
	ID             uuid.UUID      `json:"id"`
	ProfileOwnerID uuid.UUID      `json:"profile_owner_id"`
	PartnerUserID  uuid.UUID      `json:"partner_user_id"`
	Name           string         `json:"name"`
	Email          string         `json:"email"`
	Phone          string         `json:"phone,omitempty"`
	Message        string         `json:"message,omitempty"`
	Status         request.Status `json:"status"`
	CreatedAt      time.Time      `json:"created_at"`
	ForwardedAt    *time.Time     `json:"forwarded_at,omitempty"`
}

func toResponse(r *request.ReferralRequest) requestResponse {
	return requestResponse{
		ID:             r.ID,
		ProfileOwnerID: r.ProfileOwnerID,
		PartnerUserID:  r.PartnerUserID,
		Name:           r.RequesterName,
		Email:          r.RequesterEmail,
		Phone:          r.RequesterPhone,
		Message:        r.RequesterMessage,
		Status:         r.Status,
		CreatedAt:      r.CreatedAt,
		ForwardedAt:    r.ForwardedAt,
	}
}

func toResponseList(rows []*request.ReferralRequest) []requestResponse {
	resp := make([]requestResponse, len(rows))
	for i, r := range rows {
		resp[i] = toResponse(r)
	}

	return resp
}
