package partnership

import (
	"time"

	"github.com/google/uuid"

	"github.com/hamzaalie/spotlight-circle-sub000/internal/importer"
	"github.com/hamzaalie/spotlight-circle-sub000/internal/partnership"
)

type partnershipResponse struct {
	ID           uuid.UUID          `json:"id"`
	InitiatorID  uuid.UUID          `json:"initiator_id"`
	ReceiverID   *uuid.UUID         `json:"receiver_id,omitempty"`
	InvitedEmail string             `json:"invited_email,omitempty"`
	Category     string             `json:"category"`
	Notes        string             `json:"notes,omitempty"`
	Status       partnership.Status `json:"status"`
	CreatedAt    time.Time          `json:"created_at"`
	AcceptedAt   *time.Time         `json:"accepted_at,omitempty"`
}

func toResponse(p *partnership.Partnership) partnershipResponse {
	return partnershipResponse{
		ID:           p.ID,
		InitiatorID:  p.InitiatorID,
		ReceiverID:   p.ReceiverID,
		InvitedEmail: p.InvitedEmail,
		Category:     p.Category,
		Notes:        p.Notes,
		Status:       p.Status,
		CreatedAt:    p.CreatedAt,
		AcceptedAt:   p.AcceptedAt,
	}
}

func toResponseList(rows []*partnership.Partnership) []partnershipResponse {
	resp := make([]partnershipResponse, len(rows))
	for i, p := range rows {
		resp[i] = toResponse(p)
	}

	return resp
}

type inviteResponse struct {
	Partnership partnershipResponse `json:"partnership"`
	KnownParty  bool                `json:"known_party"`
}

func toInviteResponse(result *partnership.InviteResult) inviteResponse {
	return inviteResponse{
		Partnership: toResponse(result.Partnership),
		KnownParty:  result.KnownParty,
	}
}

type partnerResponse struct {
	PartnershipID uuid.UUID `json:"partnership_id"`
	PartyID       uuid.UUID `json:"party_id"`
	Name          string    `json:"name"`
	Email         string    `json:"email"`
	Profession    string    `json:"profession,omitempty"`
	CompanyName   string    `json:"company_name,omitempty"`
	Category      string    `json:"category"`
	Since         time.Time `json:"since"`
}

func toPartnerList(partners []*partnership.Partner) []partnerResponse {
	resp := make([]partnerResponse, len(partners))

	for i, p := range partners {
		resp[i] = partnerResponse{
			PartnershipID: p.PartnershipID,
			PartyID:       p.Party.ID,
			Name:          p.Party.DisplayName(),
			Email:         p.Party.Email,
			Category:      p.Category,
			Since:         p.Since,
		}

		if profile := p.Party.Profile; profile != nil {
			resp[i].Profession = profile.Profession
			resp[i].CompanyName = profile.CompanyName
		}
	}

	return resp
}

type importRowResponse struct {
	Email   string `json:"email"`
	Name    string `json:"name,omitempty"`
	Invited bool   `json:"invited"`
	Skipped string `json:"skipped,omitempty"`
}

type importResponse struct {
	Invited int                 `json:"invited"`
	Skipped int                 `json:"skipped"`
	Rows    []importRowResponse `json:"rows"`
}

func toImportResponse(report *importer.Report) importResponse {
	resp := importResponse{
		Invited: report.Invited,
		Skipped: report.Skipped,
		Rows:    make([]importRowResponse, len(report.Rows)),
	}

	for i, row := range report.Rows {
		resp.Rows[i] = importRowResponse{
			Email:   row.Contact.Email,
			Name:    row.Contact.Name,
			Invited: row.Invited,
			Skipped: row.Skipped,
		}
	}

	return resp
}
