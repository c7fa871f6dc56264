package notify

import (
	"fmt"
	"html"
	"time"

	"github.com/google/uuid"
)

// Mailer builds the emails the engine sends. Link targets point at the web
// app, so only the base URL is configurable.
type Mailer struct {
	appName string
	baseURL string
}

func NewMailer(appName, baseURL string) *Mailer {
	return &Mailer{appName: appName, baseURL: baseURL}
}

// PartnerInvite is sent when the invited email belongs to a registered party.
// The link carries the partnership id so the invitee lands on the accept page.
func (m *Mailer) PartnerInvite(to, inviterName, category string, partnershipID uuid.UUID) Message {
	link := fmt.Sprintf("%s/partnerships/%s", m.baseURL, partnershipID)

	return Message{
		To:      to,
		Subject: fmt.Sprintf("%s wants to exchange referrals with you", inviterName),
		HTML: fmt.Sprintf(
			"<p>%s invited you to become their referral partner for <strong>%s</strong> on %s.</p>"+
				"<p><a href=%q>Review the invitation</a></p>",
			html.EscapeString(inviterName), html.EscapeString(category), m.appName, link,
		),
	}
}

// SignupInvite is sent when the invited email is not registered yet. The
// signup link carries the inviter's id so the pending partnership can be
// picked up after registration.
func (m *Mailer) SignupInvite(to, inviterName, category string, inviterID uuid.UUID) Message {
	link := fmt.Sprintf("%s/signup?invited_by=%s", m.baseURL, inviterID)

	return Message{
		To:      to,
		Subject: fmt.Sprintf("%s invited you to %s", inviterName, m.appName),
		HTML: fmt.Sprintf(
			"<p>%s wants to exchange <strong>%s</strong> referrals with you on %s.</p>"+
				"<p><a href=%q>Create your account</a> to accept.</p>",
			html.EscapeString(inviterName), html.EscapeString(category), m.appName, link,
		),
	}
}

// InviteResponse tells the initiator how the other side decided.
func (m *Mailer) InviteResponse(to, partnerName string, accepted bool) Message {
	if accepted {
		return Message{
			To:      to,
			Subject: fmt.Sprintf("%s accepted your partnership invitation", partnerName),
			HTML: fmt.Sprintf("<p>%s accepted your invitation. You can now send each other referrals.</p>",
				html.EscapeString(partnerName)),
		}
	}

	return Message{
		To:      to,
		Subject: fmt.Sprintf("%s declined your partnership invitation", partnerName),
		HTML: fmt.Sprintf("<p>%s declined your invitation. You can invite them again later.</p>",
			html.EscapeString(partnerName)),
	}
}

// ReferralReceived notifies a partner about a new client introduction.
func (m *Mailer) ReferralReceived(to, senderName, clientName string, referralID uuid.UUID) Message {
	link := fmt.Sprintf("%s/referrals/%s", m.baseURL, referralID)

	return Message{
		To:      to,
		Subject: fmt.Sprintf("New referral from %s", senderName),
		HTML: fmt.Sprintf(
			"<p>%s sent you a new client introduction: <strong>%s</strong>.</p>"+
				"<p><a href=%q>View the referral</a></p>",
			html.EscapeString(senderName), html.EscapeString(clientName), link,
		),
	}
}

// RequestReceived notifies a profile owner that a visitor asked to be
// introduced to one of their partners.
func (m *Mailer) RequestReceived(to, requesterName string, requestID uuid.UUID) Message {
	link := fmt.Sprintf("%s/requests/%s", m.baseURL, requestID)

	return Message{
		To:      to,
		Subject: fmt.Sprintf("%s asked you for an introduction", requesterName),
		HTML: fmt.Sprintf(
			"<p>%s asked you to forward their details to one of your partners.</p>"+
				"<p><a href=%q>Review the request</a></p>",
			html.EscapeString(requesterName), link,
		),
	}
}

// StaleReminder nudges a referral's sender or receiver about an introduction
// that has sat without progress.
func (m *Mailer) StaleReminder(to, clientName string, age time.Duration, referralID uuid.UUID) Message {
	link := fmt.Sprintf("%s/referrals/%s", m.baseURL, referralID)
	days := int(age.Hours() / 24)

	return Message{
		To:      to,
		Subject: fmt.Sprintf("Referral for %s needs a follow-up", clientName),
		HTML: fmt.Sprintf(
			"<p>The referral for <strong>%s</strong> has had no progress for %d days.</p>"+
				"<p><a href=%q>Update its status</a></p>",
			html.EscapeString(clientName), days, link,
		),
	}
}
