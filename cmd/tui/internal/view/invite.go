package view

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/hamzaalie/spotlight-circle-sub000/internal/identity"
	"github.com/hamzaalie/spotlight-circle-sub000/internal/partnership"
	"github.com/hamzaalie/spotlight-circle-sub000/internal/party"
)

// InviteModel sends a partnership invite on behalf of a registered account.
// Used for support cases where someone asks the operator to connect them.
type InviteModel struct {
	CommonModel
	partnershipService *partnership.Service
	partyService       *party.Service

	form   *huh.Form
	status string

	formActorEmail  string
	formTargetEmail string
	formCategory    string
	formNotes       string
}

func NewInviteModel(partnershipSvc *partnership.Service, partySvc *party.Service) InviteModel {
	m := InviteModel{
		partnershipService: partnershipSvc,
		partyService:       partySvc,
	}
	m.form = m.newForm()

	return m
}

func (m InviteModel) newForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("actor").
				Title("On behalf of (account email)").
				Value(&m.formActorEmail).
				Validate(requireValue("account email")),

			huh.NewInput().
				Key("target").
				Title("Invite (partner email)").
				Value(&m.formTargetEmail).
				Validate(requireValue("partner email")),

			huh.NewInput().
				Key("category").
				Title("Category").
				Placeholder("Accountant, Lawyer, ...").
				Value(&m.formCategory),

			huh.NewInput().
				Key("notes").
				Title("Notes").
				Value(&m.formNotes),
		),
	).WithWidth(60).WithShowHelp(false)
}

func requireValue(name string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s cannot be empty", name)
		}
		return nil
	}
}

func (m InviteModel) Title() string { return "Send Invite" }
func (m InviteModel) ShortHelp() string {
	return "Navigate form | Esc: back"
}

func (m InviteModel) Init() tea.Cmd {
	return m.form.Init()
}

func (m InviteModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case inviteSentMsg:
		if msg.err != nil {
			m.status = fmt.Sprintf("Invite failed: %v", msg.err)
		} else if msg.known {
			m.status = "Invite sent to a registered account"
		} else {
			m.status = "Invite sent with a signup link"
		}

		m.formTargetEmail = ""
		m.formCategory = ""
		m.formNotes = ""
		m.form = m.newForm()

		return m, m.form.Init()

	case tea.KeyMsg:
		if msg.Type == tea.KeyEsc {
			return m, Back
		}
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	return m, m.sendCmd()
}

func (m InviteModel) View() string {
	content := m.form.View()
	if m.status != "" {
		content = lipgloss.NewStyle().Faint(true).Render(m.status) + "\n\n" + content
	}

	return lipgloss.NewStyle().Padding(1, 2).Render(content)
}

// Messages

type inviteSentMsg struct {
	known bool
	err   error
}

func (m InviteModel) sendCmd() tea.Cmd {
	actorEmail := m.form.GetString("actor")
	targetEmail := m.form.GetString("target")
	category := m.form.GetString("category")
	notes := m.form.GetString("notes")

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		account, err := m.partyService.FindByEmail(ctx, actorEmail)
		if err != nil {
			return inviteSentMsg{err: err}
		}

		actor := identity.Actor{ID: account.ID, Email: account.Email}

		result, err := m.partnershipService.Invite(ctx, actor, partnership.InviteParams{
			TargetEmail: targetEmail,
			Category:    category,
			Notes:       notes,
		})
		if err != nil {
			return inviteSentMsg{err: err}
		}

		return inviteSentMsg{known: result.KnownParty}
	}
}
