package view

import (
	"fmt"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/hamzaalie/spotlight-circle-sub000/internal/partnership"
	"github.com/hamzaalie/spotlight-circle-sub000/internal/party"
)

type partnersState int

const (
	partnersStateLookup partnersState = iota
	partnersStateBrowse
)

// PartnersModel looks up an account by email and lists its accepted partners.
type PartnersModel struct {
	CommonModel
	partnershipService *partnership.Service
	partyService       *party.Service

	state      partnersState
	emailInput textinput.Model
	table      table.Model

	account  *party.Party
	partners []*partnership.Partner

	loading bool
	err     error
}

func NewPartnersModel(partnershipSvc *partnership.Service, partySvc *party.Service) PartnersModel {
	ti := textinput.New()
	ti.Placeholder = "account email"
	ti.Width = 40
	ti.Focus()

	columns := []table.Column{
		{Title: "Since", Width: 12},
		{Title: "Name", Width: 25},
		{Title: "Email", Width: 30},
		{Title: "Profession", Width: 18},
		{Title: "Category", Width: 15},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(15),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(false)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return PartnersModel{
		emailInput: ti,
		table:      t,

		partnershipService: partnershipSvc,
		partyService:       partySvc,
	}
}

func (m PartnersModel) Title() string { return "Partners" }
func (m PartnersModel) ShortHelp() string {
	if m.state == partnersStateLookup {
		return "Enter: look up | Esc: back"
	}
	return "Esc: new lookup | r: refresh"
}

func (m PartnersModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m PartnersModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadPartnersMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			m.state = partnersStateLookup
			return m, nil
		}

		m.err = nil
		m.account = msg.account
		m.partners = msg.partners
		m.state = partnersStateBrowse
		m.refreshTable()

		return m, nil

	case tea.WindowSizeMsg:
		m.table.SetHeight(msg.Height - 10)
		return m, nil
	}

	switch m.state {
	case partnersStateLookup:
		return m.updateLookup(msg)
	case partnersStateBrowse:
		return m.updateBrowse(msg)
	}

	return m, nil
}

func (m PartnersModel) updateLookup(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.Type {
		case tea.KeyEsc:
			return m, Back
		case tea.KeyEnter:
			if m.emailInput.Value() == "" {
				return m, nil
			}

			m.loading = true

			return m, m.loadPartnersCmd(m.emailInput.Value())
		}
	}

	var cmd tea.Cmd
	m.emailInput, cmd = m.emailInput.Update(msg)
	return m, cmd
}

func (m PartnersModel) updateBrowse(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc":
			m.state = partnersStateLookup
			m.emailInput.Focus()
			return m, textinput.Blink
		case "r":
			m.loading = true
			return m, m.loadPartnersCmd(m.account.Email)
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m PartnersModel) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Loading partners...")
	}

	if m.state == partnersStateLookup {
		content := "Look up partners by account email\n\n" + m.emailInput.View()
		if m.err != nil {
			content += "\n\n" + lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Render(fmt.Sprintf("Error: %v", m.err))
		}

		return lipgloss.NewStyle().Padding(2).Render(content)
	}

	header := fmt.Sprintf("Partners of %s (%d)", activeStyle(m.account.DisplayName()), len(m.partners))

	tableView := lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		Render(m.table.View())

	return lipgloss.NewStyle().Padding(1).Render(
		lipgloss.JoinVertical(lipgloss.Left,
			lipgloss.NewStyle().PaddingBottom(1).Render(header),
			tableView,
		),
	)
}

func (m *PartnersModel) refreshTable() {
	rows := make([]table.Row, 0, len(m.partners))
	for _, p := range m.partners {
		profession := ""
		if p.Party.Profile != nil {
			profession = p.Party.Profile.Profession
		}

		rows = append(rows, table.Row{
			FormatDate(p.Since),
			p.Party.DisplayName(),
			p.Party.Email,
			profession,
			p.Category,
		})
	}
	m.table.SetRows(rows)
}

// Messages

type loadPartnersMsg struct {
	account  *party.Party
	partners []*partnership.Partner
	err      error
}

func (m PartnersModel) loadPartnersCmd(email string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		account, err := m.partyService.FindByEmail(ctx, email)
		if err != nil {
			return loadPartnersMsg{err: err}
		}

		partners, err := m.partnershipService.Partners(ctx, account.ID)
		return loadPartnersMsg{account: account, partners: partners, err: err}
	}
}
