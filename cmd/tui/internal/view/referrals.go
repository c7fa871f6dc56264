package view

import (
	"fmt"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/hamzaalie/spotlight-circle-sub000/internal/referral"
)

// ReferralsModel browses referral rows across all accounts with a cycling
// status filter.
type ReferralsModel struct {
	CommonModel
	referralService *referral.Service

	table table.Model
	refs  []*referral.Referral

	statusFilterIdx int
	filter          referral.ListFilter

	loading bool
	err     error
}

var statusFilters = []referral.Status{
	"",
	referral.StatusNew,
	referral.StatusContacted,
	referral.StatusInProgress,
	referral.StatusCompleted,
	referral.StatusLost,
}

func NewReferralsModel(referralSvc *referral.Service) ReferralsModel {
	columns := []table.Column{
		{Title: "Created", Width: 12},
		{Title: "Status", Width: 12},
		{Title: "Client", Width: 25},
		{Title: "Sender", Width: 36},
		{Title: "Receiver", Width: 36},
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

	return ReferralsModel{
		referralService: referralSvc,
		table:           t,
	}
}

func (m ReferralsModel) Title() string { return "Referrals" }
func (m ReferralsModel) ShortHelp() string {
	return "Esc: back | s: status filter | r: refresh"
}

func (m ReferralsModel) Init() tea.Cmd {
	return m.loadRefsCmd()
}

func (m ReferralsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadRefsMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}

		m.refs = msg.refs
		m.refreshTable()

		return m, nil

	case tea.WindowSizeMsg:
		m.table.SetHeight(msg.Height - 10)
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return m, Back
		case "r":
			m.loading = true
			return m, m.loadRefsCmd()
		case "s":
			m.statusFilterIdx = (m.statusFilterIdx + 1) % len(statusFilters)
			m.applyFilter()
			m.loading = true

			return m, m.loadRefsCmd()
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m ReferralsModel) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Loading referrals...")
	}

	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(fmt.Sprintf("Error: %v", m.err))
	}

	label := "All"
	if s := statusFilters[m.statusFilterIdx]; s != "" {
		label = string(s)
	}

	header := fmt.Sprintf("Filter: [s] Status: %s | %d rows", activeStyle(label), len(m.refs))

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

func (m *ReferralsModel) applyFilter() {
	if s := statusFilters[m.statusFilterIdx]; s != "" {
		m.filter.Statuses = []referral.Status{s}
	} else {
		m.filter.Statuses = nil
	}
}

func (m *ReferralsModel) refreshTable() {
	rows := make([]table.Row, 0, len(m.refs))
	for _, r := range m.refs {
		rows = append(rows, table.Row{
			FormatDate(r.CreatedAt),
			string(r.Status),
			r.ClientName,
			r.SenderID.String(),
			r.ReceiverID.String(),
		})
	}
	m.table.SetRows(rows)
}

// Messages

type loadRefsMsg struct {
	refs []*referral.Referral
	err  error
}

func (m ReferralsModel) loadRefsCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		refs, err := m.referralService.List(ctx, m.filter)
		return loadRefsMsg{refs: refs, err: err}
	}
}
