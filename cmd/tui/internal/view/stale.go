package view

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/hamzaalie/spotlight-circle-sub000/internal/referral"
	"github.com/hamzaalie/spotlight-circle-sub000/internal/reminder"
	"github.com/hamzaalie/spotlight-circle-sub000/internal/request"
)

type staleState int

const (
	staleStateBrowse staleState = iota
	staleStateConfirm
)

// StaleModel reviews referrals past the freshness threshold and runs the
// reminder sweep on demand. Each run emails both sides again, so the confirm
// step is deliberate.
type StaleModel struct {
	CommonModel
	reminderService *reminder.Service
	requestService  *request.Service

	staleAfter    time.Duration
	requestExpiry time.Duration

	state staleState
	table table.Model
	stale []*referral.Referral
	form  *huh.Form

	confirmed bool
	loading   bool
	err       error
	status    string
}

func NewStaleModel(reminderSvc *reminder.Service, requestSvc *request.Service, staleAfter, requestExpiry time.Duration) StaleModel {
	columns := []table.Column{
		{Title: "Created", Width: 12},
		{Title: "Age", Width: 10},
		{Title: "Status", Width: 12},
		{Title: "Client", Width: 25},
		{Title: "Referral ID", Width: 36},
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

	return StaleModel{
		reminderService: reminderSvc,
		requestService:  requestSvc,
		staleAfter:      staleAfter,
		requestExpiry:   requestExpiry,
		table:           t,
	}
}

func (m StaleModel) Title() string { return "Stale Referrals" }
func (m StaleModel) ShortHelp() string {
	if m.state == staleStateConfirm {
		return "Confirm or cancel"
	}
	return "Esc: back | n: send reminders | x: expire old requests | r: refresh"
}

func (m StaleModel) Init() tea.Cmd {
	return m.scanCmd()
}

func (m StaleModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case staleScanMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}

		m.stale = msg.stale
		m.refreshTable()

		return m, nil

	case staleSweepMsg:
		m.loading = false
		if msg.err != nil {
			m.status = fmt.Sprintf("Sweep failed: %v", msg.err)
			return m, nil
		}

		m.status = fmt.Sprintf("Reminders sent: %d, failed: %d", msg.out.Sent, msg.out.Failed)

		return m, m.scanCmd()

	case expireMsg:
		m.loading = false
		if msg.err != nil {
			m.status = fmt.Sprintf("Expiry failed: %v", msg.err)
			return m, nil
		}

		m.status = fmt.Sprintf("Expired %d pending requests", msg.expired)

		return m, nil

	case tea.WindowSizeMsg:
		m.table.SetHeight(msg.Height - 10)
		return m, nil
	}

	switch m.state {
	case staleStateBrowse:
		return m.updateBrowse(msg)
	case staleStateConfirm:
		return m.updateConfirm(msg)
	}

	return m, nil
}

func (m StaleModel) updateBrowse(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc":
			return m, Back
		case "r":
			m.loading = true
			return m, m.scanCmd()
		case "x":
			m.loading = true
			return m, m.expireCmd()
		case "n":
			if len(m.stale) == 0 {
				m.status = "Nothing to remind"
				return m, nil
			}

			m.confirmed = false
			m.form = huh.NewForm(
				huh.NewGroup(
					huh.NewConfirm().
						Title(fmt.Sprintf("Email both sides of %d stale referrals?", len(m.stale))).
						Description("Running this again later will email everyone again.").
						Value(&m.confirmed),
				),
			).WithShowHelp(false)
			m.state = staleStateConfirm
			m.table.Blur()

			return m, m.form.Init()
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m StaleModel) updateConfirm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if keyMsg.Type == tea.KeyEsc {
			m.state = staleStateBrowse
			m.form = nil
			m.table.Focus()
			return m, nil
		}
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	m.state = staleStateBrowse
	m.form = nil
	m.table.Focus()

	if !m.confirmed {
		m.status = "Sweep cancelled"
		return m, nil
	}

	m.loading = true

	return m, m.sweepCmd()
}

func (m StaleModel) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Working...")
	}

	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(fmt.Sprintf("Error: %v", m.err))
	}

	header := fmt.Sprintf("Referrals older than %s still in %s",
		activeStyle(m.staleAfter.String()), activeStyle("new/contacted"))

	tableView := lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		Render(m.table.View())

	content := lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.NewStyle().PaddingBottom(1).Render(header),
		tableView,
	)

	if m.state == staleStateConfirm && m.form != nil {
		panel := lipgloss.NewStyle().
			Padding(1, 2).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Width(48).
			Render(m.form.View())

		content = lipgloss.JoinHorizontal(lipgloss.Top, content, panel)
	}

	if m.status != "" {
		content = lipgloss.NewStyle().Faint(true).Render(m.status) + "\n" + content
	}

	return lipgloss.NewStyle().Padding(1).Render(content)
}

func (m *StaleModel) refreshTable() {
	rows := make([]table.Row, 0, len(m.stale))
	for _, r := range m.stale {
		age := time.Since(r.CreatedAt)

		rows = append(rows, table.Row{
			FormatDate(r.CreatedAt),
			fmt.Sprintf("%dd", int(age.Hours()/24)),
			string(r.Status),
			r.ClientName,
			r.ID.String(),
		})
	}
	m.table.SetRows(rows)
}

// Messages

type staleScanMsg struct {
	stale []*referral.Referral
	err   error
}

func (m StaleModel) scanCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		stale, err := m.reminderService.Scan(ctx, m.staleAfter)
		return staleScanMsg{stale: stale, err: err}
	}
}

type staleSweepMsg struct {
	out reminder.Outcome
	err error
}

func (m StaleModel) sweepCmd() tea.Cmd {
	stale := m.stale

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		return staleSweepMsg{out: m.reminderService.Notify(ctx, stale)}
	}
}

type expireMsg struct {
	expired int64
	err     error
}

func (m StaleModel) expireCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		expired, err := m.requestService.ExpireStale(ctx, m.requestExpiry)
		return expireMsg{expired: expired, err: err}
	}
}
