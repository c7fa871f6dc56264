package main

import (
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/joho/godotenv"

	"github.com/hamzaalie/spotlight-circle-sub000/cmd/tui/internal/view"
	"github.com/hamzaalie/spotlight-circle-sub000/internal/config"
	"github.com/hamzaalie/spotlight-circle-sub000/internal/database"
	"github.com/hamzaalie/spotlight-circle-sub000/internal/notify"
	"github.com/hamzaalie/spotlight-circle-sub000/internal/partnership"
	partnershipStore "github.com/hamzaalie/spotlight-circle-sub000/internal/partnership/store"
	"github.com/hamzaalie/spotlight-circle-sub000/internal/party"
	partyStore "github.com/hamzaalie/spotlight-circle-sub000/internal/party/store"
	"github.com/hamzaalie/spotlight-circle-sub000/internal/referral"
	referralStore "github.com/hamzaalie/spotlight-circle-sub000/internal/referral/store"
	"github.com/hamzaalie/spotlight-circle-sub000/internal/reminder"
	"github.com/hamzaalie/spotlight-circle-sub000/internal/request"
	requestStore "github.com/hamzaalie/spotlight-circle-sub000/internal/request/store"
)

type model struct {
	currentView View

	partnersView  view.PartnersModel
	referralsView view.ReferralsModel
	staleView     view.StaleModel
	inviteView    view.InviteModel
}

type View int

const (
	ViewMenu      View = 0
	ViewPartners  View = 1
	ViewReferrals View = 2
	ViewStale     View = 3
	ViewInvite    View = 4
)

func initialModel() model {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	db, err := database.New(cfg.ConnectionString(), 4)
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}

	dispatcher := notify.NewSMTPDispatcher(notify.SMTPConfig{
		Host:     cfg.SMTP.Host,
		Port:     cfg.SMTP.Port,
		User:     cfg.SMTP.User,
		Password: cfg.SMTP.Password,
		Sender:   cfg.SMTP.Sender,
	})
	mailer := notify.NewMailer(cfg.App.Name, cfg.App.BaseURL)

	partySvc := party.NewService(partyStore.New(db))
	partnershipSvc := partnership.NewService(partnershipStore.New(db), partySvc, dispatcher, mailer)
	referralSvc := referral.NewService(referralStore.New(db), partySvc, dispatcher, mailer)
	requestSvc := request.NewService(requestStore.New(db), referralSvc, partySvc, dispatcher, mailer)
	reminderSvc := reminder.NewService(referralSvc, partySvc, dispatcher, mailer)

	return model{
		currentView:   ViewMenu,
		partnersView:  view.NewPartnersModel(partnershipSvc, partySvc),
		referralsView: view.NewReferralsModel(referralSvc),
		staleView:     view.NewStaleModel(reminderSvc, requestSvc, cfg.Reminder.StaleAfter, cfg.Reminder.RequestExpiry),
		inviteView:    view.NewInviteModel(partnershipSvc, partySvc),
	}
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.currentView == ViewMenu {
			switch msg.String() {
			case "ctrl+c", "q":
				return m, tea.Quit
			case "1":
				m.currentView = ViewPartners
				return m, m.partnersView.Init()
			case "2":
				m.currentView = ViewReferrals
				return m, m.referralsView.Init()
			case "3":
				m.currentView = ViewStale
				return m, m.staleView.Init()
			case "4":
				m.currentView = ViewInvite
				return m, m.inviteView.Init()
			}
		}
	case view.BackMsg:
		m.currentView = ViewMenu
		return m, nil
	}

	switch m.currentView {
	case ViewPartners:
		var newModel tea.Model
		newModel, cmd = m.partnersView.Update(msg)
		m.partnersView = newModel.(view.PartnersModel)
	case ViewReferrals:
		var newModel tea.Model
		newModel, cmd = m.referralsView.Update(msg)
		m.referralsView = newModel.(view.ReferralsModel)
	case ViewStale:
		var newModel tea.Model
		newModel, cmd = m.staleView.Update(msg)
		m.staleView = newModel.(view.StaleModel)
	case ViewInvite:
		var newModel tea.Model
		newModel, cmd = m.inviteView.Update(msg)
		m.inviteView = newModel.(view.InviteModel)
	}

	return m, cmd
}

func (m model) View() string {
	switch m.currentView {
	case ViewMenu:
		return lipgloss.NewStyle().Padding(2).Render(
			"Spotlight Circle Console\n\n" +
				"1. Partners Lookup\n" +
				"2. Browse Referrals\n" +
				"3. Stale Referral Review\n" +
				"4. Send Invite\n\n" +
				"q. Quit",
		)
	case ViewPartners:
		return m.partnersView.View()
	case ViewReferrals:
		return m.referralsView.View()
	case ViewStale:
		return m.staleView.View()
	case ViewInvite:
		return m.inviteView.View()
	}

	return "Unknown View"
}

func main() {
	p := tea.NewProgram(initialModel())
	if _, err := p.Run(); err != nil {
		slog.Error("failed to run TUI", "error", err)
		os.Exit(1)
	}
}
