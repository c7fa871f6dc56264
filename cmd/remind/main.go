// Command remind runs the operator sweep: stale referral reminders plus
// expiry of old pending introduction requests. By default it sweeps once and
// exits; with REMINDER_CRON set it stays up and sweeps on that schedule.
package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"

	"github.com/hamzaalie/spotlight-circle-sub000/internal/config"
	"github.com/hamzaalie/spotlight-circle-sub000/internal/database"
	"github.com/hamzaalie/spotlight-circle-sub000/internal/notify"
	"github.com/hamzaalie/spotlight-circle-sub000/internal/party"
	partyStore "github.com/hamzaalie/spotlight-circle-sub000/internal/party/store"
	"github.com/hamzaalie/spotlight-circle-sub000/internal/referral"
	referralStore "github.com/hamzaalie/spotlight-circle-sub000/internal/referral/store"
	"github.com/hamzaalie/spotlight-circle-sub000/internal/reminder"
	"github.com/hamzaalie/spotlight-circle-sub000/internal/request"
	requestStore "github.com/hamzaalie/spotlight-circle-sub000/internal/request/store"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	// The sweep runs sequentially; a couple of connections is plenty.
	db, err := database.New(cfg.ConnectionString(), 2)
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	dispatcher := notify.NewSMTPDispatcher(notify.SMTPConfig{
		Host:     cfg.SMTP.Host,
		Port:     cfg.SMTP.Port,
		User:     cfg.SMTP.User,
		Password: cfg.SMTP.Password,
		Sender:   cfg.SMTP.Sender,
	})
	mailer := notify.NewMailer(cfg.App.Name, cfg.App.BaseURL)

	partyService := party.NewService(partyStore.New(db))
	referralService := referral.NewService(referralStore.New(db), partyService, dispatcher, mailer)
	requestService := request.NewService(requestStore.New(db), referralService, partyService, dispatcher, mailer)
	reminderService := reminder.NewService(referralService, partyService, dispatcher, mailer)

	sweep := func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
		defer cancel()

		out, err := reminderService.Run(ctx, cfg.Reminder.StaleAfter)
		if err != nil {
			slog.Error("stale referral sweep failed", "error", err)
		} else {
			slog.Info("stale referral sweep done",
				"scanned", out.Scanned, "sent", out.Sent, "failed", out.Failed)
		}

		expired, err := requestService.ExpireStale(ctx, cfg.Reminder.RequestExpiry)
		if err != nil {
			slog.Error("request expiry sweep failed", "error", err)
		} else {
			slog.Info("request expiry sweep done", "expired", expired)
		}
	}

	if cfg.Reminder.Cron == "" {
		sweep()
		return
	}

	runner := cron.New()

	if _, err := runner.AddFunc(cfg.Reminder.Cron, sweep); err != nil {
		slog.Error("invalid cron expression", "expr", cfg.Reminder.Cron, "error", err)
		os.Exit(1)
	}

	slog.Info("starting reminder schedule", "expr", cfg.Reminder.Cron)
	runner.Run()
}
