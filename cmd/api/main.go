package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/joho/godotenv"

	"github.com/hamzaalie/spotlight-circle-sub000/internal/config"
	"github.com/hamzaalie/spotlight-circle-sub000/internal/database"
	appHttp "github.com/hamzaalie/spotlight-circle-sub000/internal/http"
	partnershipHandler "github.com/hamzaalie/spotlight-circle-sub000/internal/http/partnership"
	referralHandler "github.com/hamzaalie/spotlight-circle-sub000/internal/http/referral"
	requestHandler "github.com/hamzaalie/spotlight-circle-sub000/internal/http/request"
	"github.com/hamzaalie/spotlight-circle-sub000/internal/importer"
	"github.com/hamzaalie/spotlight-circle-sub000/internal/notify"
	"github.com/hamzaalie/spotlight-circle-sub000/internal/partnership"
	partnershipStore "github.com/hamzaalie/spotlight-circle-sub000/internal/partnership/store"
	"github.com/hamzaalie/spotlight-circle-sub000/internal/party"
	partyStore "github.com/hamzaalie/spotlight-circle-sub000/internal/party/store"
	"github.com/hamzaalie/spotlight-circle-sub000/internal/referral"
	referralStore "github.com/hamzaalie/spotlight-circle-sub000/internal/referral/store"
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

	db, err := database.New(cfg.ConnectionString(), cfg.DB.MaxConns)
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

	var (
		partyService       = party.NewService(partyStore.New(db))
		partnershipService = partnership.NewService(partnershipStore.New(db), partyService, dispatcher, mailer)
		referralService    = referral.NewService(referralStore.New(db), partyService, dispatcher, mailer)
		requestService     = request.NewService(requestStore.New(db), referralService, partyService, dispatcher, mailer)
		importService      = importer.NewService(partnershipService)
	)

	var (
		partnershipsH = partnershipHandler.NewHandler(partnershipService, importService)
		referralsH    = referralHandler.NewHandler(referralService)
		requestsH     = requestHandler.NewHandler(requestService)
	)

	auth := appHttp.NewAuthenticator(cfg.Auth.JWTSecret)
	router := appHttp.New(auth, cfg.Server.AllowedOrigins, partnershipsH, referralsH, requestsH)

	addr := fmt.Sprintf(":%d", cfg.App.Port)
	slog.Info("starting server", "addr", addr)

	server := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  cfg.Server.Timeout,
		WriteTimeout: cfg.Server.Timeout,
	}

	if err := server.ListenAndServe(); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}
