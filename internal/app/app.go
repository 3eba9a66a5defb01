package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/heartmarshall/inbox-triage/internal/adapter/holidays"
	"github.com/heartmarshall/inbox-triage/internal/adapter/mailchannels"
	"github.com/heartmarshall/inbox-triage/internal/adapter/notion"
	"github.com/heartmarshall/inbox-triage/internal/auth"
	"github.com/heartmarshall/inbox-triage/internal/config"
	"github.com/heartmarshall/inbox-triage/internal/service/digest"
	"github.com/heartmarshall/inbox-triage/internal/service/inbox"
	"github.com/heartmarshall/inbox-triage/internal/service/triage"
	"github.com/heartmarshall/inbox-triage/internal/transport/rest"
)

// Run is the application entry point. It loads configuration, wires the
// Notion-backed stores into the services, and serves HTTP until the
// context is canceled, then drains in-flight requests within the
// configured shutdown timeout.
func Run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := NewLogger(cfg.Log)

	logger.Info("starting application",
		slog.String("version", BuildVersion()),
		slog.String("log_level", cfg.Log.Level),
	)

	notionClient := notion.NewClient(cfg.Notion, logger)
	inboxStore := notion.NewInboxStore(notionClient, cfg.Notion.InboxDBID)
	taskStore := notion.NewTaskStore(notionClient, cfg.Notion.TasksDBID)
	holidayProvider := holidays.NewProvider(cfg.Digest.HolidayCalendarURL, cfg.Digest.HolidayCacheTTL, logger)

	signer := auth.NewActionSigner(cfg.Action.SigningSecret, cfg.Action.ConfirmTTL)

	triageSvc := triage.NewService(logger, inboxStore, taskStore, signer, cfg.Server.BaseURL, cfg.Action.SharedKey)
	inboxSvc := inbox.NewService(logger, inboxStore, cfg.Server.BaseURL, cfg.Action.SharedKey)
	digestSvc := digest.NewService(logger, taskStore, holidayProvider, cfg.Server.BaseURL, cfg.Action.SharedKey, cfg.Digest.PageSize)

	var mailer rest.DigestMailer
	if cfg.Mail.SendingConfigured() {
		mailer = mailchannels.NewProvider(cfg.Mail, logger)
	}

	router := rest.NewRouter(
		rest.NewActionHandler(triageSvc, logger),
		rest.NewInboxHandler(inboxSvc, logger),
		rest.NewDigestHandler(digestSvc, mailer, cfg.Mail.To, logger),
		rest.NewHealthHandler(BuildVersion()),
		cfg.Action.SharedKey,
		logger,
	)

	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server listening", slog.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}

	logger.Info("shutting down", slog.Duration("timeout", cfg.Server.ShutdownTimeout))

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
