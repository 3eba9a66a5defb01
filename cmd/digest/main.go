// Command digest computes and renders today's tasks digest once and
// either sends it through the mail provider or prints the rendered
// subject and body as JSON for an external relay. It is intended to be
// invoked by an external cron job, not as an in-process goroutine.
//
// Exit codes: 0 = success, 1 = error.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/heartmarshall/inbox-triage/internal/adapter/holidays"
	"github.com/heartmarshall/inbox-triage/internal/adapter/mailchannels"
	"github.com/heartmarshall/inbox-triage/internal/adapter/notion"
	"github.com/heartmarshall/inbox-triage/internal/app"
	"github.com/heartmarshall/inbox-triage/internal/config"
	"github.com/heartmarshall/inbox-triage/internal/service/digest"
)

func main() {
	send := flag.Bool("send", false, "deliver the digest by mail instead of printing it")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger := app.NewLogger(cfg.Log)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	client := notion.NewClient(cfg.Notion, logger)
	taskStore := notion.NewTaskStore(client, cfg.Notion.TasksDBID)
	holidayProvider := holidays.NewProvider(cfg.Digest.HolidayCalendarURL, cfg.Digest.HolidayCacheTTL, logger)

	svc := digest.NewService(logger, taskStore, holidayProvider, cfg.Server.BaseURL, cfg.Action.SharedKey, cfg.Digest.PageSize)

	d, err := svc.Build(ctx)
	if err != nil {
		logger.Error("build digest", slog.String("error", err.Error()))
		os.Exit(1)
	}

	mail, err := svc.Render(d)
	if err != nil {
		logger.Error("render digest", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if !*send {
		out := map[string]string{"subject": mail.Subject, "body": mail.HTML, "text": mail.Text}
		if err := json.NewEncoder(os.Stdout).Encode(out); err != nil {
			logger.Error("encode digest", slog.String("error", err.Error()))
			os.Exit(1)
		}
		return
	}

	if !cfg.Mail.SendingConfigured() {
		logger.Error("mail sending is not configured")
		os.Exit(1)
	}

	provider := mailchannels.NewProvider(cfg.Mail, logger)
	err = provider.Send(ctx, mailchannels.Message{
		To:      cfg.Mail.To,
		Subject: mail.Subject,
		HTML:    mail.HTML,
		Text:    mail.Text,
	})
	if err != nil {
		logger.Error("send digest", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger.Info("digest sent",
		slog.String("to", cfg.Mail.To),
		slog.Int("do_count", len(d.DoItems)),
		slog.Int("someday_count", len(d.SomedayItems)),
	)
}
