package config

import (
	"strings"
	"testing"
	"time"
)

func validConfig() Config {
	return Config{
		Server: ServerConfig{
			Host:    "0.0.0.0",
			Port:    8080,
			BaseURL: "https://triage.example.com",
		},
		Notion: NotionConfig{
			Token:     "secret",
			InboxDBID: "inbox-db",
			TasksDBID: "tasks-db",
			BaseURL:   "https://api.notion.com",
		},
		Action: ActionConfig{
			SigningSecret: strings.Repeat("s", 32),
			ConfirmTTL:    10 * time.Minute,
		},
		Digest: DigestConfig{
			HolidayCalendarURL: "https://holidays-jp.github.io/api/v1/date.json",
			PageSize:           100,
		},
		Log: LogConfig{Level: "info", Format: "json"},
	}
}

func TestValidate_OK(t *testing.T) {
	t.Parallel()

	cfg := validConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidate_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{
			name:   "short signing secret",
			mutate: func(c *Config) { c.Action.SigningSecret = "short" },
			want:   "signing_secret",
		},
		{
			name:   "zero ttl",
			mutate: func(c *Config) { c.Action.ConfirmTTL = 0 },
			want:   "confirm_ttl",
		},
		{
			name:   "relative base url",
			mutate: func(c *Config) { c.Server.BaseURL = "triage.example.com" },
			want:   "server.base_url",
		},
		{
			name:   "trailing slash",
			mutate: func(c *Config) { c.Server.BaseURL = "https://triage.example.com/" },
			want:   "server.base_url",
		},
		{
			name:   "page size too large",
			mutate: func(c *Config) { c.Digest.PageSize = 500 },
			want:   "page_size",
		},
		{
			name:   "from without to",
			mutate: func(c *Config) { c.Mail.From = "triage@example.com" },
			want:   "mail",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := validConfig()
			tt.mutate(&cfg)

			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("error %q does not mention %q", err, tt.want)
			}
		})
	}
}

func TestSendingConfigured(t *testing.T) {
	t.Parallel()

	m := MailConfig{}
	if m.SendingConfigured() {
		t.Error("empty mail config must not report configured")
	}

	m = MailConfig{From: "triage@example.com", To: "me@example.com"}
	if !m.SendingConfigured() {
		t.Error("from+to must report configured")
	}
}
