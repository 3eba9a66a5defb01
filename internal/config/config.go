package config

import "time"

// Config is the root application configuration.
type Config struct {
	Server ServerConfig `yaml:"server"`
	Notion NotionConfig `yaml:"notion"`
	Action ActionConfig `yaml:"action"`
	Digest DigestConfig `yaml:"digest"`
	Mail   MailConfig   `yaml:"mail"`
	Log    LogConfig    `yaml:"log"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `yaml:"host"             env:"SERVER_HOST"             env-default:"0.0.0.0"`
	Port            int           `yaml:"port"             env:"SERVER_PORT"             env-default:"8080"`
	ReadTimeout     time.Duration `yaml:"read_timeout"     env:"SERVER_READ_TIMEOUT"     env-default:"10s"`
	WriteTimeout    time.Duration `yaml:"write_timeout"    env:"SERVER_WRITE_TIMEOUT"    env-default:"30s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"     env:"SERVER_IDLE_TIMEOUT"     env-default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT" env-default:"10s"`

	// BaseURL is the externally visible origin used when building action
	// links embedded in emails (e.g. "https://triage.example.com").
	BaseURL string `yaml:"base_url" env:"SERVER_BASE_URL" env-required:"true"`
}

// NotionConfig holds credentials and database ids for the record store.
type NotionConfig struct {
	Token       string        `yaml:"token"        env:"NOTION_TOKEN"        env-required:"true"`
	InboxDBID   string        `yaml:"inbox_db_id"  env:"NOTION_INBOX_DB_ID"  env-required:"true"`
	TasksDBID   string        `yaml:"tasks_db_id"  env:"NOTION_TASKS_DB_ID"  env-required:"true"`
	BaseURL     string        `yaml:"base_url"     env:"NOTION_BASE_URL"     env-default:"https://api.notion.com"`
	HTTPTimeout time.Duration `yaml:"http_timeout" env:"NOTION_HTTP_TIMEOUT" env-default:"10s"`
}

// ActionConfig holds settings for signed triage action links.
type ActionConfig struct {
	// SigningSecret keys the HMAC over confirm tokens. Rotating it
	// invalidates every outstanding link at once.
	SigningSecret string        `yaml:"signing_secret" env:"ACTION_SIGNING_SECRET" env-required:"true"`
	ConfirmTTL    time.Duration `yaml:"confirm_ttl"    env:"ACTION_CONFIRM_TTL"    env-default:"10m"`

	// SharedKey, when set, must accompany every triage request as the
	// "key" query parameter. Empty disables the check.
	SharedKey string `yaml:"shared_key" env:"ACTION_SHARED_KEY"`
}

// DigestConfig holds settings for the periodic task digest.
type DigestConfig struct {
	HolidayCalendarURL string        `yaml:"holiday_calendar_url" env:"DIGEST_HOLIDAY_CALENDAR_URL" env-default:"https://holidays-jp.github.io/api/v1/date.json"`
	HolidayCacheTTL    time.Duration `yaml:"holiday_cache_ttl"    env:"DIGEST_HOLIDAY_CACHE_TTL"    env-default:"6h"`
	PageSize           int           `yaml:"page_size"            env:"DIGEST_PAGE_SIZE"            env-default:"100"`
}

// MailConfig holds outbound mail provider settings.
type MailConfig struct {
	Endpoint string `yaml:"endpoint"  env:"MAIL_ENDPOINT"  env-default:"https://api.mailchannels.net/tx/v1/send"`
	APIKey   string `yaml:"api_key"   env:"MAIL_API_KEY"`
	From     string `yaml:"from"      env:"MAIL_FROM"`
	FromName string `yaml:"from_name" env:"MAIL_FROM_NAME" env-default:"Inbox Triage Bot"`
	To       string `yaml:"to"        env:"MAIL_TO"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"json"`
}
