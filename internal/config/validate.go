package config

import (
	"fmt"
	"net/url"
	"strings"
)

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically. The intent
// is to fail at startup, not at the first signed link or store call.
func (c *Config) Validate() error {
	if len(c.Action.SigningSecret) < 32 {
		return fmt.Errorf("action.signing_secret must be at least 32 characters (got %d)", len(c.Action.SigningSecret))
	}
	if c.Action.ConfirmTTL <= 0 {
		return fmt.Errorf("action.confirm_ttl must be positive (got %v)", c.Action.ConfirmTTL)
	}

	if err := validateBaseURL("server.base_url", c.Server.BaseURL); err != nil {
		return err
	}
	if err := validateBaseURL("notion.base_url", c.Notion.BaseURL); err != nil {
		return err
	}

	if c.Digest.PageSize <= 0 || c.Digest.PageSize > 100 {
		return fmt.Errorf("digest.page_size must be in 1..100 (got %d)", c.Digest.PageSize)
	}

	if err := c.Mail.validate(); err != nil {
		return fmt.Errorf("mail: %w", err)
	}

	return nil
}

// SendingConfigured reports whether outbound mail can be sent. The digest
// endpoint works without it; the send command does not.
func (m MailConfig) SendingConfigured() bool {
	return m.From != "" && m.To != ""
}

func (m MailConfig) validate() error {
	// Both or neither: a from address without a recipient (or vice versa)
	// is a misconfiguration, not a disabled feature.
	if (m.From == "") != (m.To == "") {
		return fmt.Errorf("from and to must be set together")
	}
	return nil
}

func validateBaseURL(key, raw string) error {
	u, err := url.Parse(raw)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("%s must be an absolute URL (got %q)", key, raw)
	}
	if strings.HasSuffix(raw, "/") {
		return fmt.Errorf("%s must not end with a slash (got %q)", key, raw)
	}
	return nil
}
