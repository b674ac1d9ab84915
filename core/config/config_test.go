package config

import (
	"strings"
	"testing"
)

func validConfig() *Config {
	cfg := &Config{}
	cfg.Telegram.Token = "123456:test-token"
	cfg.Telegram.AdminID = 99
	cfg.Payment.IBAN = "DE89 3704 0044 0532 0130 00"
	cfg.Payment.AccountName = "Acme Retail GmbH"
	return cfg
}

func TestNormalizeDefaults(t *testing.T) {
	cfg := validConfig()
	if err := Normalize(cfg); err != nil {
		t.Fatalf("Normalize failed: %v", err)
	}
	if cfg.Telegram.RunMode != RunModeLongpoll {
		t.Errorf("run mode = %q, want longpoll default", cfg.Telegram.RunMode)
	}
}

func TestNormalizePollingAlias(t *testing.T) {
	cfg := validConfig()
	cfg.Telegram.RunMode = "polling"
	if err := Normalize(cfg); err != nil {
		t.Fatalf("Normalize failed: %v", err)
	}
	if cfg.Telegram.RunMode != RunModeLongpoll {
		t.Errorf("run mode = %q, want longpoll", cfg.Telegram.RunMode)
	}
}

func TestNormalizeRejections(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"missing token", func(c *Config) { c.Telegram.Token = "" }, "token"},
		{"missing admin", func(c *Config) { c.Telegram.AdminID = 0 }, "admin_id"},
		{"bad run mode", func(c *Config) { c.Telegram.RunMode = "carrier-pigeon" }, "run_mode"},
		{"webhook without url", func(c *Config) { c.Telegram.RunMode = RunModeWebhook }, "webhook.url"},
		{"missing iban", func(c *Config) { c.Payment.IBAN = " " }, "iban"},
		{"missing account name", func(c *Config) { c.Payment.AccountName = "" }, "account_name"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := validConfig()
			tc.mutate(cfg)
			err := Normalize(cfg)
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if !strings.Contains(err.Error(), tc.wantErr) {
				t.Fatalf("error %q does not mention %q", err, tc.wantErr)
			}
		})
	}
}

func TestNormalizeDigestScheduleDefault(t *testing.T) {
	cfg := validConfig()
	cfg.Digest.Enabled = true
	if err := Normalize(cfg); err != nil {
		t.Fatalf("Normalize failed: %v", err)
	}
	if cfg.Digest.Schedule != DefaultDigestSchedule {
		t.Errorf("digest schedule = %q, want default", cfg.Digest.Schedule)
	}
}
