package config_test

import (
	"path/filepath"
	"strings"
	"testing"

	"salesline/internal/config"
)

func TestDefaultValidates(t *testing.T) {
	if err := config.Default().Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
}

func TestFromYAMLOverrides(t *testing.T) {
	cfg, err := config.FromYAML([]byte("accounts:\n  count: 50\nleads:\n  months: 6\n"))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if cfg.Accounts.Count != 50 {
		t.Errorf("accounts.count = %d, want 50", cfg.Accounts.Count)
	}
	if cfg.Leads.Months != 6 {
		t.Errorf("leads.months = %d, want 6", cfg.Leads.Months)
	}
	// untouched sections keep defaults
	if cfg.Opportunities.AECount != 20 {
		t.Errorf("opportunities.ae_count = %d, want default 20", cfg.Opportunities.AECount)
	}
}

func TestFromYAMLRejectsBadDistribution(t *testing.T) {
	_, err := config.FromYAML([]byte("accounts:\n  industries:\n  - name: OnlyOne\n    p: 0.4\n"))
	if err == nil {
		t.Fatal("expected validation error for weights not summing to 1")
	}
	if !strings.Contains(err.Error(), "industries") {
		t.Errorf("error %q does not name the bad field", err)
	}
}

func TestValidateRejectsBadMQLRange(t *testing.T) {
	cfg := config.Default()
	r := cfg.Leads.MQLRates["Paid Ads"]
	r.Low, r.High = 0.5, 0.2
	cfg.Leads.MQLRates["Paid Ads"] = r
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for inverted MQL range")
	}
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := config.Load(t.TempDir())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Accounts.Count != config.Default().Accounts.Count {
		t.Error("missing file should fall back to defaults")
	}
}

func TestWriteThenLoadRoundTrips(t *testing.T) {
	dir := t.TempDir()
	cfg := config.Default()
	cfg.Accounts.Count = 123
	if err := cfg.Write(dir); err != nil {
		t.Fatalf("write: %v", err)
	}
	loaded, err := config.Load(dir)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if loaded.Accounts.Count != 123 {
		t.Errorf("loaded accounts.count = %d, want 123", loaded.Accounts.Count)
	}
}

func TestPath(t *testing.T) {
	got := config.Path("ws")
	want := filepath.Join("ws", ".salesline", "salesline.yml")
	if got != want {
		t.Errorf("path %q, want %q", got, want)
	}
}

func TestLeadsTotal(t *testing.T) {
	c := config.LeadsConfig{InboundPerMonth: 10, OutboundPerMonth: 5, Months: 12}
	if got := c.Total(); got != 180 {
		t.Errorf("total %d, want 180", got)
	}
}
