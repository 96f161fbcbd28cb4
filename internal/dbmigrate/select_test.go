package dbmigrate

import (
	"testing"

	"menuboard/internal/config"
)

func TestSelectDatabaseURLPriority(t *testing.T) {
	cfg := &config.Config{
		DatabaseURLDirect: "postgres://direct",
		DatabaseURLRaw:    "postgres://url",
		DatabaseURLPooled: "postgres://pooled",
	}

	url, source, warning, err := SelectDatabaseURL(cfg, false)
	if err != nil {
		t.Fatal(err)
	}
	if url != "postgres://direct" || source != "DATABASE_URL_DIRECT" || warning != "" {
		t.Errorf("got %s / %s / %q", url, source, warning)
	}

	cfg.DatabaseURLDirect = ""
	url, source, _, err = SelectDatabaseURL(cfg, false)
	if err != nil {
		t.Fatal(err)
	}
	if url != "postgres://url" || source != "DATABASE_URL" {
		t.Errorf("got %s / %s", url, source)
	}

	cfg.DatabaseURLRaw = ""
	url, source, warning, err = SelectDatabaseURL(cfg, false)
	if err != nil {
		t.Fatal(err)
	}
	if url != "postgres://pooled" || source != "DATABASE_URL_POOLED" {
		t.Errorf("got %s / %s", url, source)
	}
	if warning == "" {
		t.Error("expected a warning when falling back to the pooled URL")
	}
}

func TestSelectDatabaseURLRequireDirect(t *testing.T) {
	cfg := &config.Config{DatabaseURLRaw: "postgres://url"}

	if _, _, _, err := SelectDatabaseURL(cfg, true); err == nil {
		t.Error("expected error when DIRECT is required but missing")
	}

	cfg.DatabaseURLDirect = "postgres://direct"
	url, source, _, err := SelectDatabaseURL(cfg, true)
	if err != nil {
		t.Fatal(err)
	}
	if url != "postgres://direct" || source != "DATABASE_URL_DIRECT" {
		t.Errorf("got %s / %s", url, source)
	}
}

func TestSelectDatabaseURLNoneConfigured(t *testing.T) {
	if _, _, _, err := SelectDatabaseURL(&config.Config{}, false); err == nil {
		t.Error("expected error with no database URLs configured")
	}
}
