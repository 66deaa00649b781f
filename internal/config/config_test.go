package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{
		"DSRDRAFT_INTERMEDIATE_DIR", "DSRDRAFT_INDEX_PATH", "DSRDRAFT_RATE_DELAY",
		"DSRDRAFT_SOURCE_LIMIT", "ANTHROPIC_MODEL", "PORT",
	} {
		os.Unsetenv(key)
	}

	cfg := Load()
	if cfg.IntermediateDir != "data/intermediate" {
		t.Errorf("IntermediateDir = %q", cfg.IntermediateDir)
	}
	if cfg.IndexPath != filepath.Join("data/intermediate", "ib_index.json") {
		t.Errorf("IndexPath = %q", cfg.IndexPath)
	}
	if cfg.RateDelay != 500*time.Millisecond {
		t.Errorf("RateDelay = %v", cfg.RateDelay)
	}
	if cfg.SourceLimit != 10000 {
		t.Errorf("SourceLimit = %d", cfg.SourceLimit)
	}
	if cfg.Port != "8090" {
		t.Errorf("Port = %q", cfg.Port)
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("DSRDRAFT_RATE_DELAY", "2s")
	t.Setenv("DSRDRAFT_SOURCE_LIMIT", "500")
	t.Setenv("DSRDRAFT_INDEX_PATH", "/tmp/custom_index.json")

	cfg := Load()
	if cfg.RateDelay != 2*time.Second {
		t.Errorf("RateDelay = %v", cfg.RateDelay)
	}
	if cfg.SourceLimit != 500 {
		t.Errorf("SourceLimit = %d", cfg.SourceLimit)
	}
	if cfg.IndexPath != "/tmp/custom_index.json" {
		t.Errorf("IndexPath = %q", cfg.IndexPath)
	}
}

func TestValidatePipeline(t *testing.T) {
	dir := t.TempDir()
	mustWrite := func(name string) string {
		p := filepath.Join(dir, name)
		if err := os.WriteFile(p, []byte("x"), 0o644); err != nil {
			t.Fatal(err)
		}
		return p
	}

	cfg := Config{
		SourcePDF:    mustWrite("ib.pdf"),
		TemplatePath: mustWrite("template.docx"),
		MappingPath:  mustWrite("mapping.md"),
		OutputPath:   filepath.Join(dir, "out.docx"),
	}
	if err := cfg.ValidatePipeline(); err != nil {
		t.Errorf("valid config rejected: %v", err)
	}

	missing := cfg
	missing.SourcePDF = filepath.Join(dir, "absent.pdf")
	if err := missing.ValidatePipeline(); err == nil {
		t.Error("expected error for missing source PDF")
	}

	blank := cfg
	blank.OutputPath = ""
	if err := blank.ValidatePipeline(); err == nil {
		t.Error("expected error for empty output path")
	}
}

func TestValidateServer(t *testing.T) {
	if err := (Config{}).ValidateServer(); err == nil {
		t.Error("expected error without API key")
	}
	if err := (Config{ServerAPIKey: "k"}).ValidateServer(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}
