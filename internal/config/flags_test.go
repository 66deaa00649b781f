package config

import "testing"

func TestLoadFromFlags_FlagsWinOverEnv(t *testing.T) {
	t.Setenv("DSRDRAFT_SOURCE", "/env/ib.pdf")

	cfg, err := LoadFromFlags([]string{"--source", "/flag/ib.pdf", "--force-reindex"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.SourcePDF != "/flag/ib.pdf" {
		t.Errorf("SourcePDF = %q, want flag value", cfg.SourcePDF)
	}
	if !cfg.ForceReindex {
		t.Error("expected force-reindex flag to be set")
	}
}

func TestLoadFromFlags_EnvFallback(t *testing.T) {
	t.Setenv("DSRDRAFT_TEMPLATE", "/env/template.docx")
	t.Setenv("DSRDRAFT_INTERMEDIATE_DIR", "/env/intermediate")

	cfg, err := LoadFromFlags(nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.TemplatePath != "/env/template.docx" {
		t.Errorf("TemplatePath = %q, want env value", cfg.TemplatePath)
	}
	if cfg.IntermediateDir != "/env/intermediate" {
		t.Errorf("IntermediateDir = %q, want env value", cfg.IntermediateDir)
	}
}

// The gateway credential and the server bearer token are distinct
// secrets. The server token must never be picked up as the synthesis
// API key just because both binaries share an env prefix.
func TestLoadFromFlags_ServerTokenNotGatewayCredential(t *testing.T) {
	t.Setenv("ANTHROPIC_API_KEY", "synthesis-key")
	t.Setenv("DSRDRAFT_API_KEY", "server-bearer-token")

	cfg, err := LoadFromFlags(nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.APIKey != "synthesis-key" {
		t.Errorf("APIKey = %q, want the ANTHROPIC_API_KEY value", cfg.APIKey)
	}
	if cfg.ServerAPIKey != "server-bearer-token" {
		t.Errorf("ServerAPIKey = %q, want the bearer token", cfg.ServerAPIKey)
	}
}

func TestLoadFromFlags_APIKeyFlagOverrides(t *testing.T) {
	t.Setenv("ANTHROPIC_API_KEY", "env-key")

	cfg, err := LoadFromFlags([]string{"--api-key", "flag-key"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.APIKey != "flag-key" {
		t.Errorf("APIKey = %q, want flag value", cfg.APIKey)
	}
}
