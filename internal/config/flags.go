package config

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// envBoundFlags are the flags that also accept a DSRDRAFT_* environment
// variable. The api-key flag is deliberately absent: its environment
// source is ANTHROPIC_API_KEY (read by Load), and DSRDRAFT_API_KEY is
// the server bearer token, which must never become a gateway credential.
var envBoundFlags = []string{
	"source", "template", "mapping", "output", "model",
	"force-reindex", "resume", "index-path", "intermediate-dir",
}

// LoadFromFlags parses the CLI flag surface on top of the environment
// configuration. Flags win over environment variables, which win over
// defaults.
func LoadFromFlags(args []string) (Config, error) {
	cfg := Load()

	fs := pflag.NewFlagSet("dsrdraft", pflag.ContinueOnError)
	fs.String("source", cfg.SourcePDF, "Path to the Investigator Brochure PDF")
	fs.String("template", cfg.TemplatePath, "Path to the DSR Word template (.docx)")
	fs.String("mapping", cfg.MappingPath, "Path to the field mapping table")
	fs.String("output", cfg.OutputPath, "Path for the populated output document")
	fs.String("api-key", "", "Synthesis API key (or set ANTHROPIC_API_KEY)")
	fs.String("model", cfg.Model, "Synthesis model name")
	fs.Bool("force-reindex", cfg.ForceReindex, "Rebuild the source index even if a cached one exists")
	fs.Bool("resume", cfg.Resume, "Reuse persisted matched content and run population only")
	fs.String("index-path", cfg.IndexPath, "Path for the source index artifact")
	fs.String("intermediate-dir", cfg.IntermediateDir, "Directory for intermediate artifacts")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	v := viper.New()
	v.SetEnvPrefix("DSRDRAFT")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	for _, name := range envBoundFlags {
		if err := v.BindPFlag(name, fs.Lookup(name)); err != nil {
			return Config{}, fmt.Errorf("bind flag %s: %w", name, err)
		}
	}

	cfg.SourcePDF = v.GetString("source")
	cfg.TemplatePath = v.GetString("template")
	cfg.MappingPath = v.GetString("mapping")
	cfg.OutputPath = v.GetString("output")
	cfg.Model = v.GetString("model")
	cfg.ForceReindex = v.GetBool("force-reindex")
	cfg.Resume = v.GetBool("resume")
	cfg.IndexPath = v.GetString("index-path")
	cfg.IntermediateDir = v.GetString("intermediate-dir")

	if fs.Changed("api-key") {
		cfg.APIKey, _ = fs.GetString("api-key")
	}

	return cfg, nil
}
