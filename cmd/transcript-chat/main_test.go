package main

import (
	"flag"
	"testing"
)

func TestParseFlags_Overrides(t *testing.T) {
	t.Parallel()

	fs := flag.NewFlagSet("transcript-chat", flag.ContinueOnError)
	cfg, err := parseFlags(fs, []string{
		"-model", "gpt-5",
		"-sub-model", "gpt-5-mini",
		"-max-iterations", "7",
		"-max-llm-calls", "11",
		"-transcripts", "data/transcripts",
		"-api-key", "k",
		"-no-color",
	})
	if err != nil {
		t.Fatalf("parseFlags: %v", err)
	}
	if cfg.Model != "gpt-5" {
		t.Fatalf("Model=%q", cfg.Model)
	}
	if cfg.SubModel != "gpt-5-mini" {
		t.Fatalf("SubModel=%q", cfg.SubModel)
	}
	if cfg.MaxIterations != 7 || cfg.MaxLLMCalls != 11 {
		t.Fatalf("iterations=%d calls=%d", cfg.MaxIterations, cfg.MaxLLMCalls)
	}
	if cfg.TranscriptsDir != "data/transcripts" {
		t.Fatalf("TranscriptsDir=%q", cfg.TranscriptsDir)
	}
	if cfg.APIKey != "k" {
		t.Fatalf("APIKey=%q", cfg.APIKey)
	}
	if !cfg.NoColor {
		t.Fatalf("NoColor=%v", cfg.NoColor)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
}

func TestParseFlags_EnvDefaults(t *testing.T) {
	t.Setenv("MAIN_MODEL", "gpt-5.2")
	t.Setenv("SUB_MODEL", "gpt-5.2-mini")
	t.Setenv("MAX_ITERATIONS", "9")
	t.Setenv("MAX_LLM_CALLS", "13")
	t.Setenv("TRANSCRIPTS_DIR", "corpus")

	fs := flag.NewFlagSet("transcript-chat", flag.ContinueOnError)
	cfg, err := parseFlags(fs, nil)
	if err != nil {
		t.Fatalf("parseFlags: %v", err)
	}
	if cfg.Model != "gpt-5.2" || cfg.SubModel != "gpt-5.2-mini" {
		t.Fatalf("Model=%q SubModel=%q", cfg.Model, cfg.SubModel)
	}
	if cfg.MaxIterations != 9 || cfg.MaxLLMCalls != 13 {
		t.Fatalf("iterations=%d calls=%d", cfg.MaxIterations, cfg.MaxLLMCalls)
	}
	if cfg.TranscriptsDir != "corpus" {
		t.Fatalf("TranscriptsDir=%q", cfg.TranscriptsDir)
	}
}

func TestParseFlags_BadEnvIntFallsBack(t *testing.T) {
	t.Setenv("MAX_ITERATIONS", "lots")

	fs := flag.NewFlagSet("transcript-chat", flag.ContinueOnError)
	cfg, err := parseFlags(fs, nil)
	if err != nil {
		t.Fatalf("parseFlags: %v", err)
	}
	if cfg.MaxIterations != 20 {
		t.Fatalf("MaxIterations=%d", cfg.MaxIterations)
	}
}

func TestValidate_Rejects(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"empty model", func(c *Config) { c.Model = "" }},
		{"empty sub-model", func(c *Config) { c.SubModel = "" }},
		{"empty transcripts", func(c *Config) { c.TranscriptsDir = "" }},
		{"zero iterations", func(c *Config) { c.MaxIterations = 0 }},
		{"negative calls", func(c *Config) { c.MaxLLMCalls = -1 }},
	}
	for _, tc := range cases {
		cfg := Config{
			Model:          "gpt-5",
			SubModel:       "gpt-5-mini",
			MaxIterations:  20,
			MaxLLMCalls:    25,
			TranscriptsDir: "data/transcripts",
		}
		tc.mutate(&cfg)
		if err := cfg.Validate(); err == nil {
			t.Fatalf("%s: Validate() = nil, want error", tc.name)
		}
	}
}
