package main

import (
	"flag"
	"testing"
)

func TestParseFlags_QuestionFromArgs(t *testing.T) {
	t.Parallel()

	fs := flag.NewFlagSet("transcript-ask", flag.ContinueOnError)
	cfg, question, err := parseFlags(fs, []string{
		"-model", "gpt-5",
		"-quiet",
		"What", "did", "he", "say", "about", "sleep?",
	})
	if err != nil {
		t.Fatalf("parseFlags: %v", err)
	}
	if question != "What did he say about sleep?" {
		t.Fatalf("question=%q", question)
	}
	if cfg.Model != "gpt-5" {
		t.Fatalf("Model=%q", cfg.Model)
	}
	if !cfg.Quiet {
		t.Fatalf("Quiet=%v", cfg.Quiet)
	}
}

func TestParseFlags_EmptyQuestion(t *testing.T) {
	t.Parallel()

	fs := flag.NewFlagSet("transcript-ask", flag.ContinueOnError)
	_, question, err := parseFlags(fs, []string{"-model", "gpt-5"})
	if err != nil {
		t.Fatalf("parseFlags: %v", err)
	}
	if question != "" {
		t.Fatalf("question=%q, want empty", question)
	}
}

func TestParseFlags_SingleQuotedQuestion(t *testing.T) {
	t.Parallel()

	fs := flag.NewFlagSet("transcript-ask", flag.ContinueOnError)
	_, question, err := parseFlags(fs, []string{"  how to focus?  "})
	if err != nil {
		t.Fatalf("parseFlags: %v", err)
	}
	if question != "how to focus?" {
		t.Fatalf("question=%q", question)
	}
}

func TestParseFlags_EnvDefaults(t *testing.T) {
	t.Setenv("MAIN_MODEL", "gpt-5.2")
	t.Setenv("TRANSCRIPTS_DIR", "corpus")

	fs := flag.NewFlagSet("transcript-ask", flag.ContinueOnError)
	cfg, _, err := parseFlags(fs, []string{"q"})
	if err != nil {
		t.Fatalf("parseFlags: %v", err)
	}
	if cfg.Model != "gpt-5.2" {
		t.Fatalf("Model=%q", cfg.Model)
	}
	if cfg.TranscriptsDir != "corpus" {
		t.Fatalf("TranscriptsDir=%q", cfg.TranscriptsDir)
	}
}
