package main

import (
	"errors"
	"os"
	"path/filepath"
	"strconv"
)

type Config struct {
	Model          string
	SubModel       string
	MaxIterations  int
	MaxLLMCalls    int
	TranscriptsDir string
	APIKey         string
	NoColor        bool
	Quiet          bool
}

func (c Config) Validate() error {
	if c.Model == "" {
		return errors.New("missing -model")
	}
	if c.SubModel == "" {
		return errors.New("missing -sub-model")
	}
	if c.TranscriptsDir == "" {
		return errors.New("missing -transcripts")
	}
	if c.MaxIterations <= 0 {
		return errors.New("max-iterations must be > 0")
	}
	if c.MaxLLMCalls <= 0 {
		return errors.New("max-llm-calls must be > 0")
	}
	return nil
}

func defaultConfig() Config {
	return Config{
		Model:          envOr("MAIN_MODEL", "gpt-5"),
		SubModel:       envOr("SUB_MODEL", "gpt-5-mini"),
		MaxIterations:  envOrInt("MAX_ITERATIONS", 20),
		MaxLLMCalls:    envOrInt("MAX_LLM_CALLS", 25),
		TranscriptsDir: envOr("TRANSCRIPTS_DIR", filepath.FromSlash("data/transcripts")),
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envOrInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}
