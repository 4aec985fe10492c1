package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/theimaginaryfoundation/ask-o-bot/engine"
	"github.com/theimaginaryfoundation/ask-o-bot/engine/provider"
	"github.com/theimaginaryfoundation/ask-o-bot/qa"
)

func main() {
	cfg, question, err := parseFlags(flag.CommandLine, os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(2)
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(2)
	}
	if question == "" {
		fmt.Fprintln(os.Stderr, "usage: transcript-ask [flags] <question>")
		os.Exit(2)
	}

	apiKey := cfg.APIKey
	if apiKey == "" {
		apiKey = os.Getenv("OPENAI_API_KEY")
	}
	if apiKey == "" {
		fmt.Fprintln(os.Stderr, "missing OPENAI_API_KEY (or pass -api-key)")
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	console := qa.NewConsole(os.Stdout, !cfg.NoColor)

	corpus, err := qa.LoadTranscripts(cfg.TranscriptsDir)
	if err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(1)
	}
	if len(corpus) == 0 {
		fmt.Fprintf(os.Stderr, "no transcripts found in %s\n", cfg.TranscriptsDir)
		os.Exit(1)
	}
	if !cfg.Quiet {
		console.Statusf("Loaded %d transcript(s) from %s", len(corpus), cfg.TranscriptsDir)
	}

	client := openai.NewClient(option.WithAPIKey(apiKey))
	interp := qa.RLMInterpreter{}

	engcfg := engine.Config{
		Planner:       provider.NewOpenAI(&client, cfg.Model),
		Synthesizer:   provider.NewOpenAI(&client, cfg.SubModel),
		MaxIterations: cfg.MaxIterations,
		MaxLLMCalls:   cfg.MaxLLMCalls,
		Sources:       provider.NewSourcePicker(&client, cfg.SubModel),
	}
	if !cfg.Quiet {
		engcfg.Progress = func(line string) {
			for _, ev := range interp.Interpret(line) {
				console.Event(ev)
			}
		}
	}
	eng, err := engine.NewResearch(engcfg)
	if err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(1)
	}

	res, err := eng.Answer(ctx, engine.Request{
		Transcripts: corpus,
		Question:    question,
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(1)
	}
	console.Answer(res)
}

func parseFlags(fs *flag.FlagSet, args []string) (Config, string, error) {
	cfg := defaultConfig()
	fs.SetOutput(os.Stderr)
	fs.StringVar(&cfg.Model, "model", cfg.Model, "OpenAI model for planning and final answers (env MAIN_MODEL)")
	fs.StringVar(&cfg.SubModel, "sub-model", cfg.SubModel, "OpenAI model for intermediate steps (env SUB_MODEL)")
	fs.IntVar(&cfg.MaxIterations, "max-iterations", cfg.MaxIterations, "Max reasoning iterations (env MAX_ITERATIONS)")
	fs.IntVar(&cfg.MaxLLMCalls, "max-llm-calls", cfg.MaxLLMCalls, "Max total model calls (env MAX_LLM_CALLS)")
	fs.StringVar(&cfg.TranscriptsDir, "transcripts", cfg.TranscriptsDir, "Directory containing transcript .txt files (env TRANSCRIPTS_DIR)")
	fs.StringVar(&cfg.APIKey, "api-key", "", "OpenAI API key (overrides OPENAI_API_KEY env var)")
	fs.BoolVar(&cfg.NoColor, "no-color", false, "Disable colored output")
	fs.BoolVar(&cfg.Quiet, "quiet", false, "Suppress progress output, print only the answer")

	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "Usage:\n  %s [flags] <question>\n\nFlags:\n", filepath.Base(os.Args[0]))
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return Config{}, "", err
	}
	cfg.TranscriptsDir = filepath.Clean(cfg.TranscriptsDir)
	question := strings.TrimSpace(strings.Join(fs.Args(), " "))
	return cfg, question, nil
}
