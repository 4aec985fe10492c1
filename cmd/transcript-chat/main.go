package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/theimaginaryfoundation/ask-o-bot/engine"
	"github.com/theimaginaryfoundation/ask-o-bot/engine/provider"
	"github.com/theimaginaryfoundation/ask-o-bot/qa"
)

func main() {
	cfg, err := parseFlags(flag.CommandLine, os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(2)
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
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

	console.Statusf("Loading transcripts from %s...", cfg.TranscriptsDir)
	corpus, err := qa.LoadTranscripts(cfg.TranscriptsDir)
	if err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(1)
	}
	if len(corpus) == 0 {
		fmt.Fprintf(os.Stderr, "no transcripts found in %s\n", cfg.TranscriptsDir)
		os.Exit(1)
	}

	client := openai.NewClient(option.WithAPIKey(apiKey))
	interp := qa.RLMInterpreter{}

	eng, err := engine.NewResearch(engine.Config{
		Planner:       provider.NewOpenAI(&client, cfg.Model),
		Synthesizer:   provider.NewOpenAI(&client, cfg.SubModel),
		MaxIterations: cfg.MaxIterations,
		MaxLLMCalls:   cfg.MaxLLMCalls,
		Sources:       provider.NewSourcePicker(&client, cfg.SubModel),
		Progress: func(line string) {
			for _, ev := range interp.Interpret(line) {
				console.Event(ev)
			}
		},
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(1)
	}

	ctrl := qa.NewController(qa.ControllerConfig{
		Input:    os.Stdin,
		Console:  console,
		Engine:   eng,
		Corpus:   corpus,
		Model:    cfg.Model,
		SubModel: cfg.SubModel,
	})
	if err := ctrl.Run(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(1)
	}
}

func parseFlags(fs *flag.FlagSet, args []string) (Config, error) {
	cfg := defaultConfig()
	fs.SetOutput(os.Stderr)
	fs.StringVar(&cfg.Model, "model", cfg.Model, "OpenAI model for planning and final answers (env MAIN_MODEL)")
	fs.StringVar(&cfg.SubModel, "sub-model", cfg.SubModel, "OpenAI model for intermediate steps (env SUB_MODEL)")
	fs.IntVar(&cfg.MaxIterations, "max-iterations", cfg.MaxIterations, "Max reasoning iterations per question (env MAX_ITERATIONS)")
	fs.IntVar(&cfg.MaxLLMCalls, "max-llm-calls", cfg.MaxLLMCalls, "Max total model calls per question (env MAX_LLM_CALLS)")
	fs.StringVar(&cfg.TranscriptsDir, "transcripts", cfg.TranscriptsDir, "Directory containing transcript .txt files (env TRANSCRIPTS_DIR)")
	fs.StringVar(&cfg.APIKey, "api-key", "", "OpenAI API key (overrides OPENAI_API_KEY env var)")
	fs.BoolVar(&cfg.NoColor, "no-color", false, "Disable colored output")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	cfg.TranscriptsDir = filepath.Clean(cfg.TranscriptsDir)
	return cfg, nil
}
