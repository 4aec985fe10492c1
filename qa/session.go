package qa

import (
	"bufio"
	"context"
	"errors"
	"io"

	"github.com/theimaginaryfoundation/ask-o-bot/engine"
)

// Engine is the consumed reasoning-engine contract: one question in, an
// answer with optional sources out. Progress reporting is wired at engine
// construction, not here.
type Engine interface {
	Answer(ctx context.Context, req engine.Request) (engine.Result, error)
}

// ControllerConfig wires a session Controller.
type ControllerConfig struct {
	Input   io.Reader
	Console *Console
	Engine  Engine
	Corpus  Corpus

	// Model names shown in the welcome banner.
	Model    string
	SubModel string
}

// Controller runs the interactive loop. It owns the corpus for the process
// lifetime and is the only writer of the conversation history. One question
// is in flight at a time by construction.
type Controller struct {
	cfg     ControllerConfig
	history []Exchange
}

// NewController builds a Controller; the corpus must already be loaded.
func NewController(cfg ControllerConfig) *Controller {
	return &Controller{cfg: cfg}
}

// History returns the recorded exchanges in chronological order.
func (c *Controller) History() []Exchange {
	out := make([]Exchange, len(c.history))
	copy(out, c.history)
	return out
}

// Run blocks on the interactive loop until quit, end of input, or ctx
// cancellation. All of those are graceful; the returned error is only ever
// a read failure on the input stream.
func (c *Controller) Run(ctx context.Context) error {
	console := c.cfg.Console
	console.Welcome(len(c.cfg.Corpus), c.cfg.Model, c.cfg.SubModel)

	var readErr error
	lines := make(chan string)
	go func() {
		defer close(lines)
		sc := bufio.NewScanner(c.cfg.Input)
		sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
		for sc.Scan() {
			select {
			case lines <- sc.Text():
			case <-ctx.Done():
				return
			}
		}
		readErr = sc.Err()
	}()

	for {
		// Cancellation wins over buffered input.
		select {
		case <-ctx.Done():
			console.Farewell()
			return nil
		default:
		}

		console.Prompt()
		var line string
		var ok bool
		select {
		case <-ctx.Done():
			console.Farewell()
			return nil
		case line, ok = <-lines:
			if !ok {
				console.Farewell()
				return readErr
			}
		}

		switch cmd := ParseCommand(line); cmd.Kind {
		case CommandEmpty:
			// no-op
		case CommandQuit:
			console.Farewell()
			return nil
		case CommandHelp:
			console.Help()
		case CommandReset:
			c.history = c.history[:0]
			console.Welcome(len(c.cfg.Corpus), c.cfg.Model, c.cfg.SubModel)
		case CommandHistory:
			console.HistoryList(c.history)
		case CommandQuestion:
			c.ask(ctx, cmd.Text)
		}
	}
}

// ask processes one question. A failed engine call is reported and leaves
// the history untouched; an exchange is recorded only after success.
func (c *Controller) ask(ctx context.Context, question string) {
	console := c.cfg.Console
	console.QuestionHeader(question, len(c.history))

	res, err := c.cfg.Engine.Answer(ctx, engine.Request{
		Transcripts:         c.cfg.Corpus,
		ConversationHistory: FormatHistory(c.history),
		Question:            question,
	})
	if err != nil {
		// Cancellation means the session is winding down, not that the
		// question failed.
		if !errors.Is(err, context.Canceled) && ctx.Err() == nil {
			console.Errorf("Error: %v", err)
		}
		return
	}

	console.Answer(res)
	c.history = append(c.history, Exchange{Question: question, Answer: res.Answer})
}
