package engine

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/smhanov/laconic"
)

// SourceSelector narrows the searched transcript titles down to the ones
// that actually support the answer. Implementations are best-effort; a
// failure falls back to the unfiltered candidates.
type SourceSelector interface {
	Select(ctx context.Context, question, answer string, candidates []string) ([]string, error)
}

// Config wires a Research engine. Planner is the primary model (planning and
// final answers), Synthesizer the cheaper model for intermediate steps.
type Config struct {
	Planner     laconic.LLMProvider
	Synthesizer laconic.LLMProvider

	MaxIterations int // reasoning iterations per question (default 20)
	MaxLLMCalls   int // total model calls per question (default 25)
	TopK          int // search results per query (default 5)

	Progress ProgressFunc   // optional, receives iteration progress lines
	Sources  SourceSelector // optional
}

// Research answers questions over a transcript corpus by configuring and
// invoking the laconic research loop.
type Research struct {
	cfg Config
}

// NewResearch validates cfg and fills in defaults.
func NewResearch(cfg Config) (*Research, error) {
	if cfg.Planner == nil {
		return nil, errors.New("engine: planner model is required")
	}
	if cfg.Synthesizer == nil {
		return nil, errors.New("engine: synthesizer model is required")
	}
	if cfg.MaxIterations <= 0 {
		cfg.MaxIterations = 20
	}
	if cfg.MaxLLMCalls <= 0 {
		cfg.MaxLLMCalls = 25
	}
	if cfg.TopK <= 0 {
		cfg.TopK = 5
	}
	return &Research{cfg: cfg}, nil
}

// Answer runs the reasoning loop for one question. Progress lines are
// emitted synchronously while the call is in flight. The call budget spans
// every model the loop touches; exhausting it fails the in-flight question
// without retry.
func (r *Research) Answer(ctx context.Context, req Request) (Result, error) {
	question := strings.TrimSpace(req.Question)
	if question == "" {
		return Result{}, errors.New("engine: question is empty")
	}
	if len(req.Transcripts) == 0 {
		return Result{}, errors.New("engine: transcript corpus is empty")
	}

	searcher := NewCorpusSearch(req.Transcripts, r.cfg.TopK)
	budget := &callBudget{limit: r.cfg.MaxLLMCalls}
	planner := &progressTap{
		inner: &budgetedProvider{inner: r.cfg.Planner, budget: budget},
		max:   r.cfg.MaxIterations,
		emit:  r.cfg.Progress,
	}

	agent := laconic.New(
		laconic.WithPlannerModel(planner),
		laconic.WithSynthesizerModel(&budgetedProvider{inner: r.cfg.Synthesizer, budget: budget}),
		laconic.WithFinalizerModel(&budgetedProvider{inner: r.cfg.Planner, budget: budget}),
		laconic.WithSearchProvider(searcher),
		laconic.WithMaxIterations(r.cfg.MaxIterations),
	)

	var opts []laconic.AnswerOption
	if history := strings.TrimSpace(req.ConversationHistory); history != "" {
		opts = append(opts, laconic.WithKnowledge(history))
	}

	res, err := agent.Answer(ctx, question, opts...)
	if err != nil {
		// The loop reports iteration exhaustion as an error alongside a
		// best-effort answer; surface the answer when there is one.
		if strings.TrimSpace(res.Answer) == "" {
			return Result{}, err
		}
	}

	sources := searcher.Titles()
	if r.cfg.Sources != nil && len(sources) > 0 {
		if picked, err := r.cfg.Sources.Select(ctx, question, res.Answer, sources); err == nil && len(picked) > 0 {
			sources = picked
		}
	}
	return Result{Answer: res.Answer, Sources: sources}, nil
}

// callBudget counts model calls across every provider in one question. The
// loop is single-threaded, so no locking is needed.
type callBudget struct {
	limit int
	used  int
}

func (b *callBudget) take() error {
	if b.used >= b.limit {
		return fmt.Errorf("llm call budget exhausted (%d)", b.limit)
	}
	b.used++
	return nil
}

type budgetedProvider struct {
	inner  laconic.LLMProvider
	budget *callBudget
}

func (p *budgetedProvider) Generate(ctx context.Context, systemPrompt, userPrompt string) (laconic.LLMResponse, error) {
	if err := p.budget.take(); err != nil {
		return laconic.LLMResponse{}, err
	}
	return p.inner.Generate(ctx, systemPrompt, userPrompt)
}

// progressTap wraps the planner model, which runs exactly once per loop
// iteration, and emits one progress line per response.
type progressTap struct {
	inner laconic.LLMProvider
	max   int
	step  int
	emit  ProgressFunc
}

func (p *progressTap) Generate(ctx context.Context, systemPrompt, userPrompt string) (laconic.LLMResponse, error) {
	resp, err := p.inner.Generate(ctx, systemPrompt, userPrompt)
	if err != nil {
		return resp, err
	}
	p.step++
	if p.emit != nil {
		p.emit(fmt.Sprintf("RLM iteration %d/%d\nReasoning: %s", p.step, p.max, strings.TrimSpace(resp.Text)))
	}
	return resp, nil
}
