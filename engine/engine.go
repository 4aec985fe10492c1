// Package engine wraps the external reasoning loop behind a small call
// contract: a question over a transcript corpus goes in, an answer with
// optional source citations comes out. The iterative loop itself belongs to
// github.com/smhanov/laconic; this package only configures and invokes it.
package engine

// Request carries one question and its context to the reasoning engine.
type Request struct {
	Transcripts         map[string]string
	ConversationHistory string
	Question            string
}

// Result is the engine's final output for one question.
type Result struct {
	Answer  string
	Sources []string
}

// ProgressFunc receives free-text progress lines emitted while the engine
// runs. It is called synchronously on the calling goroutine.
type ProgressFunc func(line string)
