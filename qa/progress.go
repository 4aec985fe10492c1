package qa

import (
	"strconv"
	"strings"
)

// EventKind tags a progress Event.
type EventKind int

const (
	EventIterationStart EventKind = iota
	EventReasoning
	EventCode
)

// Event is one structured display unit derived from a single raw engine
// progress line. Events exist only to drive the display and are not retained.
type Event struct {
	Kind EventKind
	Step int    // iteration number, for EventIterationStart
	Text string // display text, for EventReasoning and EventCode
}

// Interpreter turns one raw engine log line into zero or more display
// events. Implementations must never fail on malformed input; the progress
// stream is a best-effort display enhancement, not core functionality.
type Interpreter interface {
	Interpret(line string) []Event
}

const (
	iterationMarker = "RLM iteration"
	reasoningMarker = "Reasoning:"
	codeMarker      = "Code:"

	maxReasoningChars = 500
	maxCodeChars      = 800
)

// RLMInterpreter parses the engine's informal iteration progress format:
// a header like "RLM iteration 3/20", then an optional body carrying
// "Reasoning:" and "Code:" sections. Lines that don't match produce no
// events; partial matches produce whatever was parsed.
type RLMInterpreter struct{}

func (RLMInterpreter) Interpret(line string) []Event {
	if !strings.Contains(line, iterationMarker) {
		return nil
	}
	header, body, hasBody := strings.Cut(line, "\n")

	var events []Event
	if step, ok := parseIterationStep(header); ok {
		events = append(events, Event{Kind: EventIterationStart, Step: step})
	}
	if !hasBody || !strings.Contains(body, reasoningMarker) {
		return events
	}

	reasoning := body[strings.Index(body, reasoningMarker)+len(reasoningMarker):]
	var code string
	if idx := strings.Index(reasoning, codeMarker); idx >= 0 {
		code = reasoning[idx+len(codeMarker):]
		reasoning = reasoning[:idx]
	}

	if r := strings.TrimSpace(reasoning); r != "" {
		events = append(events, Event{
			Kind: EventReasoning,
			Text: truncateDisplay(r, maxReasoningChars, "..."),
		})
	}
	if c := strings.TrimSpace(stripCodeFence(strings.TrimSpace(code))); c != "" {
		events = append(events, Event{
			Kind: EventCode,
			Text: truncateDisplay(c, maxCodeChars, "\n# ... (truncated)"),
		})
	}
	return events
}

// parseIterationStep reads the step number out of a header like
// "RLM iteration 3/20": the text after "iteration", before the "/".
func parseIterationStep(header string) (int, bool) {
	_, after, found := strings.Cut(header, "iteration")
	if !found {
		return 0, false
	}
	numPart, _, _ := strings.Cut(after, "/")
	n, err := strconv.Atoi(strings.TrimSpace(numPart))
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}

// stripCodeFence removes a surrounding fenced-code-block marker, with an
// optional language name on the opening fence.
func stripCodeFence(code string) string {
	if strings.HasPrefix(code, "```") {
		if nl := strings.IndexByte(code, '\n'); nl >= 0 {
			code = code[nl+1:]
		} else {
			code = strings.TrimPrefix(code, "```")
		}
	}
	code = strings.TrimSpace(code)
	return strings.TrimSuffix(code, "```")
}

// truncateDisplay caps s for display only; the marker flags the cut.
func truncateDisplay(s string, max int, marker string) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + marker
}
