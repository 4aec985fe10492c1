package qa

import (
	"strconv"
	"strings"
	"testing"
)

func TestFormatHistoryEmpty(t *testing.T) {
	t.Parallel()

	if got := FormatHistory(nil); got != "No previous conversation." {
		t.Fatalf("FormatHistory(nil)=%q", got)
	}
	if got := FormatHistory([]Exchange{}); got != "No previous conversation." {
		t.Fatalf("FormatHistory(empty)=%q", got)
	}
}

func TestFormatHistoryOrdering(t *testing.T) {
	t.Parallel()

	got := FormatHistory([]Exchange{
		{Question: "Q1?", Answer: "A1."},
		{Question: "Q2?", Answer: "A2."},
	})

	if !strings.HasPrefix(got, "Previous conversation:") {
		t.Fatalf("missing header: %q", got)
	}
	wantInOrder := []string{"Q1: Q1?", "A1: A1.", "Q2: Q2?", "A2: A2."}
	rest := got
	for _, marker := range wantInOrder {
		idx := strings.Index(rest, marker)
		if idx < 0 {
			t.Fatalf("marker %q missing or out of order in %q", marker, got)
		}
		rest = rest[idx+len(marker):]
	}
}

// The Qn/An markers must allow the original pairs to be recovered from the
// formatted block.
func TestFormatHistoryRoundTrip(t *testing.T) {
	t.Parallel()

	history := []Exchange{
		{Question: "What helps focus?", Answer: "Morning sunlight."},
		{Question: "And sleep?", Answer: "Keep a cool room."},
		{Question: "How long?", Answer: "About eight hours."},
	}
	formatted := FormatHistory(history)

	var recovered []Exchange
	for _, line := range strings.Split(formatted, "\n") {
		for i := range history {
			qPrefix := "Q" + strconv.Itoa(i+1) + ": "
			aPrefix := "A" + strconv.Itoa(i+1) + ": "
			if strings.HasPrefix(line, qPrefix) {
				recovered = append(recovered, Exchange{Question: strings.TrimPrefix(line, qPrefix)})
			}
			if strings.HasPrefix(line, aPrefix) && len(recovered) == i+1 {
				recovered[i].Answer = strings.TrimPrefix(line, aPrefix)
			}
		}
	}

	if len(recovered) != len(history) {
		t.Fatalf("recovered %d pairs, want %d", len(recovered), len(history))
	}
	for i := range history {
		if recovered[i] != history[i] {
			t.Fatalf("pair %d: got %+v want %+v", i+1, recovered[i], history[i])
		}
	}
}

func TestElide(t *testing.T) {
	t.Parallel()

	if got := elide("short", 200); got != "short" {
		t.Fatalf("elide(short)=%q", got)
	}
	long := strings.Repeat("a", 250)
	got := elide(long, 200)
	if len(got) != 203 || !strings.HasSuffix(got, "...") {
		t.Fatalf("elide long: len=%d suffix=%q", len(got), got[len(got)-3:])
	}
	exact := strings.Repeat("b", 200)
	if got := elide(exact, 200); got != exact {
		t.Fatalf("elide at limit changed the string")
	}
}
