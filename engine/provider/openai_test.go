package provider

import (
	"context"
	"strings"
	"testing"
)

func TestSourcesSchemaIsStrict(t *testing.T) {
	t.Parallel()

	schema := GenerateSchema[sourcesPayload]()
	if got, ok := schema["additionalProperties"].(bool); !ok || got {
		t.Fatalf("additionalProperties=%v", schema["additionalProperties"])
	}
	required, ok := schema["required"].([]string)
	if !ok || len(required) != 1 || required[0] != "sources" {
		t.Fatalf("required=%v", schema["required"])
	}
	props, ok := schema["properties"].(map[string]interface{})
	if !ok {
		t.Fatalf("properties=%v", schema["properties"])
	}
	if _, ok := props["sources"]; !ok {
		t.Fatal("schema is missing the sources property")
	}
}

func TestDecodeModelJSON(t *testing.T) {
	t.Parallel()

	var out sourcesPayload
	if err := decodeModelJSON(`{"sources":["How to Focus"]}`, &out); err != nil {
		t.Fatalf("decode clean JSON: %v", err)
	}
	if len(out.Sources) != 1 || out.Sources[0] != "How to Focus" {
		t.Fatalf("Sources=%v", out.Sources)
	}

	out = sourcesPayload{}
	wrapped := "Here you go:\n```json\n{\"sources\":[\"Sleep Better\"]}\n```"
	if err := decodeModelJSON(wrapped, &out); err != nil {
		t.Fatalf("decode wrapped JSON: %v", err)
	}
	if len(out.Sources) != 1 || out.Sources[0] != "Sleep Better" {
		t.Fatalf("Sources=%v", out.Sources)
	}

	if err := decodeModelJSON("", &out); err == nil {
		t.Fatal("expected error for empty output")
	}
	if err := decodeModelJSON("no json here", &out); err == nil {
		t.Fatal("expected error for output without JSON")
	}
}

func TestFilterSources(t *testing.T) {
	t.Parallel()

	candidates := []string{"How to Focus", "Sleep Better"}
	got := filterSources([]string{"Sleep Better", "Made Up Title", " How to Focus ", "Sleep Better"}, candidates)
	if len(got) != 2 || got[0] != "Sleep Better" || got[1] != "How to Focus" {
		t.Fatalf("filterSources=%v", got)
	}

	if got := filterSources(nil, candidates); len(got) != 0 {
		t.Fatalf("filterSources(nil)=%v", got)
	}
}

func TestBuildSourcesInput(t *testing.T) {
	t.Parallel()

	input := buildSourcesInput("Q?", "A.", []string{"T1", "T2"})
	for _, want := range []string{"Question:\nQ?", "Answer:\nA.", "- T1\n", "- T2\n"} {
		if !strings.Contains(input, want) {
			t.Fatalf("input missing %q:\n%s", want, input)
		}
	}
}

func TestProvidersRequireClient(t *testing.T) {
	t.Parallel()

	if _, err := NewOpenAI(nil, "gpt-5").Generate(context.Background(), "s", "u"); err == nil {
		t.Fatal("expected error for nil client")
	}
	if _, err := NewSourcePicker(nil, "gpt-5-mini").Select(context.Background(), "q", "a", []string{"T"}); err == nil {
		t.Fatal("expected error for nil client")
	}
}
