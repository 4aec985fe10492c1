// Package provider backs the reasoning engine's models with the OpenAI
// Responses API.
package provider

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/responses"
	"github.com/smhanov/laconic"
)

// OpenAI adapts one named model to laconic's LLMProvider contract.
type OpenAI struct {
	client *openai.Client
	model  string
}

// NewOpenAI wraps client for calls against model.
func NewOpenAI(client *openai.Client, model string) *OpenAI {
	return &OpenAI{client: client, model: model}
}

// Generate issues a single Responses API call. Failures are returned to the
// caller once; retrying is deliberately not done here.
func (p *OpenAI) Generate(ctx context.Context, systemPrompt, userPrompt string) (laconic.LLMResponse, error) {
	if p.client == nil {
		return laconic.LLMResponse{}, errors.New("provider: client is nil")
	}
	if p.model == "" {
		return laconic.LLMResponse{}, errors.New("provider: model is empty")
	}

	params := responses.ResponseNewParams{
		Model:           p.model,
		MaxOutputTokens: openai.Int(1500),
		Instructions:    openai.String(systemPrompt),
		Input: responses.ResponseNewParamsInputUnion{
			OfInputItemList: []responses.ResponseInputItemUnionParam{
				responses.ResponseInputItemParamOfMessage(userPrompt, responses.EasyInputMessageRoleUser),
			},
		},
	}

	resp, err := p.client.Responses.New(ctx, params)
	if err != nil {
		return laconic.LLMResponse{}, err
	}
	return laconic.LLMResponse{Text: strings.TrimSpace(resp.OutputText())}, nil
}

type sourcesPayload struct {
	Sources []string `json:"sources" jsonschema_description:"Titles of the transcripts that directly support the answer"`
}

var sourcesSchema = GenerateSchema[sourcesPayload]()

const sourcePickerPrompt = `You attribute answers to their sources.

You will receive a question, the answer that was produced, and the list of
transcript titles that were consulted while producing it.

Return a JSON object listing only the consulted titles that directly support
statements in the answer. Use the titles exactly as given. If none of them
support the answer, return an empty list. Do not invent titles.`

// SourcePicker asks a model to keep only the consulted transcript titles
// that support the answer, via a structured-output call.
type SourcePicker struct {
	client *openai.Client
	model  string
}

// NewSourcePicker wraps client for selection calls against model, normally
// the engine's cheaper secondary model.
func NewSourcePicker(client *openai.Client, model string) *SourcePicker {
	return &SourcePicker{client: client, model: model}
}

// Select implements engine.SourceSelector.
func (p *SourcePicker) Select(ctx context.Context, question, answer string, candidates []string) ([]string, error) {
	if p.client == nil {
		return nil, errors.New("provider: client is nil")
	}
	if p.model == "" {
		return nil, errors.New("provider: model is empty")
	}
	if len(candidates) == 0 {
		return nil, nil
	}

	format := responses.ResponseFormatTextConfigUnionParam{
		OfJSONSchema: &responses.ResponseFormatTextJSONSchemaConfigParam{
			Name:        "SupportingSources",
			Schema:      sourcesSchema,
			Strict:      openai.Bool(true),
			Description: openai.String("Supporting source titles JSON"),
			Type:        "json_schema",
		},
	}
	params := responses.ResponseNewParams{
		Model:           p.model,
		MaxOutputTokens: openai.Int(400),
		Instructions:    openai.String(sourcePickerPrompt),
		Input: responses.ResponseNewParamsInputUnion{
			OfInputItemList: []responses.ResponseInputItemUnionParam{
				responses.ResponseInputItemParamOfMessage(buildSourcesInput(question, answer, candidates), responses.EasyInputMessageRoleUser),
			},
		},
		Text: responses.ResponseTextConfigParam{
			Format: format,
		},
	}

	resp, err := p.client.Responses.New(ctx, params)
	if err != nil {
		return nil, err
	}

	var out sourcesPayload
	if err := decodeModelJSON(resp.OutputText(), &out); err != nil {
		return nil, fmt.Errorf("unmarshal sources: %w", err)
	}
	return filterSources(out.Sources, candidates), nil
}

func buildSourcesInput(question, answer string, candidates []string) string {
	var b strings.Builder
	b.WriteString("Question:\n")
	b.WriteString(question)
	b.WriteString("\n\nAnswer:\n")
	b.WriteString(answer)
	b.WriteString("\n\nConsulted transcript titles:\n")
	for _, title := range candidates {
		b.WriteString("- ")
		b.WriteString(title)
		b.WriteString("\n")
	}
	return b.String()
}

// filterSources keeps the model's picks that name a real candidate,
// preserving the model's order and dropping duplicates.
func filterSources(picked, candidates []string) []string {
	known := make(map[string]bool, len(candidates))
	for _, c := range candidates {
		known[c] = true
	}
	var out []string
	for _, p := range picked {
		p = strings.TrimSpace(p)
		if known[p] {
			known[p] = false
			out = append(out, p)
		}
	}
	return out
}

// decodeModelJSON unmarshals JSON from a model response, with a small amount
// of robustness for cases where the model wraps the JSON in extra text or
// returns leading/trailing whitespace.
func decodeModelJSON(outputText string, v any) error {
	s := strings.TrimSpace(outputText)
	if s == "" {
		return io.ErrUnexpectedEOF
	}

	if err := json.Unmarshal([]byte(s), v); err == nil {
		return nil
	}

	start := strings.IndexByte(s, '{')
	end := strings.LastIndexByte(s, '}')
	if start == -1 || end == -1 || end <= start {
		return fmt.Errorf("no JSON object found in model output (len=%d)", len(s))
	}
	sub := s[start : end+1]
	if err := json.Unmarshal([]byte(sub), v); err != nil {
		return fmt.Errorf("failed to unmarshal extracted JSON (len=%d): %w", len(sub), err)
	}
	return nil
}
