// Package gemini parses free text into task drafts with Google's Gemini
// models through the Generative Language API.
package gemini

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/api/option"
	htransport "google.golang.org/api/transport/http"
	"google.golang.org/genai"

	"tableflip.dev/lumina/pkg/config"
	"tableflip.dev/lumina/pkg/day"
	"tableflip.dev/lumina/pkg/draft"
)

// Parser is a draft.Parser backed by models.generateContent.
type Parser struct {
	client *genai.Client
	model  string
}

var _ draft.Parser = (*Parser)(nil)

// New builds a parser from the gemini config section. Without an API key it
// returns draft.ErrUnconfigured.
func New(ctx context.Context, cfg config.GeminiConfig) (*Parser, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, draft.ErrUnconfigured
	}
	opts := []option.ClientOption{option.WithAPIKey(cfg.APIKey)}
	if cfg.Endpoint != "" {
		opts = append(opts, option.WithEndpoint(cfg.Endpoint))
	}
	hc, _, err := htransport.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("gemini: create transport: %w", err)
	}

	cc := &genai.ClientConfig{
		APIKey:     cfg.APIKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: hc,
	}
	if cfg.Endpoint != "" {
		cc.HTTPOptions.BaseURL = cfg.Endpoint
	}
	client, err := genai.NewClient(ctx, cc)
	if err != nil {
		return nil, fmt.Errorf("gemini: create client: %w", err)
	}

	model := strings.TrimPrefix(cfg.Model, "models/")
	if model == "" {
		model = config.DefaultModel
	}
	return &Parser{client: client, model: model}, nil
}

// Parse asks the model for a JSON draft of text.
func (p *Parser) Parse(ctx context.Context, text string, ref day.Date) (*draft.Draft, error) {
	gc := &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema:   responseSchema(),
	}
	resp, err := p.client.Models.GenerateContent(ctx, p.model, genai.Text(Prompt(text, ref)), gc)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", draft.ErrUnreachable, err)
	}

	var b strings.Builder
	for _, c := range resp.Candidates {
		if c == nil || c.Content == nil {
			continue
		}
		for _, part := range c.Content.Parts {
			if part != nil {
				b.WriteString(part.Text)
			}
		}
		break
	}
	return draft.Decode([]byte(b.String()))
}

// Prompt is the instruction sent with every request.
func Prompt(text string, ref day.Date) string {
	return fmt.Sprintf(`Parse the following task description and convert it into a structured JSON object.
Current reference date is %s.
Support multi-day tasks (ranges) and specific time durations.
If a task spans multiple days, provide an 'endDate'.
Only assign a 'priority' (low, medium, high) if the user explicitly mentions words like "urgent", "important", "low priority", etc. If not mentioned, omit the priority field.
Input: %q`, ref, text)
}

func responseSchema() *genai.Schema {
	str := func(desc string) *genai.Schema {
		return &genai.Schema{Type: genai.TypeString, Description: desc}
	}
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"title":       str("Brief title of the task"),
			"date":        str("Start date in ISO format YYYY-MM-DD"),
			"endDate":     str("End date in ISO format YYYY-MM-DD if it spans multiple days"),
			"startTime":   str("24h format HH:mm"),
			"endTime":     str("24h format HH:mm"),
			"priority":    {Type: genai.TypeString, Enum: []string{"low", "medium", "high"}},
			"description": str(""),
			"category":    str(""),
		},
		Required: []string{"title", "date"},
	}
}
