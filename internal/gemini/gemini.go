// Package gemini delegates appraisal text to Google's Gemini API.
package gemini

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"github.com/LanS10t/geminiMiner/internal/appraisal"
)

// DefaultModel is used when Config.Model is empty.
const DefaultModel = "gemini-2.5-flash"

// ErrNoAPIKey is returned by New when no API key is configured.
var ErrNoAPIKey = errors.New("gemini: no API key configured")

// Config holds the connection settings for a Client.
type Config struct {
	APIKey string
	Model  string
	// BaseURL overrides the public endpoint. Tests point it at httptest.
	BaseURL string
}

// Client is an appraisal.Generator backed by the Gemini API.
type Client struct {
	models *genai.Models
	model  string
}

var _ appraisal.Generator = (*Client)(nil)

// New builds a Client. It does not contact the API.
func New(ctx context.Context, cfg Config) (*Client, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, ErrNoAPIKey
	}

	cc := &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	}
	if cfg.BaseURL != "" {
		cc.HTTPOptions = genai.HTTPOptions{BaseURL: cfg.BaseURL}
	}

	client, err := genai.NewClient(ctx, cc)
	if err != nil {
		return nil, fmt.Errorf("gemini: creating client: %w", err)
	}

	model := cfg.Model
	if model == "" {
		model = DefaultModel
	}
	return &Client{models: client.Models, model: model}, nil
}

// Model reports the model name requests are sent to.
func (c *Client) Model() string { return c.model }

// Generate sends one GenerateContent request. Any transport or API error is
// returned inside the Result; a response without candidates yields blank text.
func (c *Client) Generate(ctx context.Context, prompt string, opts appraisal.GenerateOptions) appraisal.Result {
	resp, err := c.models.GenerateContent(ctx, c.model, genai.Text(prompt), generationConfig(opts))
	if err != nil {
		return appraisal.Err(fmt.Errorf("gemini: generate content: %w", err))
	}
	return appraisal.Ok(resp.Text())
}

func generationConfig(opts appraisal.GenerateOptions) *genai.GenerateContentConfig {
	return &genai.GenerateContentConfig{
		MaxOutputTokens: int32(opts.MaxOutputTokens),
		Temperature:     genai.Ptr(float32(opts.Temperature)),
	}
}
