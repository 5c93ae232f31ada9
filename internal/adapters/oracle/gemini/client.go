package gemini

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"mood-journal/internal/ports/oracle"

	"google.golang.org/genai"
)

var ErrUpstream = errors.New("gemini upstream error")

type Config struct {
	APIKey      string
	Model       string
	Timeout     time.Duration
	Temperature float64
}

// generator es la parte de genai.Models que usamos (reemplazable en tests).
type generator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// Client genera anotaciones con Gemini vía google.golang.org/genai.
type Client struct {
	models      generator
	model       string
	timeout     time.Duration
	temperature float32
}

var _ oracle.Annotator = (*Client)(nil)

func NewClient(ctx context.Context, cfg Config) (*Client, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, errors.New("gemini: api key required")
	}

	gc, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  strings.TrimSpace(cfg.APIKey),
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("gemini: create client: %w", err)
	}

	return newClient(gc.Models, cfg), nil
}

func newClient(models generator, cfg Config) *Client {
	model := strings.TrimSpace(cfg.Model)
	if model == "" {
		model = "gemini-2.0-flash"
	}
	return &Client{
		models:      models,
		model:       model,
		timeout:     cfg.Timeout,
		temperature: float32(cfg.Temperature),
	}
}

func (c *Client) Annotate(ctx context.Context, req oracle.Request) (string, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	resp, err := c.models.GenerateContent(ctx, c.model,
		genai.Text(req.Text),
		&genai.GenerateContentConfig{
			SystemInstruction: genai.NewContentFromText(oracle.SystemPrompt, genai.RoleUser),
			Temperature:       genai.Ptr(c.temperature),
			MaxOutputTokens:   200,
		},
	)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	if resp == nil {
		return "", nil
	}
	return strings.TrimSpace(resp.Text()), nil
}
