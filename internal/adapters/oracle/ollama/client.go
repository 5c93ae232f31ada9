package ollama

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"mood-journal/internal/platform/httpclient"
	"mood-journal/internal/ports/oracle"
)

var ErrUpstream = errors.New("ollama upstream error")

type Config struct {
	BaseURL     string // ej: http://localhost:11434
	Model       string
	APIKey      string // opcional (proxies con auth)
	Timeout     time.Duration
	Temperature float64
}

// Client genera anotaciones contra /api/chat de un servidor Ollama-compatible.
type Client struct {
	http        *httpclient.Client
	model       string
	temperature float64
}

var _ oracle.Annotator = (*Client)(nil)

func NewClient(cfg Config) (*Client, error) {
	if strings.TrimSpace(cfg.BaseURL) == "" {
		return nil, errors.New("ollama: base url required")
	}
	model := strings.TrimSpace(cfg.Model)
	if model == "" {
		model = "llama3"
	}

	headers := map[string]string{}
	if k := strings.TrimSpace(cfg.APIKey); k != "" {
		headers["Authorization"] = "Bearer " + k
	}

	hc, err := httpclient.New(httpclient.Options{
		BaseURL: cfg.BaseURL,
		Timeout: cfg.Timeout,
		Headers: headers,
	})
	if err != nil {
		return nil, err
	}

	return &Client{http: hc, model: model, temperature: cfg.Temperature}, nil
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatOptions struct {
	Temperature float64 `json:"temperature,omitempty"`
	NumPredict  int     `json:"num_predict,omitempty"`
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
	Stream   bool          `json:"stream"`
	Options  *chatOptions  `json:"options,omitempty"`
}

type chatResponse struct {
	Model   string      `json:"model"`
	Message chatMessage `json:"message"`
	Done    bool        `json:"done"`
}

func (c *Client) Annotate(ctx context.Context, req oracle.Request) (string, error) {
	payload := chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: oracle.SystemPrompt},
			{Role: "user", Content: req.Text},
		},
		Stream: false,
		Options: &chatOptions{
			Temperature: c.temperature,
			NumPredict:  200,
		},
	}

	var out chatResponse
	if err := c.http.DoJSON(ctx, http.MethodPost, "/api/chat", nil, payload, &out); err != nil {
		return "", fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	return strings.TrimSpace(out.Message.Content), nil
}
