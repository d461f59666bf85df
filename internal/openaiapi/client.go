// Package openaiapi implements completion.Completer on the OpenAI
// legacy completions endpoint.
package openaiapi

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/metalagman/completest/internal/completion"
	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/rs/zerolog/log"
)

// Client sends text-completion requests to an OpenAI-compatible base URL.
type Client struct {
	cfg    Config
	client openai.Client
}

var _ completion.Completer = (*Client)(nil)

// NewClient constructs a new OpenAI API client. Automatic retries are disabled.
func NewClient(cfg Config, httpClient *http.Client) (*Client, error) {
	apiKey := strings.TrimSpace(cfg.APIKey)
	if apiKey == "" {
		return nil, fmt.Errorf("openai api key is required")
	}

	baseURL := strings.TrimSpace(cfg.BaseURL)
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	opts := []option.RequestOption{
		option.WithAPIKey(apiKey),
		option.WithBaseURL(baseURL),
		option.WithRequestTimeout(timeout),
		option.WithMaxRetries(0),
	}
	if org := strings.TrimSpace(cfg.Organization); org != "" {
		opts = append(opts, option.WithOrganization(org))
	}
	if httpClient != nil {
		opts = append(opts, option.WithHTTPClient(httpClient))
	}

	return &Client{
		cfg: Config{
			BaseURL:      baseURL,
			Organization: cfg.Organization,
			Timeout:      timeout,
		},
		client: openai.NewClient(opts...),
	}, nil
}

// Complete executes a single completions request.
func (c *Client) Complete(ctx context.Context, req completion.Request) (completion.Response, error) {
	requestID := uuid.NewString()
	log.Debug().
		Str("request_id", requestID).
		Str("base_url", c.cfg.BaseURL).
		Dur("timeout", c.cfg.Timeout).
		Msg("sending completions request")

	resp, err := c.client.Completions.New(ctx, openai.CompletionNewParams{
		Model: openai.CompletionNewParamsModel(req.Model),
		Prompt: openai.CompletionNewParamsPromptUnion{
			OfString: openai.String(req.Prompt),
		},
		Temperature: openai.Float(req.Temperature),
		MaxTokens:   openai.Int(req.MaxTokens),
	}, option.WithHeader(requestIDHeader, requestID))
	if err != nil {
		return completion.Response{}, fmt.Errorf("openai completions.create (request %s): %w", requestID, err)
	}

	out := completion.Response{
		ID:      resp.ID,
		Model:   resp.Model,
		Choices: make([]completion.Choice, 0, len(resp.Choices)),
		Usage: completion.Usage{
			PromptTokens:     resp.Usage.PromptTokens,
			CompletionTokens: resp.Usage.CompletionTokens,
			TotalTokens:      resp.Usage.TotalTokens,
		},
	}
	for _, choice := range resp.Choices {
		out.Choices = append(out.Choices, completion.Choice{
			Index:        choice.Index,
			Text:         choice.Text,
			FinishReason: string(choice.FinishReason),
		})
	}
	return out, nil
}
