// Package completion defines the single text-completion exchange and the
// capability used to perform it.
package completion

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/rs/zerolog/log"
)

// Fixed request parameters.
const (
	Model       = "text-davinci-003"
	Prompt      = "Say this is a test"
	Temperature = 0.0
	MaxTokens   = 7
)

// ErrNoChoices is returned when the endpoint answers with an empty choice list.
var ErrNoChoices = errors.New("completion response contains no choices")

// Completer sends one completion request.
type Completer interface {
	Complete(ctx context.Context, req Request) (Response, error)
}

// Request is a single completion request.
type Request struct {
	Model       string
	Prompt      string
	Temperature float64
	MaxTokens   int64
}

// Response is the part of a completion response the tool reads.
type Response struct {
	ID      string
	Model   string
	Choices []Choice
	Usage   Usage
}

// Choice is one generated candidate.
type Choice struct {
	Index        int64
	Text         string
	FinishReason string
}

// Usage reports token accounting.
type Usage struct {
	PromptTokens     int64
	CompletionTokens int64
	TotalTokens      int64
}

// DefaultRequest returns the request sent on every run.
func DefaultRequest() Request {
	return Request{
		Model:       Model,
		Prompt:      Prompt,
		Temperature: Temperature,
		MaxTokens:   MaxTokens,
	}
}

// FirstText returns the text of the first choice, untrimmed.
func FirstText(resp Response) (string, error) {
	if len(resp.Choices) == 0 {
		return "", ErrNoChoices
	}
	return resp.Choices[0].Text, nil
}

// Run sends DefaultRequest once and writes the first choice's text to w.
// Nothing is written when the call or extraction fails.
func Run(ctx context.Context, c Completer, w io.Writer) error {
	req := DefaultRequest()
	log.Debug().
		Str("model", req.Model).
		Float64("temperature", req.Temperature).
		Int64("max_tokens", req.MaxTokens).
		Msg("requesting completion")

	resp, err := c.Complete(ctx, req)
	if err != nil {
		return fmt.Errorf("request completion: %w", err)
	}

	text, err := FirstText(resp)
	if err != nil {
		return err
	}

	log.Debug().
		Str("id", resp.ID).
		Int("choices", len(resp.Choices)).
		Str("finish_reason", resp.Choices[0].FinishReason).
		Int64("total_tokens", resp.Usage.TotalTokens).
		Msg("completion received")

	if _, err := fmt.Fprintln(w, text); err != nil {
		return fmt.Errorf("write completion: %w", err)
	}
	return nil
}
