package openaiapi

import "time"

const (
	defaultBaseURL = "https://api.openai.com/v1"
	defaultTimeout = 60 * time.Second

	requestIDHeader = "X-Client-Request-Id"
)

// Config is OpenAI API client configuration.
type Config struct {
	APIKey       string
	BaseURL      string
	Organization string
	Timeout      time.Duration
}
