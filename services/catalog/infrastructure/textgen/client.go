// Package textgen implements gateways.TextGenerator against an
// OpenAI-compatible completions endpoint.
package textgen

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/sony/gobreaker"
	"golang.org/x/time/rate"

	"github.com/ghuser/storecatalog/pkg/config"
	"github.com/ghuser/storecatalog/pkg/logger"
	"github.com/ghuser/storecatalog/pkg/telemetry"
	"github.com/ghuser/storecatalog/services/catalog/domain/gateways"
)

const maxResponseBytes = 1 << 20

// Options configures a Client.
type Options struct {
	URL           string
	APIKey        string
	Model         string
	MaxTokens     int
	Timeout       time.Duration
	RatePerMinute int // <= 0 disables client-side limiting
}

// OptionsFromConfig maps the TEXTGEN_* settings.
func OptionsFromConfig(cfg *config.Config) Options {
	return Options{
		URL:           cfg.TextGenAPIURL,
		APIKey:        cfg.TextGenAPIKey,
		Model:         cfg.TextGenModel,
		MaxTokens:     cfg.TextGenMaxTokens,
		Timeout:       cfg.TextGenTimeout,
		RatePerMinute: cfg.TextGenRatePerMinute,
	}
}

// Client calls the completions API. Transport failures trip a circuit breaker;
// errors reported by the API itself do not.
type Client struct {
	opts    Options
	http    *http.Client
	breaker *gobreaker.CircuitBreaker
	limiter *rate.Limiter
	log     logger.Logger
}

var _ gateways.TextGenerator = (*Client)(nil)

// NewClient builds a Client whose outbound requests are traced.
func NewClient(opts Options, log logger.Logger) *Client {
	c := &Client{
		opts: opts,
		http: &http.Client{
			Timeout:   opts.Timeout,
			Transport: telemetry.Transport(nil),
		},
		log: log,
	}
	if opts.RatePerMinute > 0 {
		c.limiter = rate.NewLimiter(rate.Every(time.Minute/time.Duration(opts.RatePerMinute)), opts.RatePerMinute)
	}
	c.breaker = gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "textgen",
		MaxRequests: 1,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		IsSuccessful: func(err error) bool {
			var genErr *gateways.GenerationError
			return err == nil || errors.As(err, &genErr) || errors.Is(err, gateways.ErrUnexpectedResponse)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Warn("circuit breaker state changed", "breaker", name, "from", from.String(), "to", to.String())
		},
	})
	return c
}

type completionRequest struct {
	Model     string `json:"model"`
	Prompt    string `json:"prompt"`
	MaxTokens int    `json:"max_tokens"`
}

type completionResponse struct {
	Choices []struct {
		Text string `json:"text"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

// Generate returns the first completion for prompt, trimmed.
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	if c.limiter != nil && !c.limiter.Allow() {
		return "", &gateways.GenerationError{Reason: "rate limit exceeded"}
	}

	c.log.DebugContext(ctx, "requesting text generation", "model", c.opts.Model, "prompt_len", len(prompt))
	out, err := c.breaker.Execute(func() (interface{}, error) {
		return c.complete(ctx, prompt)
	})
	if err != nil {
		return "", err
	}
	return out.(string), nil
}

func (c *Client) complete(ctx context.Context, prompt string) (string, error) {
	body, err := json.Marshal(completionRequest{
		Model:     c.opts.Model,
		Prompt:    prompt,
		MaxTokens: c.opts.MaxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("marshal completion request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.opts.URL, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build completion request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.opts.APIKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("call text service: %w", err)
	}
	defer resp.Body.Close() //nolint:errcheck

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return "", fmt.Errorf("read text service response: %w", err)
	}

	var parsed completionResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		c.log.ErrorContext(ctx, "text service returned malformed body", "status", resp.StatusCode, "error", err)
		return "", gateways.ErrUnexpectedResponse
	}
	if parsed.Error != nil {
		c.log.ErrorContext(ctx, "text service reported an error", "status", resp.StatusCode, "reason", parsed.Error.Message)
		return "", &gateways.GenerationError{Reason: parsed.Error.Message}
	}
	if len(parsed.Choices) == 0 {
		c.log.ErrorContext(ctx, "text service returned no choices", "status", resp.StatusCode)
		return "", gateways.ErrUnexpectedResponse
	}
	return strings.TrimSpace(parsed.Choices[0].Text), nil
}
