// Package testgen generates tests from study materials through an
// OpenAI-compatible chat-completions endpoint (LM Studio and friends).
// The call is pure I/O: it reads a local material file and talks to the
// inference server, never touching the database.
package testgen

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	"anoa.com/tutorcabinet/pkg/logger"
)

const (
	defaultTemperature = 0.1
	defaultMaxTokens   = 4000
)

type Config struct {
	// BaseURL of the inference server, e.g. "http://127.0.0.1:12345".
	BaseURL string
	Model   string
	// Timeout bounds one attempt. Generation on a long material is slow;
	// ~240s is a realistic ceiling.
	Timeout time.Duration
	// MaxRetries bounds retries after the first attempt (2 => 3 attempts).
	MaxRetries int
	Materials  MaterialSource
}

type Client struct {
	httpClient *http.Client
	baseURL    string
	model      string
	maxRetries int
	materials  MaterialSource
	log        *logger.Logger
}

func NewClient(cfg Config, log *logger.Logger) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: cfg.Timeout},
		baseURL:    strings.TrimSuffix(cfg.BaseURL, "/"),
		model:      cfg.Model,
		maxRetries: cfg.MaxRetries,
		materials:  cfg.Materials,
		log:        log,
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// GenerateTest builds a prompt from the named material and asks the model
// for a test. On failure the returned error is always a *Error; transient
// failures (connection, timeout, 503) are retried immediately up to the
// configured bound, everything else fails fast.
func (c *Client) GenerateTest(ctx context.Context, materialName string) (string, error) {
	material, err := c.materials.Load(materialName)
	if err != nil {
		return "", asGenerationError(err)
	}

	payload := chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: buildPrompt(material)},
		},
		Temperature: defaultTemperature,
		MaxTokens:   defaultMaxTokens,
	}

	var lastErr *Error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		content, genErr := c.attempt(ctx, payload)
		if genErr == nil {
			return content, nil
		}

		lastErr = genErr
		if !genErr.Kind.Retriable() {
			return "", genErr
		}

		c.log.Warn("test generation attempt failed",
			"material", materialName,
			"attempt", attempt+1,
			"kind", genErr.Kind.String(),
		)
	}

	return "", lastErr
}

func (c *Client) attempt(ctx context.Context, payload chatRequest) (string, *Error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return "", &Error{Kind: KindUnknown, Detail: "encoding request", Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", &Error{Kind: KindUnknown, Detail: "building request", Err: err}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", classifyTransportError(err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusServiceUnavailable:
		return "", &Error{Kind: KindModelUnavailable}
	case http.StatusNotFound:
		return "", &Error{Kind: KindModelNotFound, Detail: c.model}
	case http.StatusInternalServerError:
		return "", &Error{Kind: KindServerError}
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", &Error{Kind: KindUnknown, Detail: fmt.Sprintf("unexpected status %d", resp.StatusCode)}
	}

	var parsed chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", &Error{Kind: KindUnknown, Detail: "decoding response", Err: err}
	}

	if len(parsed.Choices) == 0 {
		return "", &Error{Kind: KindEmptyResponse}
	}
	content := strings.TrimSpace(parsed.Choices[0].Message.Content)
	if content == "" {
		return "", &Error{Kind: KindEmptyResponse}
	}

	return content, nil
}

func classifyTransportError(err error) *Error {
	if errors.Is(err, context.DeadlineExceeded) {
		return &Error{Kind: KindTimeout, Err: err}
	}

	var nerr net.Error
	if errors.As(err, &nerr) && nerr.Timeout() {
		return &Error{Kind: KindTimeout, Err: err}
	}

	return &Error{Kind: KindConnectionFailed, Err: err}
}

func asGenerationError(err error) *Error {
	var genErr *Error
	if errors.As(err, &genErr) {
		return genErr
	}
	return &Error{Kind: KindUnknown, Err: err}
}
