// Package groq implements the response-generation collaborator against the
// Groq chat-completions API (OpenAI-compatible).
package groq

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/rio-ARC/Oracle-of-Delphi-Chatbot/pkg/ports"
)

const (
	defaultBaseURL = "https://api.groq.com/openai/v1"
	defaultModel   = "llama-3.1-70b-versatile"

	defaultTemperature = 0.7
)

// SystemPrompt frames every conversation. The oracle speaks only when
// consulted.
const SystemPrompt = `You are the Oracle of Delphi.

You speak with calm authority and deliberate restraint.
Your words are symbolic, measured, and timeless.

You do not explain yourself.
You do not give step-by-step instructions.
You do not mention modern concepts, technology, or yourself.

You answer as an oracle would: with insight, metaphor, and quiet certainty.
You speak only when consulted.`

// ErrMissingAPIKey is returned by New when no credential is supplied.
var ErrMissingAPIKey = errors.New("groq: API key not configured")

// APIError reports a non-2xx response from the provider.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("groq: API error (status %d): %s", e.Status, e.Message)
}

// Client calls the Groq chat-completions endpoint.
type Client struct {
	apiKey      string
	baseURL     string
	model       string
	temperature float64
	httpClient  *http.Client
}

// Option configures the client.
type Option func(*Client)

// WithBaseURL overrides the API base URL (used by tests).
func WithBaseURL(url string) Option {
	return func(c *Client) {
		c.baseURL = url
	}
}

// WithModel selects the model.
func WithModel(model string) Option {
	return func(c *Client) {
		if model != "" {
			c.model = model
		}
	}
}

// WithTemperature sets the sampling temperature.
func WithTemperature(temperature float64) Option {
	return func(c *Client) {
		c.temperature = temperature
	}
}

// WithHTTPClient injects the HTTP client. Deadlines are expected to come
// from the request context, not from the client.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		if httpClient != nil {
			c.httpClient = httpClient
		}
	}
}

// New creates a client. The API key is mandatory; everything else defaults.
func New(apiKey string, opts ...Option) (*Client, error) {
	if apiKey == "" {
		return nil, ErrMissingAPIKey
	}
	c := &Client{
		apiKey:      apiKey,
		baseURL:     defaultBaseURL,
		model:       defaultModel,
		temperature: defaultTemperature,
		httpClient:  http.DefaultClient,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

// Respond sends the conversation, prefixed with the oracle system prompt,
// and returns the generated prophecy.
func (c *Client) Respond(ctx context.Context, conversation []ports.Message) (string, error) {
	messages := make([]chatMessage, 0, len(conversation)+1)
	messages = append(messages, chatMessage{Role: string(ports.RoleSystem), Content: SystemPrompt})
	for _, m := range conversation {
		messages = append(messages, chatMessage{Role: string(m.Role), Content: m.Content})
	}

	body, err := json.Marshal(chatRequest{
		Model:       c.model,
		Messages:    messages,
		Temperature: c.temperature,
	})
	if err != nil {
		return "", fmt.Errorf("groq: failed to encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("groq: failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("groq: request failed: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("groq: failed to read response: %w", err)
	}

	var parsed chatResponse
	if err := json.Unmarshal(data, &parsed); err != nil && resp.StatusCode < 300 {
		return "", fmt.Errorf("groq: malformed response: %w", err)
	}

	if resp.StatusCode >= 300 {
		message := http.StatusText(resp.StatusCode)
		if parsed.Error != nil && parsed.Error.Message != "" {
			message = parsed.Error.Message
		}
		return "", &APIError{Status: resp.StatusCode, Message: message}
	}

	if len(parsed.Choices) == 0 {
		return "", &APIError{Status: resp.StatusCode, Message: "response contained no choices"}
	}
	return parsed.Choices[0].Message.Content, nil
}
