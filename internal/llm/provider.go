package llm

import (
	"context"
	"encoding/json"
)

// Provider is the abstraction every LLM backend implements.
// Callers send a Request and receive JSON content back.
type Provider interface {
	// Generate sends the request to the model. When req.Schema is set the
	// provider asks for structured output and validates the returned JSON
	// against the schema before handing it back.
	Generate(ctx context.Context, req Request) (*Response, error)

	// ModelID returns the model identifier the provider talks to.
	ModelID() string
}

// Request describes a single generation call.
type Request struct {
	// System is the system prompt.
	System string

	// Messages is the conversation. Question generation uses one user message.
	Messages []Message

	// Schema is the JSON Schema the response must conform to. When nil the
	// raw text is returned as Content.
	Schema *Schema

	// MaxTokens caps the response length.
	MaxTokens int

	// Temperature controls randomness, 0.0 - 1.0. Zero leaves the provider default.
	Temperature float64
}

// Message is one turn of the conversation.
type Message struct {
	Role    Role
	Content string
}

// Role is the message sender role.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Schema defines the JSON structure expected back.
type Schema struct {
	// Name identifies the schema (schema name for OpenAI, cache key for validation).
	Name string

	// Description is sent to the model to guide generation.
	Description string

	// Definition is the JSON Schema document.
	Definition map[string]any
}

// Response holds the model output.
type Response struct {
	// Content is the validated JSON object when a Schema was requested,
	// otherwise the raw text.
	Content json.RawMessage

	Usage Usage

	// Model is the model that actually served the request.
	Model string

	// StopReason is normalized to "end" or "max_tokens".
	StopReason string
}

// Usage reports token consumption for one request.
type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}

// completion is a backend's raw answer before the checks every provider
// shares.
type completion struct {
	content   json.RawMessage
	usage     Usage
	model     string
	truncated bool
}

// finish rejects truncated output, validates it against req.Schema when
// one was requested and builds the Response.
func finish(req Request, c completion) (*Response, error) {
	if c.truncated {
		return nil, &ErrMaxTokensExceeded{Content: c.content}
	}
	if err := Validate(req.Schema, c.content); err != nil {
		return nil, err
	}
	if c.usage.TotalTokens == 0 {
		c.usage.TotalTokens = c.usage.InputTokens + c.usage.OutputTokens
	}
	return &Response{
		Content:    c.content,
		Usage:      c.usage,
		Model:      c.model,
		StopReason: "end",
	}, nil
}
