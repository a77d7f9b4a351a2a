package llm

import (
	"context"
	"errors"
	"fmt"
)

// ResponseFormat selects how the provider is asked to shape its output.
type ResponseFormat int

const (
	FreeText ResponseFormat = iota
	StructuredJSON
)

func (f ResponseFormat) String() string {
	switch f {
	case StructuredJSON:
		return "structured_json"
	default:
		return "free_text"
	}
}

// Role is a logical model slot resolved to a concrete model id through Models.
type Role string

const (
	RoleText       Role = "text"
	RoleMultimodal Role = "multimodal"
	RoleReasoning  Role = "deep-reasoning"
)

// Models maps logical roles to concrete provider model identifiers.
type Models map[Role]string

// For returns the model for role, falling back to the text model.
func (m Models) For(role Role) string {
	if id, ok := m[role]; ok && id != "" {
		return id
	}
	return m[RoleText]
}

// Attachment is an inline binary payload carried with a request.
type Attachment struct {
	MimeType string
	Data     string // base64, standard encoding
}

// Request is a single model call. It is built fresh per intent and never reused.
type Request struct {
	Model         string
	Prompt        string
	Attachments   []Attachment
	Format        ResponseFormat
	DeepReasoning bool
}

// Response is the raw provider output. An empty Text means the provider returned no text.
type Response struct {
	Text string
}

// Client performs exactly one provider round trip per Send.
type Client interface {
	Send(ctx context.Context, req Request) (Response, error)
}

// ErrMissingCredential is returned before any network call when no usable credential is configured.
var ErrMissingCredential = errors.New("api key is missing or still set to the placeholder")

// ProviderError carries the status indicators of a failed provider call.
type ProviderError struct {
	StatusCode int
	Message    string
	Cause      error
}

func (e *ProviderError) Error() string {
	if e == nil {
		return ""
	}
	if e.StatusCode > 0 {
		return fmt.Sprintf("provider returned %d: %s", e.StatusCode, e.Message)
	}
	return "provider call failed: " + e.Message
}

func (e *ProviderError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Cause
}
