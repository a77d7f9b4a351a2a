package llm

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"github.com/openai/openai-go/v3/shared"
)

const (
	// DefaultBaseURL is the provider's OpenAI-compatible endpoint.
	DefaultBaseURL = "https://generativelanguage.googleapis.com/v1beta/openai/"

	// PlaceholderAPIKey is the value shipped in sample env files.
	PlaceholderAPIKey = "PLACEHOLDER_API_KEY"
)

var placeholderKeys = map[string]bool{
	PlaceholderAPIKey: true,
	"undefined":       true,
}

// HasCredential reports whether key looks like a real credential.
func HasCredential(key string) bool {
	key = strings.TrimSpace(key)
	return key != "" && !placeholderKeys[key]
}

// OpenAIClient sends requests through the Chat Completions API of an OpenAI-compatible endpoint.
// It holds no per-call state and is safe for concurrent use.
type OpenAIClient struct {
	apiKey string
	client *openai.Client
}

// NewOpenAIClient builds a client against baseURL (DefaultBaseURL when empty). A missing key is
// not rejected here; Send reports it so callers get a classified failure per request.
// SDK retries are disabled: every Send is exactly one round trip.
func NewOpenAIClient(apiKey, baseURL string, opts ...option.RequestOption) (*OpenAIClient, error) {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if _, err := url.ParseRequestURI(baseURL); err != nil {
		return nil, fmt.Errorf("invalid base url %q: %w", baseURL, err)
	}
	reqOpts := []option.RequestOption{
		option.WithAPIKey(apiKey),
		option.WithBaseURL(baseURL),
		option.WithMaxRetries(0),
	}
	reqOpts = append(reqOpts, opts...)
	cli := openai.NewClient(reqOpts...)
	return &OpenAIClient{
		apiKey: apiKey,
		client: &cli,
	}, nil
}

func (c *OpenAIClient) Send(ctx context.Context, req Request) (Response, error) {
	if c == nil || c.client == nil {
		return Response{}, fmt.Errorf("nil openai client")
	}
	if !HasCredential(c.apiKey) {
		return Response{}, ErrMissingCredential
	}
	params := openai.ChatCompletionNewParams{
		Model:    openai.ChatModel(req.Model),
		Messages: buildMessages(req),
	}
	if req.Format == StructuredJSON {
		params.ResponseFormat = openai.ChatCompletionNewParamsResponseFormatUnion{
			OfJSONObject: &shared.ResponseFormatJSONObjectParam{},
		}
	}
	if req.DeepReasoning {
		params.ReasoningEffort = shared.ReasoningEffortHigh
	}
	resp, err := c.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return Response{}, wrapError(err)
	}
	if len(resp.Choices) == 0 {
		return Response{}, nil
	}
	return Response{Text: resp.Choices[0].Message.Content}, nil
}

func buildMessages(req Request) []openai.ChatCompletionMessageParamUnion {
	if len(req.Attachments) == 0 {
		return []openai.ChatCompletionMessageParamUnion{
			{
				OfUser: &openai.ChatCompletionUserMessageParam{
					Content: openai.ChatCompletionUserMessageParamContentUnion{
						OfString: openai.String(req.Prompt),
					},
				},
			},
		}
	}
	parts := make([]openai.ChatCompletionContentPartUnionParam, 0, len(req.Attachments)+1)
	for _, a := range req.Attachments {
		parts = append(parts, attachmentPart(a))
	}
	parts = append(parts, openai.TextContentPart(req.Prompt))
	return []openai.ChatCompletionMessageParamUnion{
		{
			OfUser: &openai.ChatCompletionUserMessageParam{
				Content: openai.ChatCompletionUserMessageParamContentUnion{
					OfArrayOfContentParts: parts,
				},
			},
		},
	}
}

// attachmentPart uses the input_audio part for formats the API names explicitly and a data URL
// file part for everything else (m4a, mp4, ogg...).
func attachmentPart(a Attachment) openai.ChatCompletionContentPartUnionParam {
	if format := audioFormat(a.MimeType); format != "" {
		return openai.InputAudioContentPart(openai.ChatCompletionContentPartInputAudioInputAudioParam{
			Data:   a.Data,
			Format: format,
		})
	}
	return openai.FileContentPart(openai.ChatCompletionContentPartFileFileParam{
		FileData: openai.String("data:" + a.MimeType + ";base64," + a.Data),
	})
}

func audioFormat(mimeType string) string {
	switch strings.ToLower(mimeType) {
	case "audio/mpeg", "audio/mp3":
		return "mp3"
	case "audio/wav", "audio/x-wav", "audio/wave":
		return "wav"
	default:
		return ""
	}
}

// wrapError keeps the status code of API errors so the classifier can match on it.
func wrapError(err error) error {
	var apiErr *openai.Error
	if errors.As(err, &apiErr) {
		msg := apiErr.Message
		if msg == "" {
			msg = apiErr.Error()
		}
		return &ProviderError{StatusCode: apiErr.StatusCode, Message: msg, Cause: err}
	}
	return &ProviderError{Message: err.Error(), Cause: err}
}
