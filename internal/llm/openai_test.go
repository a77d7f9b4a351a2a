package llm

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const completionBody = `{
  "id": "chatcmpl-1",
  "object": "chat.completion",
  "created": 1700000000,
  "model": "gemini-2.5-flash",
  "choices": [{"index": 0, "finish_reason": "stop", "message": {"role": "assistant", "content": "# Outline"}}]
}`

type capturedCall struct {
	path string
	body map[string]any
}

func newProvider(t *testing.T, status int, body string) (*httptest.Server, *atomic.Int32, *capturedCall) {
	t.Helper()
	var hits atomic.Int32
	captured := &capturedCall{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		captured.path = r.URL.Path
		_ = json.NewDecoder(r.Body).Decode(&captured.body)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv, &hits, captured
}

func newTestClient(t *testing.T, key, baseURL string) *OpenAIClient {
	t.Helper()
	c, err := NewOpenAIClient(key, baseURL)
	require.NoError(t, err)
	return c
}

func firstMessage(t *testing.T, body map[string]any) map[string]any {
	t.Helper()
	msgs, ok := body["messages"].([]any)
	require.True(t, ok, "messages missing: %v", body)
	require.Len(t, msgs, 1)
	return msgs[0].(map[string]any)
}

func TestSendFreeText(t *testing.T) {
	srv, hits, captured := newProvider(t, http.StatusOK, completionBody)
	c := newTestClient(t, "real-key", srv.URL+"/v1/")

	resp, err := c.Send(context.Background(), Request{Model: "gemini-2.5-flash", Prompt: "hello", Format: FreeText})
	require.NoError(t, err)

	assert.Equal(t, "# Outline", resp.Text)
	assert.Equal(t, int32(1), hits.Load())
	assert.Equal(t, "/v1/chat/completions", captured.path)
	assert.Equal(t, "gemini-2.5-flash", captured.body["model"])
	assert.NotContains(t, captured.body, "response_format")
	assert.NotContains(t, captured.body, "reasoning_effort")

	msg := firstMessage(t, captured.body)
	assert.Equal(t, "user", msg["role"])
	assert.Equal(t, "hello", msg["content"])
}

func TestSendStructuredWithReasoning(t *testing.T) {
	srv, _, captured := newProvider(t, http.StatusOK, completionBody)
	c := newTestClient(t, "real-key", srv.URL+"/v1/")

	_, err := c.Send(context.Background(), Request{
		Model:         "gemini-3-pro-preview",
		Prompt:        "topics",
		Format:        StructuredJSON,
		DeepReasoning: true,
	})
	require.NoError(t, err)

	rf, ok := captured.body["response_format"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "json_object", rf["type"])
	assert.Equal(t, "high", captured.body["reasoning_effort"])
}

func TestSendAttachments(t *testing.T) {
	tests := []struct {
		name     string
		mimeType string
		check    func(t *testing.T, part map[string]any)
	}{
		{
			name:     "mp3 as input audio",
			mimeType: "audio/mpeg",
			check: func(t *testing.T, part map[string]any) {
				assert.Equal(t, "input_audio", part["type"])
				audio := part["input_audio"].(map[string]any)
				assert.Equal(t, "QUJD", audio["data"])
				assert.Equal(t, "mp3", audio["format"])
			},
		},
		{
			name:     "m4a as data url file",
			mimeType: "audio/mp4",
			check: func(t *testing.T, part map[string]any) {
				assert.Equal(t, "file", part["type"])
				file := part["file"].(map[string]any)
				assert.Equal(t, "data:audio/mp4;base64,QUJD", file["file_data"])
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv, _, captured := newProvider(t, http.StatusOK, completionBody)
			c := newTestClient(t, "real-key", srv.URL+"/v1/")

			_, err := c.Send(context.Background(), Request{
				Model:       "gemini-2.5-flash",
				Prompt:      "summarize",
				Attachments: []Attachment{{MimeType: tt.mimeType, Data: "QUJD"}},
			})
			require.NoError(t, err)

			parts, ok := firstMessage(t, captured.body)["content"].([]any)
			require.True(t, ok)
			require.Len(t, parts, 2)
			tt.check(t, parts[0].(map[string]any))
			text := parts[1].(map[string]any)
			assert.Equal(t, "text", text["type"])
			assert.Equal(t, "summarize", text["text"])
		})
	}
}

func TestSendMissingCredentialSkipsNetwork(t *testing.T) {
	for _, key := range []string{"", "   ", PlaceholderAPIKey, "undefined"} {
		t.Run("key="+key, func(t *testing.T) {
			srv, hits, _ := newProvider(t, http.StatusOK, completionBody)
			c := newTestClient(t, key, srv.URL+"/v1/")

			_, err := c.Send(context.Background(), Request{Model: "m", Prompt: "p"})

			assert.ErrorIs(t, err, ErrMissingCredential)
			assert.Equal(t, int32(0), hits.Load())
		})
	}
}

func TestSendProviderErrorIsNotRetried(t *testing.T) {
	srv, hits, _ := newProvider(t, http.StatusTooManyRequests,
		`{"error":{"message":"Resource has been exhausted (e.g. check quota).","type":"RESOURCE_EXHAUSTED","code":"429"}}`)
	c := newTestClient(t, "real-key", srv.URL+"/v1/")

	_, err := c.Send(context.Background(), Request{Model: "m", Prompt: "p"})

	var pe *ProviderError
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, http.StatusTooManyRequests, pe.StatusCode)
	assert.Contains(t, strings.ToLower(pe.Error()), "quota")
	assert.Equal(t, int32(1), hits.Load())
}

func TestSendTransportFailure(t *testing.T) {
	srv, _, _ := newProvider(t, http.StatusOK, completionBody)
	base := srv.URL + "/v1/"
	srv.Close()
	c := newTestClient(t, "real-key", base)

	_, err := c.Send(context.Background(), Request{Model: "m", Prompt: "p"})

	var pe *ProviderError
	require.True(t, errors.As(err, &pe))
	assert.Zero(t, pe.StatusCode)
}

func TestSendNoChoices(t *testing.T) {
	srv, _, _ := newProvider(t, http.StatusOK,
		`{"id":"x","object":"chat.completion","created":1,"model":"m","choices":[]}`)
	c := newTestClient(t, "real-key", srv.URL+"/v1/")

	resp, err := c.Send(context.Background(), Request{Model: "m", Prompt: "p"})
	require.NoError(t, err)
	assert.Empty(t, resp.Text)
}

func TestNewOpenAIClientRejectsBadBaseURL(t *testing.T) {
	_, err := NewOpenAIClient("k", "::not a url")
	assert.Error(t, err)
}

func TestModelsFor(t *testing.T) {
	m := Models{RoleText: "flash", RoleReasoning: "pro"}
	assert.Equal(t, "pro", m.For(RoleReasoning))
	assert.Equal(t, "flash", m.For(RoleMultimodal))
}
