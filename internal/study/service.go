package study

import (
	"context"
	"io"
	"log/slog"
	"time"

	"bible-hub/internal/llm"
	"bible-hub/internal/llmerr"
	"bible-hub/internal/media"
)

// Service runs intents end to end. Every failure it returns is an *llmerr.Error and no call is
// retried. It holds no mutable state, so independent intents may run concurrently.
type Service struct {
	builder Builder
	client  llm.Client
	log     *slog.Logger
}

func NewService(builder Builder, client llm.Client, log *slog.Logger) *Service {
	return &Service{builder: builder, client: client, log: log}
}

// Outline returns background material for a chapter as markdown.
func (s *Service) Outline(ctx context.Context, book, chapter string) (string, error) {
	resp, err := s.run(ctx, "outline", Outline{Book: book, Chapter: chapter})
	if err != nil {
		return "", err
	}
	return NormalizeText(resp), nil
}

// PastorInsight returns in-depth research material as markdown. An empty focus asks for general material.
func (s *Service) PastorInsight(ctx context.Context, book, chapter, focus string) (string, error) {
	resp, err := s.run(ctx, "pastor_insight", PastorInsight{Book: book, Chapter: chapter, Focus: focus})
	if err != nil {
		return "", err
	}
	return NormalizeText(resp), nil
}

// AudioSummary encodes the recording and returns the meeting digest as markdown.
func (s *Service) AudioSummary(ctx context.Context, r io.Reader, mimeType string) (string, error) {
	resp, err := s.run(ctx, "audio_summary", AudioSummary{Media: r, MimeType: mimeType})
	if err != nil {
		return "", err
	}
	return NormalizeText(resp), nil
}

// TopicSuggestions returns discussion topics. Output that does not parse yields an empty list, not an error.
func (s *Service) TopicSuggestions(ctx context.Context, book, chapter string) ([]SuggestedTopic, error) {
	resp, err := s.run(ctx, "topic_suggestion", TopicSuggestion{Book: book, Chapter: chapter})
	if err != nil {
		return nil, err
	}
	topics := NormalizeTopics(resp)
	if len(topics) == 0 {
		s.log.Warn("no topics parsed from response", "intent", "topic_suggestion", "chars", len(resp.Text))
	}
	return topics, nil
}

func (s *Service) run(ctx context.Context, name string, in Intent) (llm.Response, error) {
	req, err := s.builder.Build(in)
	if err != nil {
		return llm.Response{}, s.fail(name, err)
	}
	if a, ok := in.(AudioSummary); ok {
		att, err := media.Encode(ctx, a.Media, a.MimeType)
		if err != nil {
			return llm.Response{}, s.fail(name, err)
		}
		req.Attachments = []llm.Attachment{att}
	}

	start := time.Now()
	resp, err := s.client.Send(ctx, req)
	if err != nil {
		return llm.Response{}, s.fail(name, err)
	}
	s.log.Info("intent completed",
		"intent", name,
		"model", req.Model,
		"format", req.Format.String(),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return resp, nil
}

func (s *Service) fail(name string, err error) *llmerr.Error {
	classified := llmerr.Classify(err)
	s.log.Warn("intent failed", "intent", name, "kind", classified.Kind.String(), "err", err)
	return classified
}
