// Package study turns study-group intents into model requests and normalizes what comes back.
package study

import "io"

// Intent is one unit of AI-assisted work requested by a caller. The set of variants is closed.
type Intent interface {
	intent()
}

// Outline asks for objective background material for a chapter.
type Outline struct {
	Book    string
	Chapter string
}

// PastorInsight asks for in-depth research material; Focus is optional.
type PastorInsight struct {
	Book    string
	Chapter string
	Focus   string
}

// TopicSuggestion asks for a short list of discussion topics as structured data.
type TopicSuggestion struct {
	Book    string
	Chapter string
}

// AudioSummary asks for a digest of a meeting recording. Media is read once, by the encoder.
type AudioSummary struct {
	Media    io.Reader
	MimeType string
}

func (Outline) intent()         {}
func (PastorInsight) intent()   {}
func (TopicSuggestion) intent() {}
func (AudioSummary) intent()    {}

// SuggestedTopic is one candidate discussion topic. Query is suitable as a PastorInsight focus.
type SuggestedTopic struct {
	Title string `json:"title"`
	Query string `json:"query"`
}
