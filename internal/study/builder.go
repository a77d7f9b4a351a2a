package study

import (
	"fmt"
	"strings"

	"bible-hub/internal/llm"
)

// Builder turns intents into model requests. It is a pure function of its model map and input.
// Book and chapter are passed through unvalidated; the model handles references outside the canon.
type Builder struct {
	models llm.Models
}

func NewBuilder(models llm.Models) Builder {
	return Builder{models: models}
}

// Build returns a fresh request for in. Media of an AudioSummary is not read here; the caller
// attaches the encoded payload.
func (b Builder) Build(in Intent) (llm.Request, error) {
	switch v := in.(type) {
	case Outline:
		return llm.Request{
			Model:  b.models.For(llm.RoleText),
			Prompt: render(outlineTemplate, clean(v.Book), clean(v.Chapter), ""),
			Format: llm.FreeText,
		}, nil
	case PastorInsight:
		return llm.Request{
			Model:         b.models.For(llm.RoleReasoning),
			Prompt:        render(pastorTemplate, clean(v.Book), clean(v.Chapter), focusClause(v.Focus)),
			Format:        llm.FreeText,
			DeepReasoning: true,
		}, nil
	case TopicSuggestion:
		return llm.Request{
			Model:  b.models.For(llm.RoleText),
			Prompt: render(topicsTemplate, clean(v.Book), clean(v.Chapter), ""),
			Format: llm.StructuredJSON,
		}, nil
	case AudioSummary:
		return llm.Request{
			Model:  b.models.For(llm.RoleMultimodal),
			Prompt: audioSummaryTemplate,
			Format: llm.FreeText,
		}, nil
	default:
		return llm.Request{}, fmt.Errorf("unsupported intent %T", in)
	}
}

func focusClause(focus string) string {
	focus = clean(focus)
	if focus == "" {
		return generalFocus
	}
	return "特别关注：" + focus + "，"
}

func clean(s string) string {
	return strings.TrimSpace(s)
}
