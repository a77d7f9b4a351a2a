package study

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"bible-hub/internal/llm"
)

func TestNormalizeText(t *testing.T) {
	assert.Equal(t, FallbackText, NormalizeText(llm.Response{}))
	assert.Equal(t, "# 标题\n\n正文", NormalizeText(llm.Response{Text: "# 标题\n\n正文"}))
	assert.Equal(t, "  ", NormalizeText(llm.Response{Text: "  "}))
}

func TestNormalizeTopics(t *testing.T) {
	aq := []SuggestedTopic{{Title: "A", Query: "Q"}}

	tests := []struct {
		name string
		raw  string
		want []SuggestedTopic
	}{
		{"bare array", `[{"title":"A","query":"Q"}]`, aq},
		{"fenced object", "```json\n{\"topics\":[{\"title\":\"A\",\"query\":\"Q\"}]}\n```", aq},
		{"not json", "not json", []SuggestedTopic{}},
		{"empty", "", []SuggestedTopic{}},
		{"fence without language", "```\n[{\"title\":\"A\",\"query\":\"Q\"}]\n```", aq},
		{"fence inside prose", "以下是主题：\n```json\n{\"topics\":[{\"title\":\"A\",\"query\":\"Q\"}]}\n```\n祝查经顺利", aq},
		{"unterminated fence", "```json\n[{\"title\":\"A\",\"query\":\"Q\"}]", aq},
		{"object without topics", `{"items":[{"title":"A","query":"Q"}]}`, []SuggestedTopic{}},
		{"topics not array", `{"topics":"A"}`, []SuggestedTopic{}},
		{"truncated json", `{"topics":[{"title":"A"`, []SuggestedTopic{}},
		{"skips blank and non-object entries", `[{"title":"A","query":"Q"},{},"x",{"title":" "}]`, aq},
		{
			"keeps model order",
			`{"topics":[{"title":"B","query":"2"},{"title":"A","query":"1"}]}`,
			[]SuggestedTopic{{Title: "B", Query: "2"}, {Title: "A", Query: "1"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizeTopics(llm.Response{Text: tt.raw})
			assert.NotNil(t, got)
			assert.Equal(t, tt.want, got)
		})
	}
}
