package study

import (
	"regexp"
	"strings"

	"github.com/tidwall/gjson"

	"bible-hub/internal/llm"
)

// FallbackText replaces an empty free-text response.
const FallbackText = "无法生成内容，请重试。"

var fencedBlock = regexp.MustCompile("(?s)```[\\w-]*[ \\t]*\\n?(.*?)\\n?[ \\t]*```")

// NormalizeText returns the response verbatim, or FallbackText when the provider sent no text.
func NormalizeText(resp llm.Response) string {
	if resp.Text == "" {
		return FallbackText
	}
	return resp.Text
}

// NormalizeTopics extracts suggested topics from a bare array or a {"topics": [...]} object,
// optionally wrapped in a code fence. Anything unparseable yields an empty, non-nil slice.
func NormalizeTopics(resp llm.Response) []SuggestedTopic {
	topics := []SuggestedTopic{}
	body := stripFences(resp.Text)
	if body == "" || !gjson.Valid(body) {
		return topics
	}

	root := gjson.Parse(body)
	list := root
	if root.IsObject() {
		list = root.Get("topics")
	}
	if !list.IsArray() {
		return topics
	}
	list.ForEach(func(_, item gjson.Result) bool {
		if !item.IsObject() {
			return true
		}
		t := SuggestedTopic{
			Title: strings.TrimSpace(item.Get("title").String()),
			Query: strings.TrimSpace(item.Get("query").String()),
		}
		if t.Title != "" || t.Query != "" {
			topics = append(topics, t)
		}
		return true
	})
	return topics
}

// stripFences returns the body of the first fenced code block, or the trimmed text when there is
// none. An unterminated opening fence is dropped as well.
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	if m := fencedBlock.FindStringSubmatch(s); m != nil {
		return strings.TrimSpace(m[1])
	}
	if strings.HasPrefix(s, "```") {
		if _, rest, ok := strings.Cut(s, "\n"); ok {
			return strings.TrimSpace(rest)
		}
		return ""
	}
	return s
}
