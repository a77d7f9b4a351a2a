package main

import (
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"bible-hub/internal/study"
)

const noTopicsMessage = "No topic suggestions this time."

func renderTopics(topics []study.SuggestedTopic) string {
	if len(topics) == 0 {
		return noTopicsMessage
	}

	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.AppendHeader(table.Row{"#", "Topic", "Focus"})
	for i, t := range topics {
		tw.AppendRow(table.Row{strconv.Itoa(i + 1), t.Title, t.Query})
	}
	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignRight, AlignHeader: text.AlignLeft},
		{Number: 3, WidthMax: 60},
	})
	return tw.Render()
}
