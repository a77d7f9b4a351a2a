package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"bible-hub/internal/study"
)

type chapterFlags struct {
	book    string
	chapter string
}

func (f *chapterFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.book, "book", "b", "", "Book name, e.g. 罗马书")
	cmd.Flags().StringVarP(&f.chapter, "chapter", "n", "", "Chapter number")
	_ = cmd.MarkFlagRequired("book")
	_ = cmd.MarkFlagRequired("chapter")
}

func newOutlineCommand(ctx *commandContext) *cobra.Command {
	var flags chapterFlags
	cmd := &cobra.Command{
		Use:   "outline",
		Short: "Background material for the study leader",
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := ctx.service()
			if err != nil {
				return err
			}
			md, err := svc.Outline(cmd.Context(), flags.book, flags.chapter)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), md)
			return nil
		},
	}
	flags.register(cmd)
	return cmd
}

func newInsightCommand(ctx *commandContext) *cobra.Command {
	var flags chapterFlags
	var focus string
	cmd := &cobra.Command{
		Use:   "insight",
		Short: "In-depth research material for the pastor",
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := ctx.service()
			if err != nil {
				return err
			}
			md, err := svc.PastorInsight(cmd.Context(), flags.book, flags.chapter, focus)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), md)
			return nil
		},
	}
	flags.register(cmd)
	cmd.Flags().StringVarP(&focus, "focus", "f", "", "Optional focus, e.g. a verse or theme")
	return cmd
}

func newTopicsCommand(ctx *commandContext) *cobra.Command {
	var flags chapterFlags
	cmd := &cobra.Command{
		Use:   "topics",
		Short: "Suggest discussion topics",
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := ctx.service()
			if err != nil {
				return err
			}
			topics, err := svc.TopicSuggestions(cmd.Context(), flags.book, flags.chapter)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTopics(topics))
			return nil
		},
	}
	flags.register(cmd)
	return cmd
}

func newSummarizeCommand(ctx *commandContext) *cobra.Command {
	var mimeType string
	cmd := &cobra.Command{
		Use:   "summarize <recording>",
		Short: "Summarize a meeting recording (mp3, m4a, mp4, wav)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := ctx.service()
			if err != nil {
				return err
			}
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()
			if mimeType == "" {
				mimeType = mimeByExtension(args[0])
			}
			md, err := svc.AudioSummary(cmd.Context(), f, mimeType)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), md)
			return nil
		},
	}
	cmd.Flags().StringVar(&mimeType, "mime", "", "MIME type of the recording (detected when empty)")
	return cmd
}

func newPrepCommand(ctx *commandContext) *cobra.Command {
	var flags chapterFlags
	cmd := &cobra.Command{
		Use:   "prep",
		Short: "Outline and topic suggestions in one go",
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := ctx.service()
			if err != nil {
				return err
			}
			var (
				md     string
				topics []study.SuggestedTopic
			)
			var g errgroup.Group
			g.Go(func() error {
				var err error
				md, err = svc.Outline(cmd.Context(), flags.book, flags.chapter)
				return err
			})
			g.Go(func() error {
				var err error
				topics, err = svc.TopicSuggestions(cmd.Context(), flags.book, flags.chapter)
				return err
			})
			if err := g.Wait(); err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, md)
			fmt.Fprintln(out)
			fmt.Fprintln(out, renderTopics(topics))
			return nil
		},
	}
	flags.register(cmd)
	return cmd
}

// mimeByExtension covers the formats members usually upload; anything else is sniffed.
func mimeByExtension(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".mp3":
		return "audio/mpeg"
	case ".m4a":
		return "audio/mp4"
	case ".wav":
		return "audio/wav"
	case ".mp4":
		return "video/mp4"
	default:
		return ""
	}
}
