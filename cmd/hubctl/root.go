package main

import (
	"context"
	"io"
	"os"

	"github.com/spf13/cobra"

	"bible-hub/internal/app"
	"bible-hub/internal/config"
	"bible-hub/internal/logger"
	"bible-hub/internal/study"
)

// studyRunner is the part of study.Service the commands use.
type studyRunner interface {
	Outline(ctx context.Context, book, chapter string) (string, error)
	PastorInsight(ctx context.Context, book, chapter, focus string) (string, error)
	AudioSummary(ctx context.Context, r io.Reader, mimeType string) (string, error)
	TopicSuggestions(ctx context.Context, book, chapter string) ([]study.SuggestedTopic, error)
}

type buildFunc func(envFile, logLevel string) (studyRunner, error)

// buildService loads configuration the same way the gateway does, but logs to stderr.
func buildService(envFile, logLevel string) (studyRunner, error) {
	var files []string
	if envFile != "" {
		files = append(files, envFile)
	}
	if err := config.LoadDotEnv(files...); err != nil {
		return nil, err
	}
	cfg := config.Load()
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}
	svc, err := app.BuildStudy(cfg, logger.NewWithWriter(os.Stderr, cfg.LogLevel))
	if err != nil {
		return nil, err
	}
	return svc, nil
}

type commandContext struct {
	envFile  string
	logLevel string
	build    buildFunc
	svc      studyRunner
}

func (c *commandContext) service() (studyRunner, error) {
	if c.svc != nil {
		return c.svc, nil
	}
	svc, err := c.build(c.envFile, c.logLevel)
	if err != nil {
		return nil, err
	}
	c.svc = svc
	return svc, nil
}

func newRootCommand(build buildFunc) *cobra.Command {
	ctx := &commandContext{build: build}

	rootCmd := &cobra.Command{
		Use:           "hubctl",
		Short:         "Prepare and archive Tuesday Bible study sessions from the terminal",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	rootCmd.PersistentFlags().StringVar(&ctx.envFile, "env-file", "", "Path to a .env file (default .env if present)")
	rootCmd.PersistentFlags().StringVar(&ctx.logLevel, "log-level", "warn", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(newOutlineCommand(ctx))
	rootCmd.AddCommand(newInsightCommand(ctx))
	rootCmd.AddCommand(newTopicsCommand(ctx))
	rootCmd.AddCommand(newSummarizeCommand(ctx))
	rootCmd.AddCommand(newPrepCommand(ctx))

	return rootCmd
}
