package main

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/zuern/NLP-DictionaryGenerator/internal/batch"
	"github.com/zuern/NLP-DictionaryGenerator/internal/bootstrap"
	"github.com/zuern/NLP-DictionaryGenerator/internal/dictionary"
	"github.com/zuern/NLP-DictionaryGenerator/internal/logging"
	"github.com/zuern/NLP-DictionaryGenerator/internal/quota"
	"github.com/zuern/NLP-DictionaryGenerator/internal/wordlist"
)

func newGenerateCommand() *cobra.Command {
	var inputFile string
	var outputFile string

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Look up every word in the input list and append results to the dictionary file",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if inputFile == "" {
				inputFile = cfg.Input.WordListFile
			}
			if outputFile == "" {
				outputFile = cfg.Output.DictionaryFile
			}

			logger, closeLog, err := logging.NewLogger(cfg.Logs.Directory, debugMode)
			if err != nil {
				return fmt.Errorf("create logger: %w", err)
			}
			slog.SetDefault(logger)
			defer func() { _ = closeLog() }()

			words, err := wordlist.Read(inputFile)
			if err != nil {
				return fmt.Errorf("read word list: %w", err)
			}
			logger.Info(fmt.Sprintf("read %d words from %s", len(words), inputFile))

			store, err := quota.OpenStore(cfg.Quota.DatabaseFile, cfg.Quota.DailyLimit)
			if err != nil {
				return fmt.Errorf("open quota store: %w", err)
			}

			sink, err := batch.OpenFileSink(outputFile)
			if err != nil {
				_ = store.Close()
				return fmt.Errorf("open output file: %w", err)
			}

			client := dictionary.NewClient(dictionary.Config{
				BaseURL:           cfg.Dictionary.BaseURL,
				APIKey:            cfg.Dictionary.Key,
				RequestsPerSecond: cfg.Dictionary.RequestsPerSecond,
				MaxRetries:        cfg.Dictionary.MaxRetries,
				Timeout:           time.Duration(cfg.Dictionary.TimeoutSeconds) * time.Second,
			})

			runner := batch.NewRunner(client, sink, store, logger, batch.Config{
				ResumePath:   cfg.Output.ResumeFile,
				ShowProgress: !debugMode,
			})

			return bootstrap.Run(cmd.Context(),
				func(ctx context.Context) error {
					_, err := runner.Run(ctx, words)
					return err
				},
				sink.Close,
				store.Close,
			)
		},
	}

	cmd.Flags().StringVar(&inputFile, "input", "", "word list file (overrides config)")
	cmd.Flags().StringVar(&outputFile, "output", "", "dictionary output file (overrides config)")

	return cmd
}
