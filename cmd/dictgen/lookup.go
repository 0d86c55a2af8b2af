package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/zuern/NLP-DictionaryGenerator/internal/dictionary"
	"github.com/zuern/NLP-DictionaryGenerator/internal/quota"
)

func newLookupCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "lookup <word>",
		Short: "Look up a single word's lexical category",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			word := args[0]

			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			store, err := quota.OpenStore(cfg.Quota.DatabaseFile, cfg.Quota.DailyLimit)
			if err != nil {
				return fmt.Errorf("open quota store: %w", err)
			}
			defer func() { _ = store.Close() }()

			state, err := store.Load(ctx)
			if err != nil {
				return fmt.Errorf("load quota state: %w", err)
			}
			now := time.Now()
			if !state.CanCall(now) {
				return quota.ErrQuotaExceeded
			}

			client := dictionary.NewClient(dictionary.Config{
				BaseURL:           cfg.Dictionary.BaseURL,
				APIKey:            cfg.Dictionary.Key,
				RequestsPerSecond: cfg.Dictionary.RequestsPerSecond,
				MaxRetries:        cfg.Dictionary.MaxRetries,
				Timeout:           time.Duration(cfg.Dictionary.TimeoutSeconds) * time.Second,
			})

			category, err := client.Lookup(ctx, word)
			if err != nil {
				return err
			}

			// A single lookup consumes quota like any batch call.
			state.RecordCall(now)
			if err := store.Save(ctx, state); err != nil {
				return fmt.Errorf("save quota state: %w", err)
			}

			fmt.Printf("%s, %s\n", word, category)
			return nil
		},
	}
}
