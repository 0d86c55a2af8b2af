package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/zuern/NLP-DictionaryGenerator/internal/quota"
)

func newQuotaCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "quota",
		Short: "Inspect and adjust the daily API quota",
	}
	cmd.AddCommand(newQuotaStatusCommand())
	cmd.AddCommand(newQuotaSetLimitCommand())
	return cmd
}

func newQuotaStatusCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show calls made today, the daily limit, and the last access time",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

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
			lastAccess := "never"
			if !state.LastAccess.IsZero() {
				lastAccess = state.LastAccess.Format(time.RFC3339)
			}
			fmt.Printf("Last access:  %s\n", lastAccess)
			fmt.Printf("Daily limit:  %d\n", state.DailyLimit)
			remaining := state.Remaining(now)
			line := fmt.Sprintf("Remaining:    %d", remaining)
			if remaining == 0 {
				color.Red(line)
			} else {
				fmt.Println(line)
			}
			return nil
		},
	}
}

func newQuotaSetLimitCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "set-limit <n>",
		Short: "Persist a new daily call limit",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			limit, err := strconv.Atoi(args[0])
			if err != nil || limit < 1 {
				return fmt.Errorf("limit must be a positive integer, got %q", args[0])
			}

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
			state.DailyLimit = limit
			if err := store.Save(ctx, state); err != nil {
				return fmt.Errorf("save quota state: %w", err)
			}

			fmt.Printf("Daily limit set to %d\n", limit)
			return nil
		},
	}
}
