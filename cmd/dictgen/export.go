package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/zuern/NLP-DictionaryGenerator/internal/export"
)

func newExportCommand() *cobra.Command {
	var outputDir string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the generated dictionary file to YAML",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if outputDir == "" {
				outputDir = cfg.Output.ExportDirectory
			}

			records, err := export.ReadRecords(cfg.Output.DictionaryFile)
			if err != nil {
				return fmt.Errorf("read dictionary file: %w", err)
			}

			exporter := export.NewYAMLExporter(outputDir)
			if err := exporter.WriteAll(records); err != nil {
				return fmt.Errorf("export records: %w", err)
			}

			fmt.Printf("Exported %d records to %s\n", len(records), outputDir)
			return nil
		},
	}

	cmd.Flags().StringVar(&outputDir, "output-dir", "", "export directory (overrides config)")

	return cmd
}
