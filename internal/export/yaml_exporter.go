// Package export converts the generated dictionary file to other formats.
package export

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/zuern/NLP-DictionaryGenerator/internal/dictionary"
)

type exportRecord struct {
	Word     string `yaml:"word"`
	Category string `yaml:"category"`
}

// YAMLExporter writes dictionary records to a YAML file.
type YAMLExporter struct {
	outputDir string
}

// NewYAMLExporter creates a new YAMLExporter.
func NewYAMLExporter(outputDir string) *YAMLExporter {
	return &YAMLExporter{outputDir: outputDir}
}

// WriteAll writes records to dictionary.yml.
func (e *YAMLExporter) WriteAll(records []dictionary.Record) error {
	if err := os.MkdirAll(e.outputDir, 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	out := make([]exportRecord, len(records))
	for i, r := range records {
		out[i] = exportRecord{
			Word:     r.Word,
			Category: r.Category,
		}
	}

	path := filepath.Join(e.outputDir, "dictionary.yml")
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("os.Create(%s)> %w", path, err)
	}
	defer func() {
		_ = file.Close()
	}()

	encoder := yaml.NewEncoder(file)
	if err := encoder.Encode(out); err != nil {
		return fmt.Errorf("encode dictionary.yml: %w", err)
	}
	return encoder.Close()
}

// ReadRecords parses the generated "<word>, <category>" output file back
// into records. Blank lines are skipped; a line without a separator is
// malformed.
func ReadRecords(path string) ([]dictionary.Record, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("os.Open(%s)> %w", path, err)
	}
	defer func() {
		_ = file.Close()
	}()

	var records []dictionary.Record
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		word, category, found := strings.Cut(line, ", ")
		if !found {
			return nil, fmt.Errorf("malformed record line %q in %s", line, path)
		}
		records = append(records, dictionary.Record{Word: word, Category: category})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan %s: %w", path, err)
	}
	return records, nil
}
