// Package wordlist reads input word lists and writes resume dumps.
package wordlist

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// ResumeFileName is the fixed name of the resume dump written when the daily
// quota runs out mid-batch.
const ResumeFileName = "remainingWordList.txt"

// Read loads a newline-separated word list. Words are trimmed and empty
// lines are skipped.
func Read(path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("os.Open(%s)> %w", path, err)
	}
	defer func() {
		_ = file.Close()
	}()

	var words []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		word := strings.TrimSpace(scanner.Text())
		if word == "" {
			continue
		}
		words = append(words, word)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan %s: %w", path, err)
	}
	return words, nil
}

// WriteRemaining writes the not-yet-processed words to path, one per line,
// preserving their original order. An existing file is replaced: the dump
// always reflects the latest run.
func WriteRemaining(path string, words []string) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("os.Create(%s)> %w", path, err)
	}
	defer func() {
		_ = file.Close()
	}()

	writer := bufio.NewWriter(file)
	for _, word := range words {
		if _, err := fmt.Fprintln(writer, word); err != nil {
			return fmt.Errorf("write word %q: %w", word, err)
		}
	}
	if err := writer.Flush(); err != nil {
		return fmt.Errorf("flush %s: %w", path, err)
	}
	return nil
}
