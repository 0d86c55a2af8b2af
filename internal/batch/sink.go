package batch

import (
	"fmt"
	"os"

	"github.com/zuern/NLP-DictionaryGenerator/internal/dictionary"
)

// Sink receives generated dictionary records.
type Sink interface {
	Append(record dictionary.Record) error
}

// FileSink appends "<word>, <category>" lines to a text file. The file is
// opened in append mode; earlier records are never rewritten or reordered.
type FileSink struct {
	file *os.File
}

var _ Sink = (*FileSink)(nil)

// OpenFileSink opens (creating if necessary) the output file at path.
func OpenFileSink(path string) (*FileSink, error) {
	file, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("os.OpenFile(%s)> %w", path, err)
	}
	return &FileSink{file: file}, nil
}

func (s *FileSink) Append(record dictionary.Record) error {
	if _, err := fmt.Fprintf(s.file, "%s, %s\n", record.Word, record.Category); err != nil {
		return fmt.Errorf("append record for %q: %w", record.Word, err)
	}
	return nil
}

// Close closes the underlying file.
func (s *FileSink) Close() error {
	return s.file.Close()
}
