// Package batch runs the quota-aware dictionary generation loop.
package batch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/schollz/progressbar/v3"

	"github.com/zuern/NLP-DictionaryGenerator/internal/dictionary"
	"github.com/zuern/NLP-DictionaryGenerator/internal/quota"
	"github.com/zuern/NLP-DictionaryGenerator/internal/wordlist"
)

//go:generate mockgen -source=runner.go -destination=mock_lookup_test.go -package=batch

// Lookup is the remote dictionary collaborator.
type Lookup interface {
	Lookup(ctx context.Context, word string) (string, error)
}

// Summary is reported at the end of every run, whichever way it ends.
type Summary struct {
	EntriesAdded int
	Errors       int
	Remaining    int
}

// Config holds the non-collaborator knobs of a Runner.
type Config struct {
	ResumePath   string
	ShowProgress bool
	// Now is the clock used for quota decisions. nil means time.Now.
	Now func() time.Time
}

// Runner processes a word list sequentially: one quota check, one remote
// call, one sink append per word. When the daily quota runs out it dumps
// every unprocessed word to the resume file and stops; within a run there is
// no way back from that state.
type Runner struct {
	lookup Lookup
	sink   Sink
	store  quota.Store
	logger *slog.Logger
	config Config
}

func NewRunner(lookup Lookup, sink Sink, store quota.Store, logger *slog.Logger, config Config) *Runner {
	if config.ResumePath == "" {
		config.ResumePath = wordlist.ResumeFileName
	}
	if config.Now == nil {
		config.Now = time.Now
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Runner{
		lookup: lookup,
		sink:   sink,
		store:  store,
		logger: logger,
		config: config,
	}
}

// Run processes words in order. It returns a non-nil error only for fatal
// failures; quota exhaustion ends the run gracefully after writing the
// resume file. The summary is valid on every return path.
func (r *Runner) Run(ctx context.Context, words []string) (Summary, error) {
	var summary Summary

	state, err := r.store.Load(ctx)
	if err != nil {
		return summary, fmt.Errorf("load quota state: %w", err)
	}

	var bar *progressbar.ProgressBar
	if r.config.ShowProgress {
		bar = progressbar.NewOptions(len(words),
			progressbar.OptionSetDescription("Generating dictionary..."),
			progressbar.OptionSetWidth(30),
			progressbar.OptionShowCount(),
		)
	}

	for i, word := range words {
		if err := ctx.Err(); err != nil {
			r.report(summary)
			return summary, fmt.Errorf("run canceled: %w", err)
		}

		now := r.config.Now()
		if !state.CanCall(now) {
			summary.Remaining = len(words) - i
			if err := r.dumpRemaining(words[i:]); err != nil {
				return summary, err
			}
			r.report(summary)
			return summary, nil
		}

		category, err := r.lookupCategory(ctx, &state, word, now)
		switch {
		case errors.Is(err, quota.ErrQuotaExceeded):
			// The loop condition should have caught this; treat it the
			// same way.
			summary.Remaining = len(words) - i
			if err := r.dumpRemaining(words[i:]); err != nil {
				return summary, err
			}
			r.report(summary)
			return summary, nil
		case errors.Is(err, dictionary.ErrNotFound):
			summary.Errors++
			r.logger.Error(fmt.Sprintf("no category found for %q, skipping", word))
			r.advance(bar)
			continue
		case err != nil:
			summary.Errors++
			r.logger.Error(fmt.Sprintf("lookup failed for %q: %v", word, err))
			r.report(summary)
			return summary, fmt.Errorf("lookup %q: %w", word, err)
		}

		record := dictionary.Record{Word: word, Category: category}
		if err := r.sink.Append(record); err != nil {
			summary.Errors++
			r.logger.Error(fmt.Sprintf("write record for %q: %v", word, err))
			r.report(summary)
			return summary, fmt.Errorf("append record for %q: %w", word, err)
		}
		summary.EntriesAdded++
		r.logger.Info(fmt.Sprintf("added %q as %q", record.Word, record.Category))
		r.advance(bar)
	}

	r.report(summary)
	return summary, nil
}

// lookupCategory performs one quota-accounted remote lookup. The quota is
// re-checked here even though Run already did, so a caller can never slip a
// call past an exhausted quota. Both a hit and a miss consumed a remote
// call, so both update and persist the counters.
func (r *Runner) lookupCategory(ctx context.Context, state *quota.State, word string, now time.Time) (string, error) {
	if !state.CanCall(now) {
		return "", quota.ErrQuotaExceeded
	}

	category, err := r.lookup.Lookup(ctx, word)
	if err != nil && !errors.Is(err, dictionary.ErrNotFound) {
		return "", err
	}

	state.RecordCall(now)
	if saveErr := r.store.Save(ctx, *state); saveErr != nil {
		return "", fmt.Errorf("save quota state: %w", saveErr)
	}
	return category, err
}

func (r *Runner) dumpRemaining(remaining []string) error {
	r.logger.Warn(fmt.Sprintf("daily quota exhausted, writing %d remaining words to %s", len(remaining), r.config.ResumePath))
	if err := wordlist.WriteRemaining(r.config.ResumePath, remaining); err != nil {
		return fmt.Errorf("write resume file: %w", err)
	}
	return nil
}

func (r *Runner) report(summary Summary) {
	r.logger.Info(fmt.Sprintf("run finished: %d entries added, %d errors, %d words remaining",
		summary.EntriesAdded, summary.Errors, summary.Remaining))
}

func (r *Runner) advance(bar *progressbar.ProgressBar) {
	if bar != nil {
		_ = bar.Add(1)
	}
}
