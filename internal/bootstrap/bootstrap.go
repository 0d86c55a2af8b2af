// Package bootstrap provides application lifecycle helpers.
package bootstrap

import (
	"context"
	"errors"
	"os"
	"os/signal"
)

// Cleanup releases a resource at the end of a run.
type Cleanup func() error

// Run executes run under a context that is canceled on OS interrupt, then
// invokes the cleanups in reverse registration order (LIFO). A batch that is
// interrupted mid-word sees ctx canceled and stops between words; its
// resources (output sink, quota store) still close.
func Run(ctx context.Context, run func(ctx context.Context) error, cleanups ...Cleanup) error {
	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt)
	defer cancel()

	runErr := run(ctx)

	var errs []error
	if runErr != nil {
		errs = append(errs, runErr)
	}
	for i := len(cleanups) - 1; i >= 0; i-- {
		if err := cleanups[i](); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
