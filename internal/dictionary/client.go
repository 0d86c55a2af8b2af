// Package dictionary looks up lexical categories on a remote dictionary
// web service.
package dictionary

import (
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/avast/retry-go"
	"github.com/go-resty/resty/v2"
	"github.com/sony/gobreaker"
	"golang.org/x/time/rate"
)

// ErrNotFound means the remote response carried no lexical category for the
// word. The remote call itself completed.
var ErrNotFound = errors.New("no category found for word")

type Config struct {
	BaseURL           string
	APIKey            string
	RequestsPerSecond int
	MaxRetries        int
	Timeout           time.Duration
}

// Client queries the remote dictionary service for one word at a time.
type Client struct {
	config  Config
	http    *resty.Client
	limiter *rate.Limiter
	breaker *gobreaker.CircuitBreaker
}

func NewClient(config Config) *Client {
	if config.RequestsPerSecond <= 0 {
		config.RequestsPerSecond = 2
	}
	if config.MaxRetries <= 0 {
		config.MaxRetries = 3
	}
	if config.Timeout <= 0 {
		config.Timeout = 10 * time.Second
	}

	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:    "dictionary-api",
		Timeout: 30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		IsSuccessful: func(err error) bool {
			// A miss is a healthy response from the upstream.
			return err == nil || errors.Is(err, ErrNotFound)
		},
	})

	return &Client{
		config:  config,
		http:    resty.New().SetTimeout(config.Timeout),
		limiter: rate.NewLimiter(rate.Limit(config.RequestsPerSecond), 1),
		breaker: breaker,
	}
}

// Lookup returns the lexical category of word, reduced to its first token.
// Transport and server failures are retried with backoff before they become
// fatal; ErrNotFound is surfaced as-is and never retried.
func (c *Client) Lookup(ctx context.Context, word string) (string, error) {
	result, err := c.breaker.Execute(func() (interface{}, error) {
		var category string
		err := retry.Do(
			func() error {
				if err := c.limiter.Wait(ctx); err != nil {
					return fmt.Errorf("limiter.Wait > %w", err)
				}
				var lookupErr error
				category, lookupErr = c.lookupOnce(ctx, word)
				return lookupErr
			},
			retry.Attempts(uint(c.config.MaxRetries)),
			retry.Delay(500*time.Millisecond),
			retry.DelayType(retry.BackOffDelay),
			retry.LastErrorOnly(true),
			retry.RetryIf(func(err error) bool {
				return !errors.Is(err, ErrNotFound) && ctx.Err() == nil
			}),
		)
		return category, err
	})
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("lookup %q: %w", word, err)
	}
	return result.(string), nil
}

func (c *Client) lookupOnce(ctx context.Context, word string) (string, error) {
	res, err := c.http.R().
		SetContext(ctx).
		SetQueryParam("key", c.config.APIKey).
		Get(fmt.Sprintf("%s/api/v1/references/collegiate/xml/%s", c.config.BaseURL, url.PathEscape(word)))
	if err != nil {
		return "", fmt.Errorf("client.R().Get > %w", err)
	}
	if res.StatusCode() == http.StatusNotFound {
		return "", ErrNotFound
	}
	if res.StatusCode() != http.StatusOK {
		return "", fmt.Errorf("status code: %d, body: %s", res.StatusCode(), string(res.Body()))
	}

	var list entryList
	if err := xml.Unmarshal(res.Body(), &list); err != nil {
		return "", fmt.Errorf("xml.Unmarshal > %w", err)
	}
	for _, e := range list.Entries {
		if e.FunctionalLabel != "" {
			return Category(e.FunctionalLabel), nil
		}
	}
	return "", ErrNotFound
}
