package llm

import (
	"context"
	"errors"
	"fmt"
	"time"
)

const (
	defaultMaxAttempts = 3
	defaultBaseDelay   = 10 * time.Second
)

// Retrier wraps a Client with linear backoff on the overload error class:
// after the n-th failed attempt it sleeps n*BaseDelay and tries again, up to
// MaxAttempts attempts total. Any other error, or exhaustion of attempts,
// surfaces immediately — callers pick a fallback message instead of crashing.
type Retrier struct {
	Client      Client
	MaxAttempts int
	BaseDelay   time.Duration
	sleep       func(time.Duration)
}

func NewRetrier(client Client) *Retrier {
	return &Retrier{
		Client:      client,
		MaxAttempts: defaultMaxAttempts,
		BaseDelay:   defaultBaseDelay,
		sleep:       time.Sleep,
	}
}

func (r *Retrier) Generate(ctx context.Context, req Request) (string, error) {
	for attempt := 1; ; attempt++ {
		text, err := r.Client.Generate(ctx, req)
		if err == nil {
			return text, nil
		}
		if !errors.Is(err, ErrOverloaded) {
			return "", err
		}
		if attempt >= r.MaxAttempts {
			return "", fmt.Errorf("after %d attempts: %w", attempt, err)
		}
		r.sleep(time.Duration(attempt) * r.BaseDelay)
	}
}
