package llm

import (
	"context"
	"errors"
)

// Request is built fresh per call; nothing here is shared across requests.
type Request struct {
	System    string
	User      string
	MaxTokens int
}

type Client interface {
	Generate(ctx context.Context, req Request) (string, error)
}

// ErrOverloaded marks the transient overload error class. It is the only
// error the retry layer retries on; everything else fails immediately.
var ErrOverloaded = errors.New("backend overloaded")
