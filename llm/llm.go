// Package llm defines the LLM client interface for reactgen.
package llm

import "context"

// Client is a minimal interface for making LLM API calls.
// Implementations provide the actual HTTP transport to a specific provider.
type Client interface {
	Complete(ctx context.Context, system, user string) (string, error)
}

// Options holds the sampling parameters shared by all providers.
type Options struct {
	// Temperature is the sampling temperature passed to the API.
	Temperature float64

	// MaxTokens caps the response length.
	MaxTokens int
}

// DefaultOptions returns the sampling parameters used for component
// generation.
func DefaultOptions() Options {
	return Options{Temperature: 0.5, MaxTokens: 4096}
}
