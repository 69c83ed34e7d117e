package ports

import "context"

// CompletionStore persists string flags by key.
// The guide stores one key per tour ID ("wizardCompleted-<id>").
type CompletionStore interface {
	// Get returns the value for key and whether it exists.
	Get(ctx context.Context, key string) (string, bool, error)

	// Set stores value under key, replacing any previous value.
	Set(ctx context.Context, key, value string) error
}

// ListableStore is implemented by stores that can enumerate their keys.
type ListableStore interface {
	CompletionStore
	Keys(ctx context.Context) ([]string, error)
}
