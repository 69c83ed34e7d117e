package domain

import "time"

const (
	// DefaultOffset is the gap between target edge and callout, in pixels.
	DefaultOffset = 8.0

	// DefaultMargin keeps the callout away from the viewport edges.
	DefaultMargin = 8.0

	// ArrowInset keeps the arrow inside the callout body.
	ArrowInset = 8.0

	// FadeOutDelay is how long a dismissed callout lingers before removal.
	FadeOutDelay = 200 * time.Millisecond

	// ScrollSettleDelay is the wait after a scroll request before measuring.
	ScrollSettleDelay = 300 * time.Millisecond
)

const (
	// CompletionKeyPrefix prefixes the store key of a tour's completion flag.
	CompletionKeyPrefix = "wizardCompleted-"

	// CompletionValue marks a completed tour. Any other value means not completed.
	CompletionValue = "true"
)

const (
	DisplayNone      = "none"
	VisibilityHidden = "hidden"
)

// CompletionKey returns the store key for tourID.
func CompletionKey(tourID string) string {
	return CompletionKeyPrefix + tourID
}
