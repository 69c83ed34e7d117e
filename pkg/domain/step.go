package domain

// Step is one entry in a tour: a target locator plus the content to render.
type Step struct {
	// Selector locates the target element in the host environment.
	Selector string `json:"selector" yaml:"selector" mapstructure:"selector"`

	// Text is the rich content rendered inside the callout.
	Text string `json:"text" yaml:"text" mapstructure:"text"`
}

// Tour is a named, ordered walkthrough. Step order is tour order.
type Tour struct {
	ID          string `json:"id" yaml:"id"`
	Title       string `json:"title,omitempty" yaml:"title,omitempty"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
	Theme       Theme  `json:"theme" yaml:"theme"`
	AutoScroll  bool   `json:"auto_scroll,omitempty" yaml:"auto_scroll,omitempty"`
	Steps       []Step `json:"steps" yaml:"steps"`
}

// CopySteps returns a detached copy of steps so later mutation by the caller
// cannot leak into a running session.
func CopySteps(steps []Step) []Step {
	if steps == nil {
		return nil
	}
	out := make([]Step, len(steps))
	copy(out, steps)
	return out
}
