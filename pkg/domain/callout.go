package domain

// ControlID names a navigation control inside a callout.
type ControlID string

const (
	ControlPrevious ControlID = "wizardPrevBtn"
	ControlNext     ControlID = "wizardNextBtn"
	ControlClose    ControlID = "wizardCloseBtn"
)

// Label returns the caption rendered on the control.
func (c ControlID) Label() string {
	switch c {
	case ControlPrevious:
		return "← Prev"
	case ControlNext:
		return "Next →"
	case ControlClose:
		return "× Close"
	}
	return string(c)
}

// CalloutContent is what a render target receives for one step.
type CalloutContent struct {
	// Text is the raw step text, for targets that do their own formatting.
	Text string `json:"text"`

	// Markup is the composed body: content block followed by the button row.
	Markup string `json:"markup"`

	// Controls lists the controls present, in render order.
	Controls []ControlID `json:"controls"`
}

// HasControl reports whether id is rendered.
func (c CalloutContent) HasControl(id ControlID) bool {
	for _, ctl := range c.Controls {
		if ctl == id {
			return true
		}
	}
	return false
}
