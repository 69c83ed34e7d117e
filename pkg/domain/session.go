package domain

// IndexBeforeStart is the CurrentIndex of a session that is not running.
const IndexBeforeStart = -1

// Session is the state of the tour owned by a controller.
type Session struct {
	// ID correlates log lines and events of one run.
	ID string `json:"id,omitempty"`

	Steps        []Step `json:"steps"`
	CurrentIndex int    `json:"current_index"`
	Active       bool   `json:"active"`

	// TourID is empty for anonymous tours, which never record completion.
	TourID     string `json:"tour_id,omitempty"`
	Theme      Theme  `json:"theme"`
	AutoScroll bool   `json:"auto_scroll"`
}

// NewSession returns an inactive, empty session.
func NewSession() Session {
	return Session{
		CurrentIndex: IndexBeforeStart,
		Theme:        ThemeDark,
	}
}

// InBounds reports whether idx addresses a step.
func (s *Session) InBounds(idx int) bool {
	return idx >= 0 && idx < len(s.Steps)
}

// Current returns the step at CurrentIndex.
func (s *Session) Current() (Step, bool) {
	if !s.InBounds(s.CurrentIndex) {
		return Step{}, false
	}
	return s.Steps[s.CurrentIndex], true
}

// Snapshot returns a deep copy safe to hand out.
func (s *Session) Snapshot() Session {
	out := *s
	out.Steps = CopySteps(s.Steps)
	return out
}
