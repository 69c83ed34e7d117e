package validator

import (
	"fmt"
	"strings"

	"github.com/aretw0/waypoint/pkg/domain"
	"github.com/aretw0/waypoint/pkg/ports"
)

// AggregateError lists every problem found in one validation pass.
type AggregateError struct {
	Problems []string
}

func (e *AggregateError) Error() string {
	return fmt.Sprintf("found %d errors:\n- %s", len(e.Problems), strings.Join(e.Problems, "\n- "))
}

// Unwrap lets errors.Is match domain.ErrInvalidTour.
func (e *AggregateError) Unwrap() error {
	return domain.ErrInvalidTour
}

// ValidateTour checks a single tour definition.
func ValidateTour(t domain.Tour) error {
	problems := checkTour(t)
	if len(problems) > 0 {
		return &AggregateError{Problems: problems}
	}
	return nil
}

// ValidateLoader loads and checks every tour the loader knows about.
func ValidateLoader(loader ports.TourLoader) error {
	ids, err := loader.ListTours()
	if err != nil {
		return fmt.Errorf("list tours: %w", err)
	}

	var problems []string
	for _, id := range ids {
		t, err := loader.GetTour(id)
		if err != nil {
			problems = append(problems, fmt.Sprintf("Tour '%s' failed to load: %v", id, err))
			continue
		}
		problems = append(problems, checkTour(t)...)
	}

	if len(problems) > 0 {
		return &AggregateError{Problems: problems}
	}
	return nil
}

func checkTour(t domain.Tour) []string {
	var problems []string
	name := t.ID
	if name == "" {
		name = "<unnamed>"
		problems = append(problems, "Tour has no ID")
	}
	if len(t.Steps) == 0 {
		problems = append(problems, fmt.Sprintf("Tour '%s' has no steps", name))
	}
	for i, s := range t.Steps {
		if msg := checkSelector(s.Selector); msg != "" {
			problems = append(problems, fmt.Sprintf("Tour '%s' step %d: %s", name, i, msg))
		}
		if strings.TrimSpace(s.Text) == "" {
			problems = append(problems, fmt.Sprintf("Tour '%s' step %d: empty text", name, i))
		}
	}
	return problems
}

// checkSelector catches authoring mistakes; it is not a CSS parser.
func checkSelector(sel string) string {
	if strings.TrimSpace(sel) == "" {
		return "empty selector"
	}
	if strings.ContainsAny(sel, "\n\r") {
		return fmt.Sprintf("selector %q spans lines", sel)
	}
	pairs := map[rune]rune{'[': ']', '(': ')'}
	var stack []rune
	var quote rune
	for _, r := range sel {
		switch {
		case quote != 0:
			if r == quote {
				quote = 0
			}
		case r == '"' || r == '\'':
			quote = r
		case r == '[' || r == '(':
			stack = append(stack, pairs[r])
		case r == ']' || r == ')':
			if len(stack) == 0 || stack[len(stack)-1] != r {
				return fmt.Sprintf("selector %q has unbalanced %q", sel, r)
			}
			stack = stack[:len(stack)-1]
		}
	}
	if quote != 0 {
		return fmt.Sprintf("selector %q has an unterminated string", sel)
	}
	if len(stack) > 0 {
		return fmt.Sprintf("selector %q is missing %q", sel, stack[len(stack)-1])
	}
	return ""
}
