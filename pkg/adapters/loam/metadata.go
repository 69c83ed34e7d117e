package loam

// TourMetadata is the frontmatter of a tour document. The document body,
// if any, becomes the tour description.
//
//	---
//	id: onboarding
//	title: Welcome
//	theme: light
//	auto_scroll: true
//	steps:
//	  - selector: "#search"
//	    text: Search everything from here.
//	---
type TourMetadata struct {
	ID         string `json:"id" mapstructure:"id"`
	Title      string `json:"title" mapstructure:"title"`
	Theme      string `json:"theme" mapstructure:"theme"`
	AutoScroll bool   `json:"auto_scroll" mapstructure:"auto_scroll"`

	// Steps stay untyped here and are decoded strictly by the loader so that
	// misspelled step keys are reported instead of silently dropped.
	Steps []any `json:"steps" mapstructure:"steps"`

	// General Metadata
	Metadata map[string]any `json:"metadata" mapstructure:"metadata"`
}
