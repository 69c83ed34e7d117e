/*
Package waypoint is a step-by-step onboarding guide for web pages.

A tour is an ordered list of steps, each pairing a selector with rich text.
The guide shows one callout at a time next to the step's target, skips steps
whose target is missing or hidden, and remembers which tours a user has
finished so they are not shown again.

# Concept

The guide never touches a page directly. The host supplies an Environment
(find elements, measure the viewport, scroll) and a CalloutFactory (create,
position, show and destroy callouts). A browser page driven by go-rod, an
in-memory document for simulation, or a test double all plug in the same way.

# Key Features

  - Placement: callouts go on the side of the target with more room, flip once
    if they overflow, and stay inside the viewport margins.
  - Visibility: invisible targets are skipped when moving in either direction,
    and Prev/Next controls appear only when there is a visible neighbour.
  - Completion: identified tours record a flag in a CompletionStore (memory,
    JSON file or Redis) and are not started again unless forced.
  - Tour documents: Markdown or YAML files in a Loam repository.

# Usage

	doc := memory.NewDocument(domain.Viewport{Width: 1024, Height: 768})
	doc.Add("#save", domain.Rect{Top: 100, Left: 100, Width: 80, Height: 30})

	guide, err := waypoint.New(doc, memory.NewCalloutFactory())
	if err != nil {
		log.Fatal(err)
	}

	guide.Start(ctx, []domain.Step{
		{Selector: "#save", Text: "Save your work here."},
	}, waypoint.WithTourID("editor"))

	// Controls in the callout call Next, Previous and Finish; hosts can too.
	guide.Next(ctx)
*/
package waypoint
