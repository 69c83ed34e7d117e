package waypoint_test

import (
	"context"
	"fmt"
	"log"

	"github.com/aretw0/waypoint"
	"github.com/aretw0/waypoint/pkg/adapters/clock"
	"github.com/aretw0/waypoint/pkg/adapters/memory"
	"github.com/aretw0/waypoint/pkg/domain"
)

// ExampleNew_memory runs a two-step tour against an in-memory document.
// The second target is hidden, so the tour goes straight to the third.
func ExampleNew_memory() {
	doc := memory.NewDocument(domain.Viewport{Width: 1024, Height: 768})
	doc.Add("#search", domain.Rect{Top: 20, Left: 400, Width: 200, Height: 32})
	doc.Add("#beta", domain.Rect{Top: 300, Left: 40, Width: 120, Height: 40}, memory.WithStyle("none", "visible"))
	doc.Add("#help", domain.Rect{Top: 720, Left: 960, Width: 40, Height: 30})

	factory := memory.NewCalloutFactory(memory.WithFixedSize(domain.Size{Width: 240, Height: 90}))
	sched := clock.NewManual()

	guide, err := waypoint.New(doc, factory, waypoint.WithScheduler(sched))
	if err != nil {
		log.Fatal(err)
	}

	ctx := context.Background()
	guide.Start(ctx, []domain.Step{
		{Selector: "#search", Text: "Search from here."},
		{Selector: "#beta", Text: "Beta features."},
		{Selector: "#help", Text: "Ask for help."},
	}, waypoint.WithTourID("welcome"))

	for guide.Snapshot().Active {
		sched.Drain(100)
		st := factory.Last().State()
		fmt.Printf("step %d: %s top=%.0f left=%.0f arrow=%.0f\n",
			guide.Snapshot().CurrentIndex, st.Side, st.Top, st.Left, st.ArrowOffset)
		guide.Next(ctx)
	}

	done, _ := guide.IsCompleted(ctx, "welcome")
	fmt.Println("completed:", done)

	// Output:
	// step 0: bottom top=60 left=380 arrow=120
	// step 2: top top=622 left=776 arrow=204
	// completed: true
}
