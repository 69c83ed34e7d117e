/*
Package ports defines the driven ports (interfaces) for the Waypoint guide.

These interfaces decouple the tour controller from the host environment,
allowing the same controller to drive a real browser page, an in-memory
document for simulation, or test doubles.

# Key Interfaces

  - Environment: Locates elements, measures the viewport and scrolls targets into view.
  - CalloutFactory / Callout: The opaque render target for a step's callout.
  - CompletionStore: Key-value persistence for "tour completed" flags.
  - Scheduler: The suspension points (next frame, fixed delays).
  - TourLoader: Retrieves tour definitions by ID.
*/
package ports
