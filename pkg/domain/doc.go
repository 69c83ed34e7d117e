/*
Package domain contains the core domain models of the Waypoint guide.

It defines the entities the tour controller reasons about: the steps of a tour,
the live session, the geometry used to anchor a callout next to its target, and
the events emitted while a tour runs. This package is kept pure and free of
external dependencies like I/O or rendering, following Hexagonal Architecture
principles.

# Key Entities

  - Step: A target selector plus the content shown next to it.
  - Tour: A named, loadable sequence of steps with its presentation settings.
  - Session: The runtime snapshot of the active tour (steps, index, flags).
  - Placement: Where a callout goes relative to its target (side, top, left, arrow).
*/
package domain
