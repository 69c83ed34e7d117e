/*
Package placement computes where a callout goes relative to its target.

The computation is a pure function of geometry: the target's bounding box,
the callout's natural size, the viewport and its scroll offset. It prefers the
side of the target with more room, flips once if that side overflows, centers
the callout horizontally over the target, clamps it into the viewport and
aligns the arrow with the target's midpoint.
*/
package placement
