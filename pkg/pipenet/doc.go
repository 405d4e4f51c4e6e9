// Package pipenet maintains networks of connected pipe segments on a grid.
//
// A Segment occupies one cell and faces along one axis. Anchoring a
// segment (Graph.Attach) links it to the anchored, axis-compatible
// segments in its two adjacent cells and joins their networks, merging
// as many as it bridges. Unanchoring (Graph.Detach) removes those links
// and, unless the segment was a leaf or the last member, recomputes the
// connected components of its network and splits off the pieces.
//
// Invariants maintained across every operation:
//   - adjacency is symmetric;
//   - an anchored segment always belongs to exactly one network, shared
//     with all of its neighbors;
//   - every network is exactly one connected component and is discarded
//     once empty.
//
// The Graph is single-threaded. Spatial lookups are injected through
// GridQuery and presentation refreshes leave through Observer.
package pipenet
