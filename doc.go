// Package quadtree implements a fixed-depth, flat-array quadtree over a
// bounded 2D world, specialized for interactive placement of oriented
// rectangles.
//
// The tree projects world coordinates onto an 8-bit-normalized grid and
// stores items in an 8-level pyramid (4^0 + 4^1 + ... + 4^7 = 21845 cells at
// full depth), packed into a single growable slice with open-addressed
// probing within each level. An item inserted without a predicate lives at
// the deepest cell that fully contains its axis-aligned bounding box; an item
// accepted by a predicate-checked insert is stored at the root cell (level 0),
// where every later predicate-checked insert compares against it.
//
// Three insertion operations share one probing core:
//
//   - Insert: unconditional, never rejects.
//   - InsertUnlessIntersecting: rejects when the candidate's RotatedRect
//     intersects the RotatedRect of a stored item in a cell the insertion
//     visits, using the exact separating-axis predicate in Intersects.
//   - InsertChecked: takes an arbitrary predicate over (candidate, stored)
//     pairs; a nil predicate behaves like Insert.
//
// Why a flat array instead of a pointer tree? Cache locality and
// constant-time level addressing, at the cost of occasionally probing
// through unrelated cells' slots when a level's occupancy grows. This is the
// design used for randomized non-overlap packing problems, where insertion
// volume is high and removal is never required.
//
// The tree never removes or relocates items, never resizes its world after
// construction, and is not safe for concurrent mutation; see Tree for
// details.
package quadtree
