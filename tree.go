package quadtree

import (
	"math"
	"math/bits"

	"go.uber.org/zap"
)

// levels holds the flat-array starting offset of each of the 8 pyramid
// levels: levels[l] = sum(4^j for j in 0..l). levels[7] + 4^7 == 21845, the
// full-depth capacity.
var levels = [8]int{0, 1, 5, 21, 85, 341, 1365, 5461}

// FullCapacity is the number of nodes a Tree occupies once every pyramid
// level is fully materialized (sum of 4^0..4^7).
const FullCapacity = 21845

// node is one slot of the flat pyramid array. count is only meaningful at a
// level's header slot (levels[l]); occupied/homeIndex/item describe the slot
// itself when it holds an item.
type node[T any] struct {
	count     int
	occupied  bool
	homeIndex int
	item      T
}

// Tree is the quadtree index: a fixed-size world with a grow-only flat node
// array. The zero value is not usable; construct with New.
//
// Tree is not safe for concurrent mutation. Concurrent readers with no
// writer are safe, subject to the host language's memory model making
// writes visible before any reader observes them.
type Tree[T any] struct {
	width, height float32
	nodes         []node[T]
	cfg           config
}

// New constructs an empty Tree over a width x height world. width and height
// must be finite and strictly positive.
func New[T any](width, height float32, opts ...Option) (*Tree[T], error) {
	if !validDimension(width) || !validDimension(height) {
		return nil, ErrInvalidWorldDimensions
	}

	// preallocatedLevels is -1 unless WithPreallocatedLevels sets it.
	cfg := config{log: log, preallocatedLevels: -1}
	for _, opt := range opts {
		opt(&cfg)
	}

	t := &Tree[T]{width: width, height: height, cfg: cfg}
	if cfg.preallocatedLevels >= 0 {
		// levels[n] + 4^n - 1 is the last index of level n.
		n := cfg.preallocatedLevels
		lastIndexOfLevel := levels[n] + (1 << uint(2*n)) - 1
		t.ensureLength(lastIndexOfLevel)
	}
	return t, nil
}

func validDimension(v float32) bool {
	return v > 0 && !math.IsNaN(float64(v)) && !math.IsInf(float64(v), 0)
}

func (t *Tree[T]) logger() *zap.SugaredLogger {
	if t.cfg.log != nil {
		return t.cfg.log
	}
	return log
}

// bsr is the bit-scan-reverse primitive: the index of the highest set bit of
// d, counting from 0. Must not be called with d == 0.
func bsr(d uint8) uint8 {
	return 7 - uint8(bits.LeadingZeros8(d))
}

// level returns the finest (deepest) pyramid level at which a bounding box
// whose bounds differ by XOR-delta d on one axis still fits inside a single
// cell on that axis; one level finer, the box straddles a cell boundary.
func level(d uint8) uint8 {
	if d == 0 {
		return 7
	}
	return 7 - bsr(d)
}

// toGrid maps a world-space bounding box into the 8-bit grid, clamping to
// the world extents before scaling and flooring/ceiling into [0, 255].
func (t *Tree[T]) toGrid(bbox BoundingBox[float32]) BoundingBox[uint8] {
	invW := 256 / t.width
	invH := 256 / t.height

	x0 := clampByte(math.Floor(float64(max32(bbox.X0, 0) * invW)))
	y0 := clampByte(math.Floor(float64(max32(bbox.Y0, 0) * invH)))
	x1 := clampByte(math.Ceil(float64(min32(bbox.X1, t.width) * invW)))
	y1 := clampByte(math.Ceil(float64(min32(bbox.Y1, t.height) * invH)))

	return BoundingBox[uint8]{X0: x0, Y0: y0, X1: x1, Y1: y1}
}

func max32(a, b float32) float32 {
	if a > b {
		return a
	}
	return b
}

func min32(a, b float32) float32 {
	if a < b {
		return a
	}
	return b
}

func clampByte(v float64) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 255 {
		return 255
	}
	return uint8(v)
}

// naturalLevel computes ell* (the item's natural level) and the grid-cell
// quotients at that level, used as the fixed base for home-index computation
// while descending toward the root: see homeIndex for why that base stays
// pinned to ell* rather than tracking the level currently being probed.
func naturalLevel(g BoundingBox[uint8]) (lstar uint8, qx, qy uint8) {
	dx := g.X0 ^ g.X1
	dy := g.Y0 ^ g.Y1

	lx := level(dx)
	ly := level(dy)

	lstar = lx
	if ly < lstar {
		lstar = ly
	}

	shift := uint(8 - lstar)
	qx = g.X0 >> shift
	qy = g.Y0 >> shift
	return lstar, qx, qy
}

// homeIndex computes the flat index of the target cell at candidate level
// ell, given the natural level lstar and its fixed quotients qx, qy. At
// ell == 0 this is always the root. At ell > 0 the level offset and quotient
// shift both stay keyed off lstar rather than ell: the home identity an item
// is tagged with is fixed at its natural level and carried unchanged as
// probing descends through coarser levels, not recomputed as a level-ell-native
// address. This is intentional, not a bug; see the open design note in
// DESIGN.md.
func homeIndex(lstar, ell, qx, qy uint8) int {
	if ell == 0 {
		return levels[0]
	}
	return levels[lstar] + int(qy)*(1<<ell) + int(qx)
}

// ensureLength grows nodes in whole-level increments until its length
// exceeds requiredIndex, and returns the resulting length. It never shrinks
// the array.
func (t *Tree[T]) ensureLength(requiredIndex int) int {
	if len(t.nodes) > requiredIndex {
		return len(t.nodes)
	}

	newLength := 0
	for ell := 0; ell < 8; ell++ {
		newLength += 1 << uint(2*ell)
		if newLength > requiredIndex {
			break
		}
	}

	for len(t.nodes) < newLength {
		t.nodes = append(t.nodes, node[T]{})
	}
	return len(t.nodes)
}

// Insert places item unconditionally; it never rejects.
func (t *Tree[T]) Insert(item T, bbox BoundingBox[float32]) {
	t.InsertChecked(item, bbox, nil)
}

// InsertChecked inserts item, consulting predicate(candidate, stored) against
// every already-stored item homed in a cell that insertion descends through.
// predicate returning true rejects the insertion outright; an accepted
// predicate-checked item is stored at the root cell (level 0). A nil
// predicate behaves exactly like Insert: the item is stored at its natural
// (deepest containing) cell and the call always returns true.
func (t *Tree[T]) InsertChecked(item T, bbox BoundingBox[float32], predicate func(candidate, stored T) bool) bool {
	g := t.toGrid(bbox)
	lstar, qx, qy := naturalLevel(g)

	t.logger().Debugw("quadtree: selected natural level", "level", lstar)

	for ell := int(lstar); ell >= 0; ell-- {
		h := homeIndex(lstar, uint8(ell), qx, qy)
		length := t.ensureLength(h)

		k := levels[ell]
		count := t.nodes[levels[ell]].count
		remaining := count
		slot := -1

		for i := 0; i < length; i++ {
			n := &t.nodes[k]
			if n.occupied {
				if n.homeIndex == h {
					if predicate != nil && predicate(item, n.item) {
						t.logger().Debugw("quadtree: insertion rejected", "level", ell, "homeIndex", h)
						return false
					}
					remaining--
				}
			} else {
				if slot == -1 {
					slot = k
				}
				if remaining == 0 {
					break
				}
			}

			k++
			if k == length {
				k = 0
			}
		}

		if ell == 0 || predicate == nil {
			chosen := slot
			if chosen == -1 {
				t.nodes = append(t.nodes, node[T]{})
				chosen = len(t.nodes) - 1
			}
			t.nodes[chosen] = node[T]{occupied: true, homeIndex: h, item: item}
			t.nodes[levels[ell]].count++
			t.logger().Debugw("quadtree: committed", "level", ell, "slot", chosen, "homeIndex", h)
			return true
		}
	}

	return false
}

// Intersectable is satisfied by payload types usable with
// InsertUnlessIntersecting: a symmetric-up-to-rounding binary predicate over
// two items of the same type.
type Intersectable[T any] interface {
	Intersects(other T) bool
}

// InsertUnlessIntersecting inserts item unless it Intersects some
// already-stored item whose home cell is visited during the descent from
// item's natural level to the root. It is a free function rather than a
// Tree method because Go does not allow a method to introduce a type
// parameter beyond the receiver's own.
func InsertUnlessIntersecting[T Intersectable[T]](t *Tree[T], item T, bbox BoundingBox[float32]) bool {
	return t.InsertChecked(item, bbox, func(candidate, stored T) bool {
		return candidate.Intersects(stored)
	})
}
