package quadtree

import "math"

// scalar is the domain of BoundingBox coordinates: real-valued world
// coordinates (float32) and 8-bit-normalized grid coordinates (uint8).
type scalar interface {
	~float32 | ~uint8
}

// BoundingBox is an axis-aligned rectangle with invariant X0 <= X1 and
// Y0 <= Y1. It is parameterized over the coordinate domain: float32 for
// world-space boxes, uint8 for grid-space boxes after normalization.
type BoundingBox[S scalar] struct {
	X0, Y0, X1, Y1 S
}

// RotatedRect is an oriented rectangle: center (X, Y), width W, height H, and
// counter-clockwise rotation A in radians.
type RotatedRect struct {
	X, Y, W, H, A float32
}

// Bounds returns the minimal axis-aligned BoundingBox enclosing r's four
// rotated corners. Pure function; never fails, including for degenerate
// (zero-size) rectangles.
func (r RotatedRect) Bounds() BoundingBox[float32] {
	cosA := float32(math.Cos(float64(r.A)))
	sinA := float32(math.Sin(float64(r.A)))
	c := float32(math.Abs(float64(cosA)))
	s := float32(math.Abs(float64(sinA)))

	ex := r.W / 2
	ey := r.H / 2

	rx := ex*c + ey*s
	ry := ex*s + ey*c

	return BoundingBox[float32]{
		X0: r.X - rx,
		Y0: r.Y - ry,
		X1: r.X + rx,
		Y1: r.Y + ry,
	}
}

// vec2 is a minimal 2D vector used only by Intersects, mirroring the Vector
// type in the original implementation this predicate was ported from.
type vec2 struct{ x, y float32 }

func (v vec2) add(o vec2) vec2 { return vec2{v.x + o.x, v.y + o.y} }
func (v vec2) sub(o vec2) vec2 { return vec2{v.x - o.x, v.y - o.y} }
func (v vec2) neg() vec2       { return vec2{-v.x, -v.y} }

// rotate rotates v clockwise by a radians (matches the sign convention of
// the separating-axis derivation in Intersects: rotating the plane by -B.A
// to make B axis-aligned is expressed here as rotate(B.A)).
func (v vec2) rotate(a float32) vec2 {
	cosa := float32(math.Cos(float64(a)))
	sina := float32(math.Sin(float64(a)))
	return vec2{
		v.x*cosa + v.y*sina,
		-v.x*sina + v.y*cosa,
	}
}

// Intersects reports whether r and other, as oriented rectangles, overlap.
// It implements Oren Becker's 2001 separating-axis test for two rotated
// rectangles: translate so r is centered at the origin, rotate the plane so
// other becomes axis-aligned, then test r's extremal corners against
// other's axis-aligned bounds on both axes.
//
// The predicate is total (never fails) and symmetric up to floating-point
// rounding; callers must not rely on exact symmetry at boundary
// configurations (two rectangles touching edge-to-edge may evaluate
// differently depending on argument order due to rounding).
func (r RotatedRect) Intersects(other RotatedRect) bool {
	ang := r.A - other.A
	cosa := float32(math.Cos(float64(ang)))
	sina := float32(math.Sin(float64(ang)))

	// Move other to make r canonical, then rotate clockwise by other.A so
	// other becomes axis-aligned.
	c := vec2{other.X, other.Y}.sub(vec2{r.X, r.Y})
	c = c.rotate(other.A)

	half := vec2{other.W / 2, other.H / 2}
	bl := c.sub(half)
	tr := c.add(half)

	// Two extremal corners of r in this frame.
	cost := r.W / 2 * cosa
	sint := r.W / 2 * sina
	ax := -r.H / 2 * sina
	ay := r.H / 2 * cosa

	a := vec2{ax + cost, ay + sint}
	b := vec2{ax - cost, ay - sint}

	// Normalize so a is the vertical extremum and b the horizontal one.
	t := sina * cosa
	if t < 0 {
		a, b = b, a
	}
	if sina < 0 {
		b = b.neg()
	}

	// Horizontal overlap rejection.
	if b.x > tr.x || b.x > -bl.x {
		return false
	}

	// Vertical extent of r restricted to other's horizontal slab,
	// defaulting to the axis-aligned case.
	ext1 := a.y
	ext2 := -a.y

	if t != 0 {
		dx1 := bl.x - a.x
		dx2 := tr.x - a.x
		if dx1*dx2 > 0 {
			dx := a.x
			if dx1 < 0 {
				dx -= b.x
				ext1 -= b.y
				dx1 = dx2
			} else {
				dx += b.x
				ext1 += b.y
			}
			ext1 *= dx1
			ext1 /= dx
			ext1 += a.y
		}

		dx1 = bl.x + a.x
		dx2 = tr.x + a.x
		if dx1*dx2 > 0 {
			dx := -a.x
			if dx1 < 0 {
				dx -= b.x
				ext2 -= b.y
				dx1 = dx2
			} else {
				dx += b.x
				ext2 += b.y
			}
			ext2 *= dx1
			ext2 /= dx
			ext2 -= a.y
		}
	}

	if ext1 > ext2 {
		ext1, ext2 = ext2, ext1
	}

	return !((ext1 < bl.y && ext2 < bl.y) || (ext1 > tr.y && ext2 > tr.y))
}
