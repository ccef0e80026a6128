package sfnt

import "math"

// Point is a 2D coordinate pair in font design units (or, after a
// Transform has been applied, whatever units that transform targets).
type Point struct {
	X, Y float64
}

// Lerp returns the linear interpolation between p and q at ratio t,
// where t=0 yields p and t=1 yields q.
func (p Point) Lerp(q Point, t float64) Point {
	return Point{
		X: p.X*(1-t) + q.X*t,
		Y: p.Y*(1-t) + q.Y*t,
	}
}

func (p Point) add(q Point) Point {
	return Point{p.X + q.X, p.Y + q.Y}
}

func (p Point) sub(q Point) Point {
	return Point{p.X - q.X, p.Y - q.Y}
}

// Transform is a row-major 2x3 affine matrix:
//
//	[ M00 M01 M02 ]
//	[ M10 M11 M12 ]
//
// with an implicit [0 0 1] last row, applied as
// apply(p) = (M00*x + M01*y + M02, M10*x + M11*y + M12).
type Transform struct {
	M00, M01, M02 float64
	M10, M11, M12 float64
}

// Identity returns the identity transform.
func Identity() Transform {
	return Transform{1, 0, 0, 0, 1, 0}
}

// Apply transforms a point.
func (t Transform) Apply(p Point) Point {
	return Point{
		X: p.X*t.M00 + p.Y*t.M01 + t.M02,
		Y: p.X*t.M10 + p.Y*t.M11 + t.M12,
	}
}

// Compose returns t @ other, i.e. applying the result to a point is
// equivalent to applying other first, then t.
func (t Transform) Compose(other Transform) Transform {
	return Transform{
		M00: t.M00*other.M00 + t.M01*other.M10,
		M01: t.M00*other.M01 + t.M01*other.M11,
		M02: t.M00*other.M02 + t.M01*other.M12 + t.M02,
		M10: t.M10*other.M00 + t.M11*other.M10,
		M11: t.M10*other.M01 + t.M11*other.M11,
		M12: t.M10*other.M02 + t.M11*other.M12 + t.M12,
	}
}

// Translate returns t @ translate(tx, ty).
func (t Transform) Translate(tx, ty float64) Transform {
	return t.Compose(Transform{1, 0, tx, 0, 1, ty})
}

// Scale returns t @ scale(sx, sy).
func (t Transform) Scale(sx, sy float64) Transform {
	return t.Compose(Transform{sx, 0, 0, 0, sy, 0})
}

// Rotate returns t @ rotate(angle), angle in radians.
func (t Transform) Rotate(angle float64) Transform {
	cos, sin := math.Cos(angle), math.Sin(angle)
	return t.Compose(Transform{cos, -sin, 0, sin, cos, 0})
}
