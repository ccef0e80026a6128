package sfnt

import (
	"fmt"
	"math"
	"strings"
)

// OutlineBuilder receives the decoded contours of a glyph. MoveTo
// starts a new contour, LineTo/QuadTo/CubicTo extend the current one,
// and Close ends it. Coordinates are whatever units the caller's
// Transform targets.
type OutlineBuilder interface {
	MoveTo(p Point)
	LineTo(p Point)
	QuadTo(ctrl, p Point)
	CubicTo(ctrl1, ctrl2, p Point)
	Close()
}

// boundsBuilder accumulates the bounding box of every point it sees,
// control points included, mirroring a conservative (not tight) bbox.
type boundsBuilder struct {
	min, max Point
	any      bool
	cur      Point
}

func newBoundsBuilder() *boundsBuilder {
	return &boundsBuilder{}
}

func (b *boundsBuilder) touch(p Point) {
	if !b.any {
		b.min, b.max, b.any = p, p, true
		return
	}
	if p.X < b.min.X {
		b.min.X = p.X
	}
	if p.Y < b.min.Y {
		b.min.Y = p.Y
	}
	if p.X > b.max.X {
		b.max.X = p.X
	}
	if p.Y > b.max.Y {
		b.max.Y = p.Y
	}
}

func (b *boundsBuilder) MoveTo(p Point)  { b.touch(p); b.cur = p }
func (b *boundsBuilder) LineTo(p Point)  { b.touch(p); b.cur = p }
func (b *boundsBuilder) QuadTo(ctrl, p Point) {
	b.touch(ctrl)
	b.touch(p)
	b.cur = p
}
func (b *boundsBuilder) CubicTo(ctrl1, ctrl2, p Point) {
	b.touch(ctrl1)
	b.touch(ctrl2)
	b.touch(p)
	b.cur = p
}
func (b *boundsBuilder) Close() {}

// Bounds returns the accumulated bbox, or ok=false if nothing was ever
// drawn.
func (b *boundsBuilder) Bounds() (min, max Point, ok bool) {
	return b.min, b.max, b.any
}

// PrintBuilder writes a human-readable trace of outline commands,
// useful for debugging a glyph's decode. It mirrors the original
// implementation's plain stdout dump, one command per line.
type PrintBuilder struct {
	w       *strings.Builder
	Verbose bool
}

// NewPrintBuilder returns a PrintBuilder writing into an internal buffer.
func NewPrintBuilder() *PrintBuilder {
	return &PrintBuilder{w: &strings.Builder{}}
}

func (p *PrintBuilder) MoveTo(pt Point) {
	fmt.Fprintf(p.w, "M %.2f %.2f\n", pt.X, pt.Y)
}
func (p *PrintBuilder) LineTo(pt Point) {
	fmt.Fprintf(p.w, "L %.2f %.2f\n", pt.X, pt.Y)
}
func (p *PrintBuilder) QuadTo(ctrl, pt Point) {
	fmt.Fprintf(p.w, "Q %.2f %.2f %.2f %.2f\n", ctrl.X, ctrl.Y, pt.X, pt.Y)
}
func (p *PrintBuilder) CubicTo(c1, c2, pt Point) {
	fmt.Fprintf(p.w, "C %.2f %.2f %.2f %.2f %.2f %.2f\n", c1.X, c1.Y, c2.X, c2.Y, pt.X, pt.Y)
}
func (p *PrintBuilder) Close() { p.w.WriteString("Z\n") }

// String returns the accumulated trace.
func (p *PrintBuilder) String() string { return p.w.String() }

// SVGPathBuilderOptions configures SVGPathBuilder's emission.
type SVGPathBuilderOptions struct {
	// Precision is the number of digits after the decimal point;
	// NewSVGPathBuilder replaces a value <= 0 with 2.
	Precision int
	// Relative emits lowercase relative-coordinate commands (m/l/q/c/z)
	// instead of uppercase absolute ones; the path's first MoveTo is
	// still written as an absolute "M".
	Relative bool
}

// SVGPathBuilder renders an SVG path "d" attribute from outline
// commands, per spec.md §4.D.
type SVGPathBuilder struct {
	opts    SVGPathBuilderOptions
	w       strings.Builder
	cur     Point
	started bool
}

// NewSVGPathBuilder returns an SVGPathBuilder with the given options.
func NewSVGPathBuilder(opts SVGPathBuilderOptions) *SVGPathBuilder {
	if opts.Precision <= 0 {
		opts.Precision = 2
	}
	return &SVGPathBuilder{opts: opts}
}

func (b *SVGPathBuilder) fmtNum(v float64) string {
	s := strconvFormat(v, b.opts.Precision)
	return s
}

// roundTo rounds v to the builder's precision, half away from zero,
// matching the rounding strconvFormat applies before rendering — used
// here to decide separator placement on the same value that gets
// written out.
func (b *SVGPathBuilder) roundTo(v float64) float64 {
	scale := math.Pow(10, float64(b.opts.Precision))
	return math.Round(v*scale) / scale
}

// emit writes a command letter followed by its points, reproducing
// the original SVG writer's compaction: a point's x and y are joined
// by a comma unless y is negative (its sign serves as the separator
// instead), and a point gets a leading space only when it isn't the
// command's first point and its x is non-negative. Adjacent commands
// are always separated by a space.
func (b *SVGPathBuilder) emit(cmd string, pts ...Point) {
	if b.w.Len() > 0 {
		b.w.WriteByte(' ')
	}
	b.w.WriteString(cmd)
	for i, p := range pts {
		x, y := p.X, p.Y
		if b.opts.Relative {
			x, y = x-b.cur.X, y-b.cur.Y
		}
		x, y = b.roundTo(x), b.roundTo(y)
		if i > 0 && x >= 0 {
			b.w.WriteByte(' ')
		}
		b.w.WriteString(b.fmtNum(x))
		if y >= 0 {
			b.w.WriteByte(',')
		}
		b.w.WriteString(b.fmtNum(y))
	}
}

func (b *SVGPathBuilder) MoveTo(p Point) {
	cmd := "M"
	if b.opts.Relative && b.started {
		cmd = "m"
	}
	b.emit(cmd, p)
	b.cur = p
	b.started = true
}

func (b *SVGPathBuilder) LineTo(p Point) {
	cmd := "L"
	if b.opts.Relative {
		cmd = "l"
	}
	b.emit(cmd, p)
	b.cur = p
}

func (b *SVGPathBuilder) QuadTo(ctrl, p Point) {
	cmd := "Q"
	if b.opts.Relative {
		cmd = "q"
	}
	b.emit(cmd, ctrl, p)
	b.cur = p
}

func (b *SVGPathBuilder) CubicTo(c1, c2, p Point) {
	cmd := "C"
	if b.opts.Relative {
		cmd = "c"
	}
	b.emit(cmd, c1, c2, p)
	b.cur = p
}

func (b *SVGPathBuilder) Close() {
	if b.w.Len() > 0 {
		b.w.WriteByte(' ')
	}
	if b.opts.Relative {
		b.w.WriteString("z")
	} else {
		b.w.WriteString("Z")
	}
}

// Path returns the accumulated "d" attribute value.
func (b *SVGPathBuilder) Path() string { return b.w.String() }

// strconvFormat trims trailing zeros from a fixed-precision float
// format, matching common SVG-path-generator minification.
func strconvFormat(v float64, precision int) string {
	scale := math.Pow(10, float64(precision))
	rounded := math.Round(v*scale) / scale
	s := fmt.Sprintf("%.*f", precision, rounded)
	if strings.Contains(s, ".") {
		s = strings.TrimRight(s, "0")
		s = strings.TrimRight(s, ".")
	}
	if s == "" || s == "-0" {
		s = "0"
	}
	return s
}
