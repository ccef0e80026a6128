package sfnt

import "testing"

type recordingBuilder struct {
	ops []string
}

func (b *recordingBuilder) MoveTo(p Point) {
	b.ops = append(b.ops, sprintOp("M", p))
}
func (b *recordingBuilder) LineTo(p Point) {
	b.ops = append(b.ops, sprintOp("L", p))
}
func (b *recordingBuilder) QuadTo(ctrl, p Point) {
	b.ops = append(b.ops, sprintOp("Q", ctrl, p))
}
func (b *recordingBuilder) CubicTo(c1, c2, p Point) {
	b.ops = append(b.ops, sprintOp("C", c1, c2, p))
}
func (b *recordingBuilder) Close() { b.ops = append(b.ops, "Z") }

func sprintOp(cmd string, pts ...Point) string {
	s := cmd
	for _, p := range pts {
		s += sprintPoint(p)
	}
	return s
}

func sprintPoint(p Point) string {
	return " " + ftoa(p.X) + "," + ftoa(p.Y)
}

func ftoa(v float64) string {
	return strconvFormat(v, 0)
}

// simpleGlyphBody builds a raw glyf body (no 10-byte header) for one
// contour from a list of on-curve flags and coordinates.
func simpleGlyphBody(onCurve []bool, xs, ys []int16) []byte {
	n := len(onCurve)
	var data []byte
	be16 := func(v uint16) { data = append(data, byte(v>>8), byte(v)) }
	be16(uint16(n - 1)) // single contour, last endpoint index
	be16(0)             // instructionLength

	for i := 0; i < n; i++ {
		flag := byte(0)
		if onCurve[i] {
			flag |= flagOnCurve
		}
		data = append(data, flag)
	}
	for _, x := range xs {
		data = append(data, byte(x>>8), byte(x))
	}
	for _, y := range ys {
		data = append(data, byte(y>>8), byte(y))
	}
	return data
}

func TestSimpleOutlineSquare(t *testing.T) {
	// (0,0) (100,0) (100,100) (0,100), all on-curve. Coordinates are
	// deltas from the running (x,y), per the TrueType point encoding.
	body := simpleGlyphBody(
		[]bool{true, true, true, true},
		[]int16{0, 100, 0, -100},
		[]int16{0, 0, 100, 0},
	)
	g := &Glyph{contoursCount: 1, body: body}
	b := &recordingBuilder{}
	if err := g.BuildOutline(b, Identity()); err != nil {
		t.Fatalf("BuildOutline: %v", err)
	}
	want := []string{"M 0,0", "L 100,0", "L 100,100", "L 0,100", "Z"}
	if len(b.ops) != len(want) {
		t.Fatalf("ops = %v, want %v", b.ops, want)
	}
	for i := range want {
		if b.ops[i] != want[i] {
			t.Errorf("op[%d] = %q, want %q", i, b.ops[i], want[i])
		}
	}
}

func TestSimpleOutlineImplicitMidpoint(t *testing.T) {
	// on(0,0) off(50,100) off(100,100) on(100,0), deltas from running (x,y).
	body := simpleGlyphBody(
		[]bool{true, false, false, true},
		[]int16{0, 50, 50, 0},
		[]int16{0, 100, 0, -100},
	)
	g := &Glyph{contoursCount: 1, body: body}
	b := &recordingBuilder{}
	if err := g.BuildOutline(b, Identity()); err != nil {
		t.Fatalf("BuildOutline: %v", err)
	}
	want := []string{"M 0,0", "Q 50,100 75,100", "Q 100,100 100,0", "Z"}
	if len(b.ops) != len(want) {
		t.Fatalf("ops = %v, want %v", b.ops, want)
	}
	for i := range want {
		if b.ops[i] != want[i] {
			t.Errorf("op[%d] = %q, want %q", i, b.ops[i], want[i])
		}
	}
}

func TestSimpleOutlineSquareSVGPath(t *testing.T) {
	body := simpleGlyphBody(
		[]bool{true, true, true, true},
		[]int16{0, 100, 0, -100},
		[]int16{0, 0, 100, 0},
	)
	g := &Glyph{contoursCount: 1, body: body}
	b := NewSVGPathBuilder(SVGPathBuilderOptions{Precision: 0})
	if err := g.BuildOutline(b, Identity()); err != nil {
		t.Fatalf("BuildOutline: %v", err)
	}
	want := "M0,0 L100,0 L100,100 L0,100 Z"
	if got := b.Path(); got != want {
		t.Fatalf("Path() = %q, want %q", got, want)
	}
}

func TestSimpleOutlineImplicitMidpointSVGPath(t *testing.T) {
	body := simpleGlyphBody(
		[]bool{true, false, false, true},
		[]int16{0, 50, 50, 0},
		[]int16{0, 100, 0, -100},
	)
	g := &Glyph{contoursCount: 1, body: body}
	b := NewSVGPathBuilder(SVGPathBuilderOptions{Precision: 0})
	if err := g.BuildOutline(b, Identity()); err != nil {
		t.Fatalf("BuildOutline: %v", err)
	}
	want := "M0,0 Q50,100 75,100 Q100,100 100,0 Z"
	if got := b.Path(); got != want {
		t.Fatalf("Path() = %q, want %q", got, want)
	}
}

func TestGlyphBboxContainsPoints(t *testing.T) {
	body := simpleGlyphBody(
		[]bool{true, false, false, true},
		[]int16{0, 50, 50, 0},
		[]int16{0, 100, 0, -100},
	)
	g := &Glyph{contoursCount: 1, body: body}
	min, max, ok := g.Bbox()
	if !ok {
		t.Fatal("Bbox: ok = false")
	}
	points, err := g.simpleOutlinePoints()
	if err != nil {
		t.Fatalf("simpleOutlinePoints: %v", err)
	}
	for _, p := range points {
		if p.Coord.X < min.X || p.Coord.X > max.X || p.Coord.Y < min.Y || p.Coord.Y > max.Y {
			t.Errorf("point %v outside bbox [%v, %v]", p.Coord, min, max)
		}
	}
}

func TestGlyfTableGet(t *testing.T) {
	font := &Font{}
	loca := locaTable{0, 10, 10}
	data := make([]byte, 10)
	glyf, err := parseGlyf(font, data, loca)
	if err != nil {
		t.Fatalf("parseGlyf: %v", err)
	}
	if glyf.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", glyf.Len())
	}
	if glyf.Get(5) != nil {
		t.Fatalf("Get(5) = %v, want nil", glyf.Get(5))
	}
}
