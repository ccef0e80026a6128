package sfnt

import "testing"

func TestSVGPathBuilderAbsolute(t *testing.T) {
	b := NewSVGPathBuilder(SVGPathBuilderOptions{Precision: 2})
	b.MoveTo(Point{X: 0, Y: 0})
	b.LineTo(Point{X: 10, Y: 0})
	b.QuadTo(Point{X: 10, Y: 10}, Point{X: 0, Y: 10})
	b.Close()

	want := "M0,0 L10,0 Q10,10 0,10 Z"
	if got := b.Path(); got != want {
		t.Fatalf("Path() = %q, want %q", got, want)
	}
}

func TestSVGPathBuilderRelative(t *testing.T) {
	b := NewSVGPathBuilder(SVGPathBuilderOptions{Precision: 2, Relative: true})
	b.MoveTo(Point{X: 5, Y: 5})
	b.LineTo(Point{X: 15, Y: 5})
	b.Close()

	want := "M5,5 l10,0 z"
	if got := b.Path(); got != want {
		t.Fatalf("Path() = %q, want %q", got, want)
	}
}

func TestSVGPathBuilderTrimsTrailingZeros(t *testing.T) {
	b := NewSVGPathBuilder(SVGPathBuilderOptions{Precision: 3})
	b.MoveTo(Point{X: 1.5, Y: 2})
	b.LineTo(Point{X: -0.0001, Y: 3.25})

	want := "M1.5,2 L0,3.25"
	if got := b.Path(); got != want {
		t.Fatalf("Path() = %q, want %q", got, want)
	}
}

func TestSVGPathBuilderNegativeCoordinateIsItsOwnSeparator(t *testing.T) {
	b := NewSVGPathBuilder(SVGPathBuilderOptions{Precision: 2})
	b.MoveTo(Point{X: 0, Y: 0})
	b.QuadTo(Point{X: -10, Y: -5}, Point{X: -20, Y: 3})

	want := "M0,0 Q-10-5-20,3"
	if got := b.Path(); got != want {
		t.Fatalf("Path() = %q, want %q", got, want)
	}
}

func TestStrconvFormatNegativeZero(t *testing.T) {
	if got := strconvFormat(-0.00001, 2); got != "0" {
		t.Fatalf("strconvFormat(-0.00001) = %q, want \"0\"", got)
	}
}

func TestPrintBuilderTrace(t *testing.T) {
	p := NewPrintBuilder()
	p.MoveTo(Point{X: 0, Y: 0})
	p.LineTo(Point{X: 1, Y: 1})
	p.Close()

	want := "M 0.00 0.00\nL 1.00 1.00\nZ\n"
	if got := p.String(); got != want {
		t.Fatalf("String() = %q, want %q", got, want)
	}
}

func TestBoundsBuilder(t *testing.T) {
	b := newBoundsBuilder()
	if _, _, ok := b.Bounds(); ok {
		t.Fatal("Bounds() ok on empty builder")
	}

	b.MoveTo(Point{X: 5, Y: 5})
	b.LineTo(Point{X: 10, Y: 0})
	b.QuadTo(Point{X: 20, Y: 20}, Point{X: 15, Y: 3})

	min, max, ok := b.Bounds()
	if !ok {
		t.Fatal("Bounds() not ok after drawing")
	}
	wantMin, wantMax := Point{X: 5, Y: 0}, Point{X: 20, Y: 20}
	if min != wantMin || max != wantMax {
		t.Fatalf("Bounds() = (%v, %v), want (%v, %v)", min, max, wantMin, wantMax)
	}
}
