// Copyright 2010 The Freetype-Go Authors. All rights reserved.
// Use of this source code is governed by your choice of either the
// FreeType License or the GNU General Public License version 2 (or
// any later version), both of which can be found in the LICENSE file.

package sfnt

import "github.com/sirupsen/logrus"

// Flags for decoding a simple glyph's run-length encoded points. These
// are documented at
// http://developer.apple.com/fonts/TTRefMan/RM06/Chap6glyf.html.
const (
	flagOnCurve = 1 << iota
	flagXShortVector
	flagYShortVector
	flagRepeat
	flagXSameOrPositive
	flagYSameOrPositive
)

// Flags for decoding a composite glyph's components.
const (
	flagArg1And2AreWords = 1 << iota
	flagArgsAreXYValues
	flagRoundXYToGrid
	flagWeHaveAScale
	flagCompositeUnused
	flagMoreComponents
	flagWeHaveAnXAndYScale
	flagWeHaveATwoByTwo
)

// GlyphPoint is one decoded contour point.
type GlyphPoint struct {
	Coord          Point
	OnCurve        bool
	LastInContour  bool
}

// Glyph is a single glyph's header plus its (lazily interpreted) body.
// A Glyph carries a back-reference to its owning Font because
// composite glyphs recurse by glyph id into the same glyf table.
type Glyph struct {
	font          *Font
	glyphID       int
	contoursCount int16
	min, max      Point
	body          []byte // the bytes following the 10-byte glyph header
}

// ContoursCount is the raw contours_count field: >=0 for a simple
// glyph (0 meaning empty), <0 for composite.
func (g *Glyph) ContoursCount() int16 { return g.contoursCount }

// parseGlyph decodes a single glyph's 10-byte header and keeps the
// remaining body for lazy outline decoding.
func parseGlyph(font *Font, glyphID int, data []byte) (*Glyph, error) {
	if len(data) == 0 {
		return &Glyph{font: font, glyphID: glyphID}, nil
	}
	r := newReader(data)
	contoursCount, err := r.readI16()
	if err != nil {
		return nil, err
	}
	minX, err := r.readI16()
	if err != nil {
		return nil, err
	}
	minY, err := r.readI16()
	if err != nil {
		return nil, err
	}
	maxX, err := r.readI16()
	if err != nil {
		return nil, err
	}
	maxY, err := r.readI16()
	if err != nil {
		return nil, err
	}
	return &Glyph{
		font:          font,
		glyphID:       glyphID,
		contoursCount: contoursCount,
		min:           Point{float64(minX), float64(minY)},
		max:           Point{float64(maxX), float64(maxY)},
		body:          data[10:],
	}, nil
}

// BuildOutline drives builder through the glyph's outline, applying tr
// to every emitted coordinate. Simple glyphs emit directly; composite
// glyphs recurse into their component glyphs with composed transforms.
func (g *Glyph) BuildOutline(builder OutlineBuilder, tr Transform) error {
	if g.contoursCount >= 0 {
		return g.buildSimpleOutline(builder, tr)
	}
	return g.buildCompositeOutline(builder, tr)
}

// Bbox returns an inclusive bounding box over every point the glyph's
// decoder would touch — for simple glyphs this is a scan of the raw
// decoded contour points (on- and off-curve alike), not the (possibly
// unreliable) head-table bbox; for composite glyphs it is the union of
// the children's bounds, computed by running a BoundsBuilder.
func (g *Glyph) Bbox() (min, max Point, ok bool) {
	if g.contoursCount < 0 {
		bb := newBoundsBuilder()
		if err := g.BuildOutline(bb, Identity()); err != nil {
			return Point{}, Point{}, false
		}
		return bb.Bounds()
	}
	if g.contoursCount == 0 {
		return Point{}, Point{}, false
	}
	points, err := g.simpleOutlinePoints()
	if err != nil || len(points) == 0 {
		return Point{}, Point{}, false
	}
	min, max = points[0].Coord, points[0].Coord
	for _, p := range points[1:] {
		if p.Coord.X < min.X {
			min.X = p.Coord.X
		}
		if p.Coord.Y < min.Y {
			min.Y = p.Coord.Y
		}
		if p.Coord.X > max.X {
			max.X = p.Coord.X
		}
		if p.Coord.Y > max.Y {
			max.Y = p.Coord.Y
		}
	}
	return min, max, true
}

// simpleOutlinePoints decodes the run-length encoded flag/coordinate
// streams of a simple glyph into a flat list of GlyphPoints, per
// spec.md §4.C steps 1-6.
func (g *Glyph) simpleOutlinePoints() ([]GlyphPoint, error) {
	if g.contoursCount == 0 {
		return nil, nil
	}
	r := newReader(g.body)

	endpoints := make([]int, g.contoursCount)
	for i := range endpoints {
		v, err := r.readU16()
		if err != nil {
			return nil, err
		}
		endpoints[i] = int(v)
	}
	pointsCount := endpoints[len(endpoints)-1] + 1
	if pointsCount <= 1 {
		// Well-formed no-op per spec.md §4.C step 1.
		return nil, nil
	}

	instructionLength, err := r.readU16()
	if err != nil {
		return nil, err
	}
	r.skip(int(instructionLength))

	endpointSet := make(map[int]bool, len(endpoints))
	for _, e := range endpoints {
		endpointSet[e] = true
	}

	flags := make([]byte, 0, pointsCount)
	for len(flags) < pointsCount {
		flag, err := r.readU8()
		if err != nil {
			return nil, err
		}
		repeats := 1
		if flag&flagRepeat != 0 {
			extra, err := r.readU8()
			if err != nil {
				return nil, err
			}
			repeats += int(extra)
		}
		if repeats > pointsCount-len(flags) {
			// Truncate a run that would overshoot: tolerate malformed
			// input per spec.md §4.C step 3.
			repeats = pointsCount - len(flags)
		}
		for i := 0; i < repeats; i++ {
			flags = append(flags, flag)
		}
	}

	xLen, yLen := 0, 0
	for _, flag := range flags {
		switch {
		case flag&flagXShortVector != 0:
			xLen++
		case flag&flagXSameOrPositive == 0:
			xLen += 2
		}
		switch {
		case flag&flagYShortVector != 0:
			yLen++
		case flag&flagYSameOrPositive == 0:
			yLen += 2
		}
	}

	xStart := r.tell()
	yStart := xStart + xLen
	yEnd := yStart + yLen
	xReader, err := r.view(xStart, yStart)
	if err != nil {
		return nil, err
	}
	yReader, err := r.view(yStart, yEnd)
	if err != nil {
		return nil, err
	}

	points := make([]GlyphPoint, len(flags))
	var x, y int
	for i, flag := range flags {
		dx, err := decodeDelta(xReader, flag, flagXShortVector, flagXSameOrPositive)
		if err != nil {
			return nil, err
		}
		x += dx
		dy, err := decodeDelta(yReader, flag, flagYShortVector, flagYSameOrPositive)
		if err != nil {
			return nil, err
		}
		y += dy
		points[i] = GlyphPoint{
			Coord:         Point{float64(x), float64(y)},
			OnCurve:       flag&flagOnCurve != 0,
			LastInContour: endpointSet[i],
		}
	}
	return points, nil
}

// decodeDelta reads one coordinate delta according to the short-vector
// and same-or-positive flag bits, per spec.md §4.C step 6.
func decodeDelta(r *reader, flag byte, shortBit, sameBit byte) (int, error) {
	if flag&shortBit != 0 {
		v, err := r.readU8()
		if err != nil {
			return 0, err
		}
		if flag&sameBit != 0 {
			return int(v), nil
		}
		return -int(v), nil
	}
	if flag&sameBit != 0 {
		return 0, nil
	}
	v, err := r.readI16()
	if err != nil {
		return 0, err
	}
	return int(v), nil
}

// buildSimpleOutline reassembles contours from the raw point stream
// into move_to/line_to/quad_to/close calls, per spec.md §4.C's
// TrueType quadratic B-spline reconstruction rules.
func (g *Glyph) buildSimpleOutline(builder OutlineBuilder, tr Transform) error {
	points, err := g.simpleOutlinePoints()
	if err != nil {
		return err
	}

	var firstOn, firstOff, lastOff *Point
	for i := range points {
		p := points[i]
		switch {
		case firstOn == nil && firstOff == nil:
			if p.OnCurve {
				v := p.Coord
				firstOn = &v
				builder.MoveTo(tr.Apply(v))
			} else {
				v := p.Coord
				firstOff = &v
			}
		case firstOn == nil && firstOff != nil:
			if p.OnCurve {
				v := p.Coord
				firstOn = &v
				builder.MoveTo(tr.Apply(v))
			} else {
				mid := firstOff.Lerp(p.Coord, 0.5)
				firstOn = &mid
				v := p.Coord
				lastOff = &v
				builder.MoveTo(tr.Apply(mid))
			}
		case lastOff != nil:
			if p.OnCurve {
				builder.QuadTo(tr.Apply(*lastOff), tr.Apply(p.Coord))
				lastOff = nil
			} else {
				mid := lastOff.Lerp(p.Coord, 0.5)
				builder.QuadTo(tr.Apply(*lastOff), tr.Apply(mid))
				v := p.Coord
				lastOff = &v
			}
		default:
			if p.OnCurve {
				builder.LineTo(tr.Apply(p.Coord))
			} else {
				v := p.Coord
				lastOff = &v
			}
		}

		if p.LastInContour {
			if firstOff != nil && lastOff != nil {
				mid := lastOff.Lerp(*firstOff, 0.5)
				builder.QuadTo(tr.Apply(*lastOff), tr.Apply(mid))
				lastOff = nil
			}
			if firstOn != nil {
				switch {
				case firstOff != nil:
					builder.QuadTo(tr.Apply(*firstOff), tr.Apply(*firstOn))
				case lastOff != nil:
					builder.QuadTo(tr.Apply(*lastOff), tr.Apply(*firstOn))
				}
			}
			builder.Close()
			firstOn, firstOff, lastOff = nil, nil, nil
		}
	}
	return nil
}

// buildCompositeOutline walks the composite glyph's component list,
// composing each component's affine transform with tr and recursing
// into the referenced child glyph, per spec.md §4.C.
func (g *Glyph) buildCompositeOutline(builder OutlineBuilder, tr Transform) error {
	r := newReader(g.body)
	glyf, err := g.font.Glyf()
	if err != nil {
		return err
	}
	for {
		flags, err := r.readU16()
		if err != nil {
			return err
		}
		childID, err := r.readU16()
		if err != nil {
			return err
		}
		child := glyf.Get(int(childID))
		if child == nil {
			logrus.WithFields(logrus.Fields{
				"parent_glyph_id": g.glyphID,
				"child_glyph_id":  childID,
			}).Warn("composite glyph references invalid child glyph, skipping")
			if flags&flagMoreComponents == 0 {
				break
			}
			continue
		}

		m00, m01, m10, m11 := 1.0, 0.0, 0.0, 1.0
		m02, m12 := 0.0, 0.0
		if flags&flagArgsAreXYValues != 0 {
			if flags&flagArg1And2AreWords != 0 {
				dx, err := r.readI16()
				if err != nil {
					return err
				}
				dy, err := r.readI16()
				if err != nil {
					return err
				}
				m02, m12 = float64(dx), float64(dy)
			} else {
				dx, err := r.readI8()
				if err != nil {
					return err
				}
				dy, err := r.readI8()
				if err != nil {
					return err
				}
				m02, m12 = float64(dx), float64(dy)
			}
		} else {
			// Point-attachment mode: parsed to stay aligned, not
			// visually honored. Known limitation per spec.md §4.C/§9.
			if flags&flagArg1And2AreWords != 0 {
				r.skip(4)
			} else {
				r.skip(2)
			}
		}

		switch {
		case flags&flagWeHaveATwoByTwo != 0:
			m00, err = r.readF2Dot14()
			if err != nil {
				return err
			}
			m10, err = r.readF2Dot14()
			if err != nil {
				return err
			}
			m01, err = r.readF2Dot14()
			if err != nil {
				return err
			}
			m11, err = r.readF2Dot14()
			if err != nil {
				return err
			}
		case flags&flagWeHaveAnXAndYScale != 0:
			m00, err = r.readF2Dot14()
			if err != nil {
				return err
			}
			m11, err = r.readF2Dot14()
			if err != nil {
				return err
			}
		case flags&flagWeHaveAScale != 0:
			m00, err = r.readF2Dot14()
			if err != nil {
				return err
			}
			m11 = m00
		}

		component := Transform{m00, m01, m02, m10, m11, m12}
		if err := child.BuildOutline(builder, tr.Compose(component)); err != nil {
			return err
		}

		if flags&flagMoreComponents == 0 {
			break
		}
	}
	return nil
}

// GlyfTable is the decoded sequence of all glyphs in a font.
type GlyfTable struct {
	glyphs []*Glyph
}

// Len returns the number of glyphs.
func (t *GlyfTable) Len() int { return len(t.glyphs) }

// Get returns the glyph with the given id, or nil if out of range.
func (t *GlyfTable) Get(glyphID int) *Glyph {
	if glyphID < 0 || glyphID >= len(t.glyphs) {
		return nil
	}
	return t.glyphs[glyphID]
}

// All iterates every glyph in glyph-id order.
func (t *GlyfTable) All() []*Glyph { return t.glyphs }

func parseGlyf(font *Font, data []byte, loca locaTable) (*GlyfTable, error) {
	glyphs := make([]*Glyph, 0, len(loca)-1)
	for i := 0; i+1 < len(loca); i++ {
		start, end := loca[i], loca[i+1]
		if end > uint32(len(data)) || start > end {
			return nil, ErrTruncated
		}
		glyph, err := parseGlyph(font, i, data[start:end])
		if err != nil {
			return nil, err
		}
		glyphs = append(glyphs, glyph)
	}
	return &GlyfTable{glyphs: glyphs}, nil
}
