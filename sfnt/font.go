// Copyright 2010 The Freetype-Go Authors. All rights reserved.
// Use of this source code is governed by your choice of either the
// FreeType License or the GNU General Public License version 2 (or
// any later version), both of which can be found in the LICENSE file.

// Package sfnt decodes the subset of the OpenType/TrueType container
// format needed to enumerate glyphs, map codepoints to glyphs via
// cmap, recover PostScript names from post, and reconstruct each
// glyph's outline from glyf into move/line/quad/close commands.
package sfnt

import (
	"fmt"
	"math"
	"sync"
	"time"
)

// Font is a parsed sfnt container. The constructor eagerly parses the
// table directory, head, maxp and name; every other table is parsed
// once on first access and memoized, per spec.md §4.B / §9.
type Font struct {
	data     []byte
	fontType FontType
	tables   map[string]tableRecord

	head HeadTable
	name NameTable

	glyphCount int

	locaOnce sync.Once
	loca     locaTable
	locaErr  error

	glyfOnce sync.Once
	glyf     *GlyfTable
	glyfErr  error

	cmapOnce sync.Once
	cmap     CmapTable
	cmapErr  error

	postOnce sync.Once
	post     PostTable
	postErr  error

	hheaOnce sync.Once
	hhea     HheaTable
	hheaErr  error

	hmtxOnce sync.Once
	hmtx     HmtxTable
	hmtxErr  error
}

// New parses an sfnt font from its raw bytes.
func New(data []byte) (*Font, error) {
	fontType, tables, err := parseDirectory(data)
	if err != nil {
		return nil, err
	}

	f := &Font{data: data, fontType: fontType, tables: tables}

	maxpBytes, err := f.tableBytes("maxp")
	if err != nil {
		return nil, err
	}
	glyphCount, err := parseMaxp(maxpBytes)
	if err != nil {
		return nil, err
	}
	f.glyphCount = glyphCount

	headBytes, err := f.tableBytes("head")
	if err != nil {
		return nil, err
	}
	head, err := parseHead(headBytes)
	if err != nil {
		return nil, err
	}
	f.head = head

	nameBytes, err := f.tableBytes("name")
	if err != nil {
		return nil, err
	}
	name, err := parseName(nameBytes)
	if err != nil {
		return nil, err
	}
	f.name = name

	return f, nil
}

// tableBytes returns a table's raw bytes, or MissingTableError if the
// table directory has no entry for tag.
func (f *Font) tableBytes(tag string) ([]byte, error) {
	rec, ok := f.tables[tag]
	if !ok {
		return nil, &MissingTableError{Tag: tag}
	}
	return rec.slice(f.data)
}

// Type reports whether the font carries glyf (TTF) or CFF (OTF) outlines.
func (f *Font) Type() FontType { return f.fontType }

// GlyphCount returns maxp's glyph count.
func (f *Font) GlyphCount() int { return f.glyphCount }

// Head returns the eagerly-parsed head table.
func (f *Font) Head() HeadTable { return f.head }

// Name returns the eagerly-parsed name table.
func (f *Font) Name() NameTable { return f.name }

// Hhea returns the horizontal header table, parsing and memoizing it
// on first call.
func (f *Font) Hhea() (HheaTable, error) {
	f.hheaOnce.Do(func() {
		data, err := f.tableBytes("hhea")
		if err != nil {
			f.hheaErr = err
			return
		}
		f.hhea, f.hheaErr = parseHhea(data)
	})
	return f.hhea, f.hheaErr
}

// Hmtx returns the horizontal metrics table.
func (f *Font) Hmtx() (HmtxTable, error) {
	f.hmtxOnce.Do(func() {
		hhea, err := f.Hhea()
		if err != nil {
			f.hmtxErr = err
			return
		}
		data, err := f.tableBytes("hmtx")
		if err != nil {
			f.hmtxErr = err
			return
		}
		f.hmtx, f.hmtxErr = parseHmtx(data, f.glyphCount, hhea.NumberOfHMetrics)
	})
	return f.hmtx, f.hmtxErr
}

func (f *Font) loc() (locaTable, error) {
	f.locaOnce.Do(func() {
		data, err := f.tableBytes("loca")
		if err != nil {
			f.locaErr = err
			return
		}
		f.loca, f.locaErr = parseLoca(data, f.glyphCount, f.head.IndexToLocFormat)
	})
	return f.loca, f.locaErr
}

// Glyf returns the decoded glyph table. Only meaningful for TTF fonts.
func (f *Font) Glyf() (*GlyfTable, error) {
	f.glyfOnce.Do(func() {
		loca, err := f.loc()
		if err != nil {
			f.glyfErr = err
			return
		}
		data, err := f.tableBytes("glyf")
		if err != nil {
			f.glyfErr = err
			return
		}
		f.glyf, f.glyfErr = parseGlyf(f, data, loca)
	})
	return f.glyf, f.glyfErr
}

// Cmap returns the decoded character map.
func (f *Font) Cmap() (CmapTable, error) {
	f.cmapOnce.Do(func() {
		data, err := f.tableBytes("cmap")
		if err != nil {
			f.cmapErr = err
			return
		}
		f.cmap, f.cmapErr = parseCmap(data)
	})
	return f.cmap, f.cmapErr
}

// Post returns the decoded PostScript name table.
func (f *Font) Post() (PostTable, error) {
	f.postOnce.Do(func() {
		data, err := f.tableBytes("post")
		if err != nil {
			f.postErr = err
			return
		}
		f.post, f.postErr = parsePost(data)
	})
	return f.post, f.postErr
}

// GlyphByCodepoint resolves cp through cmap to a glyph id and returns
// the corresponding Glyph. It returns (nil, nil) when cp is absent
// from cmap or the resolved glyph id is out of range. OTF fonts fail
// with ErrUnsupportedOutlineFormat, since only glyf outlines are
// supported.
func (f *Font) GlyphByCodepoint(cp rune) (*Glyph, error) {
	if f.fontType != TypeTTF {
		return nil, ErrUnsupportedOutlineFormat
	}
	cmap, err := f.Cmap()
	if err != nil {
		return nil, err
	}
	glyphID, ok := cmap.CodepointToGlyphID[cp]
	if !ok {
		return nil, nil
	}
	glyf, err := f.Glyf()
	if err != nil {
		return nil, err
	}
	return glyf.Get(glyphID), nil
}

// CodepointByName joins post and cmap into a name -> codepoint map.
// Entries where either table lacks a mapping, or the codepoint is 0,
// are omitted, per spec.md §4.B.
func (f *Font) CodepointByName() (map[string]rune, error) {
	post, err := f.Post()
	if err != nil {
		return nil, err
	}
	cmap, err := f.Cmap()
	if err != nil {
		return nil, err
	}
	out := make(map[string]rune, len(post.GlyphIDToName))
	for glyphID, name := range post.GlyphIDToName {
		cp, ok := cmap.GlyphIDToCodepoint[glyphID]
		if !ok || cp == 0 {
			continue
		}
		out[name] = cp
	}
	return out, nil
}

// Info is a descriptive summary of a parsed font.
type Info struct {
	Family      string
	Subfamily   string
	Version     string
	GlyphCount  int
	TableSizes  map[string]int
	Modified    time.Time
}

// Info returns a descriptor of the font, per spec.md §4.B.
func (f *Font) Info() Info {
	sizes := make(map[string]int, len(f.tables))
	for tag, rec := range f.tables {
		sizes[tag] = int(rec.length)
	}
	return Info{
		Family:     f.name.Family,
		Subfamily:  f.name.Subfamily,
		Version:    f.name.Version,
		GlyphCount: f.glyphCount,
		TableSizes: sizes,
		Modified:   f.head.Modified,
	}
}

// ToSVGPath reconstructs a glyph's outline, normalizes it into the
// 100x100 viewBox spec.md §4.D describes, and returns the path's "d"
// attribute. An empty bbox (empty glyph) yields an empty string.
func (f *Font) ToSVGPath(g *Glyph, opts SVGPathBuilderOptions) (string, error) {
	min, max, ok := g.Bbox()
	if !ok {
		return "", nil
	}
	tr := normalizingTransform(min, max, float64(f.head.UnitsPerEm))
	builder := NewSVGPathBuilder(opts)
	if err := g.BuildOutline(builder, tr); err != nil {
		return "", err
	}
	return builder.Path(), nil
}

// normalizingTransform computes the bbox-centering, Y-flipping
// transform into the 100x100 viewBox, per spec.md §4.D.
func normalizingTransform(min, max Point, unitsPerEm float64) Transform {
	bboxW, bboxH := max.X-min.X, max.Y-min.Y
	em := math.Max(unitsPerEm, math.Max(1.1*bboxW, 1.1*bboxH))
	if em == 0 {
		em = 1
	}
	midX, midY := (min.X+max.X)/2, (min.Y+max.Y)/2
	scale := 100 / em

	// Translate the bbox midpoint to (em/2, em/2), scale by 100/em
	// (landing the midpoint at (50,50)), then flip Y into SVG space.
	translate := Transform{1, 0, em/2 - midX, 0, 1, em/2 - midY}
	scaleT := Transform{scale, 0, 0, 0, scale, 0}
	flip := Transform{1, 0, 0, 0, -1, 100}
	return flip.Compose(scaleT.Compose(translate))
}

// Specimen renders a grid of every non-empty glyph at the given pixel
// size, cols columns wide, padding pixels between cells, with
// top-left and bottom-right corner markers on each cell, per
// spec.md §4.B.
func (f *Font) Specimen(size, cols, padding int) (string, error) {
	glyf, err := f.Glyf()
	if err != nil {
		return "", err
	}
	unitsPerEm := float64(f.head.UnitsPerEm)
	if unitsPerEm == 0 {
		unitsPerEm = 1
	}

	var path []byte
	col, row := 0, 0
	for _, g := range glyf.All() {
		if g == nil {
			continue
		}
		if _, _, ok := g.Bbox(); !ok {
			continue
		}
		cellX := float64(col * (size + padding))
		cellY := float64(row * (size + padding))

		scale := float64(size) / unitsPerEm
		tr := Transform{scale, 0, cellX, 0, -scale, cellY + float64(size)}
		builder := NewSVGPathBuilder(SVGPathBuilderOptions{Precision: 2})
		if err := g.BuildOutline(builder, tr); err != nil {
			return "", err
		}
		path = append(path, []byte(builder.Path())...)
		path = append(path, ' ')
		path = append(path, cornerMarker(cellX, cellY)...)
		path = append(path, ' ')
		path = append(path, cornerMarker(cellX+float64(size)-1, cellY+float64(size)-1)...)
		path = append(path, ' ')

		col++
		if col >= cols {
			col = 0
			row++
		}
	}
	return string(path), nil
}

// cornerMarker draws a unit square at (x,y): "M x,y h1 v1 h-1 Z".
func cornerMarker(x, y float64) string {
	return fmt.Sprintf("M%s,%s h1 v1 h-1 Z", strconvFormat(x, 2), strconvFormat(y, 2))
}
