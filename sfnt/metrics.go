package sfnt

import "golang.org/x/image/math/fixed"

// ScaledAdvance returns glyph_id's advance width scaled from FUnits to
// 26.6 fixed-point pixels at the given ppem (pixels-per-em). This is
// the only consumer of golang.org/x/image/math/fixed in this package;
// the catalog pipeline only needs FUnit outlines, not rasterized
// metrics, so treat this as a standalone accessor.
func (f *Font) ScaledAdvance(glyphID int, ppem fixed.Int26_6) (fixed.Int26_6, bool) {
	hmtx, err := f.Hmtx()
	if err != nil {
		return 0, false
	}
	advance, ok := hmtx.Advance(glyphID)
	if !ok {
		return 0, false
	}
	unitsPerEm := f.head.UnitsPerEm
	if unitsPerEm == 0 {
		return 0, false
	}
	scaled := int64(advance) * int64(ppem) / int64(unitsPerEm)
	return fixed.Int26_6(scaled), true
}
