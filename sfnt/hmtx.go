// Copyright 2010 The Freetype-Go Authors. All rights reserved.
// Use of this source code is governed by your choice of either the
// FreeType License or the GNU General Public License version 2 (or
// any later version), both of which can be found in the LICENSE file.

package sfnt

// HMetric holds the horizontal metrics of a single glyph.
type HMetric struct {
	AdvanceWidth    uint16
	LeftSideBearing int16
}

// HmtxTable is the horizontal metrics table: an array of metrics sized
// NumberOfHMetrics, followed by trailing left-side-bearing-only entries
// for glyphs beyond that count.
type HmtxTable struct {
	metrics  []HMetric
	bearings []int16
}

func parseHmtx(data []byte, glyphCount, numberOfHMetrics int) (HmtxTable, error) {
	r := newReader(data)
	metrics := make([]HMetric, numberOfHMetrics)
	for i := range metrics {
		aw, err := r.readU16()
		if err != nil {
			return HmtxTable{}, err
		}
		lsb, err := r.readI16()
		if err != nil {
			return HmtxTable{}, err
		}
		metrics[i] = HMetric{aw, lsb}
	}

	bearingCount := glyphCount - numberOfHMetrics
	var bearings []int16
	if bearingCount > 0 {
		bearings = make([]int16, bearingCount)
		for i := range bearings {
			lsb, err := r.readI16()
			if err != nil {
				return HmtxTable{}, err
			}
			bearings[i] = lsb
		}
	}
	return HmtxTable{metrics: metrics, bearings: bearings}, nil
}

// Advance returns the glyph's advance width in FUnits. A glyph_id
// beyond the last metric inherits the last metric's advance, per
// spec.md's hmtx query law.
func (h HmtxTable) Advance(glyphID int) (uint16, bool) {
	total := len(h.metrics) + len(h.bearings)
	if glyphID < 0 || glyphID >= total {
		return 0, false
	}
	if glyphID < len(h.metrics) {
		return h.metrics[glyphID].AdvanceWidth, true
	}
	return h.metrics[len(h.metrics)-1].AdvanceWidth, true
}

// SideBearing returns the glyph's left-side bearing.
func (h HmtxTable) SideBearing(glyphID int) (int16, bool) {
	if glyphID < 0 {
		return 0, false
	}
	if glyphID < len(h.metrics) {
		return h.metrics[glyphID].LeftSideBearing, true
	}
	i := glyphID - len(h.metrics)
	if i < 0 || i >= len(h.bearings) {
		return 0, false
	}
	return h.bearings[i], true
}
