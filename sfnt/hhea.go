// Copyright 2010 The Freetype-Go Authors. All rights reserved.
// Use of this source code is governed by your choice of either the
// FreeType License or the GNU General Public License version 2 (or
// any later version), both of which can be found in the LICENSE file.

package sfnt

// HheaTable is the horizontal header table, see
// https://learn.microsoft.com/en-us/typography/opentype/spec/hhea.
type HheaTable struct {
	Ascender          int16
	Descender         int16
	LineGap           int16
	AdvanceWidthMax   uint16
	MinLeftBearing    int16
	MinRightBearing   int16
	XMaxExtent        int16
	CaretSlopeRise    int16
	CaretSlopeRun     int16
	CaretOffset       int16
	NumberOfHMetrics  int
}

func parseHhea(data []byte) (HheaTable, error) {
	r := newReader(data)
	r.skip(4) // majorVersion, minorVersion

	ascender, err := r.readI16()
	if err != nil {
		return HheaTable{}, err
	}
	descender, err := r.readI16()
	if err != nil {
		return HheaTable{}, err
	}
	lineGap, err := r.readI16()
	if err != nil {
		return HheaTable{}, err
	}
	advanceWidthMax, err := r.readU16()
	if err != nil {
		return HheaTable{}, err
	}
	minLeft, err := r.readI16()
	if err != nil {
		return HheaTable{}, err
	}
	minRight, err := r.readI16()
	if err != nil {
		return HheaTable{}, err
	}
	xMaxExtent, err := r.readI16()
	if err != nil {
		return HheaTable{}, err
	}
	caretSlopeRise, err := r.readI16()
	if err != nil {
		return HheaTable{}, err
	}
	caretSlopeRun, err := r.readI16()
	if err != nil {
		return HheaTable{}, err
	}
	caretOffset, err := r.readI16()
	if err != nil {
		return HheaTable{}, err
	}
	r.skip(10) // reserved x4 + metricDataFormat

	numberOfHMetrics, err := r.readU16()
	if err != nil {
		return HheaTable{}, err
	}

	return HheaTable{
		Ascender:         ascender,
		Descender:        descender,
		LineGap:          lineGap,
		AdvanceWidthMax:  advanceWidthMax,
		MinLeftBearing:   minLeft,
		MinRightBearing:  minRight,
		XMaxExtent:       xMaxExtent,
		CaretSlopeRise:   caretSlopeRise,
		CaretSlopeRun:    caretSlopeRun,
		CaretOffset:      caretOffset,
		NumberOfHMetrics: int(numberOfHMetrics),
	}, nil
}
