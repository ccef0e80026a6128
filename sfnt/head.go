// Copyright 2010 The Freetype-Go Authors. All rights reserved.
// Use of this source code is governed by your choice of either the
// FreeType License or the GNU General Public License version 2 (or
// any later version), both of which can be found in the LICENSE file.

package sfnt

import "time"

// HeadTable is the font header, see
// https://learn.microsoft.com/en-us/typography/opentype/spec/head.
type HeadTable struct {
	Revision          float64
	Flags             uint16
	UnitsPerEm        int
	Created, Modified time.Time
	Min, Max          Point
	MacStyle          uint16
	LowestRecPPEM     uint16
	FontDirectionHint int16
	IndexToLocFormat  int16
	GlyphDataFormat   int16
}

func parseHead(data []byte) (HeadTable, error) {
	r := newReader(data)
	r.skip(4) // majorVersion, minorVersion

	revision, err := r.readFixed()
	if err != nil {
		return HeadTable{}, err
	}
	r.skip(4) // checksumAdjustment

	magic, err := r.readU32()
	if err != nil {
		return HeadTable{}, err
	}
	if magic != 0x5F0F3CF5 {
		return HeadTable{}, ErrBadMagic
	}

	flags, err := r.readU16()
	if err != nil {
		return HeadTable{}, err
	}
	unitsPerEm, err := r.readU16()
	if err != nil {
		return HeadTable{}, err
	}
	created, err := r.readLongDateTime()
	if err != nil {
		return HeadTable{}, err
	}
	modified, err := r.readLongDateTime()
	if err != nil {
		return HeadTable{}, err
	}
	xMin, err := r.readI16()
	if err != nil {
		return HeadTable{}, err
	}
	yMin, err := r.readI16()
	if err != nil {
		return HeadTable{}, err
	}
	xMax, err := r.readI16()
	if err != nil {
		return HeadTable{}, err
	}
	yMax, err := r.readI16()
	if err != nil {
		return HeadTable{}, err
	}
	macStyle, err := r.readU16()
	if err != nil {
		return HeadTable{}, err
	}
	lowestRecPPEM, err := r.readU16()
	if err != nil {
		return HeadTable{}, err
	}
	fontDirectionHint, err := r.readI16()
	if err != nil {
		return HeadTable{}, err
	}
	indexToLocFormat, err := r.readI16()
	if err != nil {
		return HeadTable{}, err
	}
	glyphDataFormat, err := r.readI16()
	if err != nil {
		return HeadTable{}, err
	}

	return HeadTable{
		Revision:          revision,
		Flags:             flags,
		UnitsPerEm:        int(unitsPerEm),
		Created:           created,
		Modified:          modified,
		Min:               Point{float64(xMin), float64(yMin)},
		Max:               Point{float64(xMax), float64(yMax)},
		MacStyle:          macStyle,
		LowestRecPPEM:     lowestRecPPEM,
		FontDirectionHint: fontDirectionHint,
		IndexToLocFormat:  indexToLocFormat,
		GlyphDataFormat:   glyphDataFormat,
	}, nil
}
