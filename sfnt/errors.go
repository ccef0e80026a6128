// Copyright 2010 The Freetype-Go Authors. All rights reserved.
// Use of this source code is governed by your choice of either the
// FreeType License or the GNU General Public License version 2 (or
// any later version), both of which can be found in the LICENSE file.

package sfnt

import "fmt"

// ErrTruncated is returned when a read operation would cross the end of
// the reader's view.
var ErrTruncated = fmt.Errorf("sfnt: truncated")

// ErrBadMagic is returned when the head table's magic number does not
// match 0x5F0F3CF5.
var ErrBadMagic = fmt.Errorf("sfnt: bad magic number in head table")

// ErrUnknownSfntVersion is returned when the sfnt header's version field
// is neither the TTF (0x00010000) nor the OTF ('OTTO') tag.
var ErrUnknownSfntVersion = fmt.Errorf("sfnt: unknown sfnt version")

// ErrUnsupportedOutlineFormat is returned by GlyphByCodepoint when the
// font is OTF; only TTF glyf outlines are supported.
var ErrUnsupportedOutlineFormat = fmt.Errorf("sfnt: unsupported outline format (OTF)")

// MissingTableError reports that a required table is absent from the
// font's table directory.
type MissingTableError struct {
	Tag string
}

func (e *MissingTableError) Error() string {
	return fmt.Sprintf("sfnt: missing table %q", e.Tag)
}

// UnsupportedCmapError reports that none of a font's cmap subtables use
// a (platform, encoding) pair this package understands.
type UnsupportedCmapError struct {
	Subtables []CmapSubtableID
}

func (e *UnsupportedCmapError) Error() string {
	return fmt.Sprintf("sfnt: no supported cmap subtable in %v", e.Subtables)
}

// UnsupportedCmapFormatError reports a cmap subtable whose format is
// neither 4 nor 12.
type UnsupportedCmapFormatError struct {
	Format uint16
}

func (e *UnsupportedCmapFormatError) Error() string {
	return fmt.Sprintf("sfnt: unsupported cmap subtable format %d", e.Format)
}

// CmapSubtableID identifies a cmap subtable by its platform/encoding
// pair, for diagnostics only.
type CmapSubtableID struct {
	PlatformID, EncodingID uint16
}
