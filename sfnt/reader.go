// Copyright 2010 The Freetype-Go Authors. All rights reserved.
// Use of this source code is governed by your choice of either the
// FreeType License or the GNU General Public License version 2 (or
// any later version), both of which can be found in the LICENSE file.

package sfnt

import (
	"time"
)

// reader is a positioned big-endian cursor over an immutable byte slice.
// Unlike the teacher's stateless data-slice-head, it keeps its own
// cursor so that callers can seek, skip and take independent sub-views
// without losing position.
type reader struct {
	data []byte
	pos  int
}

func newReader(data []byte) *reader {
	return &reader{data: data}
}

// len returns the number of bytes in the reader's view.
func (r *reader) len() int {
	return len(r.data)
}

// tell returns the current cursor position.
func (r *reader) tell() int {
	return r.pos
}

// seek moves the cursor to an absolute position within the view.
func (r *reader) seek(pos int) {
	r.pos = pos
}

// skip advances the cursor by n bytes.
func (r *reader) skip(n int) {
	r.pos += n
}

// view returns an independent reader over data[start:end], cursor at 0.
func (r *reader) view(start, end int) (*reader, error) {
	if start < 0 || end < start || end > len(r.data) {
		return nil, ErrTruncated
	}
	return newReader(r.data[start:end]), nil
}

func (r *reader) require(n int) error {
	if r.pos < 0 || n < 0 || r.pos+n > len(r.data) {
		return ErrTruncated
	}
	return nil
}

func (r *reader) readU8() (uint8, error) {
	if err := r.require(1); err != nil {
		return 0, err
	}
	v := r.data[r.pos]
	r.pos++
	return v, nil
}

func (r *reader) readI8() (int8, error) {
	v, err := r.readU8()
	return int8(v), err
}

func (r *reader) readU16() (uint16, error) {
	if err := r.require(2); err != nil {
		return 0, err
	}
	v := uint16(r.data[r.pos])<<8 | uint16(r.data[r.pos+1])
	r.pos += 2
	return v, nil
}

func (r *reader) readI16() (int16, error) {
	v, err := r.readU16()
	return int16(v), err
}

func (r *reader) readU32() (uint32, error) {
	if err := r.require(4); err != nil {
		return 0, err
	}
	v := uint32(r.data[r.pos])<<24 | uint32(r.data[r.pos+1])<<16 |
		uint32(r.data[r.pos+2])<<8 | uint32(r.data[r.pos+3])
	r.pos += 4
	return v, nil
}

func (r *reader) readI32() (int32, error) {
	v, err := r.readU32()
	return int32(v), err
}

func (r *reader) readU64() (uint64, error) {
	hi, err := r.readU32()
	if err != nil {
		return 0, err
	}
	lo, err := r.readU32()
	if err != nil {
		return 0, err
	}
	return uint64(hi)<<32 | uint64(lo), nil
}

func (r *reader) readI64() (int64, error) {
	v, err := r.readU64()
	return int64(v), err
}

// readFixed reads a 16.16 signed fixed-point number.
func (r *reader) readFixed() (float64, error) {
	v, err := r.readI32()
	if err != nil {
		return 0, err
	}
	return float64(v) / 65536.0, nil
}

// readF2Dot14 reads a 2.14 signed fixed-point number.
func (r *reader) readF2Dot14() (float64, error) {
	v, err := r.readI16()
	if err != nil {
		return 0, err
	}
	return float64(v) / 16384.0, nil
}

// sfntEpoch is the LONGDATETIME epoch: midnight, January 1, 1904.
var sfntEpoch = time.Date(1904, time.January, 1, 0, 0, 0, 0, time.UTC)

func (r *reader) readLongDateTime() (time.Time, error) {
	v, err := r.readI64()
	if err != nil {
		return time.Time{}, err
	}
	return sfntEpoch.Add(time.Duration(v) * time.Second), nil
}

// readString reads n raw bytes as a string (used for 4-byte tags).
func (r *reader) readString(n int) (string, error) {
	if err := r.require(n); err != nil {
		return "", err
	}
	s := string(r.data[r.pos : r.pos+n])
	r.pos += n
	return s, nil
}

// readBytes reads n raw bytes.
func (r *reader) readBytes(n int) ([]byte, error) {
	if err := r.require(n); err != nil {
		return nil, err
	}
	b := r.data[r.pos : r.pos+n]
	r.pos += n
	return b, nil
}
