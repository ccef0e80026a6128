package sfnt

import "testing"

func TestReaderViewLength(t *testing.T) {
	data := []byte{0, 1, 2, 3, 4, 5, 6, 7}
	r := newReader(data)
	v, err := r.view(2, 6)
	if err != nil {
		t.Fatalf("view: %v", err)
	}
	if v.len() != 4 {
		t.Fatalf("view.len() = %d, want 4", v.len())
	}
}

func TestReaderSeekIdempotent(t *testing.T) {
	data := []byte{0x01, 0x02, 0x03, 0x04}
	r := newReader(data)
	pos := r.tell()
	first, err := r.readI16()
	if err != nil {
		t.Fatalf("readI16: %v", err)
	}
	r.seek(pos)
	second, err := r.readI16()
	if err != nil {
		t.Fatalf("readI16 after seek: %v", err)
	}
	if first != second {
		t.Fatalf("read after seek(pos) = %d, want %d", second, first)
	}
}

func TestReaderTruncated(t *testing.T) {
	r := newReader([]byte{0x01})
	if _, err := r.readU16(); err != ErrTruncated {
		t.Fatalf("readU16 past end: err = %v, want ErrTruncated", err)
	}
}

func TestReaderFixedAndF2Dot14(t *testing.T) {
	// 1.5 in 16.16 fixed point.
	data := []byte{0x00, 0x01, 0x80, 0x00}
	r := newReader(data)
	v, err := r.readFixed()
	if err != nil {
		t.Fatalf("readFixed: %v", err)
	}
	if v != 1.5 {
		t.Fatalf("readFixed = %v, want 1.5", v)
	}

	// 1.5 in F2Dot14 (2.14 fixed point): 1.5 * 16384 = 24576 = 0x6000.
	r2 := newReader([]byte{0x60, 0x00})
	f, err := r2.readF2Dot14()
	if err != nil {
		t.Fatalf("readF2Dot14: %v", err)
	}
	if f != 1.5 {
		t.Fatalf("readF2Dot14 = %v, want 1.5", f)
	}
}
