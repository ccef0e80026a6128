package sfnt

import (
	"golang.org/x/text/encoding/unicode"
)

// NameTable holds the subset of the naming table's string fields that
// spec.md §3 cares about, decoded from the Windows/Unicode BMP records
// (platform 3, language 1033, encoding 1 or 10).
type NameTable struct {
	Copyright string
	Family    string
	Subfamily string
	FontID    string
	Fullname  string
	Version   string
}

type nameRecord struct {
	platformID, encodingID, languageID, nameID uint16
	length, offset                             uint16
}

var utf16BEDecoder = unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM).NewDecoder()

func decodeUTF16BE(b []byte) (string, error) {
	out, err := utf16BEDecoder.Bytes(b)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

func parseName(data []byte) (NameTable, error) {
	r := newReader(data)
	r.skip(2) // format

	recordCount, err := r.readU16()
	if err != nil {
		return NameTable{}, err
	}
	storageOffset, err := r.readU16()
	if err != nil {
		return NameTable{}, err
	}

	var records []nameRecord
	for i := 0; i < int(recordCount); i++ {
		rec := nameRecord{}
		if rec.platformID, err = r.readU16(); err != nil {
			return NameTable{}, err
		}
		if rec.encodingID, err = r.readU16(); err != nil {
			return NameTable{}, err
		}
		if rec.languageID, err = r.readU16(); err != nil {
			return NameTable{}, err
		}
		if rec.nameID, err = r.readU16(); err != nil {
			return NameTable{}, err
		}
		if rec.length, err = r.readU16(); err != nil {
			return NameTable{}, err
		}
		if rec.offset, err = r.readU16(); err != nil {
			return NameTable{}, err
		}
		if !acceptedNameLocale(rec) {
			continue
		}
		records = append(records, rec)
	}

	var fields [6]string
	for _, rec := range records {
		if rec.nameID > 5 {
			continue
		}
		start := int(storageOffset) + int(rec.offset)
		end := start + int(rec.length)
		if start < 0 || end > len(data) || end < start {
			return NameTable{}, ErrTruncated
		}
		s, err := decodeUTF16BE(data[start:end])
		if err != nil {
			return NameTable{}, err
		}
		fields[rec.nameID] = s
	}

	return NameTable{
		Copyright: fields[0],
		Family:    fields[1],
		Subfamily: fields[2],
		FontID:    fields[3],
		Fullname:  fields[4],
		Version:   fields[5],
	}, nil
}

// acceptedNameLocale restricts name records to the Windows/Unicode
// platform-language-encoding triples spec.md §3 names: (3,1033,1) and
// (3,1033,10).
func acceptedNameLocale(rec nameRecord) bool {
	if rec.platformID != 3 || rec.languageID != 1033 {
		return false
	}
	return rec.encodingID == 1 || rec.encodingID == 10
}
