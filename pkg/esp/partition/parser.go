package partition

import (
	"bytes"
	"encoding/binary"
	"fmt"

	esperrors "github.com/mrekin/webesptool/pkg/esp/errors"
)

// Field offsets within a 32-byte entry record.
const (
	fieldMagic  = 0  // u16 LE
	fieldType   = 2  // u8
	fieldSub    = 3  // u8
	fieldOffset = 4  // u32 LE
	fieldSize   = 8  // u32 LE
	fieldName   = 12 // 16 bytes, NUL padded
	fieldFlags  = 28 // u32 LE
)

// Parse decodes an ESP-IDF partition table from raw bytes.
//
// The buffer is a sequence of 32-byte little-endian records terminated by a
// record whose leading u16 is EndMarker, optionally followed by a 16-byte
// MD5 digest (all-0xFF means absent). Parse fails on short buffers,
// truncated records and unknown magic values; it never returns a partial
// table.
func Parse(data []byte) (*Table, error) {
	if len(data) < EntrySize {
		return nil, fmt.Errorf("%w: buffer too small: %d bytes, expected at least %d",
			esperrors.ErrParse, len(data), EntrySize)
	}

	table := &Table{}
	pos := 0

	for {
		if pos+EntrySize > len(data) {
			return nil, fmt.Errorf("%w: unexpected end of data at offset %d",
				esperrors.ErrParse, pos)
		}

		record := data[pos : pos+EntrySize]
		magic := binary.LittleEndian.Uint16(record[fieldMagic:])

		if magic == EndMarker {
			table.MD5 = parseTrailingMD5(data[pos+EntrySize:])
			break
		}

		if magic != Magic {
			return nil, fmt.Errorf("%w: invalid magic number 0x%04x at offset %d, expected 0x%04x",
				esperrors.ErrParse, magic, pos, Magic)
		}

		table.Entries = append(table.Entries, &Entry{
			Name:    parseName(record[fieldName : fieldName+MaxNameLen]),
			TypeVal: record[fieldType],
			Subtype: record[fieldSub],
			Offset:  binary.LittleEndian.Uint32(record[fieldOffset:]),
			Size:    binary.LittleEndian.Uint32(record[fieldSize:]),
			Flags:   binary.LittleEndian.Uint32(record[fieldFlags:]),
		})
		pos += EntrySize
	}

	return table, nil
}

// parseTrailingMD5 reads the optional digest following the end marker.
// All-0xFF (erased flash) means no digest was written.
func parseTrailingMD5(data []byte) []byte {
	if len(data) < MD5Size {
		return nil
	}
	digest := data[:MD5Size]
	if bytes.Equal(digest, bytes.Repeat([]byte{0xFF}, MD5Size)) {
		return nil
	}
	out := make([]byte, MD5Size)
	copy(out, digest)
	return out
}

// parseName extracts a NUL-terminated (or full-width) name from the 16-byte
// name field.
func parseName(field []byte) string {
	return string(bytes.TrimRight(field, "\x00"))
}

// Encode serializes a table back to the binary format parsed by Parse.
// Entry order is preserved; the end marker record is padded with 0xFF and
// the MD5 digest is appended only when present.
func Encode(t *Table) []byte {
	buf := make([]byte, 0, (len(t.Entries)+1)*EntrySize+MD5Size)

	record := make([]byte, EntrySize)
	for _, e := range t.Entries {
		for i := range record {
			record[i] = 0
		}
		binary.LittleEndian.PutUint16(record[fieldMagic:], Magic)
		record[fieldType] = e.TypeVal
		record[fieldSub] = e.Subtype
		binary.LittleEndian.PutUint32(record[fieldOffset:], e.Offset)
		binary.LittleEndian.PutUint32(record[fieldSize:], e.Size)
		copy(record[fieldName:fieldName+MaxNameLen], e.Name)
		binary.LittleEndian.PutUint32(record[fieldFlags:], e.Flags)
		buf = append(buf, record...)
	}

	end := bytes.Repeat([]byte{0xFF}, EntrySize)
	binary.LittleEndian.PutUint16(end[fieldMagic:], EndMarker)
	buf = append(buf, end...)

	if t.MD5 != nil {
		buf = append(buf, t.MD5...)
	}
	return buf
}
