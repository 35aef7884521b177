package partition

import "fmt"

// Entry is a single record of an ESP-IDF partition table.
type Entry struct {
	Name    string // partition name, at most 16 characters
	TypeVal byte   // raw type value (app=0x00, data=0x01)
	Subtype byte   // raw subtype value, meaning depends on TypeVal
	Offset  uint32 // absolute flash offset in bytes
	Size    uint32 // size in bytes, SizeRestOfFlash if unbounded
	Flags   uint32 // flag bitfield, bit 0 = encrypted
}

// TypeName returns the human-readable type name.
func (e *Entry) TypeName() string {
	return TypeName(e.TypeVal)
}

// SubtypeName returns the human-readable subtype name.
func (e *Entry) SubtypeName() string {
	return SubtypeName(e.TypeVal, e.Subtype)
}

// OffsetHex returns the offset as a 0x-prefixed hex string.
func (e *Entry) OffsetHex() string {
	return fmt.Sprintf("0x%x", e.Offset)
}

// SizeHex returns the size as a 0x-prefixed hex string.
func (e *Entry) SizeHex() string {
	return fmt.Sprintf("0x%x", e.Size)
}

// OffsetKB returns the offset in kilobytes.
func (e *Entry) OffsetKB() float64 {
	return float64(e.Offset) / 1024
}

// SizeKB returns the size in kilobytes.
func (e *Entry) SizeKB() float64 {
	return float64(e.Size) / 1024
}

// SizeMB returns the size in megabytes.
func (e *Entry) SizeMB() float64 {
	return float64(e.Size) / (1024 * 1024)
}

// Encrypted reports whether the encrypted flag bit is set.
func (e *Entry) Encrypted() bool {
	return e.Flags&FlagEncrypted != 0
}

// FormatSize renders a byte count the way the analysis output does:
// "rest of flash" for the sentinel, otherwise MB/KB/bytes.
func FormatSize(size uint32) string {
	if size == SizeRestOfFlash {
		return "rest of flash"
	}
	mb := float64(size) / (1024 * 1024)
	kb := float64(size) / 1024
	switch {
	case mb >= 1:
		return fmt.Sprintf("%.2f MB", mb)
	case kb >= 1:
		return fmt.Sprintf("%.2f KB", kb)
	default:
		return fmt.Sprintf("%d bytes", size)
	}
}
