package partition

import "fmt"

// Core format constants for the ESP-IDF partition table binary layout.
const (
	// Magic is the little-endian u16 at the start of every live entry
	// (raw bytes 0xAA 0x50).
	Magic = 0x50AA
	// EndMarker terminates the table (raw bytes 0xEB 0xEB).
	EndMarker = 0xEBEB

	// EntrySize is the fixed size of one table record.
	EntrySize = 32
	// MD5Size is the size of the optional trailing digest.
	MD5Size = 16

	// Alignment is the required alignment for offsets and sizes (4KB).
	Alignment = 0x1000

	// SizeRestOfFlash marks a partition whose size is unbounded/unknown.
	SizeRestOfFlash = 0xFFFFFFFF

	// MaxNameLen is the maximum partition name length.
	MaxNameLen = 16
)

// Partition types.
const (
	TypeApp  = 0x00
	TypeData = 0x01
)

// App subtypes.
const (
	SubtypeAppFactory = 0x00
	SubtypeAppOTA0    = 0x10
	SubtypeAppOTA1    = 0x11
	SubtypeAppTest    = 0x20
)

// Data subtypes.
const (
	SubtypeDataOTA         = 0x00
	SubtypeDataPhy         = 0x01
	SubtypeDataNVS         = 0x02
	SubtypeDataNVSKeys     = 0x03
	SubtypeDataEFuse       = 0x04
	SubtypeDataUndefined   = 0x05
	SubtypeDataESPHTTPD    = 0x06
	SubtypeDataFAT         = 0x07
	SubtypeDataSPIFFS      = 0x08
	SubtypeDataLittleFS    = 0x09
	SubtypeDataDescriptors = 0x10
	SubtypeDataCoredump    = 0xFE
	// SubtypeDataSPIFFSLegacy appears in older custom tables: spiffs with a
	// vendor flag bit set.
	SubtypeDataSPIFFSLegacy = 0x82
)

// Entry flags.
const (
	FlagEncrypted = 0x01
)

var typeNames = map[byte]string{
	TypeApp:  "app",
	TypeData: "data",
}

var appSubtypeNames = map[byte]string{
	SubtypeAppFactory: "factory",
	SubtypeAppTest:    "test",
}

var dataSubtypeNames = map[byte]string{
	SubtypeDataOTA:         "ota",
	SubtypeDataPhy:         "phy",
	SubtypeDataNVS:         "nvs",
	SubtypeDataEFuse:       "efuse",
	SubtypeDataUndefined:   "undefined",
	SubtypeDataESPHTTPD:    "esphttpd",
	SubtypeDataFAT:         "fat",
	SubtypeDataSPIFFS:      "spiffs",
	SubtypeDataLittleFS:    "littlefs",
	SubtypeDataDescriptors: "descriptors",
	SubtypeDataCoredump:    "coredump",
	// Legacy values found in tables produced by older generations of the
	// flasher. 0x03 officially means nvs_keys, but historical tooling read
	// it as coredump; that reading is kept to stay compatible with tables
	// those tools produced.
	SubtypeDataSPIFFSLegacy: "spiffs",
	SubtypeDataNVSKeys:      "coredump",
}

func init() {
	for i := 0; i < 16; i++ {
		appSubtypeNames[byte(SubtypeAppOTA0+i)] = fmt.Sprintf("ota_%d", i)
	}
}

// TypeName returns the human-readable partition type name, or the hex value
// for unknown types.
func TypeName(typeVal byte) string {
	if name, ok := typeNames[typeVal]; ok {
		return name
	}
	return fmt.Sprintf("0x%02x", typeVal)
}

// SubtypeName returns the human-readable subtype name for the given type, or
// the hex value if unknown.
func SubtypeName(typeVal, subtype byte) string {
	var names map[byte]string
	switch typeVal {
	case TypeApp:
		names = appSubtypeNames
	case TypeData:
		names = dataSubtypeNames
	default:
		return fmt.Sprintf("0x%02x", subtype)
	}
	if name, ok := names[subtype]; ok {
		return name
	}
	return fmt.Sprintf("0x%02x", subtype)
}
