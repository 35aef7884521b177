package flashaddr

import (
	"path"
	"regexp"
	"strings"
)

// FileType is the semantic role of a firmware artifact, derived from its
// filename alone.
type FileType int

const (
	FileUnknown FileType = iota
	FileFullFirmware
	FileUpdateFirmware
	FileOTAFirmware
	FileFilesystem
	FileBootloader
	FilePartitions
	FileNVSData
	FileOTADataData
	FilePHYData
)

func (ft FileType) String() string {
	switch ft {
	case FileFullFirmware:
		return "full_firmware"
	case FileUpdateFirmware:
		return "update_firmware"
	case FileOTAFirmware:
		return "ota_firmware"
	case FileFilesystem:
		return "filesystem"
	case FileBootloader:
		return "bootloader"
	case FilePartitions:
		return "partitions"
	case FileNVSData:
		return "nvs_data"
	case FileOTADataData:
		return "otadata_data"
	case FilePHYData:
		return "phy_data"
	default:
		return "unknown"
	}
}

var updateFirmwareRe = regexp.MustCompile(`^firmware.*\.bin$`)

// classifyRule is one step of the classification cascade. Rules are
// evaluated top to bottom and the first match wins; the order matters
// because the substring tests overlap (a factory-ota combo name must hit
// the full-firmware rule before the ota rule).
type classifyRule struct {
	name  string
	match func(name string) bool
	typ   FileType
}

var classifyRules = []classifyRule{
	{"nvs", func(n string) bool { return path.Base(n) == "nvs.bin" }, FileNVSData},
	{"otadata", func(n string) bool { return path.Base(n) == "otadata.bin" }, FileOTADataData},
	{"phy_init", func(n string) bool { return path.Base(n) == "phy_init.bin" }, FilePHYData},
	{"bootloader", func(n string) bool { return strings.Contains(n, "bootloader.bin") }, FileBootloader},
	{"partitions", func(n string) bool { return strings.Contains(n, "partitions.bin") }, FilePartitions},
	{"full image", func(n string) bool {
		return strings.Contains(n, "factory.bin") ||
			strings.Contains(n, "merged.bin") ||
			(strings.HasPrefix(n, "dump_") && strings.HasSuffix(n, ".bin"))
	}, FileFullFirmware},
	{"update firmware", func(n string) bool { return updateFirmwareRe.MatchString(n) }, FileUpdateFirmware},
	{"ota", func(n string) bool { return strings.Contains(n, "ota") }, FileOTAFirmware},
	{"filesystem", func(n string) bool {
		return strings.Contains(n, "littlefs") || strings.Contains(n, "spiffs")
	}, FileFilesystem},
}

// ClassifyFile maps a firmware filename to its semantic file type.
// Classification is case-insensitive and stateless.
func ClassifyFile(filename string) FileType {
	name := strings.ToLower(filename)
	for _, rule := range classifyRules {
		if rule.match(name) {
			return rule.typ
		}
	}
	return FileUnknown
}
