package flashaddr

import (
	"fmt"

	"github.com/mrekin/webesptool/pkg/esp/partition"
)

// Result types.
const (
	TypeFirmware   = "firmware"
	TypeOTA        = "ota"
	TypeFilesystem = "filesystem"
)

// Result is a resolved flash address. The flashing driver consumes Address
// as the literal write offset; Type and Description are for display.
type Result struct {
	Address     string `json:"address"`
	Type        string `json:"type"`
	Description string `json:"description"`
	Filename    string `json:"filename,omitempty"`
}

// formatAddress renders an offset in the canonical uppercase-after-0x form.
func formatAddress(offset uint32) string {
	return fmt.Sprintf("0x%X", offset)
}

// Resolve determines the flash address for a firmware artifact.
//
// Sources are consulted in strict priority order, first success wins:
//
//  1. publisher metadata (authoritative),
//  2. the device's partition table (trusted over filename guesswork),
//  3. fixed per-file-type defaults (last resort for legacy artifacts).
//
// Each stage either fully answers or fully defers; partial results are
// never blended. Returns nil when the filename is empty or no stage can
// answer.
func Resolve(filename string, md *Metadata, table *partition.Table) *Result {
	if filename == "" {
		return nil
	}

	if res := ResolveFromMetadata(filename, md); res != nil {
		return res
	}

	fileType := ClassifyFile(filename)

	if offset := ResolveFromPartitions(fileType, filename, table); offset != nil {
		def := patternDefaults[fileType]
		return &Result{
			Address:     formatAddress(*offset),
			Type:        def.typ,
			Description: def.description,
			Filename:    filename,
		}
	}

	if res := ResolveFromPattern(fileType); res != nil {
		res.Filename = filename
		return res
	}
	return nil
}
