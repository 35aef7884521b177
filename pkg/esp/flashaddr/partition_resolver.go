package flashaddr

import (
	"strings"

	"github.com/mrekin/webesptool/pkg/esp/partition"
)

// tableQuery is a partition table search: entry type plus subtype
// candidates in priority order (first is best).
type tableQuery struct {
	typeVal  byte
	subtypes []byte
}

var partitionQueries = map[FileType]tableQuery{
	FileUpdateFirmware: {partition.TypeApp, []byte{partition.SubtypeAppOTA0, partition.SubtypeAppFactory}},
	FileOTAFirmware:    {partition.TypeApp, []byte{partition.SubtypeAppOTA1, partition.SubtypeAppOTA0, partition.SubtypeAppFactory}},
	FileNVSData:        {partition.TypeData, []byte{partition.SubtypeDataNVS}},
	FileOTADataData:    {partition.TypeData, []byte{partition.SubtypeDataOTA}},
	FilePHYData:        {partition.TypeData, []byte{partition.SubtypeDataPhy}},
}

var (
	littlefsQuery = tableQuery{partition.TypeData, []byte{
		partition.SubtypeDataLittleFS, partition.SubtypeDataSPIFFS, partition.SubtypeDataSPIFFSLegacy,
	}}
	spiffsQuery = tableQuery{partition.TypeData, []byte{
		partition.SubtypeDataSPIFFS, partition.SubtypeDataLittleFS, partition.SubtypeDataSPIFFSLegacy,
	}}
)

// ResolveFromPartitions resolves a flash offset from a device partition
// table. Returns nil when the file type never resolves from a table
// (bootloader and partition-table images describe structural regions, and a
// full image spans multiple partitions) or when no candidate matches.
func ResolveFromPartitions(fileType FileType, filename string, table *partition.Table) *uint32 {
	if table == nil {
		return nil
	}

	switch fileType {
	case FileBootloader, FilePartitions, FileFullFirmware:
		return nil
	}

	query, ok := partitionQueries[fileType]
	if !ok {
		if fileType != FileFilesystem {
			return nil
		}
		// Filesystem priority depends on which filesystem the filename
		// names: prefer the matching subtype, fall back to the sibling.
		if strings.Contains(strings.ToLower(filename), "spiffs") {
			query = spiffsQuery
		} else {
			query = littlefsQuery
		}
	}

	entry := table.FindByType(query.typeVal, query.subtypes)
	if entry == nil {
		return nil
	}
	offset := entry.Offset
	return &offset
}
