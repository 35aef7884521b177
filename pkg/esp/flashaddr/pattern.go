package flashaddr

// patternDefault is the fixed fallback for a file type when neither
// metadata nor a partition table produced an answer.
type patternDefault struct {
	address     uint32
	typ         string
	description string
}

// patternDefaults is the canonical default-offset table. Earlier
// generations of the flasher carried several diverging copies of these
// constants; this table follows the most recent one.
var patternDefaults = map[FileType]patternDefault{
	FileBootloader:     {0x0, TypeFirmware, "Bootloader"},
	FilePartitions:     {0x8000, TypeFirmware, "Partition table"},
	FileFullFirmware:   {0x0, TypeFirmware, "Full firmware image"},
	FileUpdateFirmware: {0x10000, TypeFirmware, "Application firmware"},
	FileOTAFirmware:    {0x260000, TypeOTA, "OTA firmware"},
	FileFilesystem:     {0x300000, TypeFilesystem, "Filesystem image"},
	FileNVSData:        {0x9000, TypeFirmware, "NVS data"},
	FileOTADataData:    {0xF000, TypeFirmware, "OTA data"},
	FilePHYData:        {0x11000, TypeFirmware, "PHY init data"},
}

// ResolveFromPattern returns the fixed default address for a file type.
// Unknown file types have no default; resolution fails.
func ResolveFromPattern(fileType FileType) *Result {
	def, ok := patternDefaults[fileType]
	if !ok {
		return nil
	}
	return &Result{
		Address:     formatAddress(def.address),
		Type:        def.typ,
		Description: def.description,
	}
}
