package flashaddr

// Selection validation error codes. These are expected, user-correctable
// conditions, so they travel in a structured result rather than an error.
const (
	ErrCodeChipMismatch  = "CHIP_MISMATCH"
	ErrCodeFilesConflict = "FILES_CONFLICT"
)

// SelectedFile is one file picked by the user for flashing.
type SelectedFile struct {
	Filename string `json:"filename"`
}

// SelectionResult reports whether a set of selected files can be flashed
// together on the given device.
type SelectionResult struct {
	Valid             bool     `json:"isValid"`
	ErrorCode         string   `json:"errorCode,omitempty"`
	SupportedFamilies []string `json:"supportedFamilies,omitempty"`
	ConflictingFiles  []string `json:"conflictingFiles,omitempty"`
}

// ValidateSelection cross-checks a file selection before resolution is
// trusted. Two independent checks, both always evaluated:
//
//   - chip-family compatibility: manifest-form metadata plus a known device
//     family requires the family to appear among the declared build targets;
//   - file conflict: a regular update firmware and a full image use
//     different flashing strategies and must not be selected together.
func ValidateSelection(files []SelectedFile, md *Metadata, deviceChipFamily string) SelectionResult {
	result := SelectionResult{Valid: true}

	if families := md.ChipFamilies(); len(families) > 0 && deviceChipFamily != "" {
		supported := false
		for _, f := range families {
			if f == deviceChipFamily {
				supported = true
				break
			}
		}
		if !supported {
			result.Valid = false
			result.ErrorCode = ErrCodeChipMismatch
			result.SupportedFamilies = families
		}
	}

	var updateFiles, fullFiles []string
	for _, f := range files {
		switch ClassifyFile(f.Filename) {
		case FileUpdateFirmware:
			updateFiles = append(updateFiles, f.Filename)
		case FileFullFirmware:
			fullFiles = append(fullFiles, f.Filename)
		}
	}
	if len(updateFiles) > 0 && len(fullFiles) > 0 {
		result.Valid = false
		if result.ErrorCode == "" {
			result.ErrorCode = ErrCodeFilesConflict
		}
		result.ConflictingFiles = append(append([]string{}, updateFiles...), fullFiles...)
	}

	return result
}
