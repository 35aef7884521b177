package flashaddr

import (
	"reflect"
	"testing"
)

func TestValidateSelectionConflict(t *testing.T) {
	files := []SelectedFile{
		{Filename: "firmware.bin"},
		{Filename: "factory.bin"},
	}
	res := ValidateSelection(files, nil, "")
	if res.Valid {
		t.Fatal("update plus full image must be invalid")
	}
	if res.ErrorCode != ErrCodeFilesConflict {
		t.Errorf("error code: got %s, want %s", res.ErrorCode, ErrCodeFilesConflict)
	}
	want := []string{"firmware.bin", "factory.bin"}
	if !reflect.DeepEqual(res.ConflictingFiles, want) {
		t.Errorf("conflicting files: got %v, want %v", res.ConflictingFiles, want)
	}
}

func TestValidateSelectionChipMismatch(t *testing.T) {
	md, err := ParseMetadata([]byte(manifestJSON))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	res := ValidateSelection([]SelectedFile{{Filename: "firmware.bin"}}, md, "ESP32-S3")
	if res.Valid {
		t.Fatal("ESP32-S3 against an ESP32-only manifest must be invalid")
	}
	if res.ErrorCode != ErrCodeChipMismatch {
		t.Errorf("error code: got %s, want %s", res.ErrorCode, ErrCodeChipMismatch)
	}
	if !reflect.DeepEqual(res.SupportedFamilies, []string{"ESP32"}) {
		t.Errorf("supported families: got %v", res.SupportedFamilies)
	}
}

func TestValidateSelectionMismatchCodeWinsOverConflict(t *testing.T) {
	md, err := ParseMetadata([]byte(manifestJSON))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	files := []SelectedFile{
		{Filename: "firmware.bin"},
		{Filename: "factory.bin"},
	}
	res := ValidateSelection(files, md, "ESP32-C3")
	if res.Valid {
		t.Fatal("expected invalid result")
	}
	// Both checks fire; the chip mismatch code takes precedence but the
	// conflict detail is still reported.
	if res.ErrorCode != ErrCodeChipMismatch {
		t.Errorf("error code: got %s, want %s", res.ErrorCode, ErrCodeChipMismatch)
	}
	if len(res.ConflictingFiles) != 2 {
		t.Errorf("conflicting files: got %v, want both", res.ConflictingFiles)
	}
}

func TestValidateSelectionValid(t *testing.T) {
	md, err := ParseMetadata([]byte(manifestJSON))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	testCases := []struct {
		name   string
		files  []SelectedFile
		md     *Metadata
		family string
	}{
		{"matching family", []SelectedFile{{Filename: "firmware.bin"}}, md, "ESP32"},
		{"unknown device family skips the check", []SelectedFile{{Filename: "firmware.bin"}}, md, ""},
		{"no metadata", []SelectedFile{{Filename: "firmware.bin"}, {Filename: "littlefs.bin"}}, nil, "ESP32-S3"},
		{"two full images do not conflict", []SelectedFile{{Filename: "factory.bin"}, {Filename: "merged.bin"}}, nil, ""},
		{"empty selection", nil, nil, ""},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			res := ValidateSelection(tc.files, tc.md, tc.family)
			if !res.Valid {
				t.Errorf("got invalid result %+v, want valid", res)
			}
			if res.ErrorCode != "" {
				t.Errorf("error code: got %s, want empty", res.ErrorCode)
			}
		})
	}
}
