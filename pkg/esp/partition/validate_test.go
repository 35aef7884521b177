package partition

import (
	"errors"
	"strings"
	"testing"

	esperrors "github.com/mrekin/webesptool/pkg/esp/errors"
)

func TestValidateAcceptsWellFormedTable(t *testing.T) {
	if err := Validate(testTable(), true); err != nil {
		t.Fatalf("unexpected validation error: %v", err)
	}
}

func TestValidateErrors(t *testing.T) {
	testCases := []struct {
		name    string
		table   *Table
		wantMsg string
	}{
		{
			"empty table",
			&Table{},
			"empty",
		},
		{
			"nil table",
			nil,
			"empty",
		},
		{
			"empty name",
			&Table{Entries: []*Entry{
				{Name: "", TypeVal: TypeApp, Offset: 0x10000, Size: 0x1000},
			}},
			"empty partition name",
		},
		{
			"name too long",
			&Table{Entries: []*Entry{
				{Name: "seventeen_chars_x", TypeVal: TypeApp, Offset: 0x10000, Size: 0x1000},
			}},
			"name too long",
		},
		{
			"misaligned offset",
			&Table{Entries: []*Entry{
				{Name: "app0", TypeVal: TypeApp, Offset: 0x10800, Size: 0x1000},
			}},
			"not aligned",
		},
		{
			"misaligned size",
			&Table{Entries: []*Entry{
				{Name: "app0", TypeVal: TypeApp, Offset: 0x10000, Size: 0x1234},
			}},
			"not aligned",
		},
		{
			"overlapping entries",
			&Table{Entries: []*Entry{
				{Name: "app0", TypeVal: TypeApp, Offset: 0x10000, Size: 0x10000},
				{Name: "app1", TypeVal: TypeApp, Offset: 0x18000, Size: 0x10000},
			}},
			"overlap",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := Validate(tc.table, true)
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !errors.Is(err, esperrors.ErrValidation) {
				t.Errorf("error %v is not ErrValidation", err)
			}
			if !strings.Contains(err.Error(), tc.wantMsg) {
				t.Errorf("error %q does not mention %q", err, tc.wantMsg)
			}
		})
	}
}

func TestValidationErrorsAreParseErrors(t *testing.T) {
	// ErrValidation refines ErrParse; a caller that only filters on
	// ErrParse must still see validation failures.
	err := Validate(&Table{}, true)
	if !errors.Is(err, esperrors.ErrValidation) {
		t.Errorf("error %v is not ErrValidation", err)
	}
	if !errors.Is(err, esperrors.ErrParse) {
		t.Errorf("error %v does not unwrap to ErrParse", err)
	}
}

func TestValidateRestOfFlashSizeIsExempt(t *testing.T) {
	table := &Table{Entries: []*Entry{
		{Name: "app0", TypeVal: TypeApp, Offset: 0x10000, Size: SizeRestOfFlash},
		{Name: "data", TypeVal: TypeData, Offset: 0x20000, Size: 0x1000},
	}}
	// An unbounded size cannot overlap-check against its successor.
	if err := Validate(table, true); err != nil {
		t.Fatalf("unexpected validation error: %v", err)
	}
}

func TestValidateZeroOffsetEntriesSkipOverlapCheck(t *testing.T) {
	table := &Table{Entries: []*Entry{
		{Name: "pending", TypeVal: TypeApp, Offset: 0, Size: 0x400000},
		{Name: "app0", TypeVal: TypeApp, Offset: 0x10000, Size: 0x10000},
	}}
	// Zero offset means "position not yet fixed"; it must not be treated
	// as a partition at address 0 spanning the whole chip.
	if err := Validate(table, true); err != nil {
		t.Fatalf("unexpected validation error: %v", err)
	}
}

func TestValidateOverlapCheckCanBeDisabled(t *testing.T) {
	table := &Table{Entries: []*Entry{
		{Name: "app0", TypeVal: TypeApp, Offset: 0x10000, Size: 0x10000},
		{Name: "app1", TypeVal: TypeApp, Offset: 0x18000, Size: 0x10000},
	}}
	if err := Validate(table, false); err != nil {
		t.Fatalf("unexpected validation error with overlap check disabled: %v", err)
	}
}
