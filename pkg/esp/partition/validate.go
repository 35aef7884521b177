package partition

import (
	"fmt"
	"sort"

	esperrors "github.com/mrekin/webesptool/pkg/esp/errors"
)

// Validate checks a parsed table against the format's domain invariants:
// non-empty, sane names, 4KB alignment, and (optionally) no overlaps
// between entries with positive offsets and defined sizes.
//
// Parse and Validate are split on purpose: a table dumped from a device may
// be worth inspecting even when it violates these rules.
func Validate(t *Table, checkOverlaps bool) error {
	if t == nil || len(t.Entries) == 0 {
		return fmt.Errorf("%w: partition table is empty", esperrors.ErrValidation)
	}

	for i, e := range t.Entries {
		if err := validateEntry(e, i); err != nil {
			return err
		}
	}

	if checkOverlaps {
		return checkEntryOverlaps(t)
	}
	return nil
}

func validateEntry(e *Entry, index int) error {
	if e.Name == "" {
		return fmt.Errorf("%w: entry %d: empty partition name", esperrors.ErrValidation, index)
	}
	if len(e.Name) > MaxNameLen {
		return fmt.Errorf("%w: entry %d (%s): name too long (%d > %d)",
			esperrors.ErrValidation, index, e.Name, len(e.Name), MaxNameLen)
	}
	if e.Offset%Alignment != 0 {
		return fmt.Errorf("%w: entry %d (%s): offset %d is not aligned to %d bytes",
			esperrors.ErrValidation, index, e.Name, e.Offset, Alignment)
	}
	if e.Size != SizeRestOfFlash && e.Size%Alignment != 0 {
		return fmt.Errorf("%w: entry %d (%s): size %d is not aligned to %d bytes",
			esperrors.ErrValidation, index, e.Name, e.Size, Alignment)
	}
	return nil
}

// checkEntryOverlaps verifies that no two placed partitions overlap.
// Zero-offset entries are skipped: their position is provisional.
func checkEntryOverlaps(t *Table) error {
	placed := make([]*Entry, 0, len(t.Entries))
	for _, e := range t.Entries {
		if e.Offset > 0 {
			placed = append(placed, e)
		}
	}
	sort.SliceStable(placed, func(i, j int) bool {
		return placed[i].Offset < placed[j].Offset
	})

	for i := 0; i < len(placed)-1; i++ {
		cur, next := placed[i], placed[i+1]
		if cur.Size == SizeRestOfFlash {
			continue
		}
		end := uint64(cur.Offset) + uint64(cur.Size)
		if end > uint64(next.Offset) {
			return fmt.Errorf("%w: partition overlap: %q (offset=%#x, size=%#x, end=%#x) overlaps with %q (offset=%#x)",
				esperrors.ErrValidation, cur.Name, cur.Offset, cur.Size, end, next.Name, next.Offset)
		}
	}
	return nil
}
