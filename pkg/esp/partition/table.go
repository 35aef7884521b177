package partition

import "sort"

// Table is an ordered ESP-IDF partition table with an optional MD5 digest.
// Entry order matches the binary source and is not assumed to be address
// order.
type Table struct {
	Entries []*Entry
	// MD5 is the trailing digest, nil when the table carries none.
	MD5 []byte
}

// FindByName returns the entry with the given name, or nil.
func (t *Table) FindByName(name string) *Entry {
	for _, e := range t.Entries {
		if e.Name == name {
			return e
		}
	}
	return nil
}

// FindByType returns the best entry matching typeVal and one of the given
// subtypes. Candidates are ranked by position in the subtypes list, ties
// broken by lowest offset. Returns nil when nothing matches.
func (t *Table) FindByType(typeVal byte, subtypes []byte) *Entry {
	if t == nil || len(t.Entries) == 0 {
		return nil
	}

	rank := func(subtype byte) int {
		for i, s := range subtypes {
			if s == subtype {
				return i
			}
		}
		return -1
	}

	var matches []*Entry
	for _, e := range t.Entries {
		if e.TypeVal == typeVal && rank(e.Subtype) >= 0 {
			matches = append(matches, e)
		}
	}
	if len(matches) == 0 {
		return nil
	}

	sort.SliceStable(matches, func(i, j int) bool {
		ri, rj := rank(matches[i].Subtype), rank(matches[j].Subtype)
		if ri != rj {
			return ri < rj
		}
		return matches[i].Offset < matches[j].Offset
	})
	return matches[0]
}

// FlashSize returns the total flash span implied by the table: the maximum
// offset+size over all entries. Zero for an empty table.
func (t *Table) FlashSize() uint64 {
	var max uint64
	for _, e := range t.Entries {
		end := uint64(e.Offset) + uint64(e.Size)
		if end > max {
			max = end
		}
	}
	return max
}
