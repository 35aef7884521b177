package partition

import "testing"

func TestFindByName(t *testing.T) {
	table := testTable()
	if e := table.FindByName("otadata"); e == nil || e.Offset != 0xF000 {
		t.Errorf("FindByName(otadata) = %+v, want offset 0xF000", e)
	}
	if e := table.FindByName("missing"); e != nil {
		t.Errorf("FindByName(missing) = %+v, want nil", e)
	}
}

func TestFindByType(t *testing.T) {
	table := testTable()

	testCases := []struct {
		name       string
		typeVal    byte
		subtypes   []byte
		wantOffset uint32
		wantNil    bool
	}{
		{
			name:       "firmware prefers ota_0 over factory",
			typeVal:    TypeApp,
			subtypes:   []byte{SubtypeAppOTA0, SubtypeAppFactory},
			wantOffset: 0x10000,
		},
		{
			name:       "bleota prefers ota_1",
			typeVal:    TypeApp,
			subtypes:   []byte{SubtypeAppOTA1, SubtypeAppOTA0, SubtypeAppFactory},
			wantOffset: 0x260000,
		},
		{
			name:       "littlefs search finds littlefs subtype",
			typeVal:    TypeData,
			subtypes:   []byte{SubtypeDataLittleFS, SubtypeDataSPIFFS, SubtypeDataSPIFFSLegacy},
			wantOffset: 0x300000,
		},
		{
			name:     "no candidate",
			typeVal:  TypeData,
			subtypes: []byte{SubtypeDataFAT},
			wantNil:  true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			e := table.FindByType(tc.typeVal, tc.subtypes)
			if tc.wantNil {
				if e != nil {
					t.Fatalf("expected nil, got %+v", e)
				}
				return
			}
			if e == nil {
				t.Fatal("expected a match, got nil")
			}
			if e.Offset != tc.wantOffset {
				t.Errorf("offset: got 0x%x, want 0x%x", e.Offset, tc.wantOffset)
			}
		})
	}
}

func TestFindByTypePriorityBeatsTableOrder(t *testing.T) {
	// factory listed before ota_0: subtype priority must still win.
	table := &Table{Entries: []*Entry{
		{Name: "factory", TypeVal: TypeApp, Subtype: SubtypeAppFactory, Offset: 0x10000, Size: 0x100000},
		{Name: "ota_0", TypeVal: TypeApp, Subtype: SubtypeAppOTA0, Offset: 0x110000, Size: 0x100000},
	}}
	e := table.FindByType(TypeApp, []byte{SubtypeAppOTA0, SubtypeAppFactory})
	if e == nil || e.Name != "ota_0" {
		t.Fatalf("got %+v, want ota_0 entry", e)
	}
}

func TestFindByTypeTiesBreakOnLowestOffset(t *testing.T) {
	table := &Table{Entries: []*Entry{
		{Name: "fs_high", TypeVal: TypeData, Subtype: SubtypeDataSPIFFS, Offset: 0x600000, Size: 0x100000},
		{Name: "fs_low", TypeVal: TypeData, Subtype: SubtypeDataSPIFFS, Offset: 0x300000, Size: 0x100000},
	}}
	e := table.FindByType(TypeData, []byte{SubtypeDataSPIFFS})
	if e == nil || e.Name != "fs_low" {
		t.Fatalf("got %+v, want fs_low entry", e)
	}
}

func TestFindByTypeNilTable(t *testing.T) {
	var table *Table
	if e := table.FindByType(TypeApp, []byte{SubtypeAppOTA0}); e != nil {
		t.Fatalf("got %+v, want nil", e)
	}
}
