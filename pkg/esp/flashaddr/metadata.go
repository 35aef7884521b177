package flashaddr

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Metadata is firmware metadata in one of two schema generations. Exactly
// one of the fields is set. The variant is detected structurally, once, at
// the JSON boundary: an array-valued "builds" key means manifest form, an
// array-valued "part" key means legacy form. There is no version tag.
type Metadata struct {
	Manifest *ManifestMeta
	Legacy   *LegacyMeta
}

// ManifestMeta is the per-build descriptor served by the firmware catalog:
// chip targets plus the flashable parts with their offsets.
type ManifestMeta struct {
	Name    string          `json:"name,omitempty"`
	Version string          `json:"version,omitempty"`
	Builds  []ManifestBuild `json:"builds"`
}

type ManifestBuild struct {
	ChipFamily string         `json:"chipFamily"`
	FlashSize  string         `json:"flashsize,omitempty"`
	Parts      []ManifestPart `json:"parts"`
}

type ManifestPart struct {
	Path   string    `json:"path"`
	Offset HexUint32 `json:"offset"`
}

// LegacyMeta is the older flat schema: partition descriptors listed
// directly, with top-level mcu/board fields.
type LegacyMeta struct {
	MCU   string       `json:"mcu"`
	Board string       `json:"board"`
	Part  []LegacyPart `json:"part"`
	Files []LegacyFile `json:"files"`
}

type LegacyPart struct {
	Type    string    `json:"type"`
	Subtype string    `json:"subtype"`
	Offset  HexUint32 `json:"offset"`
}

type LegacyFile struct {
	Name string `json:"name"`
}

// HexUint32 is a flash offset that older metadata sometimes writes as a
// "0x"-prefixed string instead of a number.
type HexUint32 uint32

func (h *HexUint32) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	if strings.HasPrefix(s, `"`) {
		var str string
		if err := json.Unmarshal(data, &str); err != nil {
			return err
		}
		v, err := strconv.ParseUint(strings.TrimPrefix(strings.ToLower(str), "0x"), 16, 32)
		if err != nil {
			return fmt.Errorf("invalid offset %q: %w", str, err)
		}
		*h = HexUint32(v)
		return nil
	}
	var n uint32
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*h = HexUint32(n)
	return nil
}

func (h HexUint32) MarshalJSON() ([]byte, error) {
	return json.Marshal(uint32(h))
}

// ParseMetadata detects the schema variant of a metadata document and
// decodes it. A document matching neither variant yields (nil, nil): the
// caller falls through to lower-priority resolvers instead of failing.
func ParseMetadata(data []byte) (*Metadata, error) {
	var probe struct {
		Builds json.RawMessage `json:"builds"`
		Part   json.RawMessage `json:"part"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return nil, fmt.Errorf("invalid metadata JSON: %w", err)
	}

	switch {
	case isJSONArray(probe.Builds):
		var m ManifestMeta
		if err := json.Unmarshal(data, &m); err != nil {
			return nil, fmt.Errorf("invalid manifest metadata: %w", err)
		}
		return &Metadata{Manifest: &m}, nil
	case isJSONArray(probe.Part):
		var l LegacyMeta
		if err := json.Unmarshal(data, &l); err != nil {
			return nil, fmt.Errorf("invalid legacy metadata: %w", err)
		}
		return &Metadata{Legacy: &l}, nil
	default:
		return nil, nil
	}
}

func isJSONArray(raw json.RawMessage) bool {
	trimmed := strings.TrimSpace(string(raw))
	return strings.HasPrefix(trimmed, "[")
}

// ChipFamilies returns the chip families declared by manifest-form
// metadata, empty otherwise.
func (m *Metadata) ChipFamilies() []string {
	if m == nil || m.Manifest == nil {
		return nil
	}
	families := make([]string, 0, len(m.Manifest.Builds))
	for _, b := range m.Manifest.Builds {
		if b.ChipFamily != "" {
			families = append(families, b.ChipFamily)
		}
	}
	return families
}
