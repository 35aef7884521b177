package partition

import (
	"encoding/csv"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"math"
	"strings"
)

// entryJSON is the machine-readable projection of an entry. The human
// readable fields are only populated when requested.
type entryJSON struct {
	Name    string `json:"name"`
	Type    string `json:"type"`
	Subtype string `json:"subtype"`
	Offset  uint32 `json:"offset"`
	Size    uint32 `json:"size"`
	Flags   uint32 `json:"flags"`

	OffsetHex string   `json:"offset_hex,omitempty"`
	SizeHex   string   `json:"size_hex,omitempty"`
	SizeKB    *float64 `json:"size_kb,omitempty"`
	SizeMB    *float64 `json:"size_mb,omitempty"`
	Encrypted *bool    `json:"encrypted,omitempty"`
}

type tableJSON struct {
	Partitions []entryJSON `json:"partitions"`
	MD5        string      `json:"md5,omitempty"`
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// FormatJSON renders the table as indented JSON. With humanReadable set,
// hex offsets, KB/MB conversions and the encrypted flag are included.
func FormatJSON(t *Table, humanReadable bool) (string, error) {
	out := tableJSON{Partitions: make([]entryJSON, 0, len(t.Entries))}
	for _, e := range t.Entries {
		row := entryJSON{
			Name:    e.Name,
			Type:    e.TypeName(),
			Subtype: e.SubtypeName(),
			Offset:  e.Offset,
			Size:    e.Size,
			Flags:   e.Flags,
		}
		if humanReadable {
			kb := round2(e.SizeKB())
			mb := round2(e.SizeMB())
			enc := e.Encrypted()
			row.OffsetHex = e.OffsetHex()
			row.SizeHex = e.SizeHex()
			row.SizeKB = &kb
			row.SizeMB = &mb
			row.Encrypted = &enc
		}
		out.Partitions = append(out.Partitions, row)
	}
	if t.MD5 != nil {
		out.MD5 = hex.EncodeToString(t.MD5)
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// FormatCSV renders the table in a layout close to the ESP-IDF CSV format.
func FormatCSV(t *Table) (string, error) {
	var sb strings.Builder
	w := csv.NewWriter(&sb)

	if err := w.Write([]string{"Name", "Type", "SubType", "Offset", "Size", "Flags"}); err != nil {
		return "", err
	}
	for _, e := range t.Entries {
		row := []string{
			e.Name,
			e.TypeName(),
			e.SubtypeName(),
			e.OffsetHex(),
			e.SizeHex(),
			fmt.Sprintf("0x%x", e.Flags),
		}
		if err := w.Write(row); err != nil {
			return "", err
		}
	}
	w.Flush()
	return sb.String(), w.Error()
}

// FormatText renders a plaintext listing for terminal output.
func FormatText(t *Table, verbose bool) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "Partition Table (%d entries)\n", len(t.Entries))
	sb.WriteString(strings.Repeat("=", 80))

	for _, e := range t.Entries {
		fmt.Fprintf(&sb, "\n\nPartition: %s\n", e.Name)
		fmt.Fprintf(&sb, "  Type:      %s\n", e.TypeName())
		fmt.Fprintf(&sb, "  SubType:   %s\n", e.SubtypeName())
		fmt.Fprintf(&sb, "  Offset:    0x%x (%.2f KB)\n", e.Offset, e.OffsetKB())
		fmt.Fprintf(&sb, "  Size:      0x%x (%.2f MB)\n", e.Size, e.SizeMB())
		fmt.Fprintf(&sb, "  Flags:     0x%02x", e.Flags)
		if verbose && e.Encrypted() {
			sb.WriteString("\n  Encrypted: Yes")
		}
	}
	return sb.String()
}

// Analysis is the summary projection used by the catalog manifest builder:
// total flash size rounded up to a standard chip size, plus a name-to-offset
// map.
type Analysis struct {
	FlashSizeMB    string            `json:"flash_size_mb"`
	FlashSizeBytes uint64            `json:"flash_size_bytes"`
	PartitionCount int               `json:"partition_count"`
	Partitions     map[string]string `json:"partitions"`
}

// Analyze builds the summary projection for a table.
func Analyze(t *Table) Analysis {
	flashBytes := t.FlashSize()
	flashMB := float64(flashBytes) / (1024 * 1024)

	// Round up to the nearest standard flash size so the result is always
	// large enough to hold the last partition.
	var flashStr string
	for _, power := range []int{2, 4, 8, 16} {
		if flashMB <= float64(power) {
			flashStr = fmt.Sprintf("%dMB", power)
			break
		}
	}
	if flashStr == "" {
		flashStr = fmt.Sprintf("%dMB", int(math.Ceil(flashMB)))
	}

	parts := make(map[string]string, len(t.Entries))
	for _, e := range t.Entries {
		parts[e.Name] = e.OffsetHex()
	}

	return Analysis{
		FlashSizeMB:    flashStr,
		FlashSizeBytes: flashBytes,
		PartitionCount: len(t.Entries),
		Partitions:     parts,
	}
}

// FormatAnalysis renders the analysis projection as indented JSON.
func FormatAnalysis(t *Table) (string, error) {
	data, err := json.MarshalIndent(Analyze(t), "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}
