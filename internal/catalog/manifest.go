package catalog

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/hashicorp/go-hclog"

	"github.com/mrekin/webesptool/pkg/esp/flashaddr"
	"github.com/mrekin/webesptool/pkg/esp/partition"
)

// Flash modes requested by the frontend.
const (
	ModeUpdate  = "1" // write the application partition only
	ModeInstall = "2" // full install: firmware + BLE OTA + filesystem
)

// Fallback offsets used when a build ships no parseable partitions.bin,
// keyed by flash size. The update offset is layout-independent.
const updateOffset = 0x10000

var bleotaFallback = map[string]uint32{
	"16MB": 0x650000,
	"8MB":  0x5D0000,
	"4MB":  0x260000,
}

var littlefsFallback = map[string]uint32{
	"16MB": 0xC90000,
	"8MB":  0x670000,
	"4MB":  0x300000,
}

// Subtype priority lists for locating install targets in a partition table.
var (
	fwSubtypes       = []byte{partition.SubtypeAppOTA0, partition.SubtypeAppFactory}
	bleotaSubtypes   = []byte{partition.SubtypeAppOTA1, partition.SubtypeAppOTA0, partition.SubtypeAppFactory}
	littlefsSubtypes = []byte{partition.SubtypeDataLittleFS, partition.SubtypeDataSPIFFS, partition.SubtypeDataSPIFFSLegacy}
)

// ManifestBuilder builds flasher manifests for firmware builds in the
// archive. Offsets come from the build's partitions.bin when available and
// from flash-size keyed fallbacks otherwise.
type ManifestBuilder struct {
	root   string
	src    string
	logger hclog.Logger
}

func NewManifestBuilder(root, src string, logger hclog.Logger) *ManifestBuilder {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &ManifestBuilder{root: root, src: src, logger: logger}
}

// deviceInfo is the optional per-device descriptor shipped alongside the
// version directories: <root>/<device>/device.info.
type deviceInfo struct {
	Chip      string `json:"chip"`
	FlashSize string `json:"flashSize"`
}

// loadDeviceInfo reads the device descriptor. Missing or malformed files
// are not an error; the name heuristics and device lists take over.
func (b *ManifestBuilder) loadDeviceInfo(device string) *deviceInfo {
	path := filepath.Join(b.root, device, "device.info")
	data, err := os.ReadFile(path)
	if err != nil {
		return nil
	}
	var info deviceInfo
	if err := json.Unmarshal(data, &info); err != nil {
		b.logger.Debug("failed to parse device.info", "path", path, "error", err)
		return nil
	}
	return &info
}

// buildOffsets is what a partitions.bin contributes to a manifest.
type buildOffsets struct {
	flashSize string
	fw        *uint32
	bleota    *uint32
	littlefs  *uint32
}

// partitionOffsets parses the build's partition table. Returns nil when the
// file is missing or unparseable; a manifest is still produced from
// fallbacks in that case.
func (b *ManifestBuilder) partitionOffsets(device, version string) *buildOffsets {
	path := filepath.Join(b.root, device, version, "partitions.bin")
	if _, err := os.Stat(path); err != nil {
		return nil
	}

	table, err := partition.NewReaderWithLogger(path, b.logger).Read()
	if err != nil {
		b.logger.Debug("failed to parse partitions.bin", "path", path, "error", err)
		return nil
	}

	offsets := &buildOffsets{flashSize: partition.Analyze(table).FlashSizeMB}
	if e := table.FindByType(partition.TypeApp, fwSubtypes); e != nil {
		offsets.fw = &e.Offset
	}
	if e := table.FindByType(partition.TypeApp, bleotaSubtypes); e != nil {
		offsets.bleota = &e.Offset
	}
	if e := table.FindByType(partition.TypeData, littlefsSubtypes); e != nil {
		offsets.littlefs = &e.Offset
	}

	b.logger.Debug("partition offsets resolved",
		"device", device,
		"version", version,
		"flash_size", offsets.flashSize,
		"fw", offsets.fw != nil,
		"bleota", offsets.bleota != nil,
		"littlefs", offsets.littlefs != nil,
	)
	return offsets
}

// Build assembles the manifest for one device/version/mode combination.
func (b *ManifestBuilder) Build(device, version, mode string) (*flashaddr.ManifestMeta, error) {
	if device == "" || version == "" {
		return nil, fmt.Errorf("device and version are required")
	}

	offsets := b.partitionOffsets(device, version)
	info := b.loadDeviceInfo(device)

	// Flash size priority: partitions.bin, then device.info, then the
	// static device lists.
	flashSize := DefaultFlashSize(device)
	if info != nil && info.FlashSize != "" {
		flashSize = info.FlashSize
	}
	if offsets != nil && offsets.flashSize != "" {
		flashSize = offsets.flashSize
	}

	chipHint := ""
	if info != nil {
		chipHint = info.Chip
	}
	chipFamily := ChipFamily(device, chipHint)

	manifest := &flashaddr.ManifestMeta{
		Name:    device,
		Version: version,
		Builds: []flashaddr.ManifestBuild{{
			ChipFamily: chipFamily,
			FlashSize:  flashSize,
		}},
	}
	build := &manifest.Builds[0]

	if mode == ModeUpdate {
		build.Parts = append(build.Parts, flashaddr.ManifestPart{
			Path:   b.partPath(device, version, ModeUpdate, ""),
			Offset: flashaddr.HexUint32(updateOffset),
		})
		return manifest, nil
	}

	fwOffset := uint32(0)
	if offsets != nil && offsets.fw != nil {
		fwOffset = *offsets.fw
	}
	bleotaOffset := bleotaFallback["4MB"]
	if v, ok := bleotaFallback[flashSize]; ok {
		bleotaOffset = v
	}
	if offsets != nil && offsets.bleota != nil {
		bleotaOffset = *offsets.bleota
	}
	littlefsOffset := littlefsFallback["4MB"]
	if v, ok := littlefsFallback[flashSize]; ok {
		littlefsOffset = v
	}
	if offsets != nil && offsets.littlefs != nil {
		littlefsOffset = *offsets.littlefs
	}

	build.Parts = append(build.Parts,
		flashaddr.ManifestPart{
			Path:   b.partPath(device, version, ModeInstall, "fw"),
			Offset: flashaddr.HexUint32(fwOffset),
		},
		flashaddr.ManifestPart{
			Path:   b.partPath(device, version, ModeInstall, BleotaVariant(chipFamily)),
			Offset: flashaddr.HexUint32(bleotaOffset),
		},
		flashaddr.ManifestPart{
			Path:   b.partPath(device, version, ModeInstall, "littlefs"),
			Offset: flashaddr.HexUint32(littlefsOffset),
		},
	)
	return manifest, nil
}

// partPath builds the download URL for one manifest part.
func (b *ManifestBuilder) partPath(device, version, mode, part string) string {
	path := fmt.Sprintf("firmware?v=%s&t=%s&u=%s", version, device, mode)
	if part != "" {
		path += "&p=" + part
	}
	if b.src != "" {
		path += "&src=" + b.src
	}
	return path
}
