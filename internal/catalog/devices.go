package catalog

import "strings"

// Device lists carried over from the device-install script: boards whose
// default partition layout assumes a larger flash chip. Used only when no
// partitions.bin is available for the build.
var bigDB8MB = []string{
	"picomputer-s3",
	"unphone",
	"seeed-sensecap-indicator",
	"crowpanel-esp32s3",
	"heltec_capsule_sensor_v3",
	"heltec-v3",
	"heltec-vision-master-e213",
	"heltec-vision-master-e290",
	"heltec-vision-master-t190",
	"heltec-wireless-paper",
	"heltec-wireless-tracker",
	"heltec-wsl-v3",
	"icarus",
	"seeed-xiao-s3",
	"tbeam-s3-core",
	"tracksenger",
}

var bigDB16MB = []string{
	"t-deck",
	"mesh-tab",
	"t-energy-s3",
	"dreamcatcher",
	"ESP32-S3-Pico",
	"m5stack-cores3",
	"station-g2",
	"t-eth-elite",
	"t-watch-s3",
	"elecrow-adv-35-tft",
	"elecrow-adv-24-28-tft",
	"elecrow-adv1-43-50-70-tft",
}

// s3Variants are device-name fragments that mark an ESP32-S3 board.
var s3Variants = []string{
	"s3",
	"-v3",
	"t-deck",
	"wireless-paper",
	"wireless-tracker",
	"station-g2",
	"unphone",
	"t-eth-elite",
	"mesh-tab",
	"dreamcatcher",
	"ESP32-S3-Pico",
	"seeed-sensecap-indicator",
	"heltec_capsule_sensor_v3",
	"vision-master",
	"icarus",
	"tracksenger",
	"elecrow-adv",
}

// ChipFamily derives the chip family for a device. chipHint is the chip
// field from device info when known (e.g. "esp32s3") and takes part in the
// decision alongside the name heuristics.
func ChipFamily(device, chipHint string) string {
	switch {
	case chipHint == "esp32s3" || matchesAny(device, s3Variants):
		return "ESP32-S3"
	case chipHint == "esp32c3" || strings.Contains(device, "c3"):
		return "ESP32-C3"
	case chipHint == "esp32c6" || strings.Contains(device, "c6"):
		return "ESP32-C6"
	default:
		return "ESP32"
	}
}

// DefaultFlashSize returns the flash size assumed for a device when the
// build ships no partition table.
func DefaultFlashSize(device string) string {
	for _, d := range bigDB8MB {
		if d == device {
			return "8MB"
		}
	}
	for _, d := range bigDB16MB {
		if d == device {
			return "16MB"
		}
	}
	return "4MB"
}

// BleotaVariant returns the BLE OTA binary variant for a chip family.
func BleotaVariant(chipFamily string) string {
	switch chipFamily {
	case "ESP32-S3":
		return "mt-esp32s3-ota"
	case "ESP32-C3", "ESP32-C6":
		return "bleota-c3"
	default:
		return "mt-esp32-ota"
	}
}

func matchesAny(device string, fragments []string) bool {
	for _, f := range fragments {
		if strings.Contains(device, f) {
			return true
		}
	}
	return false
}
