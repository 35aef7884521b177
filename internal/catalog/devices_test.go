package catalog

import "testing"

func TestChipFamily(t *testing.T) {
	testCases := []struct {
		device string
		hint   string
		want   string
	}{
		{"tbeam", "", "ESP32"},
		{"tlora-v2-1-1_6", "", "ESP32"},
		{"heltec-v3", "", "ESP32-S3"},
		{"t-deck", "", "ESP32-S3"},
		{"seeed-xiao-s3", "", "ESP32-S3"},
		{"heltec-ht62-esp32c3-sx1262", "", "ESP32-C3"},
		{"rak3x31-c6", "", "ESP32-C6"},
		{"custom-board", "esp32s3", "ESP32-S3"},
		{"custom-board", "esp32c3", "ESP32-C3"},
		{"custom-board", "esp32c6", "ESP32-C6"},
	}
	for _, tc := range testCases {
		t.Run(tc.device, func(t *testing.T) {
			if got := ChipFamily(tc.device, tc.hint); got != tc.want {
				t.Errorf("ChipFamily(%q, %q) = %s, want %s", tc.device, tc.hint, got, tc.want)
			}
		})
	}
}

func TestDefaultFlashSize(t *testing.T) {
	testCases := []struct {
		device string
		want   string
	}{
		{"tbeam", "4MB"},
		{"heltec-v3", "8MB"},
		{"unphone", "8MB"},
		{"t-deck", "16MB"},
		{"m5stack-cores3", "16MB"},
	}
	for _, tc := range testCases {
		if got := DefaultFlashSize(tc.device); got != tc.want {
			t.Errorf("DefaultFlashSize(%q) = %s, want %s", tc.device, got, tc.want)
		}
	}
}

func TestBleotaVariant(t *testing.T) {
	testCases := []struct {
		family string
		want   string
	}{
		{"ESP32", "mt-esp32-ota"},
		{"ESP32-S3", "mt-esp32s3-ota"},
		{"ESP32-C3", "bleota-c3"},
		{"ESP32-C6", "bleota-c3"},
	}
	for _, tc := range testCases {
		if got := BleotaVariant(tc.family); got != tc.want {
			t.Errorf("BleotaVariant(%q) = %s, want %s", tc.family, got, tc.want)
		}
	}
}
