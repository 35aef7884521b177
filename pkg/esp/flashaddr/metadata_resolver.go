package flashaddr

import (
	"net/url"
	"strings"
)

// partRole is the semantic role a manifest part plays, encoded in its URL
// path by the p= query marker.
type partRole int

const (
	roleNone partRole = iota
	roleFirmware
	roleOTA
	roleFilesystem
)

// classifyPartPath reads the p= marker from a manifest part path.
func classifyPartPath(rawPath string) partRole {
	u, err := url.Parse(rawPath)
	if err != nil {
		return roleNone
	}
	switch p := u.Query().Get("p"); {
	case p == "fw":
		return roleFirmware
	case p == "littlefs":
		return roleFilesystem
	// The OTA marker names the binary variant: "bleota", "bleota-c3",
	// "mt-esp32-ota", "mt-esp32s3-ota".
	case strings.Contains(p, "ota"):
		return roleOTA
	default:
		return roleNone
	}
}

// classifyFilenameRole derives the role a filename is asking for from its
// lexical hints.
func classifyFilenameRole(filename string) partRole {
	name := strings.ToLower(filename)
	switch {
	case strings.Contains(name, "bleota"):
		return roleOTA
	case strings.Contains(name, "littlefs") || strings.Contains(name, "spiffs"):
		return roleFilesystem
	case strings.Contains(name, "firmware") || strings.Contains(name, "factory") || strings.Contains(name, "merged"):
		return roleFirmware
	default:
		return roleNone
	}
}

// ResolveFromMetadata resolves a flash address from firmware metadata.
// Metadata is authoritative: a non-nil result here ends resolution. Any
// miss returns nil instead of guessing.
func ResolveFromMetadata(filename string, md *Metadata) *Result {
	if md == nil {
		return nil
	}
	switch {
	case md.Manifest != nil:
		return resolveFromManifest(filename, md.Manifest)
	case md.Legacy != nil:
		return resolveFromLegacy(filename, md.Legacy)
	default:
		return nil
	}
}

func resolveFromManifest(filename string, m *ManifestMeta) *Result {
	want := classifyFilenameRole(filename)
	if want == roleNone {
		return nil
	}

	for _, build := range m.Builds {
		for _, part := range build.Parts {
			if classifyPartPath(part.Path) != want {
				continue
			}
			res := &Result{
				Address:  formatAddress(uint32(part.Offset)),
				Filename: filename,
			}
			switch want {
			case roleOTA:
				res.Type = TypeOTA
				res.Description = "BLE OTA update"
			case roleFilesystem:
				res.Type = TypeFilesystem
				res.Description = "Filesystem image"
			default:
				res.Type = TypeFirmware
				res.Description = "Application firmware"
			}
			return res
		}
	}
	return nil
}

func resolveFromLegacy(filename string, l *LegacyMeta) *Result {
	switch ClassifyFile(filename) {
	case FileOTAFirmware:
		if part := findLegacyPart(l, "ota_1"); part != nil {
			return &Result{
				Address:     formatAddress(uint32(part.Offset)),
				Type:        TypeOTA,
				Description: "OTA firmware",
				Filename:    filename,
			}
		}
	case FileFilesystem:
		if part := findLegacyPart(l, "spiffs"); part != nil {
			return &Result{
				Address:     formatAddress(uint32(part.Offset)),
				Type:        TypeFilesystem,
				Description: "Filesystem image",
				Filename:    filename,
			}
		}
	case FileUpdateFirmware, FileFullFirmware:
		for _, part := range l.Part {
			if part.Type == "app" && part.Subtype == "ota_0" {
				return &Result{
					Address:     formatAddress(uint32(part.Offset)),
					Type:        TypeFirmware,
					Description: "Application firmware",
					Filename:    filename,
				}
			}
		}
	}
	return nil
}

func findLegacyPart(l *LegacyMeta, subtype string) *LegacyPart {
	for i := range l.Part {
		if l.Part[i].Subtype == subtype {
			return &l.Part[i]
		}
	}
	return nil
}
