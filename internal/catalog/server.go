package catalog

import (
	"encoding/json"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/hashicorp/go-hclog"

	esperrors "github.com/mrekin/webesptool/pkg/esp/errors"
	"github.com/mrekin/webesptool/pkg/esp/partition"
)

// Server is the catalog HTTP API.
type Server struct {
	cfg    *Config
	logger hclog.Logger
	router *mux.Router
}

func NewServer(cfg *Config, logger hclog.Logger) *Server {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	s := &Server{cfg: cfg, logger: logger}
	s.router = s.buildRouter()
	return s
}

func (s *Server) buildRouter() *mux.Router {
	r := mux.NewRouter()
	r.Use(s.requestIDMiddleware)

	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/availableFirmwares", s.handleAvailableFirmwares).Methods(http.MethodGet)
	api.HandleFunc("/versions", s.handleVersions).Methods(http.MethodGet)
	api.HandleFunc("/manifest", s.handleManifest).Methods(http.MethodGet)
	api.HandleFunc("/partitions", s.handlePartitions).Methods(http.MethodGet)
	return r
}

// Handler returns the root HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run serves the API until the listener fails.
func (s *Server) Run() error {
	s.logger.Info("catalog server listening", "addr", s.cfg.Listen)
	return http.ListenAndServe(s.cfg.Listen, s.router)
}

// requestIDMiddleware tags every request with an id and logs it.
func (s *Server) requestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := uuid.NewString()
		w.Header().Set("X-Request-Id", id)
		s.logger.Debug("request",
			"id", id,
			"method", r.Method,
			"path", r.URL.Path,
			"query", r.URL.RawQuery,
			"remote", r.RemoteAddr,
		)
		next.ServeHTTP(w, r)
	})
}

// sourceRoot picks the archive root for the src query parameter, defaulting
// to the first configured source.
func (s *Server) sourceRoot(src string) (string, string) {
	if len(s.cfg.FwDirs) == 0 {
		return "", ""
	}
	if src != "" {
		for _, dir := range s.cfg.FwDirs {
			if dir.Src == src {
				return dir.Path, dir.Src
			}
		}
	}
	return s.cfg.FwDirs[0].Path, s.cfg.FwDirs[0].Src
}

// Inventory is the device listing served to the frontend.
type Inventory struct {
	ESPDevices    []string `json:"espdevices"`
	UF2Devices    []string `json:"uf2devices"`
	RP2040Devices []string `json:"rp2040devices"`
	Versions      []string `json:"versions"`
}

// scanInventory walks the archive root. A device directory holds one
// subdirectory per version; the newest version's files decide the device
// class (uf2 archives for nRF52/RP2040 boards, bin images for ESP32).
func (s *Server) scanInventory(root string) Inventory {
	inv := Inventory{
		ESPDevices:    []string{},
		UF2Devices:    []string{},
		RP2040Devices: []string{},
		Versions:      []string{},
	}

	devices, err := os.ReadDir(root)
	if err != nil {
		s.logger.Warn("failed to scan firmware root", "root", root, "error", err)
		return inv
	}

	seenVersions := map[string]bool{}
	for _, dev := range devices {
		if !dev.IsDir() || strings.HasPrefix(dev.Name(), "_") {
			continue
		}
		versions := s.deviceVersions(root, dev.Name())
		if len(versions) == 0 {
			continue
		}
		for _, v := range versions {
			if !seenVersions[v] {
				seenVersions[v] = true
				inv.Versions = append(inv.Versions, v)
			}
		}

		switch s.classifyDevice(filepath.Join(root, dev.Name(), versions[0])) {
		case "uf2":
			if strings.Contains(dev.Name(), "rp2040") || strings.Contains(dev.Name(), "pico") {
				inv.RP2040Devices = append(inv.RP2040Devices, dev.Name())
			} else {
				inv.UF2Devices = append(inv.UF2Devices, dev.Name())
			}
		default:
			inv.ESPDevices = append(inv.ESPDevices, dev.Name())
		}
	}

	SortVersions(inv.Versions)
	return inv
}

func (s *Server) deviceVersions(root, device string) []string {
	entries, err := os.ReadDir(filepath.Join(root, device))
	if err != nil {
		return nil
	}
	versions := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() && !strings.HasPrefix(e.Name(), "_") {
			versions = append(versions, e.Name())
		}
	}
	SortVersions(versions)
	return versions
}

func (s *Server) classifyDevice(versionDir string) string {
	entries, err := os.ReadDir(versionDir)
	if err != nil {
		return "esp"
	}
	for _, e := range entries {
		if strings.HasSuffix(e.Name(), ".uf2") {
			return "uf2"
		}
	}
	return "esp"
}

func (s *Server) handleAvailableFirmwares(w http.ResponseWriter, r *http.Request) {
	root, _ := s.sourceRoot(r.URL.Query().Get("src"))
	if root == "" {
		writeError(w, http.StatusInternalServerError, "no firmware sources configured")
		return
	}
	writeJSON(w, http.StatusOK, s.scanInventory(root))
}

func (s *Server) handleVersions(w http.ResponseWriter, r *http.Request) {
	device := r.URL.Query().Get("t")
	if device == "" {
		writeError(w, http.StatusBadRequest, "missing device parameter t")
		return
	}
	root, _ := s.sourceRoot(r.URL.Query().Get("src"))
	versions := s.deviceVersions(root, device)
	if versions == nil {
		versions = []string{}
	}
	writeJSON(w, http.StatusOK, map[string][]string{"versions": versions})
}

func (s *Server) handleManifest(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	device, version := q.Get("t"), q.Get("v")
	mode := q.Get("u")
	if mode == "" {
		mode = ModeUpdate
	}

	root, src := s.sourceRoot(q.Get("src"))
	builder := NewManifestBuilder(root, src, s.logger)
	manifest, err := builder.Build(device, version, mode)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, manifest)
}

// partitionsResponse is the analysis projection plus a content checksum so
// clients can detect a changed table without re-downloading it.
type partitionsResponse struct {
	partition.Analysis
	Checksum string `json:"checksum"`
}

func (s *Server) handlePartitions(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	device, version := q.Get("t"), q.Get("v")
	if device == "" || version == "" {
		writeError(w, http.StatusBadRequest, "missing device or version parameter")
		return
	}

	root, _ := s.sourceRoot(q.Get("src"))
	path := filepath.Join(root, device, version, "partitions.bin")
	data, err := os.ReadFile(path)
	if err != nil {
		writeError(w, http.StatusNotFound, esperrors.ErrFirmwareNotFound.Error())
		return
	}

	table, err := partition.Parse(data)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, partitionsResponse{
		Analysis: partition.Analyze(table),
		Checksum: CalculateChecksum(data, ChecksumSHA256),
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
