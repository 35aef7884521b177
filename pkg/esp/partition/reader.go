package partition

import (
	"fmt"
	"os"

	"github.com/hashicorp/go-hclog"
)

// Reader loads partition tables from partitions.bin files.
type Reader struct {
	path   string
	logger hclog.Logger
}

// NewReader creates a reader for the given file.
func NewReader(path string) *Reader {
	return NewReaderWithLogger(path, hclog.NewNullLogger())
}

// NewReaderWithLogger creates a reader with a custom logger.
func NewReaderWithLogger(path string, logger hclog.Logger) *Reader {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &Reader{path: path, logger: logger}
}

// Read loads and decodes the table.
func (r *Reader) Read() (*Table, error) {
	data, err := os.ReadFile(r.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read partition table: %w", err)
	}

	r.logger.Debug("parsing partition table", "path", r.path, "size", len(data))

	table, err := Parse(data)
	if err != nil {
		return nil, err
	}

	r.logger.Debug("parsed partition table",
		"path", r.path,
		"entries", len(table.Entries),
		"md5", table.MD5 != nil,
	)
	return table, nil
}

// ReadValidated loads, decodes and validates the table.
func (r *Reader) ReadValidated(checkOverlaps bool) (*Table, error) {
	table, err := r.Read()
	if err != nil {
		return nil, err
	}
	if err := Validate(table, checkOverlaps); err != nil {
		return nil, err
	}
	return table, nil
}
