package catalog

import (
	"crypto/md5"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"hash"
	"strings"
)

// Checksums for served firmware artifacts use the prefixed form
// "algorithm:hexvalue" (e.g. "sha256:c0ffee...", "md5:babe1337...").

// ChecksumAlgorithm identifies a supported checksum algorithm.
type ChecksumAlgorithm int

const (
	ChecksumSHA256 ChecksumAlgorithm = iota
	ChecksumMD5
)

func (c ChecksumAlgorithm) String() string {
	switch c {
	case ChecksumSHA256:
		return "sha256"
	case ChecksumMD5:
		return "md5"
	default:
		return "unknown"
	}
}

func (c ChecksumAlgorithm) hasher() hash.Hash {
	switch c {
	case ChecksumMD5:
		return md5.New()
	default:
		return sha256.New()
	}
}

// CalculateChecksum computes a prefixed checksum for data.
func CalculateChecksum(data []byte, algorithm ChecksumAlgorithm) string {
	h := algorithm.hasher()
	h.Write(data)
	return algorithm.String() + ":" + hex.EncodeToString(h.Sum(nil))
}

// ParseChecksum splits a checksum string into algorithm and hex value.
// Unprefixed values are classified by length for compatibility with older
// catalogs.
func ParseChecksum(checksumStr string) (ChecksumAlgorithm, string, error) {
	if strings.Contains(checksumStr, ":") {
		parts := strings.SplitN(checksumStr, ":", 2)
		switch parts[0] {
		case "sha256":
			return ChecksumSHA256, parts[1], nil
		case "md5":
			return ChecksumMD5, parts[1], nil
		default:
			return ChecksumSHA256, "", fmt.Errorf("unknown checksum algorithm: %s", parts[0])
		}
	}

	if len(checksumStr) == md5.Size*2 {
		return ChecksumMD5, checksumStr, nil
	}
	return ChecksumSHA256, checksumStr, nil
}

// VerifyChecksum verifies data against a checksum string.
func VerifyChecksum(data []byte, checksumStr string) (bool, error) {
	algo, expected, err := ParseChecksum(checksumStr)
	if err != nil {
		return false, err
	}
	actual := CalculateChecksum(data, algo)
	return strings.TrimPrefix(actual, algo.String()+":") == expected, nil
}
