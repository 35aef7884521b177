package catalog

import (
	"strings"
	"testing"
)

func TestCalculateChecksum(t *testing.T) {
	data := []byte("firmware payload")

	sha := CalculateChecksum(data, ChecksumSHA256)
	if !strings.HasPrefix(sha, "sha256:") || len(sha) != len("sha256:")+64 {
		t.Errorf("unexpected sha256 checksum: %s", sha)
	}

	md := CalculateChecksum(data, ChecksumMD5)
	if !strings.HasPrefix(md, "md5:") || len(md) != len("md5:")+32 {
		t.Errorf("unexpected md5 checksum: %s", md)
	}
}

func TestParseChecksum(t *testing.T) {
	testCases := []struct {
		name     string
		input    string
		wantAlgo ChecksumAlgorithm
		wantHex  string
		wantErr  bool
	}{
		{"prefixed sha256", "sha256:" + strings.Repeat("ab", 32), ChecksumSHA256, strings.Repeat("ab", 32), false},
		{"prefixed md5", "md5:" + strings.Repeat("cd", 16), ChecksumMD5, strings.Repeat("cd", 16), false},
		{"bare 32 hex chars reads as md5", strings.Repeat("cd", 16), ChecksumMD5, strings.Repeat("cd", 16), false},
		{"bare 64 hex chars reads as sha256", strings.Repeat("ab", 32), ChecksumSHA256, strings.Repeat("ab", 32), false},
		{"unknown algorithm", "crc32:12345678", 0, "", true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			algo, hexVal, err := ParseChecksum(tc.input)
			if tc.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if algo != tc.wantAlgo || hexVal != tc.wantHex {
				t.Errorf("got (%v, %s), want (%v, %s)", algo, hexVal, tc.wantAlgo, tc.wantHex)
			}
		})
	}
}

func TestVerifyChecksum(t *testing.T) {
	data := []byte("firmware payload")

	for _, algo := range []ChecksumAlgorithm{ChecksumSHA256, ChecksumMD5} {
		sum := CalculateChecksum(data, algo)
		ok, err := VerifyChecksum(data, sum)
		if err != nil {
			t.Fatalf("%v: unexpected error: %v", algo, err)
		}
		if !ok {
			t.Errorf("%v: checksum did not verify", algo)
		}

		ok, err = VerifyChecksum([]byte("tampered"), sum)
		if err != nil {
			t.Fatalf("%v: unexpected error: %v", algo, err)
		}
		if ok {
			t.Errorf("%v: tampered data verified", algo)
		}
	}
}
