package catalog

import (
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// Firmware version strings are not semver: they mix dotted numerics with
// free-form suffixes ("2.7.8.f00ab13", "2.8.0 daily"). Components compare
// numerically when both sides are numeric, as strings otherwise, and a
// "daily" build outranks the plain release it was cut from.

var versionSplitRe = regexp.MustCompile(`[. ]`)

type versionComponent struct {
	num     int
	str     string
	numeric bool
}

func splitVersion(v string) []versionComponent {
	fields := versionSplitRe.Split(v, -1)
	components := make([]versionComponent, 0, len(fields))
	for _, f := range fields {
		if n, err := strconv.Atoi(f); err == nil {
			components = append(components, versionComponent{num: n, numeric: true, str: f})
		} else {
			components = append(components, versionComponent{str: f})
		}
	}
	return components
}

// CompareVersions returns -1, 0 or 1 as a sorts before, equal to, or after b.
func CompareVersions(a, b string) int {
	ca, cb := splitVersion(a), splitVersion(b)

	aDaily := strings.Contains(a, "daily")
	bDaily := strings.Contains(b, "daily")
	if aDaily != bDaily && sameReleasePrefix(ca, cb) {
		if aDaily {
			return 1
		}
		return -1
	}

	for i := 0; i < len(ca) && i < len(cb); i++ {
		x, y := ca[i], cb[i]
		var cmp int
		if x.numeric && y.numeric {
			switch {
			case x.num < y.num:
				cmp = -1
			case x.num > y.num:
				cmp = 1
			}
		} else {
			cmp = strings.Compare(x.str, y.str)
		}
		if cmp != 0 {
			return cmp
		}
	}

	// More components means a later build of the same release.
	switch {
	case len(ca) < len(cb):
		return -1
	case len(ca) > len(cb):
		return 1
	}
	return 0
}

// sameReleasePrefix reports whether two versions agree on everything but
// their last component.
func sameReleasePrefix(a, b []versionComponent) bool {
	la, lb := len(a)-1, len(b)-1
	if la != lb || la < 0 {
		return false
	}
	for i := 0; i < la; i++ {
		if a[i].str != b[i].str {
			return false
		}
	}
	return true
}

// SortVersions orders version strings newest first.
func SortVersions(versions []string) {
	sort.SliceStable(versions, func(i, j int) bool {
		return CompareVersions(versions[i], versions[j]) > 0
	})
}
