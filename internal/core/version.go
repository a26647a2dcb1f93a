package core

import (
	"strings"

	pep440 "github.com/aquasecurity/go-pep440-version"
	debversion "github.com/knqyf263/go-deb-version"
)

// CompareVersions returns -1, 0, or 1 comparing two package versions. PEP 440
// ordering is tried first, then Debian ordering, which accepts arbitrary
// alphanumeric segments, and finally a lexical comparison.
func CompareVersions(a string, b string) int {
	a = strings.TrimSpace(a)
	b = strings.TrimSpace(b)
	if a == b {
		return 0
	}
	if va, err := pep440.Parse(a); err == nil {
		if vb, err := pep440.Parse(b); err == nil {
			return sign(va.Compare(vb))
		}
	}
	if va, err := debversion.NewVersion(a); err == nil {
		if vb, err := debversion.NewVersion(b); err == nil {
			return sign(va.Compare(vb))
		}
	}
	return strings.Compare(a, b)
}

func sign(value int) int {
	switch {
	case value < 0:
		return -1
	case value > 0:
		return 1
	default:
		return 0
	}
}
