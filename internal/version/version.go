// Package version compares minimum-toolchain version strings using semantic
// versioning. Manifest values may be partial ("1.81"); they are completed to
// full versions before comparison.
package version

import (
	"fmt"

	"github.com/Masterminds/semver/v3"
)

// Normalize completes a partial version like "1.81" to "1.81.0".
func Normalize(v string) (string, error) {
	sv, err := semver.NewVersion(v)
	if err != nil {
		return "", fmt.Errorf("invalid version %q: %w", v, err)
	}
	return sv.String(), nil
}

// Compare returns -1, 0, or 1 if a is lower than, equal to, or higher than b.
func Compare(a, b string) (int, error) {
	va, err := semver.NewVersion(a)
	if err != nil {
		return 0, fmt.Errorf("invalid version %q: %w", a, err)
	}
	vb, err := semver.NewVersion(b)
	if err != nil {
		return 0, fmt.Errorf("invalid version %q: %w", b, err)
	}
	return va.Compare(vb), nil
}

// Satisfies reports whether an installed toolchain version is at least the
// given minimum version.
func Satisfies(installed, minimum string) (bool, error) {
	c, err := Compare(installed, minimum)
	if err != nil {
		return false, err
	}
	return c >= 0, nil
}

// Max returns the highest of the given versions, preserving the original
// spelling of the winner. Empty input is an error.
func Max(versions []string) (string, error) {
	if len(versions) == 0 {
		return "", fmt.Errorf("no versions given")
	}
	best := versions[0]
	for _, v := range versions[1:] {
		c, err := Compare(v, best)
		if err != nil {
			return "", err
		}
		if c > 0 {
			best = v
		}
	}
	// Validate the first entry even when it wins unopposed.
	if _, err := semver.NewVersion(best); err != nil {
		return "", fmt.Errorf("invalid version %q: %w", best, err)
	}
	return best, nil
}
