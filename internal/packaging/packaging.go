// Package packaging reads release metadata out of the project's packaging descriptor.
package packaging

import (
	"errors"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	ferrors "git.home.luguber.info/inful/docops/internal/foundation/errors"
)

var (
	// ErrDescriptorNotFound indicates the packaging descriptor does not exist.
	ErrDescriptorNotFound = errors.New("packaging descriptor not found")

	// ErrVersionNotFound indicates no line of the descriptor assigns a version.
	ErrVersionNotFound = errors.New("could not find version in packaging descriptor")
)

// versionPattern matches the first `version = "X"` or `version = 'X'` line.
var versionPattern = regexp.MustCompile(`(?m)^version\s*=\s*["']([^"']+)["']`)

// Locate returns the descriptor path for a project root.
func Locate(root, name string) string {
	return filepath.Join(root, name)
}

// ExtractVersion returns the version string assigned in the descriptor at path.
// A missing file and a file without a version assignment both fail with a
// not_found error. The captured value is returned unchanged.
func ExtractVersion(path string) (string, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", ferrors.NotFoundError(filepath.Base(path)+" not found").
				WithCause(ErrDescriptorNotFound).
				WithContext("path", path).
				Build()
		}
		return "", ferrors.WrapError(err, ferrors.CategoryFileSystem, "failed to read packaging descriptor").
			Fatal().
			WithContext("path", path).
			Build()
	}

	version, ok := ParseVersion(string(content))
	if !ok {
		return "", ferrors.NotFoundError("could not find version in "+filepath.Base(path)).
			WithCause(ErrVersionNotFound).
			WithContext("path", path).
			Build()
	}
	return version, nil
}

// ParseVersion finds the version assignment in descriptor text.
func ParseVersion(content string) (string, bool) {
	m := versionPattern.FindStringSubmatch(content)
	if m == nil {
		return "", false
	}
	return m[1], true
}

// MajorMinor reduces "18.1.0" to "18.1". Versions with fewer than two
// components are returned unchanged.
func MajorMinor(version string) string {
	parts := strings.Split(version, ".")
	if len(parts) >= 2 {
		return parts[0] + "." + parts[1]
	}
	return version
}
