package config

import "git.home.luguber.info/inful/docops/internal/foundation"

// VersionScheme selects which form of the package version names the deployed docs.
type VersionScheme string

const (
	VersionSchemeFull       VersionScheme = "full"
	VersionSchemeMajorMinor VersionScheme = "major_minor"
)

var versionSchemeNormalizer = foundation.NewNormalizer(map[string]VersionScheme{
	"full":        VersionSchemeFull,
	"major_minor": VersionSchemeMajorMinor,
}, VersionSchemeFull)

// NormalizeVersionScheme maps user input such as "major-minor" onto a VersionScheme.
func NormalizeVersionScheme(raw string) (VersionScheme, error) {
	return versionSchemeNormalizer.Normalize(raw)
}
