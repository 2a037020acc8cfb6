package config

import (
	"path/filepath"
	"strings"
	"time"

	ferrors "git.home.luguber.info/inful/docops/internal/foundation/errors"
)

// ValidateConfig validates the complete configuration structure.
func ValidateConfig(cfg *Config) error {
	validator := newConfigurationValidator(cfg)
	return validator.validate()
}

// configurationValidator coordinates validation across all configuration domains.
type configurationValidator struct {
	config *Config
}

func newConfigurationValidator(config *Config) *configurationValidator {
	return &configurationValidator{config: config}
}

func (cv *configurationValidator) validate() error {
	if err := cv.validateDeploy(); err != nil {
		return err
	}
	return cv.validateReference()
}

func (cv *configurationValidator) validateDeploy() error {
	d := &cv.config.Deploy

	scheme, err := NormalizeVersionScheme(string(d.VersionScheme))
	if err != nil {
		return invalid("deploy.version_scheme", err.Error())
	}
	d.VersionScheme = scheme

	if strings.TrimSpace(d.Alias) == "" {
		return invalid("deploy.alias", "must not be blank")
	}
	if strings.TrimSpace(d.Tool) == "" {
		return invalid("deploy.tool", "must not be blank")
	}
	return validateRelative("deploy.package_file", d.PackageFile)
}

func (cv *configurationValidator) validateReference() error {
	r := &cv.config.Reference

	if !strings.HasPrefix(r.Extension, ".") || len(r.Extension) < 2 {
		return invalid("reference.extension", "must start with a dot, e.g. \".py\"")
	}
	if strings.ContainsAny(r.Initializer, `/\`) {
		return invalid("reference.initializer", "must be a bare file name")
	}
	if strings.ContainsAny(r.Summary, `/\`) {
		return invalid("reference.summary", "must be a bare file name")
	}
	for field, value := range map[string]string{
		"reference.source_dir": r.SourceDir,
		"reference.docs_dir":   r.DocsDir,
		"reference.subdir":     r.Subdir,
	} {
		if err := validateRelative(field, value); err != nil {
			return err
		}
	}
	if d, err := time.ParseDuration(r.Debounce); err != nil || d < 0 {
		return invalid("reference.debounce", "must be a non-negative duration such as \"500ms\"")
	}
	return nil
}

// validateRelative rejects absolute paths and paths escaping the project root.
func validateRelative(field, value string) error {
	if filepath.IsAbs(value) {
		return invalid(field, "must be relative to the project root")
	}
	clean := filepath.ToSlash(filepath.Clean(value))
	if clean == ".." || strings.HasPrefix(clean, "../") {
		return invalid(field, "must not leave the project root")
	}
	return nil
}

func invalid(field, reason string) error {
	return ferrors.ConfigError("invalid configuration: "+field+" "+reason).
		WithContext("field", field).
		Build()
}

// DebounceDuration returns the parsed watch debounce.
func (r ReferenceConfig) DebounceDuration() time.Duration {
	d, err := time.ParseDuration(r.Debounce)
	if err != nil {
		return 500 * time.Millisecond
	}
	return d
}
