package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	ferrors "git.home.luguber.info/inful/docops/internal/foundation/errors"
)

// DefaultFileName is looked up in the project root when no config path is given.
const DefaultFileName = "docops.yaml"

// Config represents the docops configuration file.
type Config struct {
	Deploy    DeployConfig    `yaml:"deploy"`
	Reference ReferenceConfig `yaml:"reference"`
}

// DeployConfig drives the version-tagged publish of built documentation.
type DeployConfig struct {
	PackageFile   string        `yaml:"package_file"`             // Packaging descriptor relative to the project root
	Tool          string        `yaml:"tool"`                     // Versioning tool binary, "mike"
	Alias         string        `yaml:"alias"`                    // Alias updated alongside the version
	Push          bool          `yaml:"push"`                     // Push the docs branch after deploy
	VersionScheme VersionScheme `yaml:"version_scheme,omitempty"` // full | major_minor
	Remote        string        `yaml:"remote,omitempty"`
	Branch        string        `yaml:"branch,omitempty"`
	Title         string        `yaml:"title,omitempty"`
}

// ReferenceConfig drives reference stub generation.
type ReferenceConfig struct {
	SourceDir    string   `yaml:"source_dir"`  // Source root relative to the project root
	Extension    string   `yaml:"extension"`   // Module file extension, ".py"
	Initializer  string   `yaml:"initializer"` // Package initializer base name, "__init__"
	DocsDir      string   `yaml:"docs_dir"`    // Documentation root relative to the project root
	Subdir       string   `yaml:"subdir"`      // Generated tree below DocsDir
	Summary      string   `yaml:"summary"`     // Literate nav file name inside Subdir
	SkipDirs     []string `yaml:"skip_dirs"`
	SkipFiles    []string `yaml:"skip_files"`
	Descriptions bool     `yaml:"descriptions"`       // Prefix stubs with the module docstring summary
	EditURI      string   `yaml:"edit_uri,omitempty"` // Base URL joined with the edit path
	Debounce     string   `yaml:"debounce,omitempty"` // Watch mode debounce, e.g. "500ms"
}

// Load reads configuration from configPath, applies defaults and validates it.
// A missing file is an error unless optional is set, in which case defaults are returned.
func Load(configPath string, optional bool) (*Config, error) {
	loadEnvFile(filepath.Dir(configPath))

	cfg := &Config{}
	data, err := os.ReadFile(configPath)
	switch {
	case err == nil:
		// Expand environment variables in the YAML content
		expanded := os.ExpandEnv(string(data))
		if err := yaml.Unmarshal([]byte(expanded), cfg); err != nil {
			return nil, ferrors.WrapError(err, ferrors.CategoryConfig, "failed to parse configuration").
				WithContext("path", configPath).
				Build()
		}
		slog.Debug("Loaded configuration", "path", configPath)
	case os.IsNotExist(err) && optional:
		slog.Debug("No configuration file, using defaults", "path", configPath)
	case os.IsNotExist(err):
		return nil, ferrors.ConfigError("configuration file not found").
			WithContext("path", configPath).
			Build()
	default:
		return nil, ferrors.WrapError(err, ferrors.CategoryConfig, "failed to read configuration").
			WithContext("path", configPath).
			Build()
	}

	if err := ApplyDefaults(cfg); err != nil {
		return nil, err
	}
	if err := ValidateConfig(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Default returns a configuration with every default applied.
func Default() *Config {
	cfg := &Config{}
	// Defaults never fail on an empty config.
	_ = ApplyDefaults(cfg)
	return cfg
}

// Init creates a new configuration file populated with the defaults.
func Init(configPath string, force bool) error {
	if _, err := os.Stat(configPath); err == nil && !force {
		return ferrors.ValidationError("configuration file already exists (use --force to overwrite)").
			WithContext("path", configPath).
			Build()
	}

	cfg := Default()
	cfg.Reference.EditURI = "https://github.com/example/project/edit/main/"

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if dir := filepath.Dir(configPath); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return ferrors.WrapError(err, ferrors.CategoryFileSystem, "failed to create config directory").Build()
		}
	}
	if err := os.WriteFile(configPath, data, 0o600); err != nil {
		return ferrors.WrapError(err, ferrors.CategoryFileSystem, "failed to write config file").
			WithContext("path", configPath).
			Build()
	}
	return nil
}
