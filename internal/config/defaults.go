package config

// DefaultApplier applies defaults for a specific configuration domain.
type DefaultApplier interface {
	ApplyDefaults(cfg *Config) error
	Domain() string
}

// DeployDefaultApplier handles Deploy configuration defaults.
type DeployDefaultApplier struct{}

func (d *DeployDefaultApplier) Domain() string { return "deploy" }

func (d *DeployDefaultApplier) ApplyDefaults(cfg *Config) error {
	if cfg.Deploy.PackageFile == "" {
		cfg.Deploy.PackageFile = "package.py"
	}
	if cfg.Deploy.Tool == "" {
		cfg.Deploy.Tool = "mike"
	}
	if cfg.Deploy.Alias == "" {
		cfg.Deploy.Alias = "latest"
	}
	if cfg.Deploy.VersionScheme == "" {
		cfg.Deploy.VersionScheme = VersionSchemeFull
	}
	return nil
}

// ReferenceDefaultApplier handles Reference configuration defaults.
type ReferenceDefaultApplier struct{}

func (r *ReferenceDefaultApplier) Domain() string { return "reference" }

func (r *ReferenceDefaultApplier) ApplyDefaults(cfg *Config) error {
	ref := &cfg.Reference
	if ref.SourceDir == "" {
		ref.SourceDir = "python"
	}
	if ref.Extension == "" {
		ref.Extension = ".py"
	}
	if ref.Initializer == "" {
		ref.Initializer = "__init__"
	}
	if ref.DocsDir == "" {
		ref.DocsDir = "docs"
	}
	if ref.Subdir == "" {
		ref.Subdir = "technical"
	}
	if ref.Summary == "" {
		ref.Summary = "SUMMARY.md"
	}
	// nil means "not configured"; an explicit empty list disables skipping.
	if ref.SkipDirs == nil {
		ref.SkipDirs = []string{"__pycache__", ".deprecated", "_dev"}
	}
	if ref.SkipFiles == nil {
		ref.SkipFiles = []string{"__main__"}
	}
	if ref.Debounce == "" {
		ref.Debounce = "500ms"
	}
	return nil
}

// defaultAppliers lists appliers in the order they run.
func defaultAppliers() []DefaultApplier {
	return []DefaultApplier{
		&DeployDefaultApplier{},
		&ReferenceDefaultApplier{},
	}
}

// ApplyDefaults runs every domain applier against cfg.
func ApplyDefaults(cfg *Config) error {
	for _, applier := range defaultAppliers() {
		if err := applier.ApplyDefaults(cfg); err != nil {
			return err
		}
	}
	return nil
}
