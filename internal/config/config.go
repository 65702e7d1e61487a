// Package config loads and persists the repolens configuration.
package config

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Config represents the complete repolens configuration
type Config struct {
	Version  int    `json:"version" mapstructure:"version"`
	RepoRoot string `json:"repoRoot" mapstructure:"repoRoot"`

	Indexing   IndexingConfig   `json:"indexing" mapstructure:"indexing"`
	Classifier ClassifierConfig `json:"classifier" mapstructure:"classifier"`
	Views      ViewsConfig      `json:"views" mapstructure:"views"`
	Snapshot   SnapshotConfig   `json:"snapshot" mapstructure:"snapshot"`
	Logging    LoggingConfig    `json:"logging" mapstructure:"logging"`
}

// IndexingConfig controls the concurrent extraction phase
type IndexingConfig struct {
	// Workers is the extraction pool size; 0 means one worker per CPU
	Workers int `json:"workers" mapstructure:"workers"`
	// TimeoutMs is the soft overall indexing deadline; 0 disables it
	TimeoutMs int `json:"timeoutMs" mapstructure:"timeoutMs"`
	// IncludeGlobs selects the source files to index
	IncludeGlobs []string `json:"includeGlobs" mapstructure:"includeGlobs"`
	// IgnoreDirs are directory names skipped during the repository walk
	IgnoreDirs []string `json:"ignoreDirs" mapstructure:"ignoreDirs"`
}

// ClassifierConfig controls relationship inference
type ClassifierConfig struct {
	// ExcludedPrefixes drop foreign/stdlib/test-framework names from
	// relationship inference entirely
	ExcludedPrefixes []string `json:"excludedPrefixes" mapstructure:"excludedPrefixes"`
	// RootTypes are universal root object types that never yield
	// inheritance edges
	RootTypes []string `json:"rootTypes" mapstructure:"rootTypes"`
}

// ViewsConfig controls graph view assembly
type ViewsConfig struct {
	// MaxAssociationEdges caps association edges in the class view
	MaxAssociationEdges int `json:"maxAssociationEdges" mapstructure:"maxAssociationEdges"`
	// MaxAttributes and MaxMethods bound class label size
	MaxAttributes int `json:"maxAttributes" mapstructure:"maxAttributes"`
	MaxMethods    int `json:"maxMethods" mapstructure:"maxMethods"`
	// MaxCallLabels is how many representative calls label a sequence edge
	// before it collapses to a call count
	MaxCallLabels int `json:"maxCallLabels" mapstructure:"maxCallLabels"`
	// UtilityMethods are callee names filtered from the sequence view as
	// noise (trivial accessors, builder-style calls)
	UtilityMethods []string `json:"utilityMethods" mapstructure:"utilityMethods"`
	// ThemePath optionally overrides the built-in diagram theme
	ThemePath string `json:"themePath" mapstructure:"themePath"`
	// OutputDir receives the rendered view files
	OutputDir string `json:"outputDir" mapstructure:"outputDir"`
}

// SnapshotConfig controls index persistence
type SnapshotConfig struct {
	// Path of the persisted index; a ".gz" suffix enables gzip encoding
	Path string `json:"path" mapstructure:"path"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Format string `json:"format" mapstructure:"format"`
	Level  string `json:"level" mapstructure:"level"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Version:  1,
		RepoRoot: ".",
		Indexing: IndexingConfig{
			Workers:      0,
			TimeoutMs:    120000,
			// "**/*.java" needs at least one separator, so root-level
			// files get their own pattern.
			IncludeGlobs: []string{"**/*.java", "*.java"},
			IgnoreDirs:   []string{"node_modules", "build", "target", "vendor", "out"},
		},
		Classifier: ClassifierConfig{
			ExcludedPrefixes: []string{
				"java.", "javax.", "org.springframework",
				"junit", "org.junit", "org.assertj", "org.mockito",
				"org.slf4j", "lombok", "android.", "com.google.common",
			},
			RootTypes: []string{"Object", "java.lang.Object"},
		},
		Views: ViewsConfig{
			MaxAssociationEdges: 30,
			MaxAttributes:       7,
			MaxMethods:          10,
			MaxCallLabels:       3,
			UtilityMethods: []string{
				"save", "print", "ifPresent", "orElse", "forEach", "map",
				"equals", "toString", "hashCode", "get", "set", "is",
				"build", "of", "from", "clone", "compareTo", "builder",
				"add", "remove", "clear", "put", "create", "find",
			},
			OutputDir: ".repolens/diagrams",
		},
		Snapshot: SnapshotConfig{
			Path: ".repolens/index.json",
		},
		Logging: LoggingConfig{
			Format: "human",
			Level:  "info",
		},
	}
}

// LoadConfig loads configuration from .repolens/config.json, falling back to
// defaults when the file does not exist.
func LoadConfig(repoRoot string) (*Config, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("json")
	v.AddConfigPath(filepath.Join(repoRoot, ".repolens"))

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			cfg := DefaultConfig()
			cfg.RepoRoot = repoRoot
			return cfg, nil
		}
		return nil, err
	}

	cfg := DefaultConfig()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, err
	}
	if cfg.RepoRoot == "" || cfg.RepoRoot == "." {
		cfg.RepoRoot = repoRoot
	}
	return cfg, nil
}

// Save writes the configuration to .repolens/config.json
func (c *Config) Save(repoRoot string) error {
	dir := filepath.Join(repoRoot, ".repolens")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(dir, "config.json"), data, 0644)
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Version != 1 {
		return &ConfigError{Field: "version", Message: "unsupported config version"}
	}
	if c.Indexing.Workers < 0 {
		return &ConfigError{Field: "indexing.workers", Message: "must not be negative"}
	}
	if c.Views.MaxAssociationEdges < 0 {
		return &ConfigError{Field: "views.maxAssociationEdges", Message: "must not be negative"}
	}
	if len(c.Indexing.IncludeGlobs) == 0 {
		return &ConfigError{Field: "indexing.includeGlobs", Message: "at least one include pattern is required"}
	}
	return nil
}

// ConfigError represents a configuration error
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return "config error in field '" + e.Field + "': " + e.Message
}
