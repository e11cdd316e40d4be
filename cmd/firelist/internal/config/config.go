package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// FileName is the config file looked up in the working directory.
const FileName = "firelist.yaml"

// Source kinds.
const (
	SourceMemory    = "memory"
	SourceFirestore = "firestore"
)

// Config represents the optional firelist.yaml configuration.
type Config struct {
	Source SourceConfig `yaml:"source"`
	List   ListConfig   `yaml:"list"`
	Demo   DemoConfig   `yaml:"demo"`
}

// SourceConfig selects the collection the list is bound to.
type SourceConfig struct {
	Kind       string `yaml:"kind,omitempty"`
	Project    string `yaml:"project,omitempty"`
	Database   string `yaml:"database,omitempty"`
	Collection string `yaml:"collection,omitempty"`
	OrderBy    string `yaml:"order_by,omitempty"`
	Descending bool   `yaml:"descending,omitempty"`
	Limit      int    `yaml:"limit,omitempty"`
}

// ListConfig contains list presentation settings.
type ListConfig struct {
	ClipToTop  *bool `yaml:"clip_to_top,omitempty"`
	RowLines   int   `yaml:"row_lines,omitempty"`
	CacheLines int   `yaml:"cache_lines,omitempty"`
}

// DemoConfig drives the in-memory demo feed.
type DemoConfig struct {
	Interval time.Duration `yaml:"interval,omitempty"`
	Burst    int           `yaml:"burst,omitempty"`
	Seed     int64         `yaml:"seed,omitempty"`
	Initial  *int          `yaml:"initial,omitempty"`
	Max      int           `yaml:"max,omitempty"`
}

// Resolved contains resolved configuration values.
type Resolved struct {
	Path string

	SourceKind string
	Project    string
	Database   string
	Collection string
	OrderBy    string
	Descending bool
	Limit      int

	ClipToTop  bool
	RowLines   int
	CacheLines int

	DemoInterval time.Duration
	DemoBurst    int
	DemoSeed     int64
	DemoInitial  int
	DemoMax      int
}

// Overrides are command-line values that take precedence over the file
// and the environment. Zero values are ignored.
type Overrides struct {
	SourceKind string
	Collection string
	Project    string
}

// LoadOptional reads the config at path if present.
func LoadOptional(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &Config{}, nil
		}
		return nil, fmt.Errorf("failed to read %s: %w", filepath.Base(path), err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", filepath.Base(path), err)
	}

	return &cfg, nil
}

// Resolve loads the config at path (if present), applies the environment
// and overrides, and resolves defaults.
func Resolve(path string, over Overrides) (*Resolved, error) {
	cfg, err := LoadOptional(path)
	if err != nil {
		return nil, err
	}

	r := &Resolved{
		Path:       path,
		SourceKind: strings.ToLower(strings.TrimSpace(cfg.Source.Kind)),
		Project:    strings.TrimSpace(cfg.Source.Project),
		Database:   strings.TrimSpace(cfg.Source.Database),
		Collection: strings.Trim(strings.TrimSpace(cfg.Source.Collection), "/"),
		OrderBy:    strings.TrimSpace(cfg.Source.OrderBy),
		Descending: cfg.Source.Descending,
		Limit:      cfg.Source.Limit,
		ClipToTop:  true,
		RowLines:   cfg.List.RowLines,
		CacheLines: cfg.List.CacheLines,

		DemoInterval: cfg.Demo.Interval,
		DemoBurst:    cfg.Demo.Burst,
		DemoSeed:     cfg.Demo.Seed,
		DemoInitial:  20,
		DemoMax:      cfg.Demo.Max,
	}
	if cfg.List.ClipToTop != nil {
		r.ClipToTop = *cfg.List.ClipToTop
	}
	if cfg.Demo.Initial != nil {
		r.DemoInitial = *cfg.Demo.Initial
	}

	if v := os.Getenv("GOOGLE_CLOUD_PROJECT"); v != "" {
		r.Project = v
	}
	if v := os.Getenv("FIRESTORE_DATABASE"); v != "" {
		r.Database = v
	}

	if over.SourceKind != "" {
		r.SourceKind = strings.ToLower(over.SourceKind)
	}
	if over.Collection != "" {
		r.Collection = strings.Trim(over.Collection, "/")
	}
	if over.Project != "" {
		r.Project = over.Project
	}

	applyDefaults(r)
	if err := validate(r); err != nil {
		return nil, err
	}
	return r, nil
}

func applyDefaults(r *Resolved) {
	if r.SourceKind == "" {
		r.SourceKind = SourceMemory
	}
	if r.Collection == "" {
		r.Collection = "messages"
	}
	if r.Database == "" {
		r.Database = "(default)"
	}
	if r.RowLines <= 0 {
		r.RowLines = 1
	}
	if r.CacheLines < 0 {
		r.CacheLines = 0
	}
	if r.DemoInterval <= 0 {
		r.DemoInterval = 750 * time.Millisecond
	}
	if r.DemoBurst <= 0 {
		r.DemoBurst = 1
	}
	if r.DemoSeed == 0 {
		r.DemoSeed = time.Now().UnixNano()
	}
	if r.DemoMax <= 0 {
		r.DemoMax = 100
	}
}

func validate(r *Resolved) error {
	switch r.SourceKind {
	case SourceMemory:
	case SourceFirestore:
		if r.Project == "" {
			return fmt.Errorf("firestore source requires a project (set source.project or GOOGLE_CLOUD_PROJECT)")
		}
	default:
		return fmt.Errorf("unknown source kind %q (use %s or %s)", r.SourceKind, SourceMemory, SourceFirestore)
	}
	if r.Limit < 0 {
		return fmt.Errorf("source.limit must not be negative, got %d", r.Limit)
	}
	if r.DemoInitial < 0 {
		return fmt.Errorf("demo.initial must not be negative, got %d", r.DemoInitial)
	}
	return nil
}
