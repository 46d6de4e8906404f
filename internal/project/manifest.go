// Package project locates and loads the typemend.toml manifest.
package project

import (
	_ "embed"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// DefaultManifest is the manifest written by `typemend init` and the source
// of every key a project manifest leaves out.
//
//go:embed default.toml
var DefaultManifest []byte

// Checker output streams.
const (
	StreamStderr = "stderr"
	StreamStdout = "stdout"
	StreamBoth   = "both"
)

// Manifest is a loaded configuration together with the directory its
// relative paths resolve against. Path is empty when no file was found.
type Manifest struct {
	Path   string
	Root   string
	Config Config
}

type Config struct {
	Checker    CheckerConfig    `toml:"checker"`
	Interfaces InterfacesConfig `toml:"interfaces"`
	Templates  []TemplateConfig `toml:"templates"`
	Stubs      StubsConfig      `toml:"stubs"`
}

type CheckerConfig struct {
	Command []string `toml:"command"`
	Dir     string   `toml:"dir"`
	Stream  string   `toml:"stream"`
}

type InterfacesConfig struct {
	TypesDir string            `toml:"types_dir"`
	Files    map[string]string `toml:"files"`
}

// TemplateConfig names a type file to create when absent. Exactly one of
// Builtin and Source is set; Source is relative to the manifest root.
type TemplateConfig struct {
	Path    string `toml:"path"`
	Builtin string `toml:"builtin"`
	Source  string `toml:"source"`
}

type StubsConfig struct {
	SourceDir       string `toml:"source_dir"`
	PathPrefix      string `toml:"path_prefix"`
	Limit           int    `toml:"limit"`
	BindingMarker   string `toml:"binding_marker"`
	InsertionMarker string `toml:"insertion_marker"`
}

// Default returns the configuration of the embedded default manifest.
func Default() Config {
	var cfg Config
	if _, err := toml.Decode(string(DefaultManifest), &cfg); err != nil {
		panic(fmt.Errorf("embedded manifest: %w", err))
	}
	return cfg
}

// Load parses the manifest at path. Keys it does not define keep their
// default values; unknown keys are rejected.
func Load(path string) (*Manifest, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve manifest path: %w", err)
	}
	var user Config
	meta, err := toml.DecodeFile(abs, &user)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, k := range undecoded {
			keys = append(keys, k.String())
		}
		return nil, fmt.Errorf("%s: unknown keys: %s", path, strings.Join(keys, ", "))
	}

	cfg := merge(Default(), user, meta)
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &Manifest{
		Path:   abs,
		Root:   filepath.Dir(abs),
		Config: cfg,
	}, nil
}

func merge(cfg, user Config, meta toml.MetaData) Config {
	set := func(dst *string, src string, key ...string) {
		if meta.IsDefined(key...) {
			*dst = src
		}
	}

	if meta.IsDefined("checker", "command") {
		cfg.Checker.Command = user.Checker.Command
	}
	set(&cfg.Checker.Dir, user.Checker.Dir, "checker", "dir")
	set(&cfg.Checker.Stream, user.Checker.Stream, "checker", "stream")

	set(&cfg.Interfaces.TypesDir, user.Interfaces.TypesDir, "interfaces", "types_dir")
	if meta.IsDefined("interfaces", "files") {
		cfg.Interfaces.Files = user.Interfaces.Files
	}

	if meta.IsDefined("templates") {
		cfg.Templates = user.Templates
	}

	set(&cfg.Stubs.SourceDir, user.Stubs.SourceDir, "stubs", "source_dir")
	set(&cfg.Stubs.PathPrefix, user.Stubs.PathPrefix, "stubs", "path_prefix")
	if meta.IsDefined("stubs", "limit") {
		cfg.Stubs.Limit = user.Stubs.Limit
	}
	set(&cfg.Stubs.BindingMarker, user.Stubs.BindingMarker, "stubs", "binding_marker")
	set(&cfg.Stubs.InsertionMarker, user.Stubs.InsertionMarker, "stubs", "insertion_marker")
	return cfg
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	if len(c.Checker.Command) == 0 || strings.TrimSpace(c.Checker.Command[0]) == "" {
		return fmt.Errorf("[checker].command must not be empty")
	}
	switch c.Checker.Stream {
	case StreamStderr, StreamStdout, StreamBoth:
	default:
		return fmt.Errorf("[checker].stream must be stderr, stdout or both, got %q", c.Checker.Stream)
	}
	if strings.TrimSpace(c.Interfaces.TypesDir) == "" {
		return fmt.Errorf("[interfaces].types_dir must not be empty")
	}
	for i, t := range c.Templates {
		if strings.TrimSpace(t.Path) == "" {
			return fmt.Errorf("[[templates]] #%d: missing path", i+1)
		}
		if (t.Builtin == "") == (t.Source == "") {
			return fmt.Errorf("[[templates]] %s: set exactly one of builtin or source", t.Path)
		}
	}
	if c.Stubs.Limit < 0 {
		return fmt.Errorf("[stubs].limit must not be negative")
	}
	if c.Stubs.InsertionMarker == "" {
		return fmt.Errorf("[stubs].insertion_marker must not be empty")
	}
	return nil
}

// Resolve joins a manifest-relative slash path onto the root.
func (m *Manifest) Resolve(rel string) string {
	if filepath.IsAbs(rel) {
		return filepath.Clean(rel)
	}
	return filepath.Join(m.Root, filepath.FromSlash(rel))
}

// CheckerDir is the working directory of the checker command.
func (m *Manifest) CheckerDir() string {
	return m.Resolve(m.Config.Checker.Dir)
}

// TypesDir is the directory holding the props interface files.
func (m *Manifest) TypesDir() string {
	return m.Resolve(m.Config.Interfaces.TypesDir)
}

// SourceDir is the directory component paths from the diagnostics are
// resolved against.
func (m *Manifest) SourceDir() string {
	return m.Resolve(m.Config.Stubs.SourceDir)
}

// TemplatePath is the target of a template entry.
func (m *Manifest) TemplatePath(t TemplateConfig) string {
	if filepath.IsAbs(t.Path) {
		return filepath.Clean(t.Path)
	}
	return filepath.Join(m.TypesDir(), filepath.FromSlash(t.Path))
}

// JournalPath is where the undo journal of this project lives.
func (m *Manifest) JournalPath() string {
	return filepath.Join(m.Root, ".typemend", "journal.msgpack")
}
