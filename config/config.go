// Package config loads .jtype.yaml, the per-project settings for the jtype
// command.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/dhamidi/jtype/classpath"
	"github.com/dhamidi/jtype/resolved"
)

// FileName is looked up in the working directory.
const FileName = ".jtype.yaml"

const defaultConfigYAML = `# jtype configuration

# Directories and jars searched for classes, in order.
classpath: []

# Every *.jar in this directory is appended to the classpath.
lib: ""

# Include the built-in java.lang and java.util declarations.
bootstrap: true

# How deeply type arguments may nest.
max_depth: 64

log:
  verbosity: 0
  file: ""
`

type LogConfig struct {
	Verbosity int    `yaml:"verbosity"`
	File      string `yaml:"file,omitempty"`
}

// Config models .jtype.yaml.
type Config struct {
	Classpath []string  `yaml:"classpath"`
	Lib       string    `yaml:"lib,omitempty"`
	Bootstrap *bool     `yaml:"bootstrap,omitempty"`
	MaxDepth  int       `yaml:"max_depth"`
	Log       LogConfig `yaml:"log"`

	// Dir is the directory relative entries are resolved against.
	Dir string `yaml:"-"`
}

func Default() *Config {
	bootstrap := true
	return &Config{
		Bootstrap: &bootstrap,
		MaxDepth:  resolved.DefaultMaxDepth,
	}
}

// Load reads FileName from dir. A missing file yields the defaults.
func Load(dir string) (*Config, error) {
	return LoadFile(filepath.Join(dir, FileName))
}

func LoadFile(path string) (*Config, error) {
	cfg := Default()
	cfg.Dir = filepath.Dir(path)

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}

	cfg.applyDefaults()
	cfg.normalize()
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config: %s: %w", path, err)
	}
	return cfg, nil
}

// Init writes a commented default configuration into dir unless one
// exists.
func Init(dir string) (string, error) {
	path := filepath.Join(dir, FileName)
	if _, err := os.Stat(path); err == nil {
		return path, nil
	} else if !errors.Is(err, fs.ErrNotExist) {
		return "", fmt.Errorf("config: stat %s: %w", path, err)
	}
	if err := os.WriteFile(path, []byte(defaultConfigYAML), 0644); err != nil {
		return "", fmt.Errorf("config: write %s: %w", path, err)
	}
	return path, nil
}

func (c *Config) applyDefaults() {
	if c.Bootstrap == nil {
		bootstrap := true
		c.Bootstrap = &bootstrap
	}
	if c.MaxDepth == 0 {
		c.MaxDepth = resolved.DefaultMaxDepth
	}
}

func (c *Config) normalize() {
	var entries []string
	for _, e := range c.Classpath {
		e = strings.TrimSpace(e)
		if e == "" {
			continue
		}
		entries = append(entries, c.abs(e))
	}
	c.Classpath = entries
	if c.Lib = strings.TrimSpace(c.Lib); c.Lib != "" {
		c.Lib = c.abs(c.Lib)
	}
	if c.Log.File = strings.TrimSpace(c.Log.File); c.Log.File != "" {
		c.Log.File = c.abs(c.Log.File)
	}
}

func (c *Config) abs(path string) string {
	if filepath.IsAbs(path) || c.Dir == "" {
		return path
	}
	return filepath.Join(c.Dir, path)
}

func (c *Config) validate() error {
	if c.MaxDepth < 0 {
		return fmt.Errorf("max_depth must be positive, got %d", c.MaxDepth)
	}
	if c.Log.Verbosity < -4 || c.Log.Verbosity > 2 {
		return fmt.Errorf("log.verbosity must be between -4 and 2, got %d", c.Log.Verbosity)
	}
	return nil
}

// UseBootstrap reports whether the built-in declarations are searched.
func (c *Config) UseBootstrap() bool {
	return c.Bootstrap == nil || *c.Bootstrap
}

// Path builds the classpath: the bootstrap declarations, the configured
// entries, then the jars found in Lib.
func (c *Config) Path() (*classpath.Path, error) {
	p := classpath.NewPath()
	if c.UseBootstrap() {
		p.Append(classpath.Bootstrap())
	}
	for _, e := range c.Classpath {
		p.Append(classpath.Entry(e))
	}
	if c.Lib != "" {
		jars, err := classpath.Jars(c.Lib)
		if err != nil {
			return nil, fmt.Errorf("config: %w", err)
		}
		for _, jar := range jars {
			p.Append(classpath.NewJarLoader(jar))
		}
	}
	return p, nil
}

// Resolver builds a resolver over Path limited to MaxDepth.
func (c *Config) Resolver() (*resolved.Resolver, error) {
	p, err := c.Path()
	if err != nil {
		return nil, err
	}
	return resolved.NewResolver(p, resolved.WithMaxDepth(c.MaxDepth)), nil
}
