// Package config assembles the server settings from defaults, an optional
// TOML or YAML file, a .env file and the environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
	"github.com/shravanasati/filesrv/internal/server"
	"gopkg.in/yaml.v3"
)

const (
	OnFatalExit     = "exit"
	OnFatalContinue = "continue"
)

// Environment variables that override file values.
const (
	EnvAddress  = "FILESRV_ADDRESS"
	EnvRoot     = "FILESRV_ROOT"
	EnvFallback = "FILESRV_FALLBACK"
	EnvOnFatal  = "FILESRV_ON_FATAL"
)

type Config struct {
	// Address to listen on.
	Address string `toml:"address" yaml:"address"`
	// Root is the base directory files are served from.
	Root string `toml:"root" yaml:"root"`
	// Fallback is the document sent with every 404.
	Fallback string `toml:"fallback" yaml:"fallback"`
	// OnFatal is "exit" or "continue".
	OnFatal string `toml:"on_fatal" yaml:"on_fatal"`

	ReadTimeout  time.Duration `toml:"read_timeout" yaml:"read_timeout"`
	WriteTimeout time.Duration `toml:"write_timeout" yaml:"write_timeout"`

	LogColor bool `toml:"log_color" yaml:"log_color"`
}

// Default serves the working directory on port 4800 and looks for the
// fallback document next to the executable.
func Default() *Config {
	return &Config{
		Address:  ":4800",
		Root:     ".",
		Fallback: defaultFallback(),
		OnFatal:  OnFatalExit,
		LogColor: true,
	}
}

func defaultFallback() string {
	rel := filepath.Join("public", "404.html")
	exe, err := os.Executable()
	if err != nil {
		return rel
	}
	if resolved, err := filepath.EvalSymlinks(exe); err == nil {
		exe = resolved
	}
	return filepath.Join(filepath.Dir(exe), rel)
}

// Load returns the defaults overlaid with the file at path (skipped when
// empty), then with .env and the process environment.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		if err := cfg.decodeFile(path); err != nil {
			return nil, err
		}
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("config: .env: %w", err)
	}
	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) decodeFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		if _, err := toml.Decode(string(data), c); err != nil {
			return fmt.Errorf("config: %s: %w", path, err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, c); err != nil {
			return fmt.Errorf("config: %s: %w", path, err)
		}
	default:
		return fmt.Errorf("config: %s: %w %q", path, ErrUnknownFormat, ext)
	}
	return nil
}

func (c *Config) applyEnv() {
	for name, field := range map[string]*string{
		EnvAddress:  &c.Address,
		EnvRoot:     &c.Root,
		EnvFallback: &c.Fallback,
		EnvOnFatal:  &c.OnFatal,
	} {
		if v, ok := os.LookupEnv(name); ok && v != "" {
			*field = v
		}
	}
}

// Validate checks that the settings are usable.
func (c *Config) Validate() error {
	switch {
	case c.Address == "":
		return fmt.Errorf("config: %w: address", ErrMissing)
	case c.Root == "":
		return fmt.Errorf("config: %w: root", ErrMissing)
	case c.Fallback == "":
		return fmt.Errorf("config: %w: fallback", ErrMissing)
	case c.OnFatal != OnFatalExit && c.OnFatal != OnFatalContinue:
		return fmt.Errorf("config: %w: on_fatal %q", ErrInvalid, c.OnFatal)
	case c.ReadTimeout < 0 || c.WriteTimeout < 0:
		return fmt.Errorf("config: %w: negative timeout", ErrInvalid)
	}
	return nil
}

// FatalPolicy maps OnFatal to the server's policy. Exiting needs the
// listener closed first, so "exit" means shutdown.
func (c *Config) FatalPolicy() server.FatalPolicy {
	if c.OnFatal == OnFatalContinue {
		return server.FatalIsolate
	}
	return server.FatalShutdown
}

// ServerOpts builds the transport options.
func (c *Config) ServerOpts() server.ServerOpts {
	return server.ServerOpts{
		Address:      c.Address,
		ReadTimeout:  c.ReadTimeout,
		WriteTimeout: c.WriteTimeout,
		FatalPolicy:  c.FatalPolicy(),
	}
}
