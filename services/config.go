package services

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/panyam/designboard/diagram"
	"github.com/panyam/designboard/editor"
)

const (
	EnvMode    = "DESIGNBOARD_ENV"
	EnvWebPort = "DESIGNBOARD_WEB_PORT"
	EnvConfig  = "DESIGNBOARD_CONFIG"

	DefaultConfigPath = "designboard.toml"
	DefaultWebAddress = ":8080"
)

// Config holds the editor defaults read from designboard.toml.
type Config struct {
	Editor  EditorConfig  `toml:"editor"`
	Node    NodeConfig    `toml:"node"`
	History HistoryConfig `toml:"history"`
	View    ViewConfig    `toml:"view"`
	Server  ServerConfig  `toml:"server"`
}

// EditorConfig is the default style of new nodes and edges.
type EditorConfig struct {
	Color     string `toml:"color"`
	Routing   string `toml:"routing"`
	Thickness int    `toml:"thickness"`
}

type NodeConfig struct {
	Width  float64 `toml:"width"`
	Height float64 `toml:"height"`
}

type HistoryConfig struct {
	Limit int `toml:"limit"` // 0 keeps every snapshot
}

type ViewConfig struct {
	Zoom float64 `toml:"zoom"`
}

type ServerConfig struct {
	Address     string `toml:"address"`
	MaxSessions int    `toml:"max_sessions"`
}

func DefaultConfig() *Config {
	return &Config{
		Editor: EditorConfig{
			Color:     diagram.DefaultColor,
			Routing:   string(diagram.Bezier),
			Thickness: diagram.DefaultThickness,
		},
		Node:   NodeConfig{Width: diagram.DefaultNodeWidth, Height: diagram.DefaultNodeHeight},
		View:   ViewConfig{Zoom: editor.DefaultZoom},
		Server: ServerConfig{Address: DefaultWebAddress, MaxSessions: 100},
	}
}

// LoadConfig reads a TOML config over the defaults. A missing file is not an
// error.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	} else if err != nil {
		return nil, fmt.Errorf("error reading config '%s': %w", path, err)
	}
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("error parsing config '%s': %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// ConfigPath picks the config file: the flag value, else $DESIGNBOARD_CONFIG,
// else designboard.toml in the working directory.
func ConfigPath(flag string) string {
	if flag != "" {
		return flag
	}
	if p := os.Getenv(EnvConfig); p != "" {
		return p
	}
	return DefaultConfigPath
}

// WebAddress returns $DESIGNBOARD_WEB_PORT if set, else the configured address.
func (c *Config) WebAddress() string {
	if addr := os.Getenv(EnvWebPort); addr != "" {
		return addr
	}
	if c.Server.Address != "" {
		return c.Server.Address
	}
	return DefaultWebAddress
}

func (c *Config) Validate() error {
	if !diagram.ValidColor(c.Editor.Color) {
		return fmt.Errorf("invalid editor.color '%s'", c.Editor.Color)
	}
	if _, ok := diagram.ParseRoutingStyle(c.Editor.Routing); !ok {
		return fmt.Errorf("invalid editor.routing '%s'", c.Editor.Routing)
	}
	if c.History.Limit < 0 {
		return fmt.Errorf("history.limit must not be negative, got %d", c.History.Limit)
	}
	if c.View.Zoom < 0 {
		return fmt.Errorf("view.zoom must not be negative, got %g", c.View.Zoom)
	}
	return nil
}

// SessionOptions turns the config into options for a new editor session.
func (c *Config) SessionOptions(logger *slog.Logger) editor.Options {
	return editor.Options{
		Defaults: editor.Defaults{
			Color:     c.Editor.Color,
			Routing:   diagram.RoutingStyle(c.Editor.Routing),
			Thickness: c.Editor.Thickness,
		},
		NodeSize:     diagram.Size{Width: c.Node.Width, Height: c.Node.Height},
		HistoryLimit: c.History.Limit,
		Viewport:     editor.Viewport{Zoom: c.View.Zoom},
		Logger:       logger,
	}
}

// IsDev reports whether $DESIGNBOARD_ENV selects development mode.
func IsDev() bool { return os.Getenv(EnvMode) == "dev" }
