package tui

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jesseduffield/gocui"
)

// UIConfig is the persisted presentation preference; the theme choice
// survives restarts.
type UIConfig struct {
	Theme string `json:"theme"`
}

func DefaultUIConfig() UIConfig {
	return UIConfig{Theme: "light"}
}

func LoadUIConfig(path string) (UIConfig, error) {
	cfg := DefaultUIConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return UIConfig{}, err
	}

	if err := json.Unmarshal(data, &cfg); err != nil {
		return UIConfig{}, fmt.Errorf("parse ui config: %w", err)
	}
	if cfg.Theme != "dark" && cfg.Theme != "light" {
		cfg.Theme = "light"
	}
	return cfg, nil
}

func SaveUIConfig(path string, cfg UIConfig) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// theme is a gocui attribute set. Two fixed palettes; 't' flips between
// them at runtime.
type theme struct {
	name    string
	fg, bg  gocui.Attribute
	frame   gocui.Attribute
	titleFg gocui.Attribute
}

func themeByName(name string) theme {
	if name == "dark" {
		return theme{
			name:    "dark",
			fg:      gocui.ColorWhite,
			bg:      gocui.ColorBlack,
			frame:   gocui.ColorCyan,
			titleFg: gocui.ColorYellow,
		}
	}
	return theme{
		name:    "light",
		fg:      gocui.ColorBlack,
		bg:      gocui.ColorDefault,
		frame:   gocui.ColorBlue,
		titleFg: gocui.ColorBlue,
	}
}

func (t theme) other() string {
	if t.name == "dark" {
		return "light"
	}
	return "dark"
}
