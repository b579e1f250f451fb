package config

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

type FieldOptions struct {
	DefaultBound int    `toml:"default-bound"`
	HistoryDir   string `toml:"history-dir"`
	HistoryLimit int    `toml:"history-limit"`
}

type Theme struct {
	Background           string `toml:"background"`
	BoxForeground        string `toml:"box-foreground"`
	HintForeground       string `toml:"hint-foreground"`
	PromptForeground     string `toml:"prompt-foreground"`
	TextForeground       string `toml:"text-foreground"`
	DefaultForeground    string `toml:"default-foreground"`
	SuggestionForeground string `toml:"suggestion-foreground"`
}

type Config struct {
	Field FieldOptions `toml:"field"`
	Theme Theme        `toml:"theme"`
}

func Default() Config {
	return Config{
		Field: FieldOptions{
			DefaultBound: 0, // 0 = derive from window width
			HistoryDir:   "",
			HistoryLimit: 1000,
		},
		Theme: Theme{
			Background:           "#0A0E14",
			BoxForeground:        "#B3B1AD",
			HintForeground:       "#5C6773",
			PromptForeground:     "#FFD700",
			TextForeground:       "#B3B1AD",
			DefaultForeground:    "#FFD700",
			SuggestionForeground: "#3E4B59",
		},
	}
}

func Load() (Config, error) {
	cfg := Default()
	path, err := ConfigPath()
	if err != nil {
		return cfg, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, err
	}

	var userCfg Config
	if _, err := toml.Decode(string(data), &userCfg); err != nil {
		return cfg, err
	}

	if userCfg.Field.DefaultBound > 0 {
		cfg.Field.DefaultBound = userCfg.Field.DefaultBound
	}
	if userCfg.Field.HistoryDir != "" {
		cfg.Field.HistoryDir = userCfg.Field.HistoryDir
	}
	if userCfg.Field.HistoryLimit > 0 {
		cfg.Field.HistoryLimit = userCfg.Field.HistoryLimit
	}
	mergeTheme(&cfg.Theme, userCfg.Theme)
	return cfg, nil
}

func mergeTheme(dst *Theme, src Theme) {
	if src.Background != "" {
		dst.Background = src.Background
	}
	if src.BoxForeground != "" {
		dst.BoxForeground = src.BoxForeground
	}
	if src.HintForeground != "" {
		dst.HintForeground = src.HintForeground
	}
	if src.PromptForeground != "" {
		dst.PromptForeground = src.PromptForeground
	}
	if src.TextForeground != "" {
		dst.TextForeground = src.TextForeground
	}
	if src.DefaultForeground != "" {
		dst.DefaultForeground = src.DefaultForeground
	}
	if src.SuggestionForeground != "" {
		dst.SuggestionForeground = src.SuggestionForeground
	}
}

func ConfigDir() (string, error) {
	if v := os.Getenv("QLINE_CONFIG_HOME"); v != "" {
		return filepath.Join(v), nil
	}
	if v := os.Getenv("XDG_CONFIG_HOME"); v != "" {
		return filepath.Join(v, "qline"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "qline"), nil
}

func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// HistoryDir resolves the directory holding per-scope history files.
// The config value wins; otherwise the config dir is used.
func (c Config) HistoryDir() (string, error) {
	if c.Field.HistoryDir != "" {
		return c.Field.HistoryDir, nil
	}
	return ConfigDir()
}
