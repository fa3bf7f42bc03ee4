package config

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

//go:embed default.yaml
var DefaultConfigYAML []byte

type Config struct {
	Corpus    Corpus    `yaml:"corpus"`
	Analytics Analytics `yaml:"analytics"`
	Sources   Sources   `yaml:"sources"`
	Output    Output    `yaml:"output"`
	Server    Server    `yaml:"server"`
	Logging   Logging   `yaml:"logging"`
}

type Corpus struct {
	Path string `yaml:"path"`
}

// Analytics holds the presentation parameters of the aggregation engine.
// ChartTopics bounds the attention time series, TableTopics the summary
// table. ElectionDate splits staged exports into pre/post election periods.
type Analytics struct {
	ChartTopics  int    `yaml:"chart_topics"`
	TableTopics  int    `yaml:"table_topics"`
	ElectionDate string `yaml:"election_date"`
}

type Sources struct {
	Feeds []Feed `yaml:"feeds"`
}

type Feed struct {
	URL  string `yaml:"url"`
	Name string `yaml:"name"`
}

type Output struct {
	DataDir string `yaml:"data_dir"`
}

type Server struct {
	Port int `yaml:"port"`
}

type Logging struct {
	Level string `yaml:"level"`
}

// ConfigDir returns the XDG config directory for discourse.
func ConfigDir() string {
	return filepath.Join(homeDir(), ".config", "discourse")
}

// DataDir returns the XDG data directory for discourse.
func DataDir() string {
	return filepath.Join(homeDir(), ".local", "share", "discourse")
}

// ResolveConfigPath finds the config file following priority:
// explicit path > ~/.config/discourse/config.yaml > ./config.yaml
func ResolveConfigPath(explicit string) (string, error) {
	if explicit != "" {
		if _, err := os.Stat(explicit); err != nil {
			return "", fmt.Errorf("config file not found: %s", explicit)
		}
		return explicit, nil
	}

	xdgConfig := filepath.Join(ConfigDir(), "config.yaml")
	if _, err := os.Stat(xdgConfig); err == nil {
		return xdgConfig, nil
	}

	cwdConfig := "config.yaml"
	if _, err := os.Stat(cwdConfig); err == nil {
		return cwdConfig, nil
	}

	return "", fmt.Errorf(
		"no config file found; searched:\n  %s\n  ./config.yaml\n\nRun 'discourse init' to create a default config",
		xdgConfig,
	)
}

// Load reads and parses a config YAML file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	return parse(data)
}

// parse parses YAML bytes into a Config, applying defaults.
func parse(data []byte) (*Config, error) {
	cfg := &Config{
		Corpus: Corpus{
			Path: "data/dashboard/dashboard_data.csv",
		},
		Analytics: Analytics{
			ChartTopics:  6,
			TableTopics:  10,
			ElectionDate: "2024-07-01",
		},
		Server:  Server{Port: 8000},
		Logging: Logging{Level: "INFO"},
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	if cfg.Analytics.ChartTopics <= 0 {
		return nil, fmt.Errorf("analytics.chart_topics must be positive")
	}
	if cfg.Analytics.TableTopics <= 0 {
		return nil, fmt.Errorf("analytics.table_topics must be positive")
	}

	return cfg, nil
}

// GetDataDir returns the effective data directory from config or XDG default.
func (c *Config) GetDataDir() string {
	if c.Output.DataDir != "" {
		return c.Output.DataDir
	}
	return DataDir()
}

func homeDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return home
}
