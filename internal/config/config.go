// Package config loads and writes the .roam/config.toml file feeding
// default thresholds into the CLI layer. Analysis functions never read
// config themselves; every threshold is passed in explicitly.
package config

import (
	"os"
	"path/filepath"

	toml "github.com/pelletier/go-toml/v2"
	"github.com/spf13/viper"
)

// Config is the complete roam configuration.
type Config struct {
	Version   int             `toml:"version" mapstructure:"version"`
	Database  string          `toml:"database" mapstructure:"database"`
	Traversal TraversalConfig `toml:"traversal" mapstructure:"traversal"`
	Coupling  CouplingConfig  `toml:"coupling" mapstructure:"coupling"`
	Alerts    AlertsConfig    `toml:"alerts" mapstructure:"alerts"`
	Report    ReportConfig    `toml:"report" mapstructure:"report"`
	Logging   LoggingConfig   `toml:"logging" mapstructure:"logging"`
}

// TraversalConfig holds BFS hop caps and result limits.
type TraversalConfig struct {
	MaxHops     int `toml:"maxHops" mapstructure:"maxHops"`
	EntryLimit  int `toml:"entryLimit" mapstructure:"entryLimit"`
	ResultLimit int `toml:"resultLimit" mapstructure:"resultLimit"`
}

// CouplingConfig holds temporal-coupling thresholds.
type CouplingConfig struct {
	TopN           int     `toml:"topN" mapstructure:"topN"`
	MinCochanges   int     `toml:"minCochanges" mapstructure:"minCochanges"`
	MinStrength    float64 `toml:"minStrength" mapstructure:"minStrength"`
	MinSetFiles    int     `toml:"minSetFiles" mapstructure:"minSetFiles"`
	MinOccurrences int     `toml:"minOccurrences" mapstructure:"minOccurrences"`
}

// AlertsConfig holds trend-alert thresholds.
type AlertsConfig struct {
	MinScore  int     `toml:"minScore" mapstructure:"minScore"`
	MaxTangle float64 `toml:"maxTangle" mapstructure:"maxTangle"`
	SpikePct  float64 `toml:"spikePct" mapstructure:"spikePct"`
}

// ReportConfig points at an optional custom preset file.
type ReportConfig struct {
	Presets string `toml:"presets" mapstructure:"presets"`
}

// LoggingConfig controls CLI log output.
type LoggingConfig struct {
	Format string `toml:"format" mapstructure:"format"`
	Level  string `toml:"level" mapstructure:"level"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Version:  1,
		Database: "roam.db",
		Traversal: TraversalConfig{
			MaxHops:     8,
			EntryLimit:  50,
			ResultLimit: 20,
		},
		Coupling: CouplingConfig{
			TopN:           5,
			MinCochanges:   3,
			MinStrength:    0.3,
			MinSetFiles:    3,
			MinOccurrences: 2,
		},
		Alerts: AlertsConfig{
			MinScore:  60,
			MaxTangle: 20,
			SpikePct:  25,
		},
		Logging: LoggingConfig{
			Format: "human",
			Level:  "info",
		},
	}
}

// Load reads .roam/config.toml under repoRoot. A missing file is not an
// error; the defaults apply.
func Load(repoRoot string) (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("toml")
	v.AddConfigPath(filepath.Join(repoRoot, ".roam"))

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return Default(), nil
		}
		return nil, err
	}

	cfg := Default()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes the configuration to .roam/config.toml, creating the
// directory if needed.
func (c *Config) Save(repoRoot string) error {
	dir := filepath.Join(repoRoot, ".roam")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	data, err := toml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(dir, "config.toml"), data, 0644)
}
