package shared

import (
	_ "embed"
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"
)

//go:embed config.example.toml
var exampleConf []byte

// Config represents the application configuration loaded from a TOML file.
type Config struct {
	Log     LogConfig     `toml:"log"`
	UI      UIConfig      `toml:"ui"`
	Session SessionConfig `toml:"session"`
	Export  ExportConfig  `toml:"export"`
}

// LogConfig controls logger verbosity.
type LogConfig struct {
	Level string `toml:"level"`
}

// UIConfig overrides the terminal color palette.
type UIConfig struct {
	Accent  string `toml:"accent"`
	Success string `toml:"success"`
	Error   string `toml:"error"`
	Warning string `toml:"warning"`
	Muted   string `toml:"muted"`
}

// SessionConfig controls session bootstrap. SeedPath, when set, names a TOML
// fixture loaded into the fresh repositories at startup. Nothing is ever
// written back to it.
type SessionConfig struct {
	SeedPath string `toml:"seed_path"`
}

// ExportConfig contains snapshot export settings.
type ExportConfig struct {
	Format string `toml:"format"`
	Dir    string `toml:"dir"`
}

// LogLevel parses the configured level, defaulting to info on unknown values.
func (c *Config) LogLevel() log.Level {
	level, err := log.ParseLevel(c.Log.Level)
	if err != nil {
		return log.InfoLevel
	}
	return level
}

// LoadConfig reads and parses a TOML configuration file from the specified path.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := toml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	return &config, nil
}

// DefaultConfig returns a Config with sensible defaults loaded from the embedded example config.
func DefaultConfig() *Config {
	var config Config
	if err := toml.Unmarshal(exampleConf, &config); err != nil {
		panic(fmt.Sprintf("failed to parse embedded default config: %v", err))
	}
	return &config
}

// CreateConfigFile creates a config.toml file at the specified path using the embedded example config.
func CreateConfigFile(path string) error {
	// Check if file already exists
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists at %s", path)
	}

	// Write the embedded example config to the file
	if err := os.WriteFile(path, exampleConf, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
