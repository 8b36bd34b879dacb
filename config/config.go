package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/spiffcs/checkout-ago/internal/constants"
)

// Config represents the application configuration
type Config struct {
	// Backend selects the git implementation: gogit or gitcli.
	Backend string `yaml:"backend,omitempty" json:"backend,omitempty"`
	// DateField selects which commit date is compared: committer or author.
	DateField string `yaml:"date_field,omitempty" json:"date_field,omitempty"`
	// Output is the plan output format: text or json.
	Output string `yaml:"output,omitempty" json:"output,omitempty"`
	// CalendarFirst subtracts months and years before fixed units.
	CalendarFirst *bool `yaml:"calendar_first,omitempty" json:"calendar_first,omitempty"`
}

// DefaultConfigDir returns the default config directory
func DefaultConfigDir() string {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "." + constants.AppName
	}
	return filepath.Join(configDir, constants.AppName)
}

// ConfigPath returns the path to the global config file
func ConfigPath() string {
	return filepath.Join(DefaultConfigDir(), "config.yaml")
}

// LocalConfigPath returns the path to the local config file in the current directory
func LocalConfigPath() string {
	return "." + constants.AppName + ".yaml"
}

// Load loads the global config, then merges any local config on top
// (local values take precedence), then fills unset values with defaults.
func Load() (*Config, error) {
	return LoadForDir(".")
}

// LoadForDir is Load with the local config read from dir instead of the
// current directory.
func LoadForDir(dir string) (*Config, error) {
	return loadFrom(ConfigPath(), filepath.Join(dir, LocalConfigPath()))
}

func loadFrom(globalPath, localPath string) (*Config, error) {
	global, err := LoadFile(globalPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load global config: %w", err)
	}

	local, err := LoadFile(localPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load local config: %w", err)
	}

	cfg := mergeConfig(global, local)
	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadFile reads a single config file. A missing file yields an empty config.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return &Config{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return &cfg, nil
}

// mergeConfig merges local config on top of global config.
// Local values take precedence; unset local values preserve global values.
func mergeConfig(global, local *Config) *Config {
	result := *global

	if local.Backend != "" {
		result.Backend = local.Backend
	}
	if local.DateField != "" {
		result.DateField = local.DateField
	}
	if local.Output != "" {
		result.Output = local.Output
	}
	if local.CalendarFirst != nil {
		result.CalendarFirst = local.CalendarFirst
	}

	return &result
}

func (c *Config) applyDefaults() {
	if c.Backend == "" {
		c.Backend = constants.DefaultBackend
	}
	if c.DateField == "" {
		c.DateField = constants.DefaultDateField
	}
	if c.Output == "" {
		c.Output = constants.DefaultOutput
	}
}

// Validate checks that every set value is one the tool understands.
func (c *Config) Validate() error {
	if c.Backend != "" && !oneOf(c.Backend, constants.BackendGoGit, constants.BackendGitCLI) {
		return fmt.Errorf("invalid backend: %s (must be %s or %s)", c.Backend, constants.BackendGoGit, constants.BackendGitCLI)
	}
	if c.DateField != "" && !oneOf(c.DateField, constants.DateCommitter, constants.DateAuthor) {
		return fmt.Errorf("invalid date_field: %s (must be %s or %s)", c.DateField, constants.DateCommitter, constants.DateAuthor)
	}
	if c.Output != "" && !oneOf(c.Output, constants.OutputText, constants.OutputJSON) {
		return fmt.Errorf("invalid output: %s (must be %s or %s)", c.Output, constants.OutputText, constants.OutputJSON)
	}
	return nil
}

// IsCalendarFirst reports whether calendar units are subtracted first.
func (c *Config) IsCalendarFirst() bool {
	return c.CalendarFirst != nil && *c.CalendarFirst
}

// Set assigns a config value by its YAML key.
func (c *Config) Set(key, value string) error {
	switch key {
	case "backend":
		c.Backend = value
	case "date_field":
		c.DateField = value
	case "output":
		c.Output = value
	case "calendar_first":
		switch value {
		case "true", "yes", "1":
			v := true
			c.CalendarFirst = &v
		case "false", "no", "0":
			v := false
			c.CalendarFirst = &v
		default:
			return fmt.Errorf("invalid calendar_first: %s (must be true or false)", value)
		}
	default:
		return fmt.Errorf("unknown config key: %s", key)
	}
	return c.Validate()
}

// DefaultConfig returns a fully populated config with all default values.
func DefaultConfig() *Config {
	calendarFirst := false
	return &Config{
		Backend:       constants.DefaultBackend,
		DateField:     constants.DefaultDateField,
		Output:        constants.DefaultOutput,
		CalendarFirst: &calendarFirst,
	}
}

// ToYAML returns the config as a YAML string
func (c *Config) ToYAML() (string, error) {
	data, err := yaml.Marshal(c)
	if err != nil {
		return "", fmt.Errorf("failed to marshal config: %w", err)
	}
	return string(data), nil
}

// ConfigPathInfo contains information about config file paths
type ConfigPathInfo struct {
	GlobalPath   string
	GlobalExists bool
	LocalPath    string
	LocalExists  bool
}

// GetConfigPaths returns path info for both global and local configs
func GetConfigPaths() ConfigPathInfo {
	globalPath := ConfigPath()
	localPath := LocalConfigPath()

	absLocalPath, err := filepath.Abs(localPath)
	if err != nil {
		absLocalPath = localPath
	}

	_, globalErr := os.Stat(globalPath)
	_, localErr := os.Stat(localPath)

	return ConfigPathInfo{
		GlobalPath:   globalPath,
		GlobalExists: globalErr == nil,
		LocalPath:    absLocalPath,
		LocalExists:  localErr == nil,
	}
}

// MinimalConfig returns a minimal config template with comments
func MinimalConfig() string {
	return `# checkout-ago configuration file
# See: checkout-ago config defaults  (for all available options)

# Git implementation: gogit (built in) or gitcli (runs the git executable)
backend: gogit

# Commit date compared against the resolved time: committer or author
# date_field: committer

# Plan output format: text or json
# output: text

# Subtract months/years before seconds..weeks (default: false)
# calendar_first: false
`
}

// SaveTo writes content to a specific path, creating directories as needed
func SaveTo(path string, content string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		return fmt.Errorf("failed to write file %s: %w", path, err)
	}

	return nil
}

// SaveFile marshals the config into path.
func (c *Config) SaveFile(path string) error {
	content, err := c.ToYAML()
	if err != nil {
		return err
	}
	return SaveTo(path, content)
}

func oneOf(s string, options ...string) bool {
	for _, o := range options {
		if s == o {
			return true
		}
	}
	return false
}
