// Package config manages TOML configuration for symserve: the engine's
// construction parameters (spec.md §6 "Configuration options"), the IPC
// server's limits, and the CLI's defaults, with the same load/fallback
// chain as a config.toml-based service.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"

	"github.com/symserve/symserve/internal/utils"
)

// Config holds the entire configuration structure.
type Config struct {
	Engine EngineConfig `toml:"engine"`
	Server ServerConfig `toml:"server"`
	CLI    CliConfig    `toml:"cli"`
}

// EngineConfig holds the construction parameters spec.md §6 names.
type EngineConfig struct {
	MaxDictionaryEditDistance int     `toml:"max_dictionary_edit_distance"`
	PrefixLength              int     `toml:"prefix_length"`
	CountThreshold            int64   `toml:"count_threshold"`
	DistanceAlgorithm         string  `toml:"distance_algorithm"`
	MaxSegmentationWordLength int     `toml:"max_segmentation_word_length"`
	BigramCountMinDivisor     float64 `toml:"bigram_count_min_divisor"`
	IgnoreTokenRegex          string  `toml:"ignore_token_regex"`
}

// ServerConfig has IPC server related options.
type ServerConfig struct {
	MaxEditDistance  int    `toml:"max_edit_distance"`
	DefaultVerbosity string `toml:"default_verbosity"`
	IncludeUnknown   bool   `toml:"include_unknown"`
	TransferCasing   bool   `toml:"transfer_casing"`
}

// CliConfig holds interactive CLI defaults.
type CliConfig struct {
	DefaultMaxEditDistance int    `toml:"default_max_edit_distance"`
	DefaultVerbosity       string `toml:"default_verbosity"`
	DefaultIncludeUnknown  bool   `toml:"default_include_unknown"`
}

// Validate enforces spec.md §6/§7's InvalidArgument combinations so bad
// configuration fails construction instead of silently misbehaving.
func (c *Config) Validate() error {
	e := c.Engine
	if e.PrefixLength < 1 {
		return fmt.Errorf("config: prefix_length must be >= 1, got %d", e.PrefixLength)
	}
	if e.MaxDictionaryEditDistance < 0 {
		return fmt.Errorf("config: max_dictionary_edit_distance must be >= 0, got %d", e.MaxDictionaryEditDistance)
	}
	if e.PrefixLength < e.MaxDictionaryEditDistance {
		return fmt.Errorf("config: prefix_length (%d) must be >= max_dictionary_edit_distance (%d)", e.PrefixLength, e.MaxDictionaryEditDistance)
	}
	if e.CountThreshold < 0 {
		return fmt.Errorf("config: count_threshold must be >= 0, got %d", e.CountThreshold)
	}
	switch e.DistanceAlgorithm {
	case "DAMERAU_OSA", "LEVENSHTEIN", "DAMERAU_OSA_FAST", "LEVENSHTEIN_FAST", "USER_PROVIDED":
	default:
		return fmt.Errorf("config: unrecognized distance_algorithm %q", e.DistanceAlgorithm)
	}
	return nil
}

// GetConfigDir returns the config directory with fallback priority:
// 1. ~/.config/
// 2. ~/Library/Application Support/ (macOS)
// 3. Current executable dir
// 4. builtin defaults
func GetConfigDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		log.Errorf("Failed to get home directory: %v", err)
		execDir, execErr := utils.ExecutableDir()
		if execErr != nil {
			return "", execErr
		}
		return execDir, nil
	}
	primaryPath := filepath.Join(homeDir, ".config", "symserve")
	if result := utils.CheckDir(primaryPath); result.Writable {
		return primaryPath, nil
	}
	macOSPath := filepath.Join(homeDir, "Library", "Application Support", "symserve")
	if result := utils.CheckDir(macOSPath); result.Writable {
		return macOSPath, nil
	}
	execDir, err := utils.ExecutableDir()
	if err != nil {
		log.Errorf("Failed to get executable directory: %v", err)
		return "", err
	}
	return execDir, nil
}

// GetDefaultConfigPath returns the default path for config.toml.
func GetDefaultConfigPath() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "config.toml"), nil
}

// LoadConfigWithPriority loads config with priority:
// 1. Custom path from --config flag
// 2. Default path: config.toml in the directory GetConfigDir picks
// 3. Builtin defaults
func LoadConfigWithPriority(customConfigPath string) (*Config, string, error) {
	if customConfigPath != "" {
		if _, statErr := os.Stat(customConfigPath); statErr == nil {
			cfg, err := LoadConfig(customConfigPath)
			if err != nil {
				log.Warnf("Failed to load custom config from %s: %v. Trying default path...", customConfigPath, err)
			} else {
				log.Debugf("Loaded config from custom path: %s", customConfigPath)
				return cfg, customConfigPath, nil
			}
		} else {
			log.Warnf("Custom config file not found at %s: %v. Trying default path...", customConfigPath, statErr)
		}
	}

	defaultPath, err := GetDefaultConfigPath()
	if err != nil {
		log.Warnf("Failed to determine default config path: %v. Using built-in defaults...", err)
		return DefaultConfig(), "", nil
	}

	cfg, err := InitConfig(defaultPath)
	if err != nil {
		log.Warnf("Failed to load/create config at default path %s: %v. Using builtin defaults...", defaultPath, err)
		return DefaultConfig(), "", nil
	}
	log.Debugf("Loaded config from default path: %s", defaultPath)
	return cfg, defaultPath, nil
}

// DefaultConfig returns a Config with spec.md §6's documented defaults.
func DefaultConfig() *Config {
	return &Config{
		Engine: EngineConfig{
			MaxDictionaryEditDistance: 2,
			PrefixLength:              7,
			CountThreshold:            1,
			DistanceAlgorithm:         "DAMERAU_OSA",
			MaxSegmentationWordLength: 7,
			BigramCountMinDivisor:     10,
		},
		Server: ServerConfig{
			MaxEditDistance:  2,
			DefaultVerbosity: "CLOSEST",
			IncludeUnknown:   false,
			TransferCasing:   true,
		},
		CLI: CliConfig{
			DefaultMaxEditDistance: 2,
			DefaultVerbosity:       "CLOSEST",
			DefaultIncludeUnknown:  false,
		},
	}
}

// InitConfig loads config from file or creates default if missing.
func InitConfig(configPath string) (*Config, error) {
	configDir := filepath.Dir(configPath)

	if err := utils.EnsureDir(configDir); err != nil {
		log.Warnf("Failed to create config directory %s: %v. Using built-in defaults...", configDir, err)
		return DefaultConfig(), nil
	}

	if !utils.FileExists(configPath) {
		cfg := DefaultConfig()
		if err := SaveConfig(cfg, configPath); err != nil {
			log.Warnf("Failed to create default config file at %s: %v. Using built-in defaults...", configPath, err)
			return DefaultConfig(), nil
		}
		log.Debugf("Created default config file at: %s", configPath)
		return cfg, nil
	}

	cfg, err := LoadConfig(configPath)
	if err != nil {
		log.Warnf("Failed to load config from %s: %v. Using built-in defaults...", configPath, err)
		return DefaultConfig(), nil
	}
	return cfg, nil
}

// LoadConfig loads from a TOML file, falling back to partial recovery.
func LoadConfig(configPath string) (*Config, error) {
	cfg := DefaultConfig()
	if err := utils.LoadTOML(configPath, cfg); err != nil {
		return tryPartialParse(configPath)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// tryPartialParse attempts to salvage whichever sections of a TOML file
// parse, falling back to defaults for the rest.
func tryPartialParse(configPath string) (*Config, error) {
	cfg := DefaultConfig()

	tempConfig, err := utils.ParseTOMLLoose(configPath)
	if err != nil {
		log.Warnf("Could not parse any valid configuration from %s: %v. Using all defaults.", configPath, err)
		return cfg, nil
	}

	if section, ok := utils.Section(tempConfig, "engine"); ok {
		extractEngineConfig(section, &cfg.Engine)
	}
	if section, ok := utils.Section(tempConfig, "server"); ok {
		extractServerConfig(section, &cfg.Server)
	}
	if section, ok := utils.Section(tempConfig, "cli"); ok {
		extractCliConfig(section, &cfg.CLI)
	}
	return cfg, nil
}

func extractEngineConfig(data map[string]any, e *EngineConfig) {
	if val, ok := utils.Extract[int64](data, "max_dictionary_edit_distance"); ok {
		e.MaxDictionaryEditDistance = int(val)
	}
	if val, ok := utils.Extract[int64](data, "prefix_length"); ok {
		e.PrefixLength = int(val)
	}
	if val, ok := utils.Extract[int64](data, "count_threshold"); ok {
		e.CountThreshold = val
	}
	if val, ok := utils.Extract[string](data, "distance_algorithm"); ok {
		e.DistanceAlgorithm = val
	}
	if val, ok := utils.Extract[int64](data, "max_segmentation_word_length"); ok {
		e.MaxSegmentationWordLength = int(val)
	}
	if val, ok := utils.ExtractNumber(data, "bigram_count_min_divisor"); ok {
		e.BigramCountMinDivisor = val
	}
	if val, ok := utils.Extract[string](data, "ignore_token_regex"); ok {
		e.IgnoreTokenRegex = val
	}
}

func extractServerConfig(data map[string]any, s *ServerConfig) {
	if val, ok := utils.Extract[int64](data, "max_edit_distance"); ok {
		s.MaxEditDistance = int(val)
	}
	if val, ok := utils.Extract[string](data, "default_verbosity"); ok {
		s.DefaultVerbosity = val
	}
	if val, ok := utils.Extract[bool](data, "include_unknown"); ok {
		s.IncludeUnknown = val
	}
	if val, ok := utils.Extract[bool](data, "transfer_casing"); ok {
		s.TransferCasing = val
	}
}

func extractCliConfig(data map[string]any, c *CliConfig) {
	if val, ok := utils.Extract[int64](data, "default_max_edit_distance"); ok {
		c.DefaultMaxEditDistance = int(val)
	}
	if val, ok := utils.Extract[string](data, "default_verbosity"); ok {
		c.DefaultVerbosity = val
	}
	if val, ok := utils.Extract[bool](data, "default_include_unknown"); ok {
		c.DefaultIncludeUnknown = val
	}
}

// RebuildConfigFile force-creates a new config.toml at the default path.
func RebuildConfigFile() error {
	defaultPath, err := GetDefaultConfigPath()
	if err != nil {
		return err
	}
	configDir := filepath.Dir(defaultPath)
	if err := utils.EnsureDir(configDir); err != nil {
		return err
	}
	return utils.SaveTOML(DefaultConfig(), defaultPath)
}

// GetActiveConfigPath returns the absolute path of the loaded config file.
func GetActiveConfigPath(configPath string) string {
	if configPath == "" {
		if defaultPath, err := GetDefaultConfigPath(); err == nil {
			return defaultPath
		}
		return "unknown"
	}
	return utils.AbsolutePath(configPath)
}

// SaveConfig saves into a TOML file.
func SaveConfig(cfg *Config, configPath string) error {
	return utils.SaveTOML(cfg, configPath)
}
