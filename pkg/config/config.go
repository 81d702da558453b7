/*
Package config manages TOML config for VoterSearch services.

The file is created with defaults on first run. A file with syntax errors is
recovered section by section: every value that still parses is kept, the
rest falls back to defaults.
*/
package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/bastiangx/votersearch/internal/utils"
	"github.com/charmbracelet/log"
)

// Config holds the entire config structure
type Config struct {
	Data     DataConfig     `toml:"data"`
	Database DatabaseConfig `toml:"database"`
	Search   SearchConfig   `toml:"search"`
	Server   ServerConfig   `toml:"server"`
	CLI      CliConfig      `toml:"cli"`
}

// DataConfig says where the voter roll is loaded from.
type DataConfig struct {
	Source             string `toml:"source"`
	Format             string `toml:"format"`
	LoadTimeoutSeconds int    `toml:"load_timeout_seconds"`
}

// DatabaseConfig applies when the data source is a postgres DSN.
type DatabaseConfig struct {
	Table   string `toml:"table"`
	OrderBy string `toml:"order_by"`
}

// SearchConfig holds query engine options.
type SearchConfig struct {
	DefaultMode      string `toml:"default_mode"`
	NormalizeUnicode bool   `toml:"normalize_unicode"`
}

// ServerConfig has server related options.
type ServerConfig struct {
	HTTPAddr   string `toml:"http_addr"`
	EnableCORS bool   `toml:"enable_cors"`
}

// CliConfig holds cli interface options.
type CliConfig struct {
	SuggestLimit int  `toml:"suggest_limit"`
	Color        bool `toml:"color"`
}

// LoadTimeout returns the dataset load timeout as a duration.
func (d DataConfig) LoadTimeout() time.Duration {
	if d.LoadTimeoutSeconds <= 0 {
		return 0
	}
	return time.Duration(d.LoadTimeoutSeconds) * time.Second
}

// GetConfigDir returns the config directory with fallback priority:
// 1. utils.PlatformConfigDir (XDG_CONFIG_HOME, APPDATA or ~/.config)
// 2. ~/Library/Application Support/ (macOS)
// 3. Current executable dir
func GetConfigDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		log.Errorf("Failed to get home directory: %v", err)
		return utils.GetExecutableDir()
	}
	primaryPath := utils.PlatformConfigDir(homeDir)
	if result := utils.CheckDirStatus(primaryPath); result.Writable {
		return primaryPath, nil
	}
	// Not conventional, fallback from ~/.config if not writable
	macOSPath := filepath.Join(homeDir, "Library", "Application Support", utils.AppName)
	if result := utils.CheckDirStatus(macOSPath); result.Writable {
		return macOSPath, nil
	}
	execDir, err := utils.GetExecutableDir()
	if err != nil {
		log.Errorf("Failed to get executable directory: %v", err)
		return "", err
	}
	return execDir, nil
}

// GetDefaultConfigPath returns the default path for config.toml
func GetDefaultConfigPath() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "config.toml"), nil
}

// LoadConfigWithPriority loads config with priority:
// 1. Custom path from --config flag
// 2. Default path: [UserConfigDir]/votersearch/config.toml
// 3. Builtin defaults
func LoadConfigWithPriority(customConfigPath string) (*Config, string, error) {
	if customConfigPath != "" {
		if _, statErr := os.Stat(customConfigPath); statErr == nil {
			config, err := LoadConfig(customConfigPath)
			if err != nil {
				log.Warnf("Failed to load custom config from %s: %v. Trying default path...", customConfigPath, err)
			} else {
				log.Debugf("Loaded config from custom path: %s", customConfigPath)
				return config, customConfigPath, nil
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

	config, err := InitConfig(defaultPath)
	if err != nil {
		log.Warnf("Failed to load/create config at default path %s: %v. Using builtin defaults...", defaultPath, err)
		return DefaultConfig(), "", nil
	}
	log.Debugf("Loaded config from default path: %s", defaultPath)
	return config, defaultPath, nil
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		Data: DataConfig{
			Source:             "votersJSON.json",
			Format:             "",
			LoadTimeoutSeconds: 30,
		},
		Database: DatabaseConfig{
			Table:   "voters",
			OrderBy: "id",
		},
		Search: SearchConfig{
			DefaultMode:      "all",
			NormalizeUnicode: false,
		},
		Server: ServerConfig{
			HTTPAddr:   "127.0.0.1:8080",
			EnableCORS: false,
		},
		CLI: CliConfig{
			SuggestLimit: 10,
			Color:        true,
		},
	}
}

// InitConfig loads config from file or creates default if missing
func InitConfig(configPath string) (*Config, error) {
	configDir := filepath.Dir(configPath)

	if err := utils.EnsureDir(configDir); err != nil {
		log.Warnf("Failed to create config directory %s: %v. Using built-in defaults...", configDir, err)
		return DefaultConfig(), nil
	}

	if !utils.FileExists(configPath) {
		config := DefaultConfig()
		if err := SaveConfig(config, configPath); err != nil {
			log.Warnf("Failed to create default config file at %s: %v. Using built-in defaults...", configPath, err)
			return DefaultConfig(), nil
		}
		log.Debugf("Created default config file at: %s", configPath)
		return config, nil
	}

	config, err := LoadConfig(configPath)
	if err != nil {
		log.Warnf("Failed to load config from %s: %v. Using built-in defaults...", configPath, err)
		return DefaultConfig(), nil
	}
	return config, nil
}

// LoadConfig loads from a TOML file
func LoadConfig(configPath string) (*Config, error) {
	config := DefaultConfig()

	if err := utils.LoadTOMLFile(configPath, config); err != nil {
		return tryPartialParse(configPath)
	}
	return config, nil
}

// tryPartialParse attempts to parse a TOML file
func tryPartialParse(configPath string) (*Config, error) {
	config := DefaultConfig()

	tempConfig, err := utils.ParseTOMLWithRecovery(configPath)
	if err != nil {
		log.Warnf("Could not parse any valid configuration from %s: %v. Using all defaults.", configPath, err)
		return config, nil
	}

	if section, ok := utils.ExtractSection(tempConfig, "data"); ok {
		extractDataConfig(section, &config.Data)
	}
	if section, ok := utils.ExtractSection(tempConfig, "database"); ok {
		extractDatabaseConfig(section, &config.Database)
	}
	if section, ok := utils.ExtractSection(tempConfig, "search"); ok {
		extractSearchConfig(section, &config.Search)
	}
	if section, ok := utils.ExtractSection(tempConfig, "server"); ok {
		extractServerConfig(section, &config.Server)
	}
	if section, ok := utils.ExtractSection(tempConfig, "cli"); ok {
		extractCliConfig(section, &config.CLI)
	}
	return config, nil
}

func extractDataConfig(data map[string]any, d *DataConfig) {
	if val, ok := utils.ExtractString(data, "source"); ok {
		d.Source = val
	}
	if val, ok := utils.ExtractString(data, "format"); ok {
		d.Format = val
	}
	if val, ok := utils.ExtractInt64(data, "load_timeout_seconds"); ok {
		d.LoadTimeoutSeconds = val
	}
}

func extractDatabaseConfig(data map[string]any, db *DatabaseConfig) {
	if val, ok := utils.ExtractString(data, "table"); ok {
		db.Table = val
	}
	if val, ok := utils.ExtractString(data, "order_by"); ok {
		db.OrderBy = val
	}
}

func extractSearchConfig(data map[string]any, s *SearchConfig) {
	if val, ok := utils.ExtractString(data, "default_mode"); ok {
		s.DefaultMode = val
	}
	if val, ok := utils.ExtractBool(data, "normalize_unicode"); ok {
		s.NormalizeUnicode = val
	}
}

// extractServerConfig extracts server configuration from a map
func extractServerConfig(data map[string]any, server *ServerConfig) {
	if val, ok := utils.ExtractString(data, "http_addr"); ok {
		server.HTTPAddr = val
	}
	if val, ok := utils.ExtractBool(data, "enable_cors"); ok {
		server.EnableCORS = val
	}
}

// extractCliConfig extracts CLI config from a map
func extractCliConfig(data map[string]any, cli *CliConfig) {
	if val, ok := utils.ExtractInt64(data, "suggest_limit"); ok {
		cli.SuggestLimit = val
	}
	if val, ok := utils.ExtractBool(data, "color"); ok {
		cli.Color = val
	}
}

// RebuildConfigFile force creates a new config.toml at default
func RebuildConfigFile() (string, error) {
	defaultPath, err := GetDefaultConfigPath()
	if err != nil {
		return "", err
	}
	if err := utils.EnsureDir(filepath.Dir(defaultPath)); err != nil {
		return "", err
	}
	return defaultPath, utils.SaveTOMLFile(DefaultConfig(), defaultPath)
}

// GetActiveConfigPath returns the absolute path of loaded config file
func GetActiveConfigPath(configPath string) string {
	if configPath == "" {
		if defaultPath, err := GetDefaultConfigPath(); err == nil {
			return defaultPath
		}
		return "unknown"
	}
	return utils.GetAbsolutePath(configPath)
}

// SaveConfig saves into a TOML file
func SaveConfig(config *Config, configPath string) error {
	return utils.SaveTOMLFile(config, configPath)
}
