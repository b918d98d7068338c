// Package config handles loading taskplanner.toml configuration files
// and environment overrides.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/caarlos0/env/v11"
)

// Defaults applied after file and environment loading.
const (
	DefaultAddr     = ":8080"
	DefaultBaseURL  = "http://localhost:8080"
	DefaultDataDir  = "./data"
	DefaultSMTPHost = "localhost"
	DefaultSMTPPort = 25
	DefaultFrom     = "no-reply@example.com"
)

// Config represents the taskplanner.toml configuration file.
type Config struct {
	HTTP    HTTP    `toml:"http" envPrefix:"HTTP_"`
	Storage Storage `toml:"storage" envPrefix:"STORAGE_"`
	SMTP    SMTP    `toml:"smtp" envPrefix:"SMTP_"`
}

// HTTP contains web-server configuration.
type HTTP struct {
	// Addr is the listen address for the serve command.
	Addr string `toml:"addr" env:"ADDR"`

	// BaseURL is the externally visible root used to build the
	// verification and unsubscribe links embedded in emails.
	BaseURL string `toml:"base-url" env:"BASE_URL"`
}

// Storage contains flat-file storage configuration.
type Storage struct {
	// Dir is the directory holding the JSON collection files.
	Dir string `toml:"dir" env:"DIR"`
}

// SMTP contains mail-transport configuration.
type SMTP struct {
	Host     string `toml:"host" env:"HOST"`
	Port     int    `toml:"port" env:"PORT"`
	Username string `toml:"username" env:"USERNAME"`
	Password string `toml:"password" env:"PASSWORD"`

	// From is the sender address for all outgoing mail.
	From string `toml:"from" env:"FROM"`
}

// Load resolves the configuration. With an explicit path only that file
// is read; otherwise the global config (~/.config/taskplanner/config.toml)
// and the working directory's taskplanner.toml are merged, project
// values overriding global per key. Environment variables prefixed
// TASKPLANNER_ override file values, and defaults fill whatever is
// still unset.
func Load(path string) (*Config, error) {
	var merged *Config

	if path != "" {
		cfg, _, err := loadConfigFile(path)
		if err != nil {
			return nil, err
		}
		if cfg == nil {
			return nil, fmt.Errorf("config file %s does not exist", path)
		}
		merged = cfg
	} else {
		globalPath, err := globalConfigPath()
		if err != nil {
			return nil, err
		}
		globalCfg, globalMeta, err := loadConfigFile(globalPath)
		if err != nil {
			return nil, err
		}
		projectCfg, projectMeta, err := loadConfigFile("taskplanner.toml")
		if err != nil {
			return nil, err
		}
		merged = mergeConfigs(globalCfg, projectCfg, globalMeta, projectMeta)
	}

	if err := env.ParseWithOptions(merged, env.Options{Prefix: "TASKPLANNER_"}); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}

	applyDefaults(merged)
	return merged, nil
}

func globalConfigPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home directory: %w", err)
	}
	return filepath.Join(homeDir, ".config", "taskplanner", "config.toml"), nil
}

// loadConfigFile returns a nil config when the file does not exist.
func loadConfigFile(path string) (*Config, toml.MetaData, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, toml.MetaData{}, nil
	}
	if err != nil {
		return nil, toml.MetaData{}, fmt.Errorf("read config file %s: %w", path, err)
	}

	var cfg Config
	meta, err := toml.Decode(string(data), &cfg)
	if err != nil {
		return nil, toml.MetaData{}, fmt.Errorf("parse config file %s: %w", path, err)
	}

	return &cfg, meta, nil
}

func mergeConfigs(globalCfg, projectCfg *Config, globalMeta, projectMeta toml.MetaData) *Config {
	if globalCfg == nil {
		globalCfg = &Config{}
	}
	if projectCfg == nil {
		projectCfg = &Config{}
	}

	merged := Config{}
	merged.HTTP.Addr = mergeString(projectMeta.IsDefined("http", "addr"), projectCfg.HTTP.Addr, globalCfg.HTTP.Addr)
	merged.HTTP.BaseURL = mergeString(projectMeta.IsDefined("http", "base-url"), projectCfg.HTTP.BaseURL, globalCfg.HTTP.BaseURL)
	merged.Storage.Dir = mergeString(projectMeta.IsDefined("storage", "dir"), projectCfg.Storage.Dir, globalCfg.Storage.Dir)
	merged.SMTP.Host = mergeString(projectMeta.IsDefined("smtp", "host"), projectCfg.SMTP.Host, globalCfg.SMTP.Host)
	merged.SMTP.Username = mergeString(projectMeta.IsDefined("smtp", "username"), projectCfg.SMTP.Username, globalCfg.SMTP.Username)
	merged.SMTP.Password = mergeString(projectMeta.IsDefined("smtp", "password"), projectCfg.SMTP.Password, globalCfg.SMTP.Password)
	merged.SMTP.From = mergeString(projectMeta.IsDefined("smtp", "from"), projectCfg.SMTP.From, globalCfg.SMTP.From)
	if projectMeta.IsDefined("smtp", "port") {
		merged.SMTP.Port = projectCfg.SMTP.Port
	} else {
		merged.SMTP.Port = globalCfg.SMTP.Port
	}

	return &merged
}

func mergeString(projectDefined bool, projectValue, globalValue string) string {
	if projectDefined {
		return projectValue
	}
	return globalValue
}

func applyDefaults(cfg *Config) {
	if cfg.HTTP.Addr == "" {
		cfg.HTTP.Addr = DefaultAddr
	}
	if cfg.HTTP.BaseURL == "" {
		cfg.HTTP.BaseURL = DefaultBaseURL
	}
	if cfg.Storage.Dir == "" {
		cfg.Storage.Dir = DefaultDataDir
	}
	if cfg.SMTP.Host == "" {
		cfg.SMTP.Host = DefaultSMTPHost
	}
	if cfg.SMTP.Port == 0 {
		cfg.SMTP.Port = DefaultSMTPPort
	}
	if cfg.SMTP.From == "" {
		cfg.SMTP.From = DefaultFrom
	}
}
