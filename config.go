package main

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
	"time"

	"printerid/probe"
	"printerid/snmp/oids"

	"github.com/BurntSushi/toml"
)

// Config represents the service configuration. It is loaded once at startup
// and read-only afterwards.
type Config struct {
	SNMP    SNMPSettings    `toml:"snmp"`
	Probe   ProbeSettings   `toml:"probe"`
	Web     WebSettings     `toml:"web"`
	Logging LoggingSettings `toml:"logging"`
}

// SNMPSettings holds SNMP client settings
type SNMPSettings struct {
	Community string `toml:"community"`
	Version   string `toml:"version"`
	Port      int    `toml:"port"`
	TimeoutMs int    `toml:"timeout_ms"`
	Retries   int    `toml:"retries"`
}

// ProbeSettings holds reachability check settings and the identifier list
type ProbeSettings struct {
	ReachTimeoutMs int      `toml:"reach_timeout_ms"`
	OIDs           []string `toml:"oids"`
}

// WebSettings holds HTTP server settings
type WebSettings struct {
	HTTPPort int `toml:"http_port"`
}

// LoggingSettings holds logging settings
type LoggingSettings struct {
	Level string `toml:"level"`
	Dir   string `toml:"dir"`
}

// DefaultConfig returns the service configuration with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		SNMP: SNMPSettings{
			Community: "public",
			Version:   "2c",
			Port:      161,
			TimeoutMs: 2000,
			Retries:   0,
		},
		Probe: ProbeSettings{
			ReachTimeoutMs: 2000,
			OIDs:           oids.ModelPriorityList(),
		},
		Web: WebSettings{
			HTTPPort: 8080,
		},
		Logging: LoggingSettings{
			Level: "INFO",
			Dir:   "logs",
		},
	}
}

const configFileName = "printerid.toml"

// configSearchPaths returns an ordered list of paths to search for the
// config file, most specific first.
func configSearchPaths() []string {
	var paths []string

	switch runtime.GOOS {
	case "windows":
		paths = append(paths, filepath.Join(os.Getenv("ProgramData"), "printerid", configFileName))
	case "darwin":
		paths = append(paths, filepath.Join("/Library/Application Support", "printerid", configFileName))
	default: // Linux and other Unix-like
		paths = append(paths, filepath.Join("/etc/printerid", configFileName))
	}

	if homeDir, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(homeDir, ".config", "printerid", configFileName))
	}

	if exePath, err := os.Executable(); err == nil {
		paths = append(paths, filepath.Join(filepath.Dir(exePath), configFileName))
	}

	paths = append(paths, filepath.Join(".", configFileName))
	return paths
}

// LoadConfig loads the configuration from path, or from the first search
// path that exists when path is empty. No file found in the search paths is
// not an error: the defaults apply. Environment variables override file
// values.
func LoadConfig(path string) (*Config, string, error) {
	cfg := DefaultConfig()

	if path == "" {
		for _, candidate := range configSearchPaths() {
			if _, err := os.Stat(candidate); err == nil {
				path = candidate
				break
			}
		}
	}

	if path != "" {
		if _, err := toml.DecodeFile(path, cfg); err != nil {
			return nil, "", fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	applyEnvOverrides(cfg)
	return cfg, path, nil
}

// applyEnvOverrides applies environment variable overrides on top of the
// file values.
func applyEnvOverrides(cfg *Config) {
	if val := os.Getenv("SNMP_COMMUNITY"); val != "" {
		cfg.SNMP.Community = val
	}
	if val := os.Getenv("SNMP_VERSION"); val != "" {
		cfg.SNMP.Version = val
	}
	if val := os.Getenv("SNMP_TIMEOUT_MS"); val != "" {
		if n, err := strconv.Atoi(val); err == nil && n > 0 {
			cfg.SNMP.TimeoutMs = n
		}
	}
	if val := os.Getenv("HTTP_PORT"); val != "" {
		if n, err := strconv.Atoi(val); err == nil && n > 0 {
			cfg.Web.HTTPPort = n
		}
	}
	if val := os.Getenv("LOG_LEVEL"); val != "" {
		cfg.Logging.Level = val
	}
}

// ProbeConfig converts the file-level settings into the probe package's
// immutable configuration.
func (c *Config) ProbeConfig() (probe.Config, error) {
	version, err := parseSNMPVersion(c.SNMP.Version)
	if err != nil {
		return probe.Config{}, err
	}

	pcfg := probe.DefaultConfig()
	pcfg.Community = c.SNMP.Community
	pcfg.Version = version
	pcfg.SNMPRetries = c.SNMP.Retries
	if c.SNMP.Port > 0 && c.SNMP.Port <= 65535 {
		pcfg.Port = uint16(c.SNMP.Port)
	}
	if c.SNMP.TimeoutMs > 0 {
		pcfg.SNMPTimeout = time.Duration(c.SNMP.TimeoutMs) * time.Millisecond
	}
	if c.Probe.ReachTimeoutMs > 0 {
		pcfg.ReachTimeout = time.Duration(c.Probe.ReachTimeoutMs) * time.Millisecond
	}
	if len(c.Probe.OIDs) > 0 {
		pcfg.OIDs = c.Probe.OIDs
	}
	return pcfg, nil
}

// parseSNMPVersion maps the config string to a probe version. SNMPv3 is
// intentionally not offered; the probe only does v1/v2c community reads.
func parseSNMPVersion(s string) (probe.Version, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "v1":
		return probe.Version1, nil
	case "", "2", "2c", "v2c":
		return probe.Version2c, nil
	default:
		return probe.Version2c, fmt.Errorf("unsupported SNMP version: %s (use 1 or 2c)", s)
	}
}

// WriteDefaultConfig writes the default TOML configuration to path.
func WriteDefaultConfig(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	defer file.Close()

	encoder := toml.NewEncoder(file)
	if err := encoder.Encode(DefaultConfig()); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}
