package tui

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/adrg/xdg"
	"gopkg.in/yaml.v3"
)

const (
	// DefaultConfigParentDir is the directory under the XDG config home
	DefaultConfigParentDir = "portfolio-tui"
	// DefaultConfig is the config file name
	DefaultConfig = "config.yml"
	// TokenEnv overrides the token from the config file
	TokenEnv = "PORTFOLIO_API_TOKEN"
)

// Config is the terminal client configuration
type Config struct {
	APIURL string `yaml:"apiUrl"`
	Token  string `yaml:"token"`
	// Locale is a BCP 47 tag used for number formatting
	Locale string `yaml:"locale"`
	// Timezone is an IANA name sent to the API; empty falls back to $TZ
	Timezone string `yaml:"timezone"`
	// RefreshSeconds re-fetches the dashboard periodically; 0 disables it
	RefreshSeconds int `yaml:"refreshSeconds"`
}

// DefaultClientConfig returns the config used when no file exists
func DefaultClientConfig() Config {
	return Config{
		APIURL:         "http://localhost:8080",
		Locale:         "en-US",
		RefreshSeconds: 60,
	}
}

func loadConfFrom(file string) (Config, error) {
	conf := DefaultClientConfig()

	b, err := os.ReadFile(file)
	if err != nil {
		return conf, fmt.Errorf("failed to load config %v: %w", file, err)
	}

	if err := yaml.Unmarshal(b, &conf); err != nil {
		return conf, fmt.Errorf("failed to unmarshal config %v: %w", file, err)
	}

	return conf, nil
}

func fileExists(name string) (bool, error) {
	_, err := os.Stat(name)
	if err == nil {
		return true, nil
	}

	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}

	return false, err
}

// LoadConfig loads file if given, otherwise the XDG config file. Without
// either, defaults are returned along with the XDG path where a config
// would be saved.
func LoadConfig(file string) (Config, string, error) {
	var conf Config

	if file != "" {
		conf, err := loadConfFrom(file)
		if err != nil {
			return conf, file, err
		}
		return withEnv(conf), file, nil
	}

	xdgConfig := filepath.Join(xdg.ConfigHome, DefaultConfigParentDir, DefaultConfig)

	exists, err := fileExists(xdgConfig)
	if err != nil {
		return conf, xdgConfig, fmt.Errorf("failed to check if file %v exists: %w", xdgConfig, err)
	}

	if exists {
		conf, err = loadConfFrom(xdgConfig)
		if err != nil {
			return conf, xdgConfig, err
		}
		return withEnv(conf), xdgConfig, nil
	}

	return withEnv(DefaultClientConfig()), xdgConfig, nil
}

// SaveConfig writes conf as YAML, creating parent directories
func SaveConfig(file string, conf Config) error {
	if err := os.MkdirAll(filepath.Dir(file), 0o755); err != nil {
		return fmt.Errorf("failed to make all directories %v: %w", filepath.Dir(file), err)
	}

	b, err := yaml.Marshal(conf)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	return os.WriteFile(file, b, 0o600)
}

func withEnv(conf Config) Config {
	if token := os.Getenv(TokenEnv); token != "" {
		conf.Token = token
	}
	return conf
}

// ResolveTimezone returns the IANA zone sent with dashboard requests: the configured
// one, else $TZ. Values the server could not resolve (paths, "Local") give "".
func (c Config) ResolveTimezone() string {
	name := c.Timezone
	if name == "" {
		name = strings.TrimPrefix(os.Getenv("TZ"), ":")
	}
	if name == "" || name == "Local" || strings.HasPrefix(name, "/") {
		return ""
	}
	if _, err := time.LoadLocation(name); err != nil {
		return ""
	}
	return name
}
