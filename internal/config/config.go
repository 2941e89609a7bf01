package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config holds runtime configuration for the viewer.
type Config struct {
	APIDomain          string
	LogFilePath        string
	ConfigPath         string
	Debug              bool
	HTTPCacheSize      int
	FetchTimeout       Duration
	MinRefreshInterval Duration
	Metrics            MetricsConfig
}

// File is the persisted part of the configuration.
type File struct {
	APIDomain   string `mapstructure:"api_domain"`
	LogFilePath string `mapstructure:"log_file_path"`
}

// ConfigError reports a missing or invalid configuration.
type ConfigError struct {
	Path string
	Msg  string
	Err  error
}

func (e *ConfigError) Error() string {
	msg := e.Msg
	if msg == "" {
		msg = "invalid configuration"
	}
	if e.Path != "" {
		msg = fmt.Sprintf("%s (%s)", msg, e.Path)
	}
	if e.Err != nil {
		return msg + ": " + e.Err.Error()
	}
	return msg
}

func (e *ConfigError) Unwrap() error { return e.Err }

// DefaultPath returns <user config dir>/liiga_teletext/config.toml.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", &ConfigError{Msg: "config directory unavailable", Err: err}
	}
	return filepath.Join(dir, appDirName, configFileName), nil
}

// DefaultLogPath returns the log file location next to the config file.
func DefaultLogPath(configPath string) string {
	return filepath.Join(filepath.Dir(configPath), "logs", logFileName)
}

// Load reads the TOML file at path (DefaultPath when empty) and applies environment overrides.
// A missing file is tolerated only when LIIGA_API_DOMAIN supplies the domain.
func Load(path string) (Config, error) {
	if path == "" {
		p, err := DefaultPath()
		if err != nil {
			return Config{}, err
		}
		path = p
	}

	file, err := ReadFile(path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, err
	}

	domain := envOrDefault(envAPIDomain, file.APIDomain)
	normalized, err := NormalizeDomain(domain)
	if err != nil {
		return Config{}, &ConfigError{Path: path, Msg: "api_domain is required", Err: err}
	}

	logPath := envOrDefault(envLogFile, file.LogFilePath)
	if logPath == "" {
		logPath = DefaultLogPath(path)
	}

	return Config{
		APIDomain:          normalized,
		LogFilePath:        logPath,
		ConfigPath:         path,
		Debug:              boolEnvOrDefault(envDebug, false),
		HTTPCacheSize:      intEnvOrDefault(envCacheSize, defaultHTTPCacheSize),
		FetchTimeout:       durationEnvOrDefault(envFetchTimeout, defaultFetchTimeout),
		MinRefreshInterval: durationEnvOrDefault(envMinRefreshInterval, defaultMinRefreshInterval),
		Metrics:            loadMetrics(),
	}, nil
}

// ReadFile decodes the TOML config file without applying overrides.
func ReadFile(path string) (File, error) {
	if _, err := os.Stat(path); err != nil {
		return File{}, err
	}
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("toml")
	if err := v.ReadInConfig(); err != nil {
		return File{}, &ConfigError{Path: path, Msg: "config file unreadable", Err: err}
	}
	var file File
	if err := v.Unmarshal(&file); err != nil {
		return File{}, &ConfigError{Path: path, Msg: "config file malformed", Err: err}
	}
	return file, nil
}

// Save writes the persisted configuration to path, creating parent directories.
func Save(path string, file File) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return &ConfigError{Path: path, Msg: "cannot create config directory", Err: err}
	}
	v := viper.New()
	v.SetConfigType("toml")
	v.Set(keyAPIDomain, file.APIDomain)
	v.Set(keyLogFilePath, file.LogFilePath)
	if err := v.WriteConfigAs(path); err != nil {
		return &ConfigError{Path: path, Msg: "cannot write config file", Err: err}
	}
	return nil
}

// Update applies fn to the file at path (empty when missing) and saves the result.
func Update(path string, fn func(*File)) (File, error) {
	file, err := ReadFile(path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return File{}, err
	}
	fn(&file)
	if file.APIDomain != "" {
		normalized, err := NormalizeDomain(file.APIDomain)
		if err != nil {
			return File{}, &ConfigError{Path: path, Msg: "invalid api_domain", Err: err}
		}
		file.APIDomain = normalized
	}
	return file, Save(path, file)
}

// NormalizeDomain adds an https scheme when missing and trims trailing slashes.
func NormalizeDomain(raw string) (string, error) {
	domain := strings.TrimSpace(raw)
	if domain == "" {
		return "", errors.New("empty api domain")
	}
	scheme := "https://"
	for _, prefix := range []string{"https://", "http://"} {
		if strings.HasPrefix(strings.ToLower(domain), prefix) {
			scheme = prefix
			domain = domain[len(prefix):]
			break
		}
	}
	domain = strings.TrimRight(domain, "/")
	if domain == "" {
		return "", errors.New("api domain has no host")
	}
	u, err := url.Parse(scheme + domain)
	if err != nil {
		return "", fmt.Errorf("parse api domain: %w", err)
	}
	if u.Host == "" {
		return "", errors.New("api domain has no host")
	}
	return scheme + domain, nil
}
