package config

import (
	"fmt"
	"io"
	"os"
	"path"
	"strconv"
	"strings"
	"time"

	"github.com/creasty/defaults"
	"github.com/dustin/go-humanize"
	"github.com/pelletier/go-toml"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

const intervalsConfigDirName = "intervals"
const intervalsConfigFileName = "config.toml"

// EnvironmentDevelopment enables detailed internal error messages.
const EnvironmentDevelopment = "development"

// A Config represents the on-disk configuration of the interval service and its clients.
type Config struct {
	Server   ServerConfig       `json:"server"`
	Profiles map[string]Profile `json:"profiles,omitempty"`
}

// ServerConfig holds the settings of the HTTP service.
type ServerConfig struct {
	Host             string   `json:"host,omitempty"`
	Port             int      `json:"port,omitempty" default:"3000"`
	Environment      string   `json:"environment,omitempty" default:"production"`
	RequestSizeLimit string   `json:"request_size_limit,omitempty" default:"5mb"`
	AllowedOrigins   []string `json:"allowed_origins,omitempty" default:"[\"*\"]"`
	LogLevel         string   `json:"log_level,omitempty" default:"info"`
	LogFormat        string   `json:"log_format,omitempty" default:"text"`
	DisableMetrics   bool     `json:"disable_metrics,omitempty"`
	ShutdownTimeout  string   `json:"shutdown_timeout,omitempty" default:"10s"`
}

// IsDevelopment returns whether internal error details may be exposed to callers.
func (s *ServerConfig) IsDevelopment() bool {
	return s.Environment == EnvironmentDevelopment
}

// Addr returns the listen address of the server.
func (s *ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// RequestSizeLimitBytes returns the maximum accepted request body size.
func (s *ServerConfig) RequestSizeLimitBytes() (int64, error) {
	n, err := humanize.ParseBytes(s.RequestSizeLimit)
	if err != nil {
		return 0, errors.Wrapf(err, "invalid request size limit '%s'", s.RequestSizeLimit)
	}
	return int64(n), nil
}

// ShutdownTimeoutDuration returns how long in-flight requests get to finish on shutdown.
func (s *ServerConfig) ShutdownTimeoutDuration() (time.Duration, error) {
	d, err := time.ParseDuration(s.ShutdownTimeout)
	if err != nil {
		return 0, errors.Wrapf(err, "invalid shutdown timeout '%s'", s.ShutdownTimeout)
	}
	return d, nil
}

// Validate checks that every server setting can be used.
func (s *ServerConfig) Validate() error {
	if s.Port < 0 || s.Port > 65535 {
		return fmt.Errorf("port %d out of range", s.Port)
	}
	if _, err := s.RequestSizeLimitBytes(); err != nil {
		return err
	}
	if _, err := s.ShutdownTimeoutDuration(); err != nil {
		return err
	}
	if _, err := logrus.ParseLevel(s.LogLevel); err != nil {
		return errors.Wrap(err, "invalid log level")
	}
	if s.LogFormat != "text" && s.LogFormat != "json" {
		return fmt.Errorf("unknown log format '%s'", s.LogFormat)
	}
	return nil
}

// Default returns a configuration with every default applied.
func Default() *Config {
	cfg, err := finalize(&Config{})
	if err != nil {
		// Only reachable if a default tag is malformed.
		panic(err)
	}
	return cfg
}

func finalize(cfg *Config) (*Config, error) {
	applyEnvironment(&cfg.Server)
	if err := defaults.Set(cfg); err != nil {
		return nil, errors.Wrap(err, "failed to apply configuration defaults")
	}
	if cfg.Profiles == nil {
		cfg.Profiles = make(map[string]Profile)
	}
	return cfg, nil
}

// applyEnvironment lets the process environment override the file.
func applyEnvironment(s *ServerConfig) {
	if port, err := strconv.Atoi(os.Getenv("PORT")); err == nil {
		s.Port = port
	}
	if env := os.Getenv("ENVIRONMENT"); env != "" {
		s.Environment = env
	} else if env := os.Getenv("NODE_ENV"); env != "" {
		s.Environment = env
	}
	if limit := os.Getenv("REQUEST_SIZE_LIMIT"); limit != "" {
		s.RequestSizeLimit = limit
	}
	if origins := os.Getenv("ALLOWED_ORIGINS"); origins != "" {
		s.AllowedOrigins = splitOrigins(origins)
	}
	if level := os.Getenv("LOG_LEVEL"); level != "" {
		s.LogLevel = level
	}
}

func splitOrigins(s string) []string {
	var origins []string
	for _, o := range strings.Split(s, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}

// Decode reads a TOML configuration from r and applies environment overrides and defaults.
func Decode(r io.Reader) (*Config, error) {
	decoder := toml.NewDecoder(r).SetTagName("json")

	var cfg Config
	if err := decoder.Decode(&cfg); err != nil {
		return nil, errors.Wrap(err, "failed to decode TOML config")
	}

	return finalize(&cfg)
}

// Load loads a config from the file at path.
func Load(path string) (*Config, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open intervals configuration file")
	}
	defer file.Close()

	return Decode(file)
}

// DefaultPath returns the location of the per-user configuration file.
func DefaultPath() (string, error) {
	configPath, err := os.UserConfigDir()
	if err != nil {
		return "", errors.Wrap(err, "failed to get the user configuration directory")
	}

	return path.Join(configPath, intervalsConfigDirName, intervalsConfigFileName), nil
}

// LoadDefault loads a config from the default path.
// A missing file is not an error: the defaults are returned instead.
func LoadDefault() (*Config, error) {
	configPath, err := DefaultPath()
	if err != nil {
		return nil, err
	}

	cfg, err := Load(configPath)
	if err != nil && os.IsNotExist(errors.Cause(err)) {
		return finalize(&Config{})
	}
	return cfg, err
}

// LoadProfileByName is a utility method for loading a single profile from the default config location.
func LoadProfileByName(profileName string) (*Profile, error) {
	config, err := LoadDefault()
	if err != nil {
		return nil, errors.Wrap(err, "failed to read profile from configuration")
	}

	if profile, ok := config.Profiles[profileName]; ok {
		return &profile, nil
	}

	return nil, errors.New(fmt.Sprintf("profile '%s' not found", profileName))
}
