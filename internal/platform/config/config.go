package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/hashicorp/go-multierror"
	"gopkg.in/yaml.v3"
)

// EnvConfigFile names an optional YAML file read before environment overrides.
const EnvConfigFile = "IDCHECK_CONFIG"

const devFingerprintKey = "dev-fingerprint-key-change-in-production"

// Server captures HTTP server and checker configuration.
type Server struct {
	Addr      string `yaml:"addr"`
	LogLevel  string `yaml:"log_level"`
	LogFormat string `yaml:"log_format"`

	// PivotYear fixes the first year of the century window used for legacy
	// 15-digit numbers. Zero keeps the clock rule (80 years back from now).
	PivotYear int `yaml:"pivot_year"`

	BatchMax         int `yaml:"batch_max"`
	BatchConcurrency int `yaml:"batch_concurrency"`

	FingerprintKey string `yaml:"fingerprint_key"`
}

// Defaults returns the configuration used when nothing is set.
func Defaults() Server {
	return Server{
		Addr:             ":8080",
		LogLevel:         "info",
		LogFormat:        "json",
		BatchMax:         100,
		BatchConcurrency: 8,
		FingerprintKey:   devFingerprintKey,
	}
}

// FromEnv builds a Server config from defaults, the optional YAML file named
// by IDCHECK_CONFIG and then environment variables, so main stays lean.
func FromEnv() (Server, error) {
	return Load(os.Getenv(EnvConfigFile), os.LookupEnv)
}

// Load is FromEnv with the file path and environment lookup injected.
func Load(path string, lookup func(string) (string, bool)) (Server, error) {
	cfg := Defaults()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Server{}, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Server{}, fmt.Errorf("parse config file %s: %w", path, err)
		}
	}

	var result *multierror.Error
	if v, ok := lookup("IDCHECK_ADDR"); ok && v != "" {
		cfg.Addr = v
	}
	if v, ok := lookup("IDCHECK_LOG_LEVEL"); ok && v != "" {
		cfg.LogLevel = strings.ToLower(v)
	}
	if v, ok := lookup("IDCHECK_LOG_FORMAT"); ok && v != "" {
		cfg.LogFormat = strings.ToLower(v)
	}
	if v, ok := lookup("IDCHECK_FINGERPRINT_KEY"); ok && v != "" {
		cfg.FingerprintKey = v
	}
	for name, dst := range map[string]*int{
		"IDCHECK_PIVOT_YEAR":        &cfg.PivotYear,
		"IDCHECK_BATCH_MAX":         &cfg.BatchMax,
		"IDCHECK_BATCH_CONCURRENCY": &cfg.BatchConcurrency,
	} {
		v, ok := lookup(name)
		if !ok || v == "" {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			result = multierror.Append(result, fmt.Errorf("%s: %w", name, err))
			continue
		}
		*dst = n
	}
	if err := result.ErrorOrNil(); err != nil {
		return Server{}, err
	}

	if err := cfg.Validate(); err != nil {
		return Server{}, err
	}
	return cfg, nil
}

// Validate reports every invalid setting at once.
func (s Server) Validate() error {
	var result *multierror.Error
	if s.Addr == "" {
		result = multierror.Append(result, fmt.Errorf("addr is required"))
	}
	switch s.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		result = multierror.Append(result, fmt.Errorf("log_level %q must be one of debug, info, warn, error", s.LogLevel))
	}
	switch s.LogFormat {
	case "json", "text":
	default:
		result = multierror.Append(result, fmt.Errorf("log_format %q must be json or text", s.LogFormat))
	}
	if s.PivotYear != 0 && (s.PivotYear < 1800 || s.PivotYear > 9899) {
		result = multierror.Append(result, fmt.Errorf("pivot_year %d out of range", s.PivotYear))
	}
	if s.BatchMax < 1 {
		result = multierror.Append(result, fmt.Errorf("batch_max must be positive"))
	}
	if s.BatchConcurrency < 1 {
		result = multierror.Append(result, fmt.Errorf("batch_concurrency must be positive"))
	}
	if n := len(s.FingerprintKey); n == 0 || n > 64 {
		result = multierror.Append(result, fmt.Errorf("fingerprint_key must be 1-64 bytes"))
	}
	return result.ErrorOrNil()
}

// UsesDevKey reports whether the development fingerprint key is in use.
func (s Server) UsesDevKey() bool {
	return s.FingerprintKey == devFingerprintKey
}
