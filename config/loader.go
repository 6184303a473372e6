package config

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/hupe1980/stylealign"
)

// Load reads the YAML configuration file at path and returns a validated Config.
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("config: open %q: %w", path, err)
	}
	defer f.Close()

	cfg, err := LoadFromReader(f)
	if err != nil {
		return nil, fmt.Errorf("config: parse %q: %w", path, err)
	}
	return cfg, nil
}

// LoadFromReader decodes YAML from r over Default and validates the result.
func LoadFromReader(r io.Reader) (*Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("config: decode yaml: %w", err)
	}
	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that cfg contains a coherent set of values.
// It returns a joined error listing all validation failures found.
func Validate(cfg *Config) error {
	var errs []error

	if cfg.Prototypes == "" {
		errs = append(errs, errors.New("prototypes is required"))
	} else if err := validateSource(cfg, "prototypes", cfg.Prototypes); err != nil {
		errs = append(errs, err)
	}
	if cfg.Channels == "" {
		errs = append(errs, errors.New("channels is required"))
	} else if err := validateSource(cfg, "channels", cfg.Channels); err != nil {
		errs = append(errs, err)
	}
	if cfg.ChannelStd != "" {
		if err := validateSource(cfg, "channel_std", cfg.ChannelStd); err != nil {
			errs = append(errs, err)
		}
	}

	if _, err := stylealign.ParseMethod(cfg.Method); err != nil {
		errs = append(errs, fmt.Errorf("method %q is invalid; valid values: baseline, random", cfg.Method))
	}
	if cfg.NumAttempts < 1 {
		errs = append(errs, fmt.Errorf("num_attempts %d must be at least 1", cfg.NumAttempts))
	}
	if cfg.NumTest < 0 {
		errs = append(errs, fmt.Errorf("num_test %d must not be negative", cfg.NumTest))
	}
	if cfg.TopK < 0 {
		errs = append(errs, fmt.Errorf("top_k %d must not be negative", cfg.TopK))
	}
	if cfg.Beta < 0 {
		errs = append(errs, fmt.Errorf("beta %.3f must not be negative", cfg.Beta))
	}
	if math.IsNaN(cfg.Step) || math.IsInf(cfg.Step, 0) {
		errs = append(errs, fmt.Errorf("step %v must be finite", cfg.Step))
	}
	if !(cfg.Temperature > 0) {
		errs = append(errs, fmt.Errorf("temperature %v must be positive", cfg.Temperature))
	}
	if !(cfg.TargetWeight > 0) {
		errs = append(errs, fmt.Errorf("target_weight %v must be positive", cfg.TargetWeight))
	}
	if cfg.Concurrency < 1 {
		errs = append(errs, fmt.Errorf("concurrency %d must be at least 1", cfg.Concurrency))
	}
	if cfg.CollaboratorRPS < 0 {
		errs = append(errs, fmt.Errorf("collaborator_rps %v must not be negative", cfg.CollaboratorRPS))
	}
	if _, err := cfg.Selector.Build(); err != nil {
		errs = append(errs, fmt.Errorf("selector: %w", err))
	} else if cfg.Selector.Kind == "outlier" && !(cfg.Selector.Sigma > 0) {
		errs = append(errs, fmt.Errorf("selector.sigma %v must be positive", cfg.Selector.Sigma))
	}
	if _, err := cfg.Level(); err != nil {
		errs = append(errs, fmt.Errorf("log_level %q is invalid; valid values: debug, info, warn, error", cfg.LogLevel))
	}

	return errors.Join(errs...)
}

func validateSource(cfg *Config, field, uri string) error {
	src, err := ParseSource(uri)
	if err != nil {
		return fmt.Errorf("%s: %w", field, err)
	}
	if src.Scheme == SchemeMinIO && cfg.MinIO.Endpoint == "" {
		return fmt.Errorf("%s uses minio:// but minio.endpoint is not set", field)
	}
	return nil
}
