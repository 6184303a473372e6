package config

import (
	"fmt"
	"log/slog"
	"net/url"
	"path"
	"path/filepath"
	"strings"

	"github.com/hupe1980/stylealign"
	"github.com/hupe1980/stylealign/blobstore/minio"
	"github.com/hupe1980/stylealign/boundary"
	"github.com/hupe1980/stylealign/disentangle"
	"github.com/hupe1980/stylealign/outlier"
)

// Config is a run configuration.
type Config struct {
	// Prototypes is the URI of the (P, D) prototype bank.
	Prototypes string `yaml:"prototypes"`
	// Channels is the URI of the (C, D) channel bank.
	Channels string `yaml:"channels"`
	// ChannelStd optionally names a (1, C) matrix of per-channel style deviations.
	ChannelStd string `yaml:"channel_std"`

	Method      string `yaml:"method"`
	Target      string `yaml:"target"`
	NumAttempts int    `yaml:"num_attempts"`
	// NumTest limits a run to the last NumTest latents; 0 uses all of them.
	NumTest int `yaml:"num_test"`

	TopK         int     `yaml:"top_k"`
	Beta         float64 `yaml:"beta"`
	Step         float64 `yaml:"step"`
	TargetWeight float64 `yaml:"target_weight"`
	Temperature  float64 `yaml:"temperature"`
	ExcludeImage bool    `yaml:"exclude_image"`
	Dataset      string  `yaml:"dataset"`

	Selector SelectorConfig `yaml:"selector"`

	Concurrency     int     `yaml:"concurrency"`
	CollaboratorRPS float64 `yaml:"collaborator_rps"`
	Seed            *uint64 `yaml:"seed"`
	LogLevel        string  `yaml:"log_level"`

	MinIO minio.Config `yaml:"minio"`
}

// SelectorConfig chooses how core and positive candidates are selected.
type SelectorConfig struct {
	// Kind is "outlier" or "quantile".
	Kind                  string  `yaml:"kind"`
	Sigma                 float64 `yaml:"sigma"`
	CoreContamination     string  `yaml:"core_contamination"`
	PositiveContamination string  `yaml:"positive_contamination"`
	CoreQuantile          float64 `yaml:"core_quantile"`
	PositiveQuantile      float64 `yaml:"positive_quantile"`
}

// Build returns the configured selector.
func (c SelectorConfig) Build() (disentangle.Selector, error) {
	switch c.Kind {
	case "outlier":
		core, err := outlier.ParseContamination(c.CoreContamination)
		if err != nil {
			return nil, fmt.Errorf("core_contamination %q: %w", c.CoreContamination, err)
		}
		pos, err := outlier.ParseContamination(c.PositiveContamination)
		if err != nil {
			return nil, fmt.Errorf("positive_contamination %q: %w", c.PositiveContamination, err)
		}
		s := disentangle.NewOutlierSelector(nil)
		s.Sigma = c.Sigma
		s.CoreContamination = core
		s.PositiveContamination = pos
		return s, nil
	case "quantile":
		if _, err := outlier.CriticalZ(c.CoreQuantile); err != nil {
			return nil, fmt.Errorf("core_quantile: %w", err)
		}
		if _, err := outlier.CriticalZ(c.PositiveQuantile); err != nil {
			return nil, fmt.Errorf("positive_quantile: %w", err)
		}
		return &disentangle.QuantileSelector{Core: c.CoreQuantile, Positive: c.PositiveQuantile}, nil
	default:
		return nil, fmt.Errorf("selector kind %q is invalid; valid values: outlier, quantile", c.Kind)
	}
}

// Default returns the configuration used for keys absent from a file.
func Default() *Config {
	return &Config{
		Method:       string(stylealign.MethodBaseline),
		NumAttempts:  stylealign.DefaultAttempts,
		NumTest:      stylealign.DefaultNumTest,
		TopK:         boundary.DefaultTopK,
		Step:         boundary.DefaultStep,
		TargetWeight: 2,
		Temperature:  1,
		Dataset:      "ffhq",
		Selector: SelectorConfig{
			Kind:                  "outlier",
			Sigma:                 disentangle.DefaultSigma,
			CoreContamination:     outlier.Auto.String(),
			PositiveContamination: disentangle.DefaultPositiveContamination.String(),
			CoreQuantile:          disentangle.DefaultCoreQuantile,
			PositiveQuantile:      disentangle.DefaultPositiveQuantile,
		},
		Concurrency: stylealign.DefaultConcurrency,
		LogLevel:    "info",
	}
}

// Level parses LogLevel.
func (c *Config) Level() (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return 0, err
	}
	return l, nil
}

// Options converts the run settings to editor and runner options.
// Collaborators, sinks and metrics are wired by the embedding program.
func (c *Config) Options() ([]stylealign.Option, error) {
	method, err := stylealign.ParseMethod(c.Method)
	if err != nil {
		return nil, err
	}
	level, err := c.Level()
	if err != nil {
		return nil, err
	}
	selector, err := c.Selector.Build()
	if err != nil {
		return nil, err
	}
	opts := []stylealign.Option{
		stylealign.WithMethod(method),
		stylealign.WithSelection(boundary.Selection{TopK: c.TopK, Threshold: c.Beta}),
		stylealign.WithStep(c.Step),
		stylealign.WithTargetWeight(c.TargetWeight),
		stylealign.WithTemperature(c.Temperature),
		stylealign.WithExcludeImage(c.ExcludeImage),
		stylealign.WithDataset(c.Dataset),
		stylealign.WithAttempts(c.NumAttempts),
		stylealign.WithNumTest(c.NumTest),
		stylealign.WithConcurrency(c.Concurrency),
		stylealign.WithCollaboratorRate(c.CollaboratorRPS, c.Concurrency),
		stylealign.WithLogLevel(level),
		stylealign.WithSelector(selector),
	}
	if c.Seed != nil {
		opts = append(opts, stylealign.WithSeed(*c.Seed))
	}
	return opts, nil
}

// Scheme identifies where a Source lives.
type Scheme string

const (
	SchemeLocal Scheme = "file"
	SchemeS3    Scheme = "s3"
	SchemeMinIO Scheme = "minio"
)

// Source is a parsed object URI. For local paths Bucket is the directory.
type Source struct {
	Scheme Scheme
	Bucket string
	Key    string
}

// ParseSource parses a local path, file://, s3://bucket/key or
// minio://bucket/key URI.
func ParseSource(uri string) (Source, error) {
	if uri == "" {
		return Source{}, fmt.Errorf("config: empty source")
	}
	if !strings.Contains(uri, "://") {
		return Source{Scheme: SchemeLocal, Bucket: filepath.Dir(uri), Key: filepath.Base(uri)}, nil
	}

	u, err := url.Parse(uri)
	if err != nil {
		return Source{}, fmt.Errorf("config: parse source %q: %w", uri, err)
	}
	switch Scheme(u.Scheme) {
	case SchemeLocal:
		p := u.Host + u.Path
		return Source{Scheme: SchemeLocal, Bucket: filepath.Dir(p), Key: filepath.Base(p)}, nil
	case SchemeS3, SchemeMinIO:
		key := strings.TrimPrefix(u.Path, "/")
		if u.Host == "" || key == "" {
			return Source{}, fmt.Errorf("config: source %q needs a bucket and a key", uri)
		}
		return Source{Scheme: Scheme(u.Scheme), Bucket: u.Host, Key: key}, nil
	default:
		return Source{}, fmt.Errorf("config: unsupported source scheme %q", u.Scheme)
	}
}

// Prefix returns the directory part of Key, or "" for top-level keys.
func (s Source) Prefix() string {
	if d := path.Dir(s.Key); d != "." {
		return d
	}
	return ""
}

// Name returns the last element of Key.
func (s Source) Name() string {
	return path.Base(s.Key)
}
