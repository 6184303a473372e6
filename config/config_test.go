package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/stylealign/config"
	"github.com/hupe1980/stylealign/disentangle"
)

const minimal = `
prototypes: ./banks/prototypes.npy
channels: ./banks/fs3.npy
target: grey hair
`

func TestLoadFromReader_Defaults(t *testing.T) {
	cfg, err := config.LoadFromReader(strings.NewReader(minimal))
	require.NoError(t, err)

	def := config.Default()
	assert.Equal(t, "grey hair", cfg.Target)
	assert.Equal(t, def.Method, cfg.Method)
	assert.Equal(t, 5, cfg.NumAttempts)
	assert.Equal(t, 100, cfg.NumTest)
	assert.Equal(t, 50, cfg.TopK)
	assert.InDelta(t, 5.0, cfg.Step, 0)
	assert.InDelta(t, 2.0, cfg.TargetWeight, 0)
	assert.InDelta(t, 1.0, cfg.Temperature, 0)
	assert.Nil(t, cfg.Seed)

	opts, err := cfg.Options()
	require.NoError(t, err)
	assert.NotEmpty(t, opts)
}

func TestLoadFromReader_Overrides(t *testing.T) {
	yaml := minimal + `
method: random
num_attempts: 2
top_k: 10
beta: 0.1
seed: 7
log_level: debug
exclude_image: true
`
	cfg, err := config.LoadFromReader(strings.NewReader(yaml))
	require.NoError(t, err)
	assert.Equal(t, "random", cfg.Method)
	assert.Equal(t, 2, cfg.NumAttempts)
	assert.Equal(t, 10, cfg.TopK)
	assert.InDelta(t, 0.1, cfg.Beta, 0)
	require.NotNil(t, cfg.Seed)
	assert.Equal(t, uint64(7), *cfg.Seed)
	assert.True(t, cfg.ExcludeImage)

	opts, err := cfg.Options()
	require.NoError(t, err)
	assert.Len(t, opts, 14)
}

func TestSelectorConfig(t *testing.T) {
	yaml := minimal + `
selector:
  kind: quantile
  core_quantile: 0.975
`
	cfg, err := config.LoadFromReader(strings.NewReader(yaml))
	require.NoError(t, err)
	sel, err := cfg.Selector.Build()
	require.NoError(t, err)
	q, ok := sel.(*disentangle.QuantileSelector)
	require.True(t, ok)
	assert.InDelta(t, 0.975, q.Core, 0)
	assert.InDelta(t, disentangle.DefaultPositiveQuantile, q.Positive, 0)

	def, err := config.Default().Selector.Build()
	require.NoError(t, err)
	o, ok := def.(*disentangle.OutlierSelector)
	require.True(t, ok)
	assert.True(t, o.CoreContamination.IsAuto())
	assert.InDelta(t, 0.1, o.PositiveContamination.Value(), 0)

	for _, bad := range []string{
		"selector:\n  kind: knn\n",
		"selector:\n  positive_contamination: \"0.7\"\n",
		"selector:\n  sigma: 0\n",
		"selector:\n  kind: quantile\n  core_quantile: 1.5\n",
	} {
		_, err := config.LoadFromReader(strings.NewReader(minimal + bad))
		assert.Error(t, err, bad)
	}
}

func TestLoadFromReader_UnknownField(t *testing.T) {
	_, err := config.LoadFromReader(strings.NewReader(minimal + "topk: 3\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "topk")
}

func TestValidate_JoinsErrors(t *testing.T) {
	yaml := `
method: styleclip
num_attempts: 0
top_k: -1
temperature: 0
log_level: loud
`
	_, err := config.LoadFromReader(strings.NewReader(yaml))
	require.Error(t, err)
	msg := err.Error()
	for _, want := range []string{
		"prototypes is required",
		"channels is required",
		"method",
		"num_attempts",
		"top_k",
		"temperature",
		"log_level",
	} {
		assert.Contains(t, msg, want)
	}
}

func TestValidate_MinIORequiresEndpoint(t *testing.T) {
	yaml := `
prototypes: minio://banks/prototypes.npy
channels: ./fs3.npy
`
	_, err := config.LoadFromReader(strings.NewReader(yaml))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "minio.endpoint")

	_, err = config.LoadFromReader(strings.NewReader(yaml + "minio:\n  endpoint: localhost:9000\n"))
	assert.NoError(t, err)
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.yaml")
	require.NoError(t, os.WriteFile(path, []byte(minimal), 0o600))

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "grey hair", cfg.Target)

	_, err = config.Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestParseSource(t *testing.T) {
	tests := []struct {
		uri    string
		want   config.Source
		prefix string
	}{
		{"banks/p.npy", config.Source{Scheme: config.SchemeLocal, Bucket: "banks", Key: "p.npy"}, ""},
		{"file:///data/p.f32", config.Source{Scheme: config.SchemeLocal, Bucket: "/data", Key: "p.f32"}, ""},
		{"s3://bucket/banks/p.npy.zst", config.Source{Scheme: config.SchemeS3, Bucket: "bucket", Key: "banks/p.npy.zst"}, "banks"},
		{"minio://bucket/p.npy", config.Source{Scheme: config.SchemeMinIO, Bucket: "bucket", Key: "p.npy"}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.uri, func(t *testing.T) {
			got, err := config.ParseSource(tt.uri)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.prefix, got.Prefix())
		})
	}

	for _, bad := range []string{"", "gs://bucket/key", "s3://bucket", "s3:///key"} {
		_, err := config.ParseSource(bad)
		assert.Error(t, err, bad)
	}
}
