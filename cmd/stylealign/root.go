package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/mat"

	"github.com/hupe1980/stylealign"
	"github.com/hupe1980/stylealign/blobstore"
	miniostore "github.com/hupe1980/stylealign/blobstore/minio"
	s3store "github.com/hupe1980/stylealign/blobstore/s3"
	"github.com/hupe1980/stylealign/config"
	"github.com/hupe1980/stylealign/prototype"
)

type rootFlags struct {
	configPath string
	logLevel   string
}

// env is the per-invocation state shared by subcommands.
type env struct {
	cfg    *config.Config
	logger *stylealign.Logger
	out    io.Writer
}

func newRootCmd() *cobra.Command {
	var f rootFlags
	e := &env{}

	cmd := &cobra.Command{
		Use:           "stylealign",
		Short:         "Text-guided style-space editing tools",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg := config.Default()
			if f.configPath != "" {
				loaded, err := config.Load(f.configPath)
				if err != nil {
					return err
				}
				cfg = loaded
			}
			if cmd.Flags().Changed("log-level") {
				cfg.LogLevel = f.logLevel
			}
			level, err := cfg.Level()
			if err != nil {
				return fmt.Errorf("log level %q: %w", cfg.LogLevel, err)
			}
			e.cfg = cfg
			e.logger = stylealign.NewLogger(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
			e.out = cmd.OutOrStdout()
			return nil
		},
	}

	cmd.PersistentFlags().StringVarP(&f.configPath, "config", "c", "", "YAML run configuration")
	cmd.PersistentFlags().StringVar(&f.logLevel, "log-level", "info", "log level (debug, info, warn, error)")

	cmd.AddCommand(
		newBankCmd(e),
		newDisentangleCmd(e),
		newBoundaryCmd(e),
	)
	return cmd
}

// open resolves a source URI to a store and the object name inside it.
func (e *env) open(ctx context.Context, uri string) (blobstore.BlobStore, string, error) {
	src, err := config.ParseSource(uri)
	if err != nil {
		return nil, "", err
	}
	switch src.Scheme {
	case config.SchemeS3:
		awsCfg, err := awsconfig.LoadDefaultConfig(ctx)
		if err != nil {
			return nil, "", fmt.Errorf("load aws config: %w", err)
		}
		return s3store.NewStore(s3.NewFromConfig(awsCfg), src.Bucket, src.Prefix()), src.Name(), nil
	case config.SchemeMinIO:
		if e.cfg.MinIO.Endpoint == "" {
			return nil, "", fmt.Errorf("%s: minio.endpoint is not configured", uri)
		}
		client, err := miniostore.NewClient(e.cfg.MinIO)
		if err != nil {
			return nil, "", fmt.Errorf("minio client: %w", err)
		}
		return miniostore.NewStore(client, src.Bucket, src.Prefix()), src.Name(), nil
	default:
		return blobstore.NewLocalStore(src.Bucket), src.Key, nil
	}
}

func (e *env) loadMatrix(ctx context.Context, uri string) (*mat.Dense, error) {
	store, name, err := e.open(ctx, uri)
	if err != nil {
		return nil, err
	}
	m, err := prototype.LoadMatrix(ctx, store, name)
	if err != nil {
		return nil, err
	}
	r, c := m.Dims()
	e.logger.DebugContext(ctx, "loaded matrix", "uri", uri, "rows", r, "cols", c)
	return m, nil
}

// loadRows loads a matrix and returns its rows.
func (e *env) loadRows(ctx context.Context, uri string) ([][]float64, error) {
	m, err := e.loadMatrix(ctx, uri)
	if err != nil {
		return nil, err
	}
	r, _ := m.Dims()
	rows := make([][]float64, r)
	for i := range rows {
		rows[i] = mat.Row(nil, i, m)
	}
	return rows, nil
}

func (e *env) writeJSON(v any) error {
	enc := json.NewEncoder(e.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// pick returns flag when it was set, otherwise fallback.
func pick(cmd *cobra.Command, name, flag, fallback string) string {
	if cmd.Flags().Changed(name) || fallback == "" {
		return flag
	}
	return fallback
}
