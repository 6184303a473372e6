package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hupe1980/stylealign/disentangle"
	"github.com/hupe1980/stylealign/prototype"
)

type partition struct {
	Image    int   `json:"image"`
	Core     []int `json:"core"`
	Unwanted []int `json:"unwanted"`
	Positive []int `json:"positive"`
}

func newDisentangleCmd(e *env) *cobra.Command {
	var (
		prototypes string
		text       string
		images     string
		selector   string
	)

	cmd := &cobra.Command{
		Use:   "disentangle",
		Short: "Partition a prototype bank for precomputed text and image embeddings",
		Long: `Loads a prototype bank, one text embedding (a 1xD matrix) and one or more
image embeddings (an NxD matrix), and prints the core, unwanted and positive
prototype indices for every image. A text matrix with N rows pairs row i
with image i.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			if text == "" || images == "" {
				return fmt.Errorf("--text and --image are required")
			}
			uri := pick(cmd, "prototypes", prototypes, e.cfg.Prototypes)
			if uri == "" {
				return fmt.Errorf("no prototype bank; pass --prototypes or set prototypes in the config")
			}

			sc := e.cfg.Selector
			if selector != "" {
				sc.Kind = selector
			}
			sel, err := sc.Build()
			if err != nil {
				return err
			}

			store, name, err := e.open(ctx, uri)
			if err != nil {
				return err
			}
			bank, err := prototype.Load(ctx, store, name)
			if err != nil {
				return err
			}
			texts, err := e.loadRows(ctx, text)
			if err != nil {
				return err
			}
			imgs, err := e.loadRows(ctx, images)
			if err != nil {
				return err
			}
			if len(texts) != 1 && len(texts) != len(imgs) {
				return fmt.Errorf("text has %d rows, want 1 or %d", len(texts), len(imgs))
			}

			d := disentangle.New(bank, disentangle.WithSelector(sel), disentangle.WithLogger(e.logger.Logger))
			out := make([]partition, 0, len(imgs))
			for i, img := range imgs {
				t := texts[0]
				if len(texts) > 1 {
					t = texts[i]
				}
				res, err := d.Disentangle(t, img)
				if err != nil {
					return fmt.Errorf("image %d: %w", i, err)
				}
				e.logger.LogDisentangle(ctx, res.Core().Len(), res.Unwanted().Len(), res.Positive().Len())
				out = append(out, partition{
					Image:    i,
					Core:     res.Core().Indices(),
					Unwanted: res.Unwanted().Indices(),
					Positive: res.Positive().Indices(),
				})
			}
			return e.writeJSON(out)
		},
	}

	cmd.Flags().StringVar(&prototypes, "prototypes", "", "prototype bank uri (default from config)")
	cmd.Flags().StringVar(&text, "text", "", "text embedding uri")
	cmd.Flags().StringVar(&images, "image", "", "image embeddings uri")
	cmd.Flags().StringVar(&selector, "selector", "", "outlier or quantile (default from config)")
	return cmd
}
