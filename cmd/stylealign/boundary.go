package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/mat"

	"github.com/hupe1980/stylealign/boundary"
)

type offsetJSON struct {
	Layer   string  `json:"layer"`
	Channel int     `json:"channel"`
	Value   float64 `json:"value"`
}

type boundaryJSON struct {
	Changed int          `json:"changed"`
	Step    float64      `json:"step"`
	Offsets []offsetJSON `json:"offsets"`
}

func newBoundaryCmd(e *env) *cobra.Command {
	var (
		channels  string
		std       string
		direction string
		layers    string
		topK      int
		beta      float64
	)

	cmd := &cobra.Command{
		Use:   "boundary",
		Short: "Select style channels for a direction",
		Long: `Loads a (C, D) channel bank and a 1xD direction and prints the selected
channel offsets. --layers describes how the C flat channels split into
named style layers, e.g. "conv1:512,conv2:512"; without it all channels
belong to a single layer named "style".`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			if direction == "" {
				return fmt.Errorf("--direction is required")
			}
			chURI := pick(cmd, "channels", channels, e.cfg.Channels)
			if chURI == "" {
				return fmt.Errorf("no channel bank; pass --channels or set channels in the config")
			}
			sel := boundary.Selection{TopK: e.cfg.TopK, Threshold: e.cfg.Beta}
			if cmd.Flags().Changed("top-k") {
				sel.TopK = topK
			}
			if cmd.Flags().Changed("beta") {
				sel.Threshold = beta
			}

			m, err := e.loadMatrix(ctx, chURI)
			if err != nil {
				return err
			}
			var stdRow []float64
			if stdURI := pick(cmd, "std", std, e.cfg.ChannelStd); stdURI != "" {
				s, err := e.loadMatrix(ctx, stdURI)
				if err != nil {
					return err
				}
				stdRow = mat.Row(nil, 0, s)
			}
			bank, err := boundary.NewChannelBank(m, stdRow)
			if err != nil {
				return err
			}

			rows, err := e.loadRows(ctx, direction)
			if err != nil {
				return err
			}
			if len(rows) != 1 {
				return fmt.Errorf("direction has %d rows, want 1", len(rows))
			}

			style, err := parseLayers(layers, bank.Len())
			if err != nil {
				return err
			}
			layout := boundary.LayoutOf(style, nil)

			b, err := boundary.NewBuilder(boundary.WithLogger(e.logger.Logger)).Build(bank, rows[0], layout, sel)
			if err != nil {
				return err
			}

			out := boundaryJSON{Changed: b.NumChanged(), Step: e.cfg.Step, Offsets: []offsetJSON{}}
			for _, o := range b.Offsets() {
				out.Offsets = append(out.Offsets, offsetJSON{Layer: style[o.Layer].Name, Channel: o.Channel, Value: o.Value})
			}
			return e.writeJSON(out)
		},
	}

	cmd.Flags().StringVar(&channels, "channels", "", "channel bank uri (default from config)")
	cmd.Flags().StringVar(&std, "std", "", "per-channel std uri, a 1xC matrix (default from config)")
	cmd.Flags().StringVar(&direction, "direction", "", "direction uri, a 1xD matrix")
	cmd.Flags().StringVar(&layers, "layers", "", "layer layout as name:channels pairs")
	cmd.Flags().IntVar(&topK, "top-k", boundary.DefaultTopK, "number of channels to move")
	cmd.Flags().Float64Var(&beta, "beta", 0, "alignment threshold; overrides --top-k when set")
	return cmd
}

// parseLayers builds an empty style space with the given layer sizes.
func parseLayers(layout string, total int) (boundary.StyleSpace, error) {
	if layout == "" {
		return boundary.StyleSpace{{Name: "style", Values: make([]float64, total)}}, nil
	}
	var (
		style boundary.StyleSpace
		n     int
	)
	for _, part := range strings.Split(layout, ",") {
		name, count, ok := strings.Cut(strings.TrimSpace(part), ":")
		if !ok || name == "" {
			return nil, fmt.Errorf("layer %q: want name:channels", part)
		}
		c, err := strconv.Atoi(count)
		if err != nil || c <= 0 {
			return nil, fmt.Errorf("layer %q: invalid channel count", part)
		}
		style = append(style, boundary.StyleLayer{Name: name, Values: make([]float64, c)})
		n += c
	}
	if n != total {
		return nil, &boundary.LayoutMismatchError{Expected: total, Actual: n}
	}
	return style, nil
}
