package main

import (
	"fmt"
	"math"

	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/hupe1980/stylealign/prototype"
)

type bankInfo struct {
	Source  string  `json:"source"`
	Rows    int     `json:"rows"`
	Dim     int     `json:"dim"`
	MinNorm float64 `json:"min_norm"`
	MaxNorm float64 `json:"max_norm"`
	Zero    []int   `json:"zero_rows,omitempty"`
	Written string  `json:"written,omitempty"`
}

func newBankCmd(e *env) *cobra.Command {
	var convert string

	cmd := &cobra.Command{
		Use:   "bank [uri]",
		Short: "Inspect a prototype bank and optionally convert it",
		Long: `Reads a (P, D) matrix, reports its shape and row norms, and checks that it
can be used as a prototype bank. With --convert the matrix is written to
another location; the target suffix selects .npy or the raw format and an
optional .zst or .lz4 compression.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			uri := e.cfg.Prototypes
			if len(args) == 1 {
				uri = args[0]
			}
			if uri == "" {
				return fmt.Errorf("no bank given; pass a uri or set prototypes in the config")
			}

			m, err := e.loadMatrix(ctx, uri)
			if err != nil {
				return err
			}
			info := inspect(uri, m)

			if len(info.Zero) > 0 {
				e.logger.WarnContext(ctx, "bank has zero rows", "count", len(info.Zero))
			} else if _, err := prototype.NewBankFromMatrix(m); err != nil {
				return err
			}

			if convert != "" {
				store, name, err := e.open(ctx, convert)
				if err != nil {
					return err
				}
				if err := prototype.Save(ctx, store, name, m); err != nil {
					return err
				}
				info.Written = convert
			}
			return e.writeJSON(info)
		},
	}

	cmd.Flags().StringVar(&convert, "convert", "", "write the matrix to this uri")
	return cmd
}

func inspect(uri string, m mat.Matrix) bankInfo {
	r, c := m.Dims()
	info := bankInfo{Source: uri, Rows: r, Dim: c, MinNorm: math.Inf(1), MaxNorm: math.Inf(-1)}
	row := make([]float64, c)
	for i := range r {
		mat.Row(row, i, m)
		n := floats.Norm(row, 2)
		if n == 0 {
			info.Zero = append(info.Zero, i)
		}
		info.MinNorm = math.Min(info.MinNorm, n)
		info.MaxNorm = math.Max(info.MaxNorm, n)
	}
	if r == 0 {
		info.MinNorm, info.MaxNorm = 0, 0
	}
	return info
}
