package disentangle

import (
	"slices"

	"github.com/hupe1980/stylealign/mask"
)

// Result is the immutable outcome of one disentanglement.
// Accessors return copies, so a Result may be shared between goroutines.
type Result struct {
	textScores  []float64
	imageScores []float64

	core     mask.IndexMask
	unwanted mask.IndexMask
	positive mask.IndexMask

	coreSemantics     [][]float64
	unwantedSemantics [][]float64
	positiveSemantics [][]float64
	coreEmbeddings    [][]float64
}

// TextScores returns the text similarity vector.
func (r *Result) TextScores() []float64 { return slices.Clone(r.textScores) }

// ImageScores returns the image similarity vector.
func (r *Result) ImageScores() []float64 { return slices.Clone(r.imageScores) }

// Core returns the core mask.
func (r *Result) Core() mask.IndexMask { return r.core }

// Unwanted returns the unwanted mask.
func (r *Result) Unwanted() mask.IndexMask { return r.unwanted }

// Positive returns the image-positive mask.
func (r *Result) Positive() mask.IndexMask { return r.positive }

// CoreSemantics returns the text-weighted, normalized core prototypes.
func (r *Result) CoreSemantics() [][]float64 { return cloneRows(r.coreSemantics) }

// UnwantedSemantics returns the text-weighted, normalized unwanted prototypes.
func (r *Result) UnwantedSemantics() [][]float64 { return cloneRows(r.unwantedSemantics) }

// PositiveSemantics returns the image-weighted, normalized positive prototypes.
func (r *Result) PositiveSemantics() [][]float64 { return cloneRows(r.positiveSemantics) }

// CoreEmbeddings returns the unweighted core prototypes, the input to
// resampling.
func (r *Result) CoreEmbeddings() [][]float64 { return cloneRows(r.coreEmbeddings) }

func cloneRows(rows [][]float64) [][]float64 {
	out := make([][]float64, len(rows))
	for i, row := range rows {
		out[i] = slices.Clone(row)
	}
	return out
}
