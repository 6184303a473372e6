// Package outlier partitions similarity vectors into statistical outliers.
//
// Two selection procedures are provided:
//
//   - Partitioner.Partition: a two-sided sigma pre-filter followed by a local
//     density refinement performed by an injected Detector (local outlier
//     factor by default).
//   - QuantilePartition: a deterministic one-sided z-score cut against a fixed
//     quantile table.
//
// # Usage
//
//	p := outlier.NewPartitioner()
//	core, err := p.Partition(textScores, 2.0, outlier.Auto)
//	positive, err := p.Partition(imageScores, 2.0, outlier.Fraction(0.1))
//	top, err := outlier.QuantilePartition(scores, 0.99)
package outlier
