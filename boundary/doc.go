// Package boundary converts an edit direction into sparse offsets over the
// generator's style channels and applies them.
//
// Each style channel owns one row of a ChannelBank: the embedding-space
// direction that moving the channel produces. The alignment of a channel with
// an edit direction is the dot product of its row with the direction. Build
// keeps the top-k channels by absolute alignment, or every channel whose
// absolute alignment reaches a threshold, and scales the kept alignments by
// their maximum magnitude and by each channel's style deviation.
//
//	b, err := boundary.NewBuilder().Build(bank, direction, layout, boundary.Selection{TopK: 50})
//	edited, err := boundary.Apply(style, b, boundary.DefaultStep)
package boundary
