// Package disentangle splits a prototype bank into core, unwanted and
// image-positive groups for one pair of text and image embeddings.
//
// Core prototypes are those the text strongly agrees or disagrees with.
// Image-positive prototypes are those already strongly present in the source
// image; when a prototype is both, it stays positive only if the text and the
// image agree on its sign. Every prototype that is neither core nor positive is
// unwanted, so the three groups always cover the whole bank.
//
//	d := disentangle.New(bank)
//	res, err := d.Disentangle(textEmbedding, imageEmbedding)
//	direction := res.CoreEmbeddings()
package disentangle
