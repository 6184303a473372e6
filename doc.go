// Package stylealign edits generator style spaces toward a text target while
// holding unrelated semantics and the source image's own attributes steady.
//
// # Pipeline
//
// One edit attempt runs these stages:
//
//  1. The generator encodes a latent into its style space and decodes the
//     original image.
//  2. The embedder embeds the original image; disentangle splits the prototype
//     bank into core, unwanted and image-positive groups.
//  3. The edit direction is the target text embedding (MethodBaseline) or a
//     relaxed-Bernoulli resample of the core prototypes mixed with the image
//     manifold (MethodRandom).
//  4. boundary selects the channels most aligned with the direction and
//     offsets them; the generator decodes the edited style space.
//  5. evaluate scores the edit against the three groups and identity.
//
// # Quick Start
//
//	bank, _ := prototype.Load(ctx, store, "ffhq/prototypes.npy")
//	fs3, _ := prototype.LoadMatrix(ctx, store, "ffhq/fs3.npy")
//	channels, _ := boundary.NewChannelBank(fs3, nil)
//
//	editor, _ := stylealign.NewEditor(gen, emb, bank, channels,
//	    stylealign.WithMethod(stylealign.MethodRandom),
//	    stylealign.WithIdentityScorer(arcface),
//	)
//	runner := stylealign.NewRunner(editor,
//	    stylealign.WithAttempts(5),
//	    stylealign.WithSink(sink.NewBlobSink(results, "random")),
//	)
//	summary, err := runner.Run(ctx, "grey hair", latents)
//
// # Failure Policy
//
// Collaborator failures and degenerate data fail the current attempt only;
// Runner records them and moves on. Configuration errors and cancellation stop
// the run.
package stylealign
