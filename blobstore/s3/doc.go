// Package s3 implements blobstore.BlobStore on Amazon S3.
//
// Reads use ranged GetObject calls; large writes go through the
// feature/s3/manager multipart uploader.
//
//	cfg, _ := config.LoadDefaultConfig(ctx)
//	store := s3.NewStore(awss3.NewFromConfig(cfg), "my-bucket", "banks/")
package s3
