// Package config loads run configuration from YAML.
//
// A minimal file names the two banks and the target:
//
//	prototypes: s3://my-bucket/banks/prototypes.npy.zst
//	channels: ./banks/fs3.npy
//	target: grey hair
//
// Everything else falls back to Default. Unknown keys are rejected.
package config
