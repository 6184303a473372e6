// Package evaluate scores an edit along the core, unwanted and
// image-positive semantic groups and, for face datasets, by identity.
package evaluate
