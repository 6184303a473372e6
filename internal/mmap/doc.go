// Package mmap provides read-only memory-mapped file access.
//
// Prototype banks are loaded once per process; mapping the file avoids an
// extra copy of the raw bytes before they are decoded into the bank matrix.
//
// # Usage
//
//	m, err := mmap.Open("ffhq/fs3.npy")
//	if err != nil { ... }
//	defer m.Close()
//
//	data := m.Bytes()
//
// # Platform Support
//
//   - Unix (Linux, macOS, BSD): Uses mmap(2) through golang.org/x/sys/unix
//   - Other platforms: the file is read into memory
package mmap
