package storage

import "io"

// BlobStore holds the durable question files, one blob per test variant.
type BlobStore interface {
	Put(key string, r io.Reader) (string, error) // returns canonical key; replaces the blob atomically
	Get(key string) (io.ReadCloser, error)       // missing keys return an error matching fs.ErrNotExist
}
