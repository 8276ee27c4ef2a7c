package storage

import (
	"context"
	"io"
)

// PutInput describes an incoming profile picture before it is keyed
// and written.
type PutInput struct {
	Filename    string
	ContentType string
	Size        int64
}

type PutResult struct {
	Key string
	URL string
}

// Storage is where student profile pictures live, local disk in
// development and S3 in production.
type Storage interface {
	Put(ctx context.Context, r io.Reader, in PutInput) (PutResult, error)
	Delete(ctx context.Context, key string) error
}
