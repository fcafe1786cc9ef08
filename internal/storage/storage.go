package storage

import (
	"context"
	"errors"
	"io"
)

var ErrUnavailable = errors.New("image storage is not configured")

// ImageStore keeps snake pictures on an external object host.
type ImageStore interface {
	Upload(ctx context.Context, filename, contentType string, body io.Reader, size int64) (key, url string, err error)
	Delete(ctx context.Context, key string) error
}

type Unavailable struct{}

func (Unavailable) Upload(context.Context, string, string, io.Reader, int64) (string, string, error) {
	return "", "", ErrUnavailable
}

func (Unavailable) Delete(context.Context, string) error { return ErrUnavailable }
