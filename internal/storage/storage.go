// Package storage keeps uploaded photo files.
package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"
)

var ErrNotFound = errors.New("storage: object not found")

// Store saves and serves binary objects by slash-separated key.
type Store interface {
	Save(ctx context.Context, key string, r io.Reader, contentType string) (int64, error)
	Open(ctx context.Context, key string) (io.ReadCloser, error)
}

// CleanKey normalizes key and rejects keys that escape the store root.
func CleanKey(key string) (string, error) {
	k := strings.TrimLeft(path.Clean("/"+strings.TrimSpace(key)), "/")
	if k == "" || k == "." || strings.Contains(key, `\`) {
		return "", fmt.Errorf("storage: invalid key %q", key)
	}
	return k, nil
}

// ObjectKey is the key an upload is stored under: {owner}/{dir}{name}.
func ObjectKey(owner, dir, name string) (string, error) {
	return CleanKey(path.Join(owner, dir, name))
}
