// Package storage writes rendered artifacts to a filesystem directory or an
// S3-compatible bucket.
package storage

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/invoicing-renderer/internal/config"
)

// Sink stores one artifact and returns where it was put.
type Sink interface {
	Put(ctx context.Context, key, contentType string, data []byte) (string, error)
}

// ErrInvalidKey is returned for empty keys or keys that escape the sink root.
var ErrInvalidKey = errors.New("storage: invalid key")

var unsafeKeyChars = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

// SafeName reduces s to characters safe in file names and object keys.
func SafeName(s string) string {
	name := strings.Trim(unsafeKeyChars.ReplaceAllString(s, "_"), "_")
	if name == "" {
		return "unnumbered"
	}
	return name
}

// NewKey builds a unique object key for a document, e.g.
// "invoices/INV-001/3f0c....pdf".
func NewKey(prefix, number, ext string) string {
	return prefix + SafeName(number) + "/" + uuid.NewString() + ext
}

func validKey(key string) bool {
	if key == "" || strings.HasPrefix(key, "/") {
		return false
	}
	for _, part := range strings.Split(key, "/") {
		if part == ".." {
			return false
		}
	}
	return true
}

// New returns the sink selected by cfg.Driver. The "none" driver yields a
// nil Sink.
func New(ctx context.Context, cfg config.StorageConfig, logger *zap.Logger) (Sink, error) {
	switch cfg.Driver {
	case "", "none":
		return nil, nil
	case "fs":
		return NewFileSink(cfg.Dir, logger)
	case "s3":
		return NewS3Sink(ctx, cfg, WithLogger(logger))
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Driver)
	}
}
