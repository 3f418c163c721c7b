package tafiti

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	"gocloud.dev/blob"
	_ "gocloud.dev/blob/fileblob" // registers the file:// bucket driver for local bundle directories

	"github.com/pitabwire/tafiti/resource"
)

// ErrNoStore is returned when a bundle operation needs a store and none was
// configured.
var ErrNoStore = errors.New("bundle has no store configured")

// Store exposes a bundle's files through a blob bucket, so the same engine
// reads bundles out of a local directory or a bucket during CI checks.
type Store struct {
	bucket *blob.Bucket
}

// OpenStore opens the bundle location given as a blob URL, e.g.
// "file:///path/to/bundle".
func OpenStore(ctx context.Context, urlstr string) (*Store, error) {
	bucket, err := blob.OpenBucket(ctx, urlstr)
	if err != nil {
		return nil, fmt.Errorf("could not open bundle store %q: %w", urlstr, err)
	}

	return &Store{bucket: bucket}, nil
}

// NewStore wraps an existing bucket, e.g. an in-memory one in tests.
func NewStore(bucket *blob.Bucket) *Store {
	return &Store{bucket: bucket}
}

// Close releases the underlying bucket.
func (s *Store) Close() error {
	return s.bucket.Close()
}

// ListFolder returns the filenames directly inside the given folder, sorted
// so every caller observes the same deterministic candidate order.
func (s *Store) ListFolder(ctx context.Context, folder string) ([]string, error) {
	prefix := strings.TrimSuffix(folder, "/") + "/"

	var filenames []string

	iter := s.bucket.List(&blob.ListOptions{Prefix: prefix, Delimiter: "/"})
	for {
		obj, err := iter.Next(ctx)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("could not list bundle folder %q: %w", folder, err)
		}
		if obj.IsDir {
			continue
		}

		filenames = append(filenames, strings.TrimPrefix(obj.Key, prefix))
	}

	sort.Strings(filenames)

	return filenames, nil
}

// Read returns the raw bytes of one localized file.
func (s *Store) Read(ctx context.Context, ref resource.LocalizedFileReference) ([]byte, error) {
	data, err := s.bucket.ReadAll(ctx, ref.StorageKey())
	if err != nil {
		return nil, fmt.Errorf("could not read %s: %w", ref, err)
	}

	return data, nil
}

// ReadKey returns the raw bytes of an arbitrary bundle file, such as the
// study definition at the bundle root.
func (s *Store) ReadKey(ctx context.Context, key string) ([]byte, error) {
	data, err := s.bucket.ReadAll(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("could not read bundle file %q: %w", key, err)
	}

	return data, nil
}
