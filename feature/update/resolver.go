package update

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"dat-manager/core/datfile"
	"dat-manager/core/formats"
	"dat-manager/core/reconcile"
	"dat-manager/core/storage"
	"dat-manager/feature/catalog"

	"github.com/minio/minio-go/v7"
)

// S3Scheme prefixes input paths naming objects in the catalog bucket.
const S3Scheme = "s3://"

// Resolver locates inputs on disk, in object storage or in the catalog
// database and parses them.
type Resolver struct {
	client   storage.Client
	bucket   string
	catalogs reconcile.Loader
}

// NewResolver creates a resolver. client and catalogs may be nil, in which
// case s3:// or db:// inputs fail.
func NewResolver(client storage.Client, bucket string, catalogs reconcile.Loader) *Resolver {
	return &Resolver{client: client, bucket: bucket, catalogs: catalogs}
}

// Load implements reconcile.Loader.
func (r *Resolver) Load(ctx context.Context, in reconcile.Input) (*datfile.Stream, error) {
	switch {
	case strings.HasPrefix(in.Path, catalog.Scheme):
		if r.catalogs == nil {
			return nil, fmt.Errorf("%s: %w", in.Path, catalog.ErrNoDatabase)
		}
		return r.catalogs.Load(ctx, in)

	case strings.HasPrefix(in.Path, S3Scheme):
		if r.client == nil {
			return nil, fmt.Errorf("%s: object storage not configured", in.Path)
		}
		key := strings.TrimPrefix(in.Path, S3Scheme)
		f, err := formats.ForPath(key)
		if err != nil {
			return nil, err
		}
		obj, err := r.client.GetObject(ctx, r.bucket, key, minio.GetObjectOptions{})
		if err != nil {
			return nil, fmt.Errorf("failed to get %s: %w", key, err)
		}
		defer obj.Close()
		return f.Parse(ctx, obj)

	default:
		f, err := formats.ForPath(in.Path)
		if err != nil {
			return nil, err
		}
		file, err := os.Open(in.Path)
		if err != nil {
			return nil, err
		}
		defer file.Close()
		return f.Parse(ctx, file)
	}
}

// RemoteOnly rejects every path that is not an s3:// or db:// reference.
func RemoteOnly(paths ...[]string) error {
	for _, list := range paths {
		for _, p := range list {
			p = strings.TrimSpace(p)
			if p == "" || strings.HasPrefix(p, S3Scheme) || strings.HasPrefix(p, catalog.Scheme) {
				continue
			}
			return fmt.Errorf("%w: %w: %q", ErrInvalidRequest, ErrLocalPath, p)
		}
	}
	return nil
}

// Expand turns paths into inputs. Directories and s3:// prefixes ending in
// a slash expand to every catalog below them, sorted, with the directory as
// Parent.
func (r *Resolver) Expand(ctx context.Context, paths []string) ([]reconcile.Input, error) {
	var inputs []reconcile.Input
	for _, p := range paths {
		p = strings.TrimSpace(p)
		switch {
		case p == "":
			continue

		case strings.HasPrefix(p, catalog.Scheme):
			inputs = append(inputs, reconcile.Input{Path: p})

		case strings.HasPrefix(p, S3Scheme):
			if !strings.HasSuffix(p, "/") {
				inputs = append(inputs, reconcile.Input{Path: p})
				continue
			}
			if r.client == nil {
				return nil, fmt.Errorf("%s: object storage not configured", p)
			}
			keys, err := storage.ListKeys(ctx, r.client, r.bucket, strings.TrimPrefix(p, S3Scheme), formats.AllExtensions())
			if err != nil {
				return nil, err
			}
			for _, k := range keys {
				inputs = append(inputs, reconcile.Input{Path: S3Scheme + k, Parent: p})
			}

		default:
			info, err := os.Stat(p)
			if err != nil {
				return nil, err
			}
			if !info.IsDir() {
				inputs = append(inputs, reconcile.Input{Path: p})
				continue
			}
			found, err := walkCatalogs(p)
			if err != nil {
				return nil, err
			}
			for _, f := range found {
				inputs = append(inputs, reconcile.Input{Path: f, Parent: p})
			}
		}
	}
	return inputs, nil
}

func walkCatalogs(dir string) ([]string, error) {
	var found []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if _, ferr := formats.ForPath(path); ferr != nil {
			if errors.Is(ferr, formats.ErrUnknownFormat) {
				return nil
			}
			return ferr
		}
		found = append(found, path)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk %s: %w", dir, err)
	}
	sort.Strings(found)
	return found, nil
}
