package storage

import (
	"context"
	"fmt"
	"io"
	"path"
	"sort"
	"strings"

	"github.com/minio/minio-go/v7"
)

// EnsureBucket creates bucket when it does not exist yet.
func EnsureBucket(ctx context.Context, c Client, bucket, region string) error {
	exists, err := c.BucketExists(ctx, bucket)
	if err != nil {
		return fmt.Errorf("failed to check bucket %s: %w", bucket, err)
	}
	if exists {
		return nil
	}
	if err := c.MakeBucket(ctx, bucket, minio.MakeBucketOptions{Region: region}); err != nil {
		return fmt.Errorf("failed to create bucket %s: %w", bucket, err)
	}
	return nil
}

// ListKeys returns the sorted keys under prefix. When exts is non-empty only
// keys with one of those extensions (case-insensitive, with dot) are kept.
func ListKeys(ctx context.Context, c Client, bucket, prefix string, exts []string) ([]string, error) {
	var keys []string
	for obj := range c.ListObjects(ctx, bucket, minio.ListObjectsOptions{Prefix: prefix, Recursive: true}) {
		if obj.Err != nil {
			return nil, fmt.Errorf("failed to list %s/%s: %w", bucket, prefix, obj.Err)
		}
		if strings.HasSuffix(obj.Key, "/") {
			continue
		}
		if len(exts) > 0 && !hasExt(obj.Key, exts) {
			continue
		}
		keys = append(keys, obj.Key)
	}
	sort.Strings(keys)
	return keys, nil
}

func hasExt(key string, exts []string) bool {
	ext := strings.ToLower(path.Ext(key))
	for _, e := range exts {
		if strings.ToLower(e) == ext {
			return true
		}
	}
	return false
}

// RemovePrefix deletes every object under prefix and returns how many were
// removed.
func RemovePrefix(ctx context.Context, c Client, bucket, prefix string) (int, error) {
	keys, err := ListKeys(ctx, c, bucket, prefix, nil)
	if err != nil {
		return 0, err
	}
	if len(keys) == 0 {
		return 0, nil
	}

	objectsCh := make(chan minio.ObjectInfo, len(keys))
	for _, k := range keys {
		objectsCh <- minio.ObjectInfo{Key: k}
	}
	close(objectsCh)

	for rerr := range c.RemoveObjects(ctx, bucket, objectsCh, minio.RemoveObjectsOptions{}) {
		if rerr.Err != nil {
			return 0, fmt.Errorf("failed to remove %s: %w", rerr.ObjectName, rerr.Err)
		}
	}
	return len(keys), nil
}

// objectWriter streams writes into a PutObject call.
type objectWriter struct {
	pw   *io.PipeWriter
	done chan error
}

// NewObjectWriter returns a writer whose content is uploaded to bucket/key.
// The upload completes when Close returns. CloseWithError fails the upload
// so no partial object is stored.
func NewObjectWriter(ctx context.Context, c Client, bucket, key, contentType string) io.WriteCloser {
	pr, pw := io.Pipe()
	w := &objectWriter{pw: pw, done: make(chan error, 1)}
	go func() {
		_, err := c.PutObject(ctx, bucket, key, pr, -1, minio.PutObjectOptions{ContentType: contentType})
		_ = pr.CloseWithError(err)
		w.done <- err
	}()
	return w
}

func (w *objectWriter) Write(p []byte) (int, error) {
	return w.pw.Write(p)
}

func (w *objectWriter) Close() error {
	if err := w.pw.Close(); err != nil {
		return err
	}
	if err := <-w.done; err != nil {
		return fmt.Errorf("failed to upload object: %w", err)
	}
	return nil
}

func (w *objectWriter) CloseWithError(err error) error {
	if err == nil {
		err = io.ErrClosedPipe
	}
	_ = w.pw.CloseWithError(err)
	<-w.done
	return nil
}
