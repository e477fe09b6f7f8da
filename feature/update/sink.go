package update

import (
	"context"
	"io"
	"path"

	"dat-manager/core/reconcile"
	"dat-manager/core/storage"
)

// ObjectSink uploads outputs to object storage under Prefix.
type ObjectSink struct {
	Client storage.Client
	Bucket string
	Prefix string
}

var contentTypes = map[string]string{
	".dat":  "application/xml",
	".xml":  "application/xml",
	".json": "application/json",
	".yaml": "application/yaml",
	".yml":  "application/yaml",
}

// Create implements reconcile.Sink.
func (s ObjectSink) Create(ctx context.Context, name string) (io.WriteCloser, error) {
	key := path.Join(s.Prefix, path.Base(name))
	return storage.NewObjectWriter(ctx, s.Client, s.Bucket, key, contentTypes[path.Ext(name)]), nil
}

var _ reconcile.Sink = ObjectSink{}
