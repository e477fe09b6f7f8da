package checks

import (
	"context"
	"fmt"

	"dat-manager/core/datfile"
	"dat-manager/core/formats"
	"dat-manager/core/storage"

	"github.com/minio/minio-go/v7"
	"golang.org/x/sync/errgroup"
)

// CatalogReport is the result of parsing every stored input catalog.
type CatalogReport struct {
	Prefix  string          `json:"prefix"`
	Total   int             `json:"total"`
	Valid   int             `json:"valid"`
	Items   int             `json:"items"`
	Invalid []InvalidObject `json:"invalid"`
	Unknown []string        `json:"unknown"`
}

// InvalidObject is a catalog that failed to parse.
type InvalidObject struct {
	Key   string `json:"key"`
	Error string `json:"error"`
}

type catalogResult struct {
	items int
	err   error
}

// CheckCatalogs parses every object under prefix. Objects with no known
// catalog extension are listed as unknown.
func CheckCatalogs(ctx context.Context, client storage.Client, bucket, prefix string, workers int) (*CatalogReport, error) {
	keys, err := storage.ListKeys(ctx, client, bucket, prefix, nil)
	if err != nil {
		return nil, err
	}

	report := &CatalogReport{Prefix: prefix, Invalid: []InvalidObject{}, Unknown: []string{}}
	results := make([]catalogResult, len(keys))
	known := make([]bool, len(keys))

	if workers <= 0 {
		workers = 4
	}
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, key := range keys {
		f, err := formats.ForPath(key)
		if err != nil {
			continue
		}
		known[i] = true
		g.Go(func() error {
			n, err := parseObject(gctx, client, bucket, key, f)
			results[i] = catalogResult{items: n, err: err}
			// A broken catalog is reported, only cancellation stops the run
			return gctx.Err()
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	for i, key := range keys {
		if !known[i] {
			report.Unknown = append(report.Unknown, key)
			continue
		}
		report.Total++
		if results[i].err != nil {
			report.Invalid = append(report.Invalid, InvalidObject{Key: key, Error: results[i].err.Error()})
			continue
		}
		report.Valid++
		report.Items += results[i].items
	}
	return report, nil
}

func parseObject(ctx context.Context, client storage.Client, bucket, key string, f formats.Format) (int, error) {
	obj, err := client.GetObject(ctx, bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return 0, fmt.Errorf("failed to get object: %w", err)
	}
	defer obj.Close()

	stream, err := f.Parse(ctx, obj)
	if err != nil {
		return 0, err
	}
	items, err := datfile.Collect(ctx, stream, nil)
	if err != nil {
		return 0, err
	}
	return len(items), nil
}
