package update

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"dat-manager/core/reconcile"
	"dat-manager/core/storage/mocks"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func datXML(name string, games ...string) string {
	var b strings.Builder
	b.WriteString(`<?xml version="1.0"?>` + "\n<datafile>\n")
	b.WriteString("\t<header><name>" + name + "</name><description>" + name + "</description></header>\n")
	for _, g := range games {
		b.WriteString(g)
	}
	b.WriteString("</datafile>\n")
	return b.String()
}

func gameXML(name, rom, crc string) string {
	return `	<game name="` + name + `"><description>` + name + `</description>` +
		`<rom name="` + rom + `" size="4" crc="` + crc + `"/></game>` + "\n"
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
	require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	return p
}

func newLocalService() *Service {
	return NewService(Options{
		Reconcile: reconcile.Config{Key: "crc", CacheTTL: time.Minute, OutputFormat: "logiqx"},
		Logger:    zap.NewNop(),
	})
}

func listDir(t *testing.T, dir string) []string {
	t.Helper()
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	return names
}

func TestService_Cascade(t *testing.T) {
	in := t.TempDir()
	out := t.TempDir()
	a := writeFile(t, in, "a.dat", datXML("A", gameXML("g1", "a.bin", "11111111"), gameXML("g2", "b.bin", "22222222")))
	b := writeFile(t, in, "b.dat", datXML("B", gameXML("g2", "b.bin", "22222222"), gameXML("g3", "c.bin", "33333333")))

	svc := newLocalService()
	resp, err := svc.Run(context.Background(), Request{Mode: ModeCascade, Inputs: []string{a, b}}, reconcile.DirSink{Dir: out})
	require.NoError(t, err)

	assert.Equal(t, 2, resp.Written)
	require.Len(t, resp.Outputs, 2)
	assert.Equal(t, int64(2), resp.Outputs[0].Items)
	assert.Equal(t, int64(1), resp.Outputs[1].Items)
	assert.ElementsMatch(t, []string{"a.dat", "b.dat"}, listDir(t, out))

	data, err := os.ReadFile(filepath.Join(out, "b.dat"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "33333333")
	assert.NotContains(t, string(data), "22222222")
}

func TestService_ReverseCascade(t *testing.T) {
	in := t.TempDir()
	a := writeFile(t, in, "a.dat", datXML("A", gameXML("g1", "a.bin", "11111111")))
	b := writeFile(t, in, "b.dat", datXML("B", gameXML("g1", "a.bin", "11111111")))

	plan, err := newLocalService().Plan(context.Background(), Request{Mode: ModeReverseCascade, Inputs: []string{a, b}})
	require.NoError(t, err)
	require.Len(t, plan.Outputs, 2)
	assert.Equal(t, "b", plan.Outputs[0].Name)
	assert.True(t, plan.Outputs[0].Dat.HasWritable())
	assert.False(t, plan.Outputs[1].Dat.HasWritable())
}

func TestService_MergeDirectorySuperDAT(t *testing.T) {
	in := t.TempDir()
	out := t.TempDir()
	writeFile(t, in, "arcade/a.dat", datXML("A", gameXML("g1", "a.bin", "11111111")))
	writeFile(t, in, "console/b.json", `{"header":{"name":"B"},"machines":[{"name":"g2","items":[{"type":"rom","name":"b.bin","size":4,"crc":"22222222"}]}]}`)
	writeFile(t, in, "notes.txt", "ignored")

	resp, err := newLocalService().Run(context.Background(), Request{
		Mode:     ModeMerge,
		Inputs:   []string{in},
		SuperDAT: true,
		Format:   "yaml",
	}, reconcile.DirSink{Dir: out})
	require.NoError(t, err)
	assert.Equal(t, 2, resp.Summary.Inputs)
	assert.Equal(t, 1, resp.Written)

	files := listDir(t, out)
	require.Len(t, files, 1)
	assert.True(t, strings.HasSuffix(files[0], ".yaml"))
	data, err := os.ReadFile(filepath.Join(out, files[0]))
	require.NoError(t, err)
	assert.Contains(t, string(data), "arcade/a/g1")
}

func TestService_EmptyOutputsAreNotAnError(t *testing.T) {
	in := t.TempDir()
	a := writeFile(t, in, "a.dat", datXML("A", gameXML("g1", "a.bin", "11111111")))
	b := writeFile(t, in, "b.dat", datXML("B", gameXML("g2", "b.bin", "22222222")))

	resp, err := newLocalService().Run(context.Background(), Request{Mode: ModeDupes, Inputs: []string{a, b}}, reconcile.DirSink{Dir: t.TempDir()})
	require.NoError(t, err)
	assert.Equal(t, 0, resp.Written)
	assert.Equal(t, 0, resp.Summary.Writable)
}

func TestService_AgainstAndBaseReplace(t *testing.T) {
	in := t.TempDir()
	base := writeFile(t, in, "base.dat", datXML("Base", gameXML("g1", "renamed.bin", "11111111")))
	cand := writeFile(t, in, "cand.dat", datXML("Cand", gameXML("g1", "a.bin", "11111111"), gameXML("g2", "b.bin", "22222222")))
	svc := newLocalService()
	ctx := context.Background()

	plan, err := svc.Plan(ctx, Request{Mode: ModeAgainst, Inputs: []string{cand}, Bases: []string{base}})
	require.NoError(t, err)
	require.Len(t, plan.Outputs, 1)
	assert.Equal(t, int64(1), plan.Summary.Items)
	assert.Equal(t, int64(1), plan.Summary.Removed)

	plan, err = svc.Plan(ctx, Request{Mode: ModeBaseReplace, Inputs: []string{cand}, Bases: []string{base}})
	require.NoError(t, err)
	names := map[string]bool{}
	for _, it := range plan.Outputs[0].Dat.Items.Items() {
		names[it.Name] = true
	}
	assert.True(t, names["renamed.bin"])
	assert.True(t, names["b.bin"])

	_, err = svc.Plan(ctx, Request{Mode: ModeAgainst, Inputs: []string{cand}})
	assert.ErrorIs(t, err, ErrNoBases)
}

func TestService_Split(t *testing.T) {
	in := t.TempDir()
	a := writeFile(t, in, "a.dat", datXML("A", gameXML("g1", "a.bin", "11111111"), gameXML("g2", "b.chd", "22222222")))

	plan, err := newLocalService().Plan(context.Background(), Request{Mode: ModeSplit, Inputs: []string{a}, Extensions: []string{"bin"}})
	require.NoError(t, err)
	require.Len(t, plan.Outputs, 2)
	assert.Equal(t, int64(2), plan.Summary.Items)

	_, err = newLocalService().Plan(context.Background(), Request{Mode: ModeSplit, Inputs: []string{a}})
	assert.ErrorIs(t, err, ErrInvalidRequest)
}

func TestService_RequestErrors(t *testing.T) {
	in := t.TempDir()
	a := writeFile(t, in, "a.dat", datXML("A", gameXML("g1", "a.bin", "11111111")))
	svc := newLocalService()
	ctx := context.Background()

	tests := []struct {
		name string
		req  Request
		want error
	}{
		{"UnknownMode", Request{Mode: "shuffle", Inputs: []string{a}}, ErrUnknownMode},
		{"NoInputs", Request{Mode: ModeMerge}, ErrNoInputs},
		{"BadKey", Request{Mode: ModeMerge, Inputs: []string{a}, Key: "sha3"}, ErrInvalidRequest},
		{"BadDedupe", Request{Mode: ModeMerge, Inputs: []string{a}, Dedupe: "some"}, ErrInvalidRequest},
		{"BadField", Request{Mode: ModeBaseReplace, Inputs: []string{a}, Bases: []string{a}, Fields: []string{"colour"}}, ErrInvalidRequest},
		{"MissingFile", Request{Mode: ModeMerge, Inputs: []string{filepath.Join(in, "nope.dat")}}, os.ErrNotExist},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Plan(ctx, tt.req)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestService_StorageRoundTrip(t *testing.T) {
	ctx := context.Background()
	client := new(mocks.Client)

	client.On("ListObjects", mock.Anything, "dats", minio.ListObjectsOptions{Prefix: "dats/", Recursive: true}).
		Return(mocks.Objects("dats/a.dat", "dats/readme.md"))
	client.On("GetObject", mock.Anything, "dats", "dats/a.dat", mock.Anything).
		Return(io.NopCloser(strings.NewReader(datXML("A", gameXML("g1", "a.bin", "11111111")))), nil).Once()
	client.On("BucketExists", mock.Anything, "dats").Return(true, nil)
	client.On("ListObjects", mock.Anything, "dats", minio.ListObjectsOptions{Prefix: "out/", Recursive: true}).
		Return(mocks.Objects("out/old.dat"))
	client.On("RemoveObjects", mock.Anything, "dats", mock.Anything, mock.Anything).Return(nil)
	client.On("PutObject", mock.Anything, "dats", "out/run-MergeDAT.dat", mock.Anything, int64(-1), minio.PutObjectOptions{ContentType: "application/xml"}).
		Return(minio.UploadInfo{}, nil)

	svc := NewService(Options{
		Client:       client,
		Bucket:       "dats",
		OutputPrefix: "out/",
		Reconcile:    reconcile.Config{CacheTTL: time.Minute},
		Logger:       zap.NewNop(),
	})

	req := Request{Mode: ModeMerge, Inputs: []string{"s3://dats/"}, Prefix: "run-", Clean: true}
	resp, err := svc.Run(ctx, req, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, resp.Written)
	assert.Equal(t, 1, resp.Cleaned)

	// The second run is served from the source cache.
	req.Clean = false
	req.Inputs = []string{"s3://dats/a.dat"}
	_, err = svc.Run(ctx, req, nil)
	require.NoError(t, err)
	client.AssertNumberOfCalls(t, "GetObject", 1)
	client.AssertNumberOfCalls(t, "PutObject", 2)
}
