package storage_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"

	"dat-manager/core/storage"
	"dat-manager/core/storage/mocks"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestNewClient(t *testing.T) {
	t.Run("ValidConfig", func(t *testing.T) {
		cfg := storage.Config{
			Endpoint:  "localhost:9000",
			AccessKey: "testkey",
			SecretKey: "testsecret",
			Bucket:    "dats",
			Region:    "us-east-1",
		}

		client, err := storage.NewClient(cfg)
		assert.NoError(t, err)
		assert.NotNil(t, client)
	})

	t.Run("EndpointWithScheme", func(t *testing.T) {
		for _, endpoint := range []string{"http://localhost:9000", "https://s3.amazonaws.com"} {
			client, err := storage.NewClient(storage.Config{Endpoint: endpoint, AccessKey: "k", SecretKey: "s"})
			assert.NoError(t, err, endpoint)
			assert.NotNil(t, client)
		}
	})
}

func TestEnsureBucket(t *testing.T) {
	ctx := context.Background()

	t.Run("Exists", func(t *testing.T) {
		m := new(mocks.Client)
		m.On("BucketExists", ctx, "dats").Return(true, nil)

		require.NoError(t, storage.EnsureBucket(ctx, m, "dats", ""))
		m.AssertNotCalled(t, "MakeBucket", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Creates", func(t *testing.T) {
		m := new(mocks.Client)
		m.On("BucketExists", ctx, "dats").Return(false, nil)
		m.On("MakeBucket", ctx, "dats", minio.MakeBucketOptions{Region: "eu"}).Return(nil)

		require.NoError(t, storage.EnsureBucket(ctx, m, "dats", "eu"))
		m.AssertExpectations(t)
	})

	t.Run("CheckFails", func(t *testing.T) {
		m := new(mocks.Client)
		m.On("BucketExists", ctx, "dats").Return(false, errors.New("down"))

		assert.Error(t, storage.EnsureBucket(ctx, m, "dats", ""))
	})
}

func TestListKeys(t *testing.T) {
	ctx := context.Background()
	m := new(mocks.Client)
	m.On("ListObjects", ctx, "dats", minio.ListObjectsOptions{Prefix: "dats/", Recursive: true}).
		Return(mocks.Objects("dats/b.DAT", "dats/a.dat", "dats/notes.txt", "dats/sub/"))

	keys, err := storage.ListKeys(ctx, m, "dats", "dats/", []string{".dat"})
	require.NoError(t, err)
	assert.Equal(t, []string{"dats/a.dat", "dats/b.DAT"}, keys)
}

func TestRemovePrefix(t *testing.T) {
	ctx := context.Background()
	m := new(mocks.Client)
	m.On("ListObjects", ctx, "dats", mock.Anything).Return(mocks.Objects("out/a.dat", "out/b.dat"))
	m.On("RemoveObjects", ctx, "dats", mock.Anything, minio.RemoveObjectsOptions{}).Return(nil)

	n, err := storage.RemovePrefix(ctx, m, "dats", "out/")
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	m.AssertExpectations(t)
}

func TestObjectWriter(t *testing.T) {
	ctx := context.Background()

	t.Run("Uploads", func(t *testing.T) {
		var got bytes.Buffer
		m := new(mocks.Client)
		m.On("PutObject", ctx, "dats", "out/x.dat", mock.Anything, int64(-1), minio.PutObjectOptions{ContentType: "application/xml"}).
			Run(func(args mock.Arguments) {
				_, _ = io.Copy(&got, args.Get(3).(io.Reader))
			}).
			Return(minio.UploadInfo{}, nil)

		w := storage.NewObjectWriter(ctx, m, "dats", "out/x.dat", "application/xml")
		_, err := w.Write([]byte("<datafile/>"))
		require.NoError(t, err)
		require.NoError(t, w.Close())
		assert.Equal(t, "<datafile/>", got.String())
	})

	t.Run("UploadFails", func(t *testing.T) {
		m := new(mocks.Client)
		m.On("PutObject", ctx, "dats", "out/x.dat", mock.Anything, int64(-1), mock.Anything).
			Return(minio.UploadInfo{}, errors.New("denied"))

		w := storage.NewObjectWriter(ctx, m, "dats", "out/x.dat", "")
		_, _ = w.Write([]byte("data"))
		assert.Error(t, w.Close())
	})

	t.Run("AbortStoresNothing", func(t *testing.T) {
		m := new(mocks.Client)
		m.On("PutObject", ctx, "dats", "out/x.dat", mock.Anything, int64(-1), mock.Anything).
			Return(minio.UploadInfo{}, nil)

		w := storage.NewObjectWriter(ctx, m, "dats", "out/x.dat", "")
		_, err := w.Write([]byte("<datafile><machine"))
		require.NoError(t, err)
		aborter, ok := w.(interface{ CloseWithError(error) error })
		require.True(t, ok)
		require.NoError(t, aborter.CloseWithError(errors.New("disk full")))
		m.AssertNotCalled(t, "PutObject", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}
