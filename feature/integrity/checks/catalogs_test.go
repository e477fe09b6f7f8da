package checks

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"dat-manager/core/storage/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const sampleDAT = `<?xml version="1.0"?>
<datafile>
	<header><name>Sample</name></header>
	<game name="g1"><rom name="a.bin" size="4" crc="11111111"/><rom name="b.bin" size="4" crc="22222222"/></game>
	<game name="g2"><rom name="c.bin" size="4" crc="33333333"/></game>
</datafile>
`

func body(s string) io.ReadCloser {
	return io.NopCloser(strings.NewReader(s))
}

func TestCheckCatalogs(t *testing.T) {
	client := new(mocks.Client)
	client.On("ListObjects", mock.Anything, "dats", mock.Anything).
		Return(mocks.Objects("dats/good.dat", "dats/broken.dat", "dats/missing.xml", "dats/notes.txt"))
	client.On("GetObject", mock.Anything, "dats", "dats/good.dat", mock.Anything).Return(body(sampleDAT), nil)
	client.On("GetObject", mock.Anything, "dats", "dats/broken.dat", mock.Anything).Return(body("plain text"), nil)
	client.On("GetObject", mock.Anything, "dats", "dats/missing.xml", mock.Anything).Return(nil, errors.New("no such key"))

	report, err := CheckCatalogs(context.Background(), client, "dats", "dats/", 2)
	require.NoError(t, err)

	assert.Equal(t, 3, report.Total)
	assert.Equal(t, 1, report.Valid)
	assert.Equal(t, 3, report.Items)
	assert.Equal(t, []string{"dats/notes.txt"}, report.Unknown)
	require.Len(t, report.Invalid, 2)
	assert.Equal(t, "dats/broken.dat", report.Invalid[0].Key)
	assert.Equal(t, "dats/missing.xml", report.Invalid[1].Key)
	assert.Contains(t, report.Invalid[1].Error, "no such key")
}

func TestCheckCatalogs_Empty(t *testing.T) {
	client := new(mocks.Client)
	client.On("ListObjects", mock.Anything, "dats", mock.Anything).Return(mocks.Objects())

	report, err := CheckCatalogs(context.Background(), client, "dats", "dats/", 0)
	require.NoError(t, err)
	assert.Zero(t, report.Total)
	assert.Empty(t, report.Invalid)
	assert.Empty(t, report.Unknown)
}
