package reconcile

import (
	"context"
	"fmt"
	"sort"
	"sync/atomic"
	"testing"

	"dat-manager/core/datfile"
	"dat-manager/core/datitems"

	"github.com/stretchr/testify/require"
)

// game builds a single-rom machine whose rom is identified by crc.
func game(name, crc string) *datitems.Item {
	it := datitems.NewItem(datitems.ItemTypeRom, datitems.NewMachine(name))
	it.Name = name + ".bin"
	it.Size = 4
	it.SetHash(datitems.HashCRC, crc)
	return it
}

// memLoader serves fixed item lists keyed by input path.
type memLoader struct {
	sources map[string][]*datitems.Item
	calls   atomic.Int32
	fail    map[string]error
}

func newMemLoader() *memLoader {
	return &memLoader{sources: map[string][]*datitems.Item{}, fail: map[string]error{}}
}

func (m *memLoader) add(path string, items ...*datitems.Item) Input {
	m.sources[path] = items
	return Input{Path: path}
}

func (m *memLoader) Load(ctx context.Context, in Input) (*datfile.Stream, error) {
	m.calls.Add(1)
	if err := m.fail[in.Path]; err != nil {
		return nil, err
	}
	items, ok := m.sources[in.Path]
	if !ok {
		return nil, fmt.Errorf("no such source %s", in.Path)
	}
	clones := make([]*datitems.Item, len(items))
	for i, it := range items {
		clones[i] = it.Clone()
	}
	return datfile.FromItems(datfile.Header{Name: in.Stem()}, clones), nil
}

func populate(t *testing.T, loader Loader, inputs ...Input) *datfile.DatFile {
	t.Helper()
	dat := datfile.New(datfile.Header{})
	_, err := Populate(context.Background(), dat, inputs, loader, Options{Workers: 2})
	require.NoError(t, err)
	return dat
}

// liveMachines lists the set names of an output's live items.
func liveMachines(out Output) []string {
	seen := map[string]struct{}{}
	var names []string
	for _, it := range out.Dat.Items.Items() {
		if it.Remove {
			continue
		}
		if _, ok := seen[it.Machine.Name]; ok {
			continue
		}
		seen[it.Machine.Name] = struct{}{}
		names = append(names, it.Machine.Name)
	}
	sort.Strings(names)
	return names
}
