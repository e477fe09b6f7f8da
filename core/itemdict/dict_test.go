package itemdict_test

import (
	"context"
	"testing"

	"dat-manager/core/datitems"
	"dat-manager/core/itemdict"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRom(machine, name string, crc, sha1 string) *datitems.Item {
	it := datitems.NewItem(datitems.ItemTypeRom, datitems.NewMachine(machine))
	it.Name = name
	it.Size = 1024
	if crc != "" {
		it.SetHash(datitems.HashCRC, crc)
	}
	if sha1 != "" {
		it.SetHash(datitems.HashSHA1, sha1)
	}
	return it
}

func sampleDict() *itemdict.Dict {
	d := itemdict.New()
	d.AddRange([]*datitems.Item{
		newRom("game-1", "rom-1", "deadbeef", "0000000fbbb37f8488100b1b4697012de631a5e6"),
		newRom("game-1", "rom-2", "deadbeef", "000000e948edbbb37f8488100b1b4697012de631"),
		newRom("game-2", "rom-3", "deadbeef", "00000ea4014ce66679e7e17d56ac510f67e39e26"),
		newRom("game-2", "rom-4", "deadbeef", "00000151d437442e74e5134023fab8bf694a2487"),
	})
	return d
}

func TestBucketBy(t *testing.T) {
	tests := []struct {
		name string
		key  itemdict.ItemKey
		want int
	}{
		{"Null", itemdict.KeyNull, 2},
		{"Machine", itemdict.KeyMachine, 2},
		{"CRC", itemdict.KeyCRC, 1},
		{"SHA1", itemdict.KeySHA1, 4},
		{"ItemType", itemdict.KeyItemType, 1},
		{"MD5 absent everywhere", itemdict.KeyMD5, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := sampleDict()
			require.NoError(t, d.BucketBy(context.Background(), tt.key, itemdict.DedupeNone))
			assert.Len(t, d.Keys(), tt.want)
			assert.Equal(t, 4, d.Len())
		})
	}
}

func TestBucketBy_MissingHashUsesSentinel(t *testing.T) {
	d := sampleDict()
	require.NoError(t, d.BucketBy(context.Background(), itemdict.KeyMD5, itemdict.DedupeNone))
	assert.Equal(t, []string{itemdict.NoHashKey}, d.Keys())
	assert.Len(t, d.Get(itemdict.NoHashKey), 4)
}

func TestBucketBy_Idempotent(t *testing.T) {
	d := sampleDict()
	ctx := context.Background()

	require.NoError(t, d.BucketBy(ctx, itemdict.KeySHA1, itemdict.DedupeNone))
	firstKeys := d.Keys()
	first := map[string][]*datitems.Item{}
	for _, k := range firstKeys {
		first[k] = d.Get(k)
	}

	require.NoError(t, d.BucketBy(ctx, itemdict.KeySHA1, itemdict.DedupeNone))
	assert.Equal(t, firstKeys, d.Keys())
	for _, k := range firstKeys {
		assert.Equal(t, first[k], d.Get(k))
	}

	// Switching strategies and back lands on the same membership.
	require.NoError(t, d.BucketBy(ctx, itemdict.KeyCRC, itemdict.DedupeNone))
	require.NoError(t, d.BucketBy(ctx, itemdict.KeySHA1, itemdict.DedupeNone))
	assert.Equal(t, firstKeys, d.Keys())
}

func TestBucketBy_Cancelled(t *testing.T) {
	d := sampleDict()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := d.BucketBy(ctx, itemdict.KeyCRC, itemdict.DedupeFull)
	require.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, itemdict.KeyNull, d.BucketedBy())
	assert.Len(t, d.Keys(), 2)
	for _, it := range d.Items() {
		assert.False(t, it.Remove)
	}
}

func TestBucketBy_Dedupe(t *testing.T) {
	ctx := context.Background()
	src0 := &datitems.Source{Index: 0, Name: "a.dat"}
	src1 := &datitems.Source{Index: 1, Name: "b.dat"}

	build := func() (*itemdict.Dict, []*datitems.Item) {
		a := newRom("game", "rom", "deadbeef", "")
		a.Source = src0
		b := newRom("game", "rom", "deadbeef", "1111111111111111111111111111111111111111")
		b.Source = src0
		c := newRom("game", "rom", "deadbeef", "")
		c.Source = src1
		d := itemdict.New()
		d.AddRange([]*datitems.Item{a, b, c})
		return d, []*datitems.Item{a, b, c}
	}

	t.Run("Full", func(t *testing.T) {
		d, items := build()
		require.NoError(t, d.BucketBy(ctx, itemdict.KeyCRC, itemdict.DedupeFull))

		assert.False(t, items[0].Remove)
		assert.Equal(t, "1111111111111111111111111111111111111111", items[0].Hash(datitems.HashSHA1))
		assert.True(t, items[1].Remove)
		assert.Equal(t, datitems.DupeInternalHash, items[1].DupeType)
		assert.True(t, items[2].Remove)
		assert.Equal(t, datitems.DupeExternalHash, items[2].DupeType)
		assert.True(t, items[0].DupeType.Has(datitems.DupeExternal))

		stats := d.Statistics()
		assert.Equal(t, int64(3), stats.TotalCount)
		assert.Equal(t, int64(2), stats.RemovedCount)
	})

	t.Run("Internal", func(t *testing.T) {
		d, items := build()
		require.NoError(t, d.BucketBy(ctx, itemdict.KeyCRC, itemdict.DedupeInternal))

		assert.False(t, items[0].Remove)
		assert.True(t, items[1].Remove)
		assert.False(t, items[2].Remove)
		assert.Equal(t, datitems.DupeNone, items[2].DupeType)
	})
}

func TestClearEmpty(t *testing.T) {
	d := sampleDict()
	d.Set("empty", nil)
	d.Set("also-empty", []*datitems.Item{})
	require.Len(t, d.Keys(), 4)

	d.ClearEmpty()
	assert.Equal(t, []string{"game-1", "game-2"}, d.Keys())

	d.ClearEmpty()
	assert.Equal(t, []string{"game-1", "game-2"}, d.Keys())
}

func TestClearMarked(t *testing.T) {
	d := itemdict.New()
	a := newRom("game-1", "rom-1", "deadbeef", "")
	b := newRom("game-1", "rom-2", "deadbeef", "")
	c := newRom("game-2", "rom-3", "deadbeef", "")
	c.Remove = true
	d.AddRange([]*datitems.Item{a, b, c})

	d.ClearMarked()
	assert.Len(t, d.Get("game-1"), 2)
	assert.Empty(t, d.Get("game-2"))
	assert.Contains(t, d.Keys(), "game-2")

	stats := d.Statistics()
	assert.Equal(t, int64(2), stats.TotalCount)
	assert.Equal(t, int64(0), stats.RemovedCount)
}

func TestGetDuplicates(t *testing.T) {
	d := itemdict.New()
	d.AddRange([]*datitems.Item{
		newRom("game-1", "rom-1", "deadbeef", ""),
		newRom("game-1", "rom-2", "deadbeef", ""),
	})

	t.Run("Found", func(t *testing.T) {
		probe := newRom("game-1", "rom-1", "deadbeef", "")
		assert.Len(t, d.GetDuplicates(probe), 1)
		assert.True(t, d.HasDuplicates(probe))
	})

	t.Run("SizeMismatch", func(t *testing.T) {
		probe := newRom("game-1", "rom-1", "deadbeef", "")
		probe.Size = 2048
		assert.Empty(t, d.GetDuplicates(probe))
		assert.False(t, d.HasDuplicates(probe))
	})

	t.Run("MissingBucket", func(t *testing.T) {
		probe := newRom("nowhere", "rom-1", "deadbeef", "")
		assert.Empty(t, d.GetDuplicates(probe))
	})

	t.Run("HashKeyIgnoresName", func(t *testing.T) {
		require.NoError(t, d.BucketBy(context.Background(), itemdict.KeyCRC, itemdict.DedupeNone))
		probe := newRom("game-9", "other", "deadbeef", "")
		assert.Len(t, d.GetDuplicates(probe), 2)
	})
}

func TestStatistics(t *testing.T) {
	d := itemdict.New()
	a := newRom("game", "rom-1", "deadbeef", "")
	b := newRom("game", "rom-2", "deadbeef", "")
	d.AddRange([]*datitems.Item{a, b})
	assert.Equal(t, int64(2), d.GetItemCount(datitems.ItemTypeRom))

	b.Remove = true
	d.RecalculateStats()
	stats := d.Statistics()
	assert.Equal(t, int64(2), stats.TotalCount)
	assert.Equal(t, int64(1), stats.RemovedCount)
	assert.Equal(t, int64(1), stats.ItemCounts[datitems.ItemTypeRom])

	d.ClearMarked()
	assert.Equal(t, int64(1), d.GetItemCount(datitems.ItemTypeRom))

	d.RecalculateStats()
	again := d.Statistics()
	assert.Equal(t, int64(1), again.TotalCount)
	assert.Equal(t, int64(1), again.ItemCounts[datitems.ItemTypeRom])
	assert.Equal(t, int64(1024), again.TotalSize)
	assert.Equal(t, int64(1), again.HashCounts[datitems.HashCRC])

	d.ResetStatistics()
	assert.Equal(t, int64(0), d.GetItemCount(datitems.ItemTypeRom))
}

func TestSets_Ordering(t *testing.T) {
	d := itemdict.New()
	mk := func(machine string, src int) *datitems.Item {
		it := newRom(machine, "r", "", "")
		it.Source = &datitems.Source{Index: src}
		return it
	}
	d.AddRange([]*datitems.Item{mk("game10", 0), mk("game2", 1), mk("game2", 0), mk("Game1", 0)})

	sets := d.Sets(false)
	require.Len(t, sets, 4)
	assert.Equal(t, []string{"Game1", "game2", "game10", "game2"},
		[]string{sets[0].Machine.Name, sets[1].Machine.Name, sets[2].Machine.Name, sets[3].Machine.Name})
	assert.Equal(t, 1, sets[3].Source)
}

func TestSets_IgnoreBlanks(t *testing.T) {
	d := itemdict.New()
	blank := datitems.NewItem(datitems.ItemTypeBlank, datitems.NewMachine("empty"))
	zero := newRom("game", "zero", "", "")
	zero.Size = 0
	d.AddRange([]*datitems.Item{blank, zero, newRom("game", "real", "", "")})

	assert.Len(t, d.Sets(false), 2)
	sets := d.Sets(true)
	require.Len(t, sets, 1)
	assert.Len(t, sets[0].Items, 1)
}
