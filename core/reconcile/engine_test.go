package reconcile

import (
	"context"
	"errors"
	"os"
	"testing"

	"dat-manager/core/datfile"
	"dat-manager/core/datitems"
	"dat-manager/core/formats"
	"dat-manager/core/itemdict"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInput_Names(t *testing.T) {
	in := Input{Path: "/dats/arcade/sub/set.dat", Parent: "/dats/arcade"}
	assert.Equal(t, "set", in.Stem())
	assert.Equal(t, "sub/set", in.Relative())

	assert.Equal(t, "set", Input{Path: "/elsewhere/set.xml"}.Relative())
	assert.Equal(t, "key", Input{Path: "s3://bucket/dir/key.dat"}.Stem())
}

func TestPopulate(t *testing.T) {
	loader := newMemLoader()
	a := loader.add("a.dat", game("g1", "11111111"), game("g2", "22222222"))
	b := loader.add("b.dat", game("g3", "33333333"))

	dat := datfile.New(datfile.Header{})
	headers, err := Populate(context.Background(), dat, []Input{a, b}, loader, Options{Workers: 2})
	require.NoError(t, err)
	require.Len(t, headers, 2)
	assert.Equal(t, "a", headers[0].Name)

	items := dat.Items.Items()
	require.Len(t, items, 3)
	assert.Equal(t, []int{0, 0, 1}, []int{items[0].SourceIndex(), items[1].SourceIndex(), items[2].SourceIndex()})
	assert.Equal(t, "g1", items[0].Machine.Name)
	assert.Equal(t, "b.dat", items[2].Source.Name)

	t.Run("LoadErrorLeavesDatUntouched", func(t *testing.T) {
		boom := errors.New("boom")
		loader.fail["b.dat"] = boom
		defer delete(loader.fail, "b.dat")

		fresh := datfile.New(datfile.Header{})
		_, err := Populate(context.Background(), fresh, []Input{a, b}, loader, Options{})
		require.ErrorIs(t, err, boom)
		assert.Equal(t, 0, fresh.Items.Len())
	})

	t.Run("NoInputs", func(t *testing.T) {
		fresh := datfile.New(datfile.Header{})
		headers, err := Populate(context.Background(), fresh, nil, loader, Options{})
		require.NoError(t, err)
		assert.Empty(t, headers)
	})
}

func TestDiffCascade(t *testing.T) {
	loader := newMemLoader()
	s0 := loader.add("s0.dat", game("g1", "11111111"), game("g2", "22222222"))
	s1 := loader.add("s1.dat", game("g2", "22222222"), game("g3", "33333333"))
	dat := populate(t, loader, s0, s1)

	outputs, err := DiffCascade(context.Background(), dat, []Input{s0, s1}, CascadeOptions{})
	require.NoError(t, err)
	require.Len(t, outputs, 2)

	assert.Equal(t, "s0", outputs[0].Name)
	assert.Equal(t, []string{"g1", "g2"}, liveMachines(outputs[0]))
	assert.Equal(t, []string{"g3"}, liveMachines(outputs[1]))

	t.Run("SkipFirst", func(t *testing.T) {
		outputs, err := DiffCascade(context.Background(), dat, []Input{s0, s1}, CascadeOptions{SkipFirst: true})
		require.NoError(t, err)
		require.Len(t, outputs, 1)
		assert.Equal(t, 1, outputs[0].Source)
		assert.Equal(t, []string{"g3"}, liveMachines(outputs[0]))
	})

	t.Run("Reverse", func(t *testing.T) {
		rev := populate(t, loader, s1, s0)
		outputs, err := DiffCascade(context.Background(), rev, []Input{s1, s0}, CascadeOptions{})
		require.NoError(t, err)
		assert.Equal(t, []string{"g2", "g3"}, liveMachines(outputs[0]))
		assert.Equal(t, []string{"g1"}, liveMachines(outputs[1]))
	})

	t.Run("Cancelled", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := DiffCascade(ctx, dat, []Input{s0, s1}, CascadeOptions{})
		assert.ErrorIs(t, err, context.Canceled)
	})

	t.Run("Empty", func(t *testing.T) {
		outputs, err := DiffCascade(context.Background(), datfile.New(datfile.Header{}), nil, CascadeOptions{})
		require.NoError(t, err)
		assert.Empty(t, outputs)
	})
}

func TestDiffCascade_HashUpgrade(t *testing.T) {
	loader := newMemLoader()
	richer := game("g1", "11111111")
	richer.SetHash(datitems.HashSHA1, "0123456789abcdef0123456789abcdef01234567")
	s0 := loader.add("s0.dat", game("g1", "11111111"))
	s1 := loader.add("s1.dat", richer)
	dat := populate(t, loader, s0, s1)

	outputs, err := DiffCascade(context.Background(), dat, []Input{s0, s1}, CascadeOptions{})
	require.NoError(t, err)

	items := outputs[0].Dat.Items.Items()
	require.Len(t, items, 1)
	assert.Equal(t, "0123456789abcdef0123456789abcdef01234567", items[0].Hash(datitems.HashSHA1))
	assert.True(t, items[0].DupeType.Has(datitems.DupeExternal))
	assert.Equal(t, 0, outputs[1].Dat.Items.Len())

	// The source collection is not modified.
	for _, it := range dat.Items.Items() {
		assert.False(t, it.Remove)
	}
}

func TestDiffDuplicatesAndNoDuplicates(t *testing.T) {
	loader := newMemLoader()
	s0 := loader.add("s0.dat", game("g1", "11111111"))
	s1 := loader.add("s1.dat", game("g1", "11111111"))
	s2 := loader.add("s2.dat", game("g2", "22222222"))
	inputs := []Input{s0, s1, s2}
	dat := populate(t, loader, inputs...)

	dupes, err := DiffDuplicates(context.Background(), dat, inputs, Options{})
	require.NoError(t, err)
	assert.Equal(t, 1, dupes.Groups)
	assert.Equal(t, []string{"g1 (s0)", "g1 (s1)"}, liveMachines(*dupes))
	for _, it := range dupes.Dat.Items.Items() {
		assert.True(t, it.DupeType.Has(datitems.DupeExternal))
	}

	unique, err := DiffNoDuplicates(context.Background(), dat, inputs, Options{})
	require.NoError(t, err)
	assert.Equal(t, 1, unique.Groups)
	assert.Equal(t, []string{"g2 (s2)"}, liveMachines(*unique))
}

func TestDiffDuplicates_Strict(t *testing.T) {
	loader := newMemLoader()
	full := func(name string) *datitems.Item {
		it := game(name, "11111111")
		for _, kind := range it.Type.HashKinds() {
			if kind != datitems.HashCRC {
				it.SetHash(kind, "ab")
			}
		}
		return it
	}
	s0 := loader.add("s0.dat", game("g1", "11111111"), full("g2"))
	s1 := loader.add("s1.dat", game("g1", "11111111"), full("g2"))
	inputs := []Input{s0, s1}
	dat := populate(t, loader, inputs...)

	loose, err := DiffDuplicates(context.Background(), dat, inputs, Options{})
	require.NoError(t, err)
	assert.Equal(t, 1, loose.Groups)

	strict, err := DiffDuplicates(context.Background(), dat, inputs, Options{Strict: true})
	require.NoError(t, err)
	assert.Equal(t, 1, strict.Groups)
	assert.Equal(t, []string{"g2 (s0)", "g2 (s1)"}, liveMachines(*strict))

	unique, err := DiffNoDuplicates(context.Background(), dat, inputs, Options{Strict: true})
	require.NoError(t, err)
	assert.Equal(t, []string{"g1 (s0)", "g1 (s1)"}, liveMachines(*unique))
}

func TestDiffIndividuals(t *testing.T) {
	loader := newMemLoader()
	s0 := loader.add("s0.dat", game("g1", "11111111"), game("g1", "11111111"), game("g2", "22222222"))
	s1 := loader.add("s1.dat", game("g1", "11111111"))
	inputs := []Input{s0, s1}
	dat := populate(t, loader, inputs...)

	outputs, err := DiffIndividuals(context.Background(), dat, inputs, Options{})
	require.NoError(t, err)
	require.Len(t, outputs, 2)
	assert.Equal(t, 2, outputs[0].Dat.Items.Len())
	assert.Equal(t, []string{"g1", "g2"}, liveMachines(outputs[0]))
	assert.Equal(t, []string{"g1"}, liveMachines(outputs[1]))
}

func TestSourceNames(t *testing.T) {
	assert.Equal(t, []string{"a", "b"}, sourceNames([]Input{{Path: "x/a.dat"}, {Path: "y/b.dat"}}))
	assert.Equal(t,
		[]string{"nintendo - snes", "sega - snes", "other"},
		sourceNames([]Input{
			{Path: "dats/nintendo/snes.dat", Parent: "dats"},
			{Path: "dats/sega/snes.dat", Parent: "dats"},
			{Path: "dats/other.dat", Parent: "dats"},
		}),
	)
	assert.Equal(t, []string{"0 - snes", "1 - snes"}, sourceNames([]Input{{Path: "nintendo/snes.dat"}, {Path: "sega/snes.dat"}}))
}

func TestSameStemInputs(t *testing.T) {
	loader := newMemLoader()
	a := loader.add("nintendo/snes.dat", game("g1", "11111111"), game("g2", "22222222"))
	b := loader.add("sega/snes.dat", game("g1", "11111111"), game("g3", "33333333"))
	inputs := []Input{a, b}
	dat := populate(t, loader, inputs...)

	t.Run("Individuals", func(t *testing.T) {
		outputs, err := DiffIndividuals(context.Background(), dat, inputs, Options{})
		require.NoError(t, err)
		require.Len(t, outputs, 2)
		assert.NotEqual(t, outputs[0].Name, outputs[1].Name)

		dir := t.TempDir()
		written, err := ApplyPlan(context.Background(), NewPlan("individuals", 2, outputs), DirSink{Dir: dir}, ApplyOptions{Format: formats.Logiqx{}})
		require.NoError(t, err)
		assert.Equal(t, 2, written)
		entries, err := os.ReadDir(dir)
		require.NoError(t, err)
		assert.Len(t, entries, 2)
	})

	t.Run("DuplicateSuffixes", func(t *testing.T) {
		dupes, err := DiffDuplicates(context.Background(), dat, inputs, Options{})
		require.NoError(t, err)
		assert.Equal(t, []string{"g1 (0 - snes)", "g1 (1 - snes)"}, liveMachines(*dupes))
	})

	t.Run("Cascade", func(t *testing.T) {
		outputs, err := DiffCascade(context.Background(), dat, inputs, CascadeOptions{})
		require.NoError(t, err)
		require.Len(t, outputs, 2)
		assert.Equal(t, "0 - snes", outputs[0].Name)
		assert.Equal(t, "1 - snes", outputs[1].Name)
	})
}

func TestDiffAll(t *testing.T) {
	loader := newMemLoader()
	s0 := loader.add("s0.dat", game("g1", "11111111"), game("g2", "22222222"))
	s1 := loader.add("s1.dat", game("g1", "11111111"), game("g3", "33333333"))
	inputs := []Input{s0, s1}
	dat := populate(t, loader, inputs...)

	outputs, err := DiffAll(context.Background(), dat, inputs, Options{})
	require.NoError(t, err)
	require.Len(t, outputs, 4)

	assert.Contains(t, outputs[0].Name, "(No Duplicates)")
	assert.Equal(t, []string{"g2 (s0)", "g3 (s1)"}, liveMachines(outputs[0]))
	assert.Contains(t, outputs[1].Name, "(Duplicates)")
	assert.Equal(t, []string{"g1 (s0)", "g1 (s1)"}, liveMachines(outputs[1]))
	assert.Equal(t, "s0 (Only)", outputs[2].Name)
	assert.Equal(t, []string{"g2"}, liveMachines(outputs[2]))
	assert.Equal(t, []string{"g3"}, liveMachines(outputs[3]))
}

func TestMerge(t *testing.T) {
	loader := newMemLoader()
	parentItem := game("parent", "11111111")
	clone := game("clone", "44444444")
	clone.Machine.CloneOf = "parent"

	a := loader.add("/dats/arcade/a.dat", parentItem, clone)
	b := loader.add("/dats/arcade/sub/b.dat", game("parent", "11111111"))
	a.Parent, b.Parent = "/dats", "/dats"
	inputs := []Input{a, b}
	dat := populate(t, loader, inputs...)

	t.Run("Plain", func(t *testing.T) {
		out, err := Merge(context.Background(), dat, inputs, MergeOptions{})
		require.NoError(t, err)
		assert.Equal(t, 3, out.Dat.Items.Len())
		assert.Equal(t, "MergeDAT", out.Dat.Header.Name)
	})

	t.Run("SuperDAT", func(t *testing.T) {
		out, err := Merge(context.Background(), dat, inputs, MergeOptions{SuperDAT: true})
		require.NoError(t, err)
		assert.Equal(t, []string{"arcade/a/clone", "arcade/a/parent", "arcade/sub/b/parent"}, liveMachines(*out))
		assert.Equal(t, "SuperDAT", out.Dat.Header.Type)
		for _, it := range out.Dat.Items.Items() {
			if it.Machine.Name == "arcade/a/clone" {
				assert.Equal(t, "arcade/a/parent", it.Machine.CloneOf)
			}
		}
		// Original items keep their names.
		assert.Equal(t, "parent", dat.Items.Items()[0].Machine.Name)
	})

	t.Run("Dedupe", func(t *testing.T) {
		out, err := Merge(context.Background(), dat, inputs, MergeOptions{Dedupe: itemdict.DedupeFull})
		require.NoError(t, err)
		stats := out.Dat.Items.Statistics()
		assert.Equal(t, int64(3), stats.TotalCount)
		assert.Equal(t, int64(1), stats.RemovedCount)
		assert.Equal(t, "MergeDAT-deduped", out.Dat.Header.Name)
	})
}

func TestDiffAgainst(t *testing.T) {
	base := datfile.New(datfile.Header{Name: "base"})
	base.Items.AddRange([]*datitems.Item{game("g1", "11111111"), game("g2", "22222222")})

	build := func() *datfile.DatFile {
		cand := datfile.New(datfile.Header{FileName: "cand", Name: "cand"})
		renamed := game("other", "11111111")
		cand.Items.AddRange([]*datitems.Item{renamed, game("g2", "22222222"), game("g3", "33333333")})
		return cand
	}

	t.Run("ByHash", func(t *testing.T) {
		cand := build()
		outputs, err := DiffAgainst(context.Background(), base, []*datfile.DatFile{cand}, AgainstOptions{})
		require.NoError(t, err)
		require.Len(t, outputs, 1)
		assert.Equal(t, "cand", outputs[0].Name)
		assert.Equal(t, []string{"g3"}, liveMachines(outputs[0]))

		for _, it := range base.Items.Items() {
			assert.False(t, it.Remove)
			assert.Equal(t, datitems.DupeNone, it.DupeType)
		}
	})

	t.Run("ByGame", func(t *testing.T) {
		cand := build()
		outputs, err := DiffAgainst(context.Background(), base, []*datfile.DatFile{cand}, AgainstOptions{ByGame: true})
		require.NoError(t, err)
		assert.Equal(t, []string{"g3", "other"}, liveMachines(outputs[0]))
	})

	t.Run("LoadedMatchesAreExternal", func(t *testing.T) {
		loader := newMemLoader()
		b := loader.add("base.dat", game("g1", "11111111"))
		c := loader.add("cand.dat", game("g1", "11111111"), game("g2", "22222222"))
		loaded := populate(t, loader, b)
		cand, err := LoadOne(context.Background(), c, loader, Options{})
		require.NoError(t, err)

		outputs, err := DiffAgainst(context.Background(), loaded, []*datfile.DatFile{cand}, AgainstOptions{})
		require.NoError(t, err)
		assert.Equal(t, []string{"g2"}, liveMachines(outputs[0]))

		for _, it := range cand.Items.Items() {
			if it.Machine.Name == "g1" {
				require.True(t, it.Remove)
				assert.Equal(t, datitems.DupeExternalHash, it.DupeType)
			}
		}
	})
}

func TestBaseReplace(t *testing.T) {
	base := datfile.New(datfile.Header{Name: "base"})
	good := game("g1", "11111111")
	good.Name = "good.bin"
	good.Machine.Description = "Good Game"
	good.Machine.Year = "1990"
	base.Items.Add(good)

	build := func() (*datfile.DatFile, *datitems.Item) {
		cand := datfile.New(datfile.Header{FileName: "cand"})
		bad := game("g1", "11111111")
		bad.Name = "bad.bin"
		bad.Machine.Year = "1991"
		miss := game("g9", "99999999")
		cand.Items.AddRange([]*datitems.Item{bad, miss})
		return cand, bad
	}

	t.Run("DefaultFields", func(t *testing.T) {
		cand, bad := build()
		_, err := BaseReplace(context.Background(), base, []*datfile.DatFile{cand}, ReplaceOptions{})
		require.NoError(t, err)
		assert.Equal(t, "good.bin", bad.Name)
		assert.Equal(t, "g1", bad.Machine.Description)
	})

	t.Run("MachineFields", func(t *testing.T) {
		cand, bad := build()
		fields, err := datitems.ParseFieldSet([]string{"machine.description", "machine.year"})
		require.NoError(t, err)
		_, err = BaseReplace(context.Background(), base, []*datfile.DatFile{cand}, ReplaceOptions{Fields: fields})
		require.NoError(t, err)
		assert.Equal(t, "bad.bin", bad.Name)
		assert.Equal(t, "Good Game", bad.Machine.Description)
		assert.Equal(t, "1990", bad.Machine.Year)
	})

	t.Run("OnlySame", func(t *testing.T) {
		cand, bad := build()
		fields, err := datitems.ParseFieldSet([]string{"machine.description", "machine.year"})
		require.NoError(t, err)
		_, err = BaseReplace(context.Background(), base, []*datfile.DatFile{cand}, ReplaceOptions{Fields: fields, OnlySame: true})
		require.NoError(t, err)
		assert.Equal(t, "Good Game", bad.Machine.Description)
		assert.Equal(t, "1991", bad.Machine.Year)
	})
}

func TestSplitByExtension(t *testing.T) {
	dat := datfile.New(datfile.Header{FileName: "set", Name: "set"})
	cue := game("g1", "11111111")
	cue.Name = "track.CUE"
	bin := game("g1", "22222222")
	bin.Name = "track.bin"
	none := game("g2", "33333333")
	none.Name = "dir.v2/readme"
	dat.Items.AddRange([]*datitems.Item{cue, bin, none})

	matched, rest := SplitByExtension(dat, []string{".cue"}, Options{})
	assert.Equal(t, "set (cue)", matched.Name)
	assert.Equal(t, 1, matched.Dat.Items.Len())
	assert.Equal(t, "set (not cue)", rest.Name)
	assert.Equal(t, 2, rest.Dat.Items.Len())
}
