package itemdict

import (
	"sort"
	"strings"

	"dat-manager/core/datitems"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Set is one machine of one source as handed to a writer.
type Set struct {
	Source  int
	Machine datitems.Machine
	Items   []*datitems.Item
}

// Sets returns the live items grouped into machines, ordered by source index
// and then by machine name under natural collation ("game2" before
// "game10"). Items within a set keep canonical order. With ignoreBlanks set,
// blank placeholders and zero-size roms are left out.
func (d *Dict) Sets(ignoreBlanks bool) []Set {
	d.mu.RLock()
	items := d.orderedLocked()
	d.mu.RUnlock()

	type setKey struct {
		source  int
		machine string
	}
	index := make(map[setKey]int)
	var sets []Set
	for _, it := range items {
		if it.Remove || (ignoreBlanks && it.IsBlank()) {
			continue
		}
		k := setKey{it.SourceIndex(), it.Machine.Name}
		i, ok := index[k]
		if !ok {
			i = len(sets)
			index[k] = i
			sets = append(sets, Set{Source: k.source, Machine: it.Machine})
		}
		sets[i].Items = append(sets[i].Items, it)
	}

	coll := collate.New(language.Und, collate.Numeric)
	sort.SliceStable(sets, func(i, j int) bool {
		if sets[i].Source != sets[j].Source {
			return sets[i].Source < sets[j].Source
		}
		a, b := sets[i].Machine.Name, sets[j].Machine.Name
		if c := coll.CompareString(a, b); c != 0 {
			return c < 0
		}
		return strings.Compare(a, b) < 0
	})
	return sets
}
