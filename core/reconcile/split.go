package reconcile

import (
	"strings"

	"dat-manager/core/datfile"
	"dat-manager/core/datitems"
)

// SplitByExtension partitions the live items of dat into those whose name
// ends in one of exts and the rest. Extensions are matched case-insensitively
// with or without a leading dot.
func SplitByExtension(dat *datfile.DatFile, exts []string, opts Options) (matched, rest *Output) {
	want := make(map[string]struct{}, len(exts))
	for _, e := range exts {
		want[normalizeExt(e)] = struct{}{}
	}

	base := dat.Header
	base.EnsureFields()
	label := joinExts(exts)
	mh := outputHeader(base, base.FileName+" ("+label+")", label)
	rh := outputHeader(base, base.FileName+" (not "+label+")", "not "+label)
	matched = &Output{Name: mh.FileName, Source: -1, Dat: newDat(mh, opts)}
	rest = &Output{Name: rh.FileName, Source: -1, Dat: newDat(rh, opts)}

	for _, it := range dat.Items.Items() {
		if it.Remove {
			continue
		}
		if _, ok := want[itemExt(it)]; ok {
			matched.Dat.Items.Add(it.Clone())
		} else {
			rest.Dat.Items.Add(it.Clone())
		}
	}
	return matched, rest
}

func itemExt(it *datitems.Item) string {
	name := it.Name
	dot := strings.LastIndexByte(name, '.')
	if dot < 0 || dot < strings.LastIndexAny(name, `/\`) {
		return ""
	}
	return normalizeExt(name[dot+1:])
}

func normalizeExt(e string) string {
	return strings.ToLower(strings.TrimPrefix(strings.TrimSpace(e), "."))
}

func joinExts(exts []string) string {
	parts := make([]string, 0, len(exts))
	for _, e := range exts {
		if n := normalizeExt(e); n != "" {
			parts = append(parts, n)
		}
	}
	return strings.Join(parts, ",")
}
