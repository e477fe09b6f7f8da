package datitems_test

import (
	"testing"

	"dat-manager/core/datitems"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestItem_Clone(t *testing.T) {
	orig := rom("game", "a.bin", 16, datitems.Hashes{datitems.HashCRC: "deadbeef"})
	orig.Source = &datitems.Source{Index: 2, Name: "one.dat"}

	c := orig.Clone()
	require.NotSame(t, orig, c)

	c.Machine.Name = "changed"
	c.Hashes[datitems.HashCRC] = "00000000"
	c.Source.Index = 9

	assert.Equal(t, "game", orig.Machine.Name)
	assert.Equal(t, "deadbeef", orig.Hash(datitems.HashCRC))
	assert.Equal(t, 2, orig.Source.Index)
}

func TestNewItem_Defaults(t *testing.T) {
	it := datitems.NewItem(datitems.ItemTypeDisk, datitems.NewMachine("m"))
	assert.Equal(t, datitems.SizeUnknown, it.Size)
	assert.Nil(t, it.Source)
	assert.Equal(t, -1, it.SourceIndex())
	assert.Equal(t, datitems.DupeNone, it.DupeType)
	assert.False(t, it.Remove)
}

func TestItem_IsBlank(t *testing.T) {
	assert.True(t, datitems.NewItem(datitems.ItemTypeBlank, datitems.Machine{}).IsBlank())
	assert.True(t, rom("g", "r", 0, nil).IsBlank())
	assert.False(t, rom("g", "r", 1, nil).IsBlank())
}

func TestNormalizeHash(t *testing.T) {
	tests := []struct {
		name string
		kind datitems.HashKind
		raw  string
		want string
		ok   bool
	}{
		{"pads crc", datitems.HashCRC, "BEEF", "0000beef", true},
		{"strips prefix", datitems.HashCRC, "0xDEADBEEF", "deadbeef", true},
		{"blank", datitems.HashSHA1, "  ", "", true},
		{"dash is blank", datitems.HashMD5, "-", "", true},
		{"bad charset", datitems.HashCRC, "zzzz", "", false},
		{"too long", datitems.HashCRC, "deadbeef00", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := datitems.NormalizeHash(tt.kind, tt.raw)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseItemType(t *testing.T) {
	assert.Equal(t, datitems.ItemTypeRom, datitems.ParseItemType("ROM"))
	assert.Equal(t, datitems.ItemTypePartFeature, datitems.ParseItemType("part_feature"))
	assert.Equal(t, datitems.ItemTypeNull, datitems.ParseItemType("bogus"))
	for _, typ := range datitems.ItemTypes {
		assert.Equal(t, typ, datitems.ParseItemType(typ.String()))
	}
}

func TestItemType_Metadata(t *testing.T) {
	assert.True(t, datitems.ItemTypeRom.Supports(datitems.HashSHA512))
	assert.False(t, datitems.ItemTypeDisk.Supports(datitems.HashCRC))
	assert.True(t, datitems.ItemTypeRom.Sized())
	assert.False(t, datitems.ItemTypeSample.HasHashes())
}

func TestReplaceFields(t *testing.T) {
	fs, err := datitems.ParseFieldSet([]string{"machine.description", "crc", "machine.year"})
	require.NoError(t, err)
	assert.Equal(t, []datitems.MachineField{datitems.MachineFieldDescription, datitems.MachineFieldYear}, fs.Machine)
	assert.Equal(t, []datitems.ItemField{datitems.ItemFieldCRC}, fs.Item)

	_, err = datitems.ParseFieldSet([]string{"nope"})
	assert.Error(t, err)

	t.Run("Overwrite", func(t *testing.T) {
		dst := datitems.NewMachine("g")
		dst.Year = "1990"
		src := datitems.Machine{Name: "g", Description: "Game", Year: "1991"}
		datitems.ReplaceMachineFields(&dst, src, fs.Machine, false)
		assert.Equal(t, "Game", dst.Description)
		assert.Equal(t, "1991", dst.Year)
	})

	t.Run("OnlyBlank", func(t *testing.T) {
		dst := datitems.NewMachine("g")
		dst.Year = "1990"
		src := datitems.Machine{Name: "g", Description: "Game", Year: "1991"}
		datitems.ReplaceMachineFields(&dst, src, fs.Machine, true)
		assert.Equal(t, "Game", dst.Description)
		assert.Equal(t, "1990", dst.Year)
	})

	t.Run("ItemHashOnUnsupportedType", func(t *testing.T) {
		dst := datitems.NewItem(datitems.ItemTypeDisk, datitems.NewMachine("g"))
		src := rom("g", "r", 1, datitems.Hashes{datitems.HashCRC: "deadbeef"})
		datitems.ReplaceItemFields(dst, src, fs.Item, false)
		assert.Empty(t, dst.Hash(datitems.HashCRC))
	})
}
