package formats

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"dat-manager/core/datfile"
	"dat-manager/core/datitems"
	"dat-manager/core/itemdict"
	"dat-manager/core/utils"

	"github.com/beevik/etree"
)

const logiqxDoctype = `DOCTYPE datafile PUBLIC "-//Logiqx//DTD ROM Management Datafile//EN" "http://www.logiqx.com/Dats/datafile.dtd"`

// Logiqx reads and writes the Logiqx XML datafile dialect.
type Logiqx struct{}

func (Logiqx) Name() string { return "logiqx" }

func (Logiqx) Extensions() []string { return []string{".dat", ".xml"} }

// Parse reads the whole document and yields items machine by machine.
func (Logiqx) Parse(ctx context.Context, r io.Reader) (*datfile.Stream, error) {
	doc := etree.NewDocument()
	doc.ReadSettings.Permissive = true
	if _, err := doc.ReadFrom(r); err != nil {
		return nil, fmt.Errorf("failed to read logiqx document: %w", err)
	}
	root := doc.SelectElement("datafile")
	if root == nil {
		return nil, fmt.Errorf("logiqx document has no datafile element")
	}

	stream := &datfile.Stream{}
	if h := root.SelectElement("header"); h != nil {
		stream.Header = datfile.Header{
			Name:        childText(h, "name"),
			Description: childText(h, "description"),
			Category:    childText(h, "category"),
			Version:     childText(h, "version"),
			Date:        childText(h, "date"),
			Author:      childText(h, "author"),
			Homepage:    childText(h, "homepage"),
			Comment:     childText(h, "comment"),
			Type:        childText(h, "type"),
		}
	}

	stream.Items = func(yield func(*datitems.Item, error) bool) {
		for _, el := range root.ChildElements() {
			if el.Tag != "machine" && el.Tag != "game" {
				continue
			}
			if err := ctx.Err(); err != nil {
				yield(nil, err)
				return
			}
			machine := readMachine(el)
			emitted := false
			for _, child := range el.ChildElements() {
				t := datitems.ParseItemType(child.Tag)
				if t == datitems.ItemTypeNull {
					continue
				}
				emitted = true
				if !yield(readItem(child, t, machine), nil) {
					return
				}
			}
			// Empty machines survive as a blank placeholder.
			if !emitted {
				if !yield(datitems.NewItem(datitems.ItemTypeBlank, machine), nil) {
					return
				}
			}
		}
	}
	return stream, nil
}

func childText(el *etree.Element, tag string) string {
	if c := el.SelectElement(tag); c != nil {
		return c.Text()
	}
	return ""
}

func readMachine(el *etree.Element) datitems.Machine {
	m := datitems.Machine{
		Name:         el.SelectAttrValue("name", ""),
		Description:  childText(el, "description"),
		CloneOf:      el.SelectAttrValue("cloneof", ""),
		RomOf:        el.SelectAttrValue("romof", ""),
		SampleOf:     el.SelectAttrValue("sampleof", ""),
		Year:         childText(el, "year"),
		Manufacturer: childText(el, "manufacturer"),
		Comment:      childText(el, "comment"),
		Category:     childText(el, "category"),
	}
	switch {
	case utils.ToBool(el.SelectAttrValue("isbios", "")):
		m.Type = datitems.MachineTypeBios
	case utils.ToBool(el.SelectAttrValue("isdevice", "")):
		m.Type = datitems.MachineTypeDevice
	case utils.ToBool(el.SelectAttrValue("ismechanical", "")):
		m.Type = datitems.MachineTypeMechanical
	}
	return m
}

func readItem(el *etree.Element, t datitems.ItemType, machine datitems.Machine) *datitems.Item {
	it := datitems.NewItem(t, machine)
	it.Name = el.SelectAttrValue("name", "")
	if t.Sized() {
		it.Size = utils.ToInt64(el.SelectAttrValue("size", ""), datitems.SizeUnknown)
	}
	for _, kind := range t.HashKinds() {
		attr := el.SelectAttr(kind.String())
		if attr == nil {
			continue
		}
		if v, ok := datitems.NormalizeHash(kind, attr.Value); ok {
			it.SetHash(kind, v)
		}
	}
	it.Status = datitems.ParseStatus(el.SelectAttrValue("status", ""))
	it.Merge = el.SelectAttrValue("merge", "")
	it.Bios = el.SelectAttrValue("bios", "")
	it.Region = el.SelectAttrValue("region", "")
	it.Language = el.SelectAttrValue("language", "")
	it.Date = el.SelectAttrValue("date", "")
	it.Description = el.SelectAttrValue("description", "")
	it.Value = el.SelectAttrValue("value", "")
	it.Tag = el.SelectAttrValue("tag", "")
	it.Mask = el.SelectAttrValue("mask", "")
	it.Default = utils.ToBool(el.SelectAttrValue("default", ""))
	it.Optional = utils.ToBool(el.SelectAttrValue("optional", ""))
	it.Channels = utils.ToInt(el.SelectAttrValue("channels", ""))
	return it
}

// Write renders the DAT as a Logiqx datafile.
func (Logiqx) Write(ctx context.Context, w io.Writer, dat *datfile.DatFile, ignoreBlanks bool) error {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)
	doc.CreateDirective(logiqxDoctype)
	root := doc.CreateElement("datafile")

	h := root.CreateElement("header")
	for _, kv := range [][2]string{
		{"name", dat.Header.Name},
		{"description", dat.Header.Description},
		{"category", dat.Header.Category},
		{"version", dat.Header.Version},
		{"date", dat.Header.Date},
		{"author", dat.Header.Author},
		{"homepage", dat.Header.Homepage},
		{"comment", dat.Header.Comment},
		{"type", dat.Header.Type},
	} {
		if kv[1] != "" {
			h.CreateElement(kv[0]).SetText(kv[1])
		}
	}

	for _, set := range dat.Items.Sets(ignoreBlanks) {
		if err := ctx.Err(); err != nil {
			return err
		}
		writeMachine(root, set)
	}

	doc.Indent(2)
	if _, err := doc.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write logiqx document: %w", err)
	}
	return nil
}

func writeMachine(root *etree.Element, set itemdict.Set) {
	m := set.Machine
	el := root.CreateElement("machine")
	el.CreateAttr("name", m.Name)
	setAttr(el, "cloneof", m.CloneOf)
	setAttr(el, "romof", m.RomOf)
	setAttr(el, "sampleof", m.SampleOf)
	switch m.Type {
	case datitems.MachineTypeBios:
		el.CreateAttr("isbios", "yes")
	case datitems.MachineTypeDevice:
		el.CreateAttr("isdevice", "yes")
	case datitems.MachineTypeMechanical:
		el.CreateAttr("ismechanical", "yes")
	}
	desc := m.Description
	if desc == "" {
		desc = m.Name
	}
	el.CreateElement("description").SetText(desc)
	for _, kv := range [][2]string{
		{"year", m.Year}, {"manufacturer", m.Manufacturer}, {"comment", m.Comment}, {"category", m.Category},
	} {
		if kv[1] != "" {
			el.CreateElement(kv[0]).SetText(kv[1])
		}
	}

	for _, it := range set.Items {
		if it.Type == datitems.ItemTypeBlank {
			continue
		}
		writeItem(el.CreateElement(it.Type.String()), it)
	}
}

func writeItem(el *etree.Element, it *datitems.Item) {
	setAttr(el, "name", it.Name)
	if it.Type.Sized() && it.SizeKnown() {
		el.CreateAttr("size", strconv.FormatInt(it.Size, 10))
	}
	for _, kind := range it.Type.HashKinds() {
		if v, ok := it.Hashes.Get(kind); ok {
			el.CreateAttr(kind.String(), v)
		}
	}
	setAttr(el, "merge", it.Merge)
	setAttr(el, "bios", it.Bios)
	setAttr(el, "region", it.Region)
	setAttr(el, "language", it.Language)
	setAttr(el, "date", it.Date)
	setAttr(el, "description", it.Description)
	setAttr(el, "value", it.Value)
	setAttr(el, "tag", it.Tag)
	setAttr(el, "mask", it.Mask)
	setAttr(el, "status", it.Status.String())
	if it.Type == datitems.ItemTypeSound {
		el.CreateAttr("channels", strconv.Itoa(it.Channels))
	}
	if it.Default {
		el.CreateAttr("default", utils.YesNo(true))
	}
	if it.Optional {
		el.CreateAttr("optional", utils.YesNo(true))
	}
}

func setAttr(el *etree.Element, key, value string) {
	if value != "" {
		el.CreateAttr(key, value)
	}
}
