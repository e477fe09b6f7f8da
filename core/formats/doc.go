// Package formats holds the catalog readers and writers the engine talks to.
//
// A Format turns a byte stream into a datfile.Stream of normalized items
// (lowercase, padded hashes; unknown sizes as datitems.SizeUnknown) and
// serializes a DatFile back out using its deterministic set traversal.
//
// # Dialects
//
//   - logiqx: the XML datafile dialect (.dat, .xml), built on beevik/etree
//   - json: a machine-oriented JSON document (.json)
//   - yaml: the same document shape in YAML (.yaml, .yml), via goccy/go-yaml
//
// Lookup resolves a format by name and ForPath by file extension.
package formats
