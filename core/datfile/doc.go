// Package datfile pairs catalog header metadata with an item collection and
// defines the normalized stream format parsers hand to the engine.
package datfile
