// Package utils provides conversion helpers shared by the catalog format
// readers and writers: lenient attribute parsing for sizes, counts and
// yes/no flags.
package utils
