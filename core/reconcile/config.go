package reconcile

import (
	"fmt"
	"time"

	"dat-manager/core/itemdict"

	"go.uber.org/zap"
)

// Config holds engine defaults loaded from the environment.
type Config struct {
	// Key is the default bucket strategy (crc, md5, sha1, ..., machine, type).
	Key string `mapstructure:"key" default:"crc"`
	// Strict requires full hash identity for duplicates.
	Strict bool `mapstructure:"strict" default:"false"`
	// Workers bounds concurrency. Zero uses GOMAXPROCS.
	Workers int `mapstructure:"workers" default:"0"`
	// CacheTTL is how long parsed inputs are kept. Zero disables the cache.
	CacheTTL time.Duration `mapstructure:"cache_ttl" default:"5m"`
	// OutputFormat is the default serialization for outputs.
	OutputFormat string `mapstructure:"output_format" default:"logiqx"`
	// OutputDir is where the CLI writes outputs when no directory is given.
	OutputDir string `mapstructure:"output_dir" default:"out"`
	// IgnoreBlanks skips blank placeholders when writing.
	IgnoreBlanks bool `mapstructure:"ignore_blanks" default:"false"`
}

// Options converts the configuration into engine options.
func (c Config) Options(logger *zap.Logger) (Options, error) {
	key := itemdict.KeyCRC
	if c.Key != "" {
		parsed, ok := itemdict.ParseItemKey(c.Key)
		if !ok {
			return Options{}, fmt.Errorf("unknown bucket key %q", c.Key)
		}
		key = parsed
	}
	return Options{
		Key:     key,
		Strict:  c.Strict,
		Workers: c.Workers,
		Logger:  logger,
	}, nil
}
