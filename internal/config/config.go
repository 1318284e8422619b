// Package config loads LALG's optional TOML configuration file, covering
// the knobs spec.md calls out as implementer-adjustable: the bytecode
// buffer's capacity (§3: "5000 bytes in the source; implementers SHOULD
// make this configurable"), the reserved-word file path (§6), and the
// accepted source extensions (§6).
//
// Grounded on lookbusy1344/arm-emulator's use of github.com/BurntSushi/toml
// for its own structured-config-file reading, adapted to LALG's much
// smaller knob set.
package config

import (
	"os"

	"github.com/BurntSushi/toml"
	"github.com/lalg-lang/lalg/internal/bytecode"
	"github.com/lalg-lang/lalg/internal/errors"
	"github.com/lalg-lang/lalg/internal/source"
)

// Config is LALG's full set of driver-adjustable knobs.
type Config struct {
	// BufferCapacity overrides bytecode.DefaultCapacity.
	BufferCapacity int `toml:"buffer_capacity"`
	// KeywordsFile, if set, is loaded in place of the scanner's built-in
	// reserved-word table (spec.md §6's keywords.txt/reserved_words.txt).
	KeywordsFile string `toml:"keywords_file"`
	// Extensions overrides source.DefaultExtensions.
	Extensions []string `toml:"extensions"`
	// Quiet suppresses the VM's "Done!"/"Flushing..." banners.
	Quiet bool `toml:"quiet"`
}

// Default returns the configuration the driver uses when no config file
// is supplied.
func Default() Config {
	return Config{
		BufferCapacity: bytecode.DefaultCapacity,
		Extensions:     source.DefaultExtensions,
	}
}

// Load reads and parses a TOML config file at path, starting from
// Default() so any field the file omits keeps its default value.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	if _, err := os.Stat(path); err != nil {
		return cfg, errors.Wrap(err, "failed to read config file "+path)
	}
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return cfg, errors.Wrap(err, "failed to parse config file "+path)
	}
	if cfg.BufferCapacity <= 0 {
		cfg.BufferCapacity = bytecode.DefaultCapacity
	}
	if len(cfg.Extensions) == 0 {
		cfg.Extensions = source.DefaultExtensions
	}
	return cfg, nil
}
