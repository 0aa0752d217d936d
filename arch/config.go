package arch

import "fmt"

// Config is an architecture configuration: the set of named parameters and
// active extensions a source unit is compiled against.  The compiler treats
// it as opaque input data; loading and validating it from a config file is
// the caller's concern (the CLI loads TOML, other embedders construct it
// directly).
type Config struct {
	// The name of the configuration, eg. `rv64`.
	Name string

	// The width of an integer register (XLEN) in bits.
	XLen int

	// The names of the active extensions.
	Extensions []string

	// Params maps parameter names to their values.  Legal value types are
	// int64, bool, []int64, []bool, and (for a small whitelisted set of
	// parameter names) string.
	Params map[string]interface{}
}

// Validate performs basic sanity checks on the configuration.
func (cfg *Config) Validate() error {
	if cfg.Name == "" {
		return fmt.Errorf("configuration has no name")
	}

	if cfg.XLen != 32 && cfg.XLen != 64 {
		return fmt.Errorf("config %s: xlen must be 32 or 64, got %d", cfg.Name, cfg.XLen)
	}

	return nil
}
