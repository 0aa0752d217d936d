package arch

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml"
)

// tomlConfigFile represents a configuration as it is encoded in TOML.
type tomlConfigFile struct {
	Config *tomlConfig            `toml:"config"`
	Params map[string]interface{} `toml:"params"`
}

// tomlConfig is the fixed portion of the configuration file.
type tomlConfig struct {
	Name       string   `toml:"name"`
	XLen       int      `toml:"xlen"`
	Extensions []string `toml:"extensions"`
}

// LoadConfig loads and validates an architecture configuration from a TOML
// file.
func LoadConfig(path string) (*Config, error) {
	buff, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	tcf := &tomlConfigFile{}
	if err := toml.Unmarshal(buff, tcf); err != nil {
		return nil, err
	}

	if tcf.Config == nil {
		return nil, fmt.Errorf("%s: missing [config] section", path)
	}

	cfg := &Config{
		Name:       tcf.Config.Name,
		XLen:       tcf.Config.XLen,
		Extensions: tcf.Config.Extensions,
		Params:     make(map[string]interface{}),
	}

	for name, value := range tcf.Params {
		normalized, err := normalizeParam(value)
		if err != nil {
			return nil, fmt.Errorf("%s: param %s: %s", path, name, err)
		}

		cfg.Params[name] = normalized
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// normalizeParam converts a decoded TOML value into one of the canonical
// parameter value types.
func normalizeParam(value interface{}) (interface{}, error) {
	switch v := value.(type) {
	case int64, bool, string:
		return v, nil
	case []interface{}:
		if len(v) == 0 {
			return nil, fmt.Errorf("empty array parameter")
		}

		switch v[0].(type) {
		case int64:
			ints := make([]int64, len(v))
			for i, elem := range v {
				iv, ok := elem.(int64)
				if !ok {
					return nil, fmt.Errorf("mixed-type array parameter")
				}

				ints[i] = iv
			}

			return ints, nil
		case bool:
			bools := make([]bool, len(v))
			for i, elem := range v {
				bv, ok := elem.(bool)
				if !ok {
					return nil, fmt.Errorf("mixed-type array parameter")
				}

				bools[i] = bv
			}

			return bools, nil
		default:
			return nil, fmt.Errorf("unsupported array element type %T", v[0])
		}
	case []int64, []bool:
		return v, nil
	default:
		return nil, fmt.Errorf("unsupported parameter type %T", value)
	}
}
