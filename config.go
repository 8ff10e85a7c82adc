package scrollview

import (
	"fmt"

	"github.com/BurntSushi/toml"
)

// Config is the layout configuration of a view. It is read at the start of
// every layout pass, so changes take effect on the next Relayout, Refresh,
// or SetPosition call.
type Config struct {
	// CellInterval is the spacing between adjacent cells along the scroll
	// axis, as a fraction of the viewport. Valid range is (0.01, 1.0].
	CellInterval float32 `toml:"cell_interval"`

	// ScrollOffset is the fraction of the viewport where position zero
	// places the first cell. Valid range is [0.0, 1.0].
	ScrollOffset float32 `toml:"scroll_offset"`

	// Loop wraps data indices across the dataset so the sequence appears
	// infinite.
	Loop bool `toml:"loop"`
}

// DefaultConfig returns the configuration used when no options are given:
// five cells per viewport, centered.
func DefaultConfig() Config {
	return Config{
		CellInterval: 0.2,
		ScrollOffset: 0.5,
	}
}

// Validate reports whether the configuration is within the recognized
// ranges.
func (c Config) Validate() error {
	if c.CellInterval <= 0.01 || c.CellInterval > 1.0 {
		return fmt.Errorf("scrollview: cell_interval %v outside (0.01, 1.0]", c.CellInterval)
	}
	if c.ScrollOffset < 0.0 || c.ScrollOffset > 1.0 {
		return fmt.Errorf("scrollview: scroll_offset %v outside [0.0, 1.0]", c.ScrollOffset)
	}
	return nil
}

// LoadConfig reads a TOML view configuration from path. Fields absent from
// the file keep their DefaultConfig values. The result is validated.
//
// Example file:
//
//	cell_interval = 0.15
//	scroll_offset = 0.5
//	loop = true
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return Config{}, fmt.Errorf("scrollview: load config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("%w (in %s)", err, path)
	}
	return cfg, nil
}
