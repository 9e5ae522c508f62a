package inkplane

import (
	"encoding"
	"io"
	"time"

	"github.com/pelletier/go-toml"
	"github.com/pkg/errors"
	"libdb.so/inkplane/internal/epd"
)

// Config is the configuration for an inkplane uploader.
type Config struct {
	// Mode selects the render mode: flat, flat-mono, dither or dither-mono.
	// An empty mode means flat.
	Mode string `toml:"mode"`
	// Timeout bounds each individual protocol request. Zero means the
	// default of 30 seconds.
	Timeout TOMLDuration `toml:"timeout"`
	// Panels is the list of target panels. The same frame is rendered for
	// and uploaded to every panel.
	Panels []PanelConfig `toml:"panel"`
}

// PanelConfig describes one target panel.
type PanelConfig struct {
	// Address is the network address of the panel's driver board.
	// This is usually a bare IP or host:port on the local network.
	Address string `toml:"address"`
	// Model is the panel variant: mono, red or yellow.
	Model string `toml:"model"`
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if len(c.Panels) == 0 {
		return errors.New("no panels configured")
	}

	if _, err := epd.ParseMode(c.Mode); err != nil {
		return err
	}

	for _, panel := range c.Panels {
		if panel.Address == "" {
			return errors.New("panel address is required")
		}
		if _, err := epd.ParseModel(panel.Model); err != nil {
			return err
		}
	}

	if time.Duration(c.Timeout) < 0 {
		return errors.New("timeout must not be negative")
	}

	return nil
}

// TOMLDuration is a duration that can be parsed from TOML.
type TOMLDuration time.Duration

var (
	_ encoding.TextUnmarshaler = (*TOMLDuration)(nil)
	_ encoding.TextMarshaler   = (*TOMLDuration)(nil)
)

func (d *TOMLDuration) UnmarshalText(text []byte) error {
	duration, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	*d = TOMLDuration(duration)
	return nil
}

func (d TOMLDuration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

// ParseConfig parses a configuration from a reader.
func ParseConfig(r io.Reader) (*Config, error) {
	var config Config
	if err := toml.NewDecoder(r).Decode(&config); err != nil {
		return nil, err
	}
	return &config, nil
}
