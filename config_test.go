package inkplane

import (
	"strings"
	"testing"
	"time"
)

func TestParseConfig(t *testing.T) {
	const doc = `
mode = "dither"
timeout = "10s"

[[panel]]
address = "192.168.1.50"
model = "red"

[[panel]]
address = "192.168.1.51:8080"
model = "mono"
`

	cfg, err := ParseConfig(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("ParseConfig: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}

	if cfg.Mode != "dither" {
		t.Errorf("Mode = %q", cfg.Mode)
	}
	if time.Duration(cfg.Timeout) != 10*time.Second {
		t.Errorf("Timeout = %v", time.Duration(cfg.Timeout))
	}
	if len(cfg.Panels) != 2 {
		t.Fatalf("got %d panels, want 2", len(cfg.Panels))
	}
	if cfg.Panels[0].Address != "192.168.1.50" || cfg.Panels[0].Model != "red" {
		t.Errorf("panel 0 = %+v", cfg.Panels[0])
	}
	if cfg.Panels[1].Address != "192.168.1.51:8080" || cfg.Panels[1].Model != "mono" {
		t.Errorf("panel 1 = %+v", cfg.Panels[1])
	}
}

func TestConfigValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Mode: "flat",
			Panels: []PanelConfig{
				{Address: "192.168.1.50", Model: "red"},
			},
		}
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"valid", func(*Config) {}, false},
		{"empty mode is flat", func(c *Config) { c.Mode = "" }, false},
		{"no panels", func(c *Config) { c.Panels = nil }, true},
		{"missing address", func(c *Config) { c.Panels[0].Address = "" }, true},
		{"unknown model", func(c *Config) { c.Panels[0].Model = "green" }, true},
		{"unknown mode", func(c *Config) { c.Mode = "ordered" }, true},
		{"negative timeout", func(c *Config) { c.Timeout = TOMLDuration(-time.Second) }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
