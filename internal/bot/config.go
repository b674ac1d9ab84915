package bot

import (
	corecmd "github.com/babyGialo/sigmabot/core/cmd"
	coreconfig "github.com/babyGialo/sigmabot/core/config"
)

// Config adapts the core configuration to the runner's carrier interface.
type Config struct {
	core *coreconfig.Config
}

var _ corecmd.ConfigCarrier = (*Config)(nil)

// LoadConfig reads and validates configuration from the given path.
func LoadConfig(path string) (*Config, error) {
	cfg, err := coreconfig.Load(path)
	if err != nil {
		return nil, err
	}
	return &Config{core: cfg}, nil
}

// CoreConfig returns the embedded core configuration.
func (c *Config) CoreConfig() *coreconfig.Config {
	return c.core
}
