package config

// Config is the capctl configuration, layered from defaults, the user
// config file and the project config file.
type Config struct {
	// LogLevel is the minimum level written to stderr: debug, info, warn,
	// error.
	LogLevel string `yaml:"logLevel"`

	// Containers maps coarse container names to the route they cover.
	// Capabilities scoped by containerId resolve through this map; an
	// unlisted container is treated as globally visible.
	Containers map[string]string `yaml:"containers"`

	// Demo controls the sample providers registered by `capctl serve`.
	Demo DemoConfig `yaml:"demo"`
}

// DemoConfig configures the built-in demo providers.
type DemoConfig struct {
	Enabled bool `yaml:"enabled"`
}

// GetDefaultConfig returns the configuration used when no config files
// exist.
func GetDefaultConfig() Config {
	return Config{
		LogLevel: "info",
		Containers: map[string]string{
			"notes": "/notes",
		},
	}
}
