// Package config defines the user-facing configuration types for took.
package config

// Config holds persistent defaults for the CLI. Flags given on the
// command line override anything loaded from here.
type Config struct {
	// Format enables the human-readable breakdown by default.
	Format bool `koanf:"format"`

	// JSON enables the JSON report by default. JSON wins over Format.
	JSON bool `koanf:"json"`

	// OutputTo appends reports to this file instead of stderr.
	OutputTo string `koanf:"output_to"`

	// Log configures the diagnostic log.
	Log LogConfig `koanf:"log"`
}

// LogConfig configures the structured log file.
type LogConfig struct {
	// Enabled turns file logging on.
	Enabled bool `koanf:"enabled"`

	// Debug includes debug-level entries.
	Debug bool `koanf:"debug"`

	// Path overrides the default XDG state log location.
	Path string `koanf:"path"`
}
