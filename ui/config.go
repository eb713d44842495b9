package ui

// Config contains TUI-specific configuration.
type Config struct {
	// Path of the analysis file being presented; empty when reading from
	// stdin or a URL. Non-empty paths are watched for live reload.
	Path string

	// Theme selects the color scheme; "auto" follows the terminal
	// background.
	Theme string `env:"STUDYPACE_THEME" envDefault:"auto"`

	// Width caps the rendered width; 0 uses the terminal width.
	Width uint

	EnableMouse bool

	// JumpToParagraph positions the session at a 1-based paragraph on
	// startup; 0 starts from the introduction.
	JumpToParagraph int

	// For debugging the UI.
	GlamourEnabled bool `env:"STUDYPACE_ENABLE_GLAMOUR" envDefault:"true"`
}
