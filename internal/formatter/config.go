package formatter

import "fmt"

// Config holds the layout preferences for one format call.
type Config struct {
	// RowLength is the width above which a text argument is broken onto
	// its own lines.
	RowLength int
	// IndentUnit is the number of spaces per nesting level.
	IndentUnit int
	// CommandArgSpacing pads text arguments of commands with a space.
	CommandArgSpacing bool
}

// DefaultConfig returns the default layout preferences.
func DefaultConfig() Config {
	return Config{
		RowLength:         80,
		IndentUnit:        4,
		CommandArgSpacing: true,
	}
}

// Validate reports settings that cannot produce a layout.
func (c Config) Validate() error {
	if c.RowLength < 1 {
		return fmt.Errorf("row length must be positive, got %d", c.RowLength)
	}
	if c.IndentUnit < 0 {
		return fmt.Errorf("indent unit must not be negative, got %d", c.IndentUnit)
	}
	return nil
}
