package engine

import "fmt"

// Config describes how a new instance is set up. Width and Height are the
// initial grid dimensions; Seed fixes the goal-placement RNG (0 lets the
// engine derive one, so two instances created from the same preset do not
// share trajectories); StartMode is the initial intent source.
type Config struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	Seed        int64  `json:"seed"`
	StartMode   Mode   `json:"start_mode"`
}

// DefaultConfig returns the built-in instance configuration
func DefaultConfig() *Config {
	return &Config{
		Name:        "classic",
		Description: "Default 24x24 grid, manual control",
		Width:       24,
		Height:      24,
		StartMode:   ModeManual,
	}
}

// ValidateConfig validates an instance configuration for correctness
func ValidateConfig(config *Config) error {
	if config == nil {
		return fmt.Errorf("config validation: config is required")
	}
	if config.Width < MinGridSize || config.Width > MaxGridSize {
		return fmt.Errorf("config validation: width must be between %d and %d, got %d", MinGridSize, MaxGridSize, config.Width)
	}
	if config.Height < MinGridSize || config.Height > MaxGridSize {
		return fmt.Errorf("config validation: height must be between %d and %d, got %d", MinGridSize, MaxGridSize, config.Height)
	}
	if config.StartMode != "" {
		if _, ok := ParseMode(string(config.StartMode)); !ok {
			return fmt.Errorf("config validation: start_mode must be %q or %q, got %q", ModeManual, ModeAutomatic, config.StartMode)
		}
	}
	return nil
}
