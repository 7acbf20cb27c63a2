// Command validate provides a small CLI that validates simulation
// configuration JSON files in the ../configs directory. It checks:
//   - JSON structure and required fields
//   - Board dimensions against the supported range
//   - Start mode values (manual or automatic)
//   - Seed sanity (zero means derive from the clock)
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Config mirrors the JSON schema for a simulation configuration.
type Config struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	Seed        int64  `json:"seed"`
	StartMode   string `json:"start_mode"`
}

// Dimension limits, kept in sync with the engine.
const (
	minGridSize = 4
	maxGridSize = 256
)

// ValidationResult captures the outcome of validating a single file.
// If Valid is true, Errors contains informational messages; otherwise it
// accumulates the validation errors that were found.
type ValidationResult struct {
	File   string
	Valid  bool
	Errors []string
}

// validateConfig loads and validates a single configuration JSON file.
func validateConfig(filePath string) ValidationResult {
	result := ValidationResult{
		File:   filepath.Base(filePath),
		Valid:  true,
		Errors: []string{},
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		result.Valid = false
		result.Errors = append(result.Errors, fmt.Sprintf("Failed to read file: %v", err))
		return result
	}

	var config Config
	if err := json.Unmarshal(data, &config); err != nil {
		result.Valid = false
		result.Errors = append(result.Errors, fmt.Sprintf("Invalid JSON: %v", err))
		return result
	}

	if config.Name == "" {
		result.Valid = false
		result.Errors = append(result.Errors, "Missing required field: name")
	}

	if config.Width < minGridSize || config.Width > maxGridSize {
		result.Valid = false
		result.Errors = append(result.Errors, fmt.Sprintf("width must be between %d and %d, got %d", minGridSize, maxGridSize, config.Width))
	}
	if config.Height < minGridSize || config.Height > maxGridSize {
		result.Valid = false
		result.Errors = append(result.Errors, fmt.Sprintf("height must be between %d and %d, got %d", minGridSize, maxGridSize, config.Height))
	}

	if config.Seed < 0 {
		result.Valid = false
		result.Errors = append(result.Errors, fmt.Sprintf("seed must be non-negative, got %d", config.Seed))
	}

	switch config.StartMode {
	case "", "manual", "automatic":
	default:
		result.Valid = false
		result.Errors = append(result.Errors, fmt.Sprintf("start_mode must be \"manual\" or \"automatic\", got %q", config.StartMode))
	}

	// Add informational data
	if result.Valid {
		result.Errors = append(result.Errors, fmt.Sprintf("✓ Name: %s", config.Name))
		result.Errors = append(result.Errors, fmt.Sprintf("✓ Board: %dx%d", config.Width, config.Height))
		if config.Seed == 0 {
			result.Errors = append(result.Errors, "✓ Seed: derived from clock")
		} else {
			result.Errors = append(result.Errors, fmt.Sprintf("✓ Seed: %d", config.Seed))
		}
		mode := config.StartMode
		if mode == "" {
			mode = "manual"
		}
		result.Errors = append(result.Errors, fmt.Sprintf("✓ Start mode: %s", mode))
	}

	return result
}

// main scans ../configs for *.json files and validates each one, printing a
// concise report and exiting with non-zero status if any are invalid.
func main() {
	configDir := "../configs"
	files, err := filepath.Glob(filepath.Join(configDir, "*.json"))
	if err != nil {
		fmt.Printf("Error finding config files: %v\n", err)
		os.Exit(1)
	}

	allValid := true
	for _, file := range files {
		result := validateConfig(file)

		fmt.Printf("\n%s %s\n", strings.Repeat("=", 20), result.File)

		if result.Valid {
			fmt.Println("✅ VALID")
			for _, info := range result.Errors {
				fmt.Println("  " + info)
			}
		} else {
			fmt.Println("❌ INVALID")
			allValid = false
			for _, err := range result.Errors {
				if !strings.HasPrefix(err, "✓") {
					fmt.Println("  ❌ " + err)
				}
			}
		}
	}

	fmt.Printf("\n%s\n", strings.Repeat("=", 40))
	if allValid {
		fmt.Println("✅ All configurations are valid!")
	} else {
		fmt.Println("❌ Some configurations have errors")
		os.Exit(1)
	}
}
