// Package config loads and caches simulation configuration presets.
//
// Presets are JSON files in a configuration directory, one preset per file.
// The Manager caches parsed presets, validates them against the engine's
// rules before handing them out, and falls back to a built-in default when
// no preset named "classic" exists.
package config
