// Package control
// Author: momentics <momentics@gmail.com>
//
// Configuration, runtime metrics and logging setup for hioload-txtime publishers.
//
// Provides concurrent-safe state handling primitives including:
//   - YAML configuration with defaults, hardware guard band profiles and validation
//   - Snapshot config reads with reload listeners
//   - Publish and error queue counters with debug probes
//   - slog logger construction with a reloadable level
package control
