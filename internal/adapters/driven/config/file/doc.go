// Package file provides file-based implementations of driven port
// interfaces.
//
// Adapters:
//   - ConfigStore: TOML-based configuration storage
package file
