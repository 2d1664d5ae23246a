// Package config holds the settings snapshot consumed by the decoration
// engines and the files it is loaded from.
//
// Settings is a value type. Engines receive a copy when they are created
// or explicitly reconfigured; nothing mutates it behind their back.
//
// Two file formats are understood:
//
//   - The persisted plugin data (JSON). Known keys are read with gjson and
//     written back with sjson so unknown keys survive a round trip untouched.
//   - The command-line tool's own config (TOML), which can embed the same
//     link settings or point at a JSON data file.
//
// # Sub-packages
//
//   - watcher: fsnotify-based live reload of config and document files
package config
