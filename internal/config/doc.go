// Package config loads labmon settings with viper.
//
// # Resolution Order
//
//  1. Built-in defaults
//  2. The TOML file at the given path, or ~/.config/labmon/config.toml
//  3. LABMON_* environment variables
//  4. OPERATOR_ADDR, which overrides operator_addr
//
// A missing file is not an error. A file that exists but does not parse is.
//
// # Defaults
//
//   - operator_addr: http://localhost:5000
//   - poll_interval: 1s (a zero or negative value falls back to this)
//   - log_level: info
//   - log_file: ~/.local/state/labmon/labmon.log
//
// # TOML Format
//
//	operator_addr = "http://10.0.0.5:5000"
//	poll_interval = "500ms"
//	log_level = "debug"
package config
