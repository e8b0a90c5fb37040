// Package config provides configuration management for hwtree.
//
// Configuration is layered. Later sources override earlier ones:
//
//  1. Default configuration (GetDefaultConfig)
//  2. User configuration (~/.config/hwtree/config.yaml)
//  3. Project configuration (./.hwtree/config.yaml)
//  4. An explicit file passed with --config, YAML or TOML by extension
//
// Command line flags are applied by the caller on top of the result.
//
// # Example
//
//	refresh:
//	  interval: 5s
//	  forced: 2s
//	paths:
//	  clock: /tmp/fake-debugfs/clock
//	filters:
//	  gpio: [device, subsystem, driver, "*chip*", power]
//	logging:
//	  level: debug
//	watch:
//	  enabled: true
//
// The same document in TOML:
//
//	[refresh]
//	interval = "5s"
//
//	[paths]
//	clock = "/tmp/fake-debugfs/clock"
//
// Slices replace rather than append: a filter list in an overlay file
// becomes the complete list for that subsystem.
package config
