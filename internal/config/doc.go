// Package config loads keyremap settings.
//
// Settings come from four layers, later layers overriding earlier ones:
//
//  1. Built-in defaults (Default)
//  2. A TOML or YAML file, given explicitly or found on the search path
//  3. KEYREMAP_* environment variables
//  4. Command line flags, applied by the caller
//
// A configuration with no bindings uses the built-in table: Space doubles as
// Left Ctrl, Caps Lock becomes Escape, and Escape becomes grave.
//
// Example TOML:
//
//	[device]
//	path = "/dev/input/by-id/usb-kbd-event-kbd"
//
//	[remap]
//	hold_window_ms = 200
//
//	[[remap.bindings]]
//	key = "SPACE"
//	secondary = "LEFTCTRL"
//
//	[[remap.bindings]]
//	key = "CAPSLOCK"
//	primary = "ESC"
package config
