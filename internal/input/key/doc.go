// Package key provides the key code and transition types exchanged between
// the input device, the remapping engine, and the output device.
//
// This package defines the fundamental types for representing keyboard input:
//
//   - Code: A platform keycode (Linux input-event-codes), opaque to the engine
//   - Transition: Up, Down, or Repeat, matching the raw values 0, 1, 2
//   - Event: A single physical key transition with its timestamp
//   - Output: A key change to be written to the virtual device
//
// # Key Names
//
// Configuration files name keys the way the kernel headers do. All of these
// refer to the same code:
//
//   - "SPACE", "space", "KEY_SPACE"
//   - "57" (the raw decimal code)
//
// A few aliases are accepted for convenience: "CTRL" for LEFTCTRL,
// "ESCAPE" for ESC, "RETURN" for ENTER, and so on.
package key
