package key

import "errors"

// Key parsing errors.
var (
	// ErrEmptyName indicates an empty key name.
	ErrEmptyName = errors.New("key: empty key name")

	// ErrUnknownKey indicates a key name that is not in the table.
	ErrUnknownKey = errors.New("key: unknown key name")

	// ErrCodeOutOfRange indicates a numeric code of zero or above KEY_MAX.
	ErrCodeOutOfRange = errors.New("key: keycode out of range")
)
