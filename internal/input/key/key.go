package key

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Code represents a keyboard keycode in the host platform's namespace.
// The zero value means "absent".
type Code uint16

// CodeNone represents no key.
const CodeNone Code = 0

// Linux keycodes referenced by default bindings and tests.
const (
	CodeEsc        Code = 1
	CodeEnter      Code = 28
	CodeLeftCtrl   Code = 29
	CodeGrave      Code = 41
	CodeLeftShift  Code = 42
	CodeC          Code = 46
	CodeRightShift Code = 54
	CodeLeftAlt    Code = 56
	CodeSpace      Code = 57
	CodeCapsLock   Code = 58
	CodeRightCtrl  Code = 97
	CodeRightAlt   Code = 100
	CodeLeftMeta   Code = 125
	CodeRightMeta  Code = 126

	// CodeMax is KEY_MAX from input-event-codes.h.
	CodeMax Code = 0x2ff
)

// codeNames maps keycodes to their input-event-codes.h names without the
// KEY_ prefix.
var codeNames = map[Code]string{
	1: "ESC", 2: "1", 3: "2", 4: "3", 5: "4", 6: "5", 7: "6", 8: "7", 9: "8", 10: "9", 11: "0",
	12: "MINUS", 13: "EQUAL", 14: "BACKSPACE", 15: "TAB",
	16: "Q", 17: "W", 18: "E", 19: "R", 20: "T", 21: "Y", 22: "U", 23: "I", 24: "O", 25: "P",
	26: "LEFTBRACE", 27: "RIGHTBRACE", 28: "ENTER", 29: "LEFTCTRL",
	30: "A", 31: "S", 32: "D", 33: "F", 34: "G", 35: "H", 36: "J", 37: "K", 38: "L",
	39: "SEMICOLON", 40: "APOSTROPHE", 41: "GRAVE", 42: "LEFTSHIFT", 43: "BACKSLASH",
	44: "Z", 45: "X", 46: "C", 47: "V", 48: "B", 49: "N", 50: "M",
	51: "COMMA", 52: "DOT", 53: "SLASH", 54: "RIGHTSHIFT", 55: "KPASTERISK",
	56: "LEFTALT", 57: "SPACE", 58: "CAPSLOCK",
	59: "F1", 60: "F2", 61: "F3", 62: "F4", 63: "F5", 64: "F6", 65: "F7", 66: "F8", 67: "F9", 68: "F10",
	69: "NUMLOCK", 70: "SCROLLLOCK",
	71: "KP7", 72: "KP8", 73: "KP9", 74: "KPMINUS", 75: "KP4", 76: "KP5", 77: "KP6", 78: "KPPLUS",
	79: "KP1", 80: "KP2", 81: "KP3", 82: "KP0", 83: "KPDOT",
	85: "ZENKAKUHANKAKU", 86: "102ND", 87: "F11", 88: "F12", 89: "RO",
	90: "KATAKANA", 91: "HIRAGANA", 92: "HENKAN", 93: "KATAKANAHIRAGANA", 94: "MUHENKAN", 95: "KPJPCOMMA",
	96: "KPENTER", 97: "RIGHTCTRL", 98: "KPSLASH", 99: "SYSRQ", 100: "RIGHTALT", 101: "LINEFEED",
	102: "HOME", 103: "UP", 104: "PAGEUP", 105: "LEFT", 106: "RIGHT", 107: "END", 108: "DOWN",
	109: "PAGEDOWN", 110: "INSERT", 111: "DELETE", 112: "MACRO",
	113: "MUTE", 114: "VOLUMEDOWN", 115: "VOLUMEUP", 116: "POWER", 117: "KPEQUAL", 118: "KPPLUSMINUS",
	119: "PAUSE", 120: "SCALE", 121: "KPCOMMA", 122: "HANGEUL", 123: "HANJA", 124: "YEN",
	125: "LEFTMETA", 126: "RIGHTMETA", 127: "COMPOSE",
	183: "F13", 184: "F14", 185: "F15", 186: "F16", 187: "F17", 188: "F18",
	189: "F19", 190: "F20", 191: "F21", 192: "F22", 193: "F23", 194: "F24",
}

// nameAliases are accepted in addition to the canonical names.
var nameAliases = map[string]Code{
	"ESCAPE":   CodeEsc,
	"RETURN":   CodeEnter,
	"CTRL":     CodeLeftCtrl,
	"CONTROL":  CodeLeftCtrl,
	"SHIFT":    CodeLeftShift,
	"ALT":      CodeLeftAlt,
	"ALTGR":    CodeRightAlt,
	"META":     CodeLeftMeta,
	"SUPER":    CodeLeftMeta,
	"WIN":      CodeLeftMeta,
	"CAPS":     CodeCapsLock,
	"BACKTICK": CodeGrave,
}

var codesByName = func() map[string]Code {
	m := make(map[string]Code, len(codeNames)+len(nameAliases))
	for c, n := range codeNames {
		m[n] = c
	}
	for n, c := range nameAliases {
		m[n] = c
	}
	return m
}()

// String returns the canonical name of the key, e.g. "SPACE".
// Unknown codes are rendered as "KEY_<n>".
func (c Code) String() string {
	if c == CodeNone {
		return "NONE"
	}
	if name, ok := codeNames[c]; ok {
		return name
	}
	return "KEY_" + strconv.Itoa(int(c))
}

// IsNone returns true if c is the reserved "absent" value.
func (c Code) IsNone() bool {
	return c == CodeNone
}

// IsValid returns true if c is a usable keycode.
func (c Code) IsValid() bool {
	return c != CodeNone && c <= CodeMax
}

// ParseCode resolves a key name or decimal keycode.
// Names are case-insensitive and may carry the "KEY_" prefix.
func ParseCode(s string) (Code, error) {
	name := strings.ToUpper(strings.TrimSpace(s))
	if name == "" {
		return CodeNone, ErrEmptyName
	}

	if n, err := strconv.ParseUint(name, 10, 16); err == nil {
		c := Code(n)
		if !c.IsValid() {
			return CodeNone, fmt.Errorf("%w: %s", ErrCodeOutOfRange, s)
		}
		return c, nil
	}

	// Digit keys are named "1".."0" and were handled above as raw codes,
	// so "KEY_1" is the way to reach them by name.
	if trimmed := strings.TrimPrefix(name, "KEY_"); trimmed != name {
		if c, ok := codesByName[trimmed]; ok {
			return c, nil
		}
		return CodeNone, fmt.Errorf("%w: %s", ErrUnknownKey, s)
	}

	if c, ok := codesByName[name]; ok {
		return c, nil
	}
	return CodeNone, fmt.Errorf("%w: %s", ErrUnknownKey, s)
}

// MustParseCode is like ParseCode but panics on error.
// Intended for tests and static tables.
func MustParseCode(s string) Code {
	c, err := ParseCode(s)
	if err != nil {
		panic(err)
	}
	return c
}

// Names returns every canonical key name in code order.
func Names() []string {
	codes := make([]Code, 0, len(codeNames))
	for c := range codeNames {
		codes = append(codes, c)
	}
	sort.Slice(codes, func(i, j int) bool { return codes[i] < codes[j] })

	names := make([]string, len(codes))
	for i, c := range codes {
		names[i] = codeNames[c]
	}
	return names
}
