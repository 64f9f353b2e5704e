package key

// modifierCodes holds the keys the kernel and compositors treat as modifiers.
var modifierCodes = map[Code]bool{
	CodeLeftCtrl:   true,
	CodeRightCtrl:  true,
	CodeLeftShift:  true,
	CodeRightShift: true,
	CodeLeftAlt:    true,
	CodeRightAlt:   true,
	CodeLeftMeta:   true,
	CodeRightMeta:  true,
}

// IsModifier returns true if c is one of the Ctrl, Shift, Alt, or Meta keys.
// A dual-role key's secondary function is usually one of these, though any
// key is accepted.
func (c Code) IsModifier() bool {
	return modifierCodes[c]
}
