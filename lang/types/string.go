package types

import (
	"strconv"
	"strings"
	"unicode/utf8"
)

// String is the type of a text value: an immutable sequence of Unicode code
// points. The empty string is a valid value.
type String string

var (
	_ Value   = String("")
	_ Ordered = String("")
)

func (s String) String() string { return string(s) }
func (s String) Type() string   { return "string" }

// Cmp implements lexicographic ordering over code points (§4.1).
func (s String) Cmp(y Value) int { return strings.Compare(string(s), string(y.(String))) }

// Runes returns the string decoded into its sequence of code points.
func (s String) Runes() []rune { return []rune(s) }

// Len returns the number of code points in the string (used by STRLEN).
func (s String) Len() int { return utf8.RuneCountInString(string(s)) }
