package loader

import (
	"strconv"
	"strings"

	"github.com/jkopecky/ipp19exec/lang/ipperr"
)

// decodeInt parses an int@ literal payload: decimal with an optional leading
// sign (§4.1). Any other form is a load-time structural error.
func decodeInt(raw string) (int64, error) {
	n, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil {
		return 0, ipperr.New(ipperr.InvalidStructure, "invalid int literal %q: %s", raw, err)
	}
	return n, nil
}

// decodeBool parses a bool@ literal payload: exactly "true" or "false".
func decodeBool(raw string) (bool, error) {
	switch raw {
	case "true":
		return true, nil
	case "false":
		return false, nil
	default:
		return false, ipperr.New(ipperr.InvalidStructure, "invalid bool literal %q", raw)
	}
}

// decodeNil validates a nil@ literal payload: exactly "nil".
func decodeNil(raw string) error {
	if raw != "nil" {
		return ipperr.New(ipperr.InvalidStructure, "invalid nil literal %q", raw)
	}
	return nil
}

// decodeString decodes a string@ literal payload, translating \ddd
// three-digit decimal escapes into the code point they denote (§4.1).
// Unicode text outside the escape sequences passes through unchanged.
func decodeString(raw string) (string, error) {
	if !strings.Contains(raw, `\`) {
		return raw, nil
	}

	var b strings.Builder
	b.Grow(len(raw))
	runes := []rune(raw)
	for i := 0; i < len(runes); i++ {
		if runes[i] != '\\' {
			b.WriteRune(runes[i])
			continue
		}
		if i+3 >= len(runes) {
			return "", ipperr.New(ipperr.InvalidStructure, "invalid \\ddd escape in string literal %q", raw)
		}
		digits := string(runes[i+1 : i+4])
		code, err := strconv.Atoi(digits)
		if err != nil {
			return "", ipperr.New(ipperr.InvalidStructure, "invalid \\ddd escape %q in string literal %q", digits, raw)
		}
		b.WriteRune(rune(code))
		i += 3
	}
	return b.String(), nil
}

// decodeOrder parses the order attribute: a strictly positive integer.
func decodeOrder(raw string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n <= 0 {
		return 0, ipperr.New(ipperr.InvalidStructure, "invalid instruction order %q: %s", raw, errOrMsg(err))
	}
	return n, nil
}

func errOrMsg(err error) string {
	if err != nil {
		return err.Error()
	}
	return "must be strictly positive"
}
