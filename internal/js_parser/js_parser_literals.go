package js_parser

import (
	"strconv"
	"strings"
)

// parseNumericLiteral decodes a numeric token's raw text into a float64,
// handling the hex/binary/octal prefixes, numeric separators, and the
// bigint `n` suffix (rewriting never needs bigint precision, only the
// value for is-this-a-literal checks like NotLit's `!0`/`!1`).
func parseNumericLiteral(raw string) float64 {
	s := strings.ReplaceAll(raw, "_", "")
	s = strings.TrimSuffix(s, "n")

	if len(s) > 1 && s[0] == '0' {
		switch s[1] {
		case 'x', 'X':
			if v, err := strconv.ParseUint(s[2:], 16, 64); err == nil {
				return float64(v)
			}
		case 'b', 'B':
			if v, err := strconv.ParseUint(s[2:], 2, 64); err == nil {
				return float64(v)
			}
		case 'o', 'O':
			if v, err := strconv.ParseUint(s[2:], 8, 64); err == nil {
				return float64(v)
			}
		}
	}

	if v, err := strconv.ParseFloat(s, 64); err == nil {
		return v
	}
	return 0
}

// decodeStringLiteral strips the surrounding quotes and resolves escape
// sequences from a string token's raw text.
func decodeStringLiteral(raw string) string {
	if len(raw) < 2 {
		return ""
	}
	body := raw[1 : len(raw)-1]

	var b strings.Builder
	for i := 0; i < len(body); i++ {
		c := body[i]
		if c != '\\' || i+1 >= len(body) {
			b.WriteByte(c)
			continue
		}
		i++
		esc := body[i]
		switch esc {
		case 'n':
			b.WriteByte('\n')
		case 't':
			b.WriteByte('\t')
		case 'r':
			b.WriteByte('\r')
		case 'b':
			b.WriteByte('\b')
		case 'f':
			b.WriteByte('\f')
		case 'v':
			b.WriteByte('\v')
		case '0':
			b.WriteByte(0)
		case '\n':
			// line continuation: escaped newline contributes nothing
		case 'x':
			if i+2 < len(body) {
				if v, err := strconv.ParseUint(body[i+1:i+3], 16, 32); err == nil {
					b.WriteRune(rune(v))
					i += 2
					continue
				}
			}
			b.WriteByte(esc)
		case 'u':
			if i+1 < len(body) && body[i+1] == '{' {
				end := strings.IndexByte(body[i+1:], '}')
				if end >= 0 {
					hex := body[i+2 : i+1+end]
					if v, err := strconv.ParseUint(hex, 16, 32); err == nil {
						b.WriteRune(rune(v))
					}
					i += 1 + end
					continue
				}
			}
			if i+4 < len(body) {
				if v, err := strconv.ParseUint(body[i+1:i+5], 16, 32); err == nil {
					b.WriteRune(rune(v))
					i += 4
					continue
				}
			}
			b.WriteByte(esc)
		default:
			b.WriteByte(esc)
		}
	}
	return b.String()
}
