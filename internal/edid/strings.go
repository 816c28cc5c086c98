package edid

import (
	"strings"

	"golang.org/x/text/encoding/charmap"
)

// Unprintable characters are shown as this glyph when strings are
// converted to UTF-8.
const unprintable = "▯"

// cp437Low are the glyphs code page 437 shows for the control codes
// 0x00-0x1f. charmap.CodePage437 maps them to the control characters
// themselves.
var cp437Low = [32]string{
	"▯", "☺", "☻", "♥", "♦", "♣", "♠", "•", "◘", "○", "◙", "♂", "♀", "♪", "♫", "☼",
	"►", "◄", "↕", "‼", "¶", "§", "▬", "↨", "↑", "↓", "→", "←", "∟", "↔", "▲", "▼",
}

// glyph returns the UTF-8 rendering of c in code page 437 (base block
// strings) or ISO 8859-1 (DisplayID strings).
func glyph(c byte, isCP437 bool) string {
	if isCP437 {
		switch {
		case c < 0x20:
			return cp437Low[c]
		case c == 0x7f:
			return "⌂"
		case c == 0xff:
			return unprintable
		}
		return string(charmap.CodePage437.DecodeByte(c))
	}
	if c < 0x20 || (c >= 0x7f && c < 0xa1) || c == 0xad {
		return unprintable
	}
	return string(charmap.ISO8859_1.DecodeByte(c))
}

// extractString decodes a descriptor string, checking its termination:
// the text ends with a newline that is followed only by spaces.
func (s *state) extractString(x []byte, isCP437 bool) string {
	var b strings.Builder
	seenNewline := false
	addedSpace := false

	for i, c := range x {
		nonASCII := (c >= 1 && c < 0x20 && c != 0x0a) || c >= 0x7f

		switch {
		case seenNewline:
			if c != 0x20 {
				s.fail("Non-space after newline.\n")
				return b.String()
			}
		case c == 0x0a:
			seenNewline = true
			if i == 0 {
				s.fail("Empty string.\n")
			} else if addedSpace {
				s.fail("One or more trailing spaces before newline.\n")
			}
			addedSpace = false
		case c == 0:
			s.fail("NUL byte at position %d.\n", i)
			return b.String()
		case c == 0xff:
			s.fail("0xff byte at position %d.\n", i)
			return b.String()
		case !nonASCII:
			addedSpace = c == ' '
			b.WriteByte(c)
		default:
			if s.opts.UTF8 {
				g := glyph(c, isCP437)
				s.warn("Non-ASCII character 0x%02x (%s) at position %d, can cause problems.\n", c, g, i)
				b.WriteString(g)
			} else {
				s.warn("Non-ASCII character 0x%02x at position %d, can cause problems.\n", c, i)
				b.WriteByte('.')
			}
			addedSpace = false
		}
	}
	if !seenNewline && addedSpace {
		s.fail("No newline, but one or more trailing spaces.\n")
	}
	return b.String()
}
