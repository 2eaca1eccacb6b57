package render

import (
	"fmt"
	"strings"
	"unicode/utf16"
)

// emojiPairs maps known surrogate pairs (UTF-16 code units) to the two
// bytes written into hex string literals. The table is a small closed set;
// anything outside it degrades to the '?' placeholder.
var emojiPairs = map[[2]uint16][2]byte{
	{0xD83D, 0xDE00}: {':', ')'}, // grinning face
	{0xD83D, 0xDE0A}: {':', ')'}, // smiling face
	{0xD83D, 0xDC4D}: {'+', '1'}, // thumbs up
	{0xD83D, 0xDE80}: {'-', '>'}, // rocket
	{0xD83D, 0xDD25}: {'*', '*'}, // fire
}

// bmpBytes maps a few standalone BMP code points to fixed replacement
// bytes.
var bmpBytes = map[uint16][]byte{
	0x26A0: {'!', '!'}, // warning sign
	0x2713: {'v'},      // check mark
	0x2022: {0x95},     // bullet (WinAnsi bullet)
}

const placeholderByte = 0x3F // '?'

// EncodeText maps a Unicode string to a PDF string literal. Pure-ASCII
// content (every UTF-16 code unit <= 127) becomes a parenthesized literal
// with backslash escapes; anything else becomes a hex string built from
// the fixed byte tables above, with unmapped content degrading to '?'.
func EncodeText(s string) string {
	units := utf16.Encode([]rune(s))
	ascii := true
	for _, u := range units {
		if u > 127 {
			ascii = false
			break
		}
	}
	if ascii {
		return "(" + escapeLiteral(s) + ")"
	}
	return hexLiteral(units)
}

// escapeLiteral escapes backslash and parentheses per the PDF string
// literal syntax.
func escapeLiteral(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		switch c := s[i]; c {
		case '\\', '(', ')':
			b.WriteByte('\\')
			b.WriteByte(c)
		default:
			b.WriteByte(c)
		}
	}
	return b.String()
}

// hexLiteral builds a <HH...> hex string byte by byte from UTF-16 code
// units: known surrogate pairs and BMP table entries map to fixed bytes,
// code units <= 255 pass through, everything else becomes the placeholder.
func hexLiteral(units []uint16) string {
	var bytes []byte
	for i := 0; i < len(units); i++ {
		u := units[i]
		if u >= 0xD800 && u <= 0xDBFF {
			// High surrogate: try to pair with the next unit.
			if i+1 < len(units) && units[i+1] >= 0xDC00 && units[i+1] <= 0xDFFF {
				if pair, ok := emojiPairs[[2]uint16{u, units[i+1]}]; ok {
					bytes = append(bytes, pair[0], pair[1])
				} else {
					bytes = append(bytes, placeholderByte)
				}
				i++
				continue
			}
			bytes = append(bytes, placeholderByte)
			continue
		}
		if mapped, ok := bmpBytes[u]; ok {
			bytes = append(bytes, mapped...)
			continue
		}
		if u <= 255 {
			bytes = append(bytes, byte(u))
			continue
		}
		bytes = append(bytes, placeholderByte)
	}

	var b strings.Builder
	b.Grow(2 + 2*len(bytes))
	b.WriteByte('<')
	for _, c := range bytes {
		fmt.Fprintf(&b, "%02X", c)
	}
	b.WriteByte('>')
	return b.String()
}
