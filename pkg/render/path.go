package render

import (
	"strconv"
	"strings"
)

// pathArgCount is the number of coordinates each path command consumes.
var pathArgCount = map[byte]int{
	'M': 2, // moveto
	'L': 2, // lineto
	'C': 6, // cubic Bezier (three point pairs)
	'Z': 0, // closepath
}

// pathOperator maps a path command to its PDF operator.
var pathOperator = map[byte]string{
	'M': "m",
	'L': "l",
	'C': "c",
	'Z': "h",
}

// ParsePathData maps an SVG-style path string to PDF path operators.
//
// Recognized commands are M/L/C/Z with whitespace- or comma-delimited
// float arguments. Lowercase commands are accepted but treated as
// absolute, not relative. A command without enough trailing numbers is
// skipped without emission; unparseable number tokens are dropped. The
// coordinates are expected to be in PDF space already.
func ParsePathData(d string) string {
	var b strings.Builder
	cmds := tokenize(d)
	for _, c := range cmds {
		want := pathArgCount[c.op]
		if len(c.args) < want {
			continue
		}
		for i := 0; i < want; i++ {
			b.WriteString(num(c.args[i]))
			b.WriteByte(' ')
		}
		b.WriteString(pathOperator[c.op])
		b.WriteByte('\n')
	}
	return b.String()
}

type pathCommand struct {
	op   byte // uppercased command letter
	args []float64
}

// tokenize splits path data into commands with their trailing number runs.
// Numbers may adjoin their command letter ("M10,20"); commas count as
// whitespace. Unknown command letters terminate the previous run and are
// otherwise ignored.
func tokenize(d string) []pathCommand {
	var cmds []pathCommand
	var cur *pathCommand

	flushNumber := func(tok string) {
		if tok == "" || cur == nil {
			return
		}
		if f, err := strconv.ParseFloat(tok, 64); err == nil {
			cur.args = append(cur.args, f)
		}
	}

	var numTok strings.Builder
	for i := 0; i < len(d); i++ {
		ch := d[i]
		switch {
		case isPathCommand(ch):
			flushNumber(numTok.String())
			numTok.Reset()
			cmds = append(cmds, pathCommand{op: upper(ch)})
			cur = &cmds[len(cmds)-1]
		case ch == ' ' || ch == '\t' || ch == '\n' || ch == '\r' || ch == ',':
			flushNumber(numTok.String())
			numTok.Reset()
		case isNumberChar(ch):
			// A sign after a complete number starts the next token
			// ("10-5" is two numbers), except inside an exponent ("1e-5").
			if (ch == '-' || ch == '+') && numTok.Len() > 0 {
				prev := numTok.String()[numTok.Len()-1]
				if prev != 'e' && prev != 'E' {
					flushNumber(numTok.String())
					numTok.Reset()
				}
			}
			numTok.WriteByte(ch)
		default:
			// Unrecognized byte: drop it and end any pending number.
			flushNumber(numTok.String())
			numTok.Reset()
		}
	}
	flushNumber(numTok.String())
	return cmds
}

func isPathCommand(ch byte) bool {
	_, ok := pathArgCount[upper(ch)]
	return ok
}

func upper(ch byte) byte {
	if ch >= 'a' && ch <= 'z' {
		return ch - 'a' + 'A'
	}
	return ch
}

func isNumberChar(ch byte) bool {
	return (ch >= '0' && ch <= '9') || ch == '.' || ch == '-' || ch == '+' || ch == 'e' || ch == 'E'
}
