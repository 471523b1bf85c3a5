package gcode

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/tdewolff/parse/v2/strconv"
)

// ErrSyntax is returned by Parse for malformed lines.
var ErrSyntax = errors.New("gcode: syntax error")

// Move is one parsed G00/G01 command. Axes absent from the command are
// reported through the Has fields.
type Move struct {
	X, Y, Z float64
	F       float64

	HasX, HasY, HasZ, HasF bool
}

// Parse reads linear moves (G00, G01, G0, G1) from r. Blank lines and
// comments introduced by ';' or enclosed in parentheses are skipped; any
// other command is an error.
func Parse(r io.Reader) ([]Move, error) {
	var moves []Move
	sc := bufio.NewScanner(r)
	for lineNo := 1; sc.Scan(); lineNo++ {
		line := stripComment(sc.Bytes())
		fields := bytes.Fields(line)
		if len(fields) == 0 {
			continue
		}
		switch string(fields[0]) {
		case "G00", "G01", "G0", "G1":
		default:
			return nil, fmt.Errorf("%w: line %d: unsupported command %q", ErrSyntax, lineNo, fields[0])
		}

		var m Move
		for _, word := range fields[1:] {
			if len(word) < 2 {
				return nil, fmt.Errorf("%w: line %d: bad word %q", ErrSyntax, lineNo, word)
			}
			v, n := strconv.ParseFloat(word[1:])
			if n != len(word)-1 {
				return nil, fmt.Errorf("%w: line %d: bad number in %q", ErrSyntax, lineNo, word)
			}
			switch word[0] {
			case 'X', 'x':
				m.X, m.HasX = v, true
			case 'Y', 'y':
				m.Y, m.HasY = v, true
			case 'Z', 'z':
				m.Z, m.HasZ = v, true
			case 'F', 'f':
				m.F, m.HasF = v, true
			default:
				return nil, fmt.Errorf("%w: line %d: unknown axis %q", ErrSyntax, lineNo, word[0])
			}
		}
		moves = append(moves, m)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("gcode: %w", err)
	}
	return moves, nil
}

func stripComment(line []byte) []byte {
	if i := bytes.IndexByte(line, ';'); i >= 0 {
		line = line[:i]
	}
	if i := bytes.IndexByte(line, '('); i >= 0 {
		if j := bytes.IndexByte(line[i:], ')'); j >= 0 {
			line = append(line[:i:i], line[i+j+1:]...)
		} else {
			line = line[:i]
		}
	}
	return line
}
