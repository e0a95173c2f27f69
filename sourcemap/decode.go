package sourcemap

import (
	"strings"

	"github.com/ztrue/tracerr"
)

// Segment is one decoded mapping with absolute positions. Source and Name
// are -1 when the segment does not carry them.
type Segment struct {
	GenColumn    int
	Source       int
	SourceLine   int
	SourceColumn int
	Name         int
}

// Decode turns a mappings string back into absolute segments, one slice per
// generated line.
func Decode(mappings string) ([][]Segment, error) {
	var lines [][]Segment
	var source, srcLine, srcCol, name int
	for n, group := range strings.Split(mappings, ";") {
		var (
			line []Segment
			col  int
		)
		if group != "" {
			for _, seg := range strings.Split(group, ",") {
				values, err := DecodeVLQ(seg)
				if err != nil {
					return nil, tracerr.Wrap(err)
				}

				s := Segment{Source: -1, Name: -1}
				switch len(values) {
				case 1, 4, 5:
				default:
					return nil, tracerr.Errorf("line %d: segment %q has %d fields", n, seg, len(values))
				}

				col += values[0]
				s.GenColumn = col
				if len(values) >= 4 {
					source += values[1]
					srcLine += values[2]
					srcCol += values[3]
					s.Source, s.SourceLine, s.SourceColumn = source, srcLine, srcCol
				}
				if len(values) == 5 {
					name += values[4]
					s.Name = name
				}
				line = append(line, s)
			}
		}
		lines = append(lines, line)
	}
	return lines, nil
}
