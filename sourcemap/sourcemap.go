// Package sourcemap records where generated code came from and encodes it
// as a version 3 source map.
//
// Lines and columns passed to the Builder are zero-based.
package sourcemap

import (
	"encoding/base64"
	"encoding/json"
	"sort"
	"strings"
)

type mapping struct {
	genLine, genCol int
	source          int
	srcLine, srcCol int
	name            int
}

type Builder struct {
	file     string
	sources  []string
	contents []string
	names    []string
	nameIdx  map[string]int
	mappings []mapping
}

func NewBuilder(file string) *Builder {
	return &Builder{file: file, nameIdx: map[string]int{}}
}

// AddSource registers an original file and returns its index. Later Add
// calls refer to the most recently added source.
func (b *Builder) AddSource(name, content string) int {
	b.sources = append(b.sources, name)
	b.contents = append(b.contents, content)
	return len(b.sources) - 1
}

// Add records that generated position (genLine, genCol) comes from
// (srcLine, srcCol). name may be empty.
func (b *Builder) Add(genLine, genCol, srcLine, srcCol int, name string) {
	if len(b.sources) == 0 {
		b.AddSource("", "")
	}
	m := mapping{
		genLine: genLine,
		genCol:  genCol,
		source:  len(b.sources) - 1,
		srcLine: srcLine,
		srcCol:  srcCol,
		name:    -1,
	}
	if name != "" {
		idx, ok := b.nameIdx[name]
		if !ok {
			idx = len(b.names)
			b.names = append(b.names, name)
			b.nameIdx[name] = idx
		}
		m.name = idx
	}
	b.mappings = append(b.mappings, m)
}

// Len returns the number of recorded mappings.
func (b *Builder) Len() int {
	return len(b.mappings)
}

type Map struct {
	Version        int      `json:"version"`
	File           string   `json:"file"`
	SourceRoot     string   `json:"sourceRoot"`
	Sources        []string `json:"sources"`
	SourcesContent []string `json:"sourcesContent"`
	Names          []string `json:"names"`
	Mappings       string   `json:"mappings"`
}

func (b *Builder) Build() *Map {
	m := &Map{
		Version:        3,
		File:           b.file,
		Sources:        append([]string{}, b.sources...),
		SourcesContent: append([]string{}, b.contents...),
		Names:          append([]string{}, b.names...),
		Mappings:       b.encode(),
	}
	return m
}

// encode sorts the mappings by generated position and writes them as
// semicolon separated lines of comma separated segments. Every field but
// the generated line is a delta from the previous segment; the generated
// column restarts at each line.
func (b *Builder) encode() string {
	sorted := append([]mapping{}, b.mappings...)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].genLine != sorted[j].genLine {
			return sorted[i].genLine < sorted[j].genLine
		}
		return sorted[i].genCol < sorted[j].genCol
	})

	var out strings.Builder
	var line, prevCol int
	var prevSource, prevLine, prevSrcCol, prevName int
	for i, m := range sorted {
		if m.genLine > line {
			out.WriteString(strings.Repeat(";", m.genLine-line))
			line = m.genLine
			prevCol = 0
		} else if i > 0 {
			out.WriteByte(',')
		}

		writeVLQ(&out, m.genCol-prevCol)
		writeVLQ(&out, m.source-prevSource)
		writeVLQ(&out, m.srcLine-prevLine)
		writeVLQ(&out, m.srcCol-prevSrcCol)
		if m.name >= 0 {
			writeVLQ(&out, m.name-prevName)
			prevName = m.name
		}

		prevCol = m.genCol
		prevSource = m.source
		prevLine = m.srcLine
		prevSrcCol = m.srcCol
	}

	return out.String()
}

func (m *Map) JSON() ([]byte, error) {
	return json.Marshal(m)
}

// InlineComment returns a sourceMappingURL comment carrying the whole map as
// a data URL.
func (m *Map) InlineComment() (string, error) {
	data, err := m.JSON()
	if err != nil {
		return "", err
	}
	return "//# sourceMappingURL=data:application/json;charset=utf-8;base64," + base64.StdEncoding.EncodeToString(data), nil
}
