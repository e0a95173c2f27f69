package sourcemap

import (
	"encoding/base64"
	"encoding/json"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestEncodeVLQ(t *testing.T) {
	for _, test := range []struct {
		v    int
		want string
	}{
		{0, "A"},
		{1, "C"},
		{-1, "D"},
		{2, "E"},
		{15, "e"},
		{-15, "f"},
		{16, "gB"},
		{-16, "hB"},
		{123, "2H"},
		{1000, "w+B"},
	} {
		if got := EncodeVLQ(test.v); got != test.want {
			t.Errorf("EncodeVLQ(%d) = %q, want %q", test.v, got, test.want)
		}
	}
}

func TestVLQRoundTrip(t *testing.T) {
	var values []int
	var b strings.Builder
	for v := -1100; v <= 1100; v += 7 {
		values = append(values, v)
		b.WriteString(EncodeVLQ(v))
	}
	got, err := DecodeVLQ(b.String())
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(values, got); diff != "" {
		t.Errorf("round trip (-want +got):\n%s", diff)
	}
}

func TestDecodeVLQErrors(t *testing.T) {
	for _, s := range []string{"g", "A!", "Aé"} {
		if _, err := DecodeVLQ(s); err == nil {
			t.Errorf("DecodeVLQ(%q) succeeded", s)
		}
	}
}

func TestMappings(t *testing.T) {
	b := NewBuilder("main.js")
	if idx := b.AddSource("main.cs", "proměnná x = 1"); idx != 0 {
		t.Errorf("AddSource = %d, want 0", idx)
	}
	// Added out of order on purpose.
	b.Add(1, 2, 1, 0, "")
	b.Add(0, 4, 0, 9, "x")
	b.Add(0, 0, 0, 0, "")

	m := b.Build()
	if m.Mappings != "AAAA,IAASA;EACT" {
		t.Errorf("mappings = %q", m.Mappings)
	}
	if diff := cmp.Diff([]string{"x"}, m.Names); diff != "" {
		t.Errorf("names (-want +got):\n%s", diff)
	}

	lines, err := Decode(m.Mappings)
	if err != nil {
		t.Fatal(err)
	}
	want := [][]Segment{
		{
			{GenColumn: 0, Source: 0, SourceLine: 0, SourceColumn: 0, Name: -1},
			{GenColumn: 4, Source: 0, SourceLine: 0, SourceColumn: 9, Name: 0},
		},
		{
			{GenColumn: 2, Source: 0, SourceLine: 1, SourceColumn: 0, Name: -1},
		},
	}
	if diff := cmp.Diff(want, lines); diff != "" {
		t.Errorf("decoded (-want +got):\n%s", diff)
	}
}

func TestDeltasWithinLine(t *testing.T) {
	b := NewBuilder("out.js")
	b.AddSource("in.cs", "")
	cols := []int{0, 3, 7, 12, 20}
	for i, c := range cols {
		b.Add(0, c, 0, i*2, "")
	}
	m := b.Build()

	segments := strings.Split(m.Mappings, ",")
	if len(segments) != len(cols) {
		t.Fatalf("got %d segments, want %d", len(segments), len(cols))
	}
	prev := 0
	for i, seg := range segments {
		values, err := DecodeVLQ(seg)
		if err != nil {
			t.Fatal(err)
		}
		if values[0] != cols[i]-prev {
			t.Errorf("segment %d column delta = %d, want %d", i, values[0], cols[i]-prev)
		}
		if i > 0 && values[3] != 2 {
			t.Errorf("segment %d source column delta = %d, want 2", i, values[3])
		}
		prev = cols[i]
	}
}

func TestEmptyLines(t *testing.T) {
	b := NewBuilder("out.js")
	b.Add(3, 0, 1, 0, "")
	if got := b.Build().Mappings; got != ";;;AACA" {
		t.Errorf("mappings = %q, want %q", got, ";;;AACA")
	}
	lines, err := Decode(";;;AACA")
	if err != nil {
		t.Fatal(err)
	}
	if len(lines) != 4 || len(lines[0]) != 0 || lines[3][0].SourceLine != 1 {
		t.Errorf("decoded %v", lines)
	}
}

func TestJSON(t *testing.T) {
	b := NewBuilder("main.js")
	b.AddSource("main.cs", "vypis(1)")
	b.Add(0, 0, 0, 0, "vypis")

	data, err := b.Build().JSON()
	if err != nil {
		t.Fatal(err)
	}
	var got map[string]interface{}
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatal(err)
	}
	want := map[string]interface{}{
		"version":        float64(3),
		"file":           "main.js",
		"sourceRoot":     "",
		"sources":        []interface{}{"main.cs"},
		"sourcesContent": []interface{}{"vypis(1)"},
		"names":          []interface{}{"vypis"},
		"mappings":       "AAAAA",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("JSON (-want +got):\n%s", diff)
	}
}

func TestInlineComment(t *testing.T) {
	m := NewBuilder("a.js").Build()
	comment, err := m.InlineComment()
	if err != nil {
		t.Fatal(err)
	}
	const prefix = "//# sourceMappingURL=data:application/json;charset=utf-8;base64,"
	if !strings.HasPrefix(comment, prefix) {
		t.Fatalf("comment = %q", comment)
	}
	data, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(comment, prefix))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), `"version":3`) {
		t.Errorf("embedded map = %s", data)
	}
}
