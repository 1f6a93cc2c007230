package slide

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestSplitLines(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want []string
	}{
		{"empty", "", []string{}},
		{"single line", "Amazing grace", []string{"Amazing grace"}},
		{"unix breaks", "a\nb\nc", []string{"a", "b", "c"}},
		{"windows breaks", "a\r\nb", []string{"a", "b"}},
		{"old mac breaks", "a\rb", []string{"a", "b"}},
		{"trailing break", "a\nb\n\n", []string{"a", "b"}},
		{"inner blank line kept", "a\n\nb", []string{"a", "", "b"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := SplitLines(tt.in)
			if strings.Join(got, "|") != strings.Join(tt.want, "|") || len(got) != len(tt.want) {
				t.Errorf("SplitLines(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestSlideIsImmutable(t *testing.T) {
	t.Parallel()

	src := []string{"one", "two"}
	s := New(src, Provenance{Kind: KindSong, Source: "Song", Label: "V1"})

	src[0] = "changed"
	if s.Lines()[0] != "one" {
		t.Error("slide payload changed after mutating constructor input")
	}

	lines := s.Lines()
	lines[1] = "changed"
	if s.Lines()[1] != "two" {
		t.Error("slide payload changed after mutating accessor result")
	}
}

func TestWithPosition(t *testing.T) {
	t.Parallel()

	s := FromText("a\nb", Provenance{Kind: KindScripture, Label: "Genesis 1:1"})
	moved := s.WithPosition(7)

	if s.Position() != 0 {
		t.Errorf("original position = %d, want 0", s.Position())
	}
	if moved.Position() != 7 {
		t.Errorf("moved position = %d, want 7", moved.Position())
	}
	if moved.Text() != "a\nb" {
		t.Errorf("moved text = %q", moved.Text())
	}
}

func TestRenumber(t *testing.T) {
	t.Parallel()

	in := []Slide{
		FromText("a", Provenance{Label: "A"}).WithPosition(4),
		FromText("b", Provenance{Label: "B"}).WithPosition(0),
		FromText("c", Provenance{Label: "C"}).WithPosition(4),
	}

	out := Renumber(in)
	if len(out) != len(in) {
		t.Fatalf("len = %d, want %d", len(out), len(in))
	}
	for i, s := range out {
		if s.Position() != i {
			t.Errorf("slide %d position = %d", i, s.Position())
		}
		if s.Provenance().Label != in[i].Provenance().Label {
			t.Errorf("slide %d label = %q, want %q", i, s.Provenance().Label, in[i].Provenance().Label)
		}
	}
	if in[0].Position() != 4 {
		t.Error("Renumber modified its input")
	}
}

func TestEqual(t *testing.T) {
	t.Parallel()

	p := Provenance{Kind: KindSong, Source: "S", Label: "C"}
	a := FromText("x\ny", p)
	b := New([]string{"x", "y"}, p)

	if !a.Equal(b) {
		t.Error("identical slides should be equal")
	}
	if a.Equal(b.WithPosition(1)) {
		t.Error("slides at different positions should not be equal")
	}
	if a.Equal(FromText("x", p)) {
		t.Error("slides with different payloads should not be equal")
	}
}

func TestProvenanceString(t *testing.T) {
	t.Parallel()

	tests := []struct {
		p    Provenance
		want string
	}{
		{Provenance{Kind: KindSong, Source: "Be Thou My Vision", Label: "V1"}, "Be Thou My Vision [V1]"},
		{Provenance{Kind: KindScripture, Source: "KJV", Label: "Genesis 1:1"}, "Genesis 1:1 (KJV)"},
		{Provenance{Kind: KindScripture, Label: "Genesis 1:1"}, "Genesis 1:1"},
	}

	for _, tt := range tests {
		if got := tt.p.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}

func TestMarshalJSON(t *testing.T) {
	t.Parallel()

	s := FromText("In the beginning", Provenance{Kind: KindScripture, Source: "KJV", Label: "Genesis 1:1"}).WithPosition(3)

	data, err := json.Marshal(s)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}

	var decoded map[string]interface{}
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}

	if decoded["position"].(float64) != 3 {
		t.Errorf("position = %v, want 3", decoded["position"])
	}
	lines := decoded["lines"].([]interface{})
	if len(lines) != 1 || lines[0] != "In the beginning" {
		t.Errorf("lines = %v", lines)
	}

	empty, err := json.Marshal(Slide{})
	if err != nil {
		t.Fatalf("Marshal of zero slide failed: %v", err)
	}
	if !strings.Contains(string(empty), `"lines":[]`) {
		t.Errorf("zero slide should marshal empty lines array, got %s", empty)
	}
}
