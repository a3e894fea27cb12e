package token

import (
	"regexp"
	"testing"
)

func TestSanitize(t *testing.T) {
	cases := map[string]string{
		"London":                               "London",
		"2024-04-14":                           "2024_04_14",
		"Apr 14, 2024":                         "Apr_14_2024",
		"a--b..c":                              "a_b_c",
		"snake_case":                           "snake_case",
		"550e8400-e29b-41d4-a716-446655440000": "550e8400_e29b_41d4_a716_446655440000",
	}
	for in, want := range cases {
		if got := Sanitize(in); got != want {
			t.Errorf("Sanitize(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestKindNamesRoundTrip(t *testing.T) {
	for _, k := range []Kind{UUID, Number, DateTime, String} {
		got, ok := KindFromName(k.String())
		if !ok || got != k {
			t.Errorf("KindFromName(%q) = %v, %v", k.String(), got, ok)
		}
	}
	if _, ok := KindFromName("param"); ok {
		t.Error("param is not a placeholder kind")
	}
}

func TestParsePlaceholder(t *testing.T) {
	kind, payload, ok := ParsePlaceholder("{number_42}")
	if !ok || kind != Number || payload != "42" {
		t.Fatalf("got %v %q %v", kind, payload, ok)
	}

	for _, s := range []string{"{number_42}x", "{id}", "number_42", "{number_4-2}", "{}"} {
		if _, _, ok := ParsePlaceholder(s); ok {
			t.Errorf("%q should not parse as a placeholder", s)
		}
	}
}

func TestUUIDFromPayload(t *testing.T) {
	const raw = "550e8400-e29b-41d4-a716-446655440000"
	u, err := UUIDFromPayload(Sanitize(raw))
	if err != nil {
		t.Fatalf("UUIDFromPayload: %v", err)
	}
	if u.String() != raw {
		t.Errorf("got %s, want %s", u, raw)
	}

	if _, err := UUIDFromPayload("550e8400e29b_41d4_a716_4466554400000"); err == nil {
		t.Error("expected error for misplaced separators")
	}
	if _, err := UUIDFromPayload("short"); err == nil {
		t.Error("expected error for short payload")
	}
}

func TestTokenRendering(t *testing.T) {
	tok := Token{Pieces: []Piece{
		{Kind: Literal, Text: "report-"},
		{Kind: DateTime, Text: "2024-04-14"},
		{Kind: Literal, Text: ".csv"},
	}}
	if tok.IsLiteral() {
		t.Error("token with a tagged piece is not literal")
	}
	if tok.Kind() != DateTime {
		t.Errorf("Kind() = %v", tok.Kind())
	}
	if got := tok.Text(); got != "report-2024-04-14.csv" {
		t.Errorf("Text() = %q", got)
	}
	if got := tok.String(); got != "report-{DateTime_2024_04_14}.csv" {
		t.Errorf("String() = %q", got)
	}
}

func TestStreamSplitPreservesStructure(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"/users/42/orders", "/users/42/orders"},
		{"users/42", "users/42"},
		{"/a,b,  c/d", "/a, b, c/d"},
		{"//double//", "//double//"},
		{"", ""},
		{"/trailing/", "/trailing/"},
		{"/ spaced /x", "/spaced/x"},
	}
	for _, tt := range tests {
		got := NewStream(tt.in).Split().String()
		if got != tt.want {
			t.Errorf("Split(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestStreamTagKeepsMatchesAtomic(t *testing.T) {
	re := regexp.MustCompile(`\d{2}/\d{2}/\d{4}`)
	path := NewStream("/reports/14/04/2024/summary").Tag(re, DateTime, nil).Split()

	if got := path.String(); got != "/reports/{DateTime_14_04_2024}/summary" {
		t.Fatalf("got %q", got)
	}
	if len(path.Segments) != 4 {
		t.Errorf("expected 4 segments, got %d", len(path.Segments))
	}
}

func TestStreamTagSkipsTaggedPieces(t *testing.T) {
	digits := regexp.MustCompile(`\d+`)
	s := NewStream("/x/{UUID_550e8400_e29b_41d4_a716_446655440000}/7")
	got := s.Tag(digits, Number, nil).String()
	want := "/x/{UUID_550e8400_e29b_41d4_a716_446655440000}/{number_7}"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestStreamTagAcceptVeto(t *testing.T) {
	digits := regexp.MustCompile(`\d+`)
	got := NewStream("/1/22/333").Tag(digits, Number, func(m string) bool { return len(m) > 1 }).String()
	if got != "/1/{number_22}/{number_333}" {
		t.Errorf("got %q", got)
	}
}

func TestNewStreamRecognizesPlaceholders(t *testing.T) {
	s := NewStream("/files/{string_aZ9kT3pQ7mXcVb2}/download")
	if len(s) != 3 {
		t.Fatalf("expected 3 pieces, got %d: %+v", len(s), s)
	}
	if s[1].Kind != String || s[1].Text != "aZ9kT3pQ7mXcVb2" {
		t.Errorf("unexpected middle piece %+v", s[1])
	}
	if s.String() != "/files/{string_aZ9kT3pQ7mXcVb2}/download" {
		t.Errorf("rendering changed: %q", s.String())
	}
}

func TestPathRetagAndLiterals(t *testing.T) {
	path := NewStream("/users/London/profile/London").Split()

	literals := path.Literals()
	if len(literals) != 3 {
		t.Fatalf("expected 3 distinct literals, got %v", literals)
	}

	counts := path.Retag(func(text string) (Kind, bool) {
		return String, text == "London"
	})
	if counts[String] != 2 {
		t.Errorf("expected 2 retagged tokens, got %d", counts[String])
	}
	if got := path.String(); got != "/users/{string_London}/profile/{string_London}" {
		t.Errorf("got %q", got)
	}

	// tagged tokens are never offered again
	offered := 0
	path.Retag(func(text string) (Kind, bool) {
		offered++
		return Literal, false
	})
	if offered != 2 {
		t.Errorf("expected 2 literal tokens offered, got %d", offered)
	}
}

func TestPathSentence(t *testing.T) {
	path := NewStream("/users/London/profile").Split()
	if got := path.Sentence(); got != " users London profile" {
		t.Errorf("Sentence() = %q", got)
	}
}

func TestPathCloneIsDeep(t *testing.T) {
	orig := NewStream("/a/b").Split()
	cp := orig.Clone()
	cp.Retag(func(string) (Kind, bool) { return String, true })
	if orig.String() != "/a/b" {
		t.Errorf("clone mutation leaked into original: %q", orig.String())
	}
}
