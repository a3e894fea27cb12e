package token

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/google/uuid"
)

// Kind classifies a piece of path text
type Kind int

const (
	Literal Kind = iota
	UUID
	Number
	DateTime
	String
)

// String returns the placeholder name of the kind
func (k Kind) String() string {
	switch k {
	case UUID:
		return "UUID"
	case Number:
		return "number"
	case DateTime:
		return "DateTime"
	case String:
		return "string"
	default:
		return "literal"
	}
}

// KindFromName maps a placeholder kind name back to its Kind
func KindFromName(name string) (Kind, bool) {
	switch name {
	case "UUID":
		return UUID, true
	case "number":
		return Number, true
	case "DateTime":
		return DateTime, true
	case "string":
		return String, true
	}
	return Literal, false
}

var (
	unsafeRun   = regexp.MustCompile(`[^A-Za-z0-9_]+`)
	placeholder = regexp.MustCompile(`\{(UUID|number|DateTime|string)_([A-Za-z0-9_]+)\}`)
)

// Sanitize collapses every run of characters outside [A-Za-z0-9_] into a single underscore
func Sanitize(s string) string {
	return unsafeRun.ReplaceAllString(s, "_")
}

// ParsePlaceholder recognizes a rendered placeholder such as {number_42}.
func ParsePlaceholder(s string) (Kind, string, bool) {
	m := placeholder.FindStringSubmatch(s)
	if m == nil || m[0] != s {
		return Literal, "", false
	}
	kind, _ := KindFromName(m[1])
	return kind, m[2], true
}

// UUIDFromPayload recovers the UUID encoded in a {UUID_...} payload.
// Underscores are turned back into dashes only at the 8-4-4-4-12 group boundaries.
func UUIDFromPayload(payload string) (uuid.UUID, error) {
	if len(payload) != 36 {
		return uuid.UUID{}, fmt.Errorf("uuid payload %q: want 36 characters, got %d", payload, len(payload))
	}
	b := []byte(payload)
	for _, i := range []int{8, 13, 18, 23} {
		if b[i] != '_' {
			return uuid.UUID{}, fmt.Errorf("uuid payload %q: no separator at %d", payload, i)
		}
		b[i] = '-'
	}
	return uuid.Parse(string(b))
}

// Piece is a run of original path text with its classification
type Piece struct {
	Kind Kind
	Text string
}

// Render returns the external form of the piece: literal text as is,
// tagged text as {kind_sanitized}.
func (p Piece) Render() string {
	if p.Kind == Literal {
		return p.Text
	}
	return "{" + p.Kind.String() + "_" + Sanitize(p.Text) + "}"
}

// Token is the smallest classification unit: a full segment or one
// comma-separated sub-token of a segment. A token usually holds a single
// piece; it holds several when a structural match sits inside literal text.
type Token struct {
	Pieces []Piece
}

// NewLiteral creates an untouched token
func NewLiteral(text string) Token {
	return Token{Pieces: []Piece{{Kind: Literal, Text: text}}}
}

// NewTagged creates a token fully covered by one tagged piece
func NewTagged(kind Kind, text string) Token {
	return Token{Pieces: []Piece{{Kind: kind, Text: text}}}
}

// IsLiteral reports whether no stage has tagged any part of the token.
func (t Token) IsLiteral() bool {
	for _, p := range t.Pieces {
		if p.Kind != Literal {
			return false
		}
	}
	return true
}

// Kind returns Literal for untouched tokens, otherwise the kind of the
// first tagged piece.
func (t Token) Kind() Kind {
	for _, p := range t.Pieces {
		if p.Kind != Literal {
			return p.Kind
		}
	}
	return Literal
}

// Text returns the original text of the token
func (t Token) Text() string {
	var b strings.Builder
	for _, p := range t.Pieces {
		b.WriteString(p.Text)
	}
	return b.String()
}

// String renders the token with placeholders
func (t Token) String() string {
	var b strings.Builder
	for _, p := range t.Pieces {
		b.WriteString(p.Render())
	}
	return b.String()
}

// Segment is one '/'-delimited component of a path
type Segment []Token

// String joins the sub-tokens of the segment with ", "
func (s Segment) String() string {
	parts := make([]string, len(s))
	for i, t := range s {
		parts[i] = t.String()
	}
	return strings.Join(parts, ", ")
}

// Path is a tokenized path. The empty leading segment of an absolute
// path is kept so that rendering restores the leading slash.
type Path struct {
	Segments []Segment
}

// String assembles the final template
func (p Path) String() string {
	parts := make([]string, len(p.Segments))
	for i, s := range p.Segments {
		parts[i] = s.String()
	}
	return strings.Join(parts, "/")
}

// Sentence renders the path as space-separated words for entity recognition
func (p Path) Sentence() string {
	return strings.ReplaceAll(p.String(), "/", " ")
}

// Literals returns the distinct non-empty untouched token texts in order of
// first appearance.
func (p Path) Literals() []string {
	seen := make(map[string]struct{})
	var out []string
	for _, seg := range p.Segments {
		for _, t := range seg {
			if !t.IsLiteral() {
				continue
			}
			text := t.Text()
			if text == "" {
				continue
			}
			if _, ok := seen[text]; ok {
				continue
			}
			seen[text] = struct{}{}
			out = append(out, text)
		}
	}
	return out
}

// Retag offers every untouched token to classify and replaces it with a
// fully tagged token when classify accepts it. Tagged tokens are never
// offered. Returns the number of tokens tagged per kind.
func (p Path) Retag(classify func(text string) (Kind, bool)) map[Kind]int {
	counts := make(map[Kind]int)
	for _, seg := range p.Segments {
		for i, t := range seg {
			if !t.IsLiteral() {
				continue
			}
			text := t.Text()
			if text == "" {
				continue
			}
			kind, ok := classify(text)
			if !ok || kind == Literal {
				continue
			}
			seg[i] = NewTagged(kind, text)
			counts[kind]++
		}
	}
	return counts
}

// Counts returns the number of tagged pieces per kind
func (p Path) Counts() map[Kind]int {
	counts := make(map[Kind]int)
	for _, seg := range p.Segments {
		for _, t := range seg {
			for _, piece := range t.Pieces {
				if piece.Kind != Literal {
					counts[piece.Kind]++
				}
			}
		}
	}
	return counts
}

// Clone returns a deep copy of the path
func (p Path) Clone() Path {
	out := Path{Segments: make([]Segment, len(p.Segments))}
	for i, seg := range p.Segments {
		cp := make(Segment, len(seg))
		for j, t := range seg {
			cp[j] = Token{Pieces: append([]Piece(nil), t.Pieces...)}
		}
		out.Segments[i] = cp
	}
	return out
}
