package token

import (
	"regexp"
	"strings"
	"unicode"
)

// Stream is a path held as a flat run of pieces, before it is split into
// segments. Pattern passes only ever look inside literal pieces, so tags are
// applied left to right and never overlap or nest.
type Stream []Piece

// NewStream wraps raw path text. Placeholders already present in the text
// (the output of an earlier run) become tagged pieces and are left alone.
func NewStream(s string) Stream {
	var out Stream
	last := 0
	for _, m := range placeholder.FindAllStringSubmatchIndex(s, -1) {
		if m[0] > last {
			out = append(out, Piece{Kind: Literal, Text: s[last:m[0]]})
		}
		kind, _ := KindFromName(s[m[2]:m[3]])
		out = append(out, Piece{Kind: kind, Text: s[m[4]:m[5]]})
		last = m[1]
	}
	if last < len(s) {
		out = append(out, Piece{Kind: Literal, Text: s[last:]})
	}
	return out
}

// Tag returns a stream where every match of re inside a literal piece is
// tagged with kind. accept may veto individual matches; nil accepts all.
func (s Stream) Tag(re *regexp.Regexp, kind Kind, accept func(string) bool) Stream {
	out := make(Stream, 0, len(s))
	for _, p := range s {
		if p.Kind != Literal {
			out = append(out, p)
			continue
		}
		last := 0
		for _, loc := range re.FindAllStringIndex(p.Text, -1) {
			if loc[0] == loc[1] {
				continue
			}
			match := p.Text[loc[0]:loc[1]]
			if accept != nil && !accept(match) {
				continue
			}
			if loc[0] > last {
				out = append(out, Piece{Kind: Literal, Text: p.Text[last:loc[0]]})
			}
			out = append(out, Piece{Kind: kind, Text: match})
			last = loc[1]
		}
		if last < len(p.Text) {
			out = append(out, Piece{Kind: Literal, Text: p.Text[last:]})
		}
	}
	return out
}

// String renders the stream with placeholders
func (s Stream) String() string {
	var b strings.Builder
	for _, p := range s {
		b.WriteString(p.Render())
	}
	return b.String()
}

// Split cuts literal text on '/' into segments and on ',' into sub-tokens.
// Tagged pieces are atomic: a match containing '/' or ',' stays whole.
// Sub-tokens are trimmed of surrounding whitespace.
func (s Stream) Split() Path {
	var (
		path Path
		seg  Segment
		cur  []Piece
		lit  strings.Builder
	)
	flush := func() {
		if lit.Len() > 0 {
			cur = append(cur, Piece{Kind: Literal, Text: lit.String()})
			lit.Reset()
		}
	}
	endToken := func() {
		flush()
		seg = append(seg, trimToken(cur))
		cur = nil
	}
	endSegment := func() {
		endToken()
		path.Segments = append(path.Segments, seg)
		seg = nil
	}

	for _, p := range s {
		if p.Kind != Literal {
			flush()
			cur = append(cur, p)
			continue
		}
		for _, r := range p.Text {
			switch r {
			case '/':
				endSegment()
			case ',':
				endToken()
			default:
				lit.WriteRune(r)
			}
		}
	}
	endSegment()
	return path
}

func trimToken(pieces []Piece) Token {
	if len(pieces) == 0 {
		return NewLiteral("")
	}
	if first := &pieces[0]; first.Kind == Literal {
		first.Text = strings.TrimLeftFunc(first.Text, unicode.IsSpace)
	}
	if last := &pieces[len(pieces)-1]; last.Kind == Literal {
		last.Text = strings.TrimRightFunc(last.Text, unicode.IsSpace)
	}
	kept := pieces[:0]
	for _, p := range pieces {
		if p.Kind == Literal && p.Text == "" {
			continue
		}
		kept = append(kept, p)
	}
	if len(kept) == 0 {
		return NewLiteral("")
	}
	return Token{Pieces: kept}
}
