package structural

import (
	"regexp"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/cognicore/pathtmpl/pkg/pathtmpl/token"
)

var uuidPattern = regexp.MustCompile(`[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12}`)

// datePatterns are applied in order; an earlier pattern claims its matches
// before later patterns see the text.
var datePatterns = []*regexp.Regexp{
	// 14 Apr 2024, 10:30
	regexp.MustCompile(`\d{1,2}[ ]?[A-Za-z]{3}[a-z]?[ ]?\d{4},[ ]?\d{2}:\d{2}`),
	// April 14, 2024 10:30:00
	regexp.MustCompile(`[A-Za-z]{3,9}[ ]\d{1,2},[ ]?\d{4}(?:[ T]\d{2}:\d{2}(?::\d{2})?)?`),
	// 14-04-2024, 14/04/2024, 14.04.2024 with optional time
	regexp.MustCompile(`\d{2}[-/\.]\d{2}[-/\.]\d{4}(?:[ T]\d{2}:\d{2}(?::\d{2})?)?`),
	// 2024-04-14T10:30:00Z, ahead of the generic form so a trailing Z stays in the match
	regexp.MustCompile(`\d{4}-\d{2}-\d{2}T\d{2}:\d{2}:\d{2}Z?`),
	// 2024-04-14 with optional time
	regexp.MustCompile(`\d{4}[-/\.]\d{2}[-/\.]\d{2}(?:[ T]\d{2}:\d{2}(?::\d{2})?)?`),
	// 14 Apr 2024 10:30
	regexp.MustCompile(`\d{1,2}[ ]?[A-Za-z]{3}[a-z]?[ ]?\d{4}[ ]?(?:[ T]\d{2}:\d{2})?`),
}

// Tagger replaces UUIDs, date/time literals and integers with typed tags
type Tagger struct {
	dates DateParser
}

// NewTagger creates a tagger. A nil DateParser selects DefaultDateParser.
func NewTagger(dates DateParser) *Tagger {
	if dates == nil {
		dates = DefaultDateParser()
	}
	return &Tagger{dates: dates}
}

// Tag runs the structural pass over a path. Placeholders already present in
// the input are carried through untouched, so Tag is idempotent on its own
// rendered output.
func (t *Tagger) Tag(path string) token.Path {
	s := token.NewStream(path)
	s = s.Tag(uuidPattern, token.UUID, isUUID)
	for _, re := range datePatterns {
		s = s.Tag(re, token.DateTime, nil)
	}

	p := s.Split()
	p.Retag(t.classify)
	return p
}

// classify handles whole tokens left untouched by the pattern sweeps
func (t *Tagger) classify(text string) (token.Kind, bool) {
	if isDigits(text) {
		return token.Number, true
	}
	if !hasDigit(text) {
		return token.Literal, false
	}
	day, month, ok := t.dates.TryParse(text)
	if !ok {
		return token.Literal, false
	}
	// a bare year or short number parses as January 1st; that is not a date
	if day != 1 || month != 1 || utf8.RuneCountInString(text) > 4 {
		return token.DateTime, true
	}
	return token.Literal, false
}

func isUUID(s string) bool {
	_, err := uuid.Parse(s)
	return err == nil
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

func hasDigit(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= '0' && s[i] <= '9' {
			return true
		}
	}
	return false
}
