package entity

import "strings"

// Stoplist holds route words that must never be promoted to a parameter by
// an entity match, such as resource names a recognizer tends to mistake for
// organizations ("Apple", "Stripe"). Lookups are case-insensitive.
type Stoplist struct {
	terms map[string]struct{}
}

// NewStoplist creates a stoplist from the given terms
func NewStoplist(terms []string) *Stoplist {
	s := &Stoplist{terms: make(map[string]struct{}, len(terms))}
	for _, t := range terms {
		s.Add(t)
	}
	return s
}

// IsStop reports whether the word is on the list. A nil stoplist is empty.
func (s *Stoplist) IsStop(word string) bool {
	if s == nil {
		return false
	}
	_, ok := s.terms[strings.ToLower(strings.TrimSpace(word))]
	return ok
}

// Add adds a word to the stoplist
func (s *Stoplist) Add(word string) {
	if w := strings.ToLower(strings.TrimSpace(word)); w != "" {
		s.terms[w] = struct{}{}
	}
}

// Remove removes a word from the stoplist
func (s *Stoplist) Remove(word string) {
	delete(s.terms, strings.ToLower(strings.TrimSpace(word)))
}

// Len returns the number of terms
func (s *Stoplist) Len() int {
	if s == nil {
		return 0
	}
	return len(s.terms)
}
