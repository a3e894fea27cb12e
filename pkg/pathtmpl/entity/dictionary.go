package entity

import (
	"context"
	"strings"
)

// Entity is a dictionary match inside a sentence
type Entity struct {
	Type string
	Name string
	Word string // the matched text as it appears in the sentence
}

type entry struct {
	typ  string
	name string
}

// Dictionary recognizes entities from configured keyword variants.
// Matching is case-insensitive and prefers the longest multi-word variant.
type Dictionary struct {
	variants map[string]entry // lowercase, single-space joined → entry
	maxWords int
}

// NewDictionary creates an empty dictionary
func NewDictionary() *Dictionary {
	return &Dictionary{variants: make(map[string]entry)}
}

// Add registers an entity. The name itself always counts as a variant.
func (d *Dictionary) Add(entityType, name string, variants []string) {
	for _, v := range append([]string{name}, variants...) {
		words := strings.Fields(strings.ToLower(v))
		if len(words) == 0 {
			continue
		}
		d.variants[strings.Join(words, " ")] = entry{typ: entityType, name: name}
		if len(words) > d.maxWords {
			d.maxWords = len(words)
		}
	}
}

// Len returns the number of registered variants
func (d *Dictionary) Len() int {
	return len(d.variants)
}

// Match finds entities in the sentence, scanning left to right
func (d *Dictionary) Match(sentence string) []Entity {
	var words []string
	for _, w := range strings.Fields(sentence) {
		// sub-tokens of one segment are rendered "a, b"
		if w = strings.Trim(w, ","); w != "" {
			words = append(words, w)
		}
	}

	var out []Entity
	for i := 0; i < len(words); {
		n := d.maxWords
		if rest := len(words) - i; n > rest {
			n = rest
		}
		matched := 0
		for ; n > 0; n-- {
			span := words[i : i+n]
			e, ok := d.variants[strings.ToLower(strings.Join(span, " "))]
			if !ok {
				continue
			}
			out = append(out, Entity{Type: e.typ, Name: e.name, Word: strings.Join(span, " ")})
			matched = n
			break
		}
		if matched == 0 {
			matched = 1
		}
		i += matched
	}
	return out
}

// Recognize implements Recognizer.
func (d *Dictionary) Recognize(ctx context.Context, sentence string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var words []string
	seen := make(map[string]struct{})
	for _, e := range d.Match(sentence) {
		if _, ok := seen[e.Word]; ok {
			continue
		}
		seen[e.Word] = struct{}{}
		words = append(words, e.Word)
	}
	return words, nil
}
