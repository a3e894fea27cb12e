package entity

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/cognicore/pathtmpl/pkg/pathtmpl/internalerr"
)

// Recognizer finds named entities in a sentence and returns the entity
// words as they appear in it. Implementations must be safe for concurrent use.
type Recognizer interface {
	Recognize(ctx context.Context, sentence string) ([]string, error)
}

// RecognizerFunc adapts a function to Recognizer
type RecognizerFunc func(ctx context.Context, sentence string) ([]string, error)

// Recognize implements Recognizer.
func (f RecognizerFunc) Recognize(ctx context.Context, sentence string) ([]string, error) {
	return f(ctx, sentence)
}

// Chain merges the words of several recognizers. A failing member does not
// hide the results of the others; an error is returned only when every
// member fails.
type Chain []Recognizer

// Recognize implements Recognizer.
func (c Chain) Recognize(ctx context.Context, sentence string) ([]string, error) {
	var (
		words []string
		errs  []error
		seen  = make(map[string]struct{})
	)
	for _, r := range c {
		got, err := r.Recognize(ctx, sentence)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		for _, w := range got {
			if _, ok := seen[w]; ok {
				continue
			}
			seen[w] = struct{}{}
			words = append(words, w)
		}
	}
	if len(c) > 0 && len(errs) == len(c) {
		return nil, errors.Join(errs...)
	}
	return words, nil
}

// Lazy defers construction of a recognizer until its first use. init runs at
// most once, even under concurrent first calls; its failure is permanent and
// every call then reports internalerr.ErrRecognizerUnavailable.
func Lazy(init func() (Recognizer, error)) Recognizer {
	return &lazy{init: init}
}

type lazy struct {
	once sync.Once
	init func() (Recognizer, error)
	r    Recognizer
	err  error
}

func (l *lazy) Recognize(ctx context.Context, sentence string) ([]string, error) {
	l.once.Do(func() {
		l.r, l.err = l.init()
	})
	if l.err != nil {
		return nil, fmt.Errorf("%w: %w", internalerr.ErrRecognizerUnavailable, l.err)
	}
	if l.r == nil {
		return nil, internalerr.ErrRecognizerUnavailable
	}
	return l.r.Recognize(ctx, sentence)
}
