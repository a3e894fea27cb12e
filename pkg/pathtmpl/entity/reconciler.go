package entity

import (
	"context"
	"log/slog"
	"strings"

	"github.com/cognicore/pathtmpl/pkg/pathtmpl/metrics"
	"github.com/cognicore/pathtmpl/pkg/pathtmpl/token"
)

// Options configures a Reconciler
type Options struct {
	Recognizer Recognizer // nil: entropy tagging only
	Stoplist   *Stoplist
	Logger     *slog.Logger
}

// Reconciler promotes random-looking and entity tokens to string parameters
type Reconciler struct {
	recognizer Recognizer
	stoplist   *Stoplist
	log        *slog.Logger
}

// NewReconciler creates a reconciler with the given options
func NewReconciler(opts Options) *Reconciler {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Reconciler{
		recognizer: opts.Recognizer,
		stoplist:   opts.Stoplist,
		log:        logger,
	}
}

// Reconcile tags, in place, every untouched token of path that is either in
// random or recognized as an entity. The recognizer sees the path with the
// random tokens already rendered as placeholders. A recognizer failure is
// logged and treated as finding no entities. Returns the number of tokens
// tagged.
func (r *Reconciler) Reconcile(ctx context.Context, path token.Path, random map[string]struct{}) int {
	preview := path.Clone()
	preview.Retag(func(text string) (token.Kind, bool) {
		_, ok := random[text]
		return token.String, ok
	})
	entities := r.entities(ctx, preview.Sentence())

	counts := path.Retag(func(text string) (token.Kind, bool) {
		if _, ok := random[text]; ok {
			return token.String, true
		}
		if _, ok := entities[text]; ok && !r.stoplist.IsStop(text) {
			return token.String, true
		}
		return token.Literal, false
	})
	return counts[token.String]
}

func (r *Reconciler) entities(ctx context.Context, sentence string) map[string]struct{} {
	set := make(map[string]struct{})
	if r.recognizer == nil || strings.TrimSpace(sentence) == "" {
		return set
	}

	words, err := r.recognizer.Recognize(ctx, sentence)
	if err != nil {
		metrics.RecognizerFailuresTotal.Inc()
		r.log.Warn("entity recognizer failed, continuing without entities", "sentence", sentence, "error", err)
		return set
	}
	for _, w := range words {
		if w = strings.TrimSpace(w); w != "" {
			set[w] = struct{}{}
		}
	}
	r.log.Debug("entities recognized", "sentence", sentence, "count", len(set))
	return set
}
