package pathtmpl

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/cognicore/pathtmpl/pkg/pathtmpl/entity"
	"github.com/cognicore/pathtmpl/pkg/pathtmpl/entropy"
	"github.com/cognicore/pathtmpl/pkg/pathtmpl/extract"
	"github.com/cognicore/pathtmpl/pkg/pathtmpl/metrics"
	"github.com/cognicore/pathtmpl/pkg/pathtmpl/structural"
	"github.com/cognicore/pathtmpl/pkg/pathtmpl/token"
)

// Templater turns observed request URLs into parameterized route templates
type Templater struct {
	tagger     *structural.Tagger
	reconciler *entity.Reconciler
	log        *slog.Logger
}

// Options configures a Templater
type Options struct {
	// Recognizer is the named-entity oracle. It is shared by every call and
	// must be safe for concurrent use; wrap it with entity.Lazy to defer
	// construction to the first call. Nil disables entity reconciliation.
	Recognizer entity.Recognizer
	Stoplist   *entity.Stoplist
	DateParser structural.DateParser // nil: dateparse
	Logger     *slog.Logger
}

// New creates a Templater with the given dependencies
func New(opts Options) *Templater {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Templater{
		tagger: structural.NewTagger(opts.DateParser),
		reconciler: entity.NewReconciler(entity.Options{
			Recognizer: opts.Recognizer,
			Stoplist:   opts.Stoplist,
			Logger:     logger,
		}),
		log: logger,
	}
}

// Result is the outcome of templating one URL
type Result struct {
	RawURL   string
	Path     string // extracted path before tagging
	Template string
	Tagged   map[token.Kind]int
}

// Template returns the route template for a raw URL. It never fails: input
// that cannot be classified comes back with fewer or no placeholders.
func (t *Templater) Template(ctx context.Context, rawURL string) string {
	return t.Analyze(ctx, rawURL).Template
}

// Analyze runs the pipeline and reports what was tagged
func (t *Templater) Analyze(ctx context.Context, rawURL string) Result {
	start := time.Now()

	path := extract.Path(rawURL)
	tokens := t.tagger.Tag(path)
	random := entropy.RandomLike(tokens)
	t.reconciler.Reconcile(ctx, tokens, random)

	res := Result{
		RawURL:   rawURL,
		Path:     path,
		Template: tokens.String(),
		Tagged:   tokens.Counts(),
	}

	metrics.PathsTotal.Inc()
	for kind, n := range res.Tagged {
		metrics.TokensTaggedTotal.WithLabelValues(kind.String()).Add(float64(n))
	}
	metrics.TemplateDurationSeconds.Observe(time.Since(start).Seconds())
	t.log.Debug("templated url", "url", rawURL, "template", res.Template, "random_tokens", len(random))
	return res
}

// TemplateAll templates urls with up to workers goroutines. Results keep the
// order of urls.
func (t *Templater) TemplateAll(ctx context.Context, urls []string, workers int) []Result {
	if workers < 1 {
		workers = 1
	}
	results := make([]Result, len(urls))
	jobs := make(chan int)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				results[i] = t.Analyze(ctx, urls[i])
			}
		}()
	}
	for i := range urls {
		jobs <- i
	}
	close(jobs)
	wg.Wait()
	return results
}
