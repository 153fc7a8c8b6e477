package analyzer

import (
	"context"
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/cespare/xxhash/v2"
	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// Analyzer fetches a page, runs every registered extractor over it and
// merges their facets into a Report. Analyze never returns an error; failures
// come back as the Failure variant of Result.
type Analyzer struct {
	fetcher  Fetcher
	registry *Registry
	logger   *log.Logger
	parallel bool
	now      func() time.Time
}

// Option configures an Analyzer.
type Option func(*Analyzer)

// WithFetcher replaces the default HTTPFetcher.
func WithFetcher(f Fetcher) Option {
	return func(a *Analyzer) {
		a.fetcher = f
	}
}

// WithRegistry replaces DefaultRegistry.
func WithRegistry(r *Registry) Option {
	return func(a *Analyzer) {
		a.registry = r
	}
}

// WithLogger sets the logger used for step events.
func WithLogger(l *log.Logger) Option {
	return func(a *Analyzer) {
		a.logger = l
	}
}

// WithParallel runs extractors concurrently. They share no state, so the
// merged Report is identical either way.
func WithParallel(parallel bool) Option {
	return func(a *Analyzer) {
		a.parallel = parallel
	}
}

// WithClock overrides time.Now for AnalyzedAt.
func WithClock(now func() time.Time) Option {
	return func(a *Analyzer) {
		a.now = now
	}
}

// New creates a new Analyzer instance.
func New(opts ...Option) *Analyzer {
	a := &Analyzer{
		parallel: true,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(a)
	}
	if a.fetcher == nil {
		a.fetcher = NewHTTPFetcher()
	}
	if a.registry == nil {
		a.registry = DefaultRegistry()
	}
	if a.logger == nil {
		a.logger = log.Default()
	}
	return a
}

// Extractors lists the names of the extractors every analysis runs, in
// registration order.
func (a *Analyzer) Extractors() []string {
	return a.registry.Names()
}

// Analyze performs a complete SEO analysis of pageURL.
func (a *Analyzer) Analyze(ctx context.Context, pageURL string) Result {
	id := uuid.NewString()
	logger := a.logger.With("analysis_id", id, "url", pageURL)
	start := time.Now()

	logger.Info("fetch started")
	doc, err := a.fetcher.Fetch(ctx, pageURL)
	if err != nil {
		return a.fail(logger, err, start)
	}
	logger.Info("fetch completed",
		"status", doc.StatusCode,
		"bytes", doc.ContentLength(),
		"response_time", doc.ResponseTime,
	)

	return a.analyze(ctx, logger, id, doc, start)
}

// AnalyzeDocument runs the extractors over an already fetched Document.
func (a *Analyzer) AnalyzeDocument(ctx context.Context, doc *Document) Result {
	id := uuid.NewString()
	logger := a.logger.With("analysis_id", id, "url", doc.URL)
	return a.analyze(ctx, logger, id, doc, time.Now())
}

func (a *Analyzer) analyze(ctx context.Context, logger *log.Logger, id string, doc *Document, start time.Time) Result {
	report, err := a.build(ctx, logger, id, doc)
	if err != nil {
		return a.fail(logger, err, start)
	}
	logger.Info("analysis completed",
		"duration", time.Since(start),
		"score", report.Score,
	)
	return Result{Report: report}
}

func (a *Analyzer) fail(logger *log.Logger, err error, start time.Time) Result {
	failure := NewFailure(err)
	if failure.Code != EFETCH && failure.Code != EINVALID {
		if _, ok := err.(*Error); !ok {
			failure.Message = "An unexpected error occurred: " + failure.Message
		}
	}
	logger.Error("analysis failed",
		"kind", failure.Code,
		"error", err,
		"duration", time.Since(start),
	)
	return Result{Failure: failure}
}

// build runs the extractors and assembles the Report. Panics anywhere in the
// pipeline are converted into an EANALYSIS error.
func (a *Analyzer) build(ctx context.Context, logger *log.Logger, id string, doc *Document) (report *Report, err error) {
	defer func() {
		if r := recover(); r != nil {
			report, err = nil, Errorf(EANALYSIS, "An unexpected error occurred: %v", r)
		}
	}()

	facets, err := a.runExtractors(ctx, logger, doc)
	if err != nil {
		return nil, err
	}

	report = &Report{
		Status:       StatusSuccess,
		AnalysisID:   id,
		AnalyzedAt:   a.now().UTC(),
		URL:          doc.URL,
		URLLength:    utf8.RuneCountInString(doc.URL),
		URLStructure: urlStructure(doc.Base),
		ContentHash:  fmt.Sprintf("%016x", xxhash.Sum64(doc.Body)),
	}
	report.Title, report.TitleLength, report.HasTitle = pageTitle(doc)
	report.MetaDescription, report.MetaLength, report.HasMetaDescription = metaDescription(doc)

	var top []Keyword
	report.WordCount, top = keywordDensity(doc.Text())
	report.TopKeywords = top
	report.KeywordDensity = densityMap(top)

	var scores []int
	var facetAdvice []string
	for _, f := range facets {
		f.mergeInto(report)
		if s, ok := f.(Scored); ok {
			scores = append(scores, s.SubScore())
			facetAdvice = append(facetAdvice, s.Advice()...)
		}
	}

	report.Score = meanScore(scores)
	report.Recommendations = append(append([]string{}, pageAdvice(report)...), facetAdvice...)
	return report, nil
}

func (a *Analyzer) runExtractors(ctx context.Context, logger *log.Logger, doc *Document) ([]Facet, error) {
	extractors := a.registry.Extractors()
	facets := make([]Facet, len(extractors))

	if !a.parallel {
		for i, e := range extractors {
			if err := ctx.Err(); err != nil {
				return nil, WrapError(EANALYSIS, err, "Analysis cancelled: %v", err)
			}
			f, err := runExtractor(logger, e, doc)
			if err != nil {
				return nil, err
			}
			facets[i] = f
		}
		return facets, nil
	}

	g, gctx := errgroup.WithContext(ctx)
	for i, e := range extractors {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return WrapError(EANALYSIS, err, "Analysis cancelled: %v", err)
			}
			f, err := runExtractor(logger, e, doc)
			if err != nil {
				return err
			}
			facets[i] = f
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return facets, nil
}

func runExtractor(logger *log.Logger, e Extractor, doc *Document) (facet Facet, err error) {
	start := time.Now()
	defer func() {
		if r := recover(); r != nil {
			facet, err = nil, Errorf(EANALYSIS, "An unexpected error occurred: %s extractor: %v", e.Name(), r)
		}
	}()

	facet, err = e.Extract(doc)
	if err != nil {
		if _, ok := err.(*Error); ok {
			return nil, err
		}
		return nil, WrapError(EANALYSIS, err, "An unexpected error occurred: %v", err)
	}
	if facet == nil {
		return nil, Errorf(EANALYSIS, "An unexpected error occurred: %s extractor returned no result", e.Name())
	}

	logger.Debug("extractor completed",
		"extractor", e.Name(),
		"duration", time.Since(start),
	)
	return facet, nil
}

func meanScore(scores []int) float64 {
	if len(scores) == 0 {
		return 0
	}
	total := 0
	for _, s := range scores {
		total += s
	}
	return round2(float64(total) / float64(len(scores)))
}
