package analyzer

import "fmt"

// Facet is the typed partial result of one extractor. Each facet type owns
// exactly one slot of the Report.
type Facet interface {
	mergeInto(r *Report)
}

// Scored is implemented by facets that carry a 0-100 sub-score.
type Scored interface {
	Facet
	SubScore() int
	Advice() []string
}

// Extractor is one analysis unit over a Document. Implementations must be
// pure: no I/O, no mutation of the Document, no shared state.
type Extractor interface {
	Name() string
	Extract(doc *Document) (Facet, error)
}

// ExtractorFunc adapts a plain function to the Extractor interface.
type ExtractorFunc struct {
	name string
	fn   func(doc *Document) (Facet, error)
}

// NewExtractorFunc returns an Extractor called name backed by fn.
func NewExtractorFunc(name string, fn func(doc *Document) (Facet, error)) ExtractorFunc {
	return ExtractorFunc{name: name, fn: fn}
}

func (e ExtractorFunc) Name() string { return e.name }

func (e ExtractorFunc) Extract(doc *Document) (Facet, error) { return e.fn(doc) }

// Registry is an ordered set of extractors keyed by name.
type Registry struct {
	extractors []Extractor
	names      map[string]bool
}

// NewRegistry returns an empty Registry.
func NewRegistry() *Registry {
	return &Registry{names: make(map[string]bool)}
}

// Register appends e. Names must be unique.
func (r *Registry) Register(e Extractor) error {
	if r.names[e.Name()] {
		return Errorf(EINVALID, "extractor %q already registered", e.Name())
	}
	r.names[e.Name()] = true
	r.extractors = append(r.extractors, e)
	return nil
}

// MustRegister is Register for package-level wiring; it panics on duplicates.
func (r *Registry) MustRegister(extractors ...Extractor) *Registry {
	for _, e := range extractors {
		if err := r.Register(e); err != nil {
			panic(fmt.Sprintf("analyzer: %v", err))
		}
	}
	return r
}

// Extractors returns the registered extractors in registration order.
func (r *Registry) Extractors() []Extractor {
	out := make([]Extractor, len(r.extractors))
	copy(out, r.extractors)
	return out
}

// Names lists extractor names in registration order.
func (r *Registry) Names() []string {
	names := make([]string, len(r.extractors))
	for i, e := range r.extractors {
		names[i] = e.Name()
	}
	return names
}

// DefaultRegistry holds every built-in extractor.
func DefaultRegistry() *Registry {
	return NewRegistry().MustRegister(
		NewExtractorFunc("performance", func(d *Document) (Facet, error) { return ExtractPerformance(d), nil }),
		NewExtractorFunc("mobile", func(d *Document) (Facet, error) { return ExtractMobile(d), nil }),
		NewExtractorFunc("images", func(d *Document) (Facet, error) { return ExtractImages(d), nil }),
		NewExtractorFunc("links", func(d *Document) (Facet, error) { return ExtractLinks(d), nil }),
		NewExtractorFunc("headings", func(d *Document) (Facet, error) { return ExtractHeadings(d), nil }),
		NewExtractorFunc("content_quality", func(d *Document) (Facet, error) { return ExtractContentQuality(d), nil }),
		NewExtractorFunc("social_media", func(d *Document) (Facet, error) { return ExtractSocialMedia(d), nil }),
		NewExtractorFunc("readability", func(d *Document) (Facet, error) { return ExtractReadability(d), nil }),
		NewExtractorFunc("article", func(d *Document) (Facet, error) { return ExtractArticle(d), nil }),
	)
}
