package analyzer

import (
	"fmt"
	"net/url"
	"sort"
	"strings"
	"unicode/utf8"
)

// Defaults substituted when the page lacks the element.
const (
	DefaultTitle           = "No title found"
	DefaultMetaDescription = "No meta description found"
)

// Thresholds shared by recommendations and renderers.
const (
	TitleMinLength   = 50
	TitleMaxLength   = 60
	MetaMinLength    = 150
	MetaMaxLength    = 160
	GoodAltRatio     = 0.8
	MaxURLLength     = 100
	topKeywordsLimit = 10
)

// pageTitle returns the first <title> text. A missing or empty title yields
// DefaultTitle with length 0.
func pageTitle(doc *Document) (title string, length int, found bool) {
	text := doc.Find("title").First().Text()
	if text == "" {
		return DefaultTitle, 0, false
	}
	return text, utf8.RuneCountInString(text), true
}

// metaDescription mirrors pageTitle for <meta name="description">.
func metaDescription(doc *Document) (desc string, length int, found bool) {
	content := attrValue(doc.Find("meta[name='description']").First(), "content")
	if content == "" {
		return DefaultMetaDescription, 0, false
	}
	return content, utf8.RuneCountInString(content), true
}

// keywordDensity counts lowercase whitespace-separated tokens. It does not
// use the UAX #29 tokenizer, so word_count and content_quality.total_words
// can disagree for the same page.
func keywordDensity(text string) (wordCount int, top []Keyword) {
	words := strings.Fields(strings.ToLower(text))
	wordCount = len(words)
	if wordCount == 0 {
		return 0, []Keyword{}
	}

	counts := make(map[string]int)
	var order []string
	for _, w := range words {
		if counts[w] == 0 {
			order = append(order, w)
		}
		counts[w]++
	}

	// Stable sort keeps first-occurrence order among equal counts.
	sort.SliceStable(order, func(i, j int) bool {
		return counts[order[i]] > counts[order[j]]
	})
	if len(order) > topKeywordsLimit {
		order = order[:topKeywordsLimit]
	}

	top = make([]Keyword, 0, len(order))
	for _, w := range order {
		top = append(top, Keyword{
			Word:    w,
			Count:   counts[w],
			Density: float64(counts[w]) / float64(wordCount) * 100,
		})
	}
	return wordCount, top
}

func densityMap(top []Keyword) map[string]float64 {
	m := make(map[string]float64, len(top))
	for _, k := range top {
		m[k.Word] = k.Density
	}
	return m
}

// urlStructure splits u into scheme, netloc, path, params, query and fragment.
// Params are the ";" suffix of the last path segment.
func urlStructure(u *url.URL) URLStructure {
	netloc := u.Host
	if u.User != nil {
		netloc = u.User.String() + "@" + u.Host
	}

	path, params := u.EscapedPath(), ""
	lastSlash := strings.LastIndex(path, "/")
	if i := strings.Index(path[lastSlash+1:], ";"); i >= 0 {
		cut := lastSlash + 1 + i
		path, params = path[:cut], path[cut+1:]
	}

	return URLStructure{
		Scheme:   u.Scheme,
		Netloc:   netloc,
		Path:     path,
		Params:   params,
		Query:    u.RawQuery,
		Fragment: u.EscapedFragment(),
	}
}

// pageAdvice produces recommendations for the document-level fields.
func pageAdvice(r *Report) []string {
	var advice []string

	switch {
	case !r.HasTitle:
		advice = append(advice, "Add a title tag to your page")
	case r.TitleLength < TitleMinLength || r.TitleLength > TitleMaxLength:
		advice = append(advice, fmt.Sprintf("Title is %d characters (should be %d-%d characters)",
			r.TitleLength, TitleMinLength, TitleMaxLength))
	}

	switch {
	case !r.HasMetaDescription:
		advice = append(advice, "Add a meta description")
	case r.MetaLength < MetaMinLength || r.MetaLength > MetaMaxLength:
		advice = append(advice, fmt.Sprintf("Meta description is %d characters (should be %d-%d characters)",
			r.MetaLength, MetaMinLength, MetaMaxLength))
	}

	switch h1 := r.HeadingAnalysis.H1; {
	case h1 == 0:
		advice = append(advice, "Add an H1 heading")
	case h1 > 1:
		advice = append(advice, "Multiple H1 headings found - consider using only one")
	}

	if r.ImageAnalysis.ImagesWithoutAlt > 0 {
		advice = append(advice, fmt.Sprintf("Add alt text to %d image(s)", r.ImageAnalysis.ImagesWithoutAlt))
	}

	if r.URLLength > MaxURLLength {
		advice = append(advice, fmt.Sprintf("URL is %d characters; keep it under %d", r.URLLength, MaxURLLength))
	}

	return advice
}
