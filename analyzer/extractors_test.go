package analyzer_test

import (
	"strings"
	"testing"
	"time"

	"github.com/seo-optimizer/seoreport/analyzer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDoc(t *testing.T, pageURL, html string) *analyzer.Document {
	t.Helper()
	doc, err := analyzer.NewDocument(pageURL, []byte(html), 200, 200*time.Millisecond)
	require.NoError(t, err)
	return doc
}

func TestExtractPerformance(t *testing.T) {
	t.Parallel()

	t.Run("small fast page scores 100", func(t *testing.T) {
		t.Parallel()

		html := `<html><head><script src="a.js"></script><link rel="stylesheet" href="a.css"></head>
<body><img src="1.png"><img src="2.png"></body></html>`
		perf := analyzer.ExtractPerformance(newDoc(t, "http://example.com", html))

		assert.Equal(t, 4, perf.ResourceCount)
		assert.Equal(t, len(html), perf.ContentLength)
		assert.InDelta(t, 0.2, perf.ServerResponseTime, 1e-9)
		assert.Equal(t, 100, perf.PerformanceScore)
		assert.InDelta(t, 0.4, perf.PageLoadTimeEstimate, 0.005)
		assert.Empty(t, perf.Recommendations)
	})

	t.Run("too many resources loses 15", func(t *testing.T) {
		t.Parallel()

		html := "<html><body>" + strings.Repeat(`<img src="x.png">`, 51) + "</body></html>"
		perf := analyzer.ExtractPerformance(newDoc(t, "http://example.com", html))

		assert.Equal(t, 51, perf.ResourceCount)
		assert.Equal(t, 85, perf.PerformanceScore)
		assert.Len(t, perf.Recommendations, 1)
	})

	t.Run("slow server loses 20", func(t *testing.T) {
		t.Parallel()

		doc, err := analyzer.NewDocument("http://example.com", []byte("<html></html>"), 200, 1500*time.Millisecond)
		require.NoError(t, err)

		perf := analyzer.ExtractPerformance(doc)
		assert.Equal(t, 80, perf.PerformanceScore)
	})
}

func TestExtractMobile(t *testing.T) {
	t.Parallel()

	t.Run("bare page scores 20 and is not mobile friendly", func(t *testing.T) {
		t.Parallel()

		m := analyzer.ExtractMobile(newDoc(t, "http://example.com", `<html><body><img src="a.png"></body></html>`))

		assert.Equal(t, analyzer.ViewportNotSet, m.ViewportWidth)
		assert.Equal(t, 0, m.ResponsiveImages)
		assert.False(t, m.HasMediaQueries)
		assert.Equal(t, 20, m.MobileScore)
		assert.False(t, m.IsMobileFriendly)
		assert.Equal(t, []string{
			"Add a proper viewport meta tag with width=device-width",
			"Implement responsive images using srcset and sizes attributes",
			"Add media queries to handle different screen sizes",
		}, m.Recommendations)
	})

	t.Run("fully responsive page", func(t *testing.T) {
		t.Parallel()

		html := `<html><head>
<meta name="viewport" content="width=device-width, initial-scale=1">
<link rel="stylesheet" href="print.css" media="print">
</head><body><img src="a.png" srcset="a-2x.png 2x"></body></html>`
		m := analyzer.ExtractMobile(newDoc(t, "http://example.com", html))

		assert.Equal(t, analyzer.ViewportDeviceWidth, m.ViewportWidth)
		assert.Equal(t, 1, m.ResponsiveImages)
		assert.True(t, m.HasMediaQueries)
		assert.Equal(t, 100, m.MobileScore)
		assert.True(t, m.IsMobileFriendly)
		assert.Empty(t, m.Recommendations)
	})

	t.Run("srcset and fluid class count the same image twice", func(t *testing.T) {
		t.Parallel()

		html := `<html><body>
<img src="a.png" srcset="a-2x.png 2x" class="img-fluid rounded">
<img src="b.png" class="Responsive">
<img src="c.png" class="thumb">
</body></html>`
		m := analyzer.ExtractMobile(newDoc(t, "http://example.com", html))

		assert.Equal(t, 3, m.ResponsiveImages)
	})

	t.Run("custom viewport", func(t *testing.T) {
		t.Parallel()

		html := `<html><head><meta name="viewport" content="width=1024"></head><body></body></html>`
		m := analyzer.ExtractMobile(newDoc(t, "http://example.com", html))

		assert.Equal(t, analyzer.ViewportCustom, m.ViewportWidth)
		assert.Equal(t, 20, m.MobileScore)
	})

	t.Run("empty media attribute is not a media query", func(t *testing.T) {
		t.Parallel()

		html := `<html><head><link rel="stylesheet" href="a.css" media=""></head></html>`
		m := analyzer.ExtractMobile(newDoc(t, "http://example.com", html))

		assert.False(t, m.HasMediaQueries)
	})
}

func TestExtractImages(t *testing.T) {
	t.Parallel()

	t.Run("no images", func(t *testing.T) {
		t.Parallel()

		images := analyzer.ExtractImages(newDoc(t, "http://example.com", `<html><body><p>text</p></body></html>`))

		assert.Equal(t, 0, images.TotalImages)
		assert.Empty(t, images.ImageSizes)
		assert.Empty(t, images.MissingAltTexts)
	})

	t.Run("classifies alt text and collects sizes", func(t *testing.T) {
		t.Parallel()

		html := `<html><body>
<img src="logo.png" alt="Logo" width="100" height="50">
<img src="hero.jpg" alt="">
<img src="banner.jpg" width="300">
<img alt="">
</body></html>`
		images := analyzer.ExtractImages(newDoc(t, "http://example.com", html))

		assert.Equal(t, 4, images.TotalImages)
		assert.Equal(t, 1, images.ImagesWithAlt)
		assert.Equal(t, 3, images.ImagesWithoutAlt)
		assert.Equal(t, []string{"hero.jpg", "banner.jpg"}, images.MissingAltTexts)
		assert.Equal(t, []analyzer.ImageSize{{Width: "100", Height: "50", Src: "logo.png"}}, images.ImageSizes)
	})
}

func TestExtractLinks(t *testing.T) {
	t.Parallel()

	html := `<html><body>
<a href="http://example.com/about">About</a>
<a href="http://other.com">Other</a>
<a href="/contact">  Contact  </a>
<a href="#top"></a>
<a name="anchor">No href</a>
</body></html>`
	links := analyzer.ExtractLinks(newDoc(t, "http://example.com", html))

	assert.Equal(t, 5, links.TotalLinks)
	assert.Equal(t, 3, links.InternalLinks)
	assert.Equal(t, 1, links.ExternalLinks)
	assert.Equal(t, []analyzer.LinkText{
		{Text: "About", URL: "http://example.com/about"},
		{Text: "Other", URL: "http://other.com"},
		{Text: "Contact", URL: "http://example.com/contact"},
	}, links.LinkTexts)
}

func TestExtractHeadings(t *testing.T) {
	t.Parallel()

	html := `<html><body><h1>A</h1><h2>B</h2><h2>C</h2><h3>D</h3><h6>E</h6></body></html>`
	h := analyzer.ExtractHeadings(newDoc(t, "http://example.com", html))

	assert.Equal(t, analyzer.HeadingCounts{H1: 1, H2: 2, H3: 1, H6: 1}, h)
	assert.Equal(t, [6]int{1, 2, 1, 0, 0, 1}, h.Levels())
}

func TestExtractContentQuality(t *testing.T) {
	t.Parallel()

	t.Run("simple sentences", func(t *testing.T) {
		t.Parallel()

		cq := analyzer.ExtractContentQuality(newDoc(t, "http://example.com", `<html><body><p>The cat sat. The dog ran.</p></body></html>`))

		assert.Equal(t, 2, cq.TotalSentences)
		assert.Equal(t, 8, cq.TotalWords)
		assert.InDelta(t, 4.0, cq.AvgSentenceLength, 1e-9)
		assert.InDelta(t, 75.0, cq.UniqueWordRatio, 1e-9)
		assert.Equal(t, 0, cq.ComplexSentences)
	})

	t.Run("long sentence is complex", func(t *testing.T) {
		t.Parallel()

		long := strings.TrimSpace(strings.Repeat("word ", 21)) + "."
		cq := analyzer.ExtractContentQuality(newDoc(t, "http://example.com", "<html><body><p>"+long+"</p></body></html>"))

		assert.Equal(t, 1, cq.TotalSentences)
		assert.Equal(t, 1, cq.ComplexSentences)
	})

	t.Run("script text is not visible text", func(t *testing.T) {
		t.Parallel()

		cq := analyzer.ExtractContentQuality(newDoc(t, "http://example.com", `<html><body><script>var a = 1;</script></body></html>`))

		assert.Equal(t, analyzer.ContentQuality{}, cq)
	})
}

func TestExtractSocialMedia(t *testing.T) {
	t.Parallel()

	html := `<html><body>
<a href="https://www.Facebook.com/acme">fb</a>
<a href="https://x.com/acme">x</a>
<a href="https://facebook.com/sharer?u=youtube.com/watch">share</a>
<a href="/local">local</a>
</body></html>`
	social := analyzer.ExtractSocialMedia(newDoc(t, "http://example.com", html))

	assert.Len(t, social, 5)
	assert.Equal(t, []string{"https://www.Facebook.com/acme", "https://facebook.com/sharer?u=youtube.com/watch"}, social["facebook"])
	assert.Equal(t, []string{"https://x.com/acme"}, social["twitter"])
	assert.Equal(t, []string{"https://facebook.com/sharer?u=youtube.com/watch"}, social["youtube"])
	assert.Empty(t, social["linkedin"])
	assert.NotNil(t, social["instagram"])
}

func TestReadability(t *testing.T) {
	t.Parallel()

	t.Run("levels", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, analyzer.LevelVeryReadable, analyzer.ReadabilityLevel(0.61))
		assert.Equal(t, analyzer.LevelModeratelyReadable, analyzer.ReadabilityLevel(0.6))
		assert.Equal(t, analyzer.LevelModeratelyReadable, analyzer.ReadabilityLevel(0.31))
		assert.Equal(t, analyzer.LevelDifficult, analyzer.ReadabilityLevel(0.3))
		assert.Equal(t, analyzer.LevelDifficult, analyzer.ReadabilityLevel(-1))
	})

	t.Run("polarity follows sentiment", func(t *testing.T) {
		t.Parallel()

		positive := analyzer.ExtractReadability(newDoc(t, "http://example.com", `<p>This is a wonderful, great and happy day!</p>`))
		negative := analyzer.ExtractReadability(newDoc(t, "http://example.com", `<p>This is a terrible, awful and horrible day.</p>`))
		empty := analyzer.ExtractReadability(newDoc(t, "http://example.com", ``))

		assert.Greater(t, positive.Score, 0.0)
		assert.LessOrEqual(t, positive.Score, 1.0)
		assert.Less(t, negative.Score, 0.0)
		assert.GreaterOrEqual(t, negative.Score, -1.0)
		assert.Equal(t, 0.0, empty.Score)
		assert.Equal(t, analyzer.LevelDifficult, empty.Level)
	})

	t.Run("score does not grow with page length", func(t *testing.T) {
		t.Parallel()

		para := "The team shipped a good release. Some pages still load slowly. Readers like the new layout."
		once := analyzer.ExtractReadability(newDoc(t, "http://example.com", "<p>"+para+"</p>"))
		repeated := analyzer.ExtractReadability(newDoc(t, "http://example.com", "<p>"+strings.Repeat(para+" ", 20)+"</p>"))

		assert.InDelta(t, once.Score, repeated.Score, 1e-9)
		assert.Equal(t, once.Level, repeated.Level)
		assert.InDelta(t, analyzer.Polarity(para), once.Score, 1e-9)
	})
}

func TestExtractArticle(t *testing.T) {
	t.Parallel()

	t.Run("finds main content", func(t *testing.T) {
		t.Parallel()

		paragraph := "<p>" + strings.Repeat("Search engines reward pages with clear, well structured and useful writing. ", 12) + "</p>"
		html := `<html><head><title>Guide</title></head><body>
<nav><a href="/">Home</a><a href="/blog">Blog</a></nav>
<article><h1>Guide</h1>` + paragraph + paragraph + `</article>
<footer>Copyright</footer></body></html>`
		article := analyzer.ExtractArticle(newDoc(t, "http://example.com/guide", html))

		assert.True(t, article.Found)
		assert.Positive(t, article.MainContentLength)
		assert.Greater(t, article.ContentRatio, 0.0)
		assert.LessOrEqual(t, article.ContentRatio, 100.0)
	})

	t.Run("empty page has no article", func(t *testing.T) {
		t.Parallel()

		article := analyzer.ExtractArticle(newDoc(t, "http://example.com", ""))

		assert.Equal(t, analyzer.Article{}, article)
	})
}

func TestDocumentIsNotMutatedByExtractors(t *testing.T) {
	t.Parallel()

	html := `<html><head><title>T</title><script>var x;</script></head><body><p>Hello world.</p></body></html>`
	doc := newDoc(t, "http://example.com", html)
	before := doc.Find("script").Length()

	for _, e := range analyzer.DefaultRegistry().Extractors() {
		_, err := e.Extract(doc)
		require.NoError(t, err, e.Name())
	}

	assert.Equal(t, before, doc.Find("script").Length())
	assert.Equal(t, html, string(doc.Body))
}
