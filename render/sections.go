package render

import (
	"fmt"
	"sort"
	"strconv"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/seo-optimizer/seoreport/analyzer"
)

// Line is one label/value row of a section. An empty Label marks a free
// text line.
type Line struct {
	Label string
	Value string
}

func (l Line) String() string {
	if l.Label == "" {
		return l.Value
	}
	return l.Label + ": " + l.Value
}

// Section is a titled group of lines.
type Section struct {
	Title string
	Lines []Line
}

// DateFormat is how the generation time is printed.
const DateFormat = "2006-01-02 15:04:05"

// Title is the document heading for a report.
func Title(report *analyzer.Report) string {
	return "SEO Analysis Report for " + report.URL
}

// Sections projects report into the ordered sections shared by every
// document renderer.
func Sections(report *analyzer.Report, generatedAt time.Time) []Section {
	sections := []Section{
		basicSection(report, generatedAt),
		{
			Title: "Title Analysis",
			Lines: []Line{
				{"Title", report.Title},
				{"Length", characters(report.TitleLength)},
				{"Status", TitleStatus(report.TitleLength)},
			},
		},
		{
			Title: "Meta Description",
			Lines: []Line{
				{"Description", report.MetaDescription},
				{"Length", characters(report.MetaLength)},
				{"Status", MetaStatus(report.MetaLength)},
			},
		},
		contentSection(report.WordCount, report.ContentQuality),
		{
			Title: "Readability Score",
			Lines: []Line{
				{"Score", fmt.Sprintf("%.2f", report.ReadabilityScore)},
				{"Status", analyzer.ReadabilityLevel(report.ReadabilityScore)},
			},
		},
		{
			Title: "Image Analysis",
			Lines: []Line{
				{"Total Images", strconv.Itoa(report.ImageAnalysis.TotalImages)},
				{"Images with Alt Text", strconv.Itoa(report.ImageAnalysis.ImagesWithAlt)},
				{"Images without Alt Text", strconv.Itoa(report.ImageAnalysis.ImagesWithoutAlt)},
				{"Status", ImageAltStatus(report.ImageAnalysis)},
			},
		},
		{
			Title: "Link Analysis",
			Lines: []Line{
				{"Total Links", strconv.Itoa(report.LinkAnalysis.TotalLinks)},
				{"Internal Links", strconv.Itoa(report.LinkAnalysis.InternalLinks)},
				{"External Links", strconv.Itoa(report.LinkAnalysis.ExternalLinks)},
				{"Status", LinkStatus(report.LinkAnalysis)},
			},
		},
		headingSection(report.HeadingAnalysis),
		keywordSection(report),
		socialSection(report.SocialMedia),
		{
			Title: "URL Structure",
			Lines: []Line{
				{"URL Length", characters(report.URLLength)},
				{"Status", URLStatus(report.URLLength)},
			},
		},
		performanceSection(report.Performance),
		mobileSection(report.Mobile),
	}

	if report.Article.Found {
		sections = append(sections, articleSection(report.Article))
	}
	if len(report.Recommendations) > 0 {
		lines := make([]Line, 0, len(report.Recommendations))
		for _, rec := range report.Recommendations {
			lines = append(lines, Line{Value: rec})
		}
		sections = append(sections, Section{Title: "Recommendations", Lines: lines})
	}
	return sections
}

func basicSection(report *analyzer.Report, generatedAt time.Time) Section {
	return Section{
		Title: "Basic Information",
		Lines: []Line{
			{"URL", report.URL},
			{"Analysis Date", generatedAt.Format(DateFormat)},
			{"Overall Score", fmt.Sprintf("%.2f", report.Score)},
		},
	}
}

// contentSection prints unique_word_ratio as stored; it is already a percentage.
func contentSection(wordCount int, cq analyzer.ContentQuality) Section {
	return Section{
		Title: "Content Statistics",
		Lines: []Line{
			{"Word Count", strconv.Itoa(wordCount)},
			{"Average Sentence Length", fmt.Sprintf("%.1f words", cq.AvgSentenceLength)},
			{"Unique Word Ratio", fmt.Sprintf("%.1f%%", cq.UniqueWordRatio)},
			{"Complex Sentences", fmt.Sprintf("%d (%.1f%%)", cq.ComplexSentences, ComplexSentenceShare(cq))},
		},
	}
}

func headingSection(h analyzer.HeadingCounts) Section {
	levels := h.Levels()
	lines := make([]Line, 0, len(levels))
	for i, count := range levels {
		lines = append(lines, Line{fmt.Sprintf("H%d", i+1), strconv.Itoa(count)})
	}
	return Section{Title: "Heading Structure", Lines: lines}
}

// keywordSection lists top_keywords in rank order. Reports without it (saved
// by older clients) fall back to keyword_density sorted by density.
func keywordSection(report *analyzer.Report) Section {
	keywords := report.TopKeywords
	if len(keywords) == 0 && len(report.KeywordDensity) > 0 {
		for word, density := range report.KeywordDensity {
			keywords = append(keywords, analyzer.Keyword{Word: word, Density: density})
		}
		sort.Slice(keywords, func(i, j int) bool {
			if keywords[i].Density != keywords[j].Density {
				return keywords[i].Density > keywords[j].Density
			}
			return keywords[i].Word < keywords[j].Word
		})
	}

	lines := make([]Line, 0, len(keywords))
	for _, k := range keywords {
		lines = append(lines, Line{k.Word, fmt.Sprintf("%.2f%%", k.Density)})
	}
	return Section{Title: "Top Keywords", Lines: lines}
}

func socialSection(social map[string][]string) Section {
	caser := cases.Title(language.English)
	lines := make([]Line, 0, len(analyzer.SocialPlatforms))
	for _, p := range analyzer.SocialPlatforms {
		lines = append(lines, Line{caser.String(p.Name), SocialStatus(social[p.Name])})
	}
	return Section{Title: "Social Media Presence", Lines: lines}
}

func performanceSection(p analyzer.Performance) Section {
	return Section{
		Title: "Performance",
		Lines: []Line{
			{"Estimated Load Time", fmt.Sprintf("%.2f s", p.PageLoadTimeEstimate)},
			{"Server Response Time", fmt.Sprintf("%.2f s", p.ServerResponseTime)},
			{"Resources", strconv.Itoa(p.ResourceCount)},
			{"Page Size", fmt.Sprintf("%d bytes", p.ContentLength)},
			{"Score", fmt.Sprintf("%d/100", p.PerformanceScore)},
		},
	}
}

func mobileSection(m analyzer.Mobile) Section {
	return Section{
		Title: "Mobile Friendliness",
		Lines: []Line{
			{"Mobile Friendly", yesNo(m.IsMobileFriendly)},
			{"Viewport", m.ViewportWidth},
			{"Responsive Images", strconv.Itoa(m.ResponsiveImages)},
			{"Media Queries", yesNo(m.HasMediaQueries)},
			{"Score", fmt.Sprintf("%d/100", m.MobileScore)},
		},
	}
}

func articleSection(a analyzer.Article) Section {
	lines := []Line{{"Title", a.Title}}
	if a.Byline != "" {
		lines = append(lines, Line{"Byline", a.Byline})
	}
	lines = append(lines,
		Line{"Main Content Length", characters(a.MainContentLength)},
		Line{"Share of Visible Text", fmt.Sprintf("%.1f%%", a.ContentRatio)},
	)
	return Section{Title: "Main Content", Lines: lines}
}

func characters(n int) string {
	return strconv.Itoa(n) + " characters"
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}
