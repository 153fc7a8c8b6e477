package analyzer

import (
	"bytes"
	"strings"
	"unicode/utf8"

	readability "github.com/go-shiori/go-readability"
)

// ExtractArticle locates the main content block with go-readability. Pages
// without an identifiable article yield Found == false.
func ExtractArticle(doc *Document) Article {
	article, err := readability.FromReader(bytes.NewReader(doc.Body), doc.Base)
	if err != nil {
		return Article{}
	}

	mainText := strings.TrimSpace(article.TextContent)
	if mainText == "" {
		return Article{}
	}

	mainLength := utf8.RuneCountInString(mainText)
	result := Article{
		Found:             true,
		Title:             article.Title,
		Byline:            article.Byline,
		SiteName:          article.SiteName,
		Excerpt:           article.Excerpt,
		MainContentLength: mainLength,
	}
	if visible := utf8.RuneCountInString(strings.TrimSpace(doc.Text())); visible > 0 {
		result.ContentRatio = round2(min(100, float64(mainLength)/float64(visible)*100))
	}
	return result
}

func (a Article) mergeInto(r *Report) { r.Article = a }
