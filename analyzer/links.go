package analyzer

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// ExtractLinks resolves every anchor href against the page URL. A link is
// internal when the page URL string occurs in the resolved URL.
func ExtractLinks(doc *Document) LinkAnalysis {
	anchors := doc.Find("a")
	result := LinkAnalysis{
		TotalLinks:  anchors.Length(),
		BrokenLinks: []string{},
		LinkTexts:   []LinkText{},
	}

	anchors.Each(func(_ int, s *goquery.Selection) {
		href := attrValue(s, "href")
		if href == "" {
			return
		}

		absolute := resolveURL(doc.Base, href)
		if isInternal(doc.URL, absolute) {
			result.InternalLinks++
		} else {
			result.ExternalLinks++
		}

		if text := strings.TrimSpace(s.Text()); text != "" {
			result.LinkTexts = append(result.LinkTexts, LinkText{Text: text, URL: absolute})
		}
	})

	return result
}

// resolveURL joins href onto base. Unparseable hrefs are returned unchanged.
func resolveURL(base *url.URL, href string) string {
	ref, err := url.Parse(strings.TrimSpace(href))
	if err != nil || base == nil {
		return href
	}
	return base.ResolveReference(ref).String()
}

func isInternal(pageURL, absolute string) bool {
	return strings.Contains(absolute, pageURL)
}

func (l LinkAnalysis) mergeInto(r *Report) { r.LinkAnalysis = l }
