package analyzer

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Viewport classifications.
const (
	ViewportNotSet      = "not set"
	ViewportDeviceWidth = "device-width"
	ViewportCustom      = "custom"
)

var responsiveClassTerms = []string{"responsive", "fluid", "img-fluid"}

// ExtractMobile checks the viewport, responsive images and media queries.
func ExtractMobile(doc *Document) Mobile {
	viewport := viewportWidth(doc)
	responsive := countResponsiveImages(doc)
	mediaQueries := hasMediaQueries(doc)

	score := 100
	advice := []string{}
	if viewport != ViewportDeviceWidth {
		score -= 30
		advice = append(advice, "Add a proper viewport meta tag with width=device-width")
	}
	if responsive == 0 {
		score -= 25
		advice = append(advice, "Implement responsive images using srcset and sizes attributes")
	}
	if !mediaQueries {
		score -= 25
		advice = append(advice, "Add media queries to handle different screen sizes")
	}

	return Mobile{
		IsMobileFriendly: viewport == ViewportDeviceWidth && responsive > 0 && mediaQueries,
		ViewportWidth:    viewport,
		ResponsiveImages: responsive,
		HasMediaQueries:  mediaQueries,
		MobileScore:      clampScore(score),
		Recommendations:  advice,
	}
}

func viewportWidth(doc *Document) string {
	viewport := doc.Find("meta[name='viewport']").First()
	if viewport.Length() == 0 {
		return ViewportNotSet
	}
	content, _ := viewport.Attr("content")
	if strings.Contains(content, "width=device-width") {
		return ViewportDeviceWidth
	}
	return ViewportCustom
}

// countResponsiveImages counts srcset/sizes images and, separately, images
// with a responsive class. An image matching both is counted twice.
func countResponsiveImages(doc *Document) int {
	count := 0
	doc.Find("img").Each(func(_ int, s *goquery.Selection) {
		if attrValue(s, "srcset") != "" || attrValue(s, "sizes") != "" {
			count++
		}
		classes := strings.ToLower(strings.Join(strings.Fields(attrValue(s, "class")), " "))
		if classes == "" {
			return
		}
		for _, term := range responsiveClassTerms {
			if strings.Contains(classes, term) {
				count++
				break
			}
		}
	})
	return count
}

func hasMediaQueries(doc *Document) bool {
	found := false
	doc.Find("link[rel~='stylesheet']").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		if attrValue(s, "media") != "" {
			found = true
		}
		return !found
	})
	return found
}

func (m Mobile) mergeInto(r *Report) { r.Mobile = m }

func (m Mobile) SubScore() int { return m.MobileScore }

func (m Mobile) Advice() []string { return m.Recommendations }

// attrValue returns the attribute value or "" when absent.
func attrValue(s *goquery.Selection, name string) string {
	v, _ := s.Attr(name)
	return v
}
