package analyzer

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// SocialPlatform is a known network and the domains that identify it.
type SocialPlatform struct {
	Name    string
	Domains []string
}

// SocialPlatforms is the fixed, ordered set of tracked networks.
var SocialPlatforms = []SocialPlatform{
	{Name: "facebook", Domains: []string{"facebook.com", "fb.com"}},
	{Name: "twitter", Domains: []string{"twitter.com", "x.com"}},
	{Name: "linkedin", Domains: []string{"linkedin.com"}},
	{Name: "instagram", Domains: []string{"instagram.com"}},
	{Name: "youtube", Domains: []string{"youtube.com"}},
}

// SocialLinks maps platform name to the hrefs attributed to it.
type SocialLinks map[string][]string

// ExtractSocialMedia attributes anchor hrefs to platforms by domain substring.
// One href may be attributed to several platforms.
func ExtractSocialMedia(doc *Document) SocialLinks {
	links := make(SocialLinks, len(SocialPlatforms))
	for _, p := range SocialPlatforms {
		links[p.Name] = []string{}
	}

	doc.Find("a").Each(func(_ int, s *goquery.Selection) {
		href := attrValue(s, "href")
		lower := strings.ToLower(href)
		for _, p := range SocialPlatforms {
			for _, domain := range p.Domains {
				if strings.Contains(lower, domain) {
					links[p.Name] = append(links[p.Name], href)
					break
				}
			}
		}
	})

	return links
}

func (s SocialLinks) mergeInto(r *Report) { r.SocialMedia = map[string][]string(s) }
