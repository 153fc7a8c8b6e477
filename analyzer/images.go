package analyzer

import "github.com/PuerkitoBio/goquery"

// ExtractImages classifies alt text and collects declared dimensions.
// An empty alt attribute counts as missing.
func ExtractImages(doc *Document) ImageAnalysis {
	images := doc.Find("img")
	result := ImageAnalysis{
		TotalImages:     images.Length(),
		ImageSizes:      []ImageSize{},
		MissingAltTexts: []string{},
	}

	images.Each(func(_ int, s *goquery.Selection) {
		src := attrValue(s, "src")
		if attrValue(s, "alt") != "" {
			result.ImagesWithAlt++
		} else {
			result.ImagesWithoutAlt++
			if src != "" {
				result.MissingAltTexts = append(result.MissingAltTexts, src)
			}
		}

		width, height := attrValue(s, "width"), attrValue(s, "height")
		if width != "" && height != "" {
			result.ImageSizes = append(result.ImageSizes, ImageSize{Width: width, Height: height, Src: src})
		}
	})

	return result
}

func (i ImageAnalysis) mergeInto(r *Report) { r.ImageAnalysis = i }
