package render

import "github.com/seo-optimizer/seoreport/analyzer"

// Status labels.
const (
	StatusOptimal         = "Optimal"
	StatusCouldBeImproved = "Could be improved"

	StatusGood             = "Good"
	StatusNeedsImprovement = "Needs Improvement"
	StatusNoImages         = "No Images"

	StatusGoodInternalLinking = "Good Internal Linking"
	StatusMoreInternalLinks   = "Consider Adding More Internal Links"
	StatusConsiderShortening  = "Consider Shortening"
	StatusPresent             = "Present"
	StatusNotFound            = "Not Found"
)

// TitleStatus labels a title length.
func TitleStatus(length int) string {
	if length >= analyzer.TitleMinLength && length <= analyzer.TitleMaxLength {
		return StatusOptimal
	}
	return StatusCouldBeImproved
}

// MetaStatus labels a meta description length.
func MetaStatus(length int) string {
	if length >= analyzer.MetaMinLength && length <= analyzer.MetaMaxLength {
		return StatusOptimal
	}
	return StatusCouldBeImproved
}

// ImageAltStatus labels alt text coverage. Pages without images get
// StatusNoImages.
func ImageAltStatus(images analyzer.ImageAnalysis) string {
	if images.TotalImages == 0 {
		return StatusNoImages
	}
	if float64(images.ImagesWithAlt)/float64(images.TotalImages) > analyzer.GoodAltRatio {
		return StatusGood
	}
	return StatusNeedsImprovement
}

// LinkStatus compares internal and external link counts.
func LinkStatus(links analyzer.LinkAnalysis) string {
	if links.InternalLinks > links.ExternalLinks {
		return StatusGoodInternalLinking
	}
	return StatusMoreInternalLinks
}

// URLStatus labels a URL length.
func URLStatus(length int) string {
	if length <= analyzer.MaxURLLength {
		return StatusGood
	}
	return StatusConsiderShortening
}

// SocialStatus reports whether any link was found for a platform.
func SocialStatus(links []string) string {
	if len(links) > 0 {
		return StatusPresent
	}
	return StatusNotFound
}

// ComplexSentenceShare is the percentage of complex sentences, 0 when the
// page has no sentences.
func ComplexSentenceShare(cq analyzer.ContentQuality) float64 {
	if cq.TotalSentences == 0 {
		return 0
	}
	return float64(cq.ComplexSentences) / float64(cq.TotalSentences) * 100
}
