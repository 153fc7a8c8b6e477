package analyzer

import "math"

// Performance thresholds.
const (
	slowResponseSeconds = 1.0
	maxResources        = 50
	maxContentBytes     = 5000000
)

// ExtractPerformance estimates load cost from the response size, server
// latency and the number of scripts, stylesheets and images.
func ExtractPerformance(doc *Document) Performance {
	resources := countResources(doc)
	contentLength := doc.ContentLength()

	return Performance{
		PageLoadTimeEstimate: estimateLoadTime(contentLength, resources),
		ServerResponseTime:   doc.ResponseTime,
		ResourceCount:        resources,
		ContentLength:        contentLength,
		PerformanceScore:     performanceScore(doc.ResponseTime, resources, contentLength),
		Recommendations:      performanceAdvice(doc.ResponseTime, resources, contentLength),
	}
}

func countResources(doc *Document) int {
	scripts := doc.Find("script").Length()
	stylesheets := doc.Find("link[rel~='stylesheet']").Length()
	images := doc.Find("img").Length()
	return scripts + stylesheets + images
}

// estimateLoadTime is megabytes of content plus 0.1s per resource, in seconds.
func estimateLoadTime(contentLength, resources int) float64 {
	estimate := float64(contentLength)/(1024*1024) + float64(resources)*0.1
	return round2(estimate)
}

func performanceScore(responseTime float64, resources, contentLength int) int {
	score := 100
	if responseTime > slowResponseSeconds {
		score -= 20
	}
	if resources > maxResources {
		score -= 15
	}
	if contentLength > maxContentBytes {
		score -= 25
	}
	return clampScore(score)
}

func performanceAdvice(responseTime float64, resources, contentLength int) []string {
	advice := []string{}
	if responseTime > slowResponseSeconds {
		advice = append(advice, "Server response time is above 1 second. Consider caching or a faster host")
	}
	if resources > maxResources {
		advice = append(advice, "Reduce the number of scripts, stylesheets and images (more than 50 found)")
	}
	if contentLength > maxContentBytes {
		advice = append(advice, "Page size is above 5MB. Minify assets and remove unused resources")
	}
	return advice
}

func (p Performance) mergeInto(r *Report) { r.Performance = p }

func (p Performance) SubScore() int { return p.PerformanceScore }

func (p Performance) Advice() []string { return p.Recommendations }

func clampScore(score int) int {
	return max(0, min(100, score))
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
