package analyzer

// complexSentenceWords is the word count above which a sentence is complex.
const complexSentenceWords = 20

// Readability bands for the polarity score.
const (
	LevelVeryReadable       = "Very Readable"
	LevelModeratelyReadable = "Moderately Readable"
	LevelDifficult          = "Difficult to Read"
)

// ExtractContentQuality measures sentence length, vocabulary variety and
// sentence complexity over the visible text.
func ExtractContentQuality(doc *Document) ContentQuality {
	return contentQuality(doc.Text())
}

func contentQuality(text string) ContentQuality {
	sentences := Sentences(text)
	words := Words(text)

	cq := ContentQuality{
		TotalSentences: len(sentences),
		TotalWords:     len(words),
	}
	if len(sentences) > 0 {
		cq.AvgSentenceLength = round2(float64(len(words)) / float64(len(sentences)))
	}
	if len(words) > 0 {
		distinct := make(map[string]struct{}, len(words))
		for _, w := range words {
			distinct[w] = struct{}{}
		}
		cq.UniqueWordRatio = round2(float64(len(distinct)) / float64(len(words)) * 100)
	}
	for _, s := range sentences {
		if len(Words(s)) > complexSentenceWords {
			cq.ComplexSentences++
		}
	}
	return cq
}

func (c ContentQuality) mergeInto(r *Report) { r.ContentQuality = c }

// Readability is the polarity score of the visible text and its band.
type Readability struct {
	Score float64
	Level string
}

// ExtractReadability scores the visible text with the sentiment backend.
func ExtractReadability(doc *Document) Readability {
	score := Polarity(doc.Text())
	return Readability{Score: score, Level: ReadabilityLevel(score)}
}

// ReadabilityLevel bands a polarity score.
func ReadabilityLevel(score float64) string {
	switch {
	case score > 0.6:
		return LevelVeryReadable
	case score > 0.3:
		return LevelModeratelyReadable
	default:
		return LevelDifficult
	}
}

func (rd Readability) mergeInto(r *Report) {
	r.ReadabilityScore = rd.Score
	r.ReadabilityLevel = rd.Level
}
