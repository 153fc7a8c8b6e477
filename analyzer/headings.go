package analyzer

// ExtractHeadings counts h1 through h6 independently.
func ExtractHeadings(doc *Document) HeadingCounts {
	return HeadingCounts{
		H1: doc.Find("h1").Length(),
		H2: doc.Find("h2").Length(),
		H3: doc.Find("h3").Length(),
		H4: doc.Find("h4").Length(),
		H5: doc.Find("h5").Length(),
		H6: doc.Find("h6").Length(),
	}
}

func (h HeadingCounts) mergeInto(r *Report) { r.HeadingAnalysis = h }
