package analyzer

import (
	"encoding/json"
	"time"
)

// StatusSuccess and StatusError are the two values of the "status" field.
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// Report is the merged analysis of one page. It is built once by the
// Analyzer and never updated afterwards.
type Report struct {
	Status     string    `json:"status"`
	AnalysisID string    `json:"analysis_id"`
	AnalyzedAt time.Time `json:"analyzed_at"`

	Title              string             `json:"title"`
	TitleLength        int                `json:"title_length"`
	HasTitle           bool               `json:"has_title"`
	MetaDescription    string             `json:"meta_description"`
	MetaLength         int                `json:"meta_length"`
	HasMetaDescription bool               `json:"has_meta_description"`
	WordCount          int                `json:"word_count"`
	KeywordDensity     map[string]float64 `json:"keyword_density"`
	TopKeywords        []Keyword          `json:"top_keywords"`
	ReadabilityScore   float64            `json:"readability_score"`
	ReadabilityLevel   string             `json:"readability_level"`
	URL                string             `json:"url"`
	URLLength          int                `json:"url_length"`
	URLStructure       URLStructure       `json:"url_structure"`
	ContentHash        string             `json:"content_hash"`

	ImageAnalysis   ImageAnalysis       `json:"image_analysis"`
	LinkAnalysis    LinkAnalysis        `json:"link_analysis"`
	HeadingAnalysis HeadingCounts       `json:"heading_analysis"`
	ContentQuality  ContentQuality      `json:"content_quality"`
	SocialMedia     map[string][]string `json:"social_media"`
	Performance     Performance         `json:"performance"`
	Mobile          Mobile              `json:"mobile"`
	Article         Article             `json:"article"`

	Score           float64  `json:"score"`
	Recommendations []string `json:"recommendations"`
}

// Keyword is one entry of the top-10 word frequency table.
type Keyword struct {
	Word    string  `json:"word"`
	Count   int     `json:"count"`
	Density float64 `json:"density"`
}

// URLStructure is the decomposition of the analyzed URL.
type URLStructure struct {
	Scheme   string `json:"scheme"`
	Netloc   string `json:"netloc"`
	Path     string `json:"path"`
	Params   string `json:"params"`
	Query    string `json:"query"`
	Fragment string `json:"fragment"`
}

type ImageSize struct {
	Width  string `json:"width"`
	Height string `json:"height"`
	Src    string `json:"src"`
}

type ImageAnalysis struct {
	TotalImages      int         `json:"total_images"`
	ImagesWithAlt    int         `json:"images_with_alt"`
	ImagesWithoutAlt int         `json:"images_without_alt"`
	ImageSizes       []ImageSize `json:"image_sizes"`
	MissingAltTexts  []string    `json:"missing_alt_texts"`
}

type LinkText struct {
	Text string `json:"text"`
	URL  string `json:"url"`
}

// LinkAnalysis summarizes the anchors of a page. BrokenLinks is always
// empty: extraction never probes links over the network.
type LinkAnalysis struct {
	TotalLinks    int        `json:"total_links"`
	InternalLinks int        `json:"internal_links"`
	ExternalLinks int        `json:"external_links"`
	BrokenLinks   []string   `json:"broken_links"`
	LinkTexts     []LinkText `json:"link_texts"`
}

type HeadingCounts struct {
	H1 int `json:"h1"`
	H2 int `json:"h2"`
	H3 int `json:"h3"`
	H4 int `json:"h4"`
	H5 int `json:"h5"`
	H6 int `json:"h6"`
}

// Levels returns the counts in h1..h6 order.
func (h HeadingCounts) Levels() [6]int {
	return [6]int{h.H1, h.H2, h.H3, h.H4, h.H5, h.H6}
}

type ContentQuality struct {
	AvgSentenceLength float64 `json:"avg_sentence_length"`
	UniqueWordRatio   float64 `json:"unique_word_ratio"` // percent
	ComplexSentences  int     `json:"complex_sentences"`
	TotalSentences    int     `json:"total_sentences"`
	TotalWords        int     `json:"total_words"`
}

type Performance struct {
	PageLoadTimeEstimate float64  `json:"page_load_time"`
	ServerResponseTime   float64  `json:"server_response_time"`
	ResourceCount        int      `json:"resource_count"`
	ContentLength        int      `json:"content_length"`
	PerformanceScore     int      `json:"performance_score"`
	Recommendations      []string `json:"recommendations"`
}

type Mobile struct {
	IsMobileFriendly bool     `json:"is_mobile_friendly"`
	ViewportWidth    string   `json:"viewport_width"`
	ResponsiveImages int      `json:"responsive_images"`
	HasMediaQueries  bool     `json:"has_media_queries"`
	MobileScore      int      `json:"mobile_score"`
	Recommendations  []string `json:"recommendations"`
}

// Article describes the main content block found by readability extraction.
type Article struct {
	Found             bool    `json:"found"`
	Title             string  `json:"title"`
	Byline            string  `json:"byline"`
	SiteName          string  `json:"site_name"`
	Excerpt           string  `json:"excerpt"`
	MainContentLength int     `json:"main_content_length"`
	ContentRatio      float64 `json:"content_ratio"`
}

// Failure is the error variant of an analysis. It carries only a message.
type Failure struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Code    string `json:"-"`
}

// NewFailure converts err into a Failure.
func NewFailure(err error) *Failure {
	return &Failure{
		Status:  StatusError,
		Message: ErrorMessage(err),
		Code:    ErrorCode(err),
	}
}

// Result holds exactly one of Report or Failure.
type Result struct {
	Report  *Report
	Failure *Failure
}

// OK reports whether the analysis succeeded.
func (r Result) OK() bool {
	return r.Report != nil
}

// MarshalJSON encodes whichever variant is set.
func (r Result) MarshalJSON() ([]byte, error) {
	if r.Report != nil {
		return json.Marshal(r.Report)
	}
	if r.Failure != nil {
		return json.Marshal(r.Failure)
	}
	return json.Marshal(&Failure{Status: StatusError, Message: "empty analysis result"})
}
