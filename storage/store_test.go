package storage

import (
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seo-optimizer/seoreport/analyzer"
)

func newTestStore(t *testing.T, now time.Time) *Store {
	t.Helper()
	s, err := NewStore(filepath.Join(t.TempDir(), "analyses"),
		WithLogger(log.New(io.Discard)),
		WithClock(func() time.Time { return now }),
	)
	require.NoError(t, err)
	return s
}

func sampleReport() *analyzer.Report {
	return &analyzer.Report{
		Status:          analyzer.StatusSuccess,
		AnalysisID:      "0b6d8f7e-1234-4c56-9abc-def012345678",
		AnalyzedAt:      time.Date(2024, 5, 6, 7, 8, 9, 0, time.UTC),
		Title:           "Example Domain",
		TitleLength:     14,
		HasTitle:        true,
		MetaDescription: analyzer.DefaultMetaDescription,
		WordCount:       3,
		KeywordDensity:  map[string]float64{"example": 33.33333333333333},
		TopKeywords:     []analyzer.Keyword{{Word: "example", Count: 1, Density: 33.33333333333333}},
		URL:             "https://example.com/a?b=1",
		URLLength:       25,
		URLStructure:    analyzer.URLStructure{Scheme: "https", Netloc: "example.com", Path: "/a", Query: "b=1"},
		ImageAnalysis:   analyzer.ImageAnalysis{ImageSizes: []analyzer.ImageSize{}, MissingAltTexts: []string{}},
		LinkAnalysis:    analyzer.LinkAnalysis{TotalLinks: 1, InternalLinks: 1, LinkTexts: []analyzer.LinkText{{Text: "More", URL: "https://example.com/more"}}},
		HeadingAnalysis: analyzer.HeadingCounts{H1: 1},
		SocialMedia:     map[string][]string{"facebook": {}, "twitter": {"https://x.com/example"}},
		Performance:     analyzer.Performance{PerformanceScore: 100, Recommendations: []string{}},
		Mobile:          analyzer.Mobile{ViewportWidth: analyzer.ViewportNotSet, MobileScore: 20, Recommendations: []string{"Add media queries to handle different screen sizes"}},
		Score:           60,
		Recommendations: []string{"Add a meta description"},
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	t.Parallel()

	now := time.Date(2024, 5, 6, 7, 8, 9, 0, time.Local)
	store := newTestStore(t, now)
	report := sampleReport()

	result, err := store.Save("https://example.com/a?b=1", report, "first pass")
	require.NoError(t, err)
	assert.Equal(t, "success", result.Status)
	assert.Equal(t, "Analysis saved successfully", result.Message)
	assert.Equal(t, "httpsexamplecomab1_20240506_070809.json", result.Filename)

	saved, err := store.Load(result.Filename)
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/a?b=1", saved.URL)
	assert.Equal(t, "20240506_070809", saved.Timestamp)
	assert.Equal(t, "first pass", saved.Notes)
	assert.Equal(t, report, saved.Data)

	_, err = os.Stat(filepath.Join(store.Dir(), result.Filename+".tmp"))
	assert.True(t, os.IsNotExist(err))
}

func TestSaveRequiresURLAndReport(t *testing.T) {
	t.Parallel()

	store := newTestStore(t, time.Now())

	_, err := store.Save("", sampleReport(), "")
	assert.Equal(t, analyzer.EINVALID, analyzer.ErrorCode(err))

	_, err = store.Save("https://example.com", nil, "")
	assert.Equal(t, analyzer.EINVALID, analyzer.ErrorCode(err))
	assert.Equal(t, "URL and analysis data are required", analyzer.ErrorMessage(err))
}

func TestLoadErrors(t *testing.T) {
	t.Parallel()

	store := newTestStore(t, time.Now())

	t.Run("missing file", func(t *testing.T) {
		t.Parallel()

		_, err := store.Load("nothing_20240101_000000.json")
		require.Error(t, err)
		assert.Equal(t, analyzer.ENOTFOUND, analyzer.ErrorCode(err))
		assert.Equal(t, "Analysis file not found", analyzer.ErrorMessage(err))
	})

	for _, name := range []string{"", "../secrets.json", "a/b.json", `a\b.json`, "..", "x..json"} {
		t.Run("rejects "+name, func(t *testing.T) {
			t.Parallel()

			_, err := store.Load(name)
			require.Error(t, err)
			assert.Equal(t, analyzer.EINVALID, analyzer.ErrorCode(err))
		})
	}

	t.Run("corrupt file", func(t *testing.T) {
		t.Parallel()

		require.NoError(t, os.WriteFile(filepath.Join(store.Dir(), "bad.json"), []byte("{"), 0644))

		_, err := store.Load("bad.json")
		require.Error(t, err)
		assert.Equal(t, analyzer.EPERSISTENCE, analyzer.ErrorCode(err))
	})
}

func TestList(t *testing.T) {
	t.Parallel()

	dir := filepath.Join(t.TempDir(), "analyses")
	clock := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)
	store, err := NewStore(dir, WithLogger(log.New(io.Discard)), WithClock(func() time.Time { return clock }))
	require.NoError(t, err)

	empty, err := store.List()
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)

	_, err = store.Save("https://b.example", sampleReport(), "")
	require.NoError(t, err)
	_, err = store.Save("https://a.example", sampleReport(), "same second")
	require.NoError(t, err)
	clock = clock.Add(time.Hour)
	_, err = store.Save("https://c.example", sampleReport(), "latest")
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "broken.json"), []byte("not json"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignored"), 0644))

	summaries, err := store.List()
	require.NoError(t, err)
	require.Len(t, summaries, 3)
	assert.Equal(t, "https://c.example", summaries[0].URL)
	assert.Equal(t, "latest", summaries[0].Notes)
	assert.Equal(t, "20240101_110000", summaries[0].Timestamp)
	assert.Equal(t, "httpsaexample_20240101_100000.json", summaries[1].Filename)
	assert.Equal(t, "httpsbexample_20240101_100000.json", summaries[2].Filename)
}

func TestSanitize(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"https://example.com/path?q=1": "httpsexamplecompathq1",
		"my-site_name":                 "my-site_name",
		"../../etc/passwd":             "etcpasswd",
	}
	for in, want := range tests {
		assert.Equal(t, want, sanitize(in), in)
	}

	assert.Equal(t, "https例えjp", sanitize("https://例え.jp/"))
}
