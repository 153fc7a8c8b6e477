package main_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seo-optimizer/seoreport/analyzer"
	main "github.com/seo-optimizer/seoreport/cmd/seoreport"
)

const page = `<html><head><title>Command line fixture page</title>
<meta name="description" content="Fixture for the command line tests"></head>
<body><h1>Fixture</h1><p>Short words. Short lines.</p><a href="/next">Next</a></body></html>`

var fixedNow = time.Date(2024, 7, 4, 15, 16, 17, 0, time.UTC)

func newPages(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/page", func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, page)
	})
	mux.HandleFunc("/gone", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusGone)
	})
	ts := httptest.NewServer(mux)
	t.Cleanup(ts.Close)
	return ts
}

type run struct {
	stdout *bytes.Buffer
	stderr *bytes.Buffer
	err    error
}

// runCLI executes seoreport against dataDir with quiet logging.
func runCLI(t *testing.T, dataDir string, args ...string) run {
	t.Helper()
	m := main.NewMain()
	m.Now = func() time.Time { return fixedNow }

	r := run{stdout: &bytes.Buffer{}, stderr: &bytes.Buffer{}}
	full := append([]string{"--data-dir", dataDir, "--log-level", "error"}, args...)
	r.err = m.Run(context.Background(), full, r.stdout, r.stderr)
	return r
}

func TestNoCommand(t *testing.T) {
	t.Parallel()

	stdout := &bytes.Buffer{}
	err := main.NewMain().Run(context.Background(), nil, stdout, &bytes.Buffer{})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "no command specified")
	assert.Contains(t, stdout.String(), "analyze")
}

func TestAnalyzeCmd(t *testing.T) {
	t.Parallel()
	pages := newPages(t)

	t.Run("prints JSON report to stdout", func(t *testing.T) {
		t.Parallel()

		r := runCLI(t, t.TempDir(), "analyze", pages.URL+"/page")
		require.NoError(t, r.err)

		var report analyzer.Report
		require.NoError(t, json.Unmarshal(r.stdout.Bytes(), &report))
		assert.Equal(t, "Command line fixture page", report.Title)
		assert.Equal(t, pages.URL+"/page", report.URL)
		assert.True(t, fixedNow.Equal(report.AnalyzedAt))
	})

	t.Run("writes markdown to the output file", func(t *testing.T) {
		t.Parallel()

		out := filepath.Join(t.TempDir(), "report.md")
		r := runCLI(t, t.TempDir(), "analyze", pages.URL+"/page", "--format", "markdown", "-o", out)
		require.NoError(t, r.err)

		data, err := os.ReadFile(out)
		require.NoError(t, err)
		assert.Contains(t, string(data), "SEO Analysis Report for "+pages.URL+"/page")
		assert.Contains(t, r.stdout.String(), "Wrote "+out)
	})

	t.Run("accepts md as a markdown alias", func(t *testing.T) {
		t.Parallel()

		out := filepath.Join(t.TempDir(), "alias.md")
		r := runCLI(t, t.TempDir(), "analyze", pages.URL+"/page", "-f", "md", "-o", out)
		require.NoError(t, r.err)
		assert.FileExists(t, out)
	})

	t.Run("writes pdf to the output file", func(t *testing.T) {
		t.Parallel()

		out := filepath.Join(t.TempDir(), "report.pdf")
		r := runCLI(t, t.TempDir(), "analyze", pages.URL+"/page", "-f", "pdf", "-o", out)
		require.NoError(t, r.err)

		data, err := os.ReadFile(out)
		require.NoError(t, err)
		assert.True(t, bytes.HasPrefix(data, []byte("%PDF-")))
	})

	t.Run("returns the failure for an unreachable page", func(t *testing.T) {
		t.Parallel()

		r := runCLI(t, t.TempDir(), "analyze", pages.URL+"/gone")
		require.Error(t, r.err)
		assert.Equal(t, analyzer.EFETCH, analyzer.ErrorCode(r.err))
		assert.Contains(t, analyzer.ErrorMessage(r.err), "410")
		assert.Empty(t, r.stdout.String())
	})

	t.Run("rejects an unknown format", func(t *testing.T) {
		t.Parallel()

		r := runCLI(t, t.TempDir(), "analyze", pages.URL+"/page", "--format", "docx")
		assert.Error(t, r.err)
	})
}

func TestSaveListShow(t *testing.T) {
	t.Parallel()
	pages := newPages(t)
	dataDir := t.TempDir()

	r := runCLI(t, dataDir, "list")
	require.NoError(t, r.err)
	assert.Contains(t, r.stdout.String(), "No saved analyses")

	r = runCLI(t, dataDir, "analyze", pages.URL+"/page", "--save", "--notes", "first pass")
	require.NoError(t, r.err)
	filename := strings.TrimPrefix(strings.TrimSpace(r.stderr.String()), "Saved ")
	assert.True(t, strings.HasSuffix(filename, "_20240704_151617.json"), filename)
	assert.FileExists(t, filepath.Join(dataDir, "analyses", filename))

	r = runCLI(t, dataDir, "list")
	require.NoError(t, r.err)
	assert.Contains(t, r.stdout.String(), filename)
	assert.Contains(t, r.stdout.String(), pages.URL+"/page")
	assert.Contains(t, r.stdout.String(), "first pass")

	r = runCLI(t, dataDir, "show", filename)
	require.NoError(t, r.err)
	var report analyzer.Report
	require.NoError(t, json.Unmarshal(r.stdout.Bytes(), &report))
	assert.Equal(t, "Command line fixture page", report.Title)

	r = runCLI(t, dataDir, "show", "missing.json")
	require.Error(t, r.err)
	assert.Equal(t, analyzer.ENOTFOUND, analyzer.ErrorCode(r.err))

	r = runCLI(t, dataDir, "show", "../stats.json")
	require.Error(t, r.err)
	assert.Equal(t, analyzer.EINVALID, analyzer.ErrorCode(r.err))
}
