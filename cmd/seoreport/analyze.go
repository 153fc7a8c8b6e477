package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/briandowns/spinner"

	"github.com/seo-optimizer/seoreport/analyzer"
	"github.com/seo-optimizer/seoreport/render"
)

// Run executes the analyze command.
func (c *AnalyzeCmd) Run(deps *Dependencies) error {
	renderer, err := render.Lookup(c.Format, render.WithClock(deps.Now))
	if err != nil {
		return err
	}

	stop := startSpinner(deps.Stderr, " Analyzing "+c.URL)
	result := deps.Analyzer.Analyze(deps.Ctx, c.URL)
	stop()

	if !result.OK() {
		return &analyzer.Error{Code: result.Failure.Code, Message: result.Failure.Message}
	}

	if c.Save {
		saved, err := deps.Store.Save(c.URL, result.Report, c.Notes)
		if err != nil {
			return err
		}
		fmt.Fprintf(deps.Stderr, "Saved %s\n", saved.Filename)
	}

	return writeReport(deps, renderer, result.Report, c.Output)
}

// writeReport sends JSON to stdout unless a path is given. Binary and
// document formats without a path go to the default download name in the
// working directory.
func writeReport(deps *Dependencies, renderer render.Renderer, report *analyzer.Report, path string) error {
	if path == "" && renderer.Format() == render.FormatJSON {
		return renderer.Render(deps.Stdout, report)
	}
	if path == "" {
		path = render.Filename(renderer, deps.Now())
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	if err := renderer.Render(f, report); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}

	fmt.Fprintf(deps.Stdout, "Wrote %s\n", path)
	return nil
}

// startSpinner shows progress on w when it is a terminal file and returns
// the function that stops it.
func startSpinner(w io.Writer, suffix string) func() {
	f, ok := w.(*os.File)
	if !ok {
		return func() {}
	}
	s := spinner.New(spinner.CharSets[9], 100*time.Millisecond,
		spinner.WithWriter(f),
		spinner.WithSuffix(suffix),
	)
	s.Start()
	return s.Stop
}
