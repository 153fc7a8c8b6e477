package main

import (
	"github.com/seo-optimizer/seoreport/analyzer"
	"github.com/seo-optimizer/seoreport/render"
)

// Run executes the show command.
func (c *ShowCmd) Run(deps *Dependencies) error {
	renderer, err := render.Lookup(c.Format, render.WithClock(deps.Now))
	if err != nil {
		return err
	}

	saved, err := deps.Store.Load(c.Filename)
	if err != nil {
		return err
	}
	if saved.Data == nil {
		return analyzer.Errorf(analyzer.EPERSISTENCE, "Saved analysis %s has no report data", c.Filename)
	}
	deps.Logger.Debug("loaded analysis", "file", c.Filename, "url", saved.URL, "saved_at", saved.Timestamp)

	return writeReport(deps, renderer, saved.Data, c.Output)
}
