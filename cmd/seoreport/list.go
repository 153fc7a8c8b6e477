package main

import (
	"fmt"
)

// Run executes the list command.
func (c *ListCmd) Run(deps *Dependencies) error {
	summaries, err := deps.Store.List()
	if err != nil {
		return err
	}

	if len(summaries) == 0 {
		fmt.Fprintln(deps.Stdout, "No saved analyses. Use 'seoreport analyze --save' to create one.")
		return nil
	}

	for _, s := range summaries {
		if s.Notes != "" {
			fmt.Fprintf(deps.Stdout, "%s  %s  %s  %s\n", s.Filename, s.Timestamp, s.URL, s.Notes)
			continue
		}
		fmt.Fprintf(deps.Stdout, "%s  %s  %s\n", s.Filename, s.Timestamp, s.URL)
	}
	return nil
}
