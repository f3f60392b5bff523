package main

import (
	"fmt"
	"time"

	"github.com/ethanol1310/hotnews"
)

// Run executes the history command.
func (c *HistoryCmd) Run(deps *Dependencies) error {
	filter := hotnews.RunFilter{Limit: c.Limit}
	if c.Source != "" {
		name := hotnews.SourceName(c.Source)
		filter.Source = &name
	}
	if c.URL != "" {
		filter.URL = &c.URL
	}

	runs, err := deps.Runs.FindRuns(deps.Ctx, filter)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", hotnews.ErrorMessage(err))
		return err
	}

	if len(runs) == 0 {
		fmt.Fprintln(deps.Stdout, "No saved runs. Use 'hotnews crawl --save' to save one.")
		return nil
	}

	for _, r := range runs {
		fmt.Fprintf(deps.Stdout, "%s  %-10s %s..%s  %d articles  %s\n",
			r.ID, r.Source, r.Start, r.End, r.Total, r.CreatedAt.Local().Format(time.DateTime))
	}

	return nil
}
