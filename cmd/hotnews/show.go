package main

import (
	"fmt"

	"github.com/ethanol1310/hotnews"
	"github.com/ethanol1310/hotnews/fs"
)

// Run executes the show command.
func (c *ShowCmd) Run(deps *Dependencies) error {
	run, err := deps.Runs.FindRunByID(deps.Ctx, c.ID)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", hotnews.ErrorMessage(err))
		return err
	}

	articles := run.Articles
	if c.Top > 0 && len(articles) > c.Top {
		articles = articles[:c.Top]
	}

	if c.Out != "" {
		if err := fs.WriteReport(c.Out, run); err != nil {
			fmt.Fprintf(deps.Stderr, "error: writing report: %s\n", err)
			return err
		}
	}

	fmt.Fprintf(deps.Stdout, "%s %s..%s (%d articles ranked)\n\n", run.Source, run.Start, run.End, run.Total)
	if len(articles) == 0 {
		fmt.Fprintln(deps.Stdout, "No articles saved.")
		return nil
	}
	fmt.Fprintln(deps.Stdout, hotnews.FormatRanking(articles))

	return nil
}
