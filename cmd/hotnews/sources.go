package main

import (
	"fmt"

	"github.com/ethanol1310/hotnews"
)

// Run executes the sources command.
func (c *SourcesCmd) Run(deps *Dependencies) error {
	for _, name := range deps.Sources.Names() {
		src, err := deps.Sources.Lookup(name)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", hotnews.ErrorMessage(err))
			return err
		}

		l := src.Limits()
		partitions := fmt.Sprint(l.Partitions)
		if l.Sequential {
			partitions = "sequential"
		}
		fmt.Fprintf(deps.Stdout, "%-10s partitions=%s pages=%d articles=%d\n", name, partitions, l.Pages, l.Articles)
	}
	return nil
}
