package main

import (
	"fmt"

	"github.com/fwojciec/kbmigrate"
)

// Run executes the history command.
func (c *HistoryCmd) Run(deps *Dependencies) error {
	filter := kbmigrate.ResultFilter{Limit: c.Limit}
	if c.RunID != "" {
		filter.RunID = &c.RunID
	}
	if c.Failed {
		status := kbmigrate.StatusError
		filter.Status = &status
	}

	results, err := deps.Results.FindResults(deps.Ctx, filter)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", kbmigrate.ErrorMessage(err))
		return err
	}

	if len(results) == 0 {
		fmt.Fprintln(deps.Stdout, "No results found. Use 'kbmigrate run' to migrate articles.")
		return nil
	}

	for _, r := range results {
		name := r.Title
		if name == "" {
			name = r.Folder
		}
		articleID := r.ArticleID
		if articleID == "" {
			articleID = "-"
		}
		fmt.Fprintf(deps.Stdout, "%s  %-7s  %s  %s\n",
			r.CreatedAt.Format("2006-01-02 15:04:05"), r.Status, articleID, name)
	}
	return nil
}
