package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/urfave/cli/v2"
)

func reportAction(c *cli.Context) error {
	s, err := settingsFrom(c)
	if err != nil {
		return err
	}
	eng, err := buildEngine(c.Context, s)
	if err != nil {
		return err
	}
	defer eng.Close()

	if eng.store == nil {
		return errors.New("report needs a ledger: set --db or db in the config file")
	}

	stats, err := eng.store.Templates(c.Context, c.Int("limit"))
	if err != nil {
		return fmt.Errorf("failed to list templates: %w", err)
	}

	w := c.App.Writer
	if len(stats) == 0 {
		fmt.Fprintln(w, "No observations recorded")
		return nil
	}

	fmt.Fprintf(w, "%-8s %-20s %-20s %s\n", "Count", "First seen", "Last seen", "Template")
	fmt.Fprintln(w, strings.Repeat("-", 100))
	var total int64
	for _, st := range stats {
		fmt.Fprintf(w, "%-8d %-20s %-20s %s\n",
			st.Count,
			st.FirstSeen.Local().Format("2006-01-02 15:04:05"),
			st.LastSeen.Local().Format("2006-01-02 15:04:05"),
			st.Template,
		)
		fmt.Fprintf(w, "%-8s e.g. %s\n", "", st.Example)
		total += st.Count
	}
	fmt.Fprintf(w, "\nTotal: %d templates, %d observations\n", len(stats), total)
	return nil
}
