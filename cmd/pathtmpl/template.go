package main

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/urfave/cli/v2"
)

func templateAction(c *cli.Context) error {
	s, err := settingsFrom(c)
	if err != nil {
		return err
	}
	eng, err := buildEngine(c.Context, s)
	if err != nil {
		return err
	}
	defer eng.Close()

	urls := c.Args().Slice()
	if len(urls) == 0 {
		scanner := bufio.NewScanner(c.App.Reader)
		scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
		for scanner.Scan() {
			line := strings.TrimSpace(scanner.Text())
			if line == "" {
				continue
			}
			urls = append(urls, line)
		}
		if err := scanner.Err(); err != nil {
			return fmt.Errorf("read stdin: %w", err)
		}
	}

	results := eng.templater.TemplateAll(c.Context, urls, eng.workers)

	showSource := c.Bool("show-source")
	for _, res := range results {
		if showSource {
			fmt.Fprintf(c.App.Writer, "%s\t%s\n", res.RawURL, res.Template)
		} else {
			fmt.Fprintln(c.App.Writer, res.Template)
		}
	}

	if err := eng.record(c.Context, results); err != nil {
		return err
	}
	eng.log.Info("templated urls", "count", len(results))
	return nil
}
