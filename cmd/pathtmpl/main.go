package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"
)

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "pathtmpl",
		Usage: "turn observed request URLs into route templates",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Aliases: []string{"c"}, Usage: "YAML configuration file", EnvVars: []string{"PATHTMPL_CONFIG"}},
			&cli.StringFlag{Name: "entities", Usage: "entity dictionary file (overrides config)"},
			&cli.StringFlag{Name: "stoplist", Usage: "entity stoplist file (overrides config)"},
			&cli.StringFlag{Name: "ner-endpoint", Usage: "remote NER inference endpoint (overrides config)"},
			&cli.StringFlag{Name: "db", Usage: "SQLite observation ledger (overrides config)"},
			&cli.IntFlag{Name: "workers", Usage: "concurrent templating workers (overrides config)"},
			&cli.StringFlag{Name: "log-level", Value: "info", Usage: "debug, info, warn or error"},
			&cli.BoolFlag{Name: "quiet", Aliases: []string{"q"}, Usage: "only log errors"},
		},
		Commands: []*cli.Command{
			{
				Name:      "template",
				Usage:     "print the template of each URL argument, or of each stdin line",
				ArgsUsage: "[URL...]",
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "show-source", Usage: "print the raw URL before each template"},
				},
				Action: templateAction,
			},
			{
				Name:  "report",
				Usage: "summarize templates recorded in the ledger",
				Flags: []cli.Flag{
					&cli.IntFlag{Name: "limit", Value: 20, Usage: "maximum templates to list (0 for all)"},
				},
				Action: reportAction,
			},
			{
				Name:  "serve",
				Usage: "serve templates and metrics over HTTP",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "addr", Value: ":8080", Usage: "listen address"},
				},
				Action: serveAction,
			},
		},
	}
}
