package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/sonnes/pramaan/compact"
	"github.com/sonnes/pramaan/core"
	"github.com/sonnes/pramaan/provenance"
	"github.com/urfave/cli/v3"
)

func inspectCmd() *cli.Command {
	flags := []cli.Flag{
		&cli.StringFlag{
			Name:  "o",
			Usage: "Output format: terminal, html, json",
			Value: "terminal",
		},
		&cli.BoolFlag{
			Name:  "manifest",
			Usage: "Include the raw active manifest (html, json)",
		},
		&cli.StringFlag{
			Name:  "compact",
			Usage: "Enable compact mode. Use --compact=no-placeholders to also hide ingredients without credentials",
		},
	}
	flags = append(flags, readerFlags()...)
	flags = append(flags, redactFlags()...)

	return &cli.Command{
		Name:      "inspect",
		Usage:     "Show the provenance chain of an image",
		ArgsUsage: "<path or URL>",
		Description: `Fetches the asset, reads its Content Credentials with the selected
toolkit and prints the asset, its parents and grandparents as cards.`,
		Flags: flags,
		Action: func(ctx context.Context, cmd *cli.Command) error {
			asset := cmd.Args().First()

			a := newApp()

			rnd, err := a.renderer(cmd.String("o"), cmd.Bool("manifest"))
			if err != nil {
				return err
			}

			w, err := newWalker(a, cmd, provenance.NewMultiFetcher())
			if err != nil {
				return err
			}

			g := w.Walk(ctx, asset)

			redactor, err := newRedactor(cmd)
			if err != nil {
				return err
			}
			if redactor != nil {
				if err := core.Chain(g, redactor); err != nil {
					return fmt.Errorf("redact: %w", err)
				}
			}

			if v := cmd.String("compact"); v != "" {
				cfg := compact.Config{}
				if v == "no-placeholders" {
					cfg.StripPlaceholders = true
				}
				if err := core.Chain(g, compact.New(cfg)); err != nil {
					return fmt.Errorf("compact: %w", err)
				}
			}

			if err := rnd.Render(cmd.Root().Writer, g); err != nil {
				return fmt.Errorf("render: %w", err)
			}

			if !g.OK() {
				return errors.New(g.Error)
			}
			return nil
		},
	}
}
