package main

import (
	"context"
	"fmt"

	"github.com/sonnes/pramaan/install"
	"github.com/urfave/cli/v3"
)

func installCmd() *cli.Command {
	return &cli.Command{
		Name:  "install",
		Usage: "Prepare a git repository to publish articles with Content Credentials",
		Description: `Creates the asset directory and an empty article catalog when they are
missing, and installs a git pre-commit hook that rejects a broken catalog
and prints the provenance chain of every staged image.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "articles",
				Usage: "Catalog path relative to the repository root",
				Value: "articles.json",
			},
			&cli.StringFlag{
				Name:  "assets",
				Usage: "Asset directory relative to the repository root",
				Value: "assets",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			cfg := install.Config{
				Articles: cmd.String("articles"),
				Assets:   cmd.String("assets"),
			}

			if err := install.Run(cfg); err != nil {
				return err
			}

			w := cmd.Root().Writer
			fmt.Fprintln(w, "Installed successfully.")
			fmt.Fprintln(w)
			fmt.Fprintf(w, "  Catalog:  %s\n", cfg.Articles)
			fmt.Fprintf(w, "  Assets:   %s/\n", cfg.Assets)
			fmt.Fprintln(w, "  Hook:     pre-commit")
			fmt.Fprintln(w)
			fmt.Fprintln(w, "Add stories with 'pm article upsert' and preview them with 'pm serve'.")
			return nil
		},
	}
}
