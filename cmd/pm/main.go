package main

import (
	"context"
	"os"

	"github.com/charmbracelet/log"
	"github.com/sonnes/pramaan/manifest"
	"github.com/urfave/cli/v3"
)

func main() {
	if err := rootCmd().Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}

func rootCmd() *cli.Command {
	return &cli.Command{
		Name:  "pm",
		Usage: "Inspect Content Credentials and serve them next to your articles",
		Description: `
  _ __  _ _ __ _ _ __  __ _ __ _ _ _  
 | '_ \| '_/ _' | '  \/ _' / _' | ' \ 
 | .__/|_| \__,_|_|_|_\__,_\__,_|_||_|
 |_|                                  

 The witness of images: walks an asset's provenance chain, two levels deep.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log",
				Usage:   "Log level: debug, info, warn, error",
				Value:   "error",
				Sources: cli.EnvVars("PM_LOG"),
			},
			&cli.StringFlag{
				Name:    "vocab",
				Usage:   "YAML file with extra action and parameter labels",
				Sources: cli.EnvVars("PM_VOCAB"),
			},
			&cli.StringFlag{
				Name:    "tz",
				Usage:   "Time zone for issued-on timestamps (default: local)",
				Sources: cli.EnvVars("PM_TZ"),
			},
			&cli.StringFlag{
				Name:    "author-lookup",
				Usage:   "How authorship is found in a manifest: position or label",
				Value:   string(manifest.ByPosition),
				Sources: cli.EnvVars("PM_AUTHOR_LOOKUP"),
			},
		},
		Before: func(ctx context.Context, cmd *cli.Command) (context.Context, error) {
			level, err := log.ParseLevel(cmd.String("log"))
			if err != nil {
				return ctx, err
			}
			log.SetLevel(level)
			return ctx, nil
		},
		Commands: []*cli.Command{
			inspectCmd(),
			serveCmd(),
			articleCmd(),
			installCmd(),
		},
	}
}
