package main

import (
	"context"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/charmbracelet/log"
	"github.com/sonnes/pramaan/core"
	"github.com/sonnes/pramaan/provenance"
	htmlrender "github.com/sonnes/pramaan/render/html"
	"github.com/sonnes/pramaan/server"
	"github.com/urfave/cli/v3"
)

func serveCmd() *cli.Command {
	flags := []cli.Flag{
		&cli.StringFlag{
			Name:    "articles",
			Usage:   "Path to articles.json",
			Value:   "articles.json",
			Sources: cli.EnvVars("PM_ARTICLES"),
		},
		&cli.StringFlag{
			Name:    "assets",
			Usage:   "Directory served under /assets/",
			Value:   "assets",
			Sources: cli.EnvVars("PM_ASSETS"),
		},
		&cli.IntFlag{
			Name:    "port",
			Usage:   "Port to listen on",
			Value:   8080,
			Sources: cli.EnvVars("PM_PORT"),
		},
		&cli.StringFlag{
			Name:  "site-name",
			Usage: "Site name shown in page titles",
			Value: htmlrender.DefaultSiteName,
		},
		&cli.BoolFlag{
			Name:  "manifest",
			Usage: "Show the raw active manifest in the viewer",
		},
		&cli.StringSliceFlag{
			Name:    "allow-origin",
			Usage:   "Origin (scheme://host[:port]) remote assets may be fetched from; none means local assets only",
			Sources: cli.EnvVars("PM_ALLOW_ORIGIN"),
		},
	}
	flags = append(flags, readerFlags()...)
	flags = append(flags, redactFlags()...)

	return &cli.Command{
		Name:  "serve",
		Usage: "Serve the article site with its Content Credentials viewer",
		Flags: flags,
		Action: func(ctx context.Context, cmd *cli.Command) error {
			assets, err := filepath.Abs(cmd.String("assets"))
			if err != nil {
				return err
			}

			fetcher := &provenance.MultiFetcher{
				HTTP: &provenance.HTTPFetcher{Allow: provenance.AllowOrigins(cmd.StringSlice("allow-origin")...)},
				File: &provenance.FileFetcher{Root: assets, Prefix: server.AssetsPrefix},
			}

			a := newApp()
			w, err := newWalker(a, cmd, fetcher)
			if err != nil {
				return err
			}

			redactor, err := newRedactor(cmd)
			if err != nil {
				return err
			}
			var transformers []core.Transformer
			if redactor != nil {
				transformers = append(transformers, redactor)
			}

			renderer := htmlrender.New()
			renderer.SiteName = cmd.String("site-name")
			renderer.ShowManifest = cmd.Bool("manifest")

			srv := &server.Server{
				ArticlesPath: cmd.String("articles"),
				AssetsDir:    assets,
				Walker:       w,
				Renderer:     renderer,
				Transformers: transformers,
				Port:         int(cmd.Int("port")),
				Logger:       log.Default(),
			}

			ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
			defer stop()
			return srv.ListenAndServe(ctx)
		},
	}
}
