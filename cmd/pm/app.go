package main

import (
	"fmt"
	"time"

	"github.com/sonnes/pramaan/manifest"
	"github.com/sonnes/pramaan/provenance"
	"github.com/sonnes/pramaan/redact"
	"github.com/sonnes/pramaan/render"
	htmlrender "github.com/sonnes/pramaan/render/html"
	jsonrender "github.com/sonnes/pramaan/render/json"
	"github.com/sonnes/pramaan/render/terminal"
	"github.com/sonnes/pramaan/sdk"
	"github.com/sonnes/pramaan/sdk/c2patool"
	"github.com/sonnes/pramaan/sdk/jsonstore"
	"github.com/urfave/cli/v3"
)

// app holds the toolkit and renderer registries used by CLI commands.
type app struct {
	loaders   map[string]sdk.Loader
	renderers map[string]func(raw bool) render.Renderer
}

func newApp() *app {
	return &app{
		loaders: map[string]sdk.Loader{
			"c2patool": c2patool.Load,
			"json":     jsonstore.Load,
		},
		renderers: map[string]func(raw bool) render.Renderer{
			"terminal": func(bool) render.Renderer { return terminal.New() },
			"html": func(raw bool) render.Renderer {
				r := htmlrender.New()
				r.ShowManifest = raw
				return r
			},
			"json": func(raw bool) render.Renderer {
				r := jsonrender.New()
				r.Raw = raw
				return r
			},
		},
	}
}

// runtime returns an uninitialized toolkit runtime for the named reader. The
// codec and worker locations are passed through untouched.
func (a *app) runtime(name string, res sdk.Resources) (*sdk.Runtime, error) {
	loader, ok := a.loaders[name]
	if !ok {
		return nil, fmt.Errorf("unknown reader %q", name)
	}
	return sdk.NewRuntime(loader, res), nil
}

func (a *app) renderer(name string, raw bool) (render.Renderer, error) {
	fn, ok := a.renderers[name]
	if !ok {
		return nil, fmt.Errorf("unknown output format %q", name)
	}
	return fn(raw), nil
}

// readerFlags select and configure the provenance toolkit.
func readerFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "reader",
			Usage:   "Provenance toolkit: c2patool, json",
			Value:   "c2patool",
			Sources: cli.EnvVars("PM_READER"),
		},
		&cli.StringFlag{
			Name:    "codec",
			Usage:   "Toolkit codec location (c2patool: path to the binary)",
			Sources: cli.EnvVars("PM_CODEC"),
		},
		&cli.StringFlag{
			Name:    "worker",
			Usage:   "Toolkit worker location (c2patool: settings file)",
			Sources: cli.EnvVars("PM_WORKER"),
		},
	}
}

// redactFlags control graph redaction.
func redactFlags() []cli.Flag {
	return []cli.Flag{
		&cli.BoolFlag{
			Name:  "no-redact",
			Usage: "Disable redaction of secrets and PII",
		},
		&cli.StringSliceFlag{
			Name:  "redact",
			Usage: "Allowlist of rules to redact. Example: --redact=secrets,pii",
		},
	}
}

// newWalker builds a walker over f from the root and reader flags.
func newWalker(a *app, cmd *cli.Command, f provenance.Fetcher) (*provenance.Walker, error) {
	rt, err := a.runtime(cmd.String("reader"), sdk.Resources{
		CodecSrc:  cmd.String("codec"),
		WorkerSrc: cmd.String("worker"),
	})
	if err != nil {
		return nil, err
	}

	summarizer, err := newSummarizer(cmd)
	if err != nil {
		return nil, err
	}

	w := provenance.New(f, rt)
	w.Summarizer = summarizer
	return w, nil
}

// newSummarizer builds a Summarizer from --vocab, --tz and --author-lookup.
func newSummarizer(cmd *cli.Command) (*manifest.Summarizer, error) {
	s := manifest.NewSummarizer()

	if path := cmd.String("vocab"); path != "" {
		v, err := manifest.LoadVocabulary(path)
		if err != nil {
			return nil, err
		}
		s.Vocab = v
	}

	if tz := cmd.String("tz"); tz != "" {
		loc, err := time.LoadLocation(tz)
		if err != nil {
			return nil, fmt.Errorf("time zone: %w", err)
		}
		s.Location = loc
	}

	lookup, err := manifest.ParseAuthorLookup(cmd.String("author-lookup"))
	if err != nil {
		return nil, err
	}
	s.Lookup = lookup
	return s, nil
}

// newRedactor builds a Redactor from CLI flags. Returns nil when --no-redact is set.
func newRedactor(cmd *cli.Command) (*redact.Redactor, error) {
	if cmd.Bool("no-redact") {
		return nil, nil
	}

	cfg := redact.Config{}
	rules := cmd.StringSlice("redact")

	if len(rules) == 0 {
		cfg.Secrets = true
		cfg.PII = true
	} else {
		for _, r := range rules {
			switch r {
			case "secrets":
				cfg.Secrets = true
			case "pii":
				cfg.PII = true
			default:
				return nil, fmt.Errorf("unknown redaction rule %q", r)
			}
		}
	}

	return redact.New(cfg), nil
}
