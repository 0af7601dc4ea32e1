package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/sonnes/pramaan/articles"
	"github.com/sonnes/pramaan/core"
	"github.com/urfave/cli/v3"
)

func articlesFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "articles",
		Usage:   "Path to articles.json",
		Value:   "articles.json",
		Sources: cli.EnvVars("PM_ARTICLES"),
	}
}

func articleCmd() *cli.Command {
	return &cli.Command{
		Name:  "article",
		Usage: "Manage the article catalog",
		Commands: []*cli.Command{
			articleUpsertCmd(),
			articleListCmd(),
		},
	}
}

func articleUpsertCmd() *cli.Command {
	return &cli.Command{
		Name:  "upsert",
		Usage: "Add or update an article in the catalog",
		Description: `Replaces the fields given on the command line and keeps the rest when
the article already exists. New articles are appended. The body file is
Markdown; blank lines separate paragraphs.`,
		Flags: []cli.Flag{
			articlesFlag(),
			&cli.StringFlag{Name: "id", Usage: "Article id", Required: true},
			&cli.StringFlag{Name: "title", Usage: "Headline"},
			&cli.StringFlag{Name: "kicker", Usage: "Section label shown above the headline"},
			&cli.StringFlag{Name: "author", Usage: "Byline"},
			&cli.StringFlag{Name: "posted", Usage: "Publication date as displayed"},
			&cli.StringFlag{Name: "updated", Usage: "Last update as displayed"},
			&cli.StringFlag{Name: "image", Usage: "Hero image path, e.g. assets/hero.jpg"},
			&cli.StringFlag{Name: "caption", Usage: "Hero image caption"},
			&cli.StringFlag{Name: "body", Aliases: []string{"f"}, Usage: "Markdown file with the article body (- for stdin)"},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			path := cmd.String("articles")
			c, err := articles.ReadFile(path)
			if err != nil {
				return fmt.Errorf("read articles: %w", err)
			}

			a, _ := c.Find(cmd.String("id"))
			a.ID = cmd.String("id")
			if err := applyArticleFlags(&a, cmd); err != nil {
				return err
			}
			c.Upsert(a)

			if err := c.WriteFile(path); err != nil {
				return fmt.Errorf("write articles: %w", err)
			}
			fmt.Fprintf(cmd.Root().Writer, "Saved article %s (%d in catalog)\n", a.ID, c.Len())
			return nil
		},
	}
}

// applyArticleFlags copies every flag the user set onto a.
func applyArticleFlags(a *core.Article, cmd *cli.Command) error {
	fields := []struct {
		flag string
		dst  *string
	}{
		{"title", &a.Title},
		{"kicker", &a.Kicker},
		{"author", &a.Author},
		{"posted", &a.Posted},
		{"updated", &a.LastUpdated},
		{"image", &a.ImagePath},
		{"caption", &a.ImageCaption},
	}
	for _, f := range fields {
		if cmd.IsSet(f.flag) {
			*f.dst = cmd.String(f.flag)
		}
	}

	if !cmd.IsSet("body") {
		return nil
	}
	body, err := readBody(cmd.String("body"), cmd.Root().Reader)
	if err != nil {
		return fmt.Errorf("read body: %w", err)
	}
	a.Content = splitParagraphs(body)
	return nil
}

func readBody(path string, stdin io.Reader) (string, error) {
	if path == "-" {
		data, err := io.ReadAll(stdin)
		return string(data), err
	}
	data, err := os.ReadFile(path)
	return string(data), err
}

// splitParagraphs breaks Markdown text on blank lines.
func splitParagraphs(text string) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	var out []string
	for _, p := range strings.Split(text, "\n\n") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func articleListCmd() *cli.Command {
	return &cli.Command{
		Name:  "list",
		Usage: "List the articles in the catalog",
		Flags: []cli.Flag{articlesFlag()},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			c, err := articles.ReadFile(cmd.String("articles"))
			if err != nil {
				return fmt.Errorf("read articles: %w", err)
			}
			w := cmd.Root().Writer
			if c.Len() == 0 {
				fmt.Fprintln(w, "No articles.")
				return nil
			}
			fmt.Fprintln(w, articleTable(c.Articles))
			return nil
		},
	}
}

var styleHeader = lipgloss.NewStyle().Bold(true).Padding(0, 1)
var styleCell = lipgloss.NewStyle().Padding(0, 1)

func articleTable(list []core.Article) string {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("ID", "TITLE", "AUTHOR", "IMAGE").
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return styleHeader
			}
			return styleCell
		})
	for _, a := range list {
		t.Row(a.ID, a.DisplayTitle(), a.DisplayAuthor(), core.FirstNonEmpty(a.ImagePath, core.Dash))
	}
	return t.Render()
}
