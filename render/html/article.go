package html

import (
	"html/template"
	"io"

	"github.com/sonnes/pramaan/core"
)

// articleData is the template data passed to article.html. The same page
// serves articles, the not-found listing and catalog errors.
type articleData struct {
	DocTitle        string
	SiteName        string
	CredentialsPath string

	ArticleID string
	Kicker    string
	Heading   string
	Byline    bool
	Author    string
	Posted    string
	Updated   string
	ImagePath string
	ImageAlt  string
	Caption   string

	Body       template.HTML
	Message    string
	NotFoundID string

	Catalog []core.Article
	Related []core.Article
}

func (r *Renderer) siteName() string {
	return core.FirstNonEmpty(r.SiteName, DefaultSiteName)
}

// RenderArticle writes the page for a, with up to related links below it.
// catalog feeds the sections menu.
func (r *Renderer) RenderArticle(w io.Writer, a core.Article, related, catalog []core.Article) error {
	body, err := renderParagraphs(r.md, a.Content)
	if err != nil {
		return err
	}

	data := articleData{
		DocTitle:        a.DisplayTitle() + " · " + r.siteName(),
		SiteName:        r.siteName(),
		CredentialsPath: core.FirstNonEmpty(r.CredentialsPath, DefaultCredentialsPath),
		ArticleID:       a.ID,
		Kicker:          a.Kicker,
		Heading:         a.Title,
		Byline:          true,
		Author:          a.DisplayAuthor(),
		Posted:          a.Posted,
		Updated:         a.LastUpdated,
		ImagePath:       a.ImagePath,
		ImageAlt:        core.FirstNonEmpty(a.ImageCaption, "Article image"),
		Caption:         core.FirstNonEmpty(a.ImageCaption, core.Dash),
		Body:            body,
		Catalog:         catalog,
		Related:         related,
	}
	return r.tmpl.ExecuteTemplate(w, "article.html", data)
}

// RenderNotFound writes the page for an unknown article id, linking every
// article in the catalog.
func (r *Renderer) RenderNotFound(w io.Writer, id string, catalog []core.Article) error {
	data := articleData{
		DocTitle:   "Article not found · " + r.siteName(),
		SiteName:   r.siteName(),
		Kicker:     "Not Found",
		Heading:    "We couldn’t find that article",
		NotFoundID: id,
		Catalog:    catalog,
	}
	return r.tmpl.ExecuteTemplate(w, "article.html", data)
}

// RenderSiteError writes the page shown when the catalog cannot be used.
func (r *Renderer) RenderSiteError(w io.Writer, msg string) error {
	data := articleData{
		DocTitle: "Error · " + r.siteName(),
		SiteName: r.siteName(),
		Kicker:   "Error",
		Heading:  "Could not load articles",
		Message:  msg,
	}
	return r.tmpl.ExecuteTemplate(w, "article.html", data)
}
