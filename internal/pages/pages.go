// Package pages holds the pages of the site: the index, about and error pages,
// the layout they share, and the templates they're rendered from.
package pages

import (
	"context"
	"embed"
	"io/fs"
	"strconv"

	"impractical.co/brochure"
)

// Names pages are registered under in the Catalog.
const (
	IndexKey = "index"
	AboutKey = "about"
	ErrorKey = "error"
)

const stylesheet = "/styles.css"

//go:embed templates
var embedded embed.FS

// Templates returns the templates compiled into the binary.
func Templates() fs.FS {
	sub, err := fs.Sub(embedded, "templates")
	if err != nil {
		// embedded is fixed at build time, fs.Sub only fails on an invalid path
		panic(err)
	}
	return sub
}

// Site is the brochure.Site every page is rendered for. It's available to
// templates as .Site.
type Site struct {
	*brochure.CachedSite

	// Name is shown in the footer of every page using Layout.
	Name string
}

// NewSite returns a Site reading its templates from templates.
func NewSite(templates fs.FS, name string) *Site {
	return &Site{
		CachedSite: brochure.NewCachedSite(templates),
		Name:       name,
	}
}

// ServerErrorPage renders the error page for 500 responses.
func (*Site) ServerErrorPage(_ context.Context) (brochure.Page, brochure.Fields) {
	return ErrorPage{}, ErrorFields(500, "Internal server error")
}

// Layout is the document shell shared by the index and about pages. Pages
// using it fill its "body" block and must supply the title, keywords and
// description fields.
type Layout struct{}

func (l Layout) Templates(_ context.Context) []string {
	return []string{l.BaseTemplate()}
}

func (Layout) LinkCSS(_ context.Context) []string {
	return []string{stylesheet}
}

// BaseTemplate is the template pages using Layout execute.
func (Layout) BaseTemplate() string {
	return "base.html.tmpl"
}

// IndexPage is the home page. Besides the Layout fields it needs test.
type IndexPage struct {
	Layout Layout
}

func (IndexPage) Templates(_ context.Context) []string {
	return []string{"index.html.tmpl"}
}

func (p IndexPage) UseComponents(_ context.Context) []brochure.Component {
	return []brochure.Component{p.Layout}
}

func (IndexPage) Key(_ context.Context) string {
	return IndexKey
}

func (p IndexPage) ExecutedTemplate(_ context.Context) string {
	return p.Layout.BaseTemplate()
}

// AboutPage is the about page. It needs only the Layout fields.
type AboutPage struct {
	Layout Layout
}

func (AboutPage) Templates(_ context.Context) []string {
	return []string{"about/index.html.tmpl"}
}

func (p AboutPage) UseComponents(_ context.Context) []brochure.Component {
	return []brochure.Component{p.Layout}
}

func (AboutPage) Key(_ context.Context) string {
	return AboutKey
}

func (p AboutPage) ExecutedTemplate(_ context.Context) string {
	return p.Layout.BaseTemplate()
}

// ErrorPage is a standalone page shown for error responses. It needs the
// status_code and error fields; see ErrorFields.
type ErrorPage struct{}

func (ErrorPage) Templates(_ context.Context) []string {
	return []string{"error.html.tmpl"}
}

func (ErrorPage) LinkCSS(_ context.Context) []string {
	return []string{stylesheet}
}

func (ErrorPage) Key(_ context.Context) string {
	return ErrorKey
}

func (ErrorPage) ExecutedTemplate(_ context.Context) string {
	return "error.html.tmpl"
}

// ErrorFields returns the Fields ErrorPage is rendered with.
func ErrorFields(status int, message string) brochure.Fields {
	return brochure.Fields{
		"status_code": strconv.Itoa(status),
		"error":       message,
	}
}

// NewCatalog returns a Catalog holding every page of the site, rendered from
// templates.
func NewCatalog(ctx context.Context, templates fs.FS, name string) (*brochure.Catalog[*Site], error) {
	return brochure.NewCatalog(ctx, NewSite(templates, name),
		IndexPage{},
		AboutPage{},
		ErrorPage{},
	)
}

// Renderer renders pages by name.
type Renderer interface {
	Render(ctx context.Context, name string, fields brochure.Fields) ([]byte, error)
}

// ErrorPageRenderer returns a function rendering ErrorPage through renderer,
// suitable for the error interceptor middleware.
func ErrorPageRenderer(renderer Renderer) func(ctx context.Context, status int, message string) ([]byte, error) {
	return func(ctx context.Context, status int, message string) ([]byte, error) {
		return renderer.Render(ctx, ErrorKey, ErrorFields(status, message))
	}
}
