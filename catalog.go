package brochure

import (
	"context"
	"errors"
	"fmt"
	"slices"
)

var (
	// ErrUnknownPage is returned when a Catalog is asked to render a page
	// it doesn't hold.
	ErrUnknownPage = errors.New("unknown page")

	// ErrDuplicatePage is returned when two Pages passed to NewCatalog
	// share a Key.
	ErrDuplicatePage = errors.New("duplicate page key")
)

var serverErrorFallback = []byte("Server error.")

// Catalog maps page names to the Pages of a Site, so pages can be rendered by
// name at runtime. A Catalog is read-only once created and can safely be used
// by multiple goroutines.
type Catalog[SiteType Site] struct {
	site  SiteType
	pages map[string]Page
}

// NewCatalog returns a Catalog serving pages for site. Pages are looked up by
// their Key.
func NewCatalog[SiteType Site](ctx context.Context, site SiteType, pages ...Page) (*Catalog[SiteType], error) {
	catalog := &Catalog[SiteType]{
		site:  site,
		pages: make(map[string]Page, len(pages)),
	}
	for _, page := range pages {
		key := page.Key(ctx)
		if existing, ok := catalog.pages[key]; ok {
			return nil, fmt.Errorf("%w: %q used by %T and %T", ErrDuplicatePage, key, existing, page)
		}
		catalog.pages[key] = page
	}
	return catalog, nil
}

// Site returns the Site the Catalog renders for.
func (c *Catalog[SiteType]) Site() SiteType {
	return c.site
}

// Pages returns the names of every page in the Catalog, sorted.
func (c *Catalog[SiteType]) Pages() []string {
	names := make([]string, 0, len(c.pages))
	for name := range c.pages {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Render renders the page named name with fields. See Render.
func (c *Catalog[SiteType]) Render(ctx context.Context, name string, fields Fields) ([]byte, error) {
	page, ok := c.pages[name]
	if !ok {
		return nil, &RenderError{Page: name, Err: ErrUnknownPage}
	}
	return Render(ctx, c.site, page, fields)
}

// Preload parses the templates of every page up front. When the Site is a
// TemplateCacher, the parsed templates are cached, so later renders never
// touch the template fs.FS. Every page that fails is reported.
func (c *Catalog[SiteType]) Preload(ctx context.Context) error {
	var errs []error
	for _, name := range c.Pages() {
		_, err := getTemplate(ctx, c.site, c.pages[name])
		if err != nil {
			errs = append(errs, &RenderError{Page: name, Err: err})
		}
	}
	return errors.Join(errs...)
}

// ServerError returns the body to send with a server error response. If the
// Site implements ServerErrorPager, that page is rendered; if it doesn't, or
// rendering it fails too, a short text message is returned instead.
func (c *Catalog[SiteType]) ServerError(ctx context.Context) []byte {
	pager, ok := Site(c.site).(ServerErrorPager)
	if !ok {
		return serverErrorFallback
	}
	page, fields := pager.ServerErrorPage(ctx)
	body, err := Render(ctx, c.site, page, fields)
	if err != nil {
		// if we can't do that, everything's doomed, just log it
		Logger(ctx).ErrorContext(ctx, "error rendering server error page", "err", err)
		return serverErrorFallback
	}
	return body
}
