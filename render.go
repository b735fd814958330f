package brochure

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html/template"
	"io"
	"io/fs"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var (
	// ErrNoTemplatePath is returned when a template path is needed, but
	// none are supplied.
	ErrNoTemplatePath = errors.New("need at least one template path")

	// ErrTemplatePatternMatchesNoFiles is returned when a template path is
	// a pattern, but that pattern doesn't match any files.
	ErrTemplatePatternMatchesNoFiles = errors.New("pattern matches no files")
)

// Fields are the named values a page's templates fill their placeholders
// with. Templates reference them as {{ .Fields.name }}.
type Fields map[string]string

// Component is an interface for a UI component that can be rendered to HTML.
type Component interface {
	// Templates returns a list of filepaths to html/template contents
	// that need to be parsed before the component can be rendered. Paths
	// may be fs.Glob patterns.
	Templates(context.Context) []string
}

// ComponentUser is an interface that a Component can optionally implement to
// list the Components that it relies upon. Their Templates and any optional
// interfaces they implement are included whenever this Component is rendered.
type ComponentUser interface {
	// UseComponents returns the Components that this Component relies on.
	UseComponents(context.Context) []Component
}

// Page is a single logical page of the site, composed of one or more
// Components.
type Page interface {
	Component

	// Key is the unique name of the page. It's used to look the page up
	// in a Catalog and to cache its parsed templates.
	Key(context.Context) string

	// ExecutedTemplate is the template that needs to actually be executed
	// when rendering the page.
	//
	// This is usually not the template for the Component defining the
	// page; it's usually the layout template the page fills blocks in.
	ExecutedTemplate(context.Context) string
}

// RenderData is the data that is passed to a page's templates when rendering
// it.
type RenderData[SiteType Site] struct {
	// Site is the Site the page is rendered for.
	Site SiteType

	// Fields are the values passed to Render.
	Fields Fields

	// LinkedCSS is the deduplicated list of stylesheet URLs returned by
	// the page's CSSLinker Components.
	LinkedCSS []string
}

// RenderError is returned when a page can't be rendered. It always indicates
// a broken template or a handler passing the wrong Fields, never a problem
// with the request being served.
type RenderError struct {
	Page string
	Err  error
}

func (e *RenderError) Error() string {
	return fmt.Sprintf("error rendering page %q: %s", e.Page, e.Err)
}

func (e *RenderError) Unwrap() error {
	return e.Err
}

// Render renders the passed Page with the passed Fields and returns the
// resulting HTML. Every value in fields is HTML-escaped as html/template sees
// fit for where it's inserted. Any error is a *RenderError.
func Render[SiteType Site](ctx context.Context, site SiteType, page Page, fields Fields) ([]byte, error) {
	key := page.Key(ctx)
	ctx, span := tracer().Start(ctx, "brochure.Render", trace.WithAttributes(
		attribute.String("brochure.page", key),
	))
	defer span.End()

	var buf bytes.Buffer
	err := basicRender(ctx, &buf, site, page, fields)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "render failed")
		return nil, &RenderError{Page: key, Err: err}
	}
	return buf.Bytes(), nil
}

func basicRender[SiteType Site](ctx context.Context, output io.Writer, site SiteType, page Page, fields Fields) error {
	tmpl, err := getTemplate(ctx, site, page)
	if err != nil {
		return err
	}

	data := RenderData[SiteType]{
		Site:      site,
		Fields:    fields,
		LinkedCSS: getComponentCSSLinks(ctx, page),
	}

	executed := page.ExecutedTemplate(ctx)
	err = tmpl.ExecuteTemplate(output, executed, data)
	if err != nil {
		return fmt.Errorf("error executing template %q for %T: %w", executed, page, err)
	}
	return nil
}

func getTemplate(ctx context.Context, site Site, page Page) (*template.Template, error) {
	key := page.Key(ctx)
	if cache, ok := site.(TemplateCacher); ok {
		cached := cache.GetCachedTemplate(ctx, key)
		if cached != nil {
			return cached, nil
		}
	}
	tmplPaths := getComponentTemplatePaths(ctx, page)
	if len(tmplPaths) < 1 {
		return nil, fmt.Errorf("error rendering %T: %w", page, ErrNoTemplatePath)
	}
	parsed, err := parseTemplates(site.TemplateDir(ctx), tmplPaths...)
	if err != nil {
		return nil, fmt.Errorf("error parsing templates %v for page %T: %w", tmplPaths, page, err)
	}
	if cache, ok := site.(TemplateCacher); ok {
		cache.SetCachedTemplate(ctx, key, parsed)
	}
	Logger(ctx).DebugContext(ctx, "parsed page templates", "page", key, "templates", tmplPaths)
	return parsed, nil
}

func getRecursiveComponents(ctx context.Context, component Component) []Component {
	results := []Component{component}

	if uses, ok := component.(ComponentUser); ok {
		children := uses.UseComponents(ctx)
		for _, child := range children {
			results = append(results, getRecursiveComponents(ctx, child)...)
		}
	}
	return results
}

func getComponentTemplatePaths(ctx context.Context, component Component) []string {
	var results []string
	seen := map[string]struct{}{}
	components := getRecursiveComponents(ctx, component)
	for _, comp := range components {
		paths := comp.Templates(ctx)
		for _, path := range paths {
			if _, ok := seen[path]; !ok {
				results = append(results, path)
				seen[path] = struct{}{}
			}
		}
	}
	return results
}

func parseTemplates(fsys fs.FS, patterns ...string) (*template.Template, error) {
	var files []string
	for _, pattern := range patterns {
		list, err := fs.Glob(fsys, pattern)
		if err != nil {
			return nil, fmt.Errorf("error listing files for %q: %w", pattern, err)
		}
		if len(list) < 1 {
			return nil, fmt.Errorf("error parsing %q: %w", pattern, ErrTemplatePatternMatchesNoFiles)
		}
		files = append(files, list...)
	}
	if len(files) < 1 {
		return nil, ErrNoTemplatePath
	}
	// a placeholder without a value is a bug in the caller, not an empty string
	tmpl := template.New("").Option("missingkey=error")
	for _, file := range files {
		sub := tmpl.New(file)
		contents, err := fs.ReadFile(fsys, file)
		if err != nil {
			return nil, fmt.Errorf("error reading %q: %w", file, err)
		}
		_, err = sub.Parse(string(contents))
		if err != nil {
			return nil, fmt.Errorf("error parsing %q: %w", file, err)
		}
	}
	return tmpl, nil
}
