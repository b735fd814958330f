package brochure_test

import (
	"context"
	"log/slog"
	"slices"
	"strings"
	"testing"
	"testing/fstest"
	"time"

	"impractical.co/brochure"
)

type CachedSiteFoo struct{}

func (CachedSiteFoo) Templates(_ context.Context) []string {
	return []string{"base.tmpl", "foo.tmpl"}
}

func (CachedSiteFoo) Key(_ context.Context) string {
	return "foo"
}

func (CachedSiteFoo) ExecutedTemplate(_ context.Context) string {
	return "base.tmpl"
}

type CachedSiteBar struct {
	IncludeBaz bool
}

func (bar CachedSiteBar) Templates(_ context.Context) []string {
	templates := []string{"base.tmpl", "bar.tmpl"}
	if bar.IncludeBaz {
		templates = append(templates, "baz.tmpl")
	}
	return templates
}

func (CachedSiteBar) Key(_ context.Context) string {
	return "bar"
}

func (CachedSiteBar) ExecutedTemplate(_ context.Context) string {
	return "base.tmpl"
}

func TestCachedSite(t *testing.T) {
	t.Parallel()

	ctx := brochure.LoggingContext(context.Background(), slog.Default())
	templateFS := fstest.MapFS(map[string]*fstest.MapFile{
		"foo.tmpl": {
			Data:    []byte(`{{ define "template_name" }}foo.tmpl {{ .Fields.name }}{{ end }}`),
			Mode:    0777,
			ModTime: time.Now(),
		},
		"bar.tmpl": {
			Data:    []byte(`{{ define "template_name" }}bar.tmpl{{ block "variable_include" . }}{{ end }}{{ end }}`),
			Mode:    0777,
			ModTime: time.Now(),
		},
		"baz.tmpl": {
			Data:    []byte(`{{ define "variable_include" }} included baz.tmpl{{ end }}`),
			Mode:    0777,
			ModTime: time.Now(),
		},
		"base.tmpl": {
			Data:    []byte(`{{ block "template_name" . }}base.tmpl{{ end }}`),
			Mode:    0777,
			ModTime: time.Now(),
		},
	})
	site := brochure.NewCachedSite(templateFS)
	renderChangeAndRerender(t, ctx, templateFS, CachedSiteFoo{}, site, brochure.Fields{"name": "a"}, "foo.tmpl", "foo.tmpl a")
	renderChangeAndRerender(t, ctx, templateFS, CachedSiteFoo{}, site, brochure.Fields{"name": "b"}, "foo.tmpl", "foo.tmpl b")
	renderChangeAndRerender(t, ctx, templateFS, CachedSiteBar{}, site, nil, "bar.tmpl", "bar.tmpl")
	// the key is the same, so the cached templates without baz.tmpl win
	renderChangeAndRerender(t, ctx, templateFS, CachedSiteBar{IncludeBaz: true}, site, nil, "bar.tmpl", "bar.tmpl")
}

func renderChangeAndRerender(t *testing.T, ctx context.Context, fs fstest.MapFS, page brochure.Page, site brochure.Site, fields brochure.Fields, file, expected string) {
	t.Helper()
	out, err := brochure.Render(ctx, site, page, fields)
	if err != nil {
		t.Fatalf("Unexpected error rendering %T: %s", page, err)
	}
	if output := string(out); output != expected {
		t.Errorf("Expected to get %q, got %q", expected, output)
	}
	oldData := slices.Clone(fs[file].Data)
	fs[file].Data = []byte(strings.ReplaceAll(string(fs[file].Data), file, "changed-"+file))
	out, err = brochure.Render(ctx, site, page, fields)
	if err != nil {
		t.Fatalf("Unexpected error re-rendering %T: %s", page, err)
	}
	if output := string(out); output != expected {
		t.Errorf("Expected to get %q after modifying underlying data, got %q", expected, output)
	}
	fs[file].Data = oldData
}
