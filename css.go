package brochure

import (
	"context"
)

// CSSLinker is an interface that Components can fulfill to include some CSS
// that should be loaded through a <link> element in the template. The URLs
// will be made available to the template as .LinkedCSS.
type CSSLinker interface {
	// LinkCSS returns a list of URLs to CSS files that should be linked to
	// from the output HTML.
	LinkCSS(context.Context) []string
}

// getComponentCSSLinks collects the stylesheets of the component and every
// component it uses, keeping the first occurrence of each URL.
func getComponentCSSLinks(ctx context.Context, component Component) []string {
	var results []string
	seen := map[string]struct{}{}
	components := getRecursiveComponents(ctx, component)
	for _, comp := range components {
		link, ok := comp.(CSSLinker)
		if !ok {
			continue
		}
		for _, source := range link.LinkCSS(ctx) {
			if _, ok := seen[source]; ok {
				continue
			}
			results = append(results, source)
			seen[source] = struct{}{}
		}
	}
	return results
}
