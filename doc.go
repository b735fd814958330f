// Package brochure renders the HTML pages of a small, fixed site on top of the
// html/template package.
//
// brochure is organized around Components and Pages. A Component is some
// piece of the HTML document that a page wants included in its output, like
// the shared layout every page sits in. A Page is a Component that gets
// rendered itself rather than being included in another Component, and it has
// a Key that names it at runtime.
//
// Each server should have a Site, which acts as a singleton and provides the
// fs.FS holding the templates the Components use. The Site is available at
// render time as .Site, and the values passed to Render are available as
// .Fields. Every placeholder a template references must be present in the
// Fields; a missing one fails the render rather than printing an empty value.
//
// A Catalog binds a Site to the set of Pages it serves, so handlers can render
// a page by name:
//
//	body, err := catalog.Render(ctx, "about", brochure.Fields{
//		"title": "About Title",
//	})
//
// Rendering always produces the whole document or an error; nothing is written
// anywhere until the output is complete, so callers are free to answer with an
// error page instead.
package brochure
