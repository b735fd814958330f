package handlers

import (
	"errors"
	"io/fs"
	"mime"
	"net/http"
	"path"

	"impractical.co/brochure"
)

func init() {
	// not in Go's built-in table, and sniffing only recognizes some icons
	_ = mime.AddExtensionType(".ico", "image/x-icon")
}

// StaticFile serves the single file name from fsys. The file is opened for
// every request and closed once its contents have been sent. A missing file,
// or a directory, is answered with 404.
func StaticFile(fsys http.FileSystem, name string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		f, err := fsys.Open(name)
		if errors.Is(err, fs.ErrNotExist) {
			http.NotFound(w, r)
			return
		}
		if err != nil {
			brochure.Logger(ctx).ErrorContext(ctx, "error opening static file", "file", name, "err", err)
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}
		defer f.Close()

		info, err := f.Stat()
		if err != nil {
			brochure.Logger(ctx).ErrorContext(ctx, "error reading static file info", "file", name, "err", err)
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}
		if info.IsDir() {
			http.NotFound(w, r)
			return
		}
		http.ServeContent(w, r, info.Name(), info.ModTime(), f)
	}
}

// Directory serves the files of fsys under prefix. When listing is false,
// directories are only served if they hold an index.html; any other directory
// is answered with 404.
func Directory(prefix string, fsys http.FileSystem, listing bool) http.Handler {
	if !listing {
		fsys = noListingFS{fsys}
	}
	return http.StripPrefix(prefix, http.FileServer(fsys))
}

// noListingFS reports directories without an index.html as not existing.
type noListingFS struct {
	http.FileSystem
}

func (nfs noListingFS) Open(name string) (http.File, error) {
	f, err := nfs.FileSystem.Open(name)
	if err != nil {
		return nil, err
	}
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, err
	}
	if !info.IsDir() {
		return f, nil
	}
	index, err := nfs.FileSystem.Open(path.Join(name, "index.html"))
	if err != nil {
		f.Close()
		return nil, fs.ErrNotExist
	}
	index.Close()
	return f, nil
}
