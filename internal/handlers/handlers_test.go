package handlers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"

	"impractical.co/brochure"
	"impractical.co/brochure/internal/pages"
)

// fakeRenderer writes the page name and its fields in a fixed order, so tests
// can see exactly what a handler asked for.
type fakeRenderer struct {
	fail bool
}

func (f fakeRenderer) Render(_ context.Context, name string, fields brochure.Fields) ([]byte, error) {
	if f.fail {
		return nil, &brochure.RenderError{Page: name, Err: errors.New("template exploded")}
	}
	var b strings.Builder
	b.WriteString(name)
	for _, key := range []string{"title", "keywords", "description", "test"} {
		if val, ok := fields[key]; ok {
			b.WriteString("|" + key + "=" + val)
		}
	}
	return []byte(b.String()), nil
}

func (fakeRenderer) ServerError(_ context.Context) []byte {
	return []byte("server error page")
}

var testFiles = fstest.MapFS{
	"favicon.ico": {Data: []byte{0x00, 0x00, 0x01, 0x00, 0x01, 0x00}},
	"styles.css":  {Data: []byte("body { color: red; }\n")},
	"subdir/x":    {Data: []byte("x")},
}

var testAssets = fstest.MapFS{
	"readme.txt":             {Data: []byte("read me")},
	"docs/notes.txt":         {Data: []byte("notes")},
	"site/index.html":        {Data: []byte("<p>site index</p>")},
	"site/other/content.txt": {Data: []byte("content")},
}

// Helper function to create a new request and response recorder for handler testing.
func newTestRequest(method, target string) (*http.Request, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(method, target, nil)
	rr := httptest.NewRecorder()
	return req, rr
}

func TestPageHandlers(t *testing.T) {
	t.Parallel()

	h := New(fakeRenderer{}, http.FS(testFiles), http.FS(testAssets), true)

	tests := []struct {
		name     string
		handler  http.HandlerFunc
		target   string
		expected string
	}{
		{
			name:     "index",
			handler:  h.Index,
			target:   "/",
			expected: pages.IndexKey + "|title=Index Title|keywords=Index Keywords|description=Index Description|test=Index Test",
		},
		{
			name:     "index ignores query",
			handler:  h.Index,
			target:   "/index?title=other&test=1",
			expected: pages.IndexKey + "|title=Index Title|keywords=Index Keywords|description=Index Description|test=Index Test",
		},
		{
			name:     "about",
			handler:  h.About,
			target:   "/about",
			expected: pages.AboutKey + "|title=About Title|keywords=About Keywords|description=About Description",
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			req, rr := newTestRequest(http.MethodGet, test.target)
			test.handler(rr, req)

			assert.Equal(t, http.StatusOK, rr.Code)
			assert.Equal(t, "text/html; charset=utf-8", rr.Header().Get("Content-Type"))
			assert.Equal(t, test.expected, rr.Body.String())
		})
	}
}

func TestPageHandlerRenderFailure(t *testing.T) {
	t.Parallel()

	h := New(fakeRenderer{fail: true}, http.FS(testFiles), http.FS(testAssets), true)
	req, rr := newTestRequest(http.MethodGet, "/about")
	h.About(rr, req)

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.Equal(t, "text/html; charset=utf-8", rr.Header().Get("Content-Type"))
	assert.Equal(t, "server error page", rr.Body.String())
}

func TestStaticFiles(t *testing.T) {
	t.Parallel()

	h := New(fakeRenderer{}, http.FS(testFiles), http.FS(testAssets), true)

	req, rr := newTestRequest(http.MethodGet, "/favicon.ico")
	h.Favicon(rr, req)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "image/x-icon", rr.Header().Get("Content-Type"))
	assert.Equal(t, testFiles["favicon.ico"].Data, rr.Body.Bytes())

	req, rr = newTestRequest(http.MethodGet, "/styles.css")
	h.Styles(rr, req)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Header().Get("Content-Type"), "text/css")
	assert.Equal(t, testFiles["styles.css"].Data, rr.Body.Bytes())
}

func TestStaticFileMissing(t *testing.T) {
	t.Parallel()

	h := New(fakeRenderer{}, http.FS(fstest.MapFS{}), http.FS(testAssets), true)

	req, rr := newTestRequest(http.MethodGet, "/favicon.ico")
	h.Favicon(rr, req)
	assert.Equal(t, http.StatusNotFound, rr.Code)

	req, rr = newTestRequest(http.MethodGet, "/styles.css")
	h.Styles(rr, req)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestStaticFileDirectory(t *testing.T) {
	t.Parallel()

	req, rr := newTestRequest(http.MethodGet, "/subdir")
	StaticFile(http.FS(testFiles), "/subdir")(rr, req)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestAssets(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name           string
		listing        bool
		target         string
		expectedStatus int
		expectedBody   string
	}{
		{
			name:           "file",
			listing:        true,
			target:         "/assets/readme.txt",
			expectedStatus: http.StatusOK,
			expectedBody:   "read me",
		},
		{
			name:           "nested file",
			listing:        false,
			target:         "/assets/docs/notes.txt",
			expectedStatus: http.StatusOK,
			expectedBody:   "notes",
		},
		{
			name:           "missing file",
			listing:        true,
			target:         "/assets/nope.txt",
			expectedStatus: http.StatusNotFound,
		},
		{
			name:           "listing enabled",
			listing:        true,
			target:         "/assets/docs/",
			expectedStatus: http.StatusOK,
			expectedBody:   `<a href="notes.txt">notes.txt</a>`,
		},
		{
			name:           "listing disabled",
			listing:        false,
			target:         "/assets/docs/",
			expectedStatus: http.StatusNotFound,
		},
		{
			name:           "listing disabled root",
			listing:        false,
			target:         "/assets/",
			expectedStatus: http.StatusNotFound,
		},
		{
			name:           "index served without listing",
			listing:        false,
			target:         "/assets/site/",
			expectedStatus: http.StatusOK,
			expectedBody:   "<p>site index</p>",
		},
		{
			name:           "nested directory without index",
			listing:        false,
			target:         "/assets/site/other/",
			expectedStatus: http.StatusNotFound,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			h := New(fakeRenderer{}, http.FS(testFiles), http.FS(testAssets), test.listing)
			req, rr := newTestRequest(http.MethodGet, test.target)
			h.Assets(rr, req)

			assert.Equal(t, test.expectedStatus, rr.Code)
			if test.expectedBody != "" {
				assert.Contains(t, rr.Body.String(), test.expectedBody)
			}
		})
	}
}
