package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestChain(t *testing.T) {
	used := ""

	mark := func(label string) func(http.Handler) http.Handler {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				used += label
				next.ServeHTTP(w, r)
				used += label
			})
		}
	}

	hf := func(w http.ResponseWriter, r *http.Request) {
		used += "h"
	}

	m := http.NewServeMux()

	c1 := Chain{mark("1"), mark("2")}
	m.Handle("GET /{$}", c1.ThenFunc(hf))

	c2 := append(c1, mark("3"), mark("4"))
	m.Handle("GET /foo", c2.ThenFunc(hf))

	c3 := append(c2, mark("5"))
	m.Handle("GET /nested/foo", c3.Then(http.HandlerFunc(hf)))

	m.Handle("GET /none", Chain{}.ThenFunc(hf))

	var tests = []struct {
		RequestPath    string
		ExpectedUsed   string
		ExpectedStatus int
	}{
		{
			RequestPath:    "/",
			ExpectedUsed:   "12h21",
			ExpectedStatus: http.StatusOK,
		},
		{
			RequestPath:    "/foo",
			ExpectedUsed:   "1234h4321",
			ExpectedStatus: http.StatusOK,
		},
		{
			RequestPath:    "/nested/foo",
			ExpectedUsed:   "12345h54321",
			ExpectedStatus: http.StatusOK,
		},
		{
			RequestPath:    "/none",
			ExpectedUsed:   "h",
			ExpectedStatus: http.StatusOK,
		},
	}

	for _, test := range tests {
		used = ""

		r := httptest.NewRequest(http.MethodGet, test.RequestPath, nil)
		rr := httptest.NewRecorder()
		m.ServeHTTP(rr, r)

		rs := rr.Result()

		if rs.StatusCode != test.ExpectedStatus {
			t.Errorf("GET %s: expected status %d but was %d", test.RequestPath, test.ExpectedStatus, rs.StatusCode)
		}

		if used != test.ExpectedUsed {
			t.Errorf("GET %s: middleware used: expected %q; got %q", test.RequestPath, test.ExpectedUsed, used)
		}
	}
}
