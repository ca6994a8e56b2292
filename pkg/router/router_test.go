package router

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ok(body string) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) { _, _ = w.Write([]byte(body)) }
}

func TestRouter_StaticBeatsParam(t *testing.T) {
	r := New()
	r.Get("/cart", "cart.show", ok("show"))
	r.Get("/{productID:[0-9]+}", "cart.remove", func(w http.ResponseWriter, req *http.Request) {
		_, _ = w.Write([]byte("remove " + chi.URLParam(req, "productID")))
	})

	for path, want := range map[string]string{"/cart": "show", "/12": "remove 12"} {
		rec := httptest.NewRecorder()
		r.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, want, rec.Body.String(), path)
	}

	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/abc", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRouter_URL(t *testing.T) {
	r := New()
	r.Get("/cart/{productID:[0-9]+}", "cart.add", ok(""))
	g := r.Group("/admin")
	g.Get("/{name}", "admin.show", ok(""))

	u, err := r.URL("cart.add", map[string]string{"productID": "3"})
	require.NoError(t, err)
	assert.Equal(t, "/cart/3", u)

	u, err = r.URL("admin.show", map[string]string{"name": "x"})
	require.NoError(t, err)
	assert.Equal(t, "/admin/x", u)

	_, err = r.URL("cart.add", nil)
	assert.Error(t, err)
	_, err = r.URL("nope", nil)
	assert.Error(t, err)
}

func TestRouter_RoutesListsBothMethods(t *testing.T) {
	r := New()
	r.Get("/login", "login", ok(""))
	r.Post("/login", "login", ok(""))
	r.Get("/", "home", ok(""))

	assert.Equal(t, []RouteInfo{
		{Method: http.MethodGet, Path: "/", Name: "home"},
		{Method: http.MethodGet, Path: "/login", Name: "login"},
		{Method: http.MethodPost, Path: "/login", Name: "login"},
	}, r.Routes())
}

func TestGroup_MiddlewareOrder(t *testing.T) {
	var order []string
	mw := func(tag string) Middleware {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
				order = append(order, tag)
				next.ServeHTTP(w, req)
			})
		}
	}

	r := New()
	g := r.Group("/g", mw("outer")).Group("/h", mw("inner"))
	g.Get("/x", "", ok(""), mw("route"))

	r.Handler().ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/g/h/x", nil))
	assert.Equal(t, []string{"outer", "inner", "route"}, order)
}
