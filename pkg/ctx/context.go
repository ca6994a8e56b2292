// Package ctx provides a request context for controllers.
//
// Instead of accepting (http.ResponseWriter, *http.Request), a controller
// receives a single *Context:
//
//	func (c *CartController) Add(x *ctx.Context) {
//	    id, ok := x.ParamUint("productID")
//	    ...
//	    x.Success(snapshot)
//	}
//
//	r.Get("/cart/{productID:[0-9]+}", "cart.add", ctx.Wrap(cart.Add))
package ctx

import (
	"context"
	"net/http"
	"strconv"
	"sync"

	"github.com/go-chi/chi/v5"

	"github.com/shashiranjanraj/storefront/pkg/auth"
	"github.com/shashiranjanraj/storefront/pkg/bind"
	"github.com/shashiranjanraj/storefront/pkg/response"
	"github.com/shashiranjanraj/storefront/pkg/session"
	"github.com/shashiranjanraj/storefront/pkg/validate"
)

// HandlerFunc is the context-aware handler signature.
type HandlerFunc func(c *Context)

// Wrap converts a HandlerFunc to a standard http.HandlerFunc.
func Wrap(h HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := acquire(w, r)
		defer release(c)
		h(c)
	}
}

// ─── Context ──────────────────────────────────────────────────────────────────

// Context wraps a request/response pair.
type Context struct {
	W      http.ResponseWriter
	R      *http.Request
	status int // written status code (0 = not written yet)
}

// pool recycles Context objects to reduce GC pressure.
var pool = sync.Pool{
	New: func() any { return &Context{} },
}

func acquire(w http.ResponseWriter, r *http.Request) *Context {
	c := pool.Get().(*Context)
	c.W = w
	c.R = r
	c.status = 0
	return c
}

func release(c *Context) {
	c.W = nil
	c.R = nil
	pool.Put(c)
}

// ─── Request helpers ──────────────────────────────────────────────────────────

// Param returns a URL path parameter.
func (c *Context) Param(key string) string {
	return chi.URLParam(c.R, key)
}

// ParamInt parses a path parameter as a non-negative integer.
func (c *Context) ParamInt(key string) (int, bool) {
	n, err := strconv.Atoi(c.Param(key))
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}

// ParamUint parses a path parameter as an id.
func (c *Context) ParamUint(key string) (uint, bool) {
	n, err := strconv.ParseUint(c.Param(key), 10, 0)
	if err != nil {
		return 0, false
	}
	return uint(n), true
}

// PostForm returns a form field from an application/x-www-form-urlencoded body.
func (c *Context) PostForm(key string) string {
	return c.R.PostFormValue(key)
}

// Header returns the value of a request header.
func (c *Context) Header(key string) string {
	return c.R.Header.Get(key)
}

// Context returns the underlying request context.
func (c *Context) Context() context.Context { return c.R.Context() }

// Session returns the request's session.
func (c *Context) Session() *session.Session {
	return session.FromCtx(c.R)
}

// Identity returns the authenticated caller, or nil when anonymous.
func (c *Context) Identity() *auth.Identity {
	id, _ := auth.FromContext(c.R.Context())
	return id
}

// ─── Binding / Validation ─────────────────────────────────────────────────────

// Bind decodes a JSON or form body into dest and runs validation.
// On failure it sends a 400 or 422 and returns false.
//
//	var input LoginInput
//	if !c.Bind(&input) {
//	    return // response already sent
//	}
func (c *Context) Bind(dest any) bool {
	errs, err := bind.Request(c.R, dest)
	if err != nil {
		c.Error(http.StatusBadRequest, err.Error())
		return false
	}
	if validate.HasErrors(errs) {
		c.ValidationError(errs)
		return false
	}
	return true
}

// ─── Response helpers ─────────────────────────────────────────────────────────

func (c *Context) JSON(code int, data any) {
	c.status = code
	response.JSON(c.W, code, data)
}

// Success sends a 200 JSON envelope: {"status":200,"data":...}
func (c *Context) Success(data any) {
	c.JSON(http.StatusOK, data)
}

// Error sends a JSON error envelope with the given status and message.
func (c *Context) Error(code int, message string) {
	c.status = code
	response.Error(c.W, code, message)
}

// ErrorWith sends an error envelope with structured details.
func (c *Context) ErrorWith(code int, message string, errs any) {
	c.status = code
	response.ErrorWith(c.W, code, message, errs)
}

// ValidationError sends a 422 Unprocessable Entity with field-level errors.
func (c *Context) ValidationError(errs map[string]string) {
	c.status = http.StatusUnprocessableEntity
	response.ValidationError(c.W, errs)
}

// NotFound sends a 404.
func (c *Context) NotFound() {
	c.Error(http.StatusNotFound, "Not found")
}

// Redirect sends an HTTP redirect response.
func (c *Context) Redirect(code int, url string) {
	c.status = code
	http.Redirect(c.W, c.R, url, code)
}

// WrittenStatus returns the status written so far, or 0.
func (c *Context) WrittenStatus() int { return c.status }
