// Package controllers adapts HTTP requests to the services. Responses are
// JSON view models, one per page of the storefront.
package controllers

import (
	"errors"
	"mime"
	"net/http"
	"time"

	"github.com/shashiranjanraj/storefront/app/services"
	"github.com/shashiranjanraj/storefront/pkg/ctx"
	"github.com/shashiranjanraj/storefront/pkg/logger"
)

// view is the payload every page shares.
type view map[string]any

func page(c *ctx.Context, data view) view {
	data["current_year"] = time.Now().Year()
	if id := c.Identity(); id != nil {
		data["user"] = id
	}
	return data
}

// wantsJSON reports whether the request body is JSON, which marks an API
// client rather than a browser form post.
func wantsJSON(c *ctx.Context) bool {
	ct, _, _ := mime.ParseMediaType(c.Header("Content-Type"))
	return ct == "application/json"
}

// fail maps a service error onto a response.
func fail(c *ctx.Context, err error) {
	switch {
	case errors.Is(err, services.ErrUnauthenticated):
		c.Redirect(http.StatusFound, "/login")
	case errors.Is(err, services.ErrNotFound):
		c.NotFound()
	default:
		logger.WithCtx(c.Context()).Error("request failed",
			"method", c.R.Method, "path", c.R.URL.Path, "error", err)
		c.Error(http.StatusInternalServerError, "Internal Server Error")
	}
}
