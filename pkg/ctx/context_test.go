package ctx_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"

	"github.com/shashiranjanraj/storefront/pkg/auth"
	appctx "github.com/shashiranjanraj/storefront/pkg/ctx"
)

func TestWrapAndSuccess(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	appctx.Wrap(func(c *appctx.Context) {
		c.Success(map[string]any{"ok": true})
	})(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":200,"data":{"ok":true}}`, rec.Body.String())
}

func TestParamUint(t *testing.T) {
	r := chi.NewRouter()
	var got uint
	var ok bool
	r.Get("/cart/{productID}", appctx.Wrap(func(c *appctx.Context) {
		got, ok = c.ParamUint("productID")
	}))

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/cart/7", nil))
	assert.True(t, ok)
	assert.Equal(t, uint(7), got)

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/cart/-1", nil))
	assert.False(t, ok)
}

func TestBind_ValidationErrorWrites422(t *testing.T) {
	type input struct {
		Email string `form:"email" validate:"required,email"`
	}

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader("email=bad"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	var bound bool
	appctx.Wrap(func(c *appctx.Context) {
		var in input
		bound = c.Bind(&in)
	})(rec, req)

	assert.False(t, bound)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), `"email"`)
}

func TestIdentity(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)

	appctx.Wrap(func(c *appctx.Context) {
		assert.Nil(t, c.Identity())
	})(httptest.NewRecorder(), req)

	req = req.WithContext(auth.WithIdentity(context.Background(), &auth.Identity{UserID: 5}))
	appctx.Wrap(func(c *appctx.Context) {
		if assert.NotNil(t, c.Identity()) {
			assert.Equal(t, uint(5), c.Identity().UserID)
		}
	})(httptest.NewRecorder(), req)
}

func TestRedirect(t *testing.T) {
	rec := httptest.NewRecorder()
	appctx.Wrap(func(c *appctx.Context) {
		c.Redirect(http.StatusFound, "/login")
	})(rec, httptest.NewRequest(http.MethodGet, "/user", nil))

	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/login", rec.Header().Get("Location"))
}
