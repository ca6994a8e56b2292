package bind

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type loginInput struct {
	Email    string `form:"email" json:"email" validate:"required,email"`
	Password string `form:"password" json:"password" validate:"required"`
}

func TestRequest_Form(t *testing.T) {
	body := url.Values{"email": {"ann@x.io"}, "password": {"pw1"}}.Encode()
	r := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(body))
	r.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	var in loginInput
	errs, err := Request(r, &in)
	require.NoError(t, err)
	assert.Nil(t, errs)
	assert.Equal(t, "ann@x.io", in.Email)
	assert.Equal(t, "pw1", in.Password)
}

func TestRequest_JSON(t *testing.T) {
	r := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(`{"email":"ann@x.io","password":"pw1"}`))
	r.Header.Set("Content-Type", "application/json; charset=utf-8")

	var in loginInput
	errs, err := Request(r, &in)
	require.NoError(t, err)
	assert.Nil(t, errs)
	assert.Equal(t, "pw1", in.Password)
}

func TestRequest_ValidationErrors(t *testing.T) {
	r := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader("email=nope"))
	r.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	var in loginInput
	errs, err := Request(r, &in)
	require.NoError(t, err)
	assert.Contains(t, errs, "email")
	assert.Contains(t, errs, "password")
}

func TestJSON_Malformed(t *testing.T) {
	r := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(`{`))

	var in loginInput
	_, err := JSON(r, &in)
	assert.ErrorContains(t, err, "invalid JSON")
}
