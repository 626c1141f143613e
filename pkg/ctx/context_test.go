package ctx_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"

	"github.com/shashiranjanraj/eduportal/pkg/apperr"
	appctx "github.com/shashiranjanraj/eduportal/pkg/ctx"
)

func serve(h appctx.HandlerFunc, method, body string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(method, "/", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	appctx.Wrap(h)(rec, req)
	return rec
}

func TestOKAndMessage(t *testing.T) {
	rec := serve(func(c *appctx.Context) { c.OK(map[string]any{"ok": true}) }, http.MethodGet, "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"ok":true}`, rec.Body.String())
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	rec = serve(func(c *appctx.Context) { c.Message(http.StatusOK, "Logout successful") }, http.MethodPost, "")
	assert.JSONEq(t, `{"message":"Logout successful"}`, rec.Body.String())
}

func TestFail(t *testing.T) {
	testCases := []struct {
		name         string
		err          error
		expectedCode int
		expectedBody string
	}{
		{"typed", apperr.ErrCourseNotFound, http.StatusNotFound, `{"message":"Course not found"}`},
		{"untyped is masked", errors.New("socket closed"), http.StatusInternalServerError, `{"message":"Error fetching courses"}`},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			rec := serve(func(c *appctx.Context) { c.Fail(tc.err, "Error fetching courses") }, http.MethodGet, "")
			assert.Equal(t, tc.expectedCode, rec.Code)
			assert.JSONEq(t, tc.expectedBody, rec.Body.String())
		})
	}
}

func TestBindJSON(t *testing.T) {
	type in struct {
		Username string `json:"username" validate:"required"`
	}

	var got in
	rec := serve(func(c *appctx.Context) {
		if !c.BindJSON(&got) {
			return
		}
		c.OK(got)
	}, http.MethodPost, `{"username":"jdoe"}`)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "jdoe", got.Username)

	rec = serve(func(c *appctx.Context) {
		var v in
		assert.False(t, c.BindJSON(&v))
	}, http.MethodPost, `{}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"message":"Missing required fields: username"}`, rec.Body.String())

	rec = serve(func(c *appctx.Context) {
		var v in
		assert.False(t, c.BindJSON(&v))
	}, http.MethodPost, `not json`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"message":"Invalid request body"}`, rec.Body.String())
}

func TestBindJSONOrEmpty(t *testing.T) {
	type creds struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}

	testCases := []struct {
		name string
		body string
		want creds
	}{
		{"decoded", `{"username":"jdoe","password":"pw"}`, creds{Username: "jdoe", Password: "pw"}},
		{"empty body", ``, creds{}},
		{"malformed body", `{"username":"jdoe",`, creds{}},
		{"wrong type", `{"username":"jdoe","password":7}`, creds{}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var got creds
			rec := serve(func(c *appctx.Context) {
				c.BindJSONOrEmpty(&got)
				c.Message(http.StatusUnauthorized, "Invalid credentials")
			}, http.MethodPost, tc.body)

			assert.Equal(t, tc.want, got)
			assert.Equal(t, http.StatusUnauthorized, rec.Code, "the handler decides the response")
		})
	}
}

func TestParam(t *testing.T) {
	r := chi.NewRouter()
	var id string
	r.Get("/get-course/{id}", appctx.Wrap(func(c *appctx.Context) {
		id = c.Param("id")
		c.OK(nil)
	}))

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/get-course/64ab", nil))
	assert.Equal(t, "64ab", id)
}
