// Package ctx provides the request context handed to every controller.
//
// Instead of (http.ResponseWriter, *http.Request), a handler receives a single
// *Context:
//
//	func (c *CourseController) Show(cx *ctx.Context) {
//	    course, err := c.courses.Get(cx.Context(), cx.Param("id"))
//	    if err != nil {
//	        cx.Fail(err, "Error fetching course details")
//	        return
//	    }
//	    cx.JSON(http.StatusOK, course)
//	}
//
//	r.Get("/get-course/{id}", "courses.show", ctx.Wrap(c.Show))
package ctx

import (
	"context"
	"errors"
	"net/http"
	"reflect"
	"sync"

	"github.com/go-chi/chi/v5"

	"github.com/shashiranjanraj/eduportal/pkg/apperr"
	"github.com/shashiranjanraj/eduportal/pkg/bind"
	"github.com/shashiranjanraj/eduportal/pkg/logger"
	"github.com/shashiranjanraj/eduportal/pkg/response"
)

// HandlerFunc is the controller handler signature.
type HandlerFunc func(c *Context)

// Wrap adapts a HandlerFunc to http.HandlerFunc.
func Wrap(h HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := acquire(w, r)
		defer release(c)
		h(c)
	}
}

// Context wraps one request/response pair.
type Context struct {
	W      http.ResponseWriter
	R      *http.Request
	status int
}

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

// Body is the payload for every message-only response and every error.
type Body struct {
	Message string `json:"message"`
}

// Param returns a URL path parameter ("/get-course/{id}" → c.Param("id")).
func (c *Context) Param(key string) string {
	return chi.URLParam(c.R, key)
}

// Header returns a request header.
func (c *Context) Header(key string) string {
	return c.R.Header.Get(key)
}

// Context returns the request context.
func (c *Context) Context() context.Context { return c.R.Context() }

// BindJSON decodes and validates the body into dest. On failure it writes a
// 400 and returns false; the handler should return immediately.
//
//	var in SignupInput
//	if !c.BindJSON(&in) {
//	    return
//	}
func (c *Context) BindJSON(dest any) bool {
	err := bind.JSON(c.R, dest)
	if err == nil {
		return true
	}

	var fe bind.FieldErrors
	switch {
	case errors.As(err, &fe):
		c.Message(http.StatusBadRequest, fe.Error())
	case errors.Is(err, bind.ErrMalformed):
		c.Message(http.StatusBadRequest, apperr.ErrInvalidBody.Message)
	default:
		c.Fail(err, apperr.ErrInvalidBody.Message)
	}
	return false
}

// BindJSONOrEmpty decodes the body into dest and never answers the request:
// a missing or malformed body leaves dest at its zero value, so the handler
// treats it as empty input.
func (c *Context) BindJSONOrEmpty(dest any) {
	err := bind.JSON(c.R, dest)
	if err == nil {
		return
	}

	logger.WithCtx(c.Context()).Debug("request body ignored", "error", err.Error())
	if v := reflect.ValueOf(dest); v.Kind() == reflect.Pointer && !v.IsNil() {
		v.Elem().Set(reflect.Zero(v.Elem().Type()))
	}
}

// JSON writes v with the given status code.
func (c *Context) JSON(code int, v any) {
	c.status = code
	response.JSON(c.W, code, v)
}

// OK writes a 200 with v as the body.
func (c *Context) OK(v any) {
	c.JSON(http.StatusOK, v)
}

// Message writes {"message": msg} with code.
func (c *Context) Message(code int, msg string) {
	c.JSON(code, Body{Message: msg})
}

// Fail renders err. Typed apperr errors keep their status and message;
// anything else is logged and masked as a 500 carrying fallback.
func (c *Context) Fail(err error, fallback string) {
	if e, ok := apperr.As(err); ok {
		c.Message(e.Status, e.Message)
		return
	}

	logger.WithCtx(c.Context()).Error(fallback,
		"error", err.Error(),
		"method", c.R.Method,
		"path", c.R.URL.Path,
	)
	c.Message(http.StatusInternalServerError, fallback)
}

// WrittenStatus returns the status written so far, or 0.
func (c *Context) WrittenStatus() int { return c.status }
