// Package bind decodes a JSON request body and runs presence validation on it.
package bind

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"sort"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/shashiranjanraj/eduportal/config"
)

const defaultMaxBodyBytes = 4 << 20

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

func validatorInstance() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		// Report fields by their JSON names, which is what clients send.
		validate.RegisterTagNameFunc(func(f reflect.StructField) string {
			name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
			if name == "-" {
				return ""
			}
			if name == "" {
				return f.Name
			}
			return name
		})
	})
	return validate
}

// FieldErrors maps a JSON field name to the failed rule ("required", …).
type FieldErrors map[string]string

// Error renders "Missing required fields: a, b" for presence failures and a
// generic list otherwise.
func (fe FieldErrors) Error() string {
	fields := make([]string, 0, len(fe))
	allRequired := true
	for f, rule := range fe {
		fields = append(fields, f)
		if rule != "required" {
			allRequired = false
		}
	}
	sort.Strings(fields)

	if allRequired {
		return "Missing required fields: " + strings.Join(fields, ", ")
	}
	return "Invalid fields: " + strings.Join(fields, ", ")
}

// ErrMalformed wraps JSON syntax, type and size errors.
var ErrMalformed = errors.New("bind: malformed body")

// JSON decodes r.Body into dest and validates it.
// It returns an error wrapping ErrMalformed for undecodable input, or a
// FieldErrors value when validation fails.
func JSON(r *http.Request, dest interface{}) error {
	limit := int64(config.Int("MAX_BODY_BYTES", defaultMaxBodyBytes))
	if limit <= 0 {
		limit = defaultMaxBodyBytes
	}
	r.Body = http.MaxBytesReader(nil, r.Body, limit)

	if err := json.NewDecoder(r.Body).Decode(dest); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return fmt.Errorf("%w: body exceeds %d bytes", ErrMalformed, maxErr.Limit)
		}
		return fmt.Errorf("%w: %v", ErrMalformed, err)
	}

	return Struct(dest)
}

// Struct validates an already populated value.
func Struct(v interface{}) error {
	err := validatorInstance().Struct(v)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	fe := make(FieldErrors, len(verrs))
	for _, e := range verrs {
		fe[e.Field()] = e.Tag()
	}
	return fe
}
