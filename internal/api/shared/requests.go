package shared

import (
	"encoding/json"
	"errors"
	"mime"
	"net/http"
	"net/url"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Global validator instance for reuse. Field names in validation errors are
// the JSON names, so they can be echoed back to clients.
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// MaxRequestBodyBytes caps the size of JSON and form request bodies.
const MaxRequestBodyBytes int64 = 1 << 20

// DecodeJSON decodes the request body into the given struct. Bodies larger
// than MaxRequestBodyBytes are rejected.
func DecodeJSON(w http.ResponseWriter, r *http.Request, v interface{}) error {
	r.Body = http.MaxBytesReader(w, r.Body, MaxRequestBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return err
	}
	return nil
}

// IsFormRequest reports whether the request body is
// application/x-www-form-urlencoded.
func IsFormRequest(r *http.Request) bool {
	mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	return err == nil && mediaType == "application/x-www-form-urlencoded"
}

// DecodeForm parses a URL-encoded request body and returns its values.
// Bodies larger than MaxRequestBodyBytes are rejected.
func DecodeForm(w http.ResponseWriter, r *http.Request) (url.Values, error) {
	r.Body = http.MaxBytesReader(w, r.Body, MaxRequestBodyBytes)
	if err := r.ParseForm(); err != nil {
		return nil, err
	}
	return r.PostForm, nil
}

// ValidateRequest validates the given struct using the validator package.
func ValidateRequest(v interface{}) error {
	// Check if the object implements the Validate interface
	if validator, ok := v.(interface{ Validate() error }); ok {
		return validator.Validate()
	}

	// Otherwise, use the struct validator
	return validate.Struct(v)
}

// MissingFields returns the JSON names of fields that failed a "required"
// rule, in struct order. It returns nil if err is not a validation error.
func MissingFields(err error) []string {
	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return nil
	}

	var fields []string
	for _, fe := range validationErrs {
		if fe.Tag() == "required" {
			fields = append(fields, fe.Field())
		}
	}
	return fields
}
