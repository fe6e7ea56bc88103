// Package httpjson holds the JSON request and response helpers shared by the
// HTTP handlers.
package httpjson

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
	"github.com/unrolled/render"
)

var renderer = render.New(render.Options{
	UnEscapeHTML: true,
})

var validate = newValidator()

// newValidator reports fields by their JSON names and compares decimals
// as numbers.
func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	v.RegisterCustomTypeFunc(func(field reflect.Value) any {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			return d.InexactFloat64()
		}
		return nil
	}, decimal.Decimal{})
	return v
}

type ErrorResponse struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields,omitempty"`
}

func Respond(w http.ResponseWriter, status int, payload any) {
	if err := renderer.JSON(w, status, payload); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func Error(w http.ResponseWriter, status int, message string) {
	Respond(w, status, ErrorResponse{Error: message})
}

// DecodeAndValidate reads a JSON body into dst and runs its validate tags.
// Field errors are written as a 400 response and reported with ok == false.
func DecodeAndValidate(w http.ResponseWriter, r *http.Request, dst any) (ok bool) {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		Error(w, http.StatusBadRequest, "Invalid JSON body")
		return false
	}
	if err := validate.Struct(dst); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			Respond(w, http.StatusBadRequest, ErrorResponse{
				Error:  "Validation failed",
				Fields: FormatValidationErrors(verrs),
			})
			return false
		}
		Error(w, http.StatusBadRequest, "Validation failed")
		return false
	}
	return true
}

// FormatValidationErrors flattens validator errors to field -> message.
func FormatValidationErrors(errs validator.ValidationErrors) map[string]string {
	messages := make(map[string]string, len(errs))
	for _, err := range errs {
		field := strings.ToLower(err.Field())
		switch err.Tag() {
		case "required":
			messages[field] = fmt.Sprintf("%s is required", err.Field())
		case "email":
			messages[field] = fmt.Sprintf("%s must be a valid email address", err.Field())
		case "min", "gte":
			messages[field] = fmt.Sprintf("%s must be at least %s", err.Field(), err.Param())
		case "max", "lte":
			messages[field] = fmt.Sprintf("%s must be at most %s", err.Field(), err.Param())
		case "gt":
			messages[field] = fmt.Sprintf("%s must be greater than %s", err.Field(), err.Param())
		case "oneof":
			messages[field] = fmt.Sprintf("%s must be one of [%s]", err.Field(), err.Param())
		default:
			messages[field] = fmt.Sprintf("%s failed on %s", err.Field(), err.Tag())
		}
	}
	return messages
}
