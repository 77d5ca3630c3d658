package web

import (
	"fmt"
	"log/slog"
	"net/http"
	"reflect"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// NewValidator returns a body validator that understands decimal.Decimal, so numeric
// rules such as gte=0 can be applied to prices.
func NewValidator() *validator.Validate {
	v := validator.New()
	v.RegisterCustomTypeFunc(func(field reflect.Value) any {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := d.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})
	return v
}

// OptionalInt reads an optional integer query parameter. Any value, negatives included, is accepted.
// A missing parameter yields (nil, true); a malformed one is answered with 400 and yields (nil, false).
func OptionalInt(r *http.Request, w http.ResponseWriter, logger *slog.Logger, key string) (*int, bool) {
	value := r.URL.Query().Get(key)
	if value == "" {
		return nil, true
	}
	intValue, err := strconv.ParseInt(value, 10, 32)
	if err != nil {
		RespondError(w, logger, http.StatusBadRequest, fmt.Sprintf("Invalid %s number: %s", key, value))
		return nil, false
	}
	result := int(intValue)
	return &result, true
}

// OptionalDecimal reads an optional exact decimal query parameter.
// A missing parameter yields (nil, true).
func OptionalDecimal(r *http.Request, w http.ResponseWriter, logger *slog.Logger, key string) (*decimal.Decimal, bool) {
	value := r.URL.Query().Get(key)
	if value == "" {
		return nil, true
	}
	d, err := decimal.NewFromString(value)
	if err != nil {
		RespondError(w, logger, http.StatusBadRequest, fmt.Sprintf("Invalid %s number: %s", key, value))
		return nil, false
	}
	return &d, true
}

// OptionalString reads an optional query parameter. A parameter that is present but empty is returned as "".
func OptionalString(r *http.Request, key string) *string {
	values, ok := r.URL.Query()[key]
	if !ok || len(values) == 0 {
		return nil
	}
	return &values[0]
}
