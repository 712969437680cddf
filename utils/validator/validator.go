package validatorx

import (
	"fmt"
	"reflect"
	"strings"
	"sync"

	gpvalidator "github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

var (
	v   *gpvalidator.Validate
	mut sync.Mutex
)

// Init initializes the validator singleton (idempotent)
func Init() {
	mut.Lock()
	defer mut.Unlock()
	if v != nil {
		return
	}
	v = gpvalidator.New()
	// decimals validate as float64 so numeric tags like gte=0 work on them
	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := d.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})
}

// ValidateStruct validates a struct using go-playground/validator
func ValidateStruct(s interface{}) error {
	Init()
	return v.Struct(s)
}

// Describe flattens validation errors into "field:tag" pairs for item results.
func Describe(err error) string {
	verrs, ok := err.(gpvalidator.ValidationErrors)
	if !ok {
		return err.Error()
	}
	parts := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		if fe.Param() != "" {
			parts = append(parts, fmt.Sprintf("%s:%s=%s", fe.Field(), fe.Tag(), fe.Param()))
			continue
		}
		parts = append(parts, fmt.Sprintf("%s:%s", fe.Field(), fe.Tag()))
	}
	return strings.Join(parts, ", ")
}
