package utils

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

var validate = sync.OnceValue(func() *validator.Validate {

	val := validator.New()

	//	report config key names instead of go field names
	val.RegisterTagNameFunc(func(field reflect.StructField) string {

		for _, tag := range []string{"yaml", "json"} {
			name, _, _ := strings.Cut(field.Tag.Get(tag), ",")
			if name != "" && name != "-" {
				return name
			}
		}

		return field.Name
	})

	return val
})

// ValidateStruct checks the `validate` tags of a struct and joins
// all field violations into one error.
func ValidateStruct(val any) error {

	err := validate().Struct(val)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}

	var messages []string
	for _, entry := range fieldErrs {
		messages = append(messages, fmt.Sprintf("field '%s' failed validation '%s'", entry.Field(), entry.Tag()))
	}

	return errors.New(strings.Join(messages, "; "))
}
