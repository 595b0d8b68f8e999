// Package validator flattens go-playground struct validation into a
// field -> failed-rule map, ready to drop into an error envelope's
// details.
package validator

import (
	"errors"

	v10 "github.com/go-playground/validator/v10"
)

var validate = v10.New()

// Validate runs the struct's validate tags. Returns nil when everything
// passes, otherwise the failing fields keyed by name.
func Validate(s interface{}) map[string]string {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	fields := make(map[string]string)
	var vErrs v10.ValidationErrors
	if errors.As(err, &vErrs) {
		for _, fe := range vErrs {
			fields[fe.Field()] = fe.Tag()
		}
		return fields
	}

	// non-struct input or a bad tag; surface it rather than pass silently
	fields["_"] = err.Error()
	return fields
}
