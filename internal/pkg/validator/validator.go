package validator

import "github.com/go-playground/validator/v10"

var validate = validator.New()

// Validate runs the struct's `validate` tags and returns a field -> failed
// tag map, or nil when everything passes. Handlers surface the map as the
// details of a VALIDATION_ERROR response.
func Validate(v any) map[string]string {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	fields := make(map[string]string)
	for _, fe := range err.(validator.ValidationErrors) {
		fields[fe.Field()] = fe.Tag()
	}
	return fields
}
