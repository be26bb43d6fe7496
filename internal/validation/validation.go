package validation

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Error lists the fields of an entity that failed validation.
type Error struct {
	Entity string
	Fields []string
}

func (e *Error) Error() string {
	return "invalid " + e.Entity + ": " + strings.Join(e.Fields, ", ")
}

// Invalid builds an Error for hand-written checks.
func Invalid(entity string, fields ...string) *Error {
	return &Error{Entity: entity, Fields: fields}
}

// IsInvalid reports whether err carries a validation failure.
func IsInvalid(err error) bool {
	var verr *Error
	return errors.As(err, &verr)
}

// Validator wraps go-playground/validator with string enum tags.
type Validator struct {
	v *validator.Validate
}

// New returns a validator where each enum tag accepts only the listed values.
func New(enums map[string][]string) *Validator {
	v := validator.New()
	for tag, allowed := range enums {
		allowed := allowed
		_ = v.RegisterValidation(tag, func(fl validator.FieldLevel) bool {
			return OneOf(fl.Field().String(), allowed)
		})
	}
	return &Validator{v: v}
}

// Struct validates s and converts failures to *Error.
func (val *Validator) Struct(entity string, s any) error {
	err := val.v.Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		out := &Error{Entity: entity}
		for _, fe := range verrs {
			out.Fields = append(out.Fields, fe.Namespace())
		}
		return out
	}
	return err
}

// Var validates a single value against tag, reporting failures under field.
func (val *Validator) Var(field string, v any, tag string) error {
	err := val.v.Var(v, tag)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		return &Error{Entity: field, Fields: []string{field}}
	}
	return err
}

// OneOf reports whether v is in allowed.
func OneOf(v string, allowed []string) bool {
	for _, a := range allowed {
		if v == a {
			return true
		}
	}
	return false
}
