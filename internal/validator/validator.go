package validator

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/fitlife-app/membership-service/internal/models"
)

// Validator wraps go-playground struct validation plus the membership
// business rules.
type Validator struct {
	validate *validator.Validate
}

// New creates a validator with the custom membership rules registered.
func New() *Validator {
	validate := validator.New()

	v := &Validator{validate: validate}
	v.registerRules()

	return v
}

func (v *Validator) registerRules() {
	// role must belong to the closed role set
	_ = v.validate.RegisterValidation("role", func(fl validator.FieldLevel) bool {
		return models.Role(fl.Field().String()).Valid()
	})

	// feedback must carry substance, not just whitespace
	_ = v.validate.RegisterValidation("feedback", func(fl validator.FieldLevel) bool {
		text := strings.TrimSpace(fl.Field().String())
		return text != "" && len(text) <= 1000
	})
}

// Validate validates struct tags and returns the collected field errors.
func (v *Validator) Validate(s interface{}) ValidationErrors {
	err := v.validate.Struct(s)
	if err != nil {
		return ToValidationErrors(err)
	}
	return nil
}

// ValidationError describes a single failed field.
type ValidationError struct {
	Field   string `json:"field"`
	Tag     string `json:"tag"`
	Message string `json:"message"`
}

// ValidationErrors is an error aggregating all failed fields.
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return ""
	}
	msgs := make([]string, len(e))
	for i, ve := range e {
		msgs[i] = ve.Message
	}
	return strings.Join(msgs, "; ")
}

// ToValidationErrors converts go-playground errors into the local type.
func ToValidationErrors(err error) ValidationErrors {
	var out ValidationErrors

	if fieldErrors, ok := err.(validator.ValidationErrors); ok {
		for _, fe := range fieldErrors {
			out = append(out, ValidationError{
				Field:   fe.Field(),
				Tag:     fe.Tag(),
				Message: messageFor(fe),
			})
		}
		return out
	}

	return ValidationErrors{{Message: err.Error()}}
}

func messageFor(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "email":
		return fmt.Sprintf("%s must be a valid email address", fe.Field())
	case "role":
		return fmt.Sprintf("%s must be one of member, trainer, admin", fe.Field())
	case "feedback":
		return fmt.Sprintf("%s must be non-empty and at most 1000 characters", fe.Field())
	case "max":
		return fmt.Sprintf("%s exceeds the maximum length of %s", fe.Field(), fe.Param())
	default:
		return fmt.Sprintf("%s failed validation on %s", fe.Field(), fe.Tag())
	}
}
