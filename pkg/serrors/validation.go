package serrors

import (
	"github.com/go-playground/validator/v10"
	"github.com/iota-uz/go-i18n/v2/i18n"
)

type ValidationError struct {
	BaseError
	Field          string
	FieldLocaleKey string
}

type ValidationErrors map[string]*ValidationError

func NewRequiredError(field, fieldLocaleKey string) *ValidationError {
	return &ValidationError{
		BaseError: BaseError{
			Code:      "VALIDATION_REQUIRED",
			Message:   field + " is required",
			LocaleKey: "Validations.required",
		},
		Field:          field,
		FieldLocaleKey: fieldLocaleKey,
	}
}

// ProcessValidatorErrors maps validator failures to ValidationErrors keyed by struct field.
// Tags other than "required" keep the validator's own message.
func ProcessValidatorErrors(errs validator.ValidationErrors, fieldLocaleKey func(field string) string) ValidationErrors {
	out := make(ValidationErrors, len(errs))
	for _, fe := range errs {
		field := fe.StructField()
		if fe.Tag() == "required" {
			out[field] = NewRequiredError(field, fieldLocaleKey(field))
			continue
		}
		out[field] = &ValidationError{
			BaseError: BaseError{
				Code:    "VALIDATION_" + fe.Tag(),
				Message: fe.Error(),
			},
			Field:          field,
			FieldLocaleKey: fieldLocaleKey(field),
		}
	}
	return out
}

func LocalizeValidationErrors(errs ValidationErrors, l *i18n.Localizer) map[string]string {
	out := make(map[string]string, len(errs))
	for field, ve := range errs {
		out[field] = ve.localize(l)
	}
	return out
}

func (e *ValidationError) localize(l *i18n.Localizer) string {
	if l == nil || e.LocaleKey == "" {
		return e.Message
	}
	fieldName := e.Field
	if e.FieldLocaleKey != "" {
		if name, err := l.Localize(&i18n.LocalizeConfig{MessageID: e.FieldLocaleKey}); err == nil && name != "" {
			fieldName = name
		}
	}
	msg, err := l.Localize(&i18n.LocalizeConfig{
		MessageID:    e.LocaleKey,
		TemplateData: map[string]string{"Field": fieldName},
	})
	if err != nil || msg == "" {
		return e.Message
	}
	return msg
}
