package employee

import (
	"context"
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/iota-uz/employee-directory/pkg/constants"
	"github.com/iota-uz/employee-directory/pkg/intl"
	"github.com/iota-uz/employee-directory/pkg/serrors"
)

// FormDTO is the submitted employee form. EditingID is empty while creating.
type FormDTO struct {
	FirstName string `form:"FirstName" validate:"required"`
	LastName  string `form:"LastName" validate:"required"`
	City      string `form:"City" validate:"required"`
	EditingID string `form:"EditingID"`
}

func (d *FormDTO) Fields() Fields {
	return Fields{
		FirstName: d.FirstName,
		LastName:  d.LastName,
		City:      d.City,
	}
}

// Ok validates presence of the three fields and returns localized messages keyed by field.
func (d *FormDTO) Ok(ctx context.Context) (map[string]string, bool) {
	errs := constants.Validate.Struct(d)
	if errs == nil {
		return map[string]string{}, true
	}

	validatorErrs, ok := errs.(validator.ValidationErrors)
	if !ok {
		return map[string]string{"": errs.Error()}, false
	}
	getFieldLocaleKey := func(field string) string {
		switch field {
		case "FirstName", "LastName", "City":
			return fmt.Sprintf("Employees.Fields.%s", field)
		default:
			return ""
		}
	}
	l, _ := intl.UseLocalizer(ctx)
	return serrors.LocalizeValidationErrors(
		serrors.ProcessValidatorErrors(validatorErrs, getFieldLocaleKey),
		l,
	), false
}
