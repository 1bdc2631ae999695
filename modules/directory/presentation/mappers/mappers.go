package mappers

import (
	"fmt"
	"net/url"

	"github.com/iota-uz/employee-directory/modules/directory/domain/aggregates/employee"
	"github.com/iota-uz/employee-directory/modules/directory/domain/entities/editor"
	"github.com/iota-uz/employee-directory/modules/directory/presentation/viewmodels"
)

func EmployeeToViewModel(entity employee.Employee) *viewmodels.Employee {
	return &viewmodels.Employee{
		ID:        entity.ID(),
		FirstName: entity.FirstName(),
		LastName:  entity.LastName(),
		City:      entity.City(),
		EditURL:   "/?" + url.Values{"edit": {entity.ID()}}.Encode(),
		DeleteURL: fmt.Sprintf("/employees/%s/delete", url.PathEscape(entity.ID())),
	}
}

func FormToViewModel(form *editor.Form, errs map[string]string) *viewmodels.Form {
	if errs == nil {
		errs = map[string]string{}
	}
	fields := form.Fields()
	id, editing := form.EditingID()
	return &viewmodels.Form{
		FirstName: fields.FirstName,
		LastName:  fields.LastName,
		City:      fields.City,
		EditingID: id,
		Editing:   editing,
		CanSubmit: form.CanSubmit(),
		Errors:    errs,
	}
}
