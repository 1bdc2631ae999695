package employee

import "github.com/iota-uz/employee-directory/pkg/serrors"

var (
	ErrFetchFailed    = serrors.NewError("EMPLOYEE_FETCH_FAILED", "failed to fetch employees", "Employees.Errors.FetchFailed")
	ErrCreateFailed   = serrors.NewError("EMPLOYEE_CREATE_FAILED", "failed to create employee", "Employees.Errors.CreateFailed")
	ErrUpdateFailed   = serrors.NewError("EMPLOYEE_UPDATE_FAILED", "failed to update employee", "Employees.Errors.UpdateFailed")
	ErrDeleteFailed   = serrors.NewError("EMPLOYEE_DELETE_FAILED", "failed to delete employee", "Employees.Errors.DeleteFailed")
	ErrExportFailed   = serrors.NewError("EMPLOYEE_EXPORT_FAILED", "failed to export employees", "Employees.Errors.ExportFailed")
	ErrFormIncomplete = serrors.NewError("EMPLOYEE_FORM_INCOMPLETE", "first name, last name and city are required", "Employees.Errors.FormIncomplete")
)
