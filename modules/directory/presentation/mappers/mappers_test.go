package mappers

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/iota-uz/employee-directory/modules/directory/domain/aggregates/employee"
	"github.com/iota-uz/employee-directory/modules/directory/domain/entities/editor"
)

func TestEmployeeToViewModel_EscapesID(t *testing.T) {
	vm := EmployeeToViewModel(employee.Hydrate("a b/c", "Ada", "Lovelace", "London"))
	require.Equal(t, "/?edit=a+b%2Fc", vm.EditURL)
	require.Equal(t, "/employees/a%20b%2Fc/delete", vm.DeleteURL)
}

func TestFormToViewModel(t *testing.T) {
	f := editor.New()
	vm := FormToViewModel(f, nil)
	require.False(t, vm.Editing)
	require.False(t, vm.CanSubmit)
	require.NotNil(t, vm.Errors)

	f.BeginEdit(employee.Hydrate("42", "Ada", "Lovelace", "London"))
	vm = FormToViewModel(f, map[string]string{"City": "City is required"})
	require.True(t, vm.Editing)
	require.True(t, vm.CanSubmit)
	require.Equal(t, "42", vm.EditingID)
	require.Equal(t, "London", vm.City)
	require.Equal(t, "City is required", vm.Errors["City"])
}
