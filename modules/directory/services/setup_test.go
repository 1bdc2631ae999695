package services

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/iota-uz/employee-directory/modules/directory/infrastructure/api"
	"github.com/iota-uz/employee-directory/pkg/itf"
)

type fixture struct {
	env       *itf.TestEnvironment
	employees *EmployeeService
	directory *DirectoryService
}

func setup(t *testing.T, records ...itf.EmployeeRecord) *fixture {
	t.Helper()
	env := itf.NewTestContext().WithEmployees(records...).Build(t)

	client, err := api.NewClient(api.Options{BaseURL: env.BaseURL, IDField: "_id"})
	require.NoError(t, err)

	employees := NewEmployeeService(api.NewEmployeeRepository(client), env.Publisher)
	return &fixture{
		env:       env,
		employees: employees,
		directory: NewDirectoryService(employees, env.Logger),
	}
}
