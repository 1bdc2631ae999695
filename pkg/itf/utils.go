package itf

import (
	"github.com/iota-uz/employee-directory/pkg/composables"
)

func DefaultParams() *composables.Params {
	return &composables.Params{
		IP:        "127.0.0.1",
		UserAgent: "itf",
	}
}

// SampleEmployees returns a fixed roster in server order.
func SampleEmployees() []EmployeeRecord {
	return []EmployeeRecord{
		{ID: "42", FirstName: "Grace", LastName: "Hopper", City: "Arlington"},
		{ID: "43", FirstName: "Alan", LastName: "Turing", City: "Wilmslow"},
	}
}
