package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/go-faster/errors"
	"github.com/tidwall/gjson"

	"github.com/iota-uz/employee-directory/modules/directory/domain/aggregates/employee"
)

var (
	ErrMalformedList = errors.New("malformed employee list")
	ErrMissingID     = errors.New("employee without identifier")
)

type EmployeeRepository struct {
	client *Client
}

func NewEmployeeRepository(client *Client) employee.Repository {
	return &EmployeeRepository{client: client}
}

func (g *EmployeeRepository) GetAll(ctx context.Context) ([]employee.Employee, error) {
	body, err := g.client.doJSON(ctx, "list", http.MethodGet, g.client.endpoint("api", "employees"), nil)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list employees")
	}
	return decodeEmployees(body, g.client.idField)
}

func (g *EmployeeRepository) Create(ctx context.Context, data employee.Fields) error {
	if _, err := g.client.doJSON(ctx, "create", http.MethodPost, g.client.endpoint("api", "employee"), data); err != nil {
		return errors.Wrap(err, "failed to create employee")
	}
	return nil
}

func (g *EmployeeRepository) Update(ctx context.Context, id string, data employee.Fields) error {
	if _, err := g.client.doJSON(ctx, "update", http.MethodPut, g.client.endpoint("api", "employee", id), data); err != nil {
		return errors.Wrapf(err, "failed to update employee %s", id)
	}
	return nil
}

func (g *EmployeeRepository) Delete(ctx context.Context, id string) error {
	if _, err := g.client.doJSON(ctx, "delete", http.MethodDelete, g.client.endpoint("api", "employee", id), nil); err != nil {
		return errors.Wrapf(err, "failed to delete employee %s", id)
	}
	return nil
}

// decodeEmployees reads a JSON array of employee objects. String and number
// identifiers are both kept as their literal text.
func decodeEmployees(body []byte, idField string) ([]employee.Employee, error) {
	if !gjson.ValidBytes(body) {
		return nil, ErrMalformedList
	}
	list := gjson.ParseBytes(body)
	if !list.IsArray() {
		return nil, errors.Wrap(ErrMalformedList, "expected a JSON array")
	}

	items := list.Array()
	entities := make([]employee.Employee, 0, len(items))
	for i, item := range items {
		if !item.IsObject() {
			return nil, errors.Wrapf(ErrMalformedList, "item %d is not an object", i)
		}
		fields := item.Map()
		id, ok := identifier(fields[idField])
		if !ok {
			return nil, errors.Wrap(ErrMissingID, fmt.Sprintf("item %d has no %q", i, idField))
		}
		entities = append(entities, employee.Hydrate(
			id,
			fields["firstName"].String(),
			fields["lastName"].String(),
			fields["city"].String(),
		))
	}
	return entities, nil
}

func identifier(v gjson.Result) (string, bool) {
	switch v.Type {
	case gjson.String:
		return v.Str, v.Str != ""
	case gjson.Number:
		return v.Raw, true
	default:
		return "", false
	}
}
