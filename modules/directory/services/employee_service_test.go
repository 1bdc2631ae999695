package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/iota-uz/employee-directory/modules/directory/domain/aggregates/employee"
	"github.com/iota-uz/employee-directory/pkg/eventbus"
)

type mockEmployeeRepo struct {
	err    error
	called bool
}

func (m *mockEmployeeRepo) mark() error {
	m.called = true
	return m.err
}
func (m *mockEmployeeRepo) GetAll(ctx context.Context) ([]employee.Employee, error) {
	return nil, m.mark()
}
func (m *mockEmployeeRepo) Create(ctx context.Context, data employee.Fields) error {
	return m.mark()
}
func (m *mockEmployeeRepo) Update(ctx context.Context, id string, data employee.Fields) error {
	return m.mark()
}
func (m *mockEmployeeRepo) Delete(ctx context.Context, id string) error {
	return m.mark()
}

var ada = employee.Fields{FirstName: "Ada", LastName: "Lovelace", City: "London"}

func TestEmployeeService_PublishesOnSuccess(t *testing.T) {
	bus := eventbus.NewEventPublisher(nil)
	svc := NewEmployeeService(&mockEmployeeRepo{}, bus)

	var created []employee.CreatedEvent
	var updated []employee.UpdatedEvent
	var deleted []employee.DeletedEvent
	bus.Subscribe(func(e employee.CreatedEvent) { created = append(created, e) })
	bus.Subscribe(func(e employee.UpdatedEvent) { updated = append(updated, e) })
	bus.Subscribe(func(e employee.DeletedEvent) { deleted = append(deleted, e) })

	ctx := context.Background()
	require.NoError(t, svc.Create(ctx, ada))
	require.NoError(t, svc.Update(ctx, "42", ada))
	require.NoError(t, svc.Delete(ctx, "42"))

	require.Equal(t, []employee.CreatedEvent{{Data: ada}}, created)
	require.Equal(t, []employee.UpdatedEvent{{ID: "42", Data: ada}}, updated)
	require.Equal(t, []employee.DeletedEvent{{ID: "42"}}, deleted)
}

func TestEmployeeService_TagsFailures(t *testing.T) {
	cause := errors.New("boom")
	repo := &mockEmployeeRepo{err: cause}
	bus := eventbus.NewEventPublisher(nil)
	svc := NewEmployeeService(repo, bus)

	published := 0
	bus.Subscribe(func(e employee.CreatedEvent) { published++ })

	ctx := context.Background()
	_, err := svc.List(ctx)
	require.ErrorIs(t, err, employee.ErrFetchFailed)
	require.ErrorIs(t, err, cause)

	require.ErrorIs(t, svc.Create(ctx, ada), employee.ErrCreateFailed)
	require.ErrorIs(t, svc.Update(ctx, "42", ada), employee.ErrUpdateFailed)
	require.ErrorIs(t, svc.Delete(ctx, "42"), employee.ErrDeleteFailed)
	require.Zero(t, published)
}

func TestEmployeeService_RejectsIncompleteFields(t *testing.T) {
	repo := &mockEmployeeRepo{}
	svc := NewEmployeeService(repo, eventbus.NewEventPublisher(nil))

	err := svc.Create(context.Background(), employee.Fields{FirstName: "Ada"})
	require.ErrorIs(t, err, employee.ErrFormIncomplete)
	err = svc.Update(context.Background(), "42", employee.Fields{City: "Paris"})
	require.ErrorIs(t, err, employee.ErrFormIncomplete)
	require.False(t, repo.called)
}
