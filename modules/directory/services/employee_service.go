package services

import (
	"context"

	"github.com/iota-uz/employee-directory/modules/directory/domain/aggregates/employee"
	"github.com/iota-uz/employee-directory/pkg/eventbus"
	"github.com/iota-uz/employee-directory/pkg/serrors"
)

type EmployeeService struct {
	repo      employee.Repository
	publisher eventbus.EventBus
}

func NewEmployeeService(repo employee.Repository, publisher eventbus.EventBus) *EmployeeService {
	return &EmployeeService{
		repo:      repo,
		publisher: publisher,
	}
}

func (s *EmployeeService) List(ctx context.Context) ([]employee.Employee, error) {
	items, err := s.repo.GetAll(ctx)
	if err != nil {
		return nil, serrors.Wrap(employee.ErrFetchFailed, err)
	}
	return items, nil
}

func (s *EmployeeService) Create(ctx context.Context, data employee.Fields) error {
	if !data.Complete() {
		return employee.ErrFormIncomplete
	}
	if err := s.repo.Create(ctx, data); err != nil {
		return serrors.Wrap(employee.ErrCreateFailed, err)
	}
	s.publisher.Publish(employee.CreatedEvent{Data: data})
	return nil
}

func (s *EmployeeService) Update(ctx context.Context, id string, data employee.Fields) error {
	if !data.Complete() {
		return employee.ErrFormIncomplete
	}
	if err := s.repo.Update(ctx, id, data); err != nil {
		return serrors.Wrap(employee.ErrUpdateFailed, err)
	}
	s.publisher.Publish(employee.UpdatedEvent{ID: id, Data: data})
	return nil
}

func (s *EmployeeService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return serrors.Wrap(employee.ErrDeleteFailed, err)
	}
	s.publisher.Publish(employee.DeletedEvent{ID: id})
	return nil
}
