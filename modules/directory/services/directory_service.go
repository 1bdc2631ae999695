package services

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/iota-uz/employee-directory/modules/directory/domain/aggregates/employee"
	"github.com/iota-uz/employee-directory/modules/directory/domain/entities/editor"
	"github.com/iota-uz/employee-directory/modules/directory/domain/entities/roster"
	"github.com/iota-uz/employee-directory/pkg/composables"
	"github.com/iota-uz/employee-directory/pkg/constants"
)

// DirectoryService keeps the client in sync with the server: every successful
// write is followed by a full list read, and nothing is cached between reads.
type DirectoryService struct {
	employees *EmployeeService
	logger    *logrus.Logger
}

func NewDirectoryService(employees *EmployeeService, logger *logrus.Logger) *DirectoryService {
	return &DirectoryService{
		employees: employees,
		logger:    logger,
	}
}

// log returns the request logger when present, tagged with the caller's ip and user agent.
func (s *DirectoryService) log(ctx context.Context) *logrus.Entry {
	entry, ok := ctx.Value(constants.LoggerKey).(*logrus.Entry)
	if !ok {
		entry = logrus.NewEntry(s.logger)
	}
	if ip, ok := composables.UseIP(ctx); ok {
		entry = entry.WithField("ip", ip)
	}
	if ua, ok := composables.UseUserAgent(ctx); ok {
		entry = entry.WithField("user-agent", ua)
	}
	return entry
}

// Load reads the list. It never fails: errors are logged and returned as a LoadFailed snapshot.
func (s *DirectoryService) Load(ctx context.Context) roster.Snapshot {
	items, err := s.employees.List(ctx)
	if err != nil {
		s.log(ctx).WithError(err).Error("failed to load employees")
		return roster.LoadFailed(err)
	}
	return roster.Loaded(items)
}

// Save submits the form according to its mode and, on success, returns a fresh snapshot.
// On failure nothing is re-read and the caller keeps its state.
func (s *DirectoryService) Save(ctx context.Context, form editor.Form) (roster.Snapshot, error) {
	if !form.CanSubmit() {
		return roster.Snapshot{}, employee.ErrFormIncomplete
	}

	var err error
	switch mode := form.Mode().(type) {
	case editor.Editing:
		err = s.employees.Update(ctx, mode.ID, form.Fields())
	default:
		err = s.employees.Create(ctx, form.Fields())
	}
	if err != nil {
		s.log(ctx).WithError(err).Warn("failed to save employee")
		return roster.Snapshot{}, err
	}
	return s.Load(ctx), nil
}

// Remove deletes the employee and, on success, returns a fresh snapshot.
func (s *DirectoryService) Remove(ctx context.Context, id string) (roster.Snapshot, error) {
	if err := s.employees.Delete(ctx, id); err != nil {
		s.log(ctx).WithError(err).WithField("id", id).Warn("failed to delete employee")
		return roster.Snapshot{}, err
	}
	return s.Load(ctx), nil
}
