package services

import (
	"context"

	"github.com/iota-uz/employee-directory/modules/directory/domain/entities/editor"
	"github.com/iota-uz/employee-directory/modules/directory/domain/entities/roster"
)

// Session is the client state owned by one view: the employee list and the form.
// It is not safe for concurrent use; results of background calls are applied
// by the owner through the Apply methods.
type Session struct {
	Roster *roster.Roster
	Form   *editor.Form
}

func NewSession() *Session {
	return &Session{
		Roster: roster.New(),
		Form:   editor.New(),
	}
}

func (s *Session) ApplyLoad(snap roster.Snapshot) {
	s.Roster.Replace(snap)
}

// ApplySaved resets the form and installs the re-read list.
func (s *Session) ApplySaved(snap roster.Snapshot) {
	s.Form.SubmitSucceeded()
	s.Roster.Replace(snap)
}

func (s *Session) ApplyRemoved(snap roster.Snapshot) {
	s.Roster.Replace(snap)
}

// BeginEdit starts editing the listed employee with the given id.
func (s *Session) BeginEdit(id string) bool {
	e, ok := s.Roster.Snapshot().Find(id)
	if !ok {
		return false
	}
	s.Form.BeginEdit(e)
	return true
}

// Refresh loads the list synchronously.
func (s *Session) Refresh(ctx context.Context, svc *DirectoryService) {
	s.ApplyLoad(svc.Load(ctx))
}

// Submit saves the form synchronously. On failure the session is left untouched.
func (s *Session) Submit(ctx context.Context, svc *DirectoryService) error {
	snap, err := svc.Save(ctx, *s.Form)
	if err != nil {
		return err
	}
	s.ApplySaved(snap)
	return nil
}

// Remove deletes synchronously. On failure the session is left untouched.
func (s *Session) Remove(ctx context.Context, svc *DirectoryService, id string) error {
	snap, err := svc.Remove(ctx, id)
	if err != nil {
		return err
	}
	s.ApplyRemoved(snap)
	return nil
}
