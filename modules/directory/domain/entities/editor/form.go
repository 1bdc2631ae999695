// Package editor implements the employee form and its edit-mode state machine.
package editor

import (
	"github.com/iota-uz/employee-directory/modules/directory/domain/aggregates/employee"
)

// Mode is either Creating or Editing.
type Mode interface {
	isMode()
}

type Creating struct{}

type Editing struct {
	ID string
}

func (Creating) isMode() {}
func (Editing) isMode()  {}

// Form is the Form State. The zero value is not usable; call New.
type Form struct {
	fields employee.Fields
	mode   Mode
}

func New() *Form {
	return &Form{mode: Creating{}}
}

// Restore rebuilds a form from submitted values. An empty editingID means Creating.
func Restore(fields employee.Fields, editingID string) *Form {
	f := &Form{fields: fields, mode: Creating{}}
	if editingID != "" {
		f.mode = Editing{ID: editingID}
	}
	return f
}

func (f *Form) Fields() employee.Fields { return f.fields }
func (f *Form) Mode() Mode              { return f.mode }

func (f *Form) SetFirstName(v string) { f.fields.FirstName = v }
func (f *Form) SetLastName(v string)  { f.fields.LastName = v }
func (f *Form) SetCity(v string)      { f.fields.City = v }

// EditingID returns the target id while Editing.
func (f *Form) EditingID() (string, bool) {
	if e, ok := f.mode.(Editing); ok {
		return e.ID, true
	}
	return "", false
}

func (f *Form) IsEditing() bool {
	_, ok := f.mode.(Editing)
	return ok
}

// CanSubmit is true iff all three fields are non-empty.
func (f *Form) CanSubmit() bool {
	return f.fields.Complete()
}

// BeginEdit copies e's fields into the form and targets e's id.
func (f *Form) BeginEdit(e employee.Employee) {
	f.fields = e.Fields()
	f.mode = Editing{ID: e.ID()}
}

// Cancel leaves Editing and clears the fields. It does nothing while Creating.
func (f *Form) Cancel() bool {
	if !f.IsEditing() {
		return false
	}
	f.reset()
	return true
}

// SubmitSucceeded resets the form after a successful create or update.
func (f *Form) SubmitSucceeded() {
	f.reset()
}

func (f *Form) reset() {
	f.fields = employee.Fields{}
	f.mode = Creating{}
}
