// Package roster holds the last-known server snapshot of the employee list.
package roster

import (
	"github.com/iota-uz/employee-directory/modules/directory/domain/aggregates/employee"
)

type Status int

const (
	StatusEmpty Status = iota
	StatusLoaded
	StatusLoadFailed
)

func (s Status) String() string {
	switch s {
	case StatusLoaded:
		return "loaded"
	case StatusLoadFailed:
		return "load_failed"
	default:
		return "empty"
	}
}

// Snapshot is the result of one list read: Loaded(items), Empty, or LoadFailed(reason).
// Items is always safe to render; a failed load has no items.
type Snapshot struct {
	status Status
	items  []employee.Employee
	reason error
}

// Loaded wraps a successful read. A zero-length read is Empty.
func Loaded(items []employee.Employee) Snapshot {
	if len(items) == 0 {
		return Empty()
	}
	copied := make([]employee.Employee, len(items))
	copy(copied, items)
	return Snapshot{status: StatusLoaded, items: copied}
}

func Empty() Snapshot {
	return Snapshot{status: StatusEmpty}
}

func LoadFailed(reason error) Snapshot {
	return Snapshot{status: StatusLoadFailed, reason: reason}
}

func (s Snapshot) Status() Status { return s.status }
func (s Snapshot) Reason() error  { return s.reason }
func (s Snapshot) Len() int       { return len(s.items) }

// Items returns the employees in server order.
func (s Snapshot) Items() []employee.Employee {
	out := make([]employee.Employee, len(s.items))
	copy(out, s.items)
	return out
}

func (s Snapshot) Find(id string) (employee.Employee, bool) {
	for _, e := range s.items {
		if e.ID() == id {
			return e, true
		}
	}
	return employee.Employee{}, false
}

// Roster is the Employee List State. It is replaced wholesale, never merged.
type Roster struct {
	snapshot Snapshot
}

func New() *Roster {
	return &Roster{snapshot: Empty()}
}

func (r *Roster) Replace(s Snapshot) {
	r.snapshot = s
}

func (r *Roster) Snapshot() Snapshot {
	return r.snapshot
}

// Current returns the list to render. A failed load renders as empty.
func (r *Roster) Current() []employee.Employee {
	return r.snapshot.Items()
}
