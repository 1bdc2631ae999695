package employee

// Employee is a server-owned record. The id is whatever the API assigned;
// the client only echoes it back.
type Employee struct {
	id        string
	firstName string
	lastName  string
	city      string
}

// Hydrate builds an Employee from data returned by the API.
func Hydrate(id, firstName, lastName, city string) Employee {
	return Employee{
		id:        id,
		firstName: firstName,
		lastName:  lastName,
		city:      city,
	}
}

func (e Employee) ID() string        { return e.id }
func (e Employee) FirstName() string { return e.firstName }
func (e Employee) LastName() string  { return e.lastName }
func (e Employee) City() string      { return e.city }

func (e Employee) Fields() Fields {
	return Fields{
		FirstName: e.firstName,
		LastName:  e.lastName,
		City:      e.city,
	}
}

// Fields is the editable part of an Employee and the body of create/update requests.
type Fields struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	City      string `json:"city"`
}

// Complete reports whether every field is non-empty.
func (f Fields) Complete() bool {
	return f.FirstName != "" && f.LastName != "" && f.City != ""
}
