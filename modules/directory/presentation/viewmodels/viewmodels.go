package viewmodels

type Employee struct {
	ID        string
	FirstName string
	LastName  string
	City      string
	EditURL   string
	DeleteURL string
}

// Form is the employee form as rendered. EditingID is empty while creating.
type Form struct {
	FirstName string
	LastName  string
	City      string
	EditingID string
	Editing   bool
	CanSubmit bool
	Errors    map[string]string
}

const (
	NoticeSuccess = "success"
	NoticeError   = "error"
)

// Notice is a blocking message shown once after an action.
type Notice struct {
	Kind    string
	Message string
}

func (n *Notice) IsError() bool {
	return n != nil && n.Kind == NoticeError
}
