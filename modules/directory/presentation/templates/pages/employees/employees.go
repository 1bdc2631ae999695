package employees

import (
	"embed"
	"html/template"

	"github.com/a-h/templ"

	"github.com/iota-uz/employee-directory/modules/directory/presentation/viewmodels"
)

//go:embed *.html
var files embed.FS

var pages = template.Must(template.ParseFS(files, "*.html"))

type IndexPageProps struct {
	// T localizes a message id.
	T          func(messageID string) string
	Locale     string
	Employees  []*viewmodels.Employee
	Form       *viewmodels.Form
	Notice     *viewmodels.Notice
	LoadFailed bool
	SubmitURL  string
	CancelURL  string
	ExportURL  string
	// RefreshURL re-fetches the table fragment.
	RefreshURL string
}

func Index(props *IndexPageProps) templ.Component {
	return templ.FromGoHTML(pages.Lookup("index"), props)
}

// EmployeesTable renders only the table, for htmx refreshes.
func EmployeesTable(props *IndexPageProps) templ.Component {
	return templ.FromGoHTML(pages.Lookup("table"), props)
}
