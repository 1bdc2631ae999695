package controllers

import (
	"fmt"
	"net/http"
	"net/url"

	"github.com/a-h/templ"
	"github.com/go-faster/errors"
	"github.com/gorilla/mux"

	"github.com/iota-uz/employee-directory/modules/directory/domain/aggregates/employee"
	"github.com/iota-uz/employee-directory/modules/directory/domain/entities/editor"
	"github.com/iota-uz/employee-directory/modules/directory/domain/entities/roster"
	"github.com/iota-uz/employee-directory/modules/directory/presentation/mappers"
	"github.com/iota-uz/employee-directory/modules/directory/presentation/templates/pages/employees"
	"github.com/iota-uz/employee-directory/modules/directory/presentation/viewmodels"
	"github.com/iota-uz/employee-directory/modules/directory/services"
	"github.com/iota-uz/employee-directory/pkg/application"
	"github.com/iota-uz/employee-directory/pkg/composables"
	"github.com/iota-uz/employee-directory/pkg/constants"
	"github.com/iota-uz/employee-directory/pkg/intl"
	"github.com/iota-uz/employee-directory/pkg/mapping"
	"github.com/iota-uz/employee-directory/pkg/serrors"
	"github.com/iota-uz/employee-directory/pkg/shared"
)

// IndexQuery is the page's query string. Edit names the row loaded into the form.
type IndexQuery struct {
	Edit string `form:"edit"`
}

type DirectoryControllerOptions struct {
	ShowLoadErrors bool
	ExportFileName string
}

type DirectoryController struct {
	app       application.Application
	directory *services.DirectoryService
	exports   *services.ExportService
	opts      DirectoryControllerOptions
	basePath  string
}

func NewDirectoryController(app application.Application, opts DirectoryControllerOptions) application.Controller {
	return &DirectoryController{
		app:       app,
		directory: app.Service(services.DirectoryService{}).(*services.DirectoryService),
		exports:   app.Service(services.ExportService{}).(*services.ExportService),
		opts:      opts,
		basePath:  "/",
	}
}

func (c *DirectoryController) Key() string {
	return c.basePath
}

func (c *DirectoryController) Register(r *mux.Router) {
	r.HandleFunc("/", c.Index).Methods(http.MethodGet)
	r.HandleFunc("/export", c.Export).Methods(http.MethodGet)
	r.HandleFunc("/employees", c.Submit).Methods(http.MethodPost)
	r.HandleFunc("/employees/{id:.+}/delete", c.Delete).Methods(http.MethodPost)
}

func (c *DirectoryController) Index(w http.ResponseWriter, r *http.Request) {
	query, err := composables.UseQuery(&IndexQuery{}, r)
	if err != nil {
		http.Error(w, fmt.Sprintf("%+v", err), http.StatusBadRequest)
		return
	}

	session := services.NewSession()
	session.Refresh(r.Context(), c.directory)
	if query.Edit != "" {
		session.BeginEdit(query.Edit)
	}

	props := c.pageProps(r, session, nil, c.flashNotice(w, r))
	if len(r.Header.Get("Hx-Request")) > 0 {
		templ.Handler(employees.EmployeesTable(props)).ServeHTTP(w, r)
		return
	}
	templ.Handler(employees.Index(props)).ServeHTTP(w, r)
}

func (c *DirectoryController) Submit(w http.ResponseWriter, r *http.Request) {
	dto, err := composables.UseForm(&employee.FormDTO{}, r)
	if err != nil {
		http.Error(w, fmt.Sprintf("%+v", err), http.StatusBadRequest)
		return
	}

	session := services.NewSession()
	session.Form = editor.Restore(dto.Fields(), dto.EditingID)

	if errorsMap, ok := dto.Ok(r.Context()); !ok {
		session.Refresh(r.Context(), c.directory)
		c.render(w, r, http.StatusUnprocessableEntity, c.pageProps(r, session, errorsMap, nil))
		return
	}

	editing := session.Form.IsEditing()
	if err := session.Submit(r.Context(), c.directory); err != nil {
		session.Refresh(r.Context(), c.directory)
		c.render(w, r, http.StatusBadGateway, c.pageProps(r, session, nil, c.errorNotice(r, err)))
		return
	}

	notice := "Employees.Notices.Created"
	if editing {
		notice = "Employees.Notices.Updated"
	}
	composables.SetFlash(w, constants.FlashNoticeKey, []byte(notice))
	shared.Redirect(w, r, c.basePath)
}

func (c *DirectoryController) Delete(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	session := services.NewSession()
	if err := session.Remove(r.Context(), c.directory, id); err != nil {
		session.Refresh(r.Context(), c.directory)
		c.render(w, r, http.StatusBadGateway, c.pageProps(r, session, nil, c.errorNotice(r, err)))
		return
	}
	composables.SetFlash(w, constants.FlashNoticeKey, []byte("Employees.Notices.Deleted"))
	shared.Redirect(w, r, c.basePath)
}

func (c *DirectoryController) Export(w http.ResponseWriter, r *http.Request) {
	items := c.directory.Load(r.Context()).Items()
	download, err := c.exports.Export(r.Context(), items, c.opts.ExportFileName)
	if err != nil {
		c.app.Logger().WithError(err).Error("failed to export employees")
		http.Error(w, errors.Wrap(err, "Error exporting employees").Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", download.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", download.FileName))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(download.Data)
}

func (c *DirectoryController) render(w http.ResponseWriter, r *http.Request, status int, props *employees.IndexPageProps) {
	templ.Handler(employees.Index(props), templ.WithStatus(status)).ServeHTTP(w, r)
}

func (c *DirectoryController) pageProps(
	r *http.Request,
	session *services.Session,
	fieldErrors map[string]string,
	notice *viewmodels.Notice,
) *employees.IndexPageProps {
	l, _ := intl.UseLocalizer(r.Context())
	snap := session.Roster.Snapshot()
	locale := intl.UseLocale(r.Context()).String()
	return &employees.IndexPageProps{
		T:          func(id string) string { return intl.T(l, id) },
		Locale:     locale,
		Employees:  mapping.MapViewModels(snap.Items(), mappers.EmployeeToViewModel),
		Form:       mappers.FormToViewModel(session.Form, fieldErrors),
		Notice:     notice,
		LoadFailed: c.opts.ShowLoadErrors && snap.Status() == roster.StatusLoadFailed,
		SubmitURL:  "/employees",
		CancelURL:  c.basePath,
		ExportURL:  "/export",
		RefreshURL: c.basePath + "?" + url.Values{"lang": {locale}}.Encode(),
	}
}

func (c *DirectoryController) flashNotice(w http.ResponseWriter, r *http.Request) *viewmodels.Notice {
	msg, err := composables.UseFlash(w, r, constants.FlashNoticeKey)
	if err != nil || len(msg) == 0 {
		return nil
	}
	l, _ := intl.UseLocalizer(r.Context())
	return &viewmodels.Notice{
		Kind:    viewmodels.NoticeSuccess,
		Message: intl.T(l, string(msg)),
	}
}

// errorNotice reports a failed write. Validation and transport failures read the same.
func (c *DirectoryController) errorNotice(r *http.Request, err error) *viewmodels.Notice {
	l, _ := intl.UseLocalizer(r.Context())
	message := intl.T(l, "Employees.Notices.Error")
	if base, ok := serrors.AsBase(err); ok {
		message = message + ": " + base.Localize(l)
	}
	return &viewmodels.Notice{
		Kind:    viewmodels.NoticeError,
		Message: message,
	}
}
