package itf

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"sync"
	"testing"

	"github.com/gorilla/mux"

	"github.com/iota-uz/employee-directory/pkg/httpapi"
)

const (
	OpList   = "list"
	OpCreate = "create"
	OpUpdate = "update"
	OpDelete = "delete"
)

// EmployeeRecord is a row stored by EmployeeAPI.
type EmployeeRecord struct {
	ID        string
	FirstName string
	LastName  string
	City      string
}

type RecordedRequest struct {
	Method string
	Path   string
}

type writeBody struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	City      string `json:"city"`
}

// EmployeeAPI is an in-memory implementation of the employee REST backend.
// It serves GET /api/employees and POST/PUT/DELETE /api/employee[/{id}].
type EmployeeAPI struct {
	mu         sync.Mutex
	idField    string
	numericIDs bool
	nextID     int
	records    []EmployeeRecord
	faults     map[string]int
	requests   []RecordedRequest
	router     *mux.Router
}

type APIOption func(*EmployeeAPI)

// WithIDField sets the JSON key carrying the identifier. Defaults to "_id".
func WithIDField(name string) APIOption {
	return func(a *EmployeeAPI) {
		a.idField = name
	}
}

// WithNumericIDs makes the API emit identifiers as JSON numbers.
func WithNumericIDs() APIOption {
	return func(a *EmployeeAPI) {
		a.numericIDs = true
	}
}

func WithEmployees(records ...EmployeeRecord) APIOption {
	return func(a *EmployeeAPI) {
		a.records = append(a.records, records...)
	}
}

func NewEmployeeAPI(opts ...APIOption) *EmployeeAPI {
	a := &EmployeeAPI{
		idField: "_id",
		nextID:  1000,
		faults:  make(map[string]int),
	}
	for _, opt := range opts {
		opt(a)
	}

	r := mux.NewRouter().UseEncodedPath()
	r.HandleFunc("/api/employees", a.list).Methods(http.MethodGet)
	r.HandleFunc("/api/employee", a.create).Methods(http.MethodPost)
	r.HandleFunc("/api/employee/{id}", a.update).Methods(http.MethodPut)
	r.HandleFunc("/api/employee/{id}", a.delete).Methods(http.MethodDelete)
	a.router = r
	return a
}

func (a *EmployeeAPI) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	a.mu.Lock()
	a.requests = append(a.requests, RecordedRequest{Method: r.Method, Path: r.URL.EscapedPath()})
	a.mu.Unlock()
	a.router.ServeHTTP(w, r)
}

// Start serves the API on a loopback listener for the lifetime of the test and returns its base URL.
func (a *EmployeeAPI) Start(tb testing.TB) string {
	tb.Helper()
	srv := httptest.NewServer(a)
	tb.Cleanup(srv.Close)
	return srv.URL
}

// Fail makes every call of op answer with status until Recover is called.
func (a *EmployeeAPI) Fail(op string, status int) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.faults[op] = status
}

func (a *EmployeeAPI) Recover(op string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	delete(a.faults, op)
}

func (a *EmployeeAPI) Records() []EmployeeRecord {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([]EmployeeRecord, len(a.records))
	copy(out, a.records)
	return out
}

func (a *EmployeeAPI) Requests() []RecordedRequest {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([]RecordedRequest, len(a.requests))
	copy(out, a.requests)
	return out
}

func (a *EmployeeAPI) ResetRequests() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.requests = nil
}

func (a *EmployeeAPI) fault(w http.ResponseWriter, op string) bool {
	status, ok := a.faults[op]
	if !ok {
		return false
	}
	_ = httpapi.WriteError(w, status, "INJECTED_FAULT", op+" unavailable", nil)
	return true
}

func (a *EmployeeAPI) encode(rec EmployeeRecord) map[string]any {
	var id any = rec.ID
	if a.numericIDs {
		if n, err := strconv.Atoi(rec.ID); err == nil {
			id = n
		}
	}
	return map[string]any{
		a.idField:   id,
		"firstName": rec.FirstName,
		"lastName":  rec.LastName,
		"city":      rec.City,
	}
}

func (a *EmployeeAPI) indexOf(id string) int {
	for i, rec := range a.records {
		if rec.ID == id {
			return i
		}
	}
	return -1
}

func pathID(r *http.Request) string {
	raw := mux.Vars(r)["id"]
	id, err := url.PathUnescape(raw)
	if err != nil {
		return raw
	}
	return id
}

func decodeBody(w http.ResponseWriter, r *http.Request) (writeBody, bool) {
	var body writeBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		_ = httpapi.WriteError(w, http.StatusBadRequest, "INVALID_JSON", err.Error(), nil)
		return body, false
	}
	missing := map[string]string{}
	if body.FirstName == "" {
		missing["firstName"] = "required"
	}
	if body.LastName == "" {
		missing["lastName"] = "required"
	}
	if body.City == "" {
		missing["city"] = "required"
	}
	if len(missing) > 0 {
		_ = httpapi.WriteError(w, http.StatusUnprocessableEntity, "VALIDATION_FAILED", "missing fields", missing)
		return body, false
	}
	return body, true
}

func (a *EmployeeAPI) list(w http.ResponseWriter, r *http.Request) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.fault(w, OpList) {
		return
	}
	out := make([]map[string]any, 0, len(a.records))
	for _, rec := range a.records {
		out = append(out, a.encode(rec))
	}
	_ = httpapi.WriteJSON(w, http.StatusOK, out)
}

func (a *EmployeeAPI) create(w http.ResponseWriter, r *http.Request) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.fault(w, OpCreate) {
		return
	}
	body, ok := decodeBody(w, r)
	if !ok {
		return
	}
	a.nextID++
	rec := EmployeeRecord{
		ID:        strconv.Itoa(a.nextID),
		FirstName: body.FirstName,
		LastName:  body.LastName,
		City:      body.City,
	}
	a.records = append(a.records, rec)
	_ = httpapi.WriteJSON(w, http.StatusCreated, a.encode(rec))
}

func (a *EmployeeAPI) update(w http.ResponseWriter, r *http.Request) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.fault(w, OpUpdate) {
		return
	}
	id := pathID(r)
	i := a.indexOf(id)
	if i < 0 {
		_ = httpapi.WriteError(w, http.StatusNotFound, "NOT_FOUND", "employee not found", map[string]string{"id": id})
		return
	}
	body, ok := decodeBody(w, r)
	if !ok {
		return
	}
	a.records[i] = EmployeeRecord{
		ID:        id,
		FirstName: body.FirstName,
		LastName:  body.LastName,
		City:      body.City,
	}
	_ = httpapi.WriteJSON(w, http.StatusOK, a.encode(a.records[i]))
}

func (a *EmployeeAPI) delete(w http.ResponseWriter, r *http.Request) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.fault(w, OpDelete) {
		return
	}
	id := pathID(r)
	i := a.indexOf(id)
	if i < 0 {
		_ = httpapi.WriteError(w, http.StatusNotFound, "NOT_FOUND", "employee not found", map[string]string{"id": id})
		return
	}
	a.records = append(a.records[:i], a.records[i+1:]...)
	w.WriteHeader(http.StatusNoContent)
}
