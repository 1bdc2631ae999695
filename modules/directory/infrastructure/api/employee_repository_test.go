package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-faster/errors"
	"github.com/stretchr/testify/require"

	"github.com/iota-uz/employee-directory/modules/directory/domain/aggregates/employee"
	"github.com/iota-uz/employee-directory/pkg/itf"
)

func newRepository(t *testing.T, api *itf.EmployeeAPI, idField string) employee.Repository {
	t.Helper()
	client, err := NewClient(Options{
		BaseURL:         api.Start(t),
		IDField:         idField,
		RequestIDHeader: "X-Request-ID",
	})
	require.NoError(t, err)
	return NewEmployeeRepository(client)
}

func TestEmployeeRepository_GetAll(t *testing.T) {
	api := itf.NewEmployeeAPI(itf.WithEmployees(itf.SampleEmployees()...))
	repo := newRepository(t, api, "_id")

	list, err := repo.GetAll(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 2)
	require.Equal(t, "42", list[0].ID())
	require.Equal(t, "Grace", list[0].FirstName())
	require.Equal(t, "Hopper", list[0].LastName())
	require.Equal(t, "Arlington", list[0].City())
	require.Equal(t, "43", list[1].ID())
}

func TestEmployeeRepository_GetAll_NumericIDs(t *testing.T) {
	api := itf.NewEmployeeAPI(
		itf.WithIDField("id"),
		itf.WithNumericIDs(),
		itf.WithEmployees(itf.SampleEmployees()...),
	)
	repo := newRepository(t, api, "id")

	list, err := repo.GetAll(context.Background())
	require.NoError(t, err)
	require.Equal(t, "42", list[0].ID())
}

func TestEmployeeRepository_Create(t *testing.T) {
	api := itf.NewEmployeeAPI()
	repo := newRepository(t, api, "_id")

	err := repo.Create(context.Background(), employee.Fields{FirstName: "Ada", LastName: "Lovelace", City: "London"})
	require.NoError(t, err)

	records := api.Records()
	require.Len(t, records, 1)
	require.Equal(t, "Ada", records[0].FirstName)
	require.Equal(t, []itf.RecordedRequest{{Method: http.MethodPost, Path: "/api/employee"}}, api.Requests())
}

func TestEmployeeRepository_Update(t *testing.T) {
	api := itf.NewEmployeeAPI(itf.WithEmployees(itf.SampleEmployees()...))
	repo := newRepository(t, api, "_id")

	err := repo.Update(context.Background(), "42", employee.Fields{FirstName: "Grace", LastName: "Hopper", City: "Paris"})
	require.NoError(t, err)
	require.Equal(t, "Paris", api.Records()[0].City)
	require.Equal(t, []itf.RecordedRequest{{Method: http.MethodPut, Path: "/api/employee/42"}}, api.Requests())
}

func TestEmployeeRepository_Delete_EscapesID(t *testing.T) {
	api := itf.NewEmployeeAPI(itf.WithEmployees(itf.EmployeeRecord{ID: "a b/c", FirstName: "A", LastName: "B", City: "C"}))
	repo := newRepository(t, api, "_id")

	require.NoError(t, repo.Delete(context.Background(), "a b/c"))
	require.Empty(t, api.Records())
	require.Equal(t, "/api/employee/a%20b%2Fc", api.Requests()[0].Path)
}

func TestEmployeeRepository_NonSuccessStatus(t *testing.T) {
	api := itf.NewEmployeeAPI(itf.WithEmployees(itf.SampleEmployees()...))
	repo := newRepository(t, api, "_id")
	api.Fail(itf.OpDelete, http.StatusInternalServerError)

	err := repo.Delete(context.Background(), "42")
	require.Error(t, err)

	var statusErr *StatusError
	require.True(t, errors.As(err, &statusErr))
	require.Equal(t, http.StatusInternalServerError, statusErr.Status)
	require.NotNil(t, statusErr.Envelope)
	require.Equal(t, "INJECTED_FAULT", statusErr.Envelope.Code)
	require.Len(t, api.Records(), 2)
}

func TestEmployeeRepository_AnySuccessStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusAccepted)
		_, _ = w.Write([]byte("queued"))
	}))
	t.Cleanup(srv.Close)

	client, err := NewClient(Options{BaseURL: srv.URL})
	require.NoError(t, err)
	repo := NewEmployeeRepository(client)

	require.NoError(t, repo.Create(context.Background(), employee.Fields{FirstName: "A", LastName: "B", City: "C"}))
}

func TestEmployeeRepository_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	t.Cleanup(srv.Close)

	client, err := NewClient(Options{BaseURL: srv.URL, Timeout: 20 * time.Millisecond})
	require.NoError(t, err)

	_, err = NewEmployeeRepository(client).GetAll(context.Background())
	require.Error(t, err)
}

func TestDecodeEmployees(t *testing.T) {
	cases := []struct {
		name    string
		body    string
		wantErr error
		wantIDs []string
	}{
		{name: "empty array", body: `[]`, wantIDs: []string{}},
		{name: "string ids", body: `[{"_id":"a","firstName":"A","lastName":"B","city":"C"}]`, wantIDs: []string{"a"}},
		{name: "number ids", body: `[{"_id":7,"firstName":"A","lastName":"B","city":"C"}]`, wantIDs: []string{"7"}},
		{name: "not json", body: `<html>`, wantErr: ErrMalformedList},
		{name: "object", body: `{"items":[]}`, wantErr: ErrMalformedList},
		{name: "non object item", body: `[1]`, wantErr: ErrMalformedList},
		{name: "missing id", body: `[{"firstName":"A"}]`, wantErr: ErrMissingID},
		{name: "null id", body: `[{"_id":null}]`, wantErr: ErrMissingID},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := decodeEmployees([]byte(tc.body), "_id")
			if tc.wantErr != nil {
				require.ErrorIs(t, err, tc.wantErr)
				return
			}
			require.NoError(t, err)
			ids := make([]string, 0, len(got))
			for _, e := range got {
				ids = append(ids, e.ID())
			}
			require.Equal(t, tc.wantIDs, ids)
		})
	}
}

func TestNewClient_RejectsRelativeURL(t *testing.T) {
	_, err := NewClient(Options{BaseURL: "/api"})
	require.Error(t, err)
}

func TestClient_Endpoint(t *testing.T) {
	client, err := NewClient(Options{BaseURL: "http://hr.example.com/base/"})
	require.NoError(t, err)
	require.Equal(t, "http://hr.example.com/base/api/employee/x%2Fy", client.endpoint("api", "employee", "x/y"))
	require.Equal(t, "_id", client.IDField())
}
