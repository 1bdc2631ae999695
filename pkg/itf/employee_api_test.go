package itf

import (
	"bytes"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
)

func do(t *testing.T, method, url string, body any) *http.Response {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, url, &buf)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })
	return resp
}

func TestEmployeeAPI_CRUD(t *testing.T) {
	api := NewEmployeeAPI(WithEmployees(SampleEmployees()...))
	base := api.Start(t)

	resp := do(t, http.MethodPost, base+"/api/employee", map[string]string{
		"firstName": "Ada", "lastName": "Lovelace", "city": "London",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	require.Len(t, api.Records(), 3)

	resp = do(t, http.MethodPut, base+"/api/employee/42", map[string]string{
		"firstName": "Grace", "lastName": "Hopper", "city": "Paris",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "Paris", api.Records()[0].City)

	resp = do(t, http.MethodDelete, base+"/api/employee/42", nil)
	require.Equal(t, http.StatusNoContent, resp.StatusCode)
	require.Len(t, api.Records(), 2)

	resp = do(t, http.MethodGet, base+"/api/employees", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var list []map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&list))
	require.Len(t, list, 2)
	require.Equal(t, "43", list[0]["_id"])
}

func TestEmployeeAPI_NumericIDsAndCustomField(t *testing.T) {
	api := NewEmployeeAPI(WithIDField("id"), WithNumericIDs(), WithEmployees(SampleEmployees()...))
	base := api.Start(t)

	resp := do(t, http.MethodGet, base+"/api/employees", nil)
	var list []map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&list))
	require.InDelta(t, 42, list[0]["id"], 0)
}

func TestEmployeeAPI_FaultInjection(t *testing.T) {
	api := NewEmployeeAPI()
	base := api.Start(t)

	api.Fail(OpList, http.StatusServiceUnavailable)
	resp := do(t, http.MethodGet, base+"/api/employees", nil)
	require.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)

	api.Recover(OpList)
	resp = do(t, http.MethodGet, base+"/api/employees", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestEmployeeAPI_RejectsMissingFields(t *testing.T) {
	api := NewEmployeeAPI()
	base := api.Start(t)

	resp := do(t, http.MethodPost, base+"/api/employee", map[string]string{"firstName": "Ada"})
	require.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	require.Empty(t, api.Records())
}

func TestEmployeeAPI_EscapedID(t *testing.T) {
	api := NewEmployeeAPI(WithEmployees(EmployeeRecord{ID: "a/b", FirstName: "A", LastName: "B", City: "C"}))
	base := api.Start(t)

	resp := do(t, http.MethodDelete, base+"/api/employee/a%2Fb", nil)
	require.Equal(t, http.StatusNoContent, resp.StatusCode)
	require.Empty(t, api.Records())
}

func TestEmployeeAPI_UnknownID(t *testing.T) {
	api := NewEmployeeAPI()
	base := api.Start(t)

	resp := do(t, http.MethodDelete, base+"/api/employee/nope", nil)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
}
