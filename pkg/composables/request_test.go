package composables

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
)

func TestFlash_RoundTrip(t *testing.T) {
	w := httptest.NewRecorder()
	SetFlash(w, "notice", []byte("Employee created"))

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, c := range w.Result().Cookies() {
		r.AddCookie(c)
	}

	w2 := httptest.NewRecorder()
	val, err := UseFlash(w2, r, "notice")
	require.NoError(t, err)
	require.Equal(t, "Employee created", string(val))

	cleared := w2.Result().Cookies()
	require.Len(t, cleared, 1)
	require.Equal(t, -1, cleared[0].MaxAge)
}

func TestUseFlash_Missing(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	val, err := UseFlash(httptest.NewRecorder(), r, "notice")
	require.NoError(t, err)
	require.Nil(t, val)
}

type sampleForm struct {
	Name string `form:"Name"`
	City string `form:"City"`
}

func TestUseForm(t *testing.T) {
	body := url.Values{"Name": {"Ada"}, "City": {"London"}}.Encode()
	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	r.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	v, err := UseForm(&sampleForm{}, r)
	require.NoError(t, err)
	require.Equal(t, "Ada", v.Name)
	require.Equal(t, "London", v.City)
}

func TestUseLogger(t *testing.T) {
	require.Panics(t, func() { UseLogger(context.Background()) })

	entry := logrus.NewEntry(logrus.New())
	ctx := WithLogger(context.Background(), entry)
	require.Same(t, entry, UseLogger(ctx))
}
