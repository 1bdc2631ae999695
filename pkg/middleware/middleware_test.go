package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/iota-uz/go-i18n/v2/i18n"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"

	"github.com/iota-uz/employee-directory/pkg/composables"
	"github.com/iota-uz/employee-directory/pkg/configuration"
	"github.com/iota-uz/employee-directory/pkg/intl"
)

func testConfig() *configuration.Configuration {
	return &configuration.Configuration{
		RequestIDHeader: "X-Request-ID",
		RealIPHeader:    "X-Real-IP",
		OpsGuard: configuration.OpsGuardOptions{
			Enabled:    true,
			CIDRs:      "10.0.0.0/8",
			Token:      "secret",
			PathPrefix: "/debug/",
		},
	}
}

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestOpsGuard(t *testing.T) {
	h := OpsGuard(testConfig())(okHandler())

	cases := []struct {
		name   string
		path   string
		header map[string]string
		want   int
	}{
		{name: "unguarded path", path: "/", want: http.StatusOK},
		{name: "no credentials", path: "/debug/prometheus", want: http.StatusNotFound},
		{name: "allowlisted ip", path: "/debug/prometheus", header: map[string]string{"X-Real-IP": "10.1.2.3"}, want: http.StatusOK},
		{name: "other ip", path: "/debug/prometheus", header: map[string]string{"X-Real-IP": "192.168.0.1"}, want: http.StatusNotFound},
		{name: "bearer token", path: "/debug/prometheus", header: map[string]string{"Authorization": "Bearer secret"}, want: http.StatusOK},
		{name: "ops token", path: "/debug/prometheus", header: map[string]string{"X-Ops-Token": "secret"}, want: http.StatusOK},
		{name: "wrong token", path: "/debug/prometheus", header: map[string]string{"X-Ops-Token": "nope"}, want: http.StatusNotFound},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, tc.path, nil)
			r.RemoteAddr = "203.0.113.9:1234"
			for k, v := range tc.header {
				r.Header.Set(k, v)
			}
			w := httptest.NewRecorder()
			h.ServeHTTP(w, r)
			require.Equal(t, tc.want, w.Code)
		})
	}
}

func TestOpsGuard_Disabled(t *testing.T) {
	conf := testConfig()
	conf.OpsGuard.Enabled = false
	w := httptest.NewRecorder()
	OpsGuard(conf)(okHandler()).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/debug/prometheus", nil))
	require.Equal(t, http.StatusOK, w.Code)
}

func TestWithLogger_ProvidesLoggerAndRequestID(t *testing.T) {
	logger, hook := test.NewNullLogger()
	logger.SetLevel(logrus.InfoLevel)

	var sawLogger bool
	h := WithLogger(logger, LoggerOptions{Config: testConfig()})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		composables.UseLogger(r.Context()).Info("inside")
		sawLogger = true
		w.WriteHeader(http.StatusCreated)
	}))

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set("X-Request-ID", "req-1")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, r)

	require.True(t, sawLogger)
	require.Equal(t, http.StatusCreated, w.Code)
	require.Equal(t, "req-1", w.Header().Get("X-Request-Id"))

	last := hook.LastEntry()
	require.Equal(t, "request completed", last.Message)
	require.Equal(t, http.StatusCreated, last.Data["status-code"])
	require.Equal(t, "req-1", last.Data["request-id"])
}

func TestWithLogger_DefaultOptionsProvideCallerParams(t *testing.T) {
	logger, hook := test.NewNullLogger()
	logger.SetLevel(logrus.InfoLevel)
	opts := DefaultLoggerOptions()
	opts.Config = testConfig()

	var ip, userAgent string
	h := WithLogger(logger, opts)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip, _ = composables.UseIP(r.Context())
		userAgent, _ = composables.UseUserAgent(r.Context())
	}))

	r := httptest.NewRequest(http.MethodPost, "/employees", strings.NewReader("FirstName=Ada"))
	r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	r.Header.Set("X-Real-IP", "10.1.2.3")
	r.Header.Set("User-Agent", "curl/8")
	h.ServeHTTP(httptest.NewRecorder(), r)

	require.Equal(t, "10.1.2.3", ip)
	require.Equal(t, "curl/8", userAgent)

	var bodyLogged bool
	for _, e := range hook.AllEntries() {
		if e.Message == "form request-body parsed" {
			bodyLogged = true
		}
	}
	require.True(t, bodyLogged)
}

func TestWithLogger_RecoversPanics(t *testing.T) {
	logger, hook := test.NewNullLogger()
	h := WithLogger(logger, LoggerOptions{Config: testConfig()})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	require.Equal(t, http.StatusInternalServerError, w.Code)
	require.Equal(t, logrus.ErrorLevel, hook.LastEntry().Level)
}

type stubApp struct {
	bundle *i18n.Bundle
}

func (a *stubApp) Bundle() *i18n.Bundle            { return a.bundle }
func (a *stubApp) GetSupportedLanguages() []string { return []string{"en", "zh"} }

func TestProvideLocalizer(t *testing.T) {
	app := &stubApp{bundle: i18n.NewBundle(language.English)}

	cases := []struct {
		name   string
		target string
		accept string
		want   language.Tag
	}{
		{name: "default", target: "/", want: language.English},
		{name: "accept language", target: "/", accept: "zh-CN,zh;q=0.9", want: language.Chinese},
		{name: "query wins", target: "/?lang=en", accept: "zh", want: language.English},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var got language.Tag
			var hasLocalizer bool
			h := ProvideLocalizer(app)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				got = intl.UseLocale(r.Context())
				_, hasLocalizer = intl.UseLocalizer(r.Context())
			}))
			r := httptest.NewRequest(http.MethodGet, tc.target, nil)
			if tc.accept != "" {
				r.Header.Set("Accept-Language", tc.accept)
			}
			h.ServeHTTP(httptest.NewRecorder(), r)
			require.Equal(t, tc.want, got)
			require.True(t, hasLocalizer)
		})
	}
}
