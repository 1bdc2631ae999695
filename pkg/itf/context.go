package itf

import (
	"context"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"

	"github.com/iota-uz/employee-directory/pkg/composables"
	"github.com/iota-uz/employee-directory/pkg/eventbus"
)

// TestContext provides a fluent API for building test contexts
type TestContext struct {
	ctx     context.Context
	apiOpts []APIOption
}

// NewTestContext creates a new TestContext builder
func NewTestContext() *TestContext {
	return &TestContext{
		ctx: context.Background(),
	}
}

// WithEmployees seeds the stub API
func (tc *TestContext) WithEmployees(records ...EmployeeRecord) *TestContext {
	tc.apiOpts = append(tc.apiOpts, WithEmployees(records...))
	return tc
}

// WithAPIOptions passes extra options to the stub API
func (tc *TestContext) WithAPIOptions(opts ...APIOption) *TestContext {
	tc.apiOpts = append(tc.apiOpts, opts...)
	return tc
}

// Build starts the stub API and wires a context with a capturing logger
func (tc *TestContext) Build(tb testing.TB) *TestEnvironment {
	tb.Helper()

	api := NewEmployeeAPI(tc.apiOpts...)
	baseURL := api.Start(tb)

	logger, hook := test.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)

	ctx := composables.WithLogger(tc.ctx, logrus.NewEntry(logger))
	ctx = composables.WithParams(ctx, DefaultParams())

	return &TestEnvironment{
		Ctx:       ctx,
		API:       api,
		BaseURL:   baseURL,
		Logger:    logger,
		LogHook:   hook,
		Publisher: eventbus.NewEventPublisher(logger),
	}
}

// TestEnvironment contains all test dependencies
type TestEnvironment struct {
	Ctx       context.Context
	API       *EmployeeAPI
	BaseURL   string
	Logger    *logrus.Logger
	LogHook   *test.Hook
	Publisher eventbus.EventBus
}

// AssertNoError fails the test if err is not nil
func (te *TestEnvironment) AssertNoError(tb testing.TB, err error) {
	tb.Helper()
	if err != nil {
		tb.Fatal(err)
	}
}

// Logged reports whether any captured entry has the given level
func (te *TestEnvironment) Logged(level logrus.Level) bool {
	for _, e := range te.LogHook.AllEntries() {
		if e.Level == level {
			return true
		}
	}
	return false
}
