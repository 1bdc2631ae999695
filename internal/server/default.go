package server

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"github.com/iota-uz/employee-directory/pkg/application"
	"github.com/iota-uz/employee-directory/pkg/configuration"
	"github.com/iota-uz/employee-directory/pkg/constants"
	"github.com/iota-uz/employee-directory/pkg/middleware"
	"github.com/iota-uz/employee-directory/pkg/server"
)

type DefaultOptions struct {
	Logger        *logrus.Logger
	Configuration *configuration.Configuration
	Application   application.Application
}

func Default(options *DefaultOptions) (*server.HTTPServer, error) {
	app := options.Application

	loggerOptions := middleware.DefaultLoggerOptions()
	loggerOptions.Config = options.Configuration

	middlewares := []mux.MiddlewareFunc{
		middleware.WithLogger(options.Logger, loggerOptions),
		middleware.TracedMiddleware("opsGuard"),
		middleware.OpsGuard(options.Configuration),
		middleware.Provide(constants.AppKey, app),
		middleware.TracedMiddleware("localizer"),
		middleware.ProvideLocalizer(app),
	}
	app.RegisterMiddleware(middlewares...)

	serverInstance := server.NewHTTPServer(
		app,
		http.NotFoundHandler(),
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		}),
	)
	return serverInstance, nil
}
