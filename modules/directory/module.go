package directory

import (
	"embed"

	"github.com/iota-uz/employee-directory/modules/directory/domain/aggregates/employee"
	"github.com/iota-uz/employee-directory/modules/directory/handlers"
	"github.com/iota-uz/employee-directory/modules/directory/infrastructure/api"
	"github.com/iota-uz/employee-directory/modules/directory/presentation/controllers"
	"github.com/iota-uz/employee-directory/modules/directory/services"
	"github.com/iota-uz/employee-directory/pkg/application"
	"github.com/iota-uz/employee-directory/pkg/configuration"
)

//go:embed presentation/locales/*.toml
var LocaleFiles embed.FS

type ModuleOptions struct {
	Configuration *configuration.Configuration
	// Repository replaces the REST-backed repository when set.
	Repository employee.Repository
}

func NewModule(opts *ModuleOptions) application.Module {
	return &Module{options: opts}
}

type Module struct {
	options *ModuleOptions
}

func (m *Module) Register(app application.Application) error {
	conf := m.options.Configuration
	if conf == nil {
		conf = configuration.Use()
	}

	repo := m.options.Repository
	if repo == nil {
		client, err := api.NewClient(api.OptionsFromConfig(conf))
		if err != nil {
			return err
		}
		repo = api.NewEmployeeRepository(client)
	}

	employeeService := services.NewEmployeeService(repo, app.EventPublisher())
	app.RegisterLocaleFiles(&LocaleFiles)
	app.RegisterServices(
		employeeService,
		services.NewDirectoryService(employeeService, app.Logger()),
		services.NewExportService(conf.Export.SheetName, conf.Export.FileName),
	)
	handlers.RegisterActivityHandlers(app.EventPublisher(), app.Logger())
	app.RegisterControllers(
		controllers.NewDirectoryController(app, controllers.DirectoryControllerOptions{
			ShowLoadErrors: conf.ShowLoadErrors,
			ExportFileName: conf.Export.FileName,
		}),
	)
	return nil
}

func (m *Module) Name() string {
	return "directory"
}
