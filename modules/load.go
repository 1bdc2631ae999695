package modules

import (
	"github.com/iota-uz/employee-directory/modules/directory"
	"github.com/iota-uz/employee-directory/pkg/application"
	"github.com/iota-uz/employee-directory/pkg/configuration"
)

// BuiltInModules returns the modules served by cmd/server.
func BuiltInModules(conf *configuration.Configuration) []application.Module {
	return []application.Module{
		directory.NewModule(&directory.ModuleOptions{Configuration: conf}),
	}
}

func Load(app application.Application, externalModules ...application.Module) error {
	for _, module := range externalModules {
		if err := module.Register(app); err != nil {
			return err
		}
	}
	return nil
}
