package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/iota-uz/go-i18n/v2/i18n"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/iota-uz/employee-directory/modules"
	"github.com/iota-uz/employee-directory/modules/directory/services"
	"github.com/iota-uz/employee-directory/pkg/application"
	"github.com/iota-uz/employee-directory/pkg/composables"
	"github.com/iota-uz/employee-directory/pkg/configuration"
	"github.com/iota-uz/employee-directory/pkg/eventbus"
	"github.com/iota-uz/employee-directory/pkg/logging"
)

type rootOptions struct {
	apiURL  string
	idField string
	timeout time.Duration
	lang    string
	verbose bool
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	cmd := &cobra.Command{
		Use:           "directory",
		Short:         "Employee directory client: list, export and edit employees over the REST API",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&opts.apiURL, "api-url", "", "Employee API base URL (overrides API_URL)")
	flags.StringVar(&opts.idField, "id-field", "", "Name of the id field in API records (overrides API_ID_FIELD)")
	flags.DurationVar(&opts.timeout, "timeout", 0, "Per-request timeout, 0 waits indefinitely (overrides API_TIMEOUT)")
	flags.StringVar(&opts.lang, "lang", "en", "Language for messages (en, zh)")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "Log API calls to stderr")

	cmd.AddCommand(newListCmd(opts))
	cmd.AddCommand(newExportCmd(opts))
	cmd.AddCommand(newTUICmd(opts))
	cmd.AddCommand(newStubCmd())
	return cmd
}

func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := newRootCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		code := exitCode(err)
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(code)
	}
}

// runtime is the wired directory stack a subcommand works against.
type runtime struct {
	ctx       context.Context
	conf      *configuration.Configuration
	logger    *logrus.Logger
	directory *services.DirectoryService
	exports   *services.ExportService
	localizer *i18n.Localizer
}

func (o *rootOptions) runtime(cmd *cobra.Command) (*runtime, error) {
	conf, err := configuration.Parse(".env", ".env.local")
	if err != nil {
		return nil, withCode(exitUsage, err)
	}
	if o.apiURL != "" {
		conf.API.URL = o.apiURL
	}
	if o.idField != "" {
		conf.API.IDField = o.idField
	}
	if cmd.Flags().Changed("timeout") {
		conf.API.Timeout = o.timeout
	}
	if err := conf.API.Validate(); err != nil {
		return nil, withCode(exitUsage, err)
	}

	logger := logging.ConsoleLogger(conf.LogrusLogLevel())
	logger.SetOutput(cmd.ErrOrStderr())
	if o.verbose {
		logger.SetLevel(logrus.DebugLevel)
	}

	app := application.New(&application.ApplicationOptions{
		Bundle:             application.LoadBundle(),
		EventBus:           eventbus.NewEventPublisher(logger),
		Logger:             logger,
		SupportedLanguages: conf.SupportedLanguages,
	})
	if err := modules.Load(app, modules.BuiltInModules(conf)...); err != nil {
		return nil, withCode(exitUsage, err)
	}

	ctx := composables.WithLogger(cmd.Context(), logrus.NewEntry(logger).WithField("command", cmd.Name()))
	return &runtime{
		ctx:       ctx,
		conf:      conf,
		logger:    logger,
		directory: app.Service(services.DirectoryService{}).(*services.DirectoryService),
		exports:   app.Service(services.ExportService{}).(*services.ExportService),
		localizer: i18n.NewLocalizer(app.Bundle(), o.lang),
	}, nil
}
