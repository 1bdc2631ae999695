package configuration

import (
	"fmt"
	"log"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/iota-uz/employee-directory/pkg/logging"

	"github.com/caarlos0/env/v11"
	"github.com/iota-uz/utils/fs"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

const Production = "production"

var singleton = sync.OnceValue(func() *Configuration {
	c := &Configuration{}
	if err := c.load([]string{".env", ".env.local"}); err != nil {
		c.Unload()
		panic(err)
	}
	return c
})

// LoadEnv loads the env files that exist in the working directory. When none
// do, it retries relative to the nearest parent holding a go.mod.
func LoadEnv(envFiles []string) (int, error) {
	existingFiles := existing("", envFiles)
	if len(existingFiles) == 0 {
		if root, ok := moduleRoot(); ok {
			existingFiles = existing(root, envFiles)
		}
	}

	if len(existingFiles) == 0 {
		return 0, nil
	}

	return len(existingFiles), godotenv.Load(existingFiles...)
}

func existing(dir string, envFiles []string) []string {
	found := make([]string, 0, len(envFiles))
	for _, file := range envFiles {
		path := file
		if dir != "" && !filepath.IsAbs(file) {
			path = filepath.Join(dir, file)
		}
		if fs.FileExists(path) {
			found = append(found, path)
		}
	}
	return found
}

func moduleRoot() (string, bool) {
	dir, err := os.Getwd()
	if err != nil {
		return "", false
	}
	for {
		if fs.FileExists(filepath.Join(dir, "go.mod")) {
			return dir, true
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false
		}
		dir = parent
	}
}

// APIOptions describe the employee REST backend this client talks to.
type APIOptions struct {
	URL     string        `env:"API_URL" envDefault:"http://localhost:5000"`
	IDField string        `env:"API_ID_FIELD" envDefault:"_id"`
	Timeout time.Duration `env:"API_TIMEOUT" envDefault:"0s"`
}

// Validate checks that the base URL is absolute and the id field is set.
func (a *APIOptions) Validate() error {
	u, err := url.Parse(strings.TrimSpace(a.URL))
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("invalid API_URL: %q", a.URL)
	}
	if strings.TrimSpace(a.IDField) == "" {
		return fmt.Errorf("API_ID_FIELD must not be empty")
	}
	if a.Timeout < 0 {
		return fmt.Errorf("API_TIMEOUT must be non-negative, got %s", a.Timeout)
	}
	a.URL = strings.TrimRight(strings.TrimSpace(a.URL), "/")
	return nil
}

type ExportOptions struct {
	FileName  string `env:"EXPORT_FILE_NAME" envDefault:"data"`
	SheetName string `env:"EXPORT_SHEET_NAME" envDefault:"Employees"`
}

func (e *ExportOptions) Validate() error {
	if strings.TrimSpace(e.FileName) == "" {
		return fmt.Errorf("EXPORT_FILE_NAME must not be empty")
	}
	if strings.TrimSpace(e.SheetName) == "" {
		return fmt.Errorf("EXPORT_SHEET_NAME must not be empty")
	}
	// Excel sheet name limit
	if len(e.SheetName) > 31 {
		e.SheetName = e.SheetName[:31]
	}
	return nil
}

type LokiOptions struct {
	LogPath string `env:"LOG_PATH" envDefault:"./logs/app.log"`
}

type OpenTelemetryOptions struct {
	Enabled     bool   `env:"OTEL_ENABLED" envDefault:"false"`
	TempoURL    string `env:"OTEL_TEMPO_URL" envDefault:"localhost:4318"`
	ServiceName string `env:"OTEL_SERVICE_NAME" envDefault:"employee-directory"`
}

type PrometheusOptions struct {
	Enabled bool   `env:"PROMETHEUS_METRICS_ENABLED" envDefault:"false"`
	Path    string `env:"PROMETHEUS_METRICS_PATH" envDefault:"/debug/prometheus"`
}

// OpsGuardOptions restrict operational endpoints such as the metrics scrape path.
type OpsGuardOptions struct {
	Enabled       bool   `env:"OPS_GUARD_ENABLED" envDefault:"false"`
	CIDRs         string `env:"OPS_GUARD_CIDRS"`
	Token         string `env:"OPS_GUARD_TOKEN"`
	BasicAuthUser string `env:"OPS_GUARD_BASIC_AUTH_USER"`
	BasicAuthPass string `env:"OPS_GUARD_BASIC_AUTH_PASS"`
	PathPrefix    string `env:"OPS_GUARD_PATH_PREFIX" envDefault:"/debug/"`
}

type Configuration struct {
	API           APIOptions
	Export        ExportOptions
	Loki          LokiOptions
	OpenTelemetry OpenTelemetryOptions
	Prometheus    PrometheusOptions
	OpsGuard      OpsGuardOptions

	ServerPort       int    `env:"PORT" envDefault:"3200"`
	GoAppEnvironment string `env:"GO_APP_ENV" envDefault:"development"`
	SocketAddress    string `env:"-"`
	Domain           string `env:"DOMAIN" envDefault:"localhost"`
	Origin           string `env:"ORIGIN" envDefault:"http://localhost:3200"`
	LogLevel         string `env:"LOG_LEVEL" envDefault:"error"`
	// Comma separated language codes offered to the localizer.
	SupportedLanguages []string `env:"SUPPORTED_LANGUAGES" envDefault:"en,zh" envSeparator:","`
	// Show a notice when the employee list could not be loaded. Off keeps the
	// list read fail-soft: an outage renders as an empty directory.
	ShowLoadErrors bool `env:"SHOW_LOAD_ERRORS" envDefault:"false"`
	// Client will look for this header in the request, if it's not present, it will generate a random uuidv4
	RequestIDHeader string `env:"REQUEST_ID_HEADER" envDefault:"X-Request-ID"`
	// Client will look for this header in the request, if it's not present, it will use request.RemoteAddr
	RealIPHeader string `env:"REAL_IP_HEADER" envDefault:"X-Real-IP"`

	logFile *os.File
	logger  *logrus.Logger
}

// New loads a fresh configuration from the given env files and the process
// environment. Unlike Use it does not cache the result.
func New(envFiles ...string) (*Configuration, error) {
	c := &Configuration{}
	if err := c.load(envFiles); err != nil {
		c.Unload()
		return nil, err
	}
	return c, nil
}

// Parse reads and validates the configuration without opening the log file,
// for tools that bring their own logger. Logger returns nil on the result.
func Parse(envFiles ...string) (*Configuration, error) {
	c := &Configuration{}
	if _, err := LoadEnv(envFiles); err != nil {
		return nil, err
	}
	if err := c.parse(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Configuration) Logger() *logrus.Logger {
	return c.logger
}

func (c *Configuration) LogrusLogLevel() logrus.Level {
	switch c.LogLevel {
	case "silent":
		return logrus.PanicLevel
	case "error":
		return logrus.ErrorLevel
	case "warn":
		return logrus.WarnLevel
	case "info":
		return logrus.InfoLevel
	case "debug":
		return logrus.DebugLevel
	default:
		return logrus.ErrorLevel
	}
}

func (c *Configuration) Scheme() string {
	if c.GoAppEnvironment == Production { // assume 'https' on production mode
		return "https"
	}
	return "http"
}

func Use() *Configuration {
	return singleton()
}

func (c *Configuration) load(envFiles []string) error {
	n, err := LoadEnv(envFiles)
	if err != nil {
		return err
	}
	if n == 0 && len(envFiles) > 0 {
		wd, _ := os.Getwd()
		log.Println("No .env files found. Tried:")
		for _, file := range envFiles {
			log.Println(filepath.Join(wd, file))
		}
	}
	if err := c.parse(); err != nil {
		return err
	}

	f, logger, err := logging.FileLogger(c.LogrusLogLevel(), c.Loki.LogPath)
	if err != nil {
		return err
	}
	c.logFile = f
	c.logger = logger
	return nil
}

func (c *Configuration) parse() error {
	if err := env.Parse(c); err != nil {
		return err
	}

	if err := c.API.Validate(); err != nil {
		return fmt.Errorf("api configuration error: %w", err)
	}
	if err := c.Export.Validate(); err != nil {
		return fmt.Errorf("export configuration error: %w", err)
	}

	if c.GoAppEnvironment == Production {
		c.SocketAddress = fmt.Sprintf(":%d", c.ServerPort)
	} else {
		c.SocketAddress = fmt.Sprintf("localhost:%d", c.ServerPort)
	}

	// Derive Origin from the port unless it was set explicitly.
	if os.Getenv("DOMAIN") == "" {
		c.Domain = "localhost"
	}
	if os.Getenv("ORIGIN") == "" {
		if c.GoAppEnvironment == "development" {
			c.Origin = fmt.Sprintf("%s://%s:%d", c.Scheme(), c.Domain, c.ServerPort)
		} else {
			c.Origin = fmt.Sprintf("%s://%s", c.Scheme(), c.Domain)
		}
	}

	return nil
}

// Unload closes the log file.
func (c *Configuration) Unload() {
	if c.logFile != nil {
		if err := c.logFile.Close(); err != nil {
			log.Printf("Failed to close log file: %v", err)
		}
		c.logFile = nil
	}
}
