package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"

	"labelprint/internal/label"
	"labelprint/internal/label/render"
	"labelprint/internal/printnode"
	dErrors "labelprint/pkg/domain-errors"
)

// Server captures HTTP server level configuration.
type Server struct {
	Addr       string `env:"LABELPRINT_ADDR" validate:"required"`
	LogLevel   string `env:"LOG_LEVEL" validate:"oneof=debug info warn error"`
	LogFormat  string `env:"LOG_FORMAT" validate:"oneof=json text"`
	KioskToken string `env:"LABELPRINT_KIOSK_TOKEN"`
}

// Label selects the deployment's validation policy and overflow behaviour.
type Label struct {
	Policy           string `env:"LABEL_POLICY" validate:"oneof=alphanumeric numeric"`
	NumericMaxLength int    `env:"LABEL_NUMERIC_MAX_LENGTH" validate:"gte=6,lte=64"`
	OnOverflow       string `env:"LABEL_ON_OVERFLOW" validate:"oneof=degrade reject"`
}

// PrintNode holds the print service credential pair.
type PrintNode struct {
	APIKey    string        `env:"PRINTNODE_API_KEY" validate:"required"`
	PrinterID int64         `env:"PRINTNODE_PRINTER_ID" validate:"gt=0"`
	BaseURL   string        `env:"PRINTNODE_BASE_URL" validate:"required,url"`
	Timeout   time.Duration `env:"PRINTNODE_TIMEOUT" validate:"gt=0"`
}

// Config is the whole process configuration.
type Config struct {
	Server    Server
	Label     Label
	PrintNode PrintNode
}

// DefaultDotEnv is loaded when present; real environment variables win.
const DefaultDotEnv = ".env"

// Load reads an optional .env file and then the process environment.
func Load() (Config, error) {
	if err := godotenv.Load(DefaultDotEnv); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, dErrors.Wrap(err, dErrors.CodeConfiguration, "failed to read "+DefaultDotEnv)
	}
	return FromLookup(os.LookupEnv)
}

// FromLookup builds a Config from a variable lookup, applying defaults.
// Malformed numbers and durations are configuration errors; required
// values are checked by Validate.
func FromLookup(lookup func(string) (string, bool)) (Config, error) {
	get := func(key, def string) string {
		if v, ok := lookup(key); ok && strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
		return def
	}

	cfg := Config{
		Server: Server{
			Addr:       get("LABELPRINT_ADDR", ":8080"),
			LogLevel:   strings.ToLower(get("LOG_LEVEL", "info")),
			LogFormat:  strings.ToLower(get("LOG_FORMAT", "json")),
			KioskToken: get("LABELPRINT_KIOSK_TOKEN", ""),
		},
		Label: Label{
			Policy:     strings.ToLower(get("LABEL_POLICY", label.PolicyAlphanumeric)),
			OnOverflow: strings.ToLower(get("LABEL_ON_OVERFLOW", string(render.OverflowDegrade))),
		},
		PrintNode: PrintNode{
			APIKey:  get("PRINTNODE_API_KEY", ""),
			BaseURL: get("PRINTNODE_BASE_URL", printnode.DefaultBaseURL),
		},
	}

	var err error
	if cfg.Label.NumericMaxLength, err = strconv.Atoi(get("LABEL_NUMERIC_MAX_LENGTH", strconv.Itoa(label.NumericMaxLength))); err != nil {
		return Config{}, malformed("LABEL_NUMERIC_MAX_LENGTH", "must be a number", err)
	}
	if v := get("PRINTNODE_PRINTER_ID", ""); v != "" {
		if cfg.PrintNode.PrinterID, err = strconv.ParseInt(v, 10, 64); err != nil {
			return Config{}, malformed("PRINTNODE_PRINTER_ID", "must be a number", err)
		}
	}
	if cfg.PrintNode.Timeout, err = time.ParseDuration(get("PRINTNODE_TIMEOUT", "15s")); err != nil {
		return Config{}, malformed("PRINTNODE_TIMEOUT", "must be a duration such as 15s", err)
	}

	return cfg, nil
}

// Validate checks everything the server needs, PrintNode included.
func (c Config) Validate() error {
	if err := c.ValidateLocal(); err != nil {
		return err
	}
	return validateStruct(c.PrintNode)
}

// ValidateLocal checks the settings needed to render labels without
// submitting them.
func (c Config) ValidateLocal() error {
	if err := validateStruct(c.Server); err != nil {
		return err
	}
	return validateStruct(c.Label)
}

// Policy resolves the configured validation policy.
func (c Config) Policy() (label.Policy, error) {
	p, err := label.PolicyByName(c.Label.Policy, c.Label.NumericMaxLength)
	if err != nil {
		return label.Policy{}, dErrors.Wrap(err, dErrors.CodeConfiguration, "invalid LABEL_POLICY")
	}
	return p, nil
}

// OverflowPolicy resolves the configured overflow behaviour.
func (c Config) OverflowPolicy() (render.OverflowPolicy, error) {
	p, err := render.ParseOverflowPolicy(c.Label.OnOverflow)
	if err != nil {
		return "", dErrors.Wrap(err, dErrors.CodeConfiguration, "invalid LABEL_ON_OVERFLOW")
	}
	return p, nil
}

// PrintNodeClientConfig maps the PrintNode section onto the client settings.
func (c Config) PrintNodeClientConfig() printnode.Config {
	return printnode.Config{
		APIKey:    c.PrintNode.APIKey,
		PrinterID: c.PrintNode.PrinterID,
		BaseURL:   c.PrintNode.BaseURL,
		Timeout:   c.PrintNode.Timeout,
	}
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Report fields by their environment variable.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		if name := f.Tag.Get("env"); name != "" {
			return name
		}
		return f.Name
	})
	return v
}

func validateStruct(s any) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return dErrors.Wrap(err, dErrors.CodeConfiguration, "invalid configuration")
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, describe(fe))
	}
	return dErrors.Wrap(err, dErrors.CodeConfiguration, strings.Join(msgs, "; "))
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fe.Field() + " is required"
	case "oneof":
		return fmt.Sprintf("%s must be one of %s", fe.Field(), strings.ReplaceAll(fe.Param(), " ", ", "))
	case "gt", "gte", "lt", "lte":
		ops := map[string]string{"gt": ">", "gte": ">=", "lt": "<", "lte": "<="}
		return fmt.Sprintf("%s must be %s %s", fe.Field(), ops[fe.Tag()], fe.Param())
	case "url":
		return fe.Field() + " must be a URL"
	default:
		return fmt.Sprintf("%s is invalid (%s)", fe.Field(), fe.Tag())
	}
}

func malformed(key, msg string, err error) error {
	return dErrors.Wrap(err, dErrors.CodeConfiguration, key+" "+msg)
}
