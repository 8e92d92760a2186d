package cli

import (
	"errors"
	"fmt"
	"io"
	"slices"
	"strconv"

	"github.com/spf13/pflag"

	"github.com/custodia-labs/typesense-mcp/internal/adapters/driven/config/file"
	"github.com/custodia-labs/typesense-mcp/internal/core/domain"
	"github.com/custodia-labs/typesense-mcp/internal/core/ports/driven"
	"github.com/custodia-labs/typesense-mcp/internal/logger"
)

// Flag names shared by every command.
const (
	flagHost     = "host"
	flagPort     = "port"
	flagProtocol = "protocol"
	flagAPIKey   = "api-key"
	flagConfig   = "config"
	flagLogFile  = "log-file"
	flagLogLevel = "log-level"
	flagHelp     = "help"
)

// Config is the resolved startup configuration.
type Config struct {
	Connection domain.Connection
	Log        logger.Options
}

// flagValues holds raw flag values. The port is kept as text so a malformed
// value is reported as a configuration error rather than a usage error.
type flagValues struct {
	host     string
	port     string
	protocol string
	apiKey   string
	config   string
	logFile  string
	logLevel string
}

// bindFlags registers the connection and logging flags on fs.
func bindFlags(fs *pflag.FlagSet, v *flagValues) {
	fs.StringVar(&v.host, flagHost, domain.DefaultHost, "Typesense host")
	fs.StringVar(&v.port, flagPort, strconv.Itoa(domain.DefaultPort), "Typesense port")
	fs.StringVar(&v.protocol, flagProtocol, domain.DefaultProtocol, "Typesense protocol (http or https)")
	fs.StringVar(&v.apiKey, flagAPIKey, "", "Typesense API key (required)")
	fs.StringVar(&v.config, flagConfig, "", "settings file (.toml, .yaml, .yml or .json)")
	fs.StringVar(&v.logFile, flagLogFile, "", `log file path, "-" for stderr (default: `+logger.DefaultFile()+")")
	fs.StringVar(&v.logLevel, flagLogLevel, "", "log level: debug, info, warn or error (default: info)")
}

// ResolveConnection parses argv and returns the Typesense connection.
// Unknown flags and positional arguments are ignored.
func ResolveConnection(argv []string) (domain.Connection, error) {
	cfg, err := Resolve(argv)
	if err != nil {
		return domain.Connection{}, err
	}
	return cfg.Connection, nil
}

// Resolve parses argv and returns the full startup configuration.
// Tokens pflag rejects are dropped and the rest parsed again: a malformed
// flag name, or a trailing flag with no value.
func Resolve(argv []string) (Config, error) {
	argv = slices.Clone(argv)
	for {
		fs, v := newFlagSet()
		err := fs.Parse(argv)

		var missing *pflag.ValueRequiredError
		var syntax *pflag.InvalidSyntaxError
		switch {
		case err == nil:
			return resolveFlags(fs, v)
		case errors.As(err, &missing) && len(argv) > 0:
			// Only the last token can lack a value.
			argv = argv[:len(argv)-1]
		case errors.As(err, &syntax) && slices.Contains(argv, syntax.GetSpecifiedFlag()):
			i := slices.Index(argv, syntax.GetSpecifiedFlag())
			argv = slices.Delete(argv, i, i+1)
		default:
			return Config{}, fmt.Errorf("%w: %v", domain.ErrInvalidConfig, err)
		}
	}
}

func newFlagSet() (*pflag.FlagSet, *flagValues) {
	v := new(flagValues)
	fs := pflag.NewFlagSet("typesense-mcp", pflag.ContinueOnError)
	fs.ParseErrorsAllowlist.UnknownFlags = true
	fs.SetOutput(io.Discard)
	bindFlags(fs, v)

	// --help and -h are ignored like any other unknown flag.
	fs.StringP(flagHelp, "h", "", "")
	fs.Lookup(flagHelp).NoOptDefVal = "true"
	_ = fs.MarkHidden(flagHelp)
	return fs, v
}

// resolveFlags layers defaults, the environment, the settings file and
// explicitly set flags, in that order.
func resolveFlags(fs *pflag.FlagSet, v *flagValues) (Config, error) {
	cfg := Config{
		Connection: domain.DefaultConnection(),
		Log:        logger.OptionsFromEnv(),
	}

	if v.config != "" {
		if err := applySettings(&cfg, file.NewSettingsStore(v.config)); err != nil {
			return Config{}, err
		}
	}

	if fs.Changed(flagHost) {
		cfg.Connection.Host = v.host
	}
	if fs.Changed(flagPort) {
		port, err := parsePort(v.port)
		if err != nil {
			return Config{}, err
		}
		cfg.Connection.Port = port
	}
	if fs.Changed(flagProtocol) && domain.IsValidProtocol(v.protocol) {
		cfg.Connection.Protocol = v.protocol
	}
	if fs.Changed(flagLogFile) {
		cfg.Log.File = v.logFile
	}
	if fs.Changed(flagLogLevel) {
		cfg.Log.Level = v.logLevel
	}
	cfg.Connection.APIKey = v.apiKey

	if err := cfg.Connection.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func applySettings(cfg *Config, store driven.SettingsStore) error {
	settings, err := store.Load()
	if err != nil {
		return fmt.Errorf("loading settings from %s: %w", store.Path(), err)
	}
	if settings.Port != 0 && !validPort(settings.Port) {
		return fmt.Errorf("%w: port %d out of range in %s", domain.ErrInvalidConfig, settings.Port, store.Path())
	}

	cfg.Connection = settings.ApplyTo(cfg.Connection)
	if settings.LogFile != "" {
		cfg.Log.File = settings.LogFile
	}
	if settings.LogLevel != "" {
		cfg.Log.Level = settings.LogLevel
	}
	return nil
}

func parsePort(s string) (int, error) {
	port, err := strconv.Atoi(s)
	if err != nil || !validPort(port) {
		return 0, fmt.Errorf("%w: invalid port %q", domain.ErrInvalidConfig, s)
	}
	return port, nil
}

func validPort(p int) bool {
	return p > 0 && p <= 65535
}
