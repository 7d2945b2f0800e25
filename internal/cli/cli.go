package cli

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/specialistvlad/dasmanifest/internal/app"
	"github.com/specialistvlad/dasmanifest/internal/config"
	"github.com/specialistvlad/dasmanifest/internal/ctxlog"
	"github.com/specialistvlad/dasmanifest/internal/resolver"
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

func usageError(format string, args ...any) *ExitError {
	return &ExitError{Code: 2, Message: fmt.Sprintf(format, args...)}
}

// Parse processes command-line arguments. It returns a populated app.Config,
// a boolean indicating if the program should exit cleanly, or an ExitError.
// environ is exposed to the profile file as the `env` object.
func Parse(ctx context.Context, args []string, output io.Writer, v Variant, environ []string) (*app.Config, bool, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("CLI parser started.", "program", v.Program)

	flagSet := flag.NewFlagSet(v.Program, flag.ContinueOnError)
	flagSet.SetOutput(output)

	flagSet.Usage = func() {
		fmt.Fprintf(output, `
%s

Usage:
  %s [options] <input_file> <process_label> <output_file>

Arguments:
  input_file
    Text file with one dataset per line.
  process_label
    Physics process label (e.g., WJets, ZJets).
  output_file
    Output JSON filename (e.g., output.json).

Options:
`, v.Summary, v.Program)
		flagSet.PrintDefaults()
	}

	redirectorFlag := flagSet.String("redirector", v.Redirector, "Redirector URL prefixed to every file path.")
	namingFlag := flagSet.String("naming", v.Naming, "Naming policy for short names and years. Options: 'simulation' or 'data'.")
	resolverFlag := flagSet.String("resolver", resolver.DefaultCommand, "Catalog client executable.")
	timeoutFlag := flagSet.Duration("timeout", 0, "Timeout of a single catalog query. 0 disables the timeout.")
	workersFlag := flagSet.Int("workers", 1, "Number of catalog queries run in parallel.")
	configFlag := flagSet.String("config", "", "Path to an HCL profile file.")
	profileFlag := flagSet.String("profile", "", "Profile to use from the profile file.")
	healthPortFlag := flagSet.Int("healthcheck-port", 0, "Port for the HTTP health check server. 0 is disabled.")
	logFormatFlag := flagSet.String("log-format", "text", "Log output format. Options: 'text' or 'json'.")
	logLevelFlag := flagSet.String("log-level", "info", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")

	if err := flagSet.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil, true, nil
		}
		return nil, false, usageError("%s", err.Error())
	}
	logger.Debug("Arguments parsed successfully.")

	if flagSet.NArg() == 0 {
		logger.Debug("No arguments provided, printing usage.")
		flagSet.Usage()
		return nil, false, usageError("the following arguments are required: <input_file> <process_label> <output_file>")
	}
	if flagSet.NArg() != 3 {
		return nil, false, usageError("expected 3 arguments <input_file> <process_label> <output_file>, got %d", flagSet.NArg())
	}

	logFormat := strings.ToLower(*logFormatFlag)
	if logFormat != "text" && logFormat != "json" {
		return nil, false, usageError("invalid log-format: must be 'text' or 'json'")
	}

	logLevel := strings.ToLower(*logLevelFlag)
	switch logLevel {
	case "debug", "info", "warn", "error":
		// valid
	default:
		return nil, false, usageError("invalid log-level: must be 'debug', 'info', 'warn', or 'error'")
	}

	if *profileFlag != "" && *configFlag == "" {
		return nil, false, usageError("-profile requires -config")
	}

	cfg := app.Config{
		InputPath:       flagSet.Arg(0),
		Process:         flagSet.Arg(1),
		OutputPath:      flagSet.Arg(2),
		Redirector:      v.Redirector,
		Naming:          v.Naming,
		ResolverCommand: resolver.DefaultCommand,
		Workers:         1,
		LogFormat:       logFormat,
		LogLevel:        logLevel,
		HealthcheckPort: *healthPortFlag,
	}

	if *configFlag != "" {
		if err := applyProfile(ctx, &cfg, *configFlag, *profileFlag, environ); err != nil {
			return nil, false, usageError("%s", err.Error())
		}
	}

	// Explicit flags win over the profile.
	flagSet.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "redirector":
			cfg.Redirector = *redirectorFlag
		case "naming":
			cfg.Naming = *namingFlag
		case "resolver":
			cfg.ResolverCommand = *resolverFlag
		case "timeout":
			cfg.Timeout = *timeoutFlag
		case "workers":
			cfg.Workers = *workersFlag
		}
	})
	logger.Debug("CLI parameter validation complete.")

	validated, err := app.NewConfig(cfg)
	if err != nil {
		return nil, false, usageError("%s", err.Error())
	}

	logger.Debug("CLI parser finished successfully.", "config", validated)
	return validated, false, nil
}

func applyProfile(ctx context.Context, cfg *app.Config, path, name string, environ []string) error {
	file, err := config.Load(ctx, path, environ)
	if err != nil {
		return err
	}
	p, err := file.Profile(name)
	if err != nil {
		return err
	}

	if p.Redirector != nil {
		cfg.Redirector = *p.Redirector
	}
	if p.Naming != nil {
		cfg.Naming = *p.Naming
	}
	if p.Workers != nil {
		cfg.Workers = *p.Workers
	}
	if cmd, ok := p.Command(); ok {
		cfg.ResolverCommand = cmd
	}
	timeout, ok, err := p.TimeoutDuration()
	if err != nil {
		return err
	}
	if ok {
		cfg.Timeout = timeout
	}

	ctxlog.FromContext(ctx).Debug("Profile applied.", "profile", p.Name, "path", path)
	return nil
}

// Run parses args and executes one manifest build. outW receives logs,
// usage text and the final confirmation line.
func Run(ctx context.Context, outW io.Writer, args []string, v Variant, environ []string) error {
	cfg, shouldExit, err := Parse(ctx, args, outW, v, environ)
	if err != nil {
		return err
	}
	if shouldExit {
		return nil
	}

	a, err := app.NewApp(outW, cfg)
	if err != nil {
		return &ExitError{Code: 2, Message: err.Error()}
	}

	start := time.Now()
	if err := a.Run(ctx); err != nil {
		return err
	}
	a.Logger().Debug("Run complete.", "elapsed", time.Since(start))
	return nil
}
