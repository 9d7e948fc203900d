package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"

	"github.com/fivetwenty-io/formsynergy-client/internal/constants"
	"github.com/fivetwenty-io/formsynergy-client/pkg/formsynergy"
	"github.com/fivetwenty-io/formsynergy-client/pkg/fsclient"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	sessionFileName = "session.db"
	storageDirName  = "cache"
)

// stderrLogger writes structured log lines to a writer, debug only when verbose.
type stderrLogger struct {
	out     io.Writer
	verbose bool
}

func (l *stderrLogger) Debug(msg string, fields map[string]interface{}) {
	if l.verbose {
		l.write("DEBUG", msg, fields)
	}
}

func (l *stderrLogger) Info(msg string, fields map[string]interface{}) {
	if l.verbose {
		l.write("INFO", msg, fields)
	}
}

func (l *stderrLogger) Warn(msg string, fields map[string]interface{}) {
	l.write("WARN", msg, fields)
}

func (l *stderrLogger) Error(msg string, fields map[string]interface{}) {
	l.write("ERROR", msg, fields)
}

func (l *stderrLogger) write(level, msg string, fields map[string]interface{}) {
	keys := make([]string, 0, len(fields))
	for key := range fields {
		keys = append(keys, key)
	}

	sort.Strings(keys)

	line := level + " " + msg
	for _, key := range keys {
		line += fmt.Sprintf(" %s=%v", key, fields[key])
	}

	_, _ = fmt.Fprintln(l.out, line)
}

// commandContext returns the context the command was executed with.
func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}

	return context.Background()
}

// newApp builds the application context from the CLI configuration. Sessions
// default to a bbolt file next to the config so the access point survives
// between invocations.
func newApp(ctx context.Context, config *Config) (*fsclient.App, error) {
	verbose := viper.GetBool("verbose")
	logger := &stderrLogger{out: os.Stderr, verbose: verbose}

	sdkConfig := &formsynergy.Config{
		APIKey:       config.APIKey,
		SecretKey:    config.SecretKey,
		Protocol:     config.Protocol,
		Endpoint:     config.Endpoint,
		Version:      config.Version,
		MaxAuthCount: config.MaxAuthCount,
		Debug:        verbose,
		Logger:       logger,
		UserAgent:    "fsctl",
	}

	if verbose {
		chain := formsynergy.NewInterceptorChain()
		chain.AddRequestInterceptor(formsynergy.LoggingInterceptor(logger))
		chain.AddResponseInterceptor(formsynergy.LoggingResponseInterceptor(logger))
		sdkConfig.Interceptors = chain
	}

	opts, err := appOptions(config)
	if err != nil {
		return nil, err
	}

	app, err := fsclient.New(ctx, sdkConfig, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create client: %w", err)
	}

	return app, nil
}

func appOptions(config *Config) ([]fsclient.Option, error) {
	var opts []fsclient.Option

	switch config.SessionBackend {
	case constants.SessionBackendMemory:
	case constants.SessionBackendNATS:
		opts = append(opts, fsclient.WithNATSSession(config.NATSURL, config.NATSBucket, config.SessionID))
	case "", constants.SessionBackendBolt:
		path := config.SessionPath
		if path == "" {
			dir, err := configDir()
			if err != nil {
				return nil, err
			}

			path = filepath.Join(dir, sessionFileName)
		}

		opts = append(opts, fsclient.WithBoltSession(path, config.SessionID))
	default:
		return nil, fmt.Errorf("%w: %s", constants.ErrUnsupportedSessionBackend, config.SessionBackend)
	}

	if config.Timezone != "" {
		opts = append(opts, fsclient.WithTimezone(config.Timezone))
	}

	storage := config.Storage
	if storage == "" {
		dir, err := configDir()
		if err != nil {
			return nil, err
		}

		storage = dir
	}

	opts = append(opts, fsclient.WithStorage(storage, storageDirName))

	if config.Reseller != "" {
		opts = append(opts, fsclient.WithReseller(config.Reseller))
	}

	if config.Profile != "" {
		opts = append(opts, fsclient.WithProfile(config.Profile))
	}

	return opts, nil
}
