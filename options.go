package vtree

import (
	"fmt"

	"github.com/mwantia/vtree/log"
)

type ContentOptions struct {
	LogLevel      log.LogLevel
	LogFile       string
	NoTerminalLog bool
	Logger        *log.Logger
}

type ContentOption func(*ContentOptions) error

func newDefaultContentOptions() *ContentOptions {
	return &ContentOptions{
		LogLevel: log.Info,
	}
}

func WithLogLevel(logLevel log.LogLevel) ContentOption {
	return func(opts *ContentOptions) error {
		opts.LogLevel = logLevel
		return nil
	}
}

func WithoutTerminalLog() ContentOption {
	return func(opts *ContentOptions) error {
		opts.NoTerminalLog = true
		return nil
	}
}

func WithLogFile(logFile string) ContentOption {
	return func(opts *ContentOptions) error {
		opts.LogFile = logFile
		return nil
	}
}

// WithLogger uses an existing logger instead of creating one.
// The level and file options are ignored when a logger is given.
func WithLogger(logger *log.Logger) ContentOption {
	return func(opts *ContentOptions) error {
		if logger == nil {
			return fmt.Errorf("%w: logger must not be nil", ErrInvalidOption)
		}
		opts.Logger = logger
		return nil
	}
}

func (opts *ContentOptions) logger() *log.Logger {
	if opts.Logger != nil {
		return opts.Logger.Named("vtree")
	}
	return log.NewLogger("vtree", opts.LogLevel, opts.LogFile, opts.NoTerminalLog)
}
