package bootstrap

import (
	"time"

	"github.com/RichTeaMan/timer/logger"
)

// settings holds what an Option may change on an App.
type settings struct {
	logger          *logger.Logger
	gracefulTimeout time.Duration
	quiet           bool
}

// Option adjusts an App before NewApp returns it.
type Option func(*settings)

// WithLogger hands the App a ready logger. Without it the global logger is
// initialised from the config's Logging section.
func WithLogger(l *logger.Logger) Option {
	return func(s *settings) { s.logger = l }
}

// WithGracefulTimeout bounds shutdown. Values of 0 or less keep the default.
func WithGracefulTimeout(d time.Duration) Option {
	return func(s *settings) {
		if d > 0 {
			s.gracefulTimeout = d
		}
	}
}

// WithQuietSummary skips the startup summary. Terminal commands use it so
// log lines do not interleave with their own output.
func WithQuietSummary() Option {
	return func(s *settings) { s.quiet = true }
}
