package nmodel

import (
	"github.com/sirupsen/logrus"
)

const (
	DefaultVersion      = "20.2.0.7"
	DefaultMaxArraySize = 1 << 20
)

type (
	// Config is the startup state of a Document.
	Config struct {
		// Version is the file version as a version string, packed with nexpr.VersionToNumber.
		Version     string
		UserVersion uint32
		// MaxArraySize caps the number of rows UpdateArraySize creates.
		MaxArraySize int
	}
	Option func(r *Document)
)

func DefaultConfig() Config {
	return Config{
		Version:      DefaultVersion,
		MaxArraySize: DefaultMaxArraySize,
	}
}

func WithConfig(config Config) Option {
	return func(r *Document) {
		r.config = config
	}
}

// WithLogger sends reported errors to logger instead of the standard logrus logger.
func WithLogger(logger logrus.FieldLogger) Option {
	return func(r *Document) {
		r.logger = logger
	}
}
