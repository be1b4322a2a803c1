package config

import (
	"os"
	"testing"

	"github.com/koanlabs/echod/src/common"
	"github.com/rifflock/lfshook"
	"github.com/sirupsen/logrus"
	prefixed "github.com/x-cray/logrus-prefixed-formatter"
)

// Transport names accepted by the Transport option.
const (
	StdioTransport = "stdio"
	TCPTransport   = "tcp"
)

// Default configuration values.
const (
	DefaultLogLevel  = "debug"
	DefaultTransport = StdioTransport
	DefaultBindAddr  = "127.0.0.1:8080"
)

// Config contains all the configuration properties of an echod node.
type Config struct {
	// Transport selects the byte-stream provider for the session: "stdio"
	// serves the node over the process's standard input and output, "tcp"
	// serves it over a single connection accepted on BindAddr.
	Transport string `mapstructure:"transport"`

	// BindAddr is the local address:port the TCP transport listens on. It is
	// ignored when Transport is "stdio".
	BindAddr string `mapstructure:"listen"`

	// LogLevel determines the chattiness of the log output.
	LogLevel string `mapstructure:"log"`

	// LogFile is an optional path; when set, log entries of every level are
	// also written to that file.
	LogFile string `mapstructure:"log-file"`

	logger *logrus.Logger
}

// NewDefaultConfig returns a config object with default values.
func NewDefaultConfig() *Config {
	return &Config{
		Transport: DefaultTransport,
		BindAddr:  DefaultBindAddr,
		LogLevel:  DefaultLogLevel,
	}
}

// NewTestConfig returns a config object with default values and a special
// logger for debugging tests.
func NewTestConfig(t testing.TB, level logrus.Level) *Config {
	config := NewDefaultConfig()
	config.logger = common.NewTestLogger(t, level)
	return config
}

// Logger returns a formatted logrus Entry, with prefix set to "echod". Log
// output goes to stderr because stdout may carry protocol traffic when the
// stdio transport is active.
func (c *Config) Logger() *logrus.Entry {
	if c.logger == nil {
		c.logger = logrus.New()
		c.logger.Level = LogLevel(c.LogLevel)
		c.logger.Out = os.Stderr
		c.logger.Formatter = new(prefixed.TextFormatter)

		if c.LogFile != "" {
			pathMap := lfshook.PathMap{}
			for _, level := range logrus.AllLevels {
				pathMap[level] = c.LogFile
			}
			c.logger.Hooks.Add(lfshook.NewHook(pathMap, &logrus.TextFormatter{}))
		}
	}
	return c.logger.WithField("prefix", "echod")
}

// LogLevel parses a string into a Logrus log level.
func LogLevel(l string) logrus.Level {
	switch l {
	case "debug":
		return logrus.DebugLevel
	case "info":
		return logrus.InfoLevel
	case "warn":
		return logrus.WarnLevel
	case "error":
		return logrus.ErrorLevel
	case "fatal":
		return logrus.FatalLevel
	case "panic":
		return logrus.PanicLevel
	default:
		return logrus.DebugLevel
	}
}
