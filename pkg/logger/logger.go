package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"

	"newsblog/pkg/config"
)

const timestampFormat = "2006-01-02 15:04:05"

// Logger wraps logrus with additional functionality
type Logger struct {
	*logrus.Logger
	fields logrus.Fields
	closer io.Closer
}

// NewLogger creates a logger from the logging configuration. Output goes to
// stdout and, when a file is configured, to a rotated log file as well.
func NewLogger(cfg config.LoggingConfig) *Logger {
	var out io.Writer = os.Stdout
	var closer io.Closer

	if cfg.File != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.File), 0755); err != nil {
			fmt.Printf("Failed to create log directory: %v\n", err)
		} else {
			fileLogger := &lumberjack.Logger{
				Filename:   cfg.File,
				MaxSize:    cfg.MaxSize, // MB
				MaxBackups: cfg.MaxBackups,
				MaxAge:     cfg.MaxAge, // days
				Compress:   cfg.Compress,
			}
			out = io.MultiWriter(os.Stdout, fileLogger)
			closer = fileLogger
		}
	}

	l := NewWithWriter(cfg.Level, out)
	l.SetFormatter(cfg.Format)
	l.closer = closer
	return l
}

// NewWithWriter creates a text logger writing to w
func NewWithWriter(level string, w io.Writer) *Logger {
	log := logrus.New()
	log.SetOutput(w)

	logLevel, err := logrus.ParseLevel(level)
	if err != nil {
		logLevel = logrus.InfoLevel
	}
	log.SetLevel(logLevel)

	l := &Logger{Logger: log, fields: make(logrus.Fields)}
	l.SetFormatter("text")
	return l
}

// Discard returns a logger that drops everything
func Discard() *Logger {
	return NewWithWriter("panic", io.Discard)
}

// WithField adds a field to the logger context
func (l *Logger) WithField(key string, value interface{}) *Logger {
	return l.WithFields(map[string]interface{}{key: value})
}

// WithFields adds multiple fields to the logger context
func (l *Logger) WithFields(fields map[string]interface{}) *Logger {
	newFields := make(logrus.Fields, len(l.fields)+len(fields))
	for k, v := range l.fields {
		newFields[k] = v
	}
	for k, v := range fields {
		newFields[k] = v
	}

	return &Logger{
		Logger: l.Logger,
		fields: newFields,
		closer: l.closer,
	}
}

// WithComponent adds a component field to the logger
func (l *Logger) WithComponent(component string) *Logger {
	return l.WithField("component", component)
}

// WithError attaches err under the "error" key
func (l *Logger) WithError(err error) *Logger {
	return l.WithField(logrus.ErrorKey, err)
}

// Debug logs a debug message
func (l *Logger) Debug(msg string, args ...interface{}) {
	l.log(logrus.DebugLevel, msg, args)
}

// Info logs an info message. args are either key-value pairs or printf
// arguments for msg.
func (l *Logger) Info(msg string, args ...interface{}) {
	l.log(logrus.InfoLevel, msg, args)
}

// Warning logs a warning message
func (l *Logger) Warning(msg string, args ...interface{}) {
	l.log(logrus.WarnLevel, msg, args)
}

// Error logs an error message
func (l *Logger) Error(msg string, args ...interface{}) {
	l.log(logrus.ErrorLevel, msg, args)
}

// Fatal logs a fatal message and exits
func (l *Logger) Fatal(msg string, args ...interface{}) {
	entry := l.Logger.WithFields(l.fields)
	if len(args) > 0 {
		entry.Fatalf(msg, args...)
	} else {
		entry.Fatal(msg)
	}
}

func (l *Logger) log(level logrus.Level, msg string, args []interface{}) {
	entry := l.Logger.WithFields(l.fields)
	if len(args) == 0 {
		entry.Log(level, msg)
		return
	}

	if fields, ok := keyValues(args); ok {
		entry.WithFields(fields).Log(level, msg)
		return
	}
	entry.Logf(level, msg, args...)
}

// keyValues turns alternating string keys and values into fields
func keyValues(args []interface{}) (logrus.Fields, bool) {
	if len(args)%2 != 0 {
		return nil, false
	}
	fields := make(logrus.Fields, len(args)/2)
	for i := 0; i < len(args); i += 2 {
		key, ok := args[i].(string)
		if !ok {
			return nil, false
		}
		fields[key] = args[i+1]
	}
	return fields, true
}

// SecurityLogger logs security-related events such as rejected tokens or
// failed logins
func (l *Logger) SecurityLogger(event string, userID int64, details string) {
	l.WithFields(map[string]interface{}{
		"event_type": "security",
		"event":      event,
		"user_id":    userID,
		"details":    details,
		"timestamp":  time.Now().Unix(),
	}).Warning("Security event logged")
}

// AuditLogger logs audit events
func (l *Logger) AuditLogger(action string, userID int64, resource, details string) {
	l.WithFields(map[string]interface{}{
		"event_type": "audit",
		"action":     action,
		"user_id":    userID,
		"resource":   resource,
		"details":    details,
		"timestamp":  time.Now().Unix(),
	}).Info("Audit event logged")
}

// SetLogLevel dynamically sets the log level
func (l *Logger) SetLogLevel(level string) error {
	logLevel, err := logrus.ParseLevel(level)
	if err != nil {
		return err
	}
	l.Logger.SetLevel(logLevel)
	return nil
}

// SetFormatter sets the log formatter
func (l *Logger) SetFormatter(format string) {
	switch format {
	case "json":
		l.Logger.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat: timestampFormat,
		})
	default:
		l.Logger.SetFormatter(&logrus.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: timestampFormat,
		})
	}
}

// Close closes the rotated log file, if any
func (l *Logger) Close() error {
	if l.closer == nil {
		return nil
	}
	return l.closer.Close()
}
