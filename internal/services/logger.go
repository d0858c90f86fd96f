package services

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"sync"
	"time"

	"gopkg.in/natefinch/lumberjack.v2"
)

// Logger defines common logging interface for all services
type Logger interface {
	Info(msg string, keysAndValues ...interface{})
	Error(msg string, keysAndValues ...interface{})
	Debug(msg string, keysAndValues ...interface{})
	Warn(msg string, keysAndValues ...interface{})
}

// LogLevel represents different logging levels
type LogLevel int

const (
	LogLevelDebug LogLevel = iota
	LogLevelInfo
	LogLevelWarn
	LogLevelError
)

func (l LogLevel) String() string {
	switch l {
	case LogLevelDebug:
		return "DEBUG"
	case LogLevelInfo:
		return "INFO"
	case LogLevelWarn:
		return "WARN"
	case LogLevelError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// ParseLogLevel maps LOG_LEVEL values to a level, defaulting to INFO.
func ParseLogLevel(s string) LogLevel {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "DEBUG":
		return LogLevelDebug
	case "WARN", "WARNING":
		return LogLevelWarn
	case "ERROR":
		return LogLevelError
	default:
		return LogLevelInfo
	}
}

// ProductionLogger is a structured logger for production use
type ProductionLogger struct {
	logger     *log.Logger
	level      LogLevel
	service    string
	structured bool
}

// NewProductionLogger creates a production-ready logger writing to stdout
func NewProductionLogger(service string) *ProductionLogger {
	return NewProductionLoggerWithWriter(service, os.Stdout)
}

// NewProductionLoggerWithWriter creates a logger writing to w
func NewProductionLoggerWithWriter(service string, w io.Writer) *ProductionLogger {
	return &ProductionLogger{
		logger:     log.New(w, "", 0),
		level:      LogLevelInfo,
		service:    service,
		structured: true,
	}
}

// SetLevel updates the logging level
func (p *ProductionLogger) SetLevel(level LogLevel) {
	p.level = level
}

// SetStructured enables/disables structured JSON logging
func (p *ProductionLogger) SetStructured(structured bool) {
	p.structured = structured
}

// With returns a logger sharing the output but reporting another service name.
func (p *ProductionLogger) With(service string) *ProductionLogger {
	clone := *p
	clone.service = service
	return &clone
}

func (p *ProductionLogger) Info(msg string, keysAndValues ...interface{}) {
	if p.level > LogLevelInfo {
		return
	}
	p.log(LogLevelInfo, msg, keysAndValues...)
}

func (p *ProductionLogger) Error(msg string, keysAndValues ...interface{}) {
	p.log(LogLevelError, msg, keysAndValues...)
}

func (p *ProductionLogger) Debug(msg string, keysAndValues ...interface{}) {
	if p.level > LogLevelDebug {
		return
	}
	p.log(LogLevelDebug, msg, keysAndValues...)
}

func (p *ProductionLogger) Warn(msg string, keysAndValues ...interface{}) {
	if p.level > LogLevelWarn {
		return
	}
	p.log(LogLevelWarn, msg, keysAndValues...)
}

func (p *ProductionLogger) log(level LogLevel, msg string, keysAndValues ...interface{}) {
	timestamp := time.Now().UTC().Format(time.RFC3339)

	if p.structured {
		logEntry := map[string]interface{}{
			"timestamp": timestamp,
			"level":     level.String(),
			"service":   p.service,
			"message":   msg,
		}

		if len(keysAndValues) > 0 {
			fields := make(map[string]interface{})
			for i := 0; i < len(keysAndValues)-1; i += 2 {
				if key, ok := keysAndValues[i].(string); ok {
					fields[key] = fieldValue(keysAndValues[i+1])
				}
			}
			if len(fields) > 0 {
				logEntry["fields"] = fields
			}
		}

		jsonBytes, _ := json.Marshal(logEntry)
		p.logger.Println(string(jsonBytes))
		return
	}

	var kvStr strings.Builder
	for i := 0; i < len(keysAndValues)-1; i += 2 {
		kvStr.WriteString(fmt.Sprintf(" %v=%v", keysAndValues[i], keysAndValues[i+1]))
	}
	p.logger.Printf("[%s] %s [%s] %s%s",
		timestamp, level.String(), p.service, msg, kvStr.String())
}

// errors marshal to {} in JSON, so log their text instead
func fieldValue(v interface{}) interface{} {
	switch t := v.(type) {
	case error:
		return t.Error()
	case time.Duration:
		return t.String()
	case fmt.Stringer:
		return t.String()
	default:
		return v
	}
}

// NoOpLogger is a logger that does nothing (for testing)
type NoOpLogger struct{}

func (n *NoOpLogger) Info(msg string, keysAndValues ...interface{})  {}
func (n *NoOpLogger) Error(msg string, keysAndValues ...interface{}) {}
func (n *NoOpLogger) Debug(msg string, keysAndValues ...interface{}) {}
func (n *NoOpLogger) Warn(msg string, keysAndValues ...interface{})  {}

// LogOptions configures the process logger.
type LogOptions struct {
	Service     string
	Level       string
	Environment string
	File        string // rotated log file, stdout only when empty
	MaxSizeMB   int
	MaxBackups  int
	MaxAgeDays  int
}

var (
	logFileMu sync.Mutex
	logFile   *lumberjack.Logger
)

// NewLoggerWithOptions builds the process logger. When File is set, output goes
// to stdout and to a size-rotated file.
func NewLoggerWithOptions(opts LogOptions) Logger {
	if opts.Environment == "test" {
		return &NoOpLogger{}
	}

	var out io.Writer = os.Stdout
	if opts.File != "" {
		logFileMu.Lock()
		if logFile == nil {
			logFile = &lumberjack.Logger{
				Filename:   opts.File,
				MaxSize:    opts.MaxSizeMB,
				MaxBackups: opts.MaxBackups,
				MaxAge:     opts.MaxAgeDays,
				LocalTime:  true,
			}
		}
		out = io.MultiWriter(os.Stdout, logFile)
		logFileMu.Unlock()
	}

	logger := NewProductionLoggerWithWriter(opts.Service, out)
	logger.SetLevel(ParseLogLevel(opts.Level))
	logger.SetStructured(opts.Environment == "production")
	return logger
}

// CloseLogFile flushes and closes the rotated log file, if any.
func CloseLogFile() error {
	logFileMu.Lock()
	defer logFileMu.Unlock()
	if logFile == nil {
		return nil
	}
	err := logFile.Close()
	logFile = nil
	return err
}

// NewLogger builds a logger from GO_ENV, LOG_LEVEL and LOG_FILE.
func NewLogger(service string) Logger {
	env := os.Getenv("GO_ENV")
	if env == "" {
		env = os.Getenv("ENV")
	}
	return NewLoggerWithOptions(LogOptions{
		Service:     service,
		Level:       os.Getenv("LOG_LEVEL"),
		Environment: env,
		File:        os.Getenv("LOG_FILE"),
		MaxSizeMB:   50,
		MaxBackups:  5,
		MaxAgeDays:  28,
	})
}
