package logger

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// Category represents a log category
type Category string

const (
	CategoryAuth       Category = "auth"
	CategoryWebSocket  Category = "websocket"
	CategoryAPI        Category = "api"
	CategoryDB         Category = "db"
	CategoryRedis      Category = "redis"
	CategoryAttendance Category = "attendance"
	CategoryEnrollment Category = "enrollment"
	CategoryDevice     Category = "device"
	CategoryConfig     Category = "config"
	CategoryScheduler  Category = "scheduler"
	CategoryStartup    Category = "startup"
)

var allCategories = []Category{
	CategoryAuth, CategoryWebSocket, CategoryAPI, CategoryDB, CategoryRedis, CategoryAttendance,
	CategoryEnrollment, CategoryDevice, CategoryConfig, CategoryScheduler, CategoryStartup,
}

// Level represents log level. Values match logrus level names.
type Level string

const (
	LevelDebug Level = "debug"
	LevelInfo  Level = "info"
	LevelWarn  Level = "warning"
	LevelError Level = "error"
)

func (l Level) logrus() logrus.Level {
	switch l {
	case LevelDebug:
		return logrus.DebugLevel
	case LevelWarn:
		return logrus.WarnLevel
	case LevelError:
		return logrus.ErrorLevel
	default:
		return logrus.InfoLevel
	}
}

// LogEntry represents a structured log entry, one JSON line in a category file
type LogEntry struct {
	Timestamp time.Time              `json:"timestamp"`
	Level     Level                  `json:"level"`
	Category  Category               `json:"category"`
	Action    string                 `json:"action"`
	Message   string                 `json:"message"`
	Data      map[string]interface{} `json:"data,omitempty"`
	UserID    string                 `json:"user_id,omitempty"`
	RequestID string                 `json:"request_id,omitempty"`
	Duration  string                 `json:"duration,omitempty"`
	Error     string                 `json:"error,omitempty"`
}

// Logger writes JSON lines to one daily file per category and optionally text to the console
type Logger struct {
	mu      sync.Mutex
	logDir  string
	files   map[Category]*categoryFile
	console *logrus.Logger
	level   logrus.Level
}

type categoryFile struct {
	day    string
	file   *os.File
	logger *logrus.Logger
}

var (
	defaultLogger *Logger
	defaultMu     sync.Mutex
)

// Init initializes the default logger
func Init(logDir string, console bool) error {
	l, err := NewLogger(logDir, console)
	if err != nil {
		return err
	}
	defaultMu.Lock()
	defer defaultMu.Unlock()
	if defaultLogger != nil {
		defaultLogger.Close()
	}
	defaultLogger = l
	return nil
}

// NewLogger creates a new logger. An empty logDir disables file output.
func NewLogger(logDir string, console bool) (*Logger, error) {
	if logDir != "" {
		if err := os.MkdirAll(logDir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create log directory: %w", err)
		}
	}

	l := &Logger{
		logDir: logDir,
		files:  make(map[Category]*categoryFile),
		level:  logrus.DebugLevel,
	}
	if console {
		l.console = logrus.New()
		l.console.SetOutput(os.Stdout)
		l.console.SetLevel(logrus.DebugLevel)
		l.console.SetFormatter(&logrus.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: "15:04:05.000",
		})
	}
	return l, nil
}

// SetLevel drops entries below level
func (l *Logger) SetLevel(level Level) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.level = level.logrus()
	if l.console != nil {
		l.console.SetLevel(l.level)
	}
	for _, cf := range l.files {
		cf.logger.SetLevel(l.level)
	}
}

func newFileLogger(w io.Writer, level logrus.Level) *logrus.Logger {
	fl := logrus.New()
	fl.SetOutput(w)
	fl.SetLevel(level)
	fl.SetFormatter(&logrus.JSONFormatter{
		TimestampFormat: time.RFC3339Nano,
		FieldMap: logrus.FieldMap{
			logrus.FieldKeyTime:  "timestamp",
			logrus.FieldKeyMsg:   "message",
			logrus.FieldKeyLevel: "level",
		},
	})
	return fl
}

// fileLogger returns or creates the file logger for the category, rotating daily
func (l *Logger) fileLogger(category Category) (*logrus.Logger, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.logDir == "" {
		return nil, nil
	}

	today := time.Now().Format("2006-01-02")
	if cf, ok := l.files[category]; ok {
		if cf.day == today {
			return cf.logger, nil
		}
		cf.file.Close()
	}

	path := filepath.Join(l.logDir, fmt.Sprintf("%s_%s.log", category, today))
	file, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return nil, err
	}
	cf := &categoryFile{day: today, file: file, logger: newFileLogger(file, l.level)}
	l.files[category] = cf
	return cf.logger, nil
}

func (entry LogEntry) fields() logrus.Fields {
	fields := logrus.Fields{
		"category": entry.Category,
		"action":   entry.Action,
	}
	if len(entry.Data) > 0 {
		fields["data"] = entry.Data
	}
	if entry.UserID != "" {
		fields["user_id"] = entry.UserID
	}
	if entry.RequestID != "" {
		fields["request_id"] = entry.RequestID
	}
	if entry.Duration != "" {
		fields["duration"] = entry.Duration
	}
	if entry.Error != "" {
		fields["error"] = entry.Error
	}
	return fields
}

// Log writes a log entry
func (l *Logger) Log(entry LogEntry) {
	level := entry.Level.logrus()
	fields := entry.fields()

	fl, err := l.fileLogger(entry.Category)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error getting log writer: %v\n", err)
	} else if fl != nil {
		fl.WithFields(fields).Log(level, entry.Message)
	}

	if l.console != nil {
		l.console.WithFields(fields).Log(level, entry.Message)
	}
}

// Close closes all file writers
func (l *Logger) Close() {
	l.mu.Lock()
	defer l.mu.Unlock()

	for _, cf := range l.files {
		cf.file.Close()
	}
	l.files = make(map[Category]*categoryFile)
}

// Default returns the default logger, a console-only logger when Init was never called
func Default() *Logger {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	if defaultLogger == nil {
		defaultLogger, _ = NewLogger("", true)
	}
	return defaultLogger
}

func errString(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}

func logAt(level Level, category Category, action, message string, err error, data map[string]interface{}) {
	Default().Log(LogEntry{
		Level:    level,
		Category: category,
		Action:   action,
		Message:  message,
		Error:    errString(err),
		Data:     data,
	})
}

// Helper functions for common log operations

// Auth logs authentication related events
func Auth(action, message string, data map[string]interface{}) {
	logAt(LevelInfo, CategoryAuth, action, message, nil, data)
}

// AuthError logs authentication errors
func AuthError(action, message string, err error, data map[string]interface{}) {
	logAt(LevelError, CategoryAuth, action, message, err, data)
}

// WebSocket logs WebSocket related events
func WebSocket(action, message string, data map[string]interface{}) {
	logAt(LevelInfo, CategoryWebSocket, action, message, nil, data)
}

// API logs API request/response events
func API(action, message string, data map[string]interface{}) {
	logAt(LevelInfo, CategoryAPI, action, message, nil, data)
}

// DB logs database operations
func DB(action, message string, data map[string]interface{}) {
	logAt(LevelDebug, CategoryDB, action, message, nil, data)
}

// Attendance logs clock events
func Attendance(action, message string, data map[string]interface{}) {
	logAt(LevelInfo, CategoryAttendance, action, message, nil, data)
}

// AttendanceError logs clock event failures
func AttendanceError(action, message string, err error, data map[string]interface{}) {
	logAt(LevelError, CategoryAttendance, action, message, err, data)
}

// Enrollment logs biometric enrollment changes
func Enrollment(action, message string, data map[string]interface{}) {
	logAt(LevelInfo, CategoryEnrollment, action, message, nil, data)
}

func EnrollmentError(action, message string, err error, data map[string]interface{}) {
	logAt(LevelError, CategoryEnrollment, action, message, err, data)
}

// Device logs kiosk registry changes
func Device(action, message string, data map[string]interface{}) {
	logAt(LevelInfo, CategoryDevice, action, message, nil, data)
}

// Config logs branch configuration changes
func Config(action, message string, data map[string]interface{}) {
	logAt(LevelInfo, CategoryConfig, action, message, nil, data)
}

// Scheduler logs scheduled job runs
func Scheduler(action, message string, data map[string]interface{}) {
	logAt(LevelInfo, CategoryScheduler, action, message, nil, data)
}

func SchedulerError(action, message string, err error, data map[string]interface{}) {
	logAt(LevelError, CategoryScheduler, action, message, err, data)
}

// Startup logs startup/initialization events
func Startup(action, message string, data map[string]interface{}) {
	logAt(LevelInfo, CategoryStartup, action, message, nil, data)
}

// StartupError logs startup errors
func StartupError(action, message string, err error, data map[string]interface{}) {
	logAt(LevelError, CategoryStartup, action, message, err, data)
}

// StartupWarn logs startup warnings
func StartupWarn(action, message string, data map[string]interface{}) {
	logAt(LevelWarn, CategoryStartup, action, message, nil, data)
}

// Info logs info level message
func Info(category Category, action, message string, data map[string]interface{}) {
	logAt(LevelInfo, category, action, message, nil, data)
}

// Error logs error level message
func Error(category Category, action, message string, err error, data map[string]interface{}) {
	logAt(LevelError, category, action, message, err, data)
}

// Debug logs debug level message
func Debug(category Category, action, message string, data map[string]interface{}) {
	logAt(LevelDebug, category, action, message, nil, data)
}

// Warn logs warning level message
func Warn(category Category, action, message string, data map[string]interface{}) {
	logAt(LevelWarn, category, action, message, nil, data)
}

// ReadLogsOptions options for reading logs
type ReadLogsOptions struct {
	Category Category // Filter by category (empty = all)
	Level    Level    // Filter by level (empty = all)
	Lines    int      // Number of lines to return (default 100)
	Search   string   // Search in message/action/error
}

// ReadLogs reads today's log entries of the default logger
func ReadLogs(opts ReadLogsOptions) ([]LogEntry, error) {
	return Default().ReadLogs(opts)
}

// ReadLogs reads today's log entries from the logger's log directory, newest first
func (l *Logger) ReadLogs(opts ReadLogsOptions) ([]LogEntry, error) {
	if opts.Lines <= 0 {
		opts.Lines = 100
	}
	if opts.Lines > 1000 {
		opts.Lines = 1000 // Max limit
	}
	if l.logDir == "" {
		return []LogEntry{}, nil
	}

	entries := []LogEntry{}
	today := time.Now().Format("2006-01-02")
	search := strings.ToLower(opts.Search)

	categories := allCategories
	if opts.Category != "" {
		categories = []Category{opts.Category}
	}

	for _, cat := range categories {
		file, err := os.Open(filepath.Join(l.logDir, fmt.Sprintf("%s_%s.log", cat, today)))
		if err != nil {
			continue // Skip if file doesn't exist
		}

		scanner := bufio.NewScanner(file)
		scanner.Buffer(make([]byte, 64*1024), 1024*1024)
		for scanner.Scan() {
			var entry LogEntry
			if err := json.Unmarshal(scanner.Bytes(), &entry); err != nil {
				continue
			}
			if opts.Level != "" && entry.Level != opts.Level {
				continue
			}
			if search != "" &&
				!strings.Contains(strings.ToLower(entry.Message), search) &&
				!strings.Contains(strings.ToLower(entry.Action), search) &&
				!strings.Contains(strings.ToLower(entry.Error), search) {
				continue
			}
			entries = append(entries, entry)
		}
		file.Close()
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Timestamp.After(entries[j].Timestamp)
	})

	if len(entries) > opts.Lines {
		entries = entries[:opts.Lines]
	}
	return entries, nil
}

// GetLogDir returns the log directory path
func GetLogDir() string {
	return Default().logDir
}

// ListLogFiles returns list of log files
func ListLogFiles() ([]string, error) {
	return Default().ListLogFiles()
}

// ListLogFiles returns list of log files in the log directory
func (l *Logger) ListLogFiles() ([]string, error) {
	files := []string{}
	if l.logDir == "" {
		return files, nil
	}

	entries, err := os.ReadDir(l.logDir)
	if err != nil {
		return nil, err
	}

	for _, entry := range entries {
		if !entry.IsDir() && filepath.Ext(entry.Name()) == ".log" {
			files = append(files, entry.Name())
		}
	}
	return files, nil
}

// WebSocketError logs WebSocket errors
func WebSocketError(action, message string, err error, data map[string]interface{}) {
	logAt(LevelError, CategoryWebSocket, action, message, err, data)
}
