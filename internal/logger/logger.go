package logger

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"reflect"
	"runtime"
	"strings"
	"sync"
)

// ********************************************************
// ********* LOGGING **************************************
// ********************************************************

// DefaultLogPath is where 'f' and 'b' outputs write
const DefaultLogPath = "/tmp/livexg.log"

var (
	mu            sync.Mutex
	showDateTime  bool
	defaultLogger *Logger
	logFile       *os.File
)

type LogLevel int

const (
	colorReset   = "\033[0m"
	colorRed     = "\033[31m"
	colorGreen   = "\033[32m"
	colorYellow  = "\033[33m"
	colorBlue    = "\033[34m"
	colorMagenta = "\033[35m"
	colorCyan    = "\033[36m"
	colorOrange  = "\033[38;5;208m"
)

const (
	DEBUG LogLevel = iota
	INFO
	INFORM
	HIGHLIGHT
	WARN
	ERROR
	FATAL
)

type Logger struct {
	infoLogger  *log.Logger
	errorLogger *log.Logger
	level       LogLevel
	color       bool
}

func init() {
	// stdout carries the MCP protocol, so the default is stderr only
	defaultLogger = NewLogger(INFO, os.Stderr, os.Stderr)
}

func flags() int {
	if showDateTime {
		return log.Ldate | log.Ltime
	}
	return 0
}

func SetShowDateTime(value bool) {
	mu.Lock()
	defer mu.Unlock()
	showDateTime = value
	defaultLogger.infoLogger.SetFlags(flags())
	defaultLogger.errorLogger.SetFlags(flags())
}

// SetLevel drops every message below level
func SetLevel(level LogLevel) {
	mu.Lock()
	defer mu.Unlock()
	defaultLogger.level = level
}

// ParseLevel maps a level name such as "debug" or "WARN" to a LogLevel
func ParseLevel(name string) (LogLevel, error) {
	for l := DEBUG; l <= FATAL; l++ {
		if strings.EqualFold(l.String(), strings.TrimSpace(name)) {
			return l, nil
		}
	}
	return INFO, fmt.Errorf("unknown log level: %s", name)
}

// SetLogOutput sets the output destination for logs
// 'c' for console (stderr), 'f' for file, 'b' for both
func SetLogOutput(outputType rune) error {
	return SetLogOutputPath(outputType, DefaultLogPath)
}

// SetLogOutputPath is SetLogOutput with an explicit log file
func SetLogOutputPath(outputType rune, path string) error {
	mu.Lock()
	defer mu.Unlock()

	if logFile != nil {
		logFile.Close()
		logFile = nil
	}

	var writer io.Writer
	switch outputType {
	case 'c':
		writer = os.Stderr
	case 'f', 'b':
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return fmt.Errorf("failed to open log file: %w", err)
		}
		logFile = f
		writer = f
		if outputType == 'b' {
			writer = io.MultiWriter(os.Stderr, f)
		}
	default:
		return fmt.Errorf("invalid log output type: %c", outputType)
	}

	defaultLogger.infoLogger = log.New(writer, "", flags())
	defaultLogger.errorLogger = log.New(writer, "", flags())
	defaultLogger.color = outputType != 'f'
	return nil
}

// SetWriter sends all output to w without colour codes, mostly for tests
func SetWriter(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	defaultLogger.infoLogger = log.New(w, "", flags())
	defaultLogger.errorLogger = log.New(w, "", flags())
	defaultLogger.color = false
}

func NewLogger(level LogLevel, info, errs io.Writer) *Logger {
	return &Logger{
		infoLogger:  log.New(info, "", flags()),
		errorLogger: log.New(errs, "", flags()),
		level:       level,
		color:       true,
	}
}

func (l *Logger) log(level LogLevel, format string, v ...any) {
	mu.Lock()
	defer mu.Unlock()
	if level < l.level {
		return
	}

	_, file, line, ok := runtime.Caller(2)
	if !ok {
		file = "unknown"
		line = 0
	}
	file = filepath.Base(file)

	msg := format
	var jsonObjects []string
	if len(v) > 0 {
		var processedArgs []string
		processedArgs, jsonObjects = processArgs(v...)
		if len(processedArgs) > 0 {
			msg = format + " " + strings.Join(processedArgs, " ")
		}
	}

	colorCode, reset := "", ""
	if l.color {
		colorCode, reset = level.color(), colorReset
	}

	out := l.infoLogger
	if level >= ERROR {
		out = l.errorLogger
	}
	out.Printf("[%s] %s:%d: %s%s%s", level, file, line, colorCode, msg, reset)
	// complex objects go on their own lines
	for _, jsonObj := range jsonObjects {
		out.Printf("[%s] %s:%d: %s%s%s", level, file, line, colorCode, jsonObj, reset)
	}
}

func (l LogLevel) color() string {
	switch l {
	case DEBUG:
		return colorBlue
	case INFO:
		return colorGreen
	case INFORM:
		return colorMagenta
	case HIGHLIGHT:
		return colorCyan
	case WARN:
		return colorYellow
	case ERROR:
		return colorOrange
	case FATAL:
		return colorRed
	default:
		return colorReset
	}
}

func (l LogLevel) String() string {
	switch l {
	case DEBUG:
		return "DEBUG"
	case INFO:
		return "INFO"
	case INFORM:
		return "INFORM"
	case HIGHLIGHT:
		return "HIGHLIGHT"
	case WARN:
		return "WARN"
	case ERROR:
		return "ERROR"
	case FATAL:
		return "FATAL"
	default:
		return "UNKNOWN"
	}
}

// processArgs returns printable forms of primitive arguments and indented JSON
// for everything else, which is replaced by a placeholder in the first slice
func processArgs(args ...any) ([]string, []string) {
	var primitives []string
	var jsonObjects []string

	for _, arg := range args {
		if isPrimitive(arg) {
			primitives = append(primitives, formatPrimitive(arg))
			continue
		}
		jsonBytes, err := json.MarshalIndent(arg, "", "  ")
		if err != nil {
			primitives = append(primitives, fmt.Sprintf("%v", arg))
			continue
		}
		primitives = append(primitives, fmt.Sprintf("[Object of type %s]", reflect.TypeOf(arg)))
		jsonObjects = append(jsonObjects, string(jsonBytes))
	}
	return primitives, jsonObjects
}

func formatPrimitive(arg any) string {
	switch v := arg.(type) {
	case float32:
		return fmt.Sprintf("%.3f", v)
	case float64:
		return fmt.Sprintf("%.3f", v)
	case string:
		return v
	case error:
		return v.Error()
	case nil:
		return "nil"
	default:
		return fmt.Sprintf("%v", v)
	}
}

func isPrimitive(v any) bool {
	if v == nil {
		return true
	}
	switch v.(type) {
	case string, bool, int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64, float32, float64, error:
		return true
	default:
		return false
	}
}

// Convenience methods using the default logger
func Debug(format string, v ...any) {
	defaultLogger.log(DEBUG, format, v...)
}

func Info(format string, v ...any) {
	defaultLogger.log(INFO, format, v...)
}

func Inform(format string, v ...any) {
	defaultLogger.log(INFORM, format, v...)
}

func Highlight(format string, v ...any) {
	defaultLogger.log(HIGHLIGHT, format, v...)
}

func Warn(format string, v ...any) {
	defaultLogger.log(WARN, format, v...)
}

func Error(format string, v ...any) {
	defaultLogger.log(ERROR, format, v...)
}

func Fatal(format string, v ...any) {
	defaultLogger.log(FATAL, format, v...)
	os.Exit(1)
}
