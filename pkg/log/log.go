package log

import (
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"time"

	formatter "github.com/antonfisher/nested-logrus-formatter"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

const defaultLogDir = "./storage/logs"

var (
	logger *logrus.Logger
	once   sync.Once
)

type Fields = logrus.Fields

// NewLogger builds the process-wide logger on first use. LOG_LEVEL picks the
// level (debug when unset or invalid); outside APP_ENV=test entries are also
// written to a daily rotated file under LOG_DIR.
func NewLogger() *logrus.Logger {
	once.Do(func() {
		logger = logrus.New()

		level, err := logrus.ParseLevel(os.Getenv("LOG_LEVEL"))
		if err != nil {
			level = logrus.DebugLevel
		}
		logger.SetLevel(level)

		logger.SetFormatter(&formatter.Formatter{
			TimestampFormat: "02 Jan 06 - 15:04:05",
			CallerFirst:     true,
			CustomCallerFormatter: func(f *runtime.Frame) string {
				s := strings.Split(f.Function, ".")
				return fmt.Sprintf(" \x1b[34m[%s:%d][%s()]", path.Base(f.File), f.Line, s[len(s)-1])
			},
		})

		logger.SetOutput(io.MultiWriter(writers()...))
		logger.SetReportCaller(true)
	})

	return logger
}

func writers() []io.Writer {
	out := []io.Writer{os.Stderr}
	if os.Getenv("APP_ENV") == "test" {
		return out
	}

	dir := os.Getenv("LOG_DIR")
	if dir == "" {
		dir = defaultLogDir
	}

	return append(out, &lumberjack.Logger{
		Filename:   filepath.Join(dir, fmt.Sprintf("chatbot-%s.log", time.Now().Format("2006-01-02"))),
		LocalTime:  true,
		Compress:   true,
		MaxSize:    100,
		MaxAge:     7,
		MaxBackups: 3,
	})
}

func entry(fields Fields) *logrus.Entry {
	if fields == nil {
		fields = Fields{}
	}
	return NewLogger().WithFields(fields)
}

func Info(fields Fields, msg string) {
	entry(fields).Info(msg)
}

func Warn(fields Fields, msg string) {
	entry(fields).Warn(msg)
}

func Error(fields Fields, msg string) {
	entry(fields).Error(msg)
}

// ErrorWithTraceID logs msg at error level tagged with a trace id and
// returns it. The request id is reused as trace id when present.
func ErrorWithTraceID(fields Fields, msg string) string {
	if fields == nil {
		fields = Fields{}
	}

	traceID, _ := fields["request_id"].(string)
	if traceID == "" || traceID == "unknown" {
		id, err := uuid.NewRandom()
		if err != nil {
			Error(Fields{"error": err.Error()}, "[log.ErrorWithTraceID] failed to generate trace ID")
			id = uuid.Nil
		}
		traceID = id.String()
	}

	fields["trace_id"] = traceID
	entry(fields).Error(msg)

	return traceID
}
