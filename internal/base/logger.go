// Package base
package base

import (
	"context"
	"fmt"
	"github.com/fatih/color"
	"github.com/half-nothing/smallcraft-designer/internal/interfaces/global"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
)

const LevelFatal = slog.Level(12)

var levelColors = map[slog.Level]*color.Color{
	slog.LevelDebug: color.New(color.FgHiBlack),
	slog.LevelInfo:  color.New(color.FgGreen),
	slog.LevelWarn:  color.New(color.FgYellow),
	slog.LevelError: color.New(color.FgRed),
	LevelFatal:      color.New(color.FgHiRed, color.Bold),
}

func levelName(level slog.Level) string {
	if level >= LevelFatal {
		return "FATAL"
	}
	return level.String()
}

// fanoutHandler 将同一条记录分发给控制台与日志文件
type fanoutHandler []slog.Handler

func (handlers fanoutHandler) Enabled(ctx context.Context, level slog.Level) bool {
	for _, handler := range handlers {
		if handler.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

func (handlers fanoutHandler) Handle(ctx context.Context, record slog.Record) error {
	var firstErr error
	for _, handler := range handlers {
		if !handler.Enabled(ctx, record.Level) {
			continue
		}
		if err := handler.Handle(ctx, record.Clone()); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

func (handlers fanoutHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	result := make(fanoutHandler, len(handlers))
	for i, handler := range handlers {
		result[i] = handler.WithAttrs(attrs)
	}
	return result
}

func (handlers fanoutHandler) WithGroup(name string) slog.Handler {
	result := make(fanoutHandler, len(handlers))
	for i, handler := range handlers {
		result[i] = handler.WithGroup(name)
	}
	return result
}

func newTextHandler(writer io.Writer, level slog.Level, colored bool) slog.Handler {
	return slog.NewTextHandler(writer, &slog.HandlerOptions{
		Level: level,
		ReplaceAttr: func(groups []string, attr slog.Attr) slog.Attr {
			if len(groups) > 0 || attr.Key != slog.LevelKey {
				return attr
			}
			level, ok := attr.Value.Any().(slog.Level)
			if !ok {
				return attr
			}
			name := levelName(level)
			if colored {
				if c, exists := levelColors[level]; exists {
					name = c.Sprint(name)
				}
			}
			return slog.String(slog.LevelKey, name)
		},
	})
}

type Logger struct {
	logger  *slog.Logger
	logFile *os.File
	mu      sync.Mutex
}

func NewLogger() *Logger {
	return &Logger{logger: slog.Default()}
}

func (l *Logger) Init(debug bool, logFile string) error {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}

	handlers := fanoutHandler{newTextHandler(color.Output, level, !color.NoColor)}

	if logFile != "" {
		if err := os.MkdirAll(filepath.Dir(logFile), global.DefaultDirectoryPermission); err != nil {
			return fmt.Errorf("create log directory: %w", err)
		}
		file, err := os.OpenFile(logFile, os.O_WRONLY|os.O_CREATE|os.O_APPEND, global.DefaultFilePermissions)
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		l.mu.Lock()
		l.logFile = file
		l.mu.Unlock()
		handlers = append(handlers, newTextHandler(file, level, false))
	}

	l.logger = slog.New(handlers)
	slog.SetDefault(l.logger)
	return nil
}

type LoggerShutdownCallback struct {
	logger *Logger
}

func (callback *LoggerShutdownCallback) Invoke(_ context.Context) error {
	callback.logger.mu.Lock()
	defer callback.logger.mu.Unlock()
	if callback.logger.logFile == nil {
		return nil
	}
	err := callback.logger.logFile.Close()
	callback.logger.logFile = nil
	return err
}

func (l *Logger) ShutdownCallback() global.Callable {
	return &LoggerShutdownCallback{logger: l}
}

func (l *Logger) log(level slog.Level, msg string, v ...interface{}) {
	l.logger.Log(context.Background(), level, msg, v...)
}

func (l *Logger) logf(level slog.Level, format string, v ...interface{}) {
	if !l.logger.Enabled(context.Background(), level) {
		return
	}
	l.logger.Log(context.Background(), level, fmt.Sprintf(format, v...))
}

func (l *Logger) Debug(msg string, v ...interface{})  { l.log(slog.LevelDebug, msg, v...) }
func (l *Logger) DebugF(msg string, v ...interface{}) { l.logf(slog.LevelDebug, msg, v...) }
func (l *Logger) Info(msg string, v ...interface{})   { l.log(slog.LevelInfo, msg, v...) }
func (l *Logger) InfoF(msg string, v ...interface{})  { l.logf(slog.LevelInfo, msg, v...) }
func (l *Logger) Warn(msg string, v ...interface{})   { l.log(slog.LevelWarn, msg, v...) }
func (l *Logger) WarnF(msg string, v ...interface{})  { l.logf(slog.LevelWarn, msg, v...) }
func (l *Logger) Error(msg string, v ...interface{})  { l.log(slog.LevelError, msg, v...) }
func (l *Logger) ErrorF(msg string, v ...interface{}) { l.logf(slog.LevelError, msg, v...) }
func (l *Logger) Fatal(msg string, v ...interface{})  { l.log(LevelFatal, msg, v...) }
func (l *Logger) FatalF(msg string, v ...interface{}) { l.logf(LevelFatal, msg, v...) }
