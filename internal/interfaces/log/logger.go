// Package log
package log

import "github.com/half-nothing/smallcraft-designer/internal/interfaces/global"

// LoggerInterface 日志接口, F后缀的方法按fmt格式化参数, 其余方法将参数作为slog键值对
type LoggerInterface interface {
	// Init 初始化日志输出, logFile非空时同时写入该文件
	Init(debug bool, logFile string) error
	ShutdownCallback() global.Callable
	Debug(msg string, v ...interface{})
	DebugF(msg string, v ...interface{})
	Info(msg string, v ...interface{})
	InfoF(msg string, v ...interface{})
	Warn(msg string, v ...interface{})
	WarnF(msg string, v ...interface{})
	Error(msg string, v ...interface{})
	ErrorF(msg string, v ...interface{})
	Fatal(msg string, v ...interface{})
	FatalF(msg string, v ...interface{})
}
