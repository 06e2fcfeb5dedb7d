package common

import (
	"bytes"
	"strings"
	"sync"
)

// LogLevel 日志级别
type LogLevel int

// 日志级别,数值越大级别越高
const (
	Debug    LogLevel = 10
	Info     LogLevel = 20
	Warn     LogLevel = 30
	Error    LogLevel = 40
	Critical LogLevel = 50
)

var logLevelNames = map[LogLevel]string{
	Debug:    "debug",
	Info:     "info",
	Warn:     "warn",
	Error:    "error",
	Critical: "critical",
}

func (p LogLevel) String() string {
	if name, ok := logLevelNames[p]; ok {
		return name
	}
	return "unknown"
}

// IsValid 是否是有效的日志级别
func (p LogLevel) IsValid() bool {
	_, ok := logLevelNames[p]
	return ok
}

// ParseLogLevel 解析日志级别,不区分大小写,warning等同于warn;无法识别时返回false
func ParseLogLevel(level string) (LogLevel, bool) {
	level = strings.ToLower(strings.TrimSpace(level))
	if level == "warning" {
		return Warn, true
	}
	for l, name := range logLevelNames {
		if name == level {
			return l, true
		}
	}
	return Info, false
}

// Logger 日志接口
type Logger interface {
	Debugf(format string, params ...interface{})
	Infof(format string, params ...interface{})
	Warnf(format string, params ...interface{})
	Errorf(format string, params ...interface{})
	Criticalf(format string, params ...interface{})

	DebugEnabled() bool
	InfoEnabled() bool
	WarnEnabled() bool
	ErrorEnabled() bool

	// SetLevel 设置日志的级别
	SetLevel(level LogLevel)
	// Sync 刷新缓冲的日志
	Sync()
}

var (
	loggerMu sync.RWMutex
	logger   Logger = NewZapLogger(&LogConfig{Level: Info.String(), NoCaller: true})
)

func currentLogger() Logger {
	loggerMu.RLock()
	defer loggerMu.RUnlock()
	return logger
}

// SetLogger 替换全局的Logger
func SetLogger(l Logger) {
	if l == nil {
		return
	}
	loggerMu.Lock()
	pre := logger
	logger = l
	loggerMu.Unlock()
	pre.Sync()
}

// SetLogLevel 设置全局Logger的级别,无效的级别会被忽略
func SetLogLevel(level LogLevel) {
	if !level.IsValid() {
		return
	}
	currentLogger().SetLevel(level)
}

// SyncLogger 刷新全局Logger
func SyncLogger() {
	currentLogger().Sync()
}

// Debugf debug
func Debugf(format string, params ...interface{}) {
	currentLogger().Debugf(format, params...)
}

// Infof info
func Infof(format string, params ...interface{}) {
	currentLogger().Infof(format, params...)
}

// Warnf warn
func Warnf(format string, params ...interface{}) {
	currentLogger().Warnf(format, params...)
}

// Errorf error
func Errorf(format string, params ...interface{}) {
	currentLogger().Errorf(format, params...)
}

// Criticalf critical
func Criticalf(format string, params ...interface{}) {
	currentLogger().Criticalf(format, params...)
}

// DebugEnabled debug级别是否开启
func DebugEnabled() bool {
	return currentLogger().DebugEnabled()
}

// InfoEnabled info级别是否开启
func InfoEnabled() bool {
	return currentLogger().InfoEnabled()
}

// WarnEnabled warn级别是否开启
func WarnEnabled() bool {
	return currentLogger().WarnEnabled()
}

// ErrorEnabled error级别是否开启
func ErrorEnabled() bool {
	return currentLogger().ErrorEnabled()
}

// Logf 使用指定的级别记录日志
func Logf(level LogLevel, format string, params ...interface{}) {
	switch level {
	case Debug:
		Debugf(format, params...)
	case Info:
		Infof(format, params...)
	case Warn:
		Warnf(format, params...)
	case Error:
		Errorf(format, params...)
	case Critical:
		Criticalf(format, params...)
	default:
		Infof(format, params...)
	}
}

// LogWriter 将写入的内容按行以指定的级别输出到全局Logger,用于对接只接受io.Writer的组件
type LogWriter struct {
	Level LogLevel
}

// Write impls io.Writer
func (p *LogWriter) Write(data []byte) (int, error) {
	for _, line := range bytes.Split(bytes.TrimRight(data, "\r\n"), []byte("\n")) {
		if len(line) == 0 {
			continue
		}
		Logf(p.Level, "%s", line)
	}
	return len(data), nil
}

func initLogger(conf *LogConfig) error {
	if conf == nil {
		return nil
	}
	SetLogger(NewZapLogger(conf))
	return nil
}
