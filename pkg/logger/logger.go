// Package logger предоставляет единый интерфейс логирования сервиса
// с реализациями поверх log/slog и zap.
package logger

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

const (
	DriverSlog = "slog"
	DriverZap  = "zap"
)

// Logger — интерфейс логгера, используемый во всех слоях приложения.
type Logger interface {
	Debugf(format string, args ...any)
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
	Errorf(err error, format string, args ...any)
}

// Options описывает параметры создания логгера.
type Options struct {
	Driver string // slog | zap
	Level  string // debug | info | warn | error
	File   string // если задан, логи пишутся в файл с ротацией
}

// New создаёт логгер по опциям. Неизвестный драйвер трактуется как slog.
func New(opts Options) Logger {
	w := output(opts.File)

	switch strings.ToLower(opts.Driver) {
	case DriverZap:
		return NewZapLogger(w, zapLevel(opts.Level))
	default:
		return NewSlogLoggerWithWriter(w, slogLevel(opts.Level))
	}
}

// output возвращает writer для логов: stdout или файл с ротацией через lumberjack.
func output(file string) io.Writer {
	if file == "" {
		return os.Stdout
	}

	return &lumberjack.Logger{
		Filename:   file,
		MaxSize:    100, // MB
		MaxBackups: 5,
		MaxAge:     30, // дней
		Compress:   true,
	}
}

type slogLogger struct {
	l *slog.Logger
}

// NewSlogLogger создаёт текстовый slog-логгер в stdout с уровнем info.
func NewSlogLogger() Logger {
	return NewSlogLoggerWithWriter(os.Stdout, slog.LevelInfo)
}

func NewSlogLoggerWithWriter(w io.Writer, level slog.Level) Logger {
	return &slogLogger{
		l: slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})),
	}
}

func (s *slogLogger) Debugf(format string, args ...any) {
	s.l.Debug(fmt.Sprintf(format, args...))
}

func (s *slogLogger) Infof(format string, args ...any) {
	s.l.Info(fmt.Sprintf(format, args...))
}

func (s *slogLogger) Warnf(format string, args ...any) {
	s.l.Warn(fmt.Sprintf(format, args...))
}

func (s *slogLogger) Errorf(err error, format string, args ...any) {
	s.l.Error(fmt.Sprintf(format, args...), slog.Any("error", err))
}

type zapLogger struct {
	l *zap.SugaredLogger
}

// NewZapLogger создаёт JSON-логгер на базе zap.
func NewZapLogger(w io.Writer, level zapcore.Level) Logger {
	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()),
		zapcore.AddSync(w),
		level,
	)

	return &zapLogger{l: zap.New(core).Sugar()}
}

func (z *zapLogger) Debugf(format string, args ...any) {
	z.l.Debugf(format, args...)
}

func (z *zapLogger) Infof(format string, args ...any) {
	z.l.Infof(format, args...)
}

func (z *zapLogger) Warnf(format string, args ...any) {
	z.l.Warnf(format, args...)
}

func (z *zapLogger) Errorf(err error, format string, args ...any) {
	z.l.Errorw(fmt.Sprintf(format, args...), "error", err)
}

type nopLogger struct{}

// NewNopLogger возвращает логгер, который ничего не пишет. Используется в тестах.
func NewNopLogger() Logger {
	return nopLogger{}
}

func (nopLogger) Debugf(string, ...any)        {}
func (nopLogger) Infof(string, ...any)         {}
func (nopLogger) Warnf(string, ...any)         {}
func (nopLogger) Errorf(error, string, ...any) {}

func slogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func zapLevel(level string) zapcore.Level {
	switch strings.ToLower(level) {
	case "debug":
		return zapcore.DebugLevel
	case "warn":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}
