package logger

import (
	"bytes"
	"io"
	"regexp"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// ZapLogger оборачивает zap и дополнительно копит вывод в буфере,
// чтобы веб-демо могло показать логи рядом с диаграммой.
type ZapLogger struct {
	log    *zap.Logger
	logBuf *syncBuffer
	Logs   []string
}

// syncBuffer guards the buffer against concurrent writers and readers.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func (b *syncBuffer) Reset() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.buf.Reset()
}

type options struct {
	level    zapcore.Level
	writer   io.Writer
	buffered bool
}

// Option configures New.
type Option func(*options)

// WithLevel sets the minimal enabled level (debug by default).
func WithLevel(level zapcore.Level) Option {
	return func(o *options) { o.level = level }
}

// WithWriter tees every entry to w in addition to the buffer.
func WithWriter(w io.Writer) Option {
	return func(o *options) { o.writer = w }
}

// WithBuffer enables or disables the in-memory HTML log buffer.
func WithBuffer(enabled bool) Option {
	return func(o *options) { o.buffered = enabled }
}

func New(opts ...Option) *ZapLogger {
	o := options{level: zap.DebugLevel, buffered: true}
	for _, opt := range opts {
		opt(&o)
	}

	config := zapcore.EncoderConfig{
		TimeKey:        "time",
		LevelKey:       "level",
		NameKey:        "logger",
		CallerKey:      "caller",
		MessageKey:     "msg",
		StacktraceKey:  "stacktrace",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    colorLevelEncoder,
		EncodeTime:     customTimeEncoder,
		EncodeDuration: zapcore.StringDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
		EncodeName:     zapcore.FullNameEncoder,
	}

	encoder := zapcore.NewConsoleEncoder(config)

	z := &ZapLogger{}

	var cores []zapcore.Core
	if o.buffered {
		z.logBuf = &syncBuffer{}
		cores = append(cores, zapcore.NewCore(encoder, zapcore.AddSync(z.logBuf), o.level))
	}
	if o.writer != nil {
		cores = append(cores, zapcore.NewCore(encoder, zapcore.AddSync(o.writer), o.level))
	}

	z.log = zap.New(zapcore.NewTee(cores...), zap.AddCaller(), zap.AddCallerSkip(1), zap.AddStacktrace(zapcore.ErrorLevel))
	return z
}

// NewNop returns a logger that drops everything.
func NewNop() *ZapLogger {
	return &ZapLogger{log: zap.NewNop()}
}

// Named returns a child logger sharing the buffer of z.
func (z *ZapLogger) Named(name string) *ZapLogger {
	return &ZapLogger{
		log:    z.log.Named(name),
		logBuf: z.logBuf,
	}
}

func customTimeEncoder(t time.Time, enc zapcore.PrimitiveArrayEncoder) {
	enc.AppendString(t.Format("[2006-01-02 | 15:04:05]"))
}

func colorLevelEncoder(level zapcore.Level, enc zapcore.PrimitiveArrayEncoder) {
	var colorCode string
	switch level {
	case zapcore.DebugLevel:
		colorCode = "\033[36m" // Cyan
	case zapcore.InfoLevel:
		colorCode = "\033[32m" // Green
	case zapcore.WarnLevel:
		colorCode = "\033[33m" // Yellow
	case zapcore.ErrorLevel:
		colorCode = "\033[31m" // Red
	default:
		colorCode = "\033[0m" // Default
	}
	enc.AppendString(colorCode + level.String() + "\033[0m")
}

var ansiPattern = regexp.MustCompile(`\033\[(\d+)m`)

// Converts ANSI color codes to HTML span with inline styles
func ansiToHTML(input string) string {
	var result strings.Builder
	var lastIndex int
	open := false

	result.WriteString("<pre>")

	for _, match := range ansiPattern.FindAllStringIndex(input, -1) {
		start, end := match[0], match[1]

		if start > lastIndex {
			result.WriteString(input[lastIndex:start])
		}

		colorCode := input[start+2 : end-1]
		if color, ok := colorMap[colorCode]; ok {
			if open {
				result.WriteString("</span>")
			}
			result.WriteString(`<span style="color: ` + color + `;">`)
			open = true
		} else if colorCode == "0" && open {
			result.WriteString("</span>")
			open = false
		}

		lastIndex = end
	}

	if lastIndex < len(input) {
		result.WriteString(input[lastIndex:])
	}
	if open {
		result.WriteString("</span>")
	}

	result.WriteString("</pre>")
	return result.String()
}

// Color mapping for ANSI codes
var colorMap = map[string]string{
	"31": "red",
	"32": "green",
	"33": "yellow",
	"34": "blue",
	"36": "cyan",
}

// UpdateLogs refreshes Logs from the buffer.
func (z *ZapLogger) UpdateLogs() {
	if z.logBuf == nil {
		return
	}
	z.Logs = []string{ansiToHTML(z.logBuf.String())}
}

// HTML returns the buffered log as HTML markup.
func (z *ZapLogger) HTML() string {
	if z.logBuf == nil {
		return ""
	}
	return ansiToHTML(z.logBuf.String())
}

func (z *ZapLogger) ClearLogs() {
	if z.logBuf != nil {
		z.logBuf.Reset()
	}
	z.Logs = nil
}

func (z *ZapLogger) Info(wrappedMsg string, fields ...zap.Field) {
	z.log.Info(wrappedMsg, fields...)
}

func (z *ZapLogger) Debug(wrappedMsg string, fields ...zap.Field) {
	z.log.Debug(wrappedMsg, fields...)
}

func (z *ZapLogger) Warn(wrappedMsg string, fields ...zap.Field) {
	z.log.Warn(wrappedMsg, fields...)
}

func (z *ZapLogger) Error(wrappedMsg string, fields ...zap.Field) {
	z.log.Error(wrappedMsg, fields...)
}

func (z *ZapLogger) Sync() error {
	return z.log.Sync()
}
