package log

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/pkgerrors"

	"github.com/kochabx/keysort/core/tag"
	"github.com/kochabx/keysort/log/writer"
)

// Logger 日志记录器
type Logger struct {
	zerolog.Logger
	writer io.Writer
	closer io.Closer // 用于资源清理
}

// Close 关闭日志记录器，释放资源
func (l *Logger) Close() error {
	if l.closer != nil {
		return l.closer.Close()
	}
	return nil
}

// WithField 返回附加了字段 key=value 的子 Logger，共享同一 writer
func (l *Logger) WithField(key, value string) *Logger {
	return &Logger{
		Logger: l.Logger.With().Str(key, value).Logger(),
		writer: l.writer,
	}
}

func init() {
	zerolog.TimeFieldFormat = time.DateTime
	zerolog.ErrorStackMarshaler = pkgerrors.MarshalStack
}

// newLogger 统一的 Logger 构建方法
func newLogger(w io.Writer, opts ...Option) *Logger {
	logger := &Logger{
		writer: w,
		Logger: zerolog.New(w).With().Timestamp().Logger(),
	}

	for _, opt := range opts {
		opt(logger)
	}

	return logger
}

// New 创建新的 Logger 实例，输出到标准错误，保持标准输出只承载命令结果
func New(opts ...Option) *Logger {
	return newLogger(writer.Console(os.Stderr), opts...)
}

// NewWriter 创建输出到任意 writer 的 JSON Logger，主要用于测试
func NewWriter(w io.Writer, opts ...Option) *Logger {
	return newLogger(w, opts...)
}

// NewFile 创建文件输出的 Logger
func NewFile(c FileConfig, opts ...Option) (*Logger, error) {
	w, err := fileWriter(&c)
	if err != nil {
		return nil, err
	}

	logger := newLogger(w, opts...)
	if closer, ok := w.(io.Closer); ok {
		logger.closer = closer
	}

	return logger, nil
}

// NewMulti 创建同时输出到文件和控制台的 Logger
func NewMulti(c FileConfig, opts ...Option) (*Logger, error) {
	fw, err := fileWriter(&c)
	if err != nil {
		return nil, err
	}

	multi := zerolog.MultiLevelWriter(fw, writer.Console(os.Stderr))
	logger := newLogger(multi, opts...)
	if closer, ok := fw.(io.Closer); ok {
		logger.closer = closer
	}

	return logger, nil
}

func fileWriter(c *FileConfig) (io.Writer, error) {
	if err := tag.ApplyDefaults(c); err != nil {
		return nil, fmt.Errorf("failed to apply defaults: %w", err)
	}

	w, err := writer.File(c.toWriterConfig())
	if err != nil {
		return nil, fmt.Errorf("failed to create file writer: %w", err)
	}
	return w, nil
}

// Setup 根据配置构建 Logger：未启用文件输出时仅输出到控制台
func Setup(c Config) (*Logger, error) {
	level, err := ParseLevel(c.Level)
	if err != nil {
		return nil, err
	}

	opts := []Option{WithLevel(level)}
	if c.Caller {
		opts = append(opts, WithCaller())
	}

	if !c.File.Enabled {
		return New(opts...), nil
	}
	return NewMulti(c.File, opts...)
}

// ParseLevel 解析日志级别字符串，空字符串视为 info
func ParseLevel(s string) (zerolog.Level, error) {
	if s == "" {
		return zerolog.InfoLevel, nil
	}
	level, err := zerolog.ParseLevel(s)
	if err != nil {
		return zerolog.NoLevel, fmt.Errorf("invalid log level %q: %w", s, err)
	}
	return level, nil
}
