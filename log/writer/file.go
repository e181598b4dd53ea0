package writer

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	rotatelogs "github.com/lestrrat-go/file-rotatelogs"
	"gopkg.in/natefinch/lumberjack.v2"
)

// RotateMode 日志轮转模式
type RotateMode int

const (
	// RotateModeTime 按时间轮转
	RotateModeTime RotateMode = iota
	// RotateModeSize 按大小轮转
	RotateModeSize
)

// String 返回轮转模式的字符串表示
func (m RotateMode) String() string {
	switch m {
	case RotateModeTime:
		return "time"
	case RotateModeSize:
		return "size"
	default:
		return "unknown"
	}
}

// UnmarshalText 支持在配置文件中以 "time" / "size" 书写轮转模式
func (m *RotateMode) UnmarshalText(text []byte) error {
	switch strings.ToLower(string(text)) {
	case "time", "":
		*m = RotateModeTime
	case "size":
		*m = RotateModeSize
	default:
		return fmt.Errorf("unsupported rotate mode: %q", text)
	}
	return nil
}

// RotateConfig 日志轮转配置
type RotateConfig struct {
	Mode             RotateMode
	Filepath         string
	Filename         string
	FileExt          string
	TimeRotateConfig TimeRotateConfig
	SizeRotateConfig SizeRotateConfig
}

// TimeRotateConfig 按时间轮转配置
type TimeRotateConfig struct {
	MaxAge       int // 日志保留时间(小时)
	RotationTime int // 轮转时间间隔(小时)
}

// SizeRotateConfig 按大小轮转配置
type SizeRotateConfig struct {
	MaxSize    int  // 单个日志文件最大大小(MB)
	MaxBackups int  // 保留的旧日志文件数量
	MaxAge     int  // 日志文件保留天数
	Compress   bool // 是否压缩旧日志文件
}

// File 创建文件输出 writer
func File(config RotateConfig) (io.Writer, error) {
	switch config.Mode {
	case RotateModeTime:
		w, err := rotatelogs.New(
			config.path("%Y%m%d%H%M"),
			rotatelogs.WithLinkName(config.path("")),
			rotatelogs.WithMaxAge(time.Duration(config.TimeRotateConfig.MaxAge)*time.Hour),
			rotatelogs.WithRotationTime(time.Duration(config.TimeRotateConfig.RotationTime)*time.Hour),
		)
		if err != nil {
			return nil, fmt.Errorf("failed to create time rotate writer: %w", err)
		}
		return w, nil
	case RotateModeSize:
		return &lumberjack.Logger{
			Filename:   config.path(""),
			MaxSize:    config.SizeRotateConfig.MaxSize,
			MaxBackups: config.SizeRotateConfig.MaxBackups,
			MaxAge:     config.SizeRotateConfig.MaxAge,
			Compress:   config.SizeRotateConfig.Compress,
		}, nil
	default:
		return nil, fmt.Errorf("unsupported rotate mode: %v", config.Mode)
	}
}

// path 返回日志文件完整路径，format 非空时插入到文件名与扩展名之间
func (c *RotateConfig) path(format string) string {
	name := c.Filename
	if format != "" {
		name += "." + format
	}
	return filepath.Join(c.Filepath, name+"."+c.FileExt)
}
