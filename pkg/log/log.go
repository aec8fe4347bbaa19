package log

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/wire"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

var (
	mu     sync.RWMutex
	logger *zap.Logger
	sugar  *zap.SugaredLogger
)

// ProviderSet is the Wire provider set for the log package.
var ProviderSet = wire.NewSet(ProvideLogger)

// ProvideLogger 提供 Logger 实例
func ProvideLogger(conf *Conf) (*Logger, error) {
	zapLogger, err := NewLog(conf)
	if err != nil {
		return nil, err
	}
	return &Logger{Log: zapLogger.Sugar()}, nil
}

// Conf holds logging configuration options.
type Conf struct {
	Output     string // stdout or file
	Path       string
	Filename   string // 日志文件名，为空时使用默认值
	Level      string
	RotateSize int // 单个日志文件最大大小（MB）
	RotateNum  int // 保留的日志文件数量
	KeepDays   int // 日志保留天数
}

// SetDefaults 返回默认配置
func SetDefaults() *Conf {
	return &Conf{
		Output:     "stdout",
		Path:       "./logs",
		Filename:   "atsignal.log",
		Level:      "INFO",
		RotateSize: 100,
		RotateNum:  10,
		KeepDays:   7,
	}
}

// Validate 验证配置
func (c *Conf) Validate() error {
	if c.Output == "file" {
		if c.Path == "" {
			return fmt.Errorf("log path is required when output is 'file'")
		}
		if c.RotateSize <= 0 {
			c.RotateSize = 100
		}
		if c.RotateNum <= 0 {
			c.RotateNum = 10
		}
		if c.KeepDays <= 0 {
			c.KeepDays = 7
		}
	}
	return nil
}

type Logger struct {
	Log *zap.SugaredLogger
}

// NewLog builds a zap logger from Conf.
func NewLog(conf *Conf) (*zap.Logger, error) {
	if conf == nil {
		conf = SetDefaults()
	}
	if err := conf.Validate(); err != nil {
		return nil, err
	}

	var ws zapcore.WriteSyncer
	switch strings.ToLower(conf.Output) {
	case "", "stdout":
		ws = zapcore.AddSync(os.Stdout)
	case "file":
		filename := conf.Filename
		if filename == "" {
			filename = "atsignal.log"
		}
		ws = zapcore.AddSync(&lumberjack.Logger{
			Filename:   filepath.Join(conf.Path, filename),
			MaxSize:    conf.RotateSize,
			MaxBackups: conf.RotateNum,
			MaxAge:     conf.KeepDays,
			Compress:   true,
		})
	default:
		return nil, fmt.Errorf("unsupported log output: %s", conf.Output)
	}

	core := zapcore.NewCore(getEncoder(), ws, parseLogLevel(conf.Level))
	return zap.New(core, zap.AddCaller(), zap.AddCallerSkip(1)), nil
}

// Init initializes the package-level logger.
func Init(conf *Conf) error {
	l, err := NewLog(conf)
	if err != nil {
		return err
	}
	mu.Lock()
	defer mu.Unlock()
	logger = l
	sugar = l.Sugar()
	return nil
}

// MustInit is like Init but panics on error.
func MustInit(conf *Conf) {
	if err := Init(conf); err != nil {
		panic(err)
	}
}

// GetLogger 获取全局 SugaredLogger
func GetLogger() *zap.SugaredLogger {
	mu.RLock()
	s := sugar
	mu.RUnlock()
	if s == nil {
		MustInit(SetDefaults())
		mu.RLock()
		s = sugar
		mu.RUnlock()
	}
	return s
}

// Sync flushes buffered log entries.
func Sync() error {
	mu.RLock()
	defer mu.RUnlock()
	if logger == nil {
		return nil
	}
	return logger.Sync()
}

func getEncoder() zapcore.Encoder {
	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.EncodeTime = customTimeEncoder
	encoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	encoderConfig.TimeKey = "time"
	return zapcore.NewConsoleEncoder(encoderConfig)
}

func customTimeEncoder(t time.Time, enc zapcore.PrimitiveArrayEncoder) {
	enc.AppendString(t.Format("2006-01-02 15:04:05.000"))
}

func parseLogLevel(level string) zapcore.Level {
	switch strings.ToUpper(level) {
	case "DEBUG":
		return zapcore.DebugLevel
	case "INFO":
		return zapcore.InfoLevel
	case "WARN", "WARNING":
		return zapcore.WarnLevel
	case "ERROR":
		return zapcore.ErrorLevel
	case "FATAL":
		return zapcore.FatalLevel
	default:
		return zapcore.InfoLevel
	}
}
