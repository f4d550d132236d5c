package logger

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"behavior-go/internal/config"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Init builds the application logger: one rotating JSON file per level
// plus a colored console. program prefixes the file names so the survey
// and the tracker can share a log directory.
func Init(program string, cfg config.LoggingConfig) (*zap.Logger, error) {
	encoderConfig := zapcore.EncoderConfig{
		MessageKey:   "message",
		LevelKey:     "level",
		TimeKey:      "time",
		NameKey:      "logger",
		CallerKey:    "caller",
		EncodeLevel:  zapcore.CapitalLevelEncoder,
		EncodeTime:   zapcore.ISO8601TimeEncoder,
		EncodeCaller: zapcore.ShortCallerEncoder,
	}

	if err := os.MkdirAll(cfg.Directory, 0755); err != nil {
		return nil, fmt.Errorf("could not create log directory: %w", err)
	}

	cores := make([]zapcore.Core, 0, 5)
	for _, level := range []zapcore.Level{zapcore.DebugLevel, zapcore.InfoLevel, zapcore.WarnLevel, zapcore.ErrorLevel} {
		cores = append(cores, newFileCore(program, cfg, level, encoderConfig))
	}
	cores = append(cores, newConsoleCore())

	// A log entry is sent to every core; each decides whether to write it
	// based on its LevelEnabler.
	logger := zap.New(zapcore.NewTee(cores...), zap.AddCaller()).Named(program)
	return logger, nil
}

// newFileCore creates a core that writes exactly one level to a rotating
// file named like 'survey-2025-06-10-info.log'.
func newFileCore(program string, cfg config.LoggingConfig, level zapcore.Level, encoderConfig zapcore.EncoderConfig) zapcore.Core {
	fileName := filepath.Join(cfg.Directory,
		fmt.Sprintf("%s-%s-%s.log", program, time.Now().Format("2006-01-02"), level.String()))

	writer := zapcore.AddSync(&lumberjack.Logger{
		Filename:   fileName,
		MaxSize:    cfg.MaxSize,
		MaxBackups: cfg.MaxBackups,
		MaxAge:     cfg.MaxAge,
		Compress:   cfg.Compress,
	})

	levelEnabler := zap.LevelEnablerFunc(func(l zapcore.Level) bool {
		return l == level
	})

	return zapcore.NewCore(zapcore.NewJSONEncoder(encoderConfig), writer, levelEnabler)
}

// newConsoleCore creates a core that writes to the console.
func newConsoleCore() zapcore.Core {
	levelEnabler := zap.LevelEnablerFunc(func(l zapcore.Level) bool {
		return l >= zapcore.DebugLevel
	})

	consoleEncoderConfig := zap.NewDevelopmentEncoderConfig()
	consoleEncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder

	return zapcore.NewCore(
		zapcore.NewConsoleEncoder(consoleEncoderConfig),
		zapcore.AddSync(os.Stdout),
		levelEnabler,
	)
}
