// pkg/logger/logger.go
package logger

import (
	"io"
	"os"
	"path/filepath"

	"github.com/jobayerhossain-ai/Bangla-Quotes/internal/config"
	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

var fileWriter *lumberjack.Logger

func Init(cfg config.LogConfig) {
	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	logrus.SetLevel(level)

	if cfg.Format == "text" {
		logrus.SetFormatter(&logrus.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: "2006-01-02 15:04:05",
		})
	} else {
		logrus.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat: "2006-01-02T15:04:05.000Z07:00",
		})
	}

	writers := []io.Writer{os.Stdout}

	if cfg.File != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.File), 0755); err != nil {
			logrus.WithError(err).Warn("cannot create log directory, file logging disabled")
		} else {
			fileWriter = &lumberjack.Logger{
				Filename:   cfg.File,
				MaxSize:    cfg.MaxSize, // MB
				MaxAge:     cfg.MaxAge,  // days
				MaxBackups: cfg.MaxBackups,
				LocalTime:  true,
				Compress:   true,
			}
			writers = append(writers, fileWriter)
		}
	}

	logrus.SetOutput(io.MultiWriter(writers...))

	logrus.WithFields(logrus.Fields{
		"level": level.String(),
		"file":  cfg.File,
	}).Debug("logger initialized")
}

// Close flushes and closes the rotating log file, if any.
func Close() error {
	if fileWriter == nil {
		return nil
	}
	return fileWriter.Close()
}

func GetLogger() *logrus.Logger {
	return logrus.StandardLogger()
}
