package logger

import (
	"io"
	"os"
	"time"

	"github.com/natefinch/lumberjack"
	logrus "github.com/sirupsen/logrus"

	"fire_tracker/internal/config"
)

// Setup configures the standard logrus logger from cfg and returns it
// together with the writer used for HTTP access logs.
func Setup(cfg config.LogConfig) (*logrus.Logger, io.Writer) {
	log := logrus.StandardLogger()

	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	log.SetLevel(level)

	if cfg.Format == "json" {
		log.SetFormatter(&logrus.JSONFormatter{TimestampFormat: time.RFC3339})
	} else {
		log.SetFormatter(&logrus.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: time.RFC3339,
		})
	}

	log.SetOutput(output(cfg.File))
	return log, output(cfg.AccessLogFile)
}

// output writes to stdout and, when a path is given, a rotating file.
func output(path string) io.Writer {
	if path == "" {
		return os.Stdout
	}
	rotator := &lumberjack.Logger{
		Filename:   path,
		MaxSize:    10, // megabytes
		MaxBackups: 7,
		MaxAge:     7, // days
		Compress:   true,
	}
	return io.MultiWriter(os.Stdout, rotator)
}
