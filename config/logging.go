package config

import (
	"time"

	log "github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

// SetupLogging configures logrus from the loaded config. With no log path the
// default stderr output is kept, which is what you want in containers.
func SetupLogging() {
	if C.Logging.Path != "" {
		log.SetOutput(&lumberjack.Logger{
			Filename:   C.Logging.Path,
			MaxSize:    32, // megabytes
			MaxBackups: 2,
			MaxAge:     28, // days
			Compress:   true,
		})
	}
	level, err := log.ParseLevel(C.Logging.Level)
	if err != nil {
		level = log.InfoLevel
	}
	log.SetLevel(level)
	log.SetFormatter(&log.TextFormatter{
		PadLevelText:    true,
		DisableColors:   true,
		TimestampFormat: time.DateTime,
	})
}
