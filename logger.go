package qsim

import (
	"os"

	"github.com/charmbracelet/log"
)

var logger = log.NewWithOptions(os.Stderr, log.Options{
	Prefix:          "qsim",
	ReportTimestamp: true,
	Level:           log.InfoLevel,
})

/*
SetLogLevel changes the verbosity of the package logger. Accepts the
charmbracelet/log level names (debug, info, warn, error, fatal).
*/
func SetLogLevel(level string) error {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		return err
	}

	logger.SetLevel(lvl)
	return nil
}

func debugEnabled() bool {
	return logger.GetLevel() <= log.DebugLevel
}
