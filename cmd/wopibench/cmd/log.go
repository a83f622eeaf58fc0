package cmd

import (
	"os"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

func getLogger() *logrus.Entry {
	base := logrus.New()
	switch logfile {
	case "":
		base.Out = os.Stderr
	default:
		base.Out = &lumberjack.Logger{
			Filename: logfile,
		}
	}
	return logrus.NewEntry(base)
}
