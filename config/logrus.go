package config

import (
	"os"

	"github.com/sirupsen/logrus"
)

var (
	logg *logrus.Logger
)

func GetLogger() *logrus.Logger {
	return logg
}

func init() {
	logg = logrus.New()
	logg.SetFormatter(&logrus.JSONFormatter{})
	logg.SetLevel(logrus.WarnLevel)
	logg.SetOutput(os.Stdout)
}

func LogError(logger *logrus.Logger, moduleName string, funcName string, context string, data any, err error) {
	if data != nil {
		logger.WithFields(logrus.Fields{
			"module":   moduleName,
			"funcName": funcName,
			"context":  context,
			"data":     data,
		}).Error(err.Error())
	} else {
		logger.WithFields(logrus.Fields{
			"module":   moduleName,
			"funcName": funcName,
			"context":  context,
		}).Error(err.Error())
	}
}

// LogRowDiagnostic records a non-fatal per-row enrichment failure with enough
// context (provider, filename, identifying field) for manual reconciliation.
// A nil err is allowed for misses that carry no error value, such as a
// department mapping lookup that finds nothing.
func LogRowDiagnostic(logger *logrus.Logger, provider string, filename string, businessKey string, context string, err error) {
	entry := logger.WithFields(logrus.Fields{
		"provider": provider,
		"filename": filename,
		"key":      businessKey,
		"context":  context,
	})
	if err != nil {
		entry.Warn(err.Error())
		return
	}
	entry.Warn(context)
}
