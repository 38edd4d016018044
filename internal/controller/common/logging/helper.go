package logginghelper

import (
	"github.com/Egor213/LogKeeper/internal/domain"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	log "github.com/sirupsen/logrus"
)

func LogIngested(user string, res domain.IngestResult) {
	log.WithFields(log.Fields{
		"user":     user,
		"batch_id": res.BatchID,
		"accepted": res.Accepted,
		"rejected": res.Rejected,
	}).Info("Log lines ingested")
}

func LogError(user, op string, err error) {
	log.WithFields(log.Fields{
		"user":  user,
		"op":    op,
		"error": err,
	}).Error("Request failed")
}

// LogRequest is a RequestLogger callback.
func LogRequest(c echo.Context, v middleware.RequestLoggerValues) error {
	entry := log.WithFields(log.Fields{
		"method":  v.Method,
		"uri":     v.URI,
		"status":  v.Status,
		"latency": v.Latency.String(),
	})
	if v.Error != nil {
		entry.WithField("error", v.Error).Warn("HTTP request")
		return nil
	}
	entry.Debug("HTTP request")
	return nil
}
