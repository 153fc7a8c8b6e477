package middleware

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/seo-optimizer/seoreport/stats"
)

// Routes counted by Stats.
const (
	AnalyzeRoute = "/api/analyze"
	ExportRoute  = "/api/export"
	SaveRoute    = "/api/save"
)

// Stats records analyses, failures, exports and saves. An export runs an
// analysis first, so it counts towards both.
func Stats(storage *stats.Storage) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		if c.Request.Method != http.MethodPost {
			return
		}
		status := c.Writer.Status()
		if status == http.StatusBadRequest {
			return
		}

		switch c.FullPath() {
		case AnalyzeRoute, ExportRoute:
			storage.Record(stats.EventAnalysis, time.Since(start))
			if status >= 400 {
				storage.Record(stats.EventFailure, 0)
			} else if c.FullPath() == ExportRoute {
				storage.Record(stats.EventExport, 0)
			}
		case SaveRoute:
			if status < 400 {
				storage.Record(stats.EventSave, 0)
			}
		}
	}
}
