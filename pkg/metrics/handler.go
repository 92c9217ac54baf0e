package metrics

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type Handler struct{}

func NewHandler() *Handler {
	return &Handler{}
}

func (h *Handler) Metrics(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"searches_total":          GetSearches(),
		"upstream_failures_total": GetUpstreamFailures(),
		"movies_added_total":      GetMoviesAdded(),
		"movies_updated_total":    GetMoviesUpdated(),
		"movies_deleted_total":    GetMoviesDeleted(),
		"rankings_computed_total": GetRankingsComputed(),
		"requests":                GetRequestMetrics(),
		"uptime_seconds":          int64(GetUptime().Seconds()),
	})
}
