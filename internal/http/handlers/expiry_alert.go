package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/platewise/platewise-backend/internal/http/response"
	"github.com/platewise/platewise-backend/internal/services"
)

type ExpiryAlertHandler struct {
	expiryService services.ExpiryAlertService
}

func NewExpiryAlertHandler(expiryService services.ExpiryAlertService) *ExpiryAlertHandler {
	return &ExpiryAlertHandler{expiryService: expiryService}
}

// GET /reports/expiry
// Optional query params: location_id, include_expired, days_threshold,
// alert_level (repeatable).
func (eh *ExpiryAlertHandler) Report(c *gin.Context) {
	var opts services.ExpiryReportOptions

	locationID, ok := queryUUID(c, "location_id")
	if !ok {
		return
	}
	opts.LocationID = locationID

	if raw := c.Query("include_expired"); raw != "" {
		include, err := strconv.ParseBool(raw)
		if err != nil {
			response.RespondError(c, http.StatusBadRequest, "invalid_request", fmt.Errorf("invalid include_expired"))
			return
		}
		opts.IncludeExpired = &include
	}

	if raw := c.Query("days_threshold"); raw != "" {
		days, err := strconv.Atoi(raw)
		if err != nil {
			response.RespondError(c, http.StatusBadRequest, "invalid_request", fmt.Errorf("invalid days_threshold"))
			return
		}
		opts.DaysThreshold = &days
	}

	for _, raw := range c.QueryArray("alert_level") {
		level := services.AlertLevel(raw)
		if !services.ValidAlertLevel(level) {
			response.RespondError(c, http.StatusBadRequest, "invalid_request", fmt.Errorf("invalid alert_level %q", raw))
			return
		}
		opts.AlertLevels = append(opts.AlertLevels, level)
	}

	report, err := eh.expiryService.BuildReport(c.Request.Context(), opts)
	if err != nil {
		response.RespondFromError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"report": report})
}
