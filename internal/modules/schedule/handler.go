package schedule

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"smartbooking/internal/pkg/response"
	"smartbooking/internal/pkg/timeutil"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/resources/:id/schedule", h.GetSchedule)
	rg.GET("/resources/:id/availability", h.CheckAvailability)
}

// GetSchedule serves GET /resources/:id/schedule?from=...&to=... The window
// defaults to the next seven days starting at midnight today.
func (h *Handler) GetSchedule(c *gin.Context) {
	resourceID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || resourceID <= 0 {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid resource id")
		return
	}

	now := time.Now().UTC()
	from := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 0, 7)

	if raw := c.Query("from"); raw != "" {
		if from, err = timeutil.Parse(raw); err != nil {
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid from timestamp")
			return
		}
		to = from.AddDate(0, 0, 7)
	}
	if raw := c.Query("to"); raw != "" {
		if to, err = timeutil.Parse(raw); err != nil {
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid to timestamp")
			return
		}
	}

	sched, err := h.service.Schedule(c.Request.Context(), c.GetInt64("user_id"), c.GetString("role"), resourceID, from, to)
	if err != nil {
		switch err {
		case ErrValidation:
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid schedule window")
		case ErrNotFound:
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Resource not found")
		default:
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Operation failed")
		}
		return
	}

	response.Success(c, http.StatusOK, sched)
}

// CheckAvailability serves GET /resources/:id/availability?start=...&end=...
// with an advisory free/busy verdict for one candidate slot.
func (h *Handler) CheckAvailability(c *gin.Context) {
	resourceID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || resourceID <= 0 {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid resource id")
		return
	}

	start, err := timeutil.Parse(c.Query("start"))
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid start timestamp")
		return
	}
	end, err := timeutil.Parse(c.Query("end"))
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid end timestamp")
		return
	}

	available, err := h.service.CheckSlot(c.Request.Context(), resourceID, start, end)
	if err != nil {
		switch err {
		case ErrValidation:
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid slot range")
		case ErrNotFound:
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Resource not found")
		default:
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Operation failed")
		}
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"resource_id": resourceID,
		"start":       timeutil.Format(start),
		"end":         timeutil.Format(end),
		"available":   available,
	})
}
