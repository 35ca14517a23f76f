package booking

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"smartbooking/internal/middleware"
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
	rg.POST("/bookings", h.CreateBooking)
	rg.GET("/bookings/my", h.ListMyBookings)
	rg.GET("/bookings/pending", middleware.AdminOnly(), h.ListPendingBookings)
	rg.POST("/bookings/:id/approve", h.Approve)
	rg.POST("/bookings/:id/reject", h.Reject)
	rg.POST("/bookings/:id/pay", h.Pay)
	rg.POST("/bookings/:id/cancel", h.Cancel)

	admin := rg.Group("/admin", middleware.AdminOnly())
	admin.PUT("/bookings/:id", h.AdminUpdate)
	admin.DELETE("/bookings/:id", h.AdminDelete)
}

func (h *Handler) CreateBooking(c *gin.Context) {
	var body createBookingBody
	if err := c.ShouldBindJSON(&body); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	start, err := timeutil.Parse(body.Start)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid start timestamp")
		return
	}
	end, err := timeutil.Parse(body.End)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid end timestamp")
		return
	}

	b, err := h.service.CreateBooking(c.Request.Context(), CreateBookingRequest{
		UserID:     c.GetInt64("user_id"),
		ResourceID: body.ResourceID,
		StartTime:  start,
		EndTime:    end,
	})
	if err != nil {
		h.writeError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"booking": b})
}

func (h *Handler) ListMyBookings(c *gin.Context) {
	bookings, err := h.service.ListMyBookings(c.Request.Context(), c.GetInt64("user_id"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"bookings": bookings})
}

func (h *Handler) ListPendingBookings(c *gin.Context) {
	bookings, err := h.service.ListPendingBookings(c.Request.Context())
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"bookings": bookings})
}

func (h *Handler) Approve(c *gin.Context) {
	id, ok := h.bookingID(c)
	if !ok {
		return
	}

	b, err := h.service.Approve(c.Request.Context(), c.GetInt64("user_id"), c.GetString("role"), id)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"booking": b})
}

func (h *Handler) Reject(c *gin.Context) {
	id, ok := h.bookingID(c)
	if !ok {
		return
	}

	b, err := h.service.Reject(c.Request.Context(), c.GetInt64("user_id"), c.GetString("role"), id)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"booking": b})
}

func (h *Handler) Pay(c *gin.Context) {
	id, ok := h.bookingID(c)
	if !ok {
		return
	}

	var body payBody
	if err := c.ShouldBindJSON(&body); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Payment method is required")
		return
	}

	b, err := h.service.Pay(c.Request.Context(), c.GetInt64("user_id"), id, body.Method)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"booking": b})
}

func (h *Handler) Cancel(c *gin.Context) {
	id, ok := h.bookingID(c)
	if !ok {
		return
	}

	b, refunded, err := h.service.Cancel(c.Request.Context(), c.GetInt64("user_id"), c.GetString("role"), id)
	if err != nil {
		h.writeError(c, err)
		return
	}

	note := "cancelled, no refund applies"
	if refunded {
		note = "cancelled with full refund"
	}
	response.Success(c, http.StatusOK, cancelResult{Booking: b, Refunded: refunded, Note: note})
}

func (h *Handler) AdminUpdate(c *gin.Context) {
	id, ok := h.bookingID(c)
	if !ok {
		return
	}

	var body adminUpdateBody
	if err := c.ShouldBindJSON(&body); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	start, err := timeutil.Parse(body.Start)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid start timestamp")
		return
	}
	end, err := timeutil.Parse(body.End)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid end timestamp")
		return
	}

	b, err := h.service.AdminUpdate(c.Request.Context(), c.GetInt64("user_id"), c.GetString("role"), id, start, end)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"booking": b})
}

func (h *Handler) AdminDelete(c *gin.Context) {
	id, ok := h.bookingID(c)
	if !ok {
		return
	}

	if err := h.service.AdminDelete(c.Request.Context(), c.GetInt64("user_id"), c.GetString("role"), id); err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"deleted": true})
}

func (h *Handler) bookingID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid booking id")
		return 0, false
	}
	return id, true
}

func (h *Handler) writeError(c *gin.Context, err error) {
	switch err {
	case ErrValidation:
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid booking time range")
	case ErrConflict:
		response.Error(c, http.StatusConflict, "BOOKING_CONFLICT", "Resource is not available for the selected time")
	case ErrStateConflict:
		response.Error(c, http.StatusConflict, "STATE_CONFLICT", "Action not permitted from the booking's current status")
	case ErrForbidden:
		response.Error(c, http.StatusForbidden, "FORBIDDEN", "Access denied: insufficient permissions")
	case ErrNotFound:
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Booking or resource not found")
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Operation failed")
	}
}
