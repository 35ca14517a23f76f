package catalog

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"smartbooking/internal/pkg/response"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/resources", h.ListResources)
	rg.GET("/resources/:id", h.GetResource)
}

func (h *Handler) ListResources(c *gin.Context) {
	resources, err := h.service.ListResources(c.Request.Context())
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Operation failed")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"resources": resources})
}

func (h *Handler) GetResource(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid resource id")
		return
	}

	res, err := h.service.GetResource(c.Request.Context(), id)
	if err != nil {
		if err == ErrNotFound {
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Resource not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Operation failed")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"resource": res})
}
