package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/bookingcore/resource-booking-backend/internal/availability"
	"github.com/bookingcore/resource-booking-backend/internal/pkg/response"
	"github.com/bookingcore/resource-booking-backend/internal/resource"
	resHttp "github.com/bookingcore/resource-booking-backend/internal/resource/http"
)

type Handler struct {
	service availability.Service
}

func NewHandler(service availability.Service) *Handler {
	return &Handler{service: service}
}

// Search lists the resources bookable for the requested window. The result is
// requester-agnostic and an empty list is a valid answer.
func (h *Handler) Search(c *gin.Context) {
	var req SearchRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid query parameters", "details": err.Error()})
		return
	}
	if err := req.Validate(); err != nil {
		response.Error(c, err)
		return
	}

	resources, err := h.service.Search(c.Request.Context(), availability.Params{
		Start:        req.Start.UTC(),
		End:          req.End.UTC(),
		Kind:         resource.Kind(req.Kind),
		StatusFilter: resource.LifecycleStatus(req.Status),
		OrderBy:      req.OrderBy,
		OrderDir:     req.OrderDir,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"items": resHttp.NewResourceResponses(resources)})
}
