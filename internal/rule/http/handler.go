package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/bookingcore/resource-booking-backend/internal/pkg/request"
	"github.com/bookingcore/resource-booking-backend/internal/pkg/response"
	"github.com/bookingcore/resource-booking-backend/internal/rule"
)

type Handler struct {
	service rule.Service
}

func NewHandler(service rule.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) Create(c *gin.Context) {
	var body CreateRuleRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	r, err := h.service.Create(c.Request.Context(), rule.CreateRequest{
		ResourceID:               body.ResourceID,
		ResourceKind:             kindPtr(body.ResourceKind),
		MaxDurationMinutes:       body.MaxDurationMinutes,
		MinLeadTimeMinutes:       body.MinLeadTimeMinutes,
		AllowedStartTime:         body.AllowedStartTime,
		AllowedEndTime:           body.AllowedEndTime,
		BlockedWeekdays:          body.BlockedWeekdays,
		MaxActiveBookingsPerUser: body.MaxActiveBookingsPerUser,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, NewRuleResponse(r))
}

func (h *Handler) List(c *gin.Context) {
	rules, err := h.service.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]RuleResponse, len(rules))
	for i, r := range rules {
		items[i] = NewRuleResponse(r)
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

func (h *Handler) Get(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	r, err := h.service.GetByID(c.Request.Context(), uri.ID)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewRuleResponse(r))
}

func (h *Handler) Update(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	var body UpdateRuleRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	r, err := h.service.Update(c.Request.Context(), uri.ID, rule.UpdateRequest{
		MaxDurationMinutes:       body.MaxDurationMinutes,
		MinLeadTimeMinutes:       body.MinLeadTimeMinutes,
		AllowedStartTime:         body.AllowedStartTime,
		AllowedEndTime:           body.AllowedEndTime,
		BlockedWeekdays:          body.BlockedWeekdays,
		MaxActiveBookingsPerUser: body.MaxActiveBookingsPerUser,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewRuleResponse(r))
}

func (h *Handler) Delete(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	if err := h.service.Delete(c.Request.Context(), uri.ID); err != nil {
		response.Error(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
