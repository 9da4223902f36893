package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/agendasalud/clinic-api/internal/handler"
	"github.com/agendasalud/clinic-api/internal/service/auth"
)

type Handler struct {
	service *auth.Service
}

func NewHandler(service *auth.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.POST("/auth", h.Lookup)
}

func (h *Handler) Lookup(c *gin.Context) {
	email := c.Query("email")
	if email == "" {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("email query parameter is required"))
		return
	}

	matches, err := h.service.Lookup(c.Request.Context(), email)
	if err != nil {
		handler.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(matches))
}
