package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ELSILVAGM/genomma-lab-actualizacion-seguimiento-rechazos/internal/dto"
	appErrors "github.com/ELSILVAGM/genomma-lab-actualizacion-seguimiento-rechazos/pkg/errors"
	"github.com/ELSILVAGM/genomma-lab-actualizacion-seguimiento-rechazos/pkg/response"
)

type sessionService interface {
	Current(ctx context.Context) (*dto.SessionInfo, error)
}

// SessionHandler exposes database session introspection.
type SessionHandler struct {
	service sessionService
}

// NewSessionHandler constructs the handler.
func NewSessionHandler(service sessionService) *SessionHandler {
	return &SessionHandler{service: service}
}

// Current godoc
// @Summary Describe the active database session
// @Tags Session
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /session [get]
func (h *SessionHandler) Current(c *gin.Context) {
	if h.service == nil {
		response.Error(c, appErrors.Clone(appErrors.ErrInternal, "session service not configured"))
		return
	}
	info, err := h.service.Current(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, info)
}
