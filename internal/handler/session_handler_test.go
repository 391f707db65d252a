package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/ELSILVAGM/genomma-lab-actualizacion-seguimiento-rechazos/internal/dto"
	"github.com/ELSILVAGM/genomma-lab-actualizacion-seguimiento-rechazos/internal/models"
	appErrors "github.com/ELSILVAGM/genomma-lab-actualizacion-seguimiento-rechazos/pkg/errors"
	"github.com/ELSILVAGM/genomma-lab-actualizacion-seguimiento-rechazos/pkg/response"
)

type stubSessionService struct {
	info *dto.SessionInfo
	err  error
}

func (s *stubSessionService) Current(_ context.Context) (*dto.SessionInfo, error) {
	return s.info, s.err
}

func newSessionRouter(h *SessionHandler) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/session", h.Current)
	return r
}

func TestSessionHandlerCurrent(t *testing.T) {
	svc := &stubSessionService{info: &dto.SessionInfo{
		User:        "etl_rechazos",
		Database:    "dev_stg",
		Schema:      "gnm_ct",
		Role:        "etl_rechazos",
		Environment: models.EnvironmentDevelopment,
	}}
	router := newSessionRouter(NewSessionHandler(svc))

	req := httptest.NewRequest(http.MethodGet, "/session", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var envelope response.Envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	require.Nil(t, envelope.Error)

	data, err := json.Marshal(envelope.Data)
	require.NoError(t, err)
	var info dto.SessionInfo
	require.NoError(t, json.Unmarshal(data, &info))
	require.Equal(t, "dev_stg", info.Database)
	require.Equal(t, models.EnvironmentDevelopment, info.Environment)
}

func TestSessionHandlerCurrentUnavailable(t *testing.T) {
	svc := &stubSessionService{err: appErrors.ErrSessionUnavailable}
	router := newSessionRouter(NewSessionHandler(svc))

	req := httptest.NewRequest(http.MethodGet, "/session", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusServiceUnavailable, w.Code)
	var envelope response.Envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	require.Equal(t, "SESSION_UNAVAILABLE", envelope.Error.Code)
}
