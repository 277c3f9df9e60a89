package routes

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"tabletalk/handlers"
	"tabletalk/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubAssistant struct {
	resp *models.ChatResponse
	err  error
	got  models.ChatRequest
}

func (s *stubAssistant) Chat(ctx context.Context, sessionID, message string) (*models.ChatResponse, error) {
	s.got = models.ChatRequest{SessionID: sessionID, Message: message}
	return s.resp, s.err
}

func newTestRouter(stub *stubAssistant) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	RegisterRoutes(r, handlers.NewAssistantHandler(stub))
	return r
}

func TestChatEndpoint(t *testing.T) {
	stub := &stubAssistant{resp: &models.ChatResponse{Response: "Booked!", SessionID: "s1"}}
	router := newTestRouter(stub)

	body := `{"session_id":"s1","message":"book a table"}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/chat", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp models.ChatResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Booked!", resp.Response)
	assert.Equal(t, "s1", resp.SessionID)
	assert.Equal(t, "book a table", stub.got.Message)
}

func TestChatEndpointRequiresMessage(t *testing.T) {
	stub := &stubAssistant{resp: &models.ChatResponse{}}
	router := newTestRouter(stub)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/chat", strings.NewReader(`{"session_id":"s1"}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Empty(t, stub.got.Message, "service must not be called on invalid input")
}

func TestChatEndpointServiceFailure(t *testing.T) {
	stub := &stubAssistant{err: errors.New("session store unavailable")}
	router := newTestRouter(stub)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/chat", strings.NewReader(`{"message":"hi"}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestHealthEndpoint(t *testing.T) {
	router := newTestRouter(&stubAssistant{resp: &models.ChatResponse{}})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "healthy", body["status"])
}
