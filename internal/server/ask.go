package server

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/quanda-ai/quanda/internal/agent"
)

// Answerer is the orchestrator capability the handlers drive.
type Answerer interface {
	Answer(ctx context.Context, query string, onDelta func(delta string)) agent.Response
}

// AskHandler serves the query endpoints.
type AskHandler struct {
	Agent  Answerer
	Logger *log.Logger
}

func (h *AskHandler) Register(e *echo.Echo) {
	e.POST("/ask", h.ask)
	e.POST("/ask/sync", h.askSync)
}

type askRequest struct {
	Query string `json:"query"`
}

func (h *AskHandler) bind(c echo.Context) (string, error) {
	var req askRequest
	if err := c.Bind(&req); err != nil {
		return "", echo.NewHTTPError(http.StatusBadRequest, `invalid request. "query" field is required and must be a string`)
	}
	if strings.TrimSpace(req.Query) == "" {
		return "", echo.NewHTTPError(http.StatusBadRequest, `invalid request. "query" field is required and must be a string`)
	}
	return req.Query, nil
}

// ask streams the answer as server-sent events: one chunk event per text
// increment, one complete event carrying the full response, then an explicit
// [DONE] marker.
func (h *AskHandler) ask(c echo.Context) error {
	query, err := h.bind(c)
	if err != nil {
		return err
	}

	resp := c.Response()
	resp.Header().Set(echo.HeaderContentType, "text/event-stream")
	resp.Header().Set(echo.HeaderCacheControl, "no-cache")
	resp.Header().Set("Connection", "keep-alive")
	resp.WriteHeader(http.StatusOK)
	flusher, ok := resp.Writer.(http.Flusher)
	if !ok {
		return echo.NewHTTPError(http.StatusServiceUnavailable, "streaming unsupported")
	}

	writeEvent := func(payload any) {
		data, err := json.Marshal(payload)
		if err != nil {
			h.Logger.Printf("marshal sse event: %v", err)
			return
		}
		if _, err := resp.Write([]byte("data: " + string(data) + "\n\n")); err != nil {
			return
		}
		flusher.Flush()
	}

	result := h.Agent.Answer(c.Request().Context(), query, func(delta string) {
		writeEvent(map[string]string{"type": "chunk", "content": delta})
	})

	writeEvent(map[string]any{
		"type":   "complete",
		"answer": result.Answer,
		"data":   result.Data,
	})
	_, _ = resp.Write([]byte("data: [DONE]\n\n"))
	flusher.Flush()
	return nil
}

// askSync returns the full response without incremental events.
func (h *AskHandler) askSync(c echo.Context) error {
	query, err := h.bind(c)
	if err != nil {
		return err
	}
	result := h.Agent.Answer(c.Request().Context(), query, nil)
	return c.JSON(http.StatusOK, result)
}
