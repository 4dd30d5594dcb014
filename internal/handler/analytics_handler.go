package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"warmdelights/internal/domain/model"
	"warmdelights/internal/usecase"
)

type AnalyticsHandler struct {
	analyticsUsecase *usecase.AnalyticsUsecase
}

// DI
func NewAnalyticsHandler(analyticsUsecase *usecase.AnalyticsUsecase) *AnalyticsHandler {
	return &AnalyticsHandler{analyticsUsecase: analyticsUsecase}
}

// trackは公開（フロントのビーコン用）、集計は管理者のみ
func (h *AnalyticsHandler) RegisterRoutes(e *echo.Echo, authMW, adminMW echo.MiddlewareFunc) {
	e.POST("/analytics/track", h.Track)

	admin := e.Group("/analytics", authMW, adminMW)
	admin.GET("/summary", h.Summary)
	admin.GET("/recent", h.Recent)
}

type trackEventRequest struct {
	EventType string         `json:"event_type"`
	Page      string         `json:"page"`
	Source    string         `json:"source"`
	SessionID string         `json:"session_id"`
	Metadata  map[string]any `json:"metadata"`
}

func (h *AnalyticsHandler) Track(c echo.Context) error {
	var req trackEventRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
	}

	in := usecase.TrackEventInput{
		EventType: model.AnalyticsEventType(req.EventType),
		Page:      req.Page,
		Method:    c.Request().Method,
		Source:    req.Source,
		UserAgent: c.Request().UserAgent(),
		IP:        c.RealIP(),
		SessionID: req.SessionID,
		Metadata:  req.Metadata,
	}
	if userID := getUserIDFromContext(c); userID > 0 {
		in.UserID = &userID
	}

	if err := h.analyticsUsecase.TrackEvent(c.Request().Context(), in); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "Event tracked"})
}

// from/toはRFC3339。省略時は全期間
func (h *AnalyticsHandler) Summary(c echo.Context) error {
	var from, to *time.Time

	if v := c.QueryParam("from"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid from"})
		}
		from = &t
	}
	if v := c.QueryParam("to"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid to"})
		}
		to = &t
	}

	summary, err := h.analyticsUsecase.GetSummary(c.Request().Context(), from, to)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, summary)
}

func (h *AnalyticsHandler) Recent(c echo.Context) error {
	events, err := h.analyticsUsecase.GetRecentActivity(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, events)
}
