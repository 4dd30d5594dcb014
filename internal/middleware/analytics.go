package middleware

import (
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"warmdelights/internal/domain/model"
	"warmdelights/internal/usecase"
)

const sessionHeader = "X-Session-Id"

// リクエストごとにアクセスイベントを記録する
// 記録は投げっぱなしで、レスポンスを遅らせない
func TrackAnalytics(uc *usecase.AnalyticsUsecase) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()

			// 解析系のルート自身とpreflightは記録しない
			if strings.HasPrefix(req.URL.Path, "/analytics") || req.Method == http.MethodOptions {
				return next(c)
			}

			sessionID := req.Header.Get(sessionHeader)
			if sessionID == "" {
				sessionID = uuid.NewString()
				c.Response().Header().Set(sessionHeader, sessionID)
			}

			source := req.Referer()
			if source == "" {
				source = "direct"
			}

			in := usecase.TrackEventInput{
				EventType: model.EventPageView,
				Page:      req.URL.Path,
				Method:    req.Method,
				Source:    source,
				UserAgent: req.UserAgent(),
				IP:        c.RealIP(),
				SessionID: sessionID,
			}

			// 認証後のグループではユーザーも紐づける
			if v, ok := c.Get(CtxUserIDKey).(int64); ok && v > 0 {
				in.UserID = &v
			}
			if v, ok := c.Get(CtxUserRoleKey).(string); ok {
				in.UserRole = v
			}

			uc.TrackEventAsync(in)

			return next(c)
		}
	}
}
