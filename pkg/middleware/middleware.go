package middleware

import (
	"context"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/time/rate"
)

// XBorrowerIDHeader is set by the gateway after the identity provider
// has verified the caller.
const XBorrowerIDHeader = "X-Borrower-Id"

type borrowerKey struct{}

func SetBorrower(ctx context.Context, borrowerID int64) context.Context {
	return context.WithValue(ctx, borrowerKey{}, borrowerID)
}

func BorrowerID(ctx context.Context) (int64, bool) {
	id, ok := ctx.Value(borrowerKey{}).(int64)
	return id, ok
}

// BorrowerContext rejects requests without a valid borrower header.
func BorrowerContext(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		req := c.Request()
		raw := req.Header.Get(XBorrowerIDHeader)
		if raw == "" {
			return echo.NewHTTPError(http.StatusUnauthorized, "borrower id is required")
		}
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || id <= 0 {
			return echo.NewHTTPError(http.StatusBadRequest, "borrower id is invalid")
		}
		c.SetRequest(req.WithContext(SetBorrower(req.Context(), id)))
		return next(c)
	}
}

func NewRateLimiter(rps rate.Limit) echo.MiddlewareFunc {
	return middleware.RateLimiter(middleware.NewRateLimiterMemoryStore(rps))
}

func RequestLoggerConfig(log *zap.Logger) middleware.RequestLoggerConfig {
	log = log.Named("echo")
	c := middleware.RequestLoggerConfig{
		LogURI:       true,
		LogMethod:    true,
		LogStatus:    true,
		HandleError:  true,
		LogError:     true,
		LogLatency:   true,
		LogRequestID: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			level := zapcore.InfoLevel
			if v.Error != nil {
				level = zapcore.ErrorLevel
			}
			log.Log(level, "request",
				zap.String("URI", v.URI),
				zap.String("Method", v.Method),
				zap.Int("status", v.Status),
				zap.Duration("latency", v.Latency),
				zap.Error(v.Error),
				zap.String("request_id", v.RequestID),
			)
			return nil
		},
	}
	return c
}
