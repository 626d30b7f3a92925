package router

import (
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"golang.org/x/time/rate"
)

// ChatPageLimit caps /chat page loads per client IP.
type ChatPageLimit struct {
	Requests int
	Window   time.Duration
}

func New(
	e *echo.Echo,
	uploadCtrl interface{ Upload(echo.Context) error },
	chatCtrl interface {
		Page(echo.Context) error
		WS(echo.Context) error
	},
	healthCtrl interface{ Health(echo.Context) error },
	pageLimit ChatPageLimit,
) *echo.Echo {
	e.POST("/upload-pdf/", uploadCtrl.Upload)

	chatLimiter := middleware.RateLimiterWithConfig(middleware.RateLimiterConfig{
		Store: middleware.NewRateLimiterMemoryStoreWithConfig(middleware.RateLimiterMemoryStoreConfig{
			Rate:      rate.Limit(float64(pageLimit.Requests) / pageLimit.Window.Seconds()),
			Burst:     pageLimit.Requests,
			ExpiresIn: 3 * time.Minute,
		}),
	})
	e.GET("/chat/:id", chatCtrl.Page, chatLimiter)

	e.GET("/ws/:id", chatCtrl.WS)
	e.GET("/health", healthCtrl.Health)
	return e
}
