package controller

import "github.com/labstack/echo/v4"

type ChatController interface {
	Page(c echo.Context) error
	WS(c echo.Context) error
}
