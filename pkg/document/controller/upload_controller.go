package controller

import "github.com/labstack/echo/v4"

type UploadController interface {
	Upload(c echo.Context) error
}
