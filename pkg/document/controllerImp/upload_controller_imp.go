package controllerImp

import (
	"io"
	"net/http"

	"github.com/labstack/echo/v4"

	"docchat/pkg/apperr"
	"docchat/pkg/document/controller"
	"docchat/pkg/document/service"
)

type UploadCtrl struct {
	s service.DocumentService
}

var _ controller.UploadController = (*UploadCtrl)(nil)

func New(s service.DocumentService) *UploadCtrl { return &UploadCtrl{s: s} }

// Upload accepts a multipart PDF and returns the assigned document id.
func (h *UploadCtrl) Upload(c echo.Context) error {
	fh, err := c.FormFile("file")
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"detail": "file is required"})
	}
	if fh.Header.Get("Content-Type") != "application/pdf" {
		return c.JSON(http.StatusBadRequest, map[string]string{"detail": "Invalid file type. Please upload a PDF."})
	}

	f, err := fh.Open()
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"detail": "unreadable upload"})
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"detail": "unreadable upload"})
	}

	doc, _, err := h.s.Ingest(c.Request().Context(), fh.Filename, data)
	if err != nil {
		if apperr.IsKind(err, apperr.KindValidation) {
			return c.JSON(http.StatusBadRequest, map[string]string{"detail": err.Error()})
		}
		c.Logger().Errorf("ingest %s: %v", fh.Filename, err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"detail": "storage unavailable"})
	}

	return c.JSON(http.StatusOK, map[string]any{"id": doc.ID, "filename": doc.Filename})
}
