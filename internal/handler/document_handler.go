package handler

import (
	"mime"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Eursukkul/booking-microservice/storefront-service/internal/middleware"
	"github.com/Eursukkul/booking-microservice/storefront-service/internal/service"
)

type DocumentHandler struct {
	svc service.DocumentService
}

func NewDocumentHandler(svc service.DocumentService) *DocumentHandler {
	return &DocumentHandler{svc: svc}
}

func (h *DocumentHandler) RegisterRoutes(g *echo.Group) {
	g.GET("/documents", h.ListDocuments)
	g.POST("/documents", h.UploadDocument)
	g.GET("/documents/:id/file", h.DownloadDocument)
	g.DELETE("/documents/:id", h.DeleteDocument)
}

func (h *DocumentHandler) ListDocuments(c echo.Context) error {
	docs, err := h.svc.ListDocuments(c.Request().Context(), middleware.UserID(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, docs)
}

func (h *DocumentHandler) UploadDocument(c echo.Context) error {
	fh, err := c.FormFile("file")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "file is required")
	}
	f, err := fh.Open()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "unreadable file")
	}
	defer f.Close()

	doc, err := h.svc.UploadDocument(c.Request().Context(), middleware.UserID(c), service.Upload{
		Name:        fh.Filename,
		ContentType: fh.Header.Get(echo.HeaderContentType),
		Size:        fh.Size,
		Body:        f,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, doc)
}

// DownloadDocument streams the file of a document owned by the current user.
func (h *DocumentHandler) DownloadDocument(c echo.Context) error {
	doc, rc, err := h.svc.OpenDocument(c.Request().Context(), middleware.UserID(c), c.Param("id"))
	if err != nil {
		return err
	}
	defer rc.Close()

	c.Response().Header().Set(echo.HeaderContentDisposition,
		mime.FormatMediaType("inline", map[string]string{"filename": doc.Name}))
	c.Response().Header().Set(echo.HeaderCacheControl, "private, no-store")
	return c.Stream(http.StatusOK, doc.ContentType, rc)
}

func (h *DocumentHandler) DeleteDocument(c echo.Context) error {
	if err := h.svc.DeleteDocument(c.Request().Context(), middleware.UserID(c), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
