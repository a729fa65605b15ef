package http

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yanqian/commit-canvas/internal/domain/chart"
	apperrors "github.com/yanqian/commit-canvas/pkg/errors"
)

// Handler wires the HTTP transport to the chart service.
type Handler struct {
	chartSvc chart.Service
	logger   *slog.Logger
}

// NewHandler constructs the root HTTP handler.
func NewHandler(chartSvc chart.Service, logger *slog.Logger) *Handler {
	return &Handler{
		chartSvc: chartSvc,
		logger:   logger.With("component", "http.handler"),
	}
}

// Health reports liveness.
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Font lists the characters the rasterizer understands.
func (h *Handler) Font(c *gin.Context) {
	c.JSON(http.StatusOK, h.chartSvc.Font())
}

// Preview renders the intensity grid for display.
func (h *Handler) Preview(c *gin.Context) {
	var req chart.CanvasRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", errMessage(err), err))
		return
	}

	resp, err := h.chartSvc.Preview(c.Request.Context(), req)
	if err != nil {
		abortWithError(c, domainError(err))
		return
	}

	c.JSON(http.StatusOK, resp)
}

// Export returns the repository request without calling the generator.
func (h *Handler) Export(c *gin.Context) {
	var req chart.ExportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", errMessage(err), err))
		return
	}

	resp, err := h.chartSvc.Export(c.Request.Context(), req)
	if err != nil {
		abortWithError(c, domainError(err))
		return
	}

	c.JSON(http.StatusOK, resp)
}

// GenerateRepository streams back the archive produced by the generator.
func (h *Handler) GenerateRepository(c *gin.Context) {
	var req chart.ExportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", errMessage(err), err))
		return
	}

	archive, err := h.chartSvc.Generate(c.Request.Context(), req)
	if err != nil {
		abortWithError(c, domainError(err))
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", archive.Filename))
	c.Data(http.StatusOK, archive.ContentType, archive.Data)
}

func domainError(err error) *HTTPError {
	switch {
	case apperrors.IsCode(err, apperrors.CodeInvalidInput):
		return NewHTTPError(http.StatusBadRequest, apperrors.CodeInvalidInput, apperrors.MessageOf(err), err)
	case apperrors.IsCode(err, apperrors.CodeArchive):
		return NewHTTPError(http.StatusBadGateway, apperrors.CodeArchive, apperrors.MessageOf(err), err)
	default:
		return NewHTTPError(http.StatusInternalServerError, apperrors.CodeInternal, "something went wrong", err)
	}
}

func errMessage(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
