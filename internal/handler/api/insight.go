package api

import (
	"github.com/labstack/echo/v4"

	models "BizPulse/internal/domain/models"
	"BizPulse/internal/usecase"
	xhttp "BizPulse/pkg/http"
	xlogger "BizPulse/pkg/logger"
)

// InsightHandler exposes the pass-through prediction service endpoints:
// document extraction and sentiment scoring.
type InsightHandler struct {
	logger    *xlogger.Logger
	documents *usecase.DocumentsUseCase
	sentiment *usecase.SentimentUseCase
}

func NewInsightHandler(logger *xlogger.Logger, documents *usecase.DocumentsUseCase, sentiment *usecase.SentimentUseCase) *InsightHandler {
	return &InsightHandler{logger: logger, documents: documents, sentiment: sentiment}
}

func (h *InsightHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/api/v1")
	g.POST("/documents/extract", h.ExtractDocument)
	g.POST("/sentiment", h.AnalyzeSentiment)
}

func (h *InsightHandler) ExtractDocument(c echo.Context) error {
	fh, err := c.FormFile("file")
	if err != nil {
		return xhttp.AppErrorResponse(c, xhttp.ValidationError("file", "file upload is required"))
	}

	src, err := fh.Open()
	if err != nil {
		h.logger.Error("document open error", xlogger.Error(err))
		return xhttp.InternalServerErrorResponse(c)
	}
	defer src.Close()

	res, err := h.documents.Extract(c.Request().Context(),
		fh.Filename,
		fh.Header.Get("Content-Type"),
		c.FormValue("doc_type"),
		fh.Size,
		src,
	)
	if err != nil {
		h.logger.Error("document extract error", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}
	return xhttp.SuccessResponse(c, res)
}

func (h *InsightHandler) AnalyzeSentiment(c echo.Context) error {
	req := &models.SentimentRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	res, err := h.sentiment.Analyze(c.Request().Context(), *req)
	if err != nil {
		h.logger.Error("sentiment error", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}
	return xhttp.SuccessResponse(c, res)
}
