package api

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/xuri/excelize/v2"

	models "BizPulse/internal/domain/models"
	"BizPulse/internal/usecase"
	xhttp "BizPulse/pkg/http"
	xlogger "BizPulse/pkg/logger"
)

// ReportsHandler exposes the aggregation endpoints.
type ReportsHandler struct {
	logger  *xlogger.Logger
	reports *usecase.ReportsUseCase
}

func NewReportsHandler(logger *xlogger.Logger, reports *usecase.ReportsUseCase) *ReportsHandler {
	return &ReportsHandler{logger: logger, reports: reports}
}

func (h *ReportsHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/api/v1/reports")
	g.GET("/sales-trend", h.SalesTrend)
	g.GET("/sales-trend/export", h.SalesTrendExport)
	g.GET("/profitability", h.Profitability)
	g.GET("/top-clients", h.TopClients)
}

func (h *ReportsHandler) SalesTrend(c echo.Context) error {
	req := &models.SalesTrendRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	res, err := h.reports.SalesTrend(c.Request().Context(), *req)
	if err != nil {
		h.logger.Error("sales trend error", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}
	return xhttp.SuccessResponse(c, res)
}

// SalesTrendExport renders the same aggregation as an xlsx workbook.
func (h *ReportsHandler) SalesTrendExport(c echo.Context) error {
	req := &models.SalesTrendRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	res, err := h.reports.SalesTrend(c.Request().Context(), *req)
	if err != nil {
		h.logger.Error("sales trend export error", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}

	f := excelize.NewFile()
	defer f.Close()
	sheet := "Sales Trend"
	f.SetSheetName("Sheet1", sheet)

	headers := []string{"Period", "Orders", "Total", "Average"}
	for i, name := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, name)
	}
	for row, b := range res.Buckets {
		values := []interface{}{b.Period, b.Count, b.Sum, b.Average}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			f.SetCellValue(sheet, cell, v)
		}
	}

	filename := fmt.Sprintf("sales-trend-%s.xlsx", res.Period)
	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf(`attachment; filename=%q`, filename))
	c.Response().Header().Set(echo.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Response().WriteHeader(http.StatusOK)
	return f.Write(c.Response())
}

func (h *ReportsHandler) Profitability(c echo.Context) error {
	req := &models.ProfitabilityRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	res, err := h.reports.Profitability(c.Request().Context(), *req)
	if err != nil {
		h.logger.Error("profitability error", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}
	return xhttp.SuccessResponse(c, res)
}

func (h *ReportsHandler) TopClients(c echo.Context) error {
	req := &models.TopClientsRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	res, err := h.reports.TopClients(c.Request().Context(), *req)
	if err != nil {
		h.logger.Error("top clients error", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}
	return xhttp.SuccessResponse(c, res)
}
