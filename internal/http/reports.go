package http

import (
	"github.com/gin-gonic/gin"

	"github.com/nurpe/painel-mulher/internal/service"
)

func formatParam(c *gin.Context) (service.Format, error) {
	raw := c.Query("formato")
	if raw == "" {
		return service.FormatPDF, nil
	}
	return service.ParseFormat(raw)
}

func (h *Handler) exportComparison(c *gin.Context) {
	principal, ok := h.principal(c)
	if !ok {
		return
	}
	current, previous, ok := h.comparisonPeriods(c)
	if !ok {
		h.badRequest(c, "export comparison", "invalid atual or anterior")
		return
	}
	format, err := formatParam(c)
	if err != nil {
		h.handleError(c, "export comparison", err)
		return
	}

	result, err := h.svc.Reports.Comparison(c.Request.Context(), service.ComparisonReportInput{
		Current:   current,
		Previous:  previous,
		Format:    format,
		Principal: principal,
	})
	if err != nil {
		h.handleError(c, "export comparison", err)
		return
	}
	attachment(c, result.FileName, result.ContentType, result.Content)
}

func (h *Handler) exportGoals(c *gin.Context) {
	principal, ok := h.principal(c)
	if !ok {
		return
	}
	ym, err := monthParam(c, "mes", h.currentMonth())
	if err != nil {
		h.badRequest(c, "export goals", "invalid mes")
		return
	}
	format, err := formatParam(c)
	if err != nil {
		h.handleError(c, "export goals", err)
		return
	}

	result, err := h.svc.Reports.Goals(c.Request.Context(), service.GoalsReportInput{
		Month:     ym,
		Format:    format,
		Principal: principal,
	})
	if err != nil {
		h.handleError(c, "export goals", err)
		return
	}
	attachment(c, result.FileName, result.ContentType, result.Content)
}

func (h *Handler) exportData(c *gin.Context) {
	principal, ok := h.principal(c)
	if !ok {
		return
	}
	result, err := h.svc.Reports.Data(c.Request.Context(), principal)
	if err != nil {
		h.handleError(c, "export data", err)
		return
	}
	attachment(c, result.FileName, result.ContentType, result.Content)
}
