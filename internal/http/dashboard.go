package http

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/nurpe/painel-mulher/internal/model"
	"github.com/nurpe/painel-mulher/internal/period"
	"github.com/nurpe/painel-mulher/internal/service"
)

type goalItem struct {
	Region    string  `json:"regiao" binding:"required"`
	Equipment int     `json:"meta_equipamentos"`
	Vehicles  int     `json:"meta_viaturas"`
	Coverage  float64 `json:"meta_cobertura"`
}

type saveGoalsRequest struct {
	Month string     `json:"mes" binding:"required"`
	Goals []goalItem `json:"metas" binding:"required"`
}

func (h *Handler) listRegions(c *gin.Context) {
	if _, ok := h.principal(c); !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": h.svc.Dashboard.Regions()})
}

func (h *Handler) mapMunicipalities(c *gin.Context) {
	principal, ok := h.principal(c)
	if !ok {
		return
	}
	entries, err := h.svc.Dashboard.Map(c.Request.Context(), principal)
	if err != nil {
		h.handleError(c, "load map", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": entries})
}

// summary accepts either mes=YYYY-MM or inicio/fim dates; the current month
// is used when neither is given.
func (h *Handler) summary(c *gin.Context) {
	principal, ok := h.principal(c)
	if !ok {
		return
	}

	var input service.SummaryInput
	start, end := c.Query("inicio"), c.Query("fim")
	if start != "" || end != "" {
		from, err := h.parseDate(start)
		if err != nil {
			h.badRequest(c, "load summary", "invalid inicio")
			return
		}
		to, err := h.parseDate(end)
		if err != nil {
			h.badRequest(c, "load summary", "invalid fim")
			return
		}
		input.Start = from
		input.End = endOfDay(to)
	} else {
		ym, err := monthParam(c, "mes", h.currentMonth())
		if err != nil {
			h.badRequest(c, "load summary", "invalid mes")
			return
		}
		input.Month = &ym
	}

	result, err := h.svc.Dashboard.Summary(c.Request.Context(), principal, input)
	if err != nil {
		h.handleError(c, "load summary", err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *Handler) monthlySeries(c *gin.Context) {
	principal, ok := h.principal(c)
	if !ok {
		return
	}
	year := h.currentMonth().Year
	if raw := strings.TrimSpace(c.Query("ano")); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			h.badRequest(c, "load monthly series", "invalid ano")
			return
		}
		year = parsed
	}

	points, err := h.svc.Dashboard.MonthlySeries(c.Request.Context(), principal, year, model.Region(strings.TrimSpace(c.Query("regiao"))))
	if err != nil {
		h.handleError(c, "load monthly series", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ano": year, "data": points})
}

func (h *Handler) comparisonPeriods(c *gin.Context) (period.YearMonth, period.YearMonth, bool) {
	current, err := monthParam(c, "atual", h.currentMonth())
	if err != nil {
		return period.YearMonth{}, period.YearMonth{}, false
	}
	previous, err := monthParam(c, "anterior", current.Previous())
	if err != nil {
		return period.YearMonth{}, period.YearMonth{}, false
	}
	return current, previous, true
}

func (h *Handler) comparison(c *gin.Context) {
	principal, ok := h.principal(c)
	if !ok {
		return
	}
	current, previous, ok := h.comparisonPeriods(c)
	if !ok {
		h.badRequest(c, "load comparison", "invalid atual or anterior")
		return
	}
	cmp, err := h.svc.Dashboard.Comparison(c.Request.Context(), principal, current, previous)
	if err != nil {
		h.handleError(c, "load comparison", err)
		return
	}
	c.JSON(http.StatusOK, cmp)
}

func (h *Handler) goalProgress(c *gin.Context) {
	principal, ok := h.principal(c)
	if !ok {
		return
	}
	ym, err := monthParam(c, "mes", h.currentMonth())
	if err != nil {
		h.badRequest(c, "load goal progress", "invalid mes")
		return
	}
	result, err := h.svc.Goals.Progress(c.Request.Context(), principal, ym)
	if err != nil {
		h.handleError(c, "load goal progress", err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *Handler) listGoals(c *gin.Context) {
	principal, ok := h.principal(c)
	if !ok {
		return
	}
	ym, err := monthParam(c, "mes", h.currentMonth())
	if err != nil {
		h.badRequest(c, "list goals", "invalid mes")
		return
	}
	items, err := h.svc.Goals.List(c.Request.Context(), principal, ym)
	if err != nil {
		h.handleError(c, "list goals", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"mes": ym.String(), "data": items})
}

func (h *Handler) saveGoals(c *gin.Context) {
	principal, ok := h.principal(c)
	if !ok {
		return
	}
	var req saveGoalsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, "save goals", err.Error())
		return
	}
	ym, err := period.ParseYearMonth(req.Month)
	if err != nil {
		h.badRequest(c, "save goals", "invalid mes")
		return
	}

	inputs := make([]service.GoalInput, 0, len(req.Goals))
	for _, g := range req.Goals {
		inputs = append(inputs, service.GoalInput{
			Region:    model.Region(g.Region),
			Equipment: g.Equipment,
			Vehicles:  g.Vehicles,
			Coverage:  g.Coverage,
		})
	}

	items, err := h.svc.Goals.Save(c.Request.Context(), principal, ym, inputs)
	if err != nil {
		h.handleError(c, "save goals", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"mes": ym.String(), "data": items})
}

func endOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location()).AddDate(0, 0, 1).Add(-time.Nanosecond)
}
