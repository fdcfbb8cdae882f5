package http

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/nurpe/painel-mulher/internal/http/middleware"
	"github.com/nurpe/painel-mulher/internal/model"
	"github.com/nurpe/painel-mulher/internal/period"
	"github.com/nurpe/painel-mulher/internal/service"
)

type Services struct {
	Equipment *service.EquipmentService
	Vehicles  *service.VehicleService
	Requests  *service.RequestService
	Goals     *service.GoalService
	Dashboard *service.DashboardService
	Reports   *service.ReportService
}

type Handler struct {
	svc Services
	log zerolog.Logger
	loc *time.Location
	now func() time.Time
}

func NewHandler(svc Services, log zerolog.Logger, loc *time.Location) *Handler {
	if loc == nil {
		loc = time.UTC
	}
	return &Handler{svc: svc, log: log, loc: loc, now: time.Now}
}

func (h *Handler) Register(router *gin.Engine, authMiddleware gin.HandlerFunc) {
	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	protected := router.Group("/")
	protected.Use(authMiddleware)

	protected.GET("/regions", h.listRegions)
	protected.GET("/map/municipalities", h.mapMunicipalities)

	protected.GET("/equipment", h.listEquipment)
	protected.GET("/equipment/:id", h.getEquipment)
	protected.POST("/equipment", h.createEquipment)
	protected.PATCH("/equipment/:id", h.updateEquipment)
	protected.DELETE("/equipment/:id", h.deleteEquipment)

	protected.GET("/vehicles", h.listVehicles)
	protected.GET("/vehicles/:id", h.getVehicle)
	protected.POST("/vehicles", h.createVehicle)
	protected.PATCH("/vehicles/:id", h.updateVehicle)
	protected.DELETE("/vehicles/:id", h.deleteVehicle)

	protected.GET("/requests", h.listRequests)
	protected.GET("/requests/:id", h.getRequest)
	protected.POST("/requests", h.createRequest)
	protected.PATCH("/requests/:id", h.updateRequest)
	protected.DELETE("/requests/:id", h.deleteRequest)
	protected.POST("/requests/:id/promote", h.promoteRequest)

	protected.GET("/goals", h.listGoals)
	protected.PUT("/goals", h.saveGoals)

	protected.GET("/dashboard/summary", h.summary)
	protected.GET("/dashboard/monthly", h.monthlySeries)
	protected.GET("/dashboard/comparison", h.comparison)
	protected.GET("/dashboard/goals", h.goalProgress)

	protected.GET("/reports/comparison", h.exportComparison)
	protected.GET("/reports/goals", h.exportGoals)
	protected.GET("/reports/data", h.exportData)
}

func (h *Handler) principal(c *gin.Context) (model.Principal, bool) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing principal"})
		return model.Principal{}, false
	}
	return principal, true
}

func (h *Handler) handleError(c *gin.Context, operation string, err error) {
	body := gin.H{"error": err.Error(), "operation": operation}
	switch {
	case errors.Is(err, service.ErrPermissionDenied):
		c.JSON(http.StatusForbidden, body)
	case errors.Is(err, service.ErrInvalidInput), errors.Is(err, service.ErrUnknownMunicipality):
		c.JSON(http.StatusBadRequest, body)
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, body)
	case errors.Is(err, service.ErrInvalidTransition),
		errors.Is(err, service.ErrNotInaugurated),
		errors.Is(err, service.ErrAlreadyPromoted):
		c.JSON(http.StatusConflict, body)
	default:
		h.log.Error().Err(err).Str("operation", operation).Msg("request failed")
		c.JSON(http.StatusInternalServerError, body)
	}
}

func (h *Handler) badRequest(c *gin.Context, operation, message string) {
	c.JSON(http.StatusBadRequest, gin.H{"error": message, "operation": operation})
}

func parseID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(strings.TrimSpace(c.Param("id")))
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}

func (h *Handler) currentMonth() period.YearMonth {
	return period.Of(h.now().In(h.loc))
}

// monthParam reads a YYYY-MM query parameter, defaulting to fallback when absent.
func monthParam(c *gin.Context, name string, fallback period.YearMonth) (period.YearMonth, error) {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		return fallback, nil
	}
	return period.ParseYearMonth(raw)
}

func (h *Handler) parseDate(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, service.ErrInvalidInput
	}
	layouts := []string{
		time.RFC3339,
		"2006-01-02",
		"2006-01-02T15:04:05",
	}
	for _, layout := range layouts {
		if parsed, err := time.ParseInLocation(layout, raw, h.loc); err == nil {
			return parsed, nil
		}
	}
	return time.Time{}, service.ErrInvalidInput
}

func (h *Handler) parseDatePtr(raw *string) (*time.Time, error) {
	if raw == nil || strings.TrimSpace(*raw) == "" {
		return nil, nil
	}
	t, err := h.parseDate(*raw)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func attachment(c *gin.Context, fileName, contentType string, content []byte) {
	c.Header("Content-Type", contentType)
	c.Header("Content-Disposition", "attachment; filename=\""+fileName+"\"")
	c.Data(http.StatusOK, contentType, content)
}
