package http

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/nurpe/painel-mulher/internal/model"
	"github.com/nurpe/painel-mulher/internal/service"
)

type equipmentRequest struct {
	Municipality *string `json:"municipio"`
	Type         *string `json:"tipo"`
	HasPatrol    *bool   `json:"possui_patrulha"`
	Address      *string `json:"endereco"`
	Phone        *string `json:"telefone"`
	Responsible  *string `json:"responsavel"`
	Email        *string `json:"email"`
	Notes        *string `json:"observacoes"`
}

type vehicleRequest struct {
	Municipality      *string `json:"municipio"`
	PatrolType        *string `json:"tipo_patrulha"`
	LinkedToEquipment *bool   `json:"vinculada_equipamento"`
	EquipmentID       *string `json:"equipamento_id"`
	Unlink            bool    `json:"desvincular"`
	Organization      *string `json:"orgao_responsavel"`
	Quantity          *int    `json:"quantidade"`
	ImplantedAt       *string `json:"data_implantacao"`
	Notes             *string `json:"observacoes"`
}

type requestRequest struct {
	Municipality    *string `json:"municipio"`
	EquipmentType   *string `json:"tipo_equipamento"`
	Status          *string `json:"status"`
	ReceivedPatrol  *bool   `json:"recebeu_patrulha"`
	GuardStructured *bool   `json:"guarda_estruturada"`
	KitDelivered    *bool   `json:"kit_entregue"`
	TrainingDone    *bool   `json:"capacitacao_realizada"`
	ProcessNumber   *string `json:"numero_processo"`
	Notes           *string `json:"observacoes"`
}

func str(v *string) string {
	if v == nil {
		return ""
	}
	return *v
}

func flag(v *bool) bool {
	return v != nil && *v
}

func (h *Handler) listEquipment(c *gin.Context) {
	principal, ok := h.principal(c)
	if !ok {
		return
	}
	items, err := h.svc.Equipment.List(c.Request.Context(), principal)
	if err != nil {
		h.handleError(c, "list equipment", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": items})
}

func (h *Handler) getEquipment(c *gin.Context) {
	principal, ok := h.principal(c)
	if !ok {
		return
	}
	id, ok := parseID(c)
	if !ok {
		h.badRequest(c, "get equipment", "invalid id")
		return
	}
	item, err := h.svc.Equipment.Get(c.Request.Context(), principal, id)
	if err != nil {
		h.handleError(c, "get equipment", err)
		return
	}
	c.JSON(http.StatusOK, item)
}

func (h *Handler) createEquipment(c *gin.Context) {
	principal, ok := h.principal(c)
	if !ok {
		return
	}
	var req equipmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, "create equipment", err.Error())
		return
	}

	item, err := h.svc.Equipment.Create(c.Request.Context(), principal, service.EquipmentInput{
		Municipality: str(req.Municipality),
		Type:         model.EquipmentType(str(req.Type)),
		HasPatrol:    flag(req.HasPatrol),
		Address:      str(req.Address),
		Phone:        str(req.Phone),
		Responsible:  str(req.Responsible),
		Email:        str(req.Email),
		Notes:        str(req.Notes),
	})
	if err != nil {
		h.handleError(c, "create equipment", err)
		return
	}
	c.JSON(http.StatusCreated, item)
}

func (h *Handler) updateEquipment(c *gin.Context) {
	principal, ok := h.principal(c)
	if !ok {
		return
	}
	id, ok := parseID(c)
	if !ok {
		h.badRequest(c, "update equipment", "invalid id")
		return
	}
	var req equipmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, "update equipment", err.Error())
		return
	}

	patch := service.EquipmentPatch{
		Municipality: req.Municipality,
		HasPatrol:    req.HasPatrol,
		Address:      req.Address,
		Phone:        req.Phone,
		Responsible:  req.Responsible,
		Email:        req.Email,
		Notes:        req.Notes,
	}
	if req.Type != nil {
		t := model.EquipmentType(*req.Type)
		patch.Type = &t
	}

	item, err := h.svc.Equipment.Update(c.Request.Context(), principal, id, patch)
	if err != nil {
		h.handleError(c, "update equipment", err)
		return
	}
	c.JSON(http.StatusOK, item)
}

func (h *Handler) deleteEquipment(c *gin.Context) {
	principal, ok := h.principal(c)
	if !ok {
		return
	}
	id, ok := parseID(c)
	if !ok {
		h.badRequest(c, "delete equipment", "invalid id")
		return
	}
	if err := h.svc.Equipment.Delete(c.Request.Context(), principal, id); err != nil {
		h.handleError(c, "delete equipment", err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) listVehicles(c *gin.Context) {
	principal, ok := h.principal(c)
	if !ok {
		return
	}
	items, err := h.svc.Vehicles.List(c.Request.Context(), principal)
	if err != nil {
		h.handleError(c, "list vehicles", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": items})
}

func (h *Handler) getVehicle(c *gin.Context) {
	principal, ok := h.principal(c)
	if !ok {
		return
	}
	id, ok := parseID(c)
	if !ok {
		h.badRequest(c, "get vehicle", "invalid id")
		return
	}
	item, err := h.svc.Vehicles.Get(c.Request.Context(), principal, id)
	if err != nil {
		h.handleError(c, "get vehicle", err)
		return
	}
	c.JSON(http.StatusOK, item)
}

func parseOptionalID(raw *string) (*uuid.UUID, bool) {
	if raw == nil || strings.TrimSpace(*raw) == "" {
		return nil, true
	}
	id, err := uuid.Parse(strings.TrimSpace(*raw))
	if err != nil {
		return nil, false
	}
	return &id, true
}

func (h *Handler) createVehicle(c *gin.Context) {
	principal, ok := h.principal(c)
	if !ok {
		return
	}
	var req vehicleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, "create vehicle", err.Error())
		return
	}
	equipmentID, ok := parseOptionalID(req.EquipmentID)
	if !ok {
		h.badRequest(c, "create vehicle", "invalid equipamento_id")
		return
	}
	implantedAt, err := h.parseDatePtr(req.ImplantedAt)
	if err != nil {
		h.badRequest(c, "create vehicle", "invalid data_implantacao")
		return
	}
	quantity := 1
	if req.Quantity != nil {
		quantity = *req.Quantity
	}

	item, err := h.svc.Vehicles.Create(c.Request.Context(), principal, service.VehicleInput{
		Municipality:      str(req.Municipality),
		PatrolType:        str(req.PatrolType),
		LinkedToEquipment: flag(req.LinkedToEquipment),
		EquipmentID:       equipmentID,
		Organization:      model.ResponsibleOrg(str(req.Organization)),
		Quantity:          quantity,
		ImplantedAt:       implantedAt,
		Notes:             str(req.Notes),
	})
	if err != nil {
		h.handleError(c, "create vehicle", err)
		return
	}
	c.JSON(http.StatusCreated, item)
}

func (h *Handler) updateVehicle(c *gin.Context) {
	principal, ok := h.principal(c)
	if !ok {
		return
	}
	id, ok := parseID(c)
	if !ok {
		h.badRequest(c, "update vehicle", "invalid id")
		return
	}
	var req vehicleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, "update vehicle", err.Error())
		return
	}
	equipmentID, ok := parseOptionalID(req.EquipmentID)
	if !ok {
		h.badRequest(c, "update vehicle", "invalid equipamento_id")
		return
	}
	implantedAt, err := h.parseDatePtr(req.ImplantedAt)
	if err != nil {
		h.badRequest(c, "update vehicle", "invalid data_implantacao")
		return
	}

	patch := service.VehiclePatch{
		Municipality:      req.Municipality,
		PatrolType:        req.PatrolType,
		LinkedToEquipment: req.LinkedToEquipment,
		EquipmentID:       equipmentID,
		ClearEquipment:    req.Unlink,
		Quantity:          req.Quantity,
		ImplantedAt:       implantedAt,
		Notes:             req.Notes,
	}
	if req.Organization != nil {
		org := model.ResponsibleOrg(*req.Organization)
		patch.Organization = &org
	}

	item, err := h.svc.Vehicles.Update(c.Request.Context(), principal, id, patch)
	if err != nil {
		h.handleError(c, "update vehicle", err)
		return
	}
	c.JSON(http.StatusOK, item)
}

func (h *Handler) deleteVehicle(c *gin.Context) {
	principal, ok := h.principal(c)
	if !ok {
		return
	}
	id, ok := parseID(c)
	if !ok {
		h.badRequest(c, "delete vehicle", "invalid id")
		return
	}
	if err := h.svc.Vehicles.Delete(c.Request.Context(), principal, id); err != nil {
		h.handleError(c, "delete vehicle", err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) listRequests(c *gin.Context) {
	principal, ok := h.principal(c)
	if !ok {
		return
	}
	items, err := h.svc.Requests.List(c.Request.Context(), principal)
	if err != nil {
		h.handleError(c, "list requests", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": items})
}

func (h *Handler) getRequest(c *gin.Context) {
	principal, ok := h.principal(c)
	if !ok {
		return
	}
	id, ok := parseID(c)
	if !ok {
		h.badRequest(c, "get request", "invalid id")
		return
	}
	item, err := h.svc.Requests.Get(c.Request.Context(), principal, id)
	if err != nil {
		h.handleError(c, "get request", err)
		return
	}
	c.JSON(http.StatusOK, item)
}

func (h *Handler) createRequest(c *gin.Context) {
	principal, ok := h.principal(c)
	if !ok {
		return
	}
	var req requestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, "create request", err.Error())
		return
	}

	item, err := h.svc.Requests.Create(c.Request.Context(), principal, service.RequestInput{
		Municipality:    str(req.Municipality),
		EquipmentType:   model.EquipmentType(str(req.EquipmentType)),
		Status:          model.RequestStatus(str(req.Status)),
		ReceivedPatrol:  flag(req.ReceivedPatrol),
		GuardStructured: flag(req.GuardStructured),
		KitDelivered:    flag(req.KitDelivered),
		TrainingDone:    flag(req.TrainingDone),
		ProcessNumber:   req.ProcessNumber,
		Notes:           str(req.Notes),
	})
	if err != nil {
		h.handleError(c, "create request", err)
		return
	}
	c.JSON(http.StatusCreated, item)
}

func (h *Handler) updateRequest(c *gin.Context) {
	principal, ok := h.principal(c)
	if !ok {
		return
	}
	id, ok := parseID(c)
	if !ok {
		h.badRequest(c, "update request", "invalid id")
		return
	}
	var req requestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, "update request", err.Error())
		return
	}

	patch := service.RequestPatch{
		Municipality:    req.Municipality,
		ReceivedPatrol:  req.ReceivedPatrol,
		GuardStructured: req.GuardStructured,
		KitDelivered:    req.KitDelivered,
		TrainingDone:    req.TrainingDone,
		ProcessNumber:   req.ProcessNumber,
		Notes:           req.Notes,
	}
	if req.EquipmentType != nil {
		t := model.EquipmentType(*req.EquipmentType)
		patch.EquipmentType = &t
	}
	if req.Status != nil {
		s := model.RequestStatus(*req.Status)
		patch.Status = &s
	}

	item, err := h.svc.Requests.Update(c.Request.Context(), principal, id, patch)
	if err != nil {
		h.handleError(c, "update request", err)
		return
	}
	c.JSON(http.StatusOK, item)
}

func (h *Handler) deleteRequest(c *gin.Context) {
	principal, ok := h.principal(c)
	if !ok {
		return
	}
	id, ok := parseID(c)
	if !ok {
		h.badRequest(c, "delete request", "invalid id")
		return
	}
	if err := h.svc.Requests.Delete(c.Request.Context(), principal, id); err != nil {
		h.handleError(c, "delete request", err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) promoteRequest(c *gin.Context) {
	principal, ok := h.principal(c)
	if !ok {
		return
	}
	id, ok := parseID(c)
	if !ok {
		h.badRequest(c, "promote request", "invalid id")
		return
	}
	result, err := h.svc.Requests.Promote(c.Request.Context(), principal, id)
	if err != nil {
		h.handleError(c, "promote request", err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"solicitacao": result.Request,
		"equipamento": result.Equipment,
	})
}
