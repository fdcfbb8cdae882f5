package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/nurpe/painel-mulher/internal/aggregate"
	"github.com/nurpe/painel-mulher/internal/auth"
	"github.com/nurpe/painel-mulher/internal/excel"
	"github.com/nurpe/painel-mulher/internal/goals"
	"github.com/nurpe/painel-mulher/internal/http/middleware"
	"github.com/nurpe/painel-mulher/internal/model"
	"github.com/nurpe/painel-mulher/internal/pdf"
	"github.com/nurpe/painel-mulher/internal/period"
	"github.com/nurpe/painel-mulher/internal/region"
	"github.com/nurpe/painel-mulher/internal/service"
)

type stores struct {
	equipment []model.Equipment
	requests  []model.Request
	goals     []model.MonthlyGoal
	listErr   error
}

type equipmentFake struct{ *stores }
type vehicleFake struct{ *stores }
type requestFake struct{ *stores }
type goalFake struct{ *stores }

func (s equipmentFake) List(ctx context.Context) ([]model.Equipment, error) {
	return s.equipment, s.listErr
}

func (s equipmentFake) Get(ctx context.Context, id uuid.UUID) (*model.Equipment, error) {
	for i := range s.equipment {
		if s.equipment[i].ID == id {
			return &s.equipment[i], nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (s equipmentFake) Create(ctx context.Context, e model.Equipment) (*model.Equipment, error) {
	e.ID = uuid.New()
	s.equipment = append(s.equipment, e)
	return &e, nil
}

func (s equipmentFake) Update(ctx context.Context, id uuid.UUID, fields map[string]interface{}) (*model.Equipment, error) {
	return s.Get(ctx, id)
}

func (s equipmentFake) Delete(ctx context.Context, id uuid.UUID) error {
	return gorm.ErrRecordNotFound
}

func (s vehicleFake) List(ctx context.Context) ([]model.Vehicle, error) { return nil, nil }
func (s vehicleFake) Get(ctx context.Context, id uuid.UUID) (*model.Vehicle, error) {
	return nil, gorm.ErrRecordNotFound
}
func (s vehicleFake) Create(ctx context.Context, v model.Vehicle) (*model.Vehicle, error) {
	return &v, nil
}
func (s vehicleFake) Update(ctx context.Context, id uuid.UUID, fields map[string]interface{}) (*model.Vehicle, error) {
	return nil, gorm.ErrRecordNotFound
}
func (s vehicleFake) Delete(ctx context.Context, id uuid.UUID) error { return gorm.ErrRecordNotFound }

func (s requestFake) List(ctx context.Context) ([]model.Request, error) { return s.requests, nil }
func (s requestFake) Get(ctx context.Context, id uuid.UUID) (*model.Request, error) {
	for i := range s.requests {
		if s.requests[i].ID == id {
			return &s.requests[i], nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}
func (s requestFake) Create(ctx context.Context, r model.Request) (*model.Request, error) {
	r.ID = uuid.New()
	s.requests = append(s.requests, r)
	return &r, nil
}
func (s requestFake) Update(ctx context.Context, id uuid.UUID, fields map[string]interface{}) (*model.Request, error) {
	return s.Get(ctx, id)
}
func (s requestFake) Delete(ctx context.Context, id uuid.UUID) error { return nil }
func (s requestFake) Promote(ctx context.Context, requestID uuid.UUID, e model.Equipment) (*model.Equipment, error) {
	e.ID = uuid.New()
	s.equipment = append(s.equipment, e)
	return &e, nil
}

func (s goalFake) ListByPeriod(ctx context.Context, year, month int) ([]model.MonthlyGoal, error) {
	return s.goals, nil
}

func (s goalFake) UpsertMany(ctx context.Context, goals []model.MonthlyGoal) error {
	s.goals = append(s.goals, goals...)
	return nil
}

type tokenFake struct{}

// Parse treats the token itself as the role name.
func (tokenFake) Parse(raw string) (auth.Claims, error) {
	if raw == "bad" {
		return auth.Claims{}, auth.ErrInvalidToken
	}
	return auth.Claims{UserID: uuid.NewSHA1(uuid.NameSpaceOID, []byte(raw)), Email: raw + "@ce.gov.br"}, nil
}

type roleFake map[uuid.UUID]model.Role

func (r roleFake) RoleOf(ctx context.Context, userID uuid.UUID) (model.Role, error) {
	role, ok := r[userID]
	if !ok {
		return "", gorm.ErrRecordNotFound
	}
	return role, nil
}

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestRouter(t *testing.T) (*gin.Engine, *stores) {
	t.Helper()
	st := &stores{}
	regions := region.New()
	agg := aggregate.New(regions, period.PolicyExclude)
	loader := service.NewSnapshotLoader(equipmentFake{st}, vehicleFake{st}, requestFake{st})
	goalService := service.NewGoalService(goalFake{st}, loader, goals.NewScorer(agg, time.UTC), goals.Default)

	handler := NewHandler(Services{
		Equipment: service.NewEquipmentService(equipmentFake{st}, regions),
		Vehicles:  service.NewVehicleService(vehicleFake{st}, equipmentFake{st}, regions),
		Requests:  service.NewRequestService(requestFake{st}, regions),
		Goals:     goalService,
		Dashboard: service.NewDashboardService(loader, agg, regions, time.UTC),
		Reports:   service.NewReportService(loader, agg, goalService, regions, pdf.NewGenerator(), excel.NewGenerator(), time.UTC),
	}, zerolog.Nop(), time.UTC)

	var tokens tokenFake
	roles := roleFake{}
	for _, name := range []string{"admin", "viewer"} {
		claims, _ := tokens.Parse(name)
		roles[claims.UserID] = model.Role(name)
	}

	router := NewRouter(handler, middleware.Auth(tokens, roles), "test", []string{"http://localhost:5173"}, zerolog.Nop())
	return router, st
}

func do(router *gin.Engine, method, path, token, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestHealthAndAuth(t *testing.T) {
	router, _ := newTestRouter(t)

	assert.Equal(t, http.StatusOK, do(router, http.MethodGet, "/healthz", "", "").Code)
	assert.Equal(t, http.StatusUnauthorized, do(router, http.MethodGet, "/regions", "", "").Code)
	assert.Equal(t, http.StatusUnauthorized, do(router, http.MethodGet, "/regions", "bad", "").Code)
	assert.Equal(t, http.StatusForbidden, do(router, http.MethodGet, "/regions", "stranger", "").Code)

	rec := do(router, http.MethodGet, "/regions", "viewer", "")
	require.Equal(t, http.StatusOK, rec.Code)
	data := decode(t, rec)["data"].([]any)
	assert.Len(t, data, 14)
}

func TestCreateEquipment(t *testing.T) {
	router, st := newTestRouter(t)

	rec := do(router, http.MethodPost, "/equipment", "admin", `{"municipio":"Recife","tipo":"Sala Lilás"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	body := decode(t, rec)
	assert.Equal(t, "create equipment", body["operation"])
	assert.Contains(t, body["error"], "unknown municipality")

	rec = do(router, http.MethodPost, "/equipment", "viewer", `{"municipio":"Crato","tipo":"Sala Lilás"}`)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = do(router, http.MethodPost, "/equipment", "admin", `{"municipio":"juazeiro do norte","tipo":"Sala Lilás","possui_patrulha":true}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	body = decode(t, rec)
	assert.Equal(t, "Juazeiro do Norte", body["municipio"])
	assert.Equal(t, true, body["possui_patrulha"])
	assert.Len(t, st.equipment, 1)

	rec = do(router, http.MethodGet, "/equipment/not-a-uuid", "viewer", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(router, http.MethodDelete, "/equipment/"+uuid.NewString(), "admin", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestPromoteRequiresInaugurated(t *testing.T) {
	router, st := newTestRouter(t)
	id := uuid.New()
	st.requests = []model.Request{{ID: id, Municipality: "Crato", EquipmentType: model.EquipmentSalaLilas, Status: model.StatusAprovada}}

	rec := do(router, http.MethodPost, "/requests/"+id.String()+"/promote", "admin", "")
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "promote request", decode(t, rec)["operation"])
	assert.Empty(t, st.equipment)

	st.requests[0].Status = model.StatusInaugurada
	rec = do(router, http.MethodPost, "/requests/"+id.String()+"/promote", "admin", "")
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Len(t, st.equipment, 1)
}

func TestDashboardParams(t *testing.T) {
	router, _ := newTestRouter(t)

	assert.Equal(t, http.StatusBadRequest, do(router, http.MethodGet, "/dashboard/summary?mes=2024-13", "viewer", "").Code)
	assert.Equal(t, http.StatusBadRequest, do(router, http.MethodGet, "/dashboard/summary?inicio=2024-06-30&fim=2024-06-01", "viewer", "").Code)
	assert.Equal(t, http.StatusOK, do(router, http.MethodGet, "/dashboard/summary?inicio=2024-06-01&fim=2024-06-30", "viewer", "").Code)

	rec := do(router, http.MethodGet, "/dashboard/monthly?ano=2024&regiao=Cariri", "viewer", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode(t, rec)["data"], 12)

	rec = do(router, http.MethodGet, "/dashboard/comparison?atual=2024-06", "viewer", "")
	require.Equal(t, http.StatusOK, rec.Code)

	rec = do(router, http.MethodGet, "/map/municipalities", "viewer", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode(t, rec)["data"], 184)
}

func TestGoalsEndpoints(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := do(router, http.MethodPut, "/goals", "admin", `{"mes":"2024-06","metas":[{"regiao":"Cariri","meta_equipamentos":2,"meta_viaturas":3,"meta_cobertura":40}]}`)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = do(router, http.MethodGet, "/goals?mes=2024-06", "viewer", "")
	require.Equal(t, http.StatusOK, rec.Code)
	body := decode(t, rec)
	assert.Equal(t, "2024-06", body["mes"])
	assert.Len(t, body["data"], 14)

	rec = do(router, http.MethodGet, "/dashboard/goals?mes=2024-06", "viewer", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode(t, rec)["regioes"], 14)
}

func TestReportExports(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := do(router, http.MethodGet, "/reports/goals?mes=2024-06&formato=xlsx", "viewer", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, service.ContentTypeXLSX, rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "relatorio-metas-2024-06.xlsx")

	rec = do(router, http.MethodGet, "/reports/comparison?atual=2024-06&anterior=2024-05", "viewer", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "relatorio-comparativo-2024-06-vs-2024-05.pdf")
	assert.True(t, strings.HasPrefix(rec.Body.String(), "%PDF"))

	rec = do(router, http.MethodGet, "/reports/goals?formato=csv", "viewer", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestBackendFailureNamesOperation(t *testing.T) {
	router, st := newTestRouter(t)
	st.listErr = errors.New("connection reset by peer")

	rec := do(router, http.MethodGet, "/equipment", "viewer", "")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	body := decode(t, rec)
	assert.Equal(t, "list equipment", body["operation"])
	assert.Equal(t, "connection reset by peer", body["error"])
}
