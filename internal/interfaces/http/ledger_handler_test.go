package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/kardex-api/internal/application/ledger"
	"github.com/tu-usuario/kardex-api/internal/application/usecase"
	"github.com/tu-usuario/kardex-api/internal/domain"
	"github.com/tu-usuario/kardex-api/internal/domain/entity"
	"github.com/tu-usuario/kardex-api/internal/domain/repository"
	apphttp "github.com/tu-usuario/kardex-api/internal/interfaces/http"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria para probar la API completa (router + middlewares + handlers
// + casos de uso reales) sin PostgreSQL.
// ──────────────────────────────────────────────────────────────────────────────

type apiStore struct {
	mu        sync.Mutex
	items     map[string]*entity.Item
	movements []*entity.Movement
	nextID    int64
}

func (s *apiStore) seedItem(id string, qty int64) {
	s.items[id] = &entity.Item{
		ID:            id,
		Code:          "BRG-" + id,
		Name:          "ítem " + id,
		Unit:          "pcs",
		StockQuantity: qty,
		CreatedAt:     time.Now(),
		UpdatedAt:     time.Now(),
	}
}

type apiItemRepo struct {
	s  *apiStore
	tx bool
}

func (r *apiItemRepo) lock() func() {
	if r.tx {
		return func() {}
	}
	r.s.mu.Lock()
	return r.s.mu.Unlock
}

func (r *apiItemRepo) Create(item *entity.Item) error {
	defer r.lock()()
	for _, existing := range r.s.items {
		if existing.Code == item.Code {
			return domain.ErrDuplicateCode
		}
	}
	cp := *item
	r.s.items[item.ID] = &cp
	return nil
}

func (r *apiItemRepo) GetByID(id string) (*entity.Item, error) {
	defer r.lock()()
	item, ok := r.s.items[id]
	if !ok {
		return nil, nil
	}
	cp := *item
	return &cp, nil
}

func (r *apiItemRepo) GetByCode(code string) (*entity.Item, error) {
	defer r.lock()()
	for _, item := range r.s.items {
		if item.Code == code {
			cp := *item
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *apiItemRepo) GetForUpdate(id string) (*entity.Item, error) {
	return r.GetByID(id)
}

func (r *apiItemRepo) Update(item *entity.Item) error {
	defer r.lock()()
	stored, ok := r.s.items[item.ID]
	if !ok {
		return domain.ErrNotFound
	}
	qty := stored.StockQuantity
	cp := *item
	cp.StockQuantity = qty
	r.s.items[item.ID] = &cp
	return nil
}

func (r *apiItemRepo) AdjustQuantity(id string, delta int64) error {
	defer r.lock()()
	item, ok := r.s.items[id]
	if !ok {
		return domain.ErrNotFound
	}
	if item.StockQuantity+delta < 0 {
		return domain.ErrInvariantViolation
	}
	item.StockQuantity += delta
	return nil
}

func (r *apiItemRepo) List(search, category string, limit, offset int) ([]*entity.Item, error) {
	defer r.lock()()
	var list []*entity.Item
	for _, item := range r.s.items {
		if search != "" && !strings.Contains(item.Name, search) && !strings.Contains(item.Code, search) {
			continue
		}
		if category != "" && item.Category != category {
			continue
		}
		cp := *item
		list = append(list, &cp)
	}
	return list, nil
}

func (r *apiItemRepo) Categories() ([]string, error) { return nil, nil }

type apiMovementRepo struct {
	s  *apiStore
	tx bool
}

func (r *apiMovementRepo) lock() func() {
	if r.tx {
		return func() {}
	}
	r.s.mu.Lock()
	return r.s.mu.Unlock
}

func (r *apiMovementRepo) Create(m *entity.Movement) error {
	defer r.lock()()
	r.s.nextID++
	m.ID = r.s.nextID
	m.CreatedAt = time.Now()
	cp := *m
	r.s.movements = append(r.s.movements, &cp)
	return nil
}

func (r *apiMovementRepo) GetByID(id int64) (*entity.Movement, error) {
	defer r.lock()()
	for _, m := range r.s.movements {
		if m.ID == id {
			cp := *m
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *apiMovementRepo) List(filter repository.MovementFilter) ([]*entity.Movement, error) {
	defer r.lock()()
	var list []*entity.Movement
	for i := len(r.s.movements) - 1; i >= 0; i-- {
		m := r.s.movements[i]
		if filter.ItemID != "" && m.ItemID != filter.ItemID {
			continue
		}
		if filter.Direction != "" && m.Direction != filter.Direction {
			continue
		}
		cp := *m
		list = append(list, &cp)
	}
	if filter.Limit > 0 && filter.Limit < len(list) {
		list = list[:filter.Limit]
	}
	return list, nil
}

func (r *apiMovementRepo) SumByItem(itemID string) (int64, error) {
	defer r.lock()()
	var sum int64
	for _, m := range r.s.movements {
		if m.ItemID == itemID {
			sum += m.SignedQuantity()
		}
	}
	return sum, nil
}

type apiTxRunner struct {
	s *apiStore
}

func (r *apiTxRunner) Run(ctx context.Context, fn func(
	itemRepo repository.ItemRepository,
	movementRepo repository.MovementRepository,
) error) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	itemsBackup := make(map[string]*entity.Item, len(r.s.items))
	for k, v := range r.s.items {
		cp := *v
		itemsBackup[k] = &cp
	}
	movementsLen := len(r.s.movements)
	nextID := r.s.nextID

	err := fn(&apiItemRepo{s: r.s, tx: true}, &apiMovementRepo{s: r.s, tx: true})
	if err != nil {
		r.s.items = itemsBackup
		r.s.movements = r.s.movements[:movementsLen]
		r.s.nextID = nextID
		return err
	}
	return nil
}

type apiAnalyticsRepo struct {
	s *apiStore
}

func (r *apiAnalyticsRepo) CountItems() (int64, error) {
	return int64(len(r.s.items)), nil
}
func (r *apiAnalyticsRepo) CountLowStock(threshold int64) (int64, error) { return 0, nil }
func (r *apiAnalyticsRepo) CountMovementsBetween(from, to time.Time) (int64, error) {
	return int64(len(r.s.movements)), nil
}
func (r *apiAnalyticsRepo) TotalStockValue() (decimal.Decimal, error) {
	return decimal.Zero, nil
}
func (r *apiAnalyticsRepo) MonthlyMovementCounts(year int) ([]repository.MonthlyMovementCount, error) {
	counts := make([]repository.MonthlyMovementCount, 12)
	for i := range counts {
		counts[i] = repository.MonthlyMovementCount{Month: i + 1}
	}
	return counts, nil
}
func (r *apiAnalyticsRepo) LowStockItems(threshold int64, limit int) ([]*entity.Item, error) {
	return nil, nil
}

// buildAPIApp levanta la API completa sobre los fakes.
func buildAPIApp(s *apiStore) *fiber.App {
	itemRepo := &apiItemRepo{s: s}
	movementRepo := &apiMovementRepo{s: s}
	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		ItemUC:      usecase.NewItemUseCase(itemRepo),
		DashboardUC: usecase.NewDashboardUseCase(&apiAnalyticsRepo{s: s}, movementRepo, itemRepo),
		Record:      ledger.NewRecordMovementUseCase(&apiTxRunner{s: s}, itemRepo),
		Queries:     ledger.NewQueryUseCase(movementRepo, itemRepo),
		JWTSecret:   testJWTSecret,
	})
	return app
}

func jsonRequest(t *testing.T, app *fiber.App, method, path, token string, body interface{}) *http.Response {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", token)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decodeBody(t *testing.T, resp *http.Response) map[string]interface{} {
	t.Helper()
	defer resp.Body.Close()
	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return body
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests de la API del kardex
// ──────────────────────────────────────────────────────────────────────────────

func TestAPI_RecordMovement_FlujoCompleto(t *testing.T) {
	s := &apiStore{items: make(map[string]*entity.Item)}
	app := buildAPIApp(s)
	token := tokenForRole(t, apphttp.RoleStaff)

	// Entrada de 50 unidades.
	resp := jsonRequest(t, app, http.MethodPost, "/api/movements", token, map[string]interface{}{
		"item_id":   "item-1",
		"direction": "in",
		"quantity":  50,
		"supplier":  "PT Sumber Makmur",
	})
	// El ítem todavía no existe.
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()

	s.seedItem("item-1", 0)
	resp = jsonRequest(t, app, http.MethodPost, "/api/movements", token, map[string]interface{}{
		"item_id":   "item-1",
		"direction": "in",
		"quantity":  50,
		"supplier":  "PT Sumber Makmur",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	body := decodeBody(t, resp)
	assert.Equal(t, float64(1), body["id"])
	assert.Equal(t, "in", body["direction"])
	assert.Equal(t, "PT Sumber Makmur", body["counterparty"])
	assert.Equal(t, testActorID, body["actor_id"], "el actor sale del token, no del body")

	// El GET del ítem refleja el stock actualizado.
	resp = jsonRequest(t, app, http.MethodGet, "/api/items/item-1", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	item := decodeBody(t, resp)
	assert.Equal(t, float64(50), item["stock_quantity"])

	// El kardex del ítem lista el asiento.
	resp = jsonRequest(t, app, http.MethodGet, "/api/items/item-1/movements", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	listBody := decodeBody(t, resp)
	movements := listBody["movements"].([]interface{})
	require.Len(t, movements, 1)
}

func TestAPI_RecordMovement_SinToken(t *testing.T) {
	s := &apiStore{items: make(map[string]*entity.Item)}
	app := buildAPIApp(s)

	resp := jsonRequest(t, app, http.MethodPost, "/api/movements", "", map[string]interface{}{
		"item_id": "item-1", "direction": "in", "quantity": 1,
	})
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAPI_RecordMovement_StockInsuficiente(t *testing.T) {
	s := &apiStore{items: make(map[string]*entity.Item)}
	s.seedItem("item-1", 30)
	app := buildAPIApp(s)
	token := tokenForRole(t, apphttp.RoleStaff)

	resp := jsonRequest(t, app, http.MethodPost, "/api/movements", token, map[string]interface{}{
		"item_id":     "item-1",
		"direction":   "out",
		"quantity":    999,
		"destination": "Bodega Norte",
	})
	require.Equal(t, http.StatusConflict, resp.StatusCode)
	body := decodeBody(t, resp)
	assert.Equal(t, "INSUFFICIENT_STOCK", body["code"])
	assert.Equal(t, float64(30), body["available"], "el 409 incluye el stock disponible")

	// El rechazo no movió el stock.
	assert.Equal(t, int64(30), s.items["item-1"].StockQuantity)
}

func TestAPI_RecordMovement_Validacion(t *testing.T) {
	s := &apiStore{items: make(map[string]*entity.Item)}
	s.seedItem("item-1", 10)
	app := buildAPIApp(s)
	token := tokenForRole(t, apphttp.RoleStaff)

	cases := []struct {
		name string
		body map[string]interface{}
	}{
		{"dirección inválida", map[string]interface{}{"item_id": "item-1", "direction": "transfer", "quantity": 5}},
		{"cantidad cero", map[string]interface{}{"item_id": "item-1", "direction": "in", "quantity": 0}},
		{"cantidad negativa", map[string]interface{}{"item_id": "item-1", "direction": "out", "quantity": -3}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resp := jsonRequest(t, app, http.MethodPost, "/api/movements", token, tc.body)
			defer resp.Body.Close()
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		})
	}
}

func TestAPI_ItemCreate_SoloAdmin(t *testing.T) {
	s := &apiStore{items: make(map[string]*entity.Item)}
	app := buildAPIApp(s)

	payload := map[string]interface{}{"code": "BRG-001", "name": "Tornillo"}

	resp := jsonRequest(t, app, http.MethodPost, "/api/items", tokenForRole(t, apphttp.RoleStaff), payload)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode, "staff no puede crear ítems")
	resp.Body.Close()

	resp = jsonRequest(t, app, http.MethodPost, "/api/items", tokenForRole(t, apphttp.RoleAdmin), payload)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	body := decodeBody(t, resp)
	assert.Equal(t, "BRG-001", body["code"])
	assert.Equal(t, float64(0), body["stock_quantity"])

	// Código repetido → 409 DUPLICATE_CODE.
	resp = jsonRequest(t, app, http.MethodPost, "/api/items", tokenForRole(t, apphttp.RoleAdmin), payload)
	require.Equal(t, http.StatusConflict, resp.StatusCode)
	dup := decodeBody(t, resp)
	assert.Equal(t, "DUPLICATE_CODE", dup["code"])
}

func TestAPI_Reconcile(t *testing.T) {
	s := &apiStore{items: make(map[string]*entity.Item)}
	s.seedItem("item-1", 0)
	app := buildAPIApp(s)
	token := tokenForRole(t, apphttp.RoleStaff)

	resp := jsonRequest(t, app, http.MethodPost, "/api/movements", token, map[string]interface{}{
		"item_id": "item-1", "direction": "in", "quantity": 8,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	resp = jsonRequest(t, app, http.MethodGet, "/api/items/item-1/reconcile", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body := decodeBody(t, resp)
	assert.Equal(t, false, body["drift"])
	assert.Equal(t, float64(8), body["cached"])
	assert.Equal(t, float64(8), body["recomputed"])
}

func TestAPI_GetMovement_NoExiste(t *testing.T) {
	s := &apiStore{items: make(map[string]*entity.Item)}
	app := buildAPIApp(s)

	resp := jsonRequest(t, app, http.MethodGet, "/api/movements/99", tokenForRole(t, apphttp.RoleStaff), nil)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
