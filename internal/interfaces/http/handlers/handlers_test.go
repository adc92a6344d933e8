package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"nafs-registration.backend/internal/domain/entities"
	domainerrors "nafs-registration.backend/internal/domain/errors"
	"nafs-registration.backend/internal/pricing"
)

// stubRegistrationService implements the handler-facing service
// interfaces with canned responses.
type stubRegistrationService struct {
	createResp  *entities.CreateRegistrationResponse
	createErr   error
	lookupResp  *entities.RegistrationSummary
	lookupErr   error
	confirmResp *entities.Registration
	confirmErr  error
	listResp    []*entities.Registration
	listTotal   int
	getResp     *entities.Registration
	getErr      error

	confirmedWith string
}

func (s *stubRegistrationService) Create(_ context.Context, _ *entities.CreateRegistrationInput) (*entities.CreateRegistrationResponse, error) {
	return s.createResp, s.createErr
}

func (s *stubRegistrationService) Lookup(_ context.Context, _ *entities.LookupQuery) (*entities.RegistrationSummary, error) {
	return s.lookupResp, s.lookupErr
}

func (s *stubRegistrationService) Confirm(_ context.Context, reference string) (*entities.Registration, error) {
	s.confirmedWith = reference
	return s.confirmResp, s.confirmErr
}

func (s *stubRegistrationService) List(_ context.Context, _, _ int) ([]*entities.Registration, int, error) {
	return s.listResp, s.listTotal, nil
}

func (s *stubRegistrationService) GetByID(_ context.Context, _ string) (*entities.Registration, error) {
	return s.getResp, s.getErr
}

func postJSON(r *gin.Engine, path, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

func TestRegistrationHandler_Create(t *testing.T) {
	gin.SetMode(gin.TestMode)

	stub := &stubRegistrationService{
		createResp: &entities.CreateRegistrationResponse{
			RegistrationID:   "REG-1",
			Reference:        "NAFS_SCHOOL_1",
			Amount:           118750,
			DiscountPercent:  10,
			AuthorizationURL: "https://checkout.paystack.com/abc",
		},
	}
	h := NewRegistrationHandler(stub, pricing.MustNewEngine(pricing.DefaultConfig()))

	r := gin.New()
	r.POST("/registrations", h.CreateRegistration)

	w := postJSON(r, "/registrations", `{"category":"school","schoolName":"X","contactEmail":"a@b.c","totalStudents":25}`)
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), "NAFS_SCHOOL_1")

	// Malformed JSON
	w = postJSON(r, "/registrations", `{`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Missing category fails binding
	w = postJSON(r, "/registrations", `{"schoolName":"X"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRegistrationHandler_CreateErrorMapping(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"validation error", domainerrors.NewError("bad", domainerrors.ErrInvalidInput), http.StatusBadRequest},
		{"gateway down", domainerrors.GatewayUnavailable("down"), http.StatusBadGateway},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stub := &stubRegistrationService{createErr: tt.err}
			h := NewRegistrationHandler(stub, pricing.MustNewEngine(pricing.DefaultConfig()))
			r := gin.New()
			r.POST("/registrations", h.CreateRegistration)

			w := postJSON(r, "/registrations", `{"category":"school","schoolName":"X","contactEmail":"a@b.c","totalStudents":5}`)
			assert.Equal(t, tt.status, w.Code)
		})
	}
}

func TestRegistrationHandler_Lookup(t *testing.T) {
	gin.SetMode(gin.TestMode)

	stub := &stubRegistrationService{
		lookupResp: &entities.RegistrationSummary{ID: "REG-1", Status: entities.StatusCompleted},
	}
	h := NewRegistrationHandler(stub, pricing.MustNewEngine(pricing.DefaultConfig()))
	r := gin.New()
	r.GET("/registrations/lookup", h.LookupRegistration)
	r.POST("/registrations/lookup", h.SearchRegistration)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/registrations/lookup?id=REG-1", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "REG-1")

	// Missing id
	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/registrations/lookup", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// POST lookup with no match returns an empty result, not 404.
	stub.lookupResp = nil
	stub.lookupErr = domainerrors.ErrNotFound
	w = postJSON(r, "/registrations/lookup", `{"email":"ghost@example.com"}`)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"registration":null`)
}

func TestRegistrationHandler_GetPricing(t *testing.T) {
	gin.SetMode(gin.TestMode)

	h := NewRegistrationHandler(&stubRegistrationService{}, pricing.MustNewEngine(pricing.DefaultConfig()))
	r := gin.New()
	r.GET("/pricing", h.GetPricing)
	r.GET("/pricing/school", h.QuoteSchoolPrice)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/pricing", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		IndividualPrice int64 `json:"individualPrice"`
		Tiers           []struct {
			MinStudents int   `json:"minStudents"`
			PerStudent  int64 `json:"perStudent"`
		} `json:"tiers"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, int64(5000), body.IndividualPrice)
	require.Len(t, body.Tiers, 4)
	assert.Equal(t, int64(4250), body.Tiers[0].PerStudent)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/pricing/school?students=25", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "118750")

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/pricing/school?students=0", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRegistrationHandler_GetPricingUsesInjectedTable(t *testing.T) {
	gin.SetMode(gin.TestMode)

	// The pricing page must render the table the server charges with,
	// not the compiled-in default.
	custom := pricing.Config{
		BookFee:         3000,
		IndividualPrice: 7500,
		Tiers: []pricing.Tier{
			{MinStudents: 40, ProgrammeFee: 2000, DiscountPercent: 20},
			{MinStudents: 1, ProgrammeFee: 2500, DiscountPercent: 0},
		},
	}
	h := NewRegistrationHandler(&stubRegistrationService{}, pricing.MustNewEngine(custom))
	r := gin.New()
	r.GET("/pricing", h.GetPricing)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/pricing", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		IndividualPrice int64 `json:"individualPrice"`
		Tiers           []struct {
			MinStudents int   `json:"minStudents"`
			PerStudent  int64 `json:"perStudent"`
		} `json:"tiers"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, int64(7500), body.IndividualPrice)
	require.Len(t, body.Tiers, 2)
	assert.Equal(t, 40, body.Tiers[0].MinStudents)
	assert.Equal(t, int64(5000), body.Tiers[0].PerStudent)
}

func TestPaymentHandler_Confirm(t *testing.T) {
	gin.SetMode(gin.TestMode)

	completed := &entities.Registration{
		ID:        "REG-1",
		Reference: "NAFS_SCHOOL_1",
		Category:  entities.CategorySchool,
		Status:    entities.StatusCompleted,
		Amount:    118750,
		CreatedAt: time.Now(),
	}
	stub := &stubRegistrationService{confirmResp: completed}
	h := NewPaymentHandler(stub)

	r := gin.New()
	r.POST("/payments/confirm", h.ConfirmPayment)
	r.GET("/payments/callback", h.PaymentCallback)

	w := postJSON(r, "/payments/confirm", `{"reference":"NAFS_SCHOOL_1"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "NAFS_SCHOOL_1", stub.confirmedWith)
	assert.Contains(t, w.Body.String(), "completed")

	w = postJSON(r, "/payments/confirm", `{}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Gateway redirect uses the reference query param, falling back to
	// trxref.
	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/payments/callback?trxref=NAFS_SCHOOL_1", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/payments/callback", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPaymentHandler_ConfirmUnknownReference(t *testing.T) {
	gin.SetMode(gin.TestMode)

	stub := &stubRegistrationService{confirmErr: domainerrors.ErrNotFound}
	h := NewPaymentHandler(stub)
	r := gin.New()
	r.POST("/payments/confirm", h.ConfirmPayment)

	w := postJSON(r, "/payments/confirm", `{"reference":"NOPE"}`)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAdminHandler_ListAndStats(t *testing.T) {
	gin.SetMode(gin.TestMode)

	regs := []*entities.Registration{
		{ID: "REG-1", Category: entities.CategorySchool, Status: entities.StatusCompleted, Amount: 118750,
			Data: entities.RegistrationData{TotalStudents: 25}},
		{ID: "REG-2", Category: entities.CategoryGeneral, Status: entities.StatusPending, Amount: 5000},
		{ID: "REG-3", Category: entities.CategoryGeneral, Status: entities.StatusCompleted, Amount: 5000},
	}
	stub := &stubRegistrationService{listResp: regs, listTotal: len(regs)}
	h := NewAdminHandler(stub)

	r := gin.New()
	r.GET("/admin/registrations", h.ListRegistrations)
	r.GET("/admin/stats", h.GetStats)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/admin/registrations?page=1&limit=20", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "REG-1")

	// Status filter pages in memory.
	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/admin/registrations?status=completed", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "REG-1")
	assert.NotContains(t, w.Body.String(), "REG-2")

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/admin/stats", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var stats struct {
		Total             int   `json:"total"`
		ConfirmedRevenue  int64 `json:"confirmedRevenue"`
		ConfirmedStudents int   `json:"confirmedStudents"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &stats))
	assert.Equal(t, 3, stats.Total)
	assert.Equal(t, int64(123750), stats.ConfirmedRevenue)
	assert.Equal(t, 26, stats.ConfirmedStudents)
}
