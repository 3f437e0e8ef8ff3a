package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Dan9191/commission-tracker/internal/middleware"
	"github.com/Dan9191/commission-tracker/internal/models"
	"github.com/Dan9191/commission-tracker/internal/repository"
	"github.com/Dan9191/commission-tracker/internal/service"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockService struct{ mock.Mock }

func (m *mockService) GetAverages(ctx context.Context, userID string) (*models.HistoricalAverages, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.HistoricalAverages), args.Error(1)
}

func (m *mockService) RefreshAverages(ctx context.Context, userID string) error {
	return m.Called(ctx, userID).Error(0)
}

func (m *mockService) Calculate(ctx context.Context, userID string, req service.CalculateRequest) (*models.CalculationResult, error) {
	args := m.Called(ctx, userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.CalculationResult), args.Error(1)
}

func (m *mockService) Projections(base int, premium float64, rates []float64) ([]models.PersistencyScenario, error) {
	args := m.Called(base, premium, rates)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.PersistencyScenario), args.Error(1)
}

func (m *mockService) SaveTargets(ctx context.Context, userID string, req service.CalculateRequest) (*models.UserTargets, error) {
	args := m.Called(ctx, userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.UserTargets), args.Error(1)
}

func (m *mockService) GetTargets(ctx context.Context, userID string) (*models.UserTargets, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.UserTargets), args.Error(1)
}

func (m *mockService) Progress(ctx context.Context, userID string) (*models.AllTargetsProgress, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.AllTargetsProgress), args.Error(1)
}

func (m *mockService) CheckMilestones(ctx context.Context, userID string) (*models.MilestoneCheck, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.MilestoneCheck), args.Error(1)
}

func asUser(id string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			next.ServeHTTP(w, r.WithContext(middleware.WithUserID(r.Context(), id)))
		})
	}
}

func passthrough(next http.Handler) http.Handler { return next }

func newTestServer(t *testing.T, svc TargetsService) *httptest.Server {
	t.Helper()
	logger, _ := test.NewNullLogger()
	srv := httptest.NewServer(NewRouter(NewHandler(svc, logger), asUser("user-1"), passthrough))
	t.Cleanup(srv.Close)
	return srv
}

func do(t *testing.T, method, url string, body interface{}) *http.Response {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if s, ok := body.(string); ok {
			buf.WriteString(s)
		} else {
			require.NoError(t, json.NewEncoder(&buf).Encode(body))
		}
	}
	req, err := http.NewRequest(method, url, &buf)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func TestHealth(t *testing.T) {
	srv := newTestServer(t, new(mockService))
	resp := do(t, http.MethodGet, srv.URL+"/health", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestCalculate(t *testing.T) {
	svc := new(mockService)
	req := service.CalculateRequest{AnnualIncomeTarget: 100000}
	svc.On("Calculate", mock.Anything, "user-1", req).Return(&models.CalculationResult{
		Targets: models.CalculatedTargets{AnnualPoliciesTarget: 16, TotalPremiumNeeded: 240000},
	}, nil)
	srv := newTestServer(t, svc)

	resp := do(t, http.MethodPost, srv.URL+"/targets/calculate", req)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var got models.CalculationResult
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
	assert.Equal(t, 16, got.Targets.AnnualPoliciesTarget)
	svc.AssertExpectations(t)
}

func TestCalculate_Errors(t *testing.T) {
	tests := []struct {
		name       string
		body       interface{}
		svcErr     error
		wantStatus int
	}{
		{"malformed body", `{"annual_income_target":`, nil, http.StatusBadRequest},
		{"unknown field", `{"income":5}`, nil, http.StatusBadRequest},
		{"invalid input", service.CalculateRequest{}, fmt.Errorf("%w: income", service.ErrInvalidInput), http.StatusBadRequest},
		{"internal", service.CalculateRequest{AnnualIncomeTarget: 1}, errors.New("db down"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(mockService)
			if tt.svcErr != nil {
				svc.On("Calculate", mock.Anything, "user-1", mock.Anything).Return(nil, tt.svcErr)
			}
			srv := newTestServer(t, svc)

			resp := do(t, http.MethodPost, srv.URL+"/targets/calculate", tt.body)
			assert.Equal(t, tt.wantStatus, resp.StatusCode)

			var body map[string]string
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
			assert.Equal(t, "error", body["status"])
		})
	}
}

func TestScenarios(t *testing.T) {
	svc := new(mockService)
	svc.On("Projections", 16, 15000.0, []float64{80}).
		Return([]models.PersistencyScenario{{PersistencyRate: 80, AnnualPoliciesNeeded: 20}}, nil)
	srv := newTestServer(t, svc)

	resp := do(t, http.MethodPost, srv.URL+"/targets/scenarios", ScenariosRequest{BaseAnnualPolicies: 16, AvgPolicyPremium: 15000, Rates: []float64{80}})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var got []models.PersistencyScenario
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
	require.Len(t, got, 1)
	assert.Equal(t, 20, got[0].AnnualPoliciesNeeded)
}

func TestTargetsRoutes(t *testing.T) {
	svc := new(mockService)
	svc.On("GetTargets", mock.Anything, "user-1").Return(&models.UserTargets{UserID: "user-1", AnnualIncomeTarget: 90000}, nil)
	svc.On("SaveTargets", mock.Anything, "user-1", service.CalculateRequest{AnnualIncomeTarget: 90000}).
		Return(&models.UserTargets{UserID: "user-1", AnnualIncomeTarget: 90000}, nil)
	svc.On("Progress", mock.Anything, "user-1").Return(nil, fmt.Errorf("targets: %w", repository.ErrNotFound))
	svc.On("CheckMilestones", mock.Anything, "user-1").Return(&models.MilestoneCheck{NewAchievements: []models.Achievement{}}, nil)
	srv := newTestServer(t, svc)

	assert.Equal(t, http.StatusOK, do(t, http.MethodGet, srv.URL+"/targets", nil).StatusCode)
	assert.Equal(t, http.StatusOK, do(t, http.MethodPut, srv.URL+"/targets", service.CalculateRequest{AnnualIncomeTarget: 90000}).StatusCode)
	assert.Equal(t, http.StatusNotFound, do(t, http.MethodGet, srv.URL+"/targets/progress", nil).StatusCode)
	assert.Equal(t, http.StatusOK, do(t, http.MethodPost, srv.URL+"/targets/milestones/check", nil).StatusCode)
	svc.AssertExpectations(t)
}

func TestGetAverages_Refresh(t *testing.T) {
	svc := new(mockService)
	svc.On("RefreshAverages", mock.Anything, "user-1").Return(errors.New("redis down"))
	svc.On("GetAverages", mock.Anything, "user-1").Return(&models.HistoricalAverages{HasData: true}, nil)
	srv := newTestServer(t, svc)

	resp := do(t, http.MethodGet, srv.URL+"/averages?refresh=true", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var got models.HistoricalAverages
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
	assert.True(t, got.HasData)
	svc.AssertExpectations(t)
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	logger, _ := test.NewNullLogger()
	router := NewRouter(NewHandler(new(mockService), logger), middleware.AuthMiddleware("secret"), passthrough)
	srv := httptest.NewServer(router)
	defer srv.Close()

	assert.Equal(t, http.StatusUnauthorized, do(t, http.MethodGet, srv.URL+"/targets", nil).StatusCode)
	assert.Equal(t, http.StatusOK, do(t, http.MethodGet, srv.URL+"/health", nil).StatusCode)
}

func TestCalculate_BodyTooLarge(t *testing.T) {
	logger, _ := test.NewNullLogger()
	h := NewHandler(new(mockService), logger)
	body := `{"annual_income_target":` + strings.Repeat(" ", maxBodyBytes) + `1}`
	req := httptest.NewRequest(http.MethodPost, "/targets/calculate", strings.NewReader(body))
	req = req.WithContext(middleware.WithUserID(req.Context(), "user-1"))
	rec := httptest.NewRecorder()

	h.Calculate(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "too large")
}
