package summary

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/de-tools/region-atlas/pkg/models/api"
	"github.com/de-tools/region-atlas/pkg/models/domain"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockAnalyzer struct {
	mock.Mock
}

func (m *mockAnalyzer) Regions() []string {
	args := m.Called()
	return args.Get(0).([]string)
}

func (m *mockAnalyzer) Run(ctx context.Context, regionIDs []string) (*domain.SummaryBatch, error) {
	args := m.Called(ctx, regionIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SummaryBatch), args.Error(1)
}

func kazan() domain.FinancialSummary {
	return domain.FinancialSummary{
		Region:                 "Kazan",
		TotalCosts:             127000,
		MonthlyRevenue:         90000,
		Profit:                 -37000,
		ProfitabilityPercent:   -41.1,
		ProfitabilityTier:      domain.ProfitabilityLow,
		BreakEvenCustomerCount: 85,
		CompetitionDensity:     9.0,
		CompetitionTier:        domain.CompetitionMedium,
	}
}

func newRouter(h *Handler) http.Handler {
	r := chi.NewRouter()
	r.Get("/regions", h.ListRegions)
	r.Get("/regions/{region}/summary", h.GetRegionSummary)
	r.Get("/summaries", h.ListSummaries)
	return r
}

func TestListRegions(t *testing.T) {
	analyzer := new(mockAnalyzer)
	analyzer.On("Regions").Return([]string{"Kazan", "Perm"})

	rec := httptest.NewRecorder()
	newRouter(NewHandler(analyzer)).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/regions", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	var response []api.Region
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	assert.Equal(t, []api.Region{{Name: "Kazan"}, {Name: "Perm"}}, response)
}

func TestListRegions_Empty(t *testing.T) {
	analyzer := new(mockAnalyzer)
	analyzer.On("Regions").Return([]string{})

	rec := httptest.NewRecorder()
	newRouter(NewHandler(analyzer)).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/regions", nil))

	assert.JSONEq(t, "[]", rec.Body.String())
}

func TestGetRegionSummary(t *testing.T) {
	tests := []struct {
		name           string
		batch          *domain.SummaryBatch
		err            error
		expectedStatus int
		expectedBody   string
	}{
		{
			name:           "success",
			batch:          domain.NewSummaryBatch(kazan()),
			expectedStatus: http.StatusOK,
		},
		{
			name:           "missing region",
			err:            &domain.MissingRegionDataError{Region: "Kazan", Registry: domain.RegistryBusiness},
			expectedStatus: http.StatusNotFound,
			expectedBody:   `{"error":"region \"Kazan\" has no record in the business registry"}`,
		},
		{
			name: "division by zero",
			err: fmt.Errorf("evaluate Kazan: %w",
				&domain.DivisionByZeroError{Region: "Kazan", Divisor: domain.DivisorTargetPopulation}),
			expectedStatus: http.StatusUnprocessableEntity,
		},
		{
			name:           "invalid assumption",
			err:            &domain.InvalidAssumptionError{Region: "Kazan", Param: domain.ParamArea, Reason: "missing"},
			expectedStatus: http.StatusUnprocessableEntity,
		},
		{
			name:           "out of range",
			err:            &domain.OutOfRangeError{Region: "Kazan", Quantity: domain.QuantityPayback},
			expectedStatus: http.StatusUnprocessableEntity,
		},
		{
			name:           "unexpected",
			err:            errors.New("boom"),
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `{"error":"boom"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			analyzer := new(mockAnalyzer)
			if tt.err != nil {
				analyzer.On("Run", mock.Anything, []string{"Kazan"}).Return(nil, tt.err)
			} else {
				analyzer.On("Run", mock.Anything, []string{"Kazan"}).Return(tt.batch, nil)
			}

			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/regions/Kazan/summary", nil)
			newRouter(NewHandler(analyzer)).ServeHTTP(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
			if tt.expectedBody != "" {
				assert.JSONEq(t, tt.expectedBody, rec.Body.String())
			}
			if tt.expectedStatus == http.StatusOK {
				var response api.FinancialSummary
				require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
				assert.Equal(t, "Kazan", response.Region)
				assert.Equal(t, domain.NoPayback, response.PaybackPeriodMonths)
			}
			analyzer.AssertExpectations(t)
		})
	}
}

func TestListSummaries(t *testing.T) {
	perm := kazan()
	perm.Region = "Perm"

	analyzer := new(mockAnalyzer)
	analyzer.On("Run", mock.Anything, []string{"Perm", "Kazan"}).
		Return(domain.NewSummaryBatch(perm, kazan()), nil)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/summaries?region=Perm&region=Kazan", nil)
	newRouter(NewHandler(analyzer)).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	var response []api.FinancialSummary
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	require.Len(t, response, 2)
	assert.Equal(t, "Perm", response[0].Region)
	assert.Equal(t, "Kazan", response[1].Region)
}

func TestListSummaries_RequiresRegion(t *testing.T) {
	analyzer := new(mockAnalyzer)

	rec := httptest.NewRecorder()
	newRouter(NewHandler(analyzer)).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/summaries", nil))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	analyzer.AssertNotCalled(t, "Run", mock.Anything, mock.Anything)
}

func TestListSummaries_FailFast(t *testing.T) {
	analyzer := new(mockAnalyzer)
	analyzer.On("Run", mock.Anything, []string{"Kazan", "Omsk"}).
		Return(nil, &domain.MissingRegionDataError{Region: "Omsk", Registry: domain.RegistryBusiness})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/summaries?region=Kazan&region=Omsk", nil)
	newRouter(NewHandler(analyzer)).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.NotContains(t, rec.Body.String(), "total_costs")
}
