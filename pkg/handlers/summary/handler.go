package summary

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/de-tools/region-atlas/pkg/adapters"
	"github.com/de-tools/region-atlas/pkg/models/api"
	"github.com/de-tools/region-atlas/pkg/models/domain"
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

// Analyzer evaluates regions against a loaded registry snapshot.
type Analyzer interface {
	Regions() []string
	Run(ctx context.Context, regionIDs []string) (*domain.SummaryBatch, error)
}

type Handler struct {
	analyzer Analyzer
}

func NewHandler(analyzer Analyzer) *Handler {
	return &Handler{analyzer: analyzer}
}

func (h *Handler) ListRegions(w http.ResponseWriter, r *http.Request) {
	regions := h.analyzer.Regions()
	response := make([]api.Region, 0, len(regions))
	for _, region := range regions {
		response = append(response, api.Region{Name: region})
	}

	writeJSON(r.Context(), w, http.StatusOK, response)
}

func (h *Handler) GetRegionSummary(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	region := chi.URLParam(r, "region")

	batch, err := h.analyzer.Run(ctx, []string{region})
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	summary, _ := batch.Get(region)
	writeJSON(ctx, w, http.StatusOK, adapters.MapFinancialSummaryDomainToApi(summary))
}

func (h *Handler) ListSummaries(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	regions := r.URL.Query()["region"]
	if len(regions) == 0 {
		writeJSON(ctx, w, http.StatusBadRequest, api.Error{Error: "at least one 'region' query parameter is required"})
		return
	}

	batch, err := h.analyzer.Run(ctx, regions)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeJSON(ctx, w, http.StatusOK, adapters.MapSummaryBatchDomainToApi(batch))
}

// StatusFor maps evaluation failures onto HTTP status codes.
func StatusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrMissingRegionData):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrDivisionByZero),
		errors.Is(err, domain.ErrInvalidAssumption),
		errors.Is(err, domain.ErrEmptyRegion),
		errors.Is(err, domain.ErrOutOfRange):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func writeError(ctx context.Context, w http.ResponseWriter, err error) {
	status := StatusFor(err)
	logger := zerolog.Ctx(ctx)
	if status == http.StatusInternalServerError {
		logger.Error().Err(err).Msg("failed to evaluate regions")
	} else {
		logger.Warn().Err(err).Int("status", status).Msg("region evaluation rejected")
	}

	writeJSON(ctx, w, status, api.Error{Error: err.Error()})
}

func writeJSON(ctx context.Context, w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(body); err != nil {
		zerolog.Ctx(ctx).Error().
			Err(err).
			Msg("failed to encode response")
	}
}
