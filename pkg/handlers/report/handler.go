package report

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/de-tools/cloud-atlas/pkg/adapters"
	"github.com/de-tools/cloud-atlas/pkg/models/api"
	"github.com/de-tools/cloud-atlas/pkg/models/domain"
	"github.com/de-tools/cloud-atlas/pkg/services/analysis"
	"github.com/rs/zerolog"
)

// Service is the slice of the report controller the handler needs.
type Service interface {
	Providers() []string
	Generate(ctx context.Context, provider, profile string) (*domain.AnalysisResult, error)
}

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) ListProviders(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)

	response := api.ProvidersResponse{Providers: h.service.Providers()}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(response); err != nil {
		logger.Error().Err(err).Msg("failed to encode providers")
	}
}

func (h *Handler) GenerateReport(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)

	var request api.ReportRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if request.Provider == "" {
		http.Error(w, "provider is required", http.StatusBadRequest)
		return
	}

	result, err := h.service.Generate(ctx, request.Provider, request.Profile)
	if err != nil {
		logger.Error().
			Err(err).
			Str("provider", request.Provider).
			Msg("report generation failed")

		var validationErr *analysis.ValidationError
		switch {
		case errors.As(err, &validationErr):
			http.Error(w, validationErr.Error(), http.StatusUnprocessableEntity)
		default:
			http.Error(w, "report generation failed", http.StatusInternalServerError)
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(adapters.MapAnalysisResultDomainToApi(result)); err != nil {
		logger.Error().Err(err).Msg("failed to encode report")
	}
}
