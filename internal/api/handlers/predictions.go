// Package handlers contains the HTTP handler implementations for the
// RainCast API. It covers:
//   - Service information (GET /)
//   - Rain prediction (GET /predict/rain)
//   - Precipitation prediction (GET /predict/precipitation/fall)
//   - Combined prediction (GET /predict/summary)
package handlers

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"raincast/internal/core"
	"raincast/internal/prediction"
	"raincast/internal/types"
)

// PredictionServiceInterface defines the service contract for the prediction
// handler. It matches the prediction.Service methods but is defined locally
// to keep the handler coupled only to what it uses.
type PredictionServiceInterface interface {
	PredictRain(ctx context.Context, inputDate types.CivilDate) (*types.RainResult, error)
	PredictPrecipitation(ctx context.Context, inputDate types.CivilDate) (*types.PrecipitationResult, error)
	PredictSummary(ctx context.Context, inputDate types.CivilDate) (*prediction.Summary, error)
}

// PredictionHandler maps HTTP requests to prediction service methods.
type PredictionHandler struct {
	service PredictionServiceInterface
	logger  *slog.Logger
}

// NewPredictionHandler creates a PredictionHandler with the provided
// dependencies.
func NewPredictionHandler(svc PredictionServiceInterface, logger *slog.Logger) *PredictionHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &PredictionHandler{
		service: svc,
		logger:  logger,
	}
}

// RegisterRoutes mounts the prediction endpoints onto the mux.
func (h *PredictionHandler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.HandleInfo)
	r.Get("/predict/rain", h.HandlePredictRain)
	r.Get("/predict/precipitation/fall", h.HandlePredictPrecipitation)
	r.Get("/predict/summary", h.HandlePredictSummary)
}

// parseDateParam extracts and parses the required "date" query parameter.
func parseDateParam(r *http.Request) (types.CivilDate, error) {
	raw := r.URL.Query().Get("date")
	if raw == "" {
		return types.CivilDate{}, types.NewAppError(
			types.ErrCodeValidationMissingField,
			"date query parameter is required (format YYYY-MM-DD, example 2024-09-15)",
			nil,
		)
	}
	return types.ParseCivilDate(raw)
}

// HandleInfo handles GET /. It describes the service and its endpoints.
func (h *PredictionHandler) HandleInfo(w http.ResponseWriter, r *http.Request) {
	core.JSON(w, r, http.StatusOK, map[string]any{
		"project":     "RainCast",
		"location":    "Sydney, Australia (-33.8678, 151.2073)",
		"description": "ML-based rain and precipitation predictions for Sydney",
		"endpoints": []map[string]string{
			{
				"path":        "/",
				"method":      http.MethodGet,
				"description": "This page - service information",
			},
			{
				"path":        "/health",
				"method":      http.MethodGet,
				"description": "Service and model artifact health",
			},
			{
				"path":        "/predict/rain",
				"method":      http.MethodGet,
				"description": "Predict if it will rain 7 days from the input date",
				"example":     "/predict/rain?date=2024-09-15",
			},
			{
				"path":        "/predict/precipitation/fall",
				"method":      http.MethodGet,
				"description": "Predict cumulative precipitation for the 3 days after the input date",
				"example":     "/predict/precipitation/fall?date=2024-09-15",
			},
			{
				"path":        "/predict/summary",
				"method":      http.MethodGet,
				"description": "Both predictions for the same input date",
				"example":     "/predict/summary?date=2024-09-15",
			},
		},
		"input_format": map[string]string{
			"parameter": "date",
			"format":    "YYYY-MM-DD",
			"example":   "2024-09-15",
			"note":      "the date must not be in the future (historical data only)",
		},
	})
}

// HandlePredictRain handles GET /predict/rain?date=YYYY-MM-DD.
func (h *PredictionHandler) HandlePredictRain(w http.ResponseWriter, r *http.Request) {
	inputDate, err := parseDateParam(r)
	if err != nil {
		core.Error(w, r, err)
		return
	}

	result, err := h.service.PredictRain(r.Context(), inputDate)
	if err != nil {
		core.Error(w, r, err)
		return
	}

	core.JSON(w, r, http.StatusOK, prediction.FormatRain(result))
}

// HandlePredictPrecipitation handles GET /predict/precipitation/fall?date=YYYY-MM-DD.
func (h *PredictionHandler) HandlePredictPrecipitation(w http.ResponseWriter, r *http.Request) {
	inputDate, err := parseDateParam(r)
	if err != nil {
		core.Error(w, r, err)
		return
	}

	result, err := h.service.PredictPrecipitation(r.Context(), inputDate)
	if err != nil {
		core.Error(w, r, err)
		return
	}

	core.JSON(w, r, http.StatusOK, prediction.FormatPrecipitation(result))
}

// HandlePredictSummary handles GET /predict/summary?date=YYYY-MM-DD. It runs
// both prediction tasks concurrently for the same input date.
func (h *PredictionHandler) HandlePredictSummary(w http.ResponseWriter, r *http.Request) {
	inputDate, err := parseDateParam(r)
	if err != nil {
		core.Error(w, r, err)
		return
	}

	summary, err := h.service.PredictSummary(r.Context(), inputDate)
	if err != nil {
		core.Error(w, r, err)
		return
	}

	core.JSON(w, r, http.StatusOK, prediction.FormatSummary(summary))
}
