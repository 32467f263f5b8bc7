package handlers

import (
	"context"
	"log"
	"net/http"
	"sort"

	"github.com/google/uuid"

	"logistic-viability-service/internal/api/dto"
	"logistic-viability-service/internal/domain"
	"logistic-viability-service/internal/platform/obs"
	"logistic-viability-service/internal/ports"
	"logistic-viability-service/internal/services"
)

// CostHandler exposes fixed-cost estimation for facilities that lack an
// explicit figure, so the derived values can be exported and audited.
type CostHandler struct {
	Repo      ports.NetworkRepository
	Store     ports.ResultStore
	Estimator services.EstimatorConfig
}

// Estimates returns estimated fixed costs for every facility without an
// explicit one, persisting them for audit when a result store is wired.
func (h *CostHandler) Estimates(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	runID := uuid.NewString()
	ctx := context.WithValue(r.Context(), obs.RunIDKey, runID)

	facilities, err := h.Repo.ListFacilities(ctx)
	if err != nil {
		log.Printf("list facilities failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}
	explicit, err := h.Repo.ListFixedCosts(ctx)
	if err != nil {
		log.Printf("list fixed costs failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}
	regional, err := h.Repo.ListRegionalCosts(ctx)
	if err != nil {
		log.Printf("list regional costs failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	missing := make([]domain.Facility, 0, len(facilities))
	for _, f := range facilities {
		if _, ok := explicit[f.FacilityID]; !ok {
			missing = append(missing, f)
		}
	}

	estimates, err := services.EstimateFixedCosts(missing, regional, h.Estimator)
	if err != nil {
		writeEngineError(w, r, err)
		return
	}

	if h.Store != nil {
		if err := h.Store.SaveEstimates(ctx, runID, estimates); err != nil {
			log.Printf("save estimates failed: run_id=%s err=%v", runID, err)
		}
	}

	res := dto.EstimatesResponse{RunID: runID, Estimates: make([]dto.EstimateResponse, 0, len(estimates))}
	for id, fc := range estimates {
		res.Estimates = append(res.Estimates, dto.EstimateResponse{
			FacilityID: id,
			Amount:     fc.Amount,
			Source:     string(fc.Source),
			Region:     fc.Region,
		})
	}
	sort.Slice(res.Estimates, func(i, j int) bool {
		return res.Estimates[i].FacilityID < res.Estimates[j].FacilityID
	})

	writeJSON(w, r, http.StatusOK, res)
}
