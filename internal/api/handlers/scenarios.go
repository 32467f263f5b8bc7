package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/google/uuid"

	"logistic-viability-service/internal/adapters/cache"
	"logistic-viability-service/internal/api/dto"
	"logistic-viability-service/internal/domain"
	"logistic-viability-service/internal/platform/metrics"
	"logistic-viability-service/internal/platform/obs"
	"logistic-viability-service/internal/ports"
	"logistic-viability-service/internal/services"
)

// ScenarioHandler exposes scenario evaluation and comparison endpoints.
// Cache and Store are optional; nil disables caching / audit persistence.
type ScenarioHandler struct {
	Repo         ports.NetworkRepository
	Cache        ports.ResultCache
	Store        ports.ResultStore
	Engine       services.EngineConfig
	DefaultBatch []domain.ScenarioParams
}

// Run evaluates a single scenario against the loaded base network.
func (h *ScenarioHandler) Run(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req dto.ScenarioRequest
	if !decodeBody(w, r, &req) {
		return
	}

	runID := uuid.NewString()
	ctx := context.WithValue(r.Context(), obs.RunIDKey, runID)

	params := toParams(req)
	key := cache.ScenarioKey(params)

	if h.Cache != nil {
		if cached, ok, err := h.Cache.Get(ctx, key); err != nil {
			log.Printf("result cache get failed: %v", err)
		} else if ok {
			metrics.CacheHits.WithLabelValues("hit").Inc()
			writeJSON(w, r, http.StatusOK, dto.RunResponse{RunID: runID, Result: toResponse(cached, true)})
			return
		}
		metrics.CacheHits.WithLabelValues("miss").Inc()
	}

	base, err := loadBaseInputs(ctx, h.Repo)
	if err != nil {
		log.Printf("load base inputs failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	result, err := h.evaluate(ctx, base, params)
	if err != nil {
		writeEngineError(w, r, err)
		return
	}

	if h.Cache != nil {
		if err := h.Cache.Put(ctx, key, result); err != nil {
			log.Printf("result cache put failed: %v", err)
		}
	}
	if h.Store != nil {
		if err := h.Store.SaveResult(ctx, runID, result); err != nil {
			log.Printf("save result failed: run_id=%s err=%v", runID, err)
		}
	}

	writeJSON(w, r, http.StatusOK, dto.RunResponse{RunID: runID, Result: toResponse(result, false)})
}

// Compare evaluates a scenario batch and returns results ranked by margin.
func (h *ScenarioHandler) Compare(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req dto.CompareRequest
	if !decodeBody(w, r, &req) {
		return
	}

	scenarios := make([]domain.ScenarioParams, 0, len(req.Scenarios))
	for _, s := range req.Scenarios {
		scenarios = append(scenarios, toParams(s))
	}
	if len(scenarios) == 0 {
		scenarios = h.DefaultBatch
	}
	if len(scenarios) == 0 {
		writeError(w, r, http.StatusBadRequest, "no scenarios given and no default batch configured")
		return
	}

	runID := uuid.NewString()
	ctx := context.WithValue(r.Context(), obs.RunIDKey, runID)

	base, err := loadBaseInputs(ctx, h.Repo)
	if err != nil {
		log.Printf("load base inputs failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	start := time.Now()
	results, err := services.CompareScenarios(ctx, base, scenarios, h.Engine)
	if err != nil {
		metrics.Evaluations.WithLabelValues("error").Inc()
		writeEngineError(w, r, err)
		return
	}
	metrics.Evaluations.WithLabelValues("ok").Add(float64(len(results)))
	metrics.EvaluationDuration.Observe(time.Since(start).Seconds())

	if h.Store != nil {
		for _, result := range results {
			if err := h.Store.SaveResult(ctx, runID, result); err != nil {
				log.Printf("save result failed: run_id=%s scenario=%s err=%v", runID, result.Scenario, err)
			}
		}
	}

	res := dto.CompareResponse{RunID: runID, Results: make([]dto.ViabilityResponse, 0, len(results))}
	for _, result := range results {
		res.Results = append(res.Results, toResponse(result, false))
	}

	if req.Investment != nil {
		indicators, err := compareIndicators(results, *req.Investment)
		if err != nil {
			writeError(w, r, http.StatusBadRequest, err.Error())
			return
		}
		res.Indicators = indicators
	}

	writeJSON(w, r, http.StatusOK, res)
}

func (h *ScenarioHandler) evaluate(ctx context.Context, base services.BaseInputs, params domain.ScenarioParams) (result domain.ViabilityResult, err error) {
	defer obs.Time(ctx, "engine.RunScenario")(&err)

	start := time.Now()
	result, err = services.RunScenario(base, params, h.Engine)
	if err != nil {
		metrics.Evaluations.WithLabelValues("error").Inc()
		return domain.ViabilityResult{}, err
	}
	metrics.Evaluations.WithLabelValues("ok").Inc()
	metrics.EvaluationDuration.Observe(time.Since(start).Seconds())

	return result, nil
}

// compareIndicators frames each non-base scenario's yearly cost saving
// against the base scenario as an investment decision.
func compareIndicators(results []domain.ViabilityResult, inv dto.InvestmentRequest) (map[string]dto.IndicatorsResponse, error) {
	var base *domain.ViabilityResult
	for i := range results {
		if results[i].Scenario == "base" {
			base = &results[i]
			break
		}
	}
	if base == nil {
		return nil, errors.New("indicators require a scenario named \"base\" in the batch")
	}

	out := make(map[string]dto.IndicatorsResponse, len(results)-1)
	for _, r := range results {
		if r.Scenario == "base" {
			continue
		}
		ind, err := services.CalculateIndicators(services.Investment{
			InitialInvestment: inv.InitialInvestment,
			AnnualSaving:      base.TotalCost() - r.TotalCost(),
			HorizonYears:      inv.HorizonYears,
			DiscountRate:      inv.DiscountRate,
		})
		if err != nil {
			return nil, err
		}
		out[r.Scenario] = dto.IndicatorsResponse{
			NPV:               ind.NPV,
			PaybackSimple:     ind.PaybackSimple,
			PaybackDiscounted: ind.PaybackDiscounted,
			ROI:               ind.ROI,
		}
	}

	return out, nil
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	dec := json.NewDecoder(r.Body)
	defer r.Body.Close()
	dec.DisallowUnknownFields()

	if err := dec.Decode(v); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid json body")
		return false
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		writeError(w, r, http.StatusBadRequest, "body must contain only one JSON object")
		return false
	}
	return true
}

func loadBaseInputs(ctx context.Context, repo ports.NetworkRepository) (services.BaseInputs, error) {
	clients, err := repo.ListClients(ctx)
	if err != nil {
		return services.BaseInputs{}, err
	}
	facilities, err := repo.ListFacilities(ctx)
	if err != nil {
		return services.BaseInputs{}, err
	}
	fixedCosts, err := repo.ListFixedCosts(ctx)
	if err != nil {
		return services.BaseInputs{}, err
	}
	regional, err := repo.ListRegionalCosts(ctx)
	if err != nil {
		return services.BaseInputs{}, err
	}

	return services.BaseInputs{
		Clients:       clients,
		Facilities:    facilities,
		FixedCosts:    fixedCosts,
		RegionalCosts: regional,
	}, nil
}

func toParams(req dto.ScenarioRequest) domain.ScenarioParams {
	name := req.Name
	if name == "" {
		name = "custom"
	}
	return domain.ScenarioParams{
		Name:             name,
		DemandGrowth:     req.DemandGrowth,
		TaxAdjustment:    req.TaxAdjustment,
		SalaryAdjustment: req.SalaryAdjustment,
		MaxNewFacilities: req.MaxNewFacilities,
		FacilitySubset:   req.FacilitySubset,
		UnitRevenue:      req.UnitRevenue,
	}
}

func toResponse(r domain.ViabilityResult, cached bool) dto.ViabilityResponse {
	return dto.ViabilityResponse{
		Scenario:       r.Scenario,
		TransportCost:  r.TransportCost,
		FixedCost:      r.FixedCost,
		TotalCost:      r.TotalCost(),
		Revenue:        r.Revenue,
		Margin:         r.Margin,
		ServedDemand:   r.ServedDemand,
		OpenFacilities: r.OpenFacilities,
		Utilization:    r.Utilization,
		Assignment:     r.Assignment,
		Unassigned:     r.Unassigned,
		Cached:         cached,
	}
}

// writeEngineError maps engine errors onto the HTTP surface: structural
// input errors are the caller's to fix, everything else is a 500.
func writeEngineError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidScenario),
		errors.Is(err, domain.ErrInvalidCoordinate),
		errors.Is(err, domain.ErrInvalidFacility),
		errors.Is(err, domain.ErrMissingRegionalData):
		writeError(w, r, http.StatusBadRequest, err.Error())
	default:
		log.Printf("scenario evaluation failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
	}
}
