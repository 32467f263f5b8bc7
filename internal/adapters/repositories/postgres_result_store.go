package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"logistic-viability-service/internal/domain"
	"logistic-viability-service/internal/platform/obs"
)

// Postgres-backed implementation of the ResultStore port. Results and
// estimated fixed costs are append-only audit rows keyed by run ID.
type PostgresResultStore struct{ DB *sql.DB }

func NewPostgresResultStore(db *sql.DB) *PostgresResultStore {
	return &PostgresResultStore{DB: db}
}

// Initialize the audit tables. Safe to run repeatedly.
func InitResultSchema(db *sql.DB) error {
	if db == nil {
		return errors.New("init result schema: DB is nil")
	}

	createResultsQuery := `
	CREATE TABLE IF NOT EXISTS viability_results (
		run_id TEXT NOT NULL,
		scenario TEXT NOT NULL,
		transport_cost DOUBLE PRECISION NOT NULL,
		fixed_cost DOUBLE PRECISION NOT NULL,
		revenue DOUBLE PRECISION NOT NULL,
		margin DOUBLE PRECISION NOT NULL,
		served_demand DOUBLE PRECISION NOT NULL,
		assignment JSONB NOT NULL,
		unassigned JSONB NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		PRIMARY KEY (run_id, scenario)
	);
	`

	createEstimatesQuery := `
	CREATE TABLE IF NOT EXISTS fixed_cost_estimates (
		run_id TEXT NOT NULL,
		facility_id TEXT NOT NULL,
		amount DOUBLE PRECISION NOT NULL,
		source TEXT NOT NULL,
		region TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		PRIMARY KEY (run_id, facility_id)
	);
	`

	for i, stmt := range []string{createResultsQuery, createEstimatesQuery} {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("init result schema: exec statement #%d: %w", i+1, err)
		}
	}

	return nil
}

// Persist one scenario evaluation for audit.
func (s *PostgresResultStore) SaveResult(ctx context.Context, runID string, result domain.ViabilityResult) (err error) {
	defer obs.Time(ctx, "resultstore.SaveResult")(&err)

	if s.DB == nil {
		return errors.New("result store: DB is nil")
	}
	if runID == "" {
		return errors.New("save result: run ID must not be empty")
	}

	assignment, err := json.Marshal(result.Assignment)
	if err != nil {
		return fmt.Errorf("save result: marshal assignment: %w", err)
	}
	unassigned, err := json.Marshal(result.Unassigned)
	if err != nil {
		return fmt.Errorf("save result: marshal unassigned: %w", err)
	}

	q := `
	INSERT INTO viability_results (run_id, scenario, transport_cost, fixed_cost, revenue, margin, served_demand, assignment, unassigned)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	ON CONFLICT (run_id, scenario) DO UPDATE
	SET transport_cost = EXCLUDED.transport_cost,
		fixed_cost = EXCLUDED.fixed_cost,
		revenue = EXCLUDED.revenue,
		margin = EXCLUDED.margin,
		served_demand = EXCLUDED.served_demand,
		assignment = EXCLUDED.assignment,
		unassigned = EXCLUDED.unassigned;
	`
	if _, err := s.DB.ExecContext(ctx, q, runID, result.Scenario,
		result.TransportCost, result.FixedCost, result.Revenue, result.Margin,
		result.ServedDemand, assignment, unassigned); err != nil {
		return fmt.Errorf("save result: insert scenario=%q: %w", result.Scenario, err)
	}

	return nil
}

// Persist estimated fixed costs so derived figures can be audited later.
func (s *PostgresResultStore) SaveEstimates(ctx context.Context, runID string, estimates map[string]domain.FixedCost) (err error) {
	defer obs.Time(ctx, "resultstore.SaveEstimates")(&err)

	if s.DB == nil {
		return errors.New("result store: DB is nil")
	}
	if runID == "" {
		return errors.New("save estimates: run ID must not be empty")
	}
	if len(estimates) == 0 {
		return nil
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("save estimates: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `
	INSERT INTO fixed_cost_estimates (run_id, facility_id, amount, source, region)
	VALUES ($1, $2, $3, $4, $5)
	ON CONFLICT (run_id, facility_id) DO UPDATE
	SET amount = EXCLUDED.amount,
		source = EXCLUDED.source,
		region = EXCLUDED.region;
	`)
	if err != nil {
		return fmt.Errorf("save estimates: prepare insert: %w", err)
	}
	defer stmt.Close()

	ids := make([]string, 0, len(estimates))
	for id := range estimates {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	for _, id := range ids {
		fc := estimates[id]
		if _, err := stmt.ExecContext(ctx, runID, id, fc.Amount, string(fc.Source), fc.Region); err != nil {
			return fmt.Errorf("save estimates: insert facility_id=%s: %w", id, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("save estimates: commit tx: %w", err)
	}

	return nil
}
