package db

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jonathan/career-coach/internal/types"
)

const insightColumns = `id, industry, data, last_updated, next_update`

func scanInsight(row rowScanner) (*IndustryInsight, error) {
	var i IndustryInsight
	if err := row.Scan(&i.ID, &i.Industry, &i.Data, &i.LastUpdated, &i.NextUpdate); err != nil {
		return nil, err
	}
	return &i, nil
}

// GetIndustryInsight retrieves the insight for an industry. Returns nil, nil
// when none has been generated yet.
func (db *DB) GetIndustryInsight(ctx context.Context, industry string) (*IndustryInsight, error) {
	i, err := scanInsight(db.pool.QueryRow(ctx,
		`SELECT `+insightColumns+` FROM industry_insights WHERE industry = $1`,
		industry,
	))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get industry insight: %w", err)
	}
	return i, nil
}

// ListStaleInsights returns every insight whose next update is due at now.
func (db *DB) ListStaleInsights(ctx context.Context, now time.Time) ([]IndustryInsight, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT `+insightColumns+` FROM industry_insights
		 WHERE next_update <= $1
		 ORDER BY next_update ASC`,
		now,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list stale insights: %w", err)
	}
	defer rows.Close()

	var insights []IndustryInsight
	for rows.Next() {
		i, err := scanInsight(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan insight: %w", err)
		}
		insights = append(insights, *i)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating insights: %w", err)
	}
	return insights, nil
}

// UpsertIndustryInsight stores freshly generated data for an industry.
func (db *DB) UpsertIndustryInsight(ctx context.Context, industry string, data types.InsightData, lastUpdated, nextUpdate time.Time) (*IndustryInsight, error) {
	raw, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal insight: %w", err)
	}
	i, err := scanInsight(db.pool.QueryRow(ctx,
		`INSERT INTO industry_insights (industry, data, last_updated, next_update)
		 VALUES ($1, $2, $3, $4)
		 ON CONFLICT (industry) DO UPDATE
		 SET data = EXCLUDED.data, last_updated = EXCLUDED.last_updated, next_update = EXCLUDED.next_update
		 RETURNING `+insightColumns,
		industry, raw, lastUpdated, nextUpdate,
	))
	if err != nil {
		return nil, fmt.Errorf("failed to upsert industry insight: %w", err)
	}
	return i, nil
}
