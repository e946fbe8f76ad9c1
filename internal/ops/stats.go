package ops

import (
	"context"
	"database/sql"

	"github.com/JK0987/mousehunt-improved/internal/config"
	"github.com/JK0987/mousehunt-improved/internal/db"
)

// StatsInput contains parameters for the Stats operation.
type StatsInput struct {
	Namespace string // default: "journal"
}

// StatsOutput summarizes the captured archive.
type StatsOutput struct {
	Namespace  string `json:"namespace"`
	Count      int    `json:"count"`
	Detailed   int    `json:"detailed"`
	MinID      int64  `json:"min_id"`
	MaxID      int64  `json:"max_id"`
	TotalPages int    `json:"total_pages"`
}

// Stats reports entry counts, the observed id range, and how many pages
// the archive spans at the configured page size.
func Stats(ctx context.Context, database *sql.DB, cfg *config.Config, input StatsInput) (*StatsOutput, error) {
	namespace := resolveNamespace(input.Namespace)

	row, err := db.NamespaceStats(ctx, database, namespace)
	if err != nil {
		return nil, err
	}

	pageSize := cfg.PageSize
	totalPages := 0
	if pageSize > 0 {
		totalPages = (row.Count + pageSize - 1) / pageSize
	}

	return &StatsOutput{
		Namespace:  namespace,
		Count:      row.Count,
		Detailed:   row.Detailed,
		MinID:      row.MinID,
		MaxID:      row.MaxID,
		TotalPages: totalPages,
	}, nil
}
