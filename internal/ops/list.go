package ops

import (
	"context"
	"database/sql"

	"github.com/JK0987/mousehunt-improved/internal/config"
	"github.com/JK0987/mousehunt-improved/internal/errors"
	"github.com/JK0987/mousehunt-improved/internal/history"
	"github.com/JK0987/mousehunt-improved/internal/journal"
)

// ListInput contains parameters for the List operation.
type ListInput struct {
	Namespace string // default: "journal"
	Page      int    // 1-based, default: 1
	PageSize  int    // default: config page size
}

// ListOutput contains one page of the archive, newest first.
type ListOutput struct {
	Items      []journal.Entry `json:"items"`
	Pagination Pagination      `json:"pagination"`
	Sort       string          `json:"sort"`
}

// List pages through the archive with the same slicing the page
// synthesizer uses, so operator output matches what the UI would show.
func List(ctx context.Context, database *sql.DB, cfg *config.Config, input ListInput) (*ListOutput, error) {
	namespace := resolveNamespace(input.Namespace)

	page := input.Page
	if page == 0 {
		page = 1
	}
	if page < 1 {
		return nil, errors.NewInvalidRequest("page must be >= 1")
	}

	pageSize := input.PageSize
	if pageSize == 0 {
		pageSize = cfg.PageSize
	}
	if pageSize < 1 {
		return nil, errors.NewInvalidRequest("page size must be >= 1")
	}

	cache := history.NewCache()
	if err := cache.Load(ctx, database, namespace); err != nil {
		return nil, err
	}

	items := cache.Slice(page, pageSize)
	if items == nil {
		items = []journal.Entry{}
	}

	total := cache.Len()
	totalPages := cache.TotalPages(pageSize)

	return &ListOutput{
		Items: items,
		Pagination: Pagination{
			Page:       page,
			PageSize:   pageSize,
			TotalPages: totalPages,
			Total:      total,
			HasMore:    page < totalPages,
		},
		Sort: "id_desc",
	}, nil
}
