package ops

import (
	"context"
	"database/sql"

	"github.com/JK0987/mousehunt-improved/internal/db"
	"github.com/JK0987/mousehunt-improved/internal/errors"
	"github.com/JK0987/mousehunt-improved/internal/journal"
)

// FetchInput contains parameters for the Fetch operation.
type FetchInput struct {
	Namespace string // default: "journal"
	ID        int64  // required
}

// FetchOutput contains the fetched entry.
type FetchOutput struct {
	Entry    journal.Entry `json:"entry"`
	Detailed bool          `json:"detailed"`
}

// Fetch retrieves a single entry by id.
func Fetch(ctx context.Context, database *sql.DB, input FetchInput) (*FetchOutput, error) {
	if input.ID <= 0 {
		return nil, errors.NewInvalidRequest("id must be a positive integer")
	}

	entry, err := db.Get(ctx, database, resolveNamespace(input.Namespace), input.ID)
	if err != nil {
		return nil, err
	}

	return &FetchOutput{
		Entry:    *entry,
		Detailed: entry.Detailed(),
	}, nil
}
