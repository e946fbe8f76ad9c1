package ops

import (
	"context"
	"database/sql"

	"github.com/JK0987/mousehunt-improved/internal/db"
	"github.com/JK0987/mousehunt-improved/internal/errors"
)

// PurgeInput contains parameters for the Purge operation.
type PurgeInput struct {
	Namespace string // default: "journal"
	Confirm   bool   // required, refuses without it
}

// PurgeOutput contains the result of the Purge operation.
type PurgeOutput struct {
	Deleted int64 `json:"deleted"`
}

// Purge deletes every entry in a namespace. The capture path never
// deletes; this is the administrative escape hatch and requires explicit
// confirmation.
func Purge(ctx context.Context, database *sql.DB, input PurgeInput) (*PurgeOutput, error) {
	if !input.Confirm {
		return nil, errors.NewInvalidRequest("purge requires --confirm")
	}

	deleted, err := db.DeleteAll(ctx, database, resolveNamespace(input.Namespace))
	if err != nil {
		return nil, err
	}

	return &PurgeOutput{Deleted: deleted}, nil
}
