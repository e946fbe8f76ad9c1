package ops

import (
	"bufio"
	"context"
	"database/sql"
	"encoding/json"
	"os"

	"github.com/JK0987/mousehunt-improved/internal/db"
	"github.com/JK0987/mousehunt-improved/internal/errors"
	"github.com/JK0987/mousehunt-improved/internal/journal"
)

// ImportInput contains parameters for the Import operation.
type ImportInput struct {
	Namespace string // default: "journal"
	Path      string // required
}

// ImportOutput contains the result of the Import operation.
type ImportOutput struct {
	Read     int `json:"read"`
	Applied  int `json:"applied"`
	Skipped  int `json:"skipped"`
	Rejected int `json:"rejected"`
}

// Import backfills a namespace from a JSONL export, for merging captures
// from another machine or session. Every record passes through the
// normalizer and the no-downgrade upsert, so an import can only add
// history, never degrade it. Records without a positive id are rejected.
func Import(ctx context.Context, database *sql.DB, input ImportInput) (*ImportOutput, error) {
	if input.Path == "" {
		return nil, errors.NewInvalidRequest("path is required")
	}
	namespace := resolveNamespace(input.Namespace)

	f, err := os.Open(input.Path)
	if err != nil {
		return nil, errors.NewInternal(err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)

	// Header line is required.
	if !scanner.Scan() {
		return nil, errors.NewInvalidRequest("file is empty or not a journal export")
	}
	var header ExportHeader
	if err := json.Unmarshal(scanner.Bytes(), &header); err != nil || !header.JournalExport {
		return nil, errors.NewInvalidRequest("file is not a journal export")
	}

	out := &ImportOutput{}
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		out.Read++

		var raw journal.Raw
		if err := json.Unmarshal(line, &raw); err != nil || raw.ID <= 0 {
			out.Rejected++
			continue
		}

		applied, err := db.Upsert(ctx, database, namespace, journal.Normalize(raw))
		if err != nil {
			return nil, err
		}
		if applied {
			out.Applied++
		} else {
			out.Skipped++
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.NewInternal(err)
	}

	return out, nil
}
