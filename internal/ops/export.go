package ops

import (
	"bufio"
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/JK0987/mousehunt-improved/internal/db"
	"github.com/JK0987/mousehunt-improved/internal/errors"
)

// exportSchemaVersion is the JSONL export format version.
const exportSchemaVersion = "1"

// ExportInput contains parameters for the Export operation.
type ExportInput struct {
	Namespace string // default: "journal"
	Path      string // required
}

// ExportOutput contains the result of the Export operation.
type ExportOutput struct {
	Path       string `json:"path"`
	Count      int    `json:"count"`
	ExportedAt int64  `json:"exported_at"`
}

// ExportHeader is the header line of a JSONL export file.
type ExportHeader struct {
	JournalExport bool   `json:"_journal_export"`
	Namespace     string `json:"namespace"`
	SchemaVersion string `json:"schema_version"`
	ExportedAt    int64  `json:"exported_at"`
}

// Export dumps a namespace to a JSONL file: one header line, then one
// entry per line in id-descending order.
func Export(ctx context.Context, database *sql.DB, input ExportInput) (*ExportOutput, error) {
	if input.Path == "" {
		return nil, errors.NewInvalidRequest("path is required")
	}
	namespace := resolveNamespace(input.Namespace)

	entries, err := db.GetAll(ctx, database, namespace)
	if err != nil {
		return nil, err
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].ID > entries[j].ID })

	if err := os.MkdirAll(filepath.Dir(input.Path), 0700); err != nil {
		return nil, errors.NewInternal(fmt.Errorf("failed to create export directory: %w", err))
	}

	// Write to a temp file, then rename, so a failed export never
	// clobbers an existing one.
	tmpPath := input.Path + ".tmp"
	f, err := os.OpenFile(tmpPath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return nil, errors.NewInternal(err)
	}

	exportedAt := time.Now().Unix()
	w := bufio.NewWriter(f)
	enc := json.NewEncoder(w)

	writeErr := enc.Encode(ExportHeader{
		JournalExport: true,
		Namespace:     namespace,
		SchemaVersion: exportSchemaVersion,
		ExportedAt:    exportedAt,
	})
	for _, e := range entries {
		if writeErr != nil {
			break
		}
		writeErr = enc.Encode(e)
	}
	if writeErr == nil {
		writeErr = w.Flush()
	}
	if closeErr := f.Close(); writeErr == nil {
		writeErr = closeErr
	}
	if writeErr != nil {
		os.Remove(tmpPath)
		return nil, errors.NewInternal(writeErr)
	}

	if err := os.Rename(tmpPath, input.Path); err != nil {
		os.Remove(tmpPath)
		return nil, errors.NewInternal(err)
	}

	return &ExportOutput{
		Path:       input.Path,
		Count:      len(entries),
		ExportedAt: exportedAt,
	}, nil
}
