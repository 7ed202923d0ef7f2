package journal

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// Export records one written snapshot.
type Export struct {
	ID        string    `json:"id"`
	Dataset   string    `json:"dataset"`
	Key       string    `json:"key"`
	Driver    string    `json:"driver"`
	Location  string    `json:"location,omitempty"`
	Size      int64     `json:"size_bytes"`
	CreatedAt time.Time `json:"created_at"`
}

// RecordExport stores e, assigning its ID and CreatedAt.
func (s *Store) RecordExport(ctx context.Context, e Export) (Export, error) {
	e.ID = uuid.NewString()
	e.CreatedAt = time.Now().UTC()
	err := s.inTx(ctx, func(tx *sqlx.Tx) error {
		_, err := tx.NamedExecContext(ctx, queryInsertExport, newExportRow(e))
		return err
	})
	if err != nil {
		return Export{}, fmt.Errorf("record export: %w", err)
	}
	return e, nil
}

// Exports lists the snapshots written for a dataset, oldest first.
func (s *Store) Exports(ctx context.Context, dataset string) ([]Export, error) {
	var rows []exportRow
	if err := s.db.SelectContext(ctx, &rows, queryListExports, dataset); err != nil {
		return nil, fmt.Errorf("list exports: %w", err)
	}
	out := make([]Export, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.export())
	}
	return out, nil
}
