package journal

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"tracktor/internal/tracks"
)

// Correction is one applied reviewer correction with its resolved frame range.
type Correction struct {
	ID          string    `json:"id"`
	Dataset     string    `json:"dataset"`
	Fingerprint string    `json:"fingerprint"`
	Seq         int       `json:"seq"`
	VisionID    int       `json:"vision_id"`
	Tag         int       `json:"tag"`
	From        int       `json:"from_frame"`
	To          int       `json:"to_frame"`
	CreatedAt   time.Time `json:"created_at"`
}

// Tracks converts the entry back into an engine correction over its recorded range.
func (c Correction) Tracks() tracks.Correction {
	return tracks.Correction{
		VisionID: c.VisionID,
		Tag:      c.Tag,
		Range:    &tracks.FrameRange{From: c.From, To: c.To},
	}
}

// Append records c after the existing entries for its dataset and fingerprint.
// ID, Seq and CreatedAt are assigned by the store.
func (s *Store) Append(ctx context.Context, c Correction) (Correction, error) {
	if c.Dataset == "" || c.Fingerprint == "" {
		return Correction{}, errors.New("journal: dataset and fingerprint are required")
	}
	if c.From > c.To {
		return Correction{}, fmt.Errorf("journal: %w", tracks.ErrInvalidRange)
	}
	c.ID = uuid.NewString()
	c.CreatedAt = time.Now().UTC()

	row := newCorrectionRow(c)
	err := s.inTx(ctx, func(tx *sqlx.Tx) error {
		if err := tx.GetContext(ctx, &row.Seq, queryNextSeq, c.Dataset, c.Fingerprint); err != nil {
			return err
		}
		_, err := tx.NamedExecContext(ctx, queryInsertCorrection, row)
		return err
	})
	if err != nil {
		return Correction{}, fmt.Errorf("append correction: %w", err)
	}
	c.Seq = row.Seq
	return c, nil
}

// List returns the corrections for a dataset and fingerprint in application order.
func (s *Store) List(ctx context.Context, dataset, fingerprint string) ([]Correction, error) {
	var rows []correctionRow
	if err := s.db.SelectContext(ctx, &rows, queryListCorrections, dataset, fingerprint); err != nil {
		return nil, fmt.Errorf("list corrections: %w", err)
	}
	out := make([]Correction, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.correction())
	}
	return out, nil
}

// Reset deletes every correction recorded for a dataset and fingerprint.
func (s *Store) Reset(ctx context.Context, dataset, fingerprint string) (int64, error) {
	var removed int64
	err := s.inTx(ctx, func(tx *sqlx.Tx) error {
		res, err := tx.ExecContext(ctx,
			`DELETE FROM corrections WHERE dataset = ? AND fingerprint = ?`, dataset, fingerprint)
		if err != nil {
			return err
		}
		removed, err = res.RowsAffected()
		return err
	})
	if err != nil {
		return 0, fmt.Errorf("reset corrections: %w", err)
	}
	return removed, nil
}
