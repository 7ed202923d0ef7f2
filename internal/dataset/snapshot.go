package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"slices"

	"tracktor/internal/tracks"
)

// WriteSnapshot writes the tracking results with the identity column of every
// frame modified in store re-encoded. All other cells are copied verbatim, so
// the output reloads with the same layout as the source.
func WriteSnapshot(w io.Writer, ds *Dataset, store *tracks.Store) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(ds.header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for i, row := range ds.rows {
		out := row
		if ds.modifiable(i) && store.Modified(ds.rowFrames[i]) {
			out = slices.Clone(row)
			for len(out) <= ds.identCol {
				out = append(out, "")
			}
			out[ds.identCol] = EncodeIdentity(store.Get(ds.rowFrames[i]).Identity)
		}
		if err := cw.Write(out); err != nil {
			return fmt.Errorf("write row %d: %w", i+1, err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flush snapshot: %w", err)
	}
	return nil
}
