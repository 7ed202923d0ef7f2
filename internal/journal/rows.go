package journal

import "database/sql"

const (
	queryNextSeq = `SELECT COALESCE(MAX(seq), 0) + 1 FROM corrections
    WHERE dataset = ? AND fingerprint = ?`

	queryInsertCorrection = `INSERT INTO corrections
    (id, dataset, fingerprint, seq, vision_id, tag, from_frame, to_frame, created_at)
    VALUES (:id, :dataset, :fingerprint, :seq, :vision_id, :tag, :from_frame, :to_frame, :created_at)`

	queryListCorrections = `SELECT id, dataset, fingerprint, seq, vision_id, tag, from_frame, to_frame, created_at
    FROM corrections WHERE dataset = ? AND fingerprint = ? ORDER BY seq`

	queryInsertExport = `INSERT INTO exports (id, dataset, key, driver, location, size, created_at)
    VALUES (:id, :dataset, :key, :driver, :location, :size, :created_at)`

	queryListExports = `SELECT id, dataset, key, driver, location, size, created_at
    FROM exports WHERE dataset = ? ORDER BY rowid`
)

// correctionRow is the stored form of a Correction. Times are RFC 3339 text.
type correctionRow struct {
	ID          string `db:"id"`
	Dataset     string `db:"dataset"`
	Fingerprint string `db:"fingerprint"`
	Seq         int    `db:"seq"`
	VisionID    int    `db:"vision_id"`
	Tag         int    `db:"tag"`
	From        int    `db:"from_frame"`
	To          int    `db:"to_frame"`
	CreatedAt   string `db:"created_at"`
}

func newCorrectionRow(c Correction) correctionRow {
	return correctionRow{
		ID:          c.ID,
		Dataset:     c.Dataset,
		Fingerprint: c.Fingerprint,
		Seq:         c.Seq,
		VisionID:    c.VisionID,
		Tag:         c.Tag,
		From:        c.From,
		To:          c.To,
		CreatedAt:   formatTime(c.CreatedAt),
	}
}

func (r correctionRow) correction() Correction {
	return Correction{
		ID:          r.ID,
		Dataset:     r.Dataset,
		Fingerprint: r.Fingerprint,
		Seq:         r.Seq,
		VisionID:    r.VisionID,
		Tag:         r.Tag,
		From:        r.From,
		To:          r.To,
		CreatedAt:   parseTime(r.CreatedAt),
	}
}

type exportRow struct {
	ID        string         `db:"id"`
	Dataset   string         `db:"dataset"`
	Key       string         `db:"key"`
	Driver    string         `db:"driver"`
	Location  sql.NullString `db:"location"`
	Size      int64          `db:"size"`
	CreatedAt string         `db:"created_at"`
}

func newExportRow(e Export) exportRow {
	return exportRow{
		ID:        e.ID,
		Dataset:   e.Dataset,
		Key:       e.Key,
		Driver:    e.Driver,
		Location:  sql.NullString{String: e.Location, Valid: e.Location != ""},
		Size:      e.Size,
		CreatedAt: formatTime(e.CreatedAt),
	}
}

func (r exportRow) export() Export {
	return Export{
		ID:        r.ID,
		Dataset:   r.Dataset,
		Key:       r.Key,
		Driver:    r.Driver,
		Location:  r.Location.String,
		Size:      r.Size,
		CreatedAt: parseTime(r.CreatedAt),
	}
}
