package dataset

import (
	"bytes"
	"crypto/sha256"
	"encoding/csv"
	"encoding/hex"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"tracktor/internal/events"
	"tracktor/internal/logging"
	"tracktor/internal/tracks"
)

// ErrMissingArtifact reports a required dataset file that does not exist.
var ErrMissingArtifact = errors.New("dataset artifact missing")

// ReaderZone is the static area covered by one RFID reader.
type ReaderZone struct {
	ReaderID int        `json:"reader_id"`
	Box      tracks.Box `json:"box"`
}

// MalformedRow records a tracking row that could not be decoded.
type MalformedRow struct {
	Row    int    `json:"row"`
	Frame  int    `json:"frame"` // -1 when the frame cell itself was unreadable
	Reason string `json:"reason"`
}

// Dataset is a loaded recording directory.
type Dataset struct {
	Dir         string
	Layout      Layout
	Fingerprint string

	Frames    []tracks.FrameData
	Malformed []MalformedRow
	Reads     []events.Read
	Readers   []ReaderZone
	Tags      []int

	header    []string
	rows      [][]string
	rowFrames []int
	rowOK     []bool
	identCol  int
}

// TrackingPath returns the path of the source tracking results file.
func (d *Dataset) TrackingPath() string {
	return d.Layout.path(d.Dir, d.Layout.TrackingFile())
}

// Store builds a fresh tracks.Store from the decoded frames.
func (d *Dataset) Store() *tracks.Store {
	return tracks.NewStore(d.Frames)
}


// Load reads every artifact of the dataset in dir. Any missing artifact fails
// the whole load.
func Load(dir string, layout Layout, logger *slog.Logger) (*Dataset, error) {
	logger = logging.NewComponentLogger(logger, "dataset")
	ds := &Dataset{Dir: dir, Layout: layout}

	raw, err := readArtifact(ds.TrackingPath())
	if err != nil {
		return nil, err
	}
	sum := sha256.Sum256(raw)
	ds.Fingerprint = hex.EncodeToString(sum[:])
	if err := ds.parseTracking(raw); err != nil {
		return nil, fmt.Errorf("%s: %w", layout.TrackingFile(), err)
	}
	for _, m := range ds.Malformed {
		logger.Debug("tracking row has no usable tracks",
			logging.Int("row", m.Row),
			logging.Int("frame", m.Frame),
			logging.String("reason", m.Reason),
		)
	}

	readsRaw, err := readArtifact(layout.path(dir, layout.ReadsFile))
	if err != nil {
		return nil, err
	}
	var skipped int
	ds.Reads, skipped, err = parseReads(readsRaw)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", layout.ReadsFile, err)
	}
	if skipped > 0 {
		logging.WarnWithContext(logger, "skipped unreadable reader events", "dataset_reads_skipped",
			logging.Int("skipped", skipped),
			logging.String(logging.FieldImpact, "those reads are absent from the RFID reads list"),
		)
	}

	locRaw, err := readArtifact(layout.path(dir, layout.LocationsFile))
	if err != nil {
		return nil, err
	}
	if ds.Readers, err = parseLocations(locRaw); err != nil {
		return nil, fmt.Errorf("%s: %w", layout.LocationsFile, err)
	}

	tagsRaw, err := readArtifact(layout.path(dir, layout.TagsFile))
	if err != nil {
		return nil, err
	}
	if ds.Tags, err = ParseTags(string(tagsRaw)); err != nil {
		return nil, fmt.Errorf("%s: %w", layout.TagsFile, err)
	}

	logger.Info("dataset loaded",
		logging.String("dir", dir),
		logging.Int("frames", len(ds.Frames)),
		logging.Int("malformed_rows", len(ds.Malformed)),
		logging.Int("reads", len(ds.Reads)),
		logging.Int("readers", len(ds.Readers)),
		logging.Int("tags", len(ds.Tags)),
	)
	return ds, nil
}

func readArtifact(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrMissingArtifact, path)
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return data, nil
}

func readCSV(raw []byte) ([]string, [][]string, error) {
	r := csv.NewReader(bytes.NewReader(raw))
	r.FieldsPerRecord = -1
	records, err := r.ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("parse csv: %w", err)
	}
	if len(records) == 0 {
		return nil, nil, errors.New("missing header row")
	}
	return records[0], records[1:], nil
}

func columnIndex(header []string, names ...string) (map[string]int, error) {
	idx := make(map[string]int, len(names))
	for i, h := range header {
		idx[strings.TrimSpace(h)] = i
	}
	out := make(map[string]int, len(names))
	for _, name := range names {
		i, ok := idx[name]
		if !ok {
			return nil, fmt.Errorf("missing column %q", name)
		}
		out[name] = i
	}
	return out, nil
}

func cell(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

func (d *Dataset) parseTracking(raw []byte) error {
	header, rows, err := readCSV(raw)
	if err != nil {
		return err
	}
	cols, err := columnIndex(header, ColumnFrame, ColumnTime, ColumnVision, ColumnIdentity)
	if err != nil {
		return err
	}
	d.header = header
	d.rows = rows
	d.identCol = cols[ColumnIdentity]
	d.rowFrames = make([]int, len(rows))
	d.rowOK = make([]bool, len(rows))

	for i, row := range rows {
		d.rowFrames[i] = -1
		frame, err := parseInt(cell(row, cols[ColumnFrame]))
		if err != nil {
			d.Malformed = append(d.Malformed, MalformedRow{Row: i, Frame: -1, Reason: "frame: " + err.Error()})
			continue
		}
		frame -= d.Layout.FrameBase
		if frame < 0 {
			d.Malformed = append(d.Malformed, MalformedRow{Row: i, Frame: -1, Reason: fmt.Sprintf("frame %d below base %d", frame+d.Layout.FrameBase, d.Layout.FrameBase)})
			continue
		}
		d.rowFrames[i] = frame

		fd := tracks.FrameData{Frame: frame}
		if ts, err := strconv.ParseFloat(cell(row, cols[ColumnTime]), 64); err == nil {
			fd.Time, fd.HasTime = ts, true
		}
		vision, verr := decodeVision(cell(row, cols[ColumnVision]))
		identity, ierr := decodeIdentity(cell(row, cols[ColumnIdentity]))
		if verr != nil || ierr != nil {
			// Keep the sampling time so reads still align to this frame.
			d.Malformed = append(d.Malformed, MalformedRow{Row: i, Frame: frame, Reason: errors.Join(verr, ierr).Error()})
			d.Frames = append(d.Frames, fd)
			continue
		}
		fd.Vision = vision
		fd.Identity = identity
		d.Frames = append(d.Frames, fd)
		d.rowOK[i] = true
	}
	return nil
}

// modifiable reports whether row i held decodable tracks and may be rewritten.
func (d *Dataset) modifiable(i int) bool {
	return d.rowOK[i]
}

func parseReads(raw []byte) ([]events.Read, int, error) {
	_, rows, err := readCSVWithColumns(raw, "Timestamp", "Reader", "RFID")
	if err != nil {
		return nil, 0, err
	}
	out := make([]events.Read, 0, len(rows))
	skipped := 0
	for _, row := range rows {
		ts, err := strconv.ParseFloat(row[0], 64)
		if err != nil {
			skipped++
			continue
		}
		reader, rerr := parseInt(row[1])
		tag, terr := parseInt(row[2])
		if rerr != nil || terr != nil {
			skipped++
			continue
		}
		out = append(out, events.Read{Timestamp: ts, Reader: reader, Tag: tag})
	}
	return out, skipped, nil
}

func parseLocations(raw []byte) ([]ReaderZone, error) {
	_, rows, err := readCSVWithColumns(raw, "reader_id", "x1", "y1", "x2", "y2")
	if err != nil {
		return nil, err
	}
	out := make([]ReaderZone, 0, len(rows))
	for n, row := range rows {
		vals := make([]int, len(row))
		for i, v := range row {
			parsed, err := parseInt(v)
			if err != nil {
				return nil, fmt.Errorf("row %d: %w", n+1, err)
			}
			vals[i] = parsed
		}
		out = append(out, ReaderZone{
			ReaderID: vals[0],
			Box:      tracks.Box{X1: vals[1], Y1: vals[2], X2: vals[3], Y2: vals[4]},
		})
	}
	return out, nil
}

// readCSVWithColumns returns rows projected onto names, in that order.
func readCSVWithColumns(raw []byte, names ...string) ([]string, [][]string, error) {
	header, rows, err := readCSV(raw)
	if err != nil {
		return nil, nil, err
	}
	cols, err := columnIndex(header, names...)
	if err != nil {
		return nil, nil, err
	}
	out := make([][]string, 0, len(rows))
	for _, row := range rows {
		if len(row) == 1 && strings.TrimSpace(row[0]) == "" {
			continue
		}
		projected := make([]string, len(names))
		for i, name := range names {
			projected[i] = cell(row, cols[name])
		}
		out = append(out, projected)
	}
	return names, out, nil
}

// parseInt accepts integer text and integral floats such as "12.0".
func parseInt(value string) (int, error) {
	value = strings.TrimSpace(value)
	if n, err := strconv.Atoi(value); err == nil {
		return n, nil
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil || f != float64(int(f)) {
		return 0, fmt.Errorf("invalid integer %q", value)
	}
	return int(f), nil
}

// ParseTags reads the known-tag registry: the first line is a preamble and
// the text after the next ':' is a comma-separated list of tags.
func ParseTags(content string) ([]int, error) {
	_, rest, found := strings.Cut(content, "\n")
	if !found {
		return nil, nil
	}
	if _, after, ok := strings.Cut(rest, ":"); ok {
		rest = after
	}
	var tags []int
	for _, field := range strings.Split(rest, ",") {
		field = strings.TrimSpace(field)
		if field == "" {
			continue
		}
		tag, err := parseInt(field)
		if err != nil {
			return nil, fmt.Errorf("tag registry: %w", err)
		}
		tags = append(tags, tag)
	}
	return tags, nil
}
