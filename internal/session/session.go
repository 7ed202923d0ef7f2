package session

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path"
	"path/filepath"

	"github.com/gofrs/flock"
	"github.com/google/uuid"

	"tracktor/internal/artifact"
	"tracktor/internal/config"
	"tracktor/internal/dataset"
	"tracktor/internal/events"
	"tracktor/internal/journal"
	"tracktor/internal/logging"
	"tracktor/internal/preflight"
	"tracktor/internal/review"
	"tracktor/internal/tracks"
)

var (
	// ErrLocked reports that another writable session holds the dataset.
	ErrLocked = errors.New("dataset is locked by another session")
	// ErrReadOnly reports a mutation attempted on a read-only session.
	ErrReadOnly = errors.New("session is read-only")
)

// Session is an open review of one dataset.
type Session struct {
	id       string
	cfg      *config.Config
	ds       *dataset.Dataset
	store    *tracks.Store
	nav      *events.Navigator
	journal  *journal.Store
	lock     *flock.Flock
	logger   *slog.Logger
	readOnly bool
	replayed int

	artifacts artifact.Store
}

// Applied describes one accepted correction.
type Applied struct {
	Result tracks.CorrectionResult `json:"result"`
	Entry  journal.Correction      `json:"entry"`
	// Recorded is false when the correction touched no frame and was not journaled.
	Recorded bool `json:"recorded"`
}

// Open starts a review session for the dataset in dir.
func Open(ctx context.Context, cfg *config.Config, dir string, opts ...Option) (*Session, error) {
	if cfg == nil {
		return nil, errors.New("session: config required")
	}
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolve dataset dir: %w", err)
	}

	s := &Session{
		id:        uuid.NewString(),
		cfg:       cfg,
		readOnly:  o.readOnly,
		artifacts: o.artifacts,
	}
	ctx = logging.WithDataset(logging.WithSessionID(ctx, s.id), abs)
	s.logger = logging.WithContext(ctx, logging.NewComponentLogger(o.logger, "session"))

	if !s.readOnly {
		if err := s.acquireLock(abs); err != nil {
			return nil, err
		}
	}

	s.ds, err = dataset.Load(abs, dataset.LayoutFromConfig(cfg), o.logger)
	if err != nil {
		s.releaseLock()
		return nil, err
	}

	s.journal, err = journal.Open(cfg)
	if err != nil {
		s.releaseLock()
		return nil, err
	}

	s.store = s.ds.Store()
	if err := s.replay(ctx); err != nil {
		_ = s.Close()
		return nil, err
	}
	s.nav = events.NewReviewNavigator(s.store, s.ds.Reads)

	if !s.readOnly && s.artifacts == nil {
		if r := preflight.CheckExportTarget(ctx, cfg, abs); !r.Passed {
			logging.WarnWithContext(s.logger, "export target not ready", "export_preflight_failed",
				logging.String("detail", r.Detail),
				logging.String(logging.FieldImpact, "snapshot export will fail until the target is writable"),
				logging.String(logging.FieldErrorHint, "set export.dir or fix permissions"),
			)
		}
	}

	s.logger.Info("review session opened",
		logging.Bool("read_only", s.readOnly),
		logging.Int("frames", s.store.Len()),
		logging.Int("replayed_corrections", s.replayed),
	)
	return s, nil
}

func lockPath(cfg *config.Config, dir string) string {
	sum := sha256.Sum256([]byte(dir))
	return filepath.Join(cfg.LockDir(), hex.EncodeToString(sum[:8])+".lock")
}

func (s *Session) acquireLock(dir string) error {
	if err := os.MkdirAll(s.cfg.LockDir(), 0o755); err != nil {
		return fmt.Errorf("create lock directory: %w", err)
	}
	path := lockPath(s.cfg, dir)
	lock := flock.New(path)
	ok, err := lock.TryLock()
	if err != nil {
		return fmt.Errorf("acquire lock: %w", err)
	}
	if !ok {
		return fmt.Errorf("%w: %s (open read-only to inspect)", ErrLocked, dir)
	}
	s.lock = lock
	return nil
}

func (s *Session) releaseLock() {
	if s.lock == nil {
		return
	}
	if err := s.lock.Unlock(); err != nil {
		s.logger.Warn("failed to release dataset lock", logging.Error(err))
	}
	s.lock = nil
}

func (s *Session) replay(ctx context.Context) error {
	entries, err := s.journal.List(ctx, s.ds.Dir, s.ds.Fingerprint)
	if err != nil {
		return err
	}
	for _, entry := range entries {
		if _, err := tracks.Correct(s.store, entry.Tracks()); err != nil {
			logging.WarnWithContext(s.logger, "skipping journaled correction", "journal_replay_skipped",
				logging.Int("seq", entry.Seq),
				logging.Error(err),
				logging.String(logging.FieldImpact, "that correction is not applied in this session"),
			)
			continue
		}
		s.replayed++
	}
	return nil
}

// ID returns the session identifier used in logs.
func (s *Session) ID() string { return s.id }

// ReadOnly reports whether the session refuses mutations.
func (s *Session) ReadOnly() bool { return s.readOnly }

// Dataset returns the loaded dataset.
func (s *Session) Dataset() *dataset.Dataset { return s.ds }

// Store returns the track store with journaled corrections applied.
func (s *Session) Store() *tracks.Store { return s.store }

// Navigator returns the event navigator kept current with corrections.
func (s *Session) Navigator() *events.Navigator { return s.nav }

// Replayed returns how many journaled corrections were applied on open.
func (s *Session) Replayed() int { return s.replayed }

// Frame returns the reviewer view of frame.
func (s *Session) Frame(frame int) (tracks.FrameView, bool) {
	view, ok := tracks.View(s.store, frame)
	if !ok {
		s.logger.Debug("frame not in dataset", logging.Frame(frame))
	}
	return view, ok
}

// Correct validates in, applies it, journals it and refreshes the navigator.
func (s *Session) Correct(ctx context.Context, in review.Input) (Applied, error) {
	if s.readOnly {
		return Applied{}, ErrReadOnly
	}
	req, err := review.ParseCorrection(in, review.Policy{
		Tags:             s.ds.Tags,
		EnforceKnownTags: s.cfg.Review.EnforceKnownTags,
	})
	if err != nil {
		return Applied{}, err
	}
	bounds, _ := s.store.Bounds()
	result, err := tracks.Correct(s.store, req.Correction(bounds))
	if err != nil {
		return Applied{}, err
	}
	applied := Applied{Result: result}
	if !result.Changed() {
		s.logger.Info("correction matched no frames",
			logging.VisionID(req.VisionID),
			logging.Tag(req.Tag),
			logging.Range(result.Range),
		)
		return applied, nil
	}

	applied.Entry, err = s.journal.Append(ctx, journal.Correction{
		Dataset:     s.ds.Dir,
		Fingerprint: s.ds.Fingerprint,
		VisionID:    req.VisionID,
		Tag:         req.Tag,
		From:        result.Range.From,
		To:          result.Range.To,
	})
	if err != nil {
		return applied, err
	}
	applied.Recorded = true
	s.nav.Refresh()

	s.logger.Info("correction applied",
		logging.VisionID(req.VisionID),
		logging.Tag(req.Tag),
		logging.Range(result.Range),
		logging.Int("frames", result.Frames),
		logging.Int("overwritten", result.Overwritten),
		logging.Int("appended", result.Appended),
		logging.Int("seq", applied.Entry.Seq),
	)
	return applied, nil
}

// Corrections lists the journaled corrections for this dataset and source.
func (s *Session) Corrections(ctx context.Context) ([]journal.Correction, error) {
	return s.journal.List(ctx, s.ds.Dir, s.ds.Fingerprint)
}

// Exports lists the snapshots recorded for this dataset.
func (s *Session) Exports(ctx context.Context) ([]journal.Export, error) {
	return s.journal.Exports(ctx, s.ds.Dir)
}

// ResetJournal discards every journaled correction for this source and
// returns the store to the state of the tracking file.
func (s *Session) ResetJournal(ctx context.Context) (int64, error) {
	if s.readOnly {
		return 0, ErrReadOnly
	}
	removed, err := s.journal.Reset(ctx, s.ds.Dir, s.ds.Fingerprint)
	if err != nil {
		return 0, err
	}
	s.store = s.ds.Store()
	s.replayed = 0
	s.nav = events.NewReviewNavigator(s.store, s.ds.Reads)
	s.logger.Info("journal reset", logging.Int64("removed", removed))
	return removed, nil
}

// Export writes the corrected tracking results as a new versioned snapshot.
// The source file is never overwritten.
func (s *Session) Export(ctx context.Context) (journal.Export, error) {
	store, err := s.artifactStore(ctx)
	if err != nil {
		return journal.Export{}, err
	}

	var buf bytes.Buffer
	if err := dataset.WriteSnapshot(&buf, s.ds, s.store); err != nil {
		return journal.Export{}, err
	}

	prefix := s.cfg.Export.Prefix
	if prefix == "" && store.Driver() == artifact.DriverS3 {
		prefix = filepath.Base(s.ds.Dir)
	}
	base := s.ds.Layout.TrackingBase

	var info artifact.Info
	for attempt := 0; ; attempt++ {
		existing, err := store.List(ctx, path.Join(prefix, base))
		if err != nil {
			return journal.Export{}, fmt.Errorf("list snapshots: %w", err)
		}
		key := artifact.NextSnapshotKey(prefix, base, existing)
		info, err = store.Put(ctx, key, bytes.NewReader(buf.Bytes()), "text/csv")
		if err == nil {
			break
		}
		// Another writer took the key between List and Put.
		if errors.Is(err, artifact.ErrExists) && attempt < 2 {
			continue
		}
		return journal.Export{}, fmt.Errorf("write snapshot: %w", err)
	}

	rec, err := s.journal.RecordExport(ctx, journal.Export{
		Dataset:  s.ds.Dir,
		Key:      info.Key,
		Driver:   string(store.Driver()),
		Location: info.Location,
		Size:     info.Size,
	})
	if err != nil {
		return journal.Export{}, err
	}
	s.logger.Info("snapshot exported",
		logging.String("key", info.Key),
		logging.String("location", info.Location),
		logging.Int64("snapshot_bytes", info.Size),
		logging.Int("modified_frames", len(s.store.ModifiedFrames())),
	)
	return rec, nil
}

func (s *Session) artifactStore(ctx context.Context) (artifact.Store, error) {
	if s.artifacts != nil {
		return s.artifacts, nil
	}
	store, err := artifact.Open(ctx, s.cfg, s.ds.Dir)
	if err != nil {
		return nil, err
	}
	s.artifacts = store
	return store, nil
}

// Close releases the journal and the dataset lock.
func (s *Session) Close() error {
	var err error
	if s.journal != nil {
		err = s.journal.Close()
		s.journal = nil
	}
	s.releaseLock()
	return err
}
