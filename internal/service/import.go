package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"profileviews/internal/logger"
	"profileviews/internal/repository"
	"profileviews/internal/snapshot"
	"profileviews/internal/storage"
	"profileviews/internal/wantedly"
)

var ErrArchiveDisabled = errors.New("snapshot archive is not configured")

// SnapshotResult is the outcome of importing one snapshot in a multi-snapshot run.
type SnapshotResult struct {
	Name     string
	TakenAt  time.Time
	Imported int
	Err      error
}

// ImportService writes Wantedly profile-view snapshots into the repository.
type ImportService interface {
	// Import upserts every edge of doc, resolving relative dates against
	// snapshotAt. It stops at the first failing edge; edges written before the
	// failure stay committed and their number is returned with the error.
	Import(ctx context.Context, doc []byte, snapshotAt time.Time) (int, error)

	// ImportSnapshot archives snap when an archive is configured, then imports it.
	// Archive failures are logged and do not stop the import.
	ImportSnapshot(ctx context.Context, snap *snapshot.Snapshot) (int, error)

	// ImportSnapshots imports snaps with at most concurrency batches in flight.
	// Every snapshot is attempted; the first error is returned alongside all results.
	ImportSnapshots(ctx context.Context, snaps []*snapshot.Snapshot, concurrency int) ([]SnapshotResult, error)

	// ReimportArchived re-runs the import for an archived snapshot key.
	ReimportArchived(ctx context.Context, key string) (int, error)
}

type importService struct {
	repo    repository.ProfileViewRepository
	archive storage.Storage
	loc     *time.Location
	metrics *ImportMetrics
	log     *logger.Logger
	tracer  trace.Tracer
}

// NewImportService constructs an ImportService. archive and metrics may be nil.
// loc is the time zone snapshot names are stamped in.
func NewImportService(repo repository.ProfileViewRepository, archive storage.Storage, loc *time.Location, metrics *ImportMetrics, log *logger.Logger) ImportService {
	if loc == nil {
		loc = time.UTC
	}
	if log == nil {
		log = logger.Nop()
	}
	return &importService{
		repo:    repo,
		archive: archive,
		loc:     loc,
		metrics: metrics,
		log:     log.With("component", "import"),
		tracer:  otel.Tracer("profileviews/internal/service"),
	}
}

func (s *importService) Import(ctx context.Context, doc []byte, snapshotAt time.Time) (int, error) {
	ctx, span := s.tracer.Start(ctx, "ImportProfileViews",
		trace.WithAttributes(attribute.String("snapshot_at", snapshotAt.UTC().Format(time.RFC3339))),
	)
	defer span.End()
	start := time.Now()

	count, err := s.importEdges(ctx, doc, snapshotAt)

	span.SetAttributes(attribute.Int("records_imported", count))
	s.metrics.observe(count, err)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, ErrorKind(err))
		s.log.Error("profile_view_import_failed",
			"status", "error",
			"snapshot_at", snapshotAt.UTC(),
			"records_imported", count,
			"error_kind", ErrorKind(err),
			"error_message", err.Error(),
			"duration_ms", time.Since(start).Milliseconds(),
		)
		return count, err
	}

	s.log.Info("profile_view_import_success",
		"status", "success",
		"snapshot_at", snapshotAt.UTC(),
		"records_imported", count,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return count, nil
}

func (s *importService) importEdges(ctx context.Context, doc []byte, snapshotAt time.Time) (int, error) {
	edges, err := wantedly.ExtractEdges(doc)
	if err != nil {
		return 0, err
	}

	count := 0
	for i, edge := range edges {
		if err := s.importEdge(ctx, i, edge, snapshotAt); err != nil {
			return count, err
		}
		count++
	}
	return count, nil
}

func (s *importService) importEdge(ctx context.Context, index int, edge []byte, snapshotAt time.Time) error {
	raw, err := wantedly.NodeOf(edge, index)
	if err != nil {
		return err
	}
	node, err := wantedly.DecodeNode(raw)
	if err != nil {
		return &EdgeError{Index: index, Err: err}
	}
	rec, err := wantedly.ToProfileViewRaw(node, raw, snapshotAt)
	if err != nil {
		return &EdgeError{Index: index, Err: err}
	}
	if _, err := s.repo.Upsert(ctx, rec); err != nil {
		return &EdgeError{Index: index, Err: err}
	}
	return nil
}

func (s *importService) ImportSnapshot(ctx context.Context, snap *snapshot.Snapshot) (int, error) {
	if s.archive != nil {
		key := snapshot.ArchiveKey(snap.TakenAt, s.loc)
		_, err := s.archive.Put(ctx, key, bytes.NewReader(snap.Data), storage.PutObjectOptions{
			Size:        int64(len(snap.Data)),
			ContentType: "application/json",
			Metadata:    map[string]string{"snapshot-name": snap.Name},
		})
		if err != nil {
			s.log.Warn("snapshot_archive_failed", "status", "error", "snapshot", snap.Name, "error_message", err.Error())
		}
	}
	return s.Import(ctx, snap.Data, snap.TakenAt)
}

func (s *importService) ImportSnapshots(ctx context.Context, snaps []*snapshot.Snapshot, concurrency int) ([]SnapshotResult, error) {
	if concurrency < 1 {
		concurrency = 1
	}
	results := make([]SnapshotResult, len(snaps))

	var g errgroup.Group
	g.SetLimit(concurrency)
	for i, snap := range snaps {
		i, snap := i, snap
		g.Go(func() error {
			n, err := s.ImportSnapshot(ctx, snap)
			results[i] = SnapshotResult{Name: snap.Name, TakenAt: snap.TakenAt, Imported: n, Err: err}
			if err != nil {
				return fmt.Errorf("import %s: %w", snap.Name, err)
			}
			return nil
		})
	}
	err := g.Wait()
	return results, err
}

func (s *importService) ReimportArchived(ctx context.Context, key string) (int, error) {
	if s.archive == nil {
		return 0, ErrArchiveDisabled
	}
	takenAt, err := snapshot.ParseTime(key, s.loc)
	if err != nil {
		return 0, err
	}

	rc, _, err := s.archive.Get(ctx, key)
	if err != nil {
		return 0, fmt.Errorf("fetch archived snapshot: %w", err)
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return 0, fmt.Errorf("read archived snapshot: %w", err)
	}
	return s.Import(ctx, data, takenAt)
}
