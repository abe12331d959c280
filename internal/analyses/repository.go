package analyses

import (
	"bytes"
	"context"
	"database/sql"
	"fmt"
	"io"
	"log/slog"
	"net/url"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/veridict/veridict/pkg/pagination"
	"github.com/veridict/veridict/pkg/query"
	"github.com/veridict/veridict/pkg/repository"
	"github.com/veridict/veridict/pkg/storage"
)

const reportContentType = "application/json"

type repo struct {
	db         *sql.DB
	storage    storage.System
	logger     *slog.Logger
	pagination pagination.Config
}

// New creates an analysis repository implementing the System interface.
func New(
	db *sql.DB,
	store storage.System,
	logger *slog.Logger,
	pagination pagination.Config,
) System {
	return &repo{
		db:         db,
		storage:    store,
		logger:     logger.With("system", "analyses"),
		pagination: pagination,
	}
}

func (r *repo) Handler() *Handler {
	return NewHandler(r, r.logger, r.pagination)
}

func (r *repo) List(
	ctx context.Context,
	page pagination.PageRequest,
	filters Filters,
) (*pagination.PageResult[Analysis], error) {
	page.Normalize(r.pagination)

	qb := query.
		NewBuilder(projection, defaultSort).
		WhereSearch(page.Search, "Filename", "FileType")

	filters.Apply(qb)

	if len(page.Sort) > 0 {
		qb.OrderByFields(page.Sort)
	}

	countSQL, countArgs := qb.BuildCount()
	var total int
	if err := r.db.QueryRowContext(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, fmt.Errorf("count analyses: %w", err)
	}

	pageSQL, pageArgs := qb.BuildPage(page.Page, page.PageSize)
	items, err := repository.QueryMany(ctx, r.db, pageSQL, pageArgs, scanAnalysis)
	if err != nil {
		return nil, fmt.Errorf("query analyses: %w", err)
	}

	result := pagination.NewPageResult(items, total, page.Page, page.PageSize)
	return &result, nil
}

func (r *repo) Find(ctx context.Context, id uuid.UUID) (*Analysis, error) {
	q, args := query.NewBuilder(projection).BuildSingle("ID", id)

	a, err := repository.QueryOne(ctx, r.db, q, args, scanAnalysis)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	return &a, nil
}

func (r *repo) Create(ctx context.Context, cmd CreateCommand) (*Analysis, error) {
	id := uuid.New()
	name := sanitizeFilename(cmd.Filename)
	fileKey := fmt.Sprintf("analyses/%s/%s", id, name)
	reportKey := fmt.Sprintf("analyses/%s/report.json", id)

	if err := r.storage.Upload(ctx, fileKey, bytes.NewReader(cmd.Data), cmd.ContentType); err != nil {
		return nil, fmt.Errorf("upload analysis file: %w", err)
	}
	if err := r.storage.Upload(ctx, reportKey, bytes.NewReader(cmd.Report), reportContentType); err != nil {
		r.deleteBlobs(ctx, fileKey)
		return nil, fmt.Errorf("upload analysis report: %w", err)
	}

	q := `
		INSERT INTO analyses(id, filename, content_type, size_bytes, file_type, ai_probability, confidence, storage_key, report_key)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, filename, content_type, size_bytes, file_type, ai_probability, confidence, storage_key, report_key, created_at`

	insertArgs := []any{
		id,
		cmd.Filename,
		cmd.ContentType,
		int64(len(cmd.Data)),
		cmd.FileType,
		cmd.AIProbability,
		cmd.Confidence,
		fileKey,
		reportKey,
	}

	a, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Analysis, error) {
		return repository.QueryOne(ctx, tx, q, insertArgs, scanAnalysis)
	})

	if err != nil {
		r.deleteBlobs(ctx, fileKey, reportKey)
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info(
		"analysis recorded",
		"id", a.ID,
		"filename", a.Filename,
		"ai_probability", a.AIProbability,
		"confidence", a.Confidence,
	)
	return &a, nil
}

func (r *repo) Delete(ctx context.Context, id uuid.UUID) error {
	a, err := r.Find(ctx, id)
	if err != nil {
		return err
	}

	_, err = repository.WithTx(ctx, r.db, func(tx *sql.Tx) (struct{}, error) {
		if err := repository.ExecExpectOne(
			ctx, tx,
			"DELETE FROM analyses WHERE id = $1",
			id,
		); err != nil {
			return struct{}{}, err
		}
		return struct{}{}, nil
	})

	if err != nil {
		return repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.deleteBlobs(ctx, a.StorageKey, a.ReportKey)

	r.logger.Info("analysis deleted", "id", id)
	return nil
}

func (r *repo) OpenReport(ctx context.Context, id uuid.UUID) (io.ReadCloser, error) {
	a, err := r.Find(ctx, id)
	if err != nil {
		return nil, err
	}

	rc, err := r.storage.Download(ctx, a.ReportKey)
	if err != nil {
		return nil, fmt.Errorf("download report %s: %w", a.ReportKey, err)
	}
	return rc, nil
}

func (r *repo) OpenFile(ctx context.Context, id uuid.UUID) (io.ReadCloser, *Analysis, error) {
	a, err := r.Find(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	rc, err := r.storage.Download(ctx, a.StorageKey)
	if err != nil {
		return nil, nil, fmt.Errorf("download file %s: %w", a.StorageKey, err)
	}
	return rc, a, nil
}

func (r *repo) deleteBlobs(ctx context.Context, keys ...string) {
	for _, key := range keys {
		if err := r.storage.Delete(ctx, key); err != nil {
			r.logger.Warn("blob delete failed", "key", key, "error", err)
		}
	}
}

func sanitizeFilename(name string) string {
	name = filepath.Base(name)
	if name == "." || name == "" {
		name = "file"
	}
	return url.PathEscape(name)
}
