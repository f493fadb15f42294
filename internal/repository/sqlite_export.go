package repository

import (
	"context"
	"fmt"

	"github.com/alexanderramin/pilot/internal/db"
	"github.com/alexanderramin/pilot/internal/domain"
)

// SQLiteExportRepo implements ExportRepo.
type SQLiteExportRepo struct {
	db db.DBTX
}

func NewSQLiteExportRepo(conn db.DBTX) *SQLiteExportRepo {
	return &SQLiteExportRepo{db: conn}
}

func (r *SQLiteExportRepo) Create(ctx context.Context, rec *domain.ExportRecord) error {
	ids, err := encodeStrings(rec.EventIDs)
	if err != nil {
		return fmt.Errorf("encoding event ids: %w", err)
	}
	_, err = r.db.ExecContext(ctx, `INSERT INTO schedule_exports (id, run_id, kind, path, event_ids_json, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		rec.ID, rec.RunID, string(rec.Kind), rec.Path, ids, formatTime(rec.CreatedAt))
	if err != nil {
		return fmt.Errorf("inserting export record: %w", err)
	}
	return nil
}

func (r *SQLiteExportRepo) ListByRun(ctx context.Context, runID string) ([]*domain.ExportRecord, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, run_id, kind, path, event_ids_json, created_at
		FROM schedule_exports WHERE run_id = ? ORDER BY created_at, rowid`, runID)
	if err != nil {
		return nil, fmt.Errorf("listing exports: %w", err)
	}
	defer rows.Close()

	var out []*domain.ExportRecord
	for rows.Next() {
		var rec domain.ExportRecord
		var kind, ids, created string
		if err := rows.Scan(&rec.ID, &rec.RunID, &kind, &rec.Path, &ids, &created); err != nil {
			return nil, fmt.Errorf("scanning export record: %w", err)
		}
		rec.Kind = domain.ExportKind(kind)
		if rec.EventIDs, err = decodeStrings(ids); err != nil {
			return nil, err
		}
		if rec.CreatedAt, err = parseTime(created); err != nil {
			return nil, fmt.Errorf("parsing created_at: %w", err)
		}
		out = append(out, &rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating exports: %w", err)
	}
	return out, nil
}
