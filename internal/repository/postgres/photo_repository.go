package postgres

import (
	"PlanPhotos/internal/model"
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"
)

var (
	ErrPhotoNotFound     = errors.New("plan photo not found")
	ErrPhotoExists       = errors.New("plan photo already exists")
	ErrSortOrderMismatch = errors.New("sort order does not cover the collection")
)

const uniqueViolation pq.ErrorCode = "23505"

type PhotoRepository struct {
	db *sql.DB
}

func NewPhotoRepository(db *sql.DB) *PhotoRepository {
	return &PhotoRepository{db: db}
}

func (r *PhotoRepository) ListPhotos(ctx context.Context, owner, planID string, kind model.Kind) ([]model.PhotoRecord, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT src, sort_index
		FROM plan_photos
		WHERE client_name = $1 AND plan_id = $2 AND kind = $3
		ORDER BY sort_index ASC, id ASC`, owner, planID, string(kind))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	photos := []model.PhotoRecord{}
	for rows.Next() {
		var p model.PhotoRecord
		if err := rows.Scan(&p.Reference, &p.SortIndex); err != nil {
			return nil, err
		}
		photos = append(photos, p)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return photos, nil
}

// AddPhoto appends src to the end of the collection.
func (r *PhotoRepository) AddPhoto(ctx context.Context, owner, planID string, kind model.Kind, src string) (model.PhotoRecord, error) {
	photo := model.PhotoRecord{Reference: src}
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO plan_photos (client_name, plan_id, kind, src, sort_index)
		SELECT $1, $2, $3, $4, COALESCE(MAX(sort_index), 0) + 1
		FROM plan_photos
		WHERE client_name = $1 AND plan_id = $2 AND kind = $3
		RETURNING sort_index`, owner, planID, string(kind), src).Scan(&photo.SortIndex)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return model.PhotoRecord{}, fmt.Errorf("%w: %s", ErrPhotoExists, src)
		}
		return model.PhotoRecord{}, err
	}
	return photo, nil
}

// DeletePhoto removes the photo and moves every later photo up one rank.
func (r *PhotoRepository) DeletePhoto(ctx context.Context, owner, planID string, kind model.Kind, src string, sortIndex int) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `
		DELETE FROM plan_photos
		WHERE client_name = $1 AND plan_id = $2 AND kind = $3 AND src = $4 AND sort_index = $5`,
		owner, planID, string(kind), src, sortIndex)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("%w: %s #%d", ErrPhotoNotFound, src, sortIndex)
	}

	_, err = tx.ExecContext(ctx, `
		UPDATE plan_photos SET sort_index = sort_index - 1
		WHERE client_name = $1 AND plan_id = $2 AND kind = $3 AND sort_index > $4`,
		owner, planID, string(kind), sortIndex)
	if err != nil {
		return err
	}

	return tx.Commit()
}

// UpdateSortOrder applies a full ranking of the collection in one statement.
func (r *PhotoRepository) UpdateSortOrder(ctx context.Context, owner, planID string, kind model.Kind, order []model.SortEntry) error {
	srcs := make([]string, len(order))
	ranks := make([]int64, len(order))
	for i, e := range order {
		srcs[i] = e.Reference
		ranks[i] = int64(e.SortIndex)
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var total int
	err = tx.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM plan_photos
		WHERE client_name = $1 AND plan_id = $2 AND kind = $3`,
		owner, planID, string(kind)).Scan(&total)
	if err != nil {
		return err
	}
	if total != len(order) {
		return fmt.Errorf("%w: %d entries for %d photos", ErrSortOrderMismatch, len(order), total)
	}

	res, err := tx.ExecContext(ctx, `
		UPDATE plan_photos AS p SET sort_index = o.sort_index
		FROM unnest($4::text[], $5::int[]) AS o(src, sort_index)
		WHERE p.client_name = $1 AND p.plan_id = $2 AND p.kind = $3 AND p.src = o.src`,
		owner, planID, string(kind), pq.Array(srcs), pq.Array(ranks))
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); int(n) != len(order) {
		return fmt.Errorf("%w: %d of %d photos matched", ErrSortOrderMismatch, n, len(order))
	}

	return tx.Commit()
}
