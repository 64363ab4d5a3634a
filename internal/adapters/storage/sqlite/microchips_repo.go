package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"pet-registry/internal/domain/errs"
	"pet-registry/internal/domain/microchips"
)

type MicrochipsRepo struct {
	db *DB
}

func NewMicrochipsRepo(db *DB) *MicrochipsRepo {
	return &MicrochipsRepo{db: db}
}

func (r *MicrochipsRepo) Create(ctx context.Context, m microchips.Microchip) (int64, error) {
	var id int64
	err := r.db.conn(ctx).QueryRowContext(ctx, `
		INSERT INTO microchips (chip_code, brand, deleted)
		VALUES (?, ?, 0)
		RETURNING id
	`, m.Code, m.Brand).Scan(&id)
	if err != nil {
		return 0, errs.Storage("insert microchip", err)
	}
	return id, nil
}

func (r *MicrochipsRepo) Update(ctx context.Context, m microchips.Microchip) error {
	res, err := r.db.conn(ctx).ExecContext(ctx, `
		UPDATE microchips SET chip_code = ?, brand = ?
		WHERE id = ? AND deleted = 0
	`, m.Code, m.Brand, m.ID)
	if err != nil {
		return errs.Storage("update microchip", err)
	}
	return notFoundIfNone(res, "microchip %d not found", m.ID)
}

func (r *MicrochipsRepo) SoftDelete(ctx context.Context, id int64) error {
	res, err := r.db.conn(ctx).ExecContext(ctx, `UPDATE microchips SET deleted = 1 WHERE id = ?`, id)
	if err != nil {
		return errs.Storage("soft delete microchip", err)
	}
	return notFoundIfNone(res, "microchip %d not found", id)
}

func (r *MicrochipsRepo) GetByID(ctx context.Context, id int64) (*microchips.Microchip, error) {
	var m microchips.Microchip
	err := r.db.conn(ctx).QueryRowContext(ctx, `
		SELECT id, chip_code, brand, deleted FROM microchips
		WHERE id = ? AND deleted = 0
	`, id).Scan(&m.ID, &m.Code, &m.Brand, &m.Deleted)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, errs.Storage("get microchip", err)
	}
	return &m, nil
}

func (r *MicrochipsRepo) List(ctx context.Context) ([]microchips.Microchip, error) {
	rows, err := r.db.conn(ctx).QueryContext(ctx, `
		SELECT id, chip_code, brand, deleted FROM microchips
		WHERE deleted = 0
		ORDER BY id
	`)
	if err != nil {
		return nil, errs.Storage("list microchips", err)
	}
	defer rows.Close()

	out := make([]microchips.Microchip, 0)
	for rows.Next() {
		var m microchips.Microchip
		if err := rows.Scan(&m.ID, &m.Code, &m.Brand, &m.Deleted); err != nil {
			return nil, errs.Storage("list microchips", err)
		}
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, errs.Storage("list microchips", err)
	}
	return out, nil
}
