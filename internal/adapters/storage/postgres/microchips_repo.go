package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

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
	err := r.db.conn(ctx).QueryRow(ctx, `
		INSERT INTO microchips (chip_code, brand, deleted)
		VALUES ($1, $2, FALSE)
		RETURNING id
	`, m.Code, m.Brand).Scan(&id)
	if err != nil {
		return 0, errs.Storage("insert microchip", err)
	}
	return id, nil
}

func (r *MicrochipsRepo) Update(ctx context.Context, m microchips.Microchip) error {
	tag, err := r.db.conn(ctx).Exec(ctx, `
		UPDATE microchips
		SET chip_code = $2, brand = $3
		WHERE id = $1 AND deleted = FALSE
	`, m.ID, m.Code, m.Brand)
	if err != nil {
		return errs.Storage("update microchip", err)
	}
	if tag.RowsAffected() == 0 {
		return errs.NotFound("microchip %d not found", m.ID)
	}
	return nil
}

func (r *MicrochipsRepo) SoftDelete(ctx context.Context, id int64) error {
	tag, err := r.db.conn(ctx).Exec(ctx, `UPDATE microchips SET deleted = TRUE WHERE id = $1`, id)
	if err != nil {
		return errs.Storage("soft delete microchip", err)
	}
	if tag.RowsAffected() == 0 {
		return errs.NotFound("microchip %d not found", id)
	}
	return nil
}

func (r *MicrochipsRepo) GetByID(ctx context.Context, id int64) (*microchips.Microchip, error) {
	var m microchips.Microchip
	err := r.db.conn(ctx).QueryRow(ctx, `
		SELECT id, chip_code, brand, deleted
		FROM microchips
		WHERE id = $1 AND deleted = FALSE
	`, id).Scan(&m.ID, &m.Code, &m.Brand, &m.Deleted)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, errs.Storage("get microchip", err)
	}
	return &m, nil
}

func (r *MicrochipsRepo) List(ctx context.Context) ([]microchips.Microchip, error) {
	rows, err := r.db.conn(ctx).Query(ctx, `
		SELECT id, chip_code, brand, deleted
		FROM microchips
		WHERE deleted = FALSE
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
