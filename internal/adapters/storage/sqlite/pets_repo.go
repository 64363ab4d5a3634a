package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"pet-registry/internal/domain/errs"
	"pet-registry/internal/domain/microchips"
	"pet-registry/internal/domain/pets"
)

const selectPets = `
	SELECT
		p.id, p.name, p.species, p.tag_code, p.deleted,
		c.id, c.chip_code, c.brand, COALESCE(c.deleted, 0)
	FROM pets p
	LEFT JOIN microchips c ON c.id = p.microchip_id
`

type PetsRepo struct {
	db *DB
}

func NewPetsRepo(db *DB) *PetsRepo {
	return &PetsRepo{db: db}
}

func (r *PetsRepo) Create(ctx context.Context, p pets.Pet) (int64, error) {
	var id int64
	err := r.db.conn(ctx).QueryRowContext(ctx, `
		INSERT INTO pets (name, species, tag_code, microchip_id, deleted)
		VALUES (?, ?, ?, ?, 0)
		RETURNING id
	`, p.Name, p.Species, p.TagCode, chipRef(p)).Scan(&id)
	if err != nil {
		return 0, petWriteErr("insert pet", p.TagCode, err)
	}
	return id, nil
}

func (r *PetsRepo) Update(ctx context.Context, p pets.Pet) error {
	res, err := r.db.conn(ctx).ExecContext(ctx, `
		UPDATE pets
		SET name = ?, species = ?, tag_code = ?, microchip_id = ?
		WHERE id = ? AND deleted = 0
	`, p.Name, p.Species, p.TagCode, chipRef(p), p.ID)
	if err != nil {
		return petWriteErr("update pet", p.TagCode, err)
	}
	return notFoundIfNone(res, "pet %d not found", p.ID)
}

func (r *PetsRepo) SoftDelete(ctx context.Context, id int64) error {
	res, err := r.db.conn(ctx).ExecContext(ctx, `UPDATE pets SET deleted = 1 WHERE id = ?`, id)
	if err != nil {
		return errs.Storage("soft delete pet", err)
	}
	return notFoundIfNone(res, "pet %d not found", id)
}

func (r *PetsRepo) GetByID(ctx context.Context, id int64) (*pets.Pet, error) {
	return r.one(ctx, "get pet", selectPets+`WHERE p.id = ? AND p.deleted = 0`, id)
}

func (r *PetsRepo) List(ctx context.Context) ([]pets.Pet, error) {
	return r.many(ctx, "list pets", selectPets+`WHERE p.deleted = 0 ORDER BY p.id`)
}

func (r *PetsRepo) SearchByNameOrSpecies(ctx context.Context, filter string) ([]pets.Pet, error) {
	pattern := "%" + escapeLike(strings.ToLower(filter)) + "%"
	return r.many(ctx, "search pets", selectPets+`
		WHERE p.deleted = 0
		  AND (unicode_lower(p.name) LIKE ? ESCAPE '\' OR unicode_lower(p.species) LIKE ? ESCAPE '\')
		ORDER BY p.id
	`, pattern, pattern)
}

func (r *PetsRepo) FindByExactTag(ctx context.Context, tag string) (*pets.Pet, error) {
	return r.one(ctx, "find pet by tag", selectPets+`WHERE p.tag_code = ? AND p.deleted = 0`, tag)
}

func (r *PetsRepo) one(ctx context.Context, op, query string, args ...any) (*pets.Pet, error) {
	p, err := scanPet(r.db.conn(ctx).QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, errs.Storage(op, err)
	}
	return &p, nil
}

func (r *PetsRepo) many(ctx context.Context, op, query string, args ...any) ([]pets.Pet, error) {
	rows, err := r.db.conn(ctx).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errs.Storage(op, err)
	}
	defer rows.Close()

	out := make([]pets.Pet, 0)
	for rows.Next() {
		p, err := scanPet(rows)
		if err != nil {
			return nil, errs.Storage(op, err)
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, errs.Storage(op, err)
	}
	return out, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanPet(row scanner) (pets.Pet, error) {
	var (
		p         pets.Pet
		chipID    sql.NullInt64
		chipCode  sql.NullString
		chipBrand sql.NullString
		chipDel   bool
	)
	if err := row.Scan(
		&p.ID, &p.Name, &p.Species, &p.TagCode, &p.Deleted,
		&chipID, &chipCode, &chipBrand, &chipDel,
	); err != nil {
		return pets.Pet{}, err
	}

	if chipID.Valid {
		m := microchips.Microchip{Code: chipCode.String, Brand: chipBrand.String}
		m.ID = chipID.Int64
		m.Deleted = chipDel
		p.Microchip = &m
	}
	return p, nil
}

func chipRef(p pets.Pet) sql.NullInt64 {
	id, ok := p.MicrochipID()
	return sql.NullInt64{Int64: id, Valid: ok}
}

func petWriteErr(op, tag string, err error) error {
	if isUniqueViolation(err) {
		return errs.ValidationCause(pets.ErrDuplicateTag, "tag %q already in use", tag)
	}
	return errs.Storage(op, err)
}

func notFoundIfNone(res sql.Result, format string, args ...any) error {
	n, err := res.RowsAffected()
	if err != nil {
		return errs.Storage("rows affected", err)
	}
	if n == 0 {
		return errs.NotFound(format, args...)
	}
	return nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
