package postgres

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"pet-registry/internal/domain/errs"
	"pet-registry/internal/domain/microchips"
	"pet-registry/internal/domain/pets"
)

// las lecturas traen el microchip en la misma consulta (aunque esté borrado)
const selectPets = `
	SELECT
		p.id, p.name, p.species, p.tag_code, p.deleted,
		c.id, c.chip_code, c.brand, COALESCE(c.deleted, FALSE)
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
	err := r.db.conn(ctx).QueryRow(ctx, `
		INSERT INTO pets (name, species, tag_code, microchip_id, deleted)
		VALUES ($1, $2, $3, $4, FALSE)
		RETURNING id
	`,
		p.Name,
		p.Species,
		p.TagCode,
		chipRef(p),
	).Scan(&id)
	if err != nil {
		return 0, petWriteErr("insert pet", p.TagCode, err)
	}
	return id, nil
}

func (r *PetsRepo) Update(ctx context.Context, p pets.Pet) error {
	tag, err := r.db.conn(ctx).Exec(ctx, `
		UPDATE pets
		SET
			name = $2,
			species = $3,
			tag_code = $4,
			microchip_id = $5
		WHERE id = $1 AND deleted = FALSE
	`,
		p.ID,
		p.Name,
		p.Species,
		p.TagCode,
		chipRef(p),
	)
	if err != nil {
		return petWriteErr("update pet", p.TagCode, err)
	}
	if tag.RowsAffected() == 0 {
		return errs.NotFound("pet %d not found", p.ID)
	}
	return nil
}

func (r *PetsRepo) SoftDelete(ctx context.Context, id int64) error {
	tag, err := r.db.conn(ctx).Exec(ctx, `UPDATE pets SET deleted = TRUE WHERE id = $1`, id)
	if err != nil {
		return errs.Storage("soft delete pet", err)
	}
	if tag.RowsAffected() == 0 {
		return errs.NotFound("pet %d not found", id)
	}
	return nil
}

func (r *PetsRepo) GetByID(ctx context.Context, id int64) (*pets.Pet, error) {
	row := r.db.conn(ctx).QueryRow(ctx, selectPets+`WHERE p.id = $1 AND p.deleted = FALSE`, id)

	p, err := scanPet(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, errs.Storage("get pet", err)
	}
	return &p, nil
}

func (r *PetsRepo) List(ctx context.Context) ([]pets.Pet, error) {
	return r.query(ctx, "list pets", selectPets+`WHERE p.deleted = FALSE ORDER BY p.id`)
}

func (r *PetsRepo) SearchByNameOrSpecies(ctx context.Context, filter string) ([]pets.Pet, error) {
	return r.query(ctx, "search pets", selectPets+`
		WHERE p.deleted = FALSE
		  AND (p.name ILIKE $1 OR p.species ILIKE $1)
		ORDER BY p.id
	`, "%"+escapeLike(filter)+"%")
}

func (r *PetsRepo) FindByExactTag(ctx context.Context, tag string) (*pets.Pet, error) {
	row := r.db.conn(ctx).QueryRow(ctx, selectPets+`WHERE p.tag_code = $1 AND p.deleted = FALSE`, tag)

	p, err := scanPet(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, errs.Storage("find pet by tag", err)
	}
	return &p, nil
}

func (r *PetsRepo) query(ctx context.Context, op, sql string, args ...any) ([]pets.Pet, error) {
	rows, err := r.db.conn(ctx).Query(ctx, sql, args...)
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

func scanPet(row pgx.Row) (pets.Pet, error) {
	var (
		p         pets.Pet
		chipID    pgtype.Int8
		chipCode  pgtype.Text
		chipBrand pgtype.Text
		chipDel   bool
	)
	if err := row.Scan(
		&p.ID,
		&p.Name,
		&p.Species,
		&p.TagCode,
		&p.Deleted,
		&chipID,
		&chipCode,
		&chipBrand,
		&chipDel,
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

func chipRef(p pets.Pet) pgtype.Int8 {
	id, ok := p.MicrochipID()
	return pgtype.Int8{Int64: id, Valid: ok}
}

func petWriteErr(op, tag string, err error) error {
	if isUniqueViolation(err) {
		return errs.ValidationCause(pets.ErrDuplicateTag, "tag %q already in use", tag)
	}
	return errs.Storage(op, err)
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// escapeLike neutraliza los comodines de LIKE del filtro del usuario.
func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
